// Package suggest turns free-form generated text into structured task
// suggestions. The input format is blank-line-delimited blocks, each block
// carrying "Title:", "Description:" and "Priority:" lines.
package suggest

import (
	"regexp"
	"strings"

	"github.com/staffdesk/core/internal/domain/entities"
)

var (
	titleRe    = regexp.MustCompile(`Title:\s*(.*)`)
	descRe     = regexp.MustCompile(`Description:\s*(.*)`)
	priorityRe = regexp.MustCompile(`Priority:\s*(.*)`)
	blockRe    = regexp.MustCompile(`\n{2,}`)
)

// Parse splits text into blocks and scans each for the three labeled
// fields. A missing label yields an empty string for that attribute; Parse
// never fails. The result order matches block order and the function is
// deterministic for a given input.
func Parse(text string) []entities.Suggestion {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	blocks := splitBlocks(trimmed)
	suggestions := make([]entities.Suggestion, 0, len(blocks))
	for _, block := range blocks {
		suggestions = append(suggestions, entities.Suggestion{
			Title:       firstGroup(titleRe, block),
			Description: firstGroup(descRe, block),
			Priority:    firstGroup(priorityRe, block),
		})
	}
	return suggestions
}

// splitBlocks splits on blank-line boundaries, tolerating CRLF line
// endings and runs of more than two newlines.
func splitBlocks(text string) []string {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	return blockRe.Split(normalized, -1)
}

func firstGroup(re *regexp.Regexp, block string) string {
	m := re.FindStringSubmatch(block)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

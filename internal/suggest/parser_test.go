package suggest_test

import (
	"strings"
	"testing"

	"github.com/staffdesk/core/internal/suggest"
)

func TestParse(t *testing.T) {
	t.Run("Two Blocks", func(t *testing.T) {
		text := "Title: Fix bug\nDescription: Patch login\nPriority: High\n\nTitle: Add tests\nDescription: \nPriority: Low"
		got := suggest.Parse(text)
		if len(got) != 2 {
			t.Fatalf("expected 2 suggestions, got %d", len(got))
		}
		if got[0].Title != "Fix bug" || got[0].Description != "Patch login" || got[0].Priority != "High" {
			t.Errorf("first suggestion: %+v", got[0])
		}
		if got[1].Title != "Add tests" || got[1].Description != "" || got[1].Priority != "Low" {
			t.Errorf("second suggestion: %+v", got[1])
		}
	})

	t.Run("Missing Label Defaults To Empty", func(t *testing.T) {
		got := suggest.Parse("Title: Solo\nDescription: no priority line")
		if len(got) != 1 {
			t.Fatalf("expected 1 suggestion, got %d", len(got))
		}
		if got[0].Priority != "" {
			t.Errorf("priority = %q, want empty", got[0].Priority)
		}
	})

	t.Run("Empty And Whitespace Input", func(t *testing.T) {
		if got := suggest.Parse(""); len(got) != 0 {
			t.Errorf("empty input produced %d suggestions", len(got))
		}
		if got := suggest.Parse("  \n\n  "); len(got) != 0 {
			t.Errorf("whitespace input produced %d suggestions", len(got))
		}
	})

	t.Run("Block Without Any Label", func(t *testing.T) {
		got := suggest.Parse("just some prose\n\nTitle: Real one")
		if len(got) != 2 {
			t.Fatalf("expected 2 blocks, got %d", len(got))
		}
		if got[0].Title != "" || got[0].Description != "" || got[0].Priority != "" {
			t.Errorf("label-free block should yield empty fields: %+v", got[0])
		}
		if got[1].Title != "Real one" {
			t.Errorf("second block title = %q", got[1].Title)
		}
	})

	t.Run("Order Preserved No Ranking", func(t *testing.T) {
		text := "Title: low\nPriority: Low\n\nTitle: high\nPriority: High\n\nTitle: medium\nPriority: Medium"
		got := suggest.Parse(text)
		titles := make([]string, 0, len(got))
		for _, s := range got {
			titles = append(titles, s.Title)
		}
		if strings.Join(titles, ",") != "low,high,medium" {
			t.Errorf("order changed: %v", titles)
		}
	})

	t.Run("Restartable", func(t *testing.T) {
		text := "Title: a\n\nTitle: b"
		first := suggest.Parse(text)
		second := suggest.Parse(text)
		if len(first) != len(second) {
			t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
		}
		for i := range first {
			if first[i] != second[i] {
				t.Errorf("index %d differs: %+v vs %+v", i, first[i], second[i])
			}
		}
	})

	t.Run("CRLF Input", func(t *testing.T) {
		got := suggest.Parse("Title: one\r\n\r\nTitle: two")
		if len(got) != 2 || got[0].Title != "one" || got[1].Title != "two" {
			t.Errorf("CRLF parse: %+v", got)
		}
	})
}

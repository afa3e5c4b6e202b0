package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/staffdesk/core/internal/ports"
)

// DiskStore persists uploaded attachments on the local filesystem. The
// reference it hands back is the path relative to the store root, which is
// what the screenshot row carries.
type DiskStore struct {
	root string
}

// NewDiskStore creates the store root if it does not exist yet.
func NewDiskStore(root string) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &DiskStore{root: root}, nil
}

var _ ports.AttachmentStore = (*DiskStore)(nil)

// Save writes the payload under a fresh random name. The original filename
// contributes only its extension; user input never becomes a path.
func (s *DiskStore) Save(ctx context.Context, originalName string, content io.Reader) (string, error) {
	name := uuid.New().String() + filepath.Ext(originalName)
	path := filepath.Join(s.root, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create attachment file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write attachment file: %w", err)
	}

	return name, nil
}

// Remove deletes a stored attachment. A missing file is not an error; the
// goal state is "file gone".
func (s *DiskStore) Remove(ctx context.Context, ref string) error {
	path := filepath.Join(s.root, filepath.Base(ref))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove attachment file: %w", err)
	}
	return nil
}

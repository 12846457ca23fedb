package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	portssvc "github.com/rqos/agency-ops-backend/internal/core/ports/services"
	"github.com/google/uuid"
)

// LocalStore writes attachment files under a base directory, one subdirectory
// per demand. Stored names get a random prefix so repeated uploads of the same
// filename never collide.
type LocalStore struct {
	baseDir string
}

// NewLocalStore creates the store and its base directory.
func NewLocalStore(baseDir string) (*LocalStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStore{baseDir: baseDir}, nil
}

var _ portssvc.AttachmentStore = (*LocalStore)(nil)

func (s *LocalStore) Save(ctx context.Context, demandID, filename string, data []byte) (string, error) {
	dir := filepath.Join(s.baseDir, demandID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create attachment directory: %w", err)
	}

	// Only the base name is trusted from the client.
	name := filepath.Base(filename)
	name = strings.ReplaceAll(name, " ", "_")
	path := filepath.Join(dir, uuid.NewString()[:8]+"_"+name)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write attachment file: %w", err)
	}
	return path, nil
}

func (s *LocalStore) Remove(ctx context.Context, storagePath string) error {
	// Refuse paths outside the base directory.
	rel, err := filepath.Rel(s.baseDir, storagePath)
	if err != nil || strings.HasPrefix(rel, "..") {
		return fmt.Errorf("storage path %q is outside the upload directory", storagePath)
	}
	if err := os.Remove(storagePath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

package services

import "context"

// AttachmentStore writes and removes uploaded attachment files. The database
// keeps only the storage path it returns.
type AttachmentStore interface {
	// Save persists the file bytes under the demand's directory and returns the
	// storage path to record.
	Save(ctx context.Context, demandID, filename string, data []byte) (string, error)
	Remove(ctx context.Context, storagePath string) error
}

package catalogrepo

import (
	"context"

	"libtrack/model"
)

// Repo wraps the backend's book endpoints. Rows come back flat: one record
// per physical copy, joined with its registration-batch fields.
type Repo interface {
	ListBooks(ctx context.Context) ([]model.BookCopyRow, error)
	GetBatch(ctx context.Context, batchKey string) ([]model.BookCopyRow, error)
	GetCopy(ctx context.Context, copyID int64) (*model.BookCopyRow, error)
}

package domain

import (
	"context"
	"io"
)

// ObjectStorage is the narrow contract for blob uploads (profile
// pictures). Implementations return the public location of the stored
// object.
type ObjectStorage interface {
	Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
}

// TxRunner runs fn inside a single transactional scope: begin before
// fn, commit on nil return, rollback on error. The scope travels in
// the returned context so repositories share the same transaction.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Package repo implements folder and task operations over the whole
// document. Each mutation builds a new document from the one passed in,
// persists it in full and returns it. Rejected operations return the
// input unchanged and persist nothing.
//
// The document passed in is the caller's cached copy; it is not re-read
// before mutating, so two callers holding different copies overwrite
// each other (last writer wins).
package repo

import (
	"context"

	"github.com/idilsaglam/clarolist/internal/model"
)

// Persister is the part of the document store the repositories need.
type Persister interface {
	Load(ctx context.Context) model.Document
	Save(ctx context.Context, doc model.Document)
}

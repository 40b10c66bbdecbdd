// Package document defines persistence for workflow documents. Stores are
// keyed by a caller-chosen location: a URL for file-system style stores, a
// plain identifier for database-backed ones.
package document

import (
	"context"
	"errors"

	"github.com/comfygraph/comfygraph/model"
)

// ErrNotFound reports that no document exists at the requested location.
var ErrNotFound = errors.New("workflow document not found")

// Service loads and saves workflow documents.
type Service interface {
	// Load reads and parses the document at the given location.
	Load(ctx context.Context, location string) (*model.Document, error)

	// Save writes the document to the given location, replacing any
	// previous content.
	Save(ctx context.Context, location string, doc *model.Document) error
}

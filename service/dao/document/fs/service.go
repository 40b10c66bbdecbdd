// Package fs persists workflow documents through the abstract file storage
// layer, so the same store serves local files, in-memory test fixtures and
// cloud object storage by URL scheme alone.
package fs

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"github.com/comfygraph/comfygraph/model"
	"github.com/comfygraph/comfygraph/service/dao/document"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
)

// Service is an afs-backed document store.
type Service struct {
	fs afs.Service
}

// New creates a file-system document store.
func New() *Service {
	return &Service{fs: afs.New()}
}

// Load reads and parses a workflow document from the given URL. A missing
// extension defaults to .json.
func (s *Service) Load(ctx context.Context, location string) (*model.Document, error) {
	location = normalize(location)
	if ok, _ := s.fs.Exists(ctx, location); !ok {
		return nil, fmt.Errorf("%w: %s", document.ErrNotFound, location)
	}
	data, err := s.fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to load workflow document from %s: %w", location, err)
	}
	doc, err := model.ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse workflow document %s: %w", location, err)
	}
	return doc, nil
}

// Save writes a workflow document to the given URL.
func (s *Service) Save(ctx context.Context, location string, doc *model.Document) error {
	location = normalize(location)
	data, err := doc.JSON()
	if err != nil {
		return fmt.Errorf("failed to encode workflow document: %w", err)
	}
	if err = s.fs.Upload(ctx, location, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to save workflow document to %s: %w", location, err)
	}
	return nil
}

func normalize(location string) string {
	if filepath.Ext(location) == "" {
		return location + ".json"
	}
	return location
}

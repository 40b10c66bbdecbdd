package fs

import (
	"context"
	"strings"
	"testing"

	"github.com/comfygraph/comfygraph/model"
	"github.com/comfygraph/comfygraph/service/dao/document"
	"github.com/stretchr/testify/assert"
	"github.com/viant/afs/file"
	_ "github.com/viant/afs/mem"
)

func TestService_SaveLoad(t *testing.T) {
	ctx := context.Background()
	service := New()

	workflow := model.NewWorkflow("txt2img", "")
	loader := workflow.AddNode("CheckpointLoaderSimple", nil, nil)
	sampler := workflow.AddNode("KSampler", nil, nil)
	workflow.ConnectNodes(loader, 0, sampler, 0, "MODEL")

	location := "mem://localhost/workflows/txt2img.json"
	assert.NoError(t, service.Save(ctx, location, workflow.Document()))

	doc, err := service.Load(ctx, location)
	assert.NoError(t, err)
	restored, err := model.FromDocument(doc)
	assert.NoError(t, err)
	assert.Equal(t, "txt2img", restored.Name())
	assert.Equal(t, 2, restored.NodeCount())
	assert.Equal(t, 1, restored.LinkCount())
}

func TestService_LoadMissing(t *testing.T) {
	service := New()
	_, err := service.Load(context.Background(), "mem://localhost/workflows/absent.json")
	assert.ErrorIs(t, err, document.ErrNotFound)
}

func TestService_DefaultExtension(t *testing.T) {
	ctx := context.Background()
	service := New()
	workflow := model.NewWorkflow("bare", "")

	assert.NoError(t, service.Save(ctx, "mem://localhost/workflows/bare", workflow.Document()))

	doc, err := service.Load(ctx, "mem://localhost/workflows/bare.json")
	assert.NoError(t, err)
	assert.Equal(t, "bare", doc.Metadata.Name)

	// The extension-less spelling resolves to the same document.
	doc, err = service.Load(ctx, "mem://localhost/workflows/bare")
	assert.NoError(t, err)
	assert.Equal(t, "bare", doc.Metadata.Name)
}

func TestService_LoadCorrupt(t *testing.T) {
	ctx := context.Background()
	service := New()
	err := service.fs.Upload(ctx, "mem://localhost/workflows/corrupt.json", file.DefaultFileOsMode,
		strings.NewReader(`{"nodes": [`))
	assert.NoError(t, err)
	_, err = service.Load(ctx, "mem://localhost/workflows/corrupt.json")
	assert.Error(t, err)
}

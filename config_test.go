package comfygraph

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	_ "github.com/viant/afs/mem"
)

func TestLoadConfig(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	content := []byte(`
server:
  addr: ":9090"
backend:
  url: http://comfy:8188
  templateDir: mem://localhost/templates
log:
  capacity: 50
tracing:
  enabled: true
  outputFile: traces.json
`)
	err := fs.Upload(ctx, "mem://localhost/config/comfygraph.yaml", file.DefaultFileOsMode, bytes.NewReader(content))
	assert.NoError(t, err)

	config, err := LoadConfig(ctx, "mem://localhost/config/comfygraph.yaml")
	assert.NoError(t, err)
	assert.Equal(t, ":9090", config.Server.Addr)
	assert.Equal(t, "http://comfy:8188", config.Backend.URL)
	assert.Equal(t, 50, config.Log.Capacity)
	assert.True(t, config.Tracing.Enabled)
}

func TestLoadConfig_Defaults(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	err := fs.Upload(ctx, "mem://localhost/config/partial.yaml", file.DefaultFileOsMode,
		bytes.NewReader([]byte("log:\n  capacity: 10\n")))
	assert.NoError(t, err)

	config, err := LoadConfig(ctx, "mem://localhost/config/partial.yaml")
	assert.NoError(t, err)
	// Unspecified sections keep their defaults.
	assert.Equal(t, ":8080", config.Server.Addr)
	assert.Equal(t, 10, config.Log.Capacity)
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(context.Background(), "mem://localhost/config/absent.yaml")
	assert.Error(t, err)
}

func TestLoadConfig_Invalid(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	err := fs.Upload(ctx, "mem://localhost/config/bad.yaml", file.DefaultFileOsMode,
		bytes.NewReader([]byte("server:\n  addr: \"\"\n")))
	assert.NoError(t, err)

	_, err = LoadConfig(ctx, "mem://localhost/config/bad.yaml")
	assert.Error(t, err)
}

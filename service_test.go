package comfygraph

import (
	"context"
	"testing"

	"github.com/comfygraph/comfygraph/service/tool/inspect"
	"github.com/comfygraph/comfygraph/service/tool/link"
	"github.com/comfygraph/comfygraph/service/tool/node"
	wtool "github.com/comfygraph/comfygraph/service/tool/workflow"
	"github.com/stretchr/testify/assert"
	_ "github.com/viant/afs/mem"
)

func TestService_EndToEnd(t *testing.T) {
	service := New()
	dispatcher := service.Dispatcher()
	ctx := context.Background()

	created, err := dispatcher.Dispatch(ctx, "workflow", "create",
		map[string]interface{}{"name": "txt2img", "description": "text to image"})
	assert.NoError(t, err)
	workflowID := created.(*wtool.CreateOutput).WorkflowID

	loaderOut, err := dispatcher.Dispatch(ctx, "node", "add",
		map[string]interface{}{"node_type": "CheckpointLoaderSimple"})
	assert.NoError(t, err)
	loader := loaderOut.(*node.AddOutput).NodeID

	samplerOut, err := dispatcher.Dispatch(ctx, "node", "add",
		map[string]interface{}{"node_type": "KSampler"})
	assert.NoError(t, err)
	sampler := samplerOut.(*node.AddOutput).NodeID

	connected, err := dispatcher.Dispatch(ctx, "link", "connect", map[string]interface{}{
		"origin_id": loader, "origin_slot": 0, "target_id": sampler, "target_slot": 0, "data_type": "MODEL",
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, connected.(*link.ConnectOutput).LinkID)

	summary, err := dispatcher.Dispatch(ctx, "inspect", "summary", nil)
	assert.NoError(t, err)
	out := summary.(*inspect.SummaryOutput)
	assert.Equal(t, workflowID, out.WorkflowID)
	assert.Equal(t, 2, out.Statistics.TotalNodes)
	assert.Equal(t, 1, out.Statistics.TotalLinks)

	location := "mem://localhost/e2e/txt2img.json"
	_, err = dispatcher.Dispatch(ctx, "workflow", "save",
		map[string]interface{}{"location": location})
	assert.NoError(t, err)

	loaded, err := dispatcher.Dispatch(ctx, "workflow", "load",
		map[string]interface{}{"location": location})
	assert.NoError(t, err)
	assert.Equal(t, 2, loaded.(*wtool.LoadOutput).NumNodes)

	// Every domain operation so far landed in the operation log.
	assert.NotZero(t, service.OperationLog().Stats().Total)
	assert.Equal(t, 2, service.Session().Size())
}

func TestService_Options(t *testing.T) {
	config := DefaultConfig()
	config.Log.Capacity = 5
	service := New(WithConfig(config))
	assert.Equal(t, 5, service.Config().Log.Capacity)
	assert.NotNil(t, service.Session())
	assert.NotNil(t, service.Dispatcher())
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	invalid := DefaultConfig()
	invalid.Server.Addr = ""
	assert.Error(t, invalid.Validate())
}

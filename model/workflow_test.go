package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorkflow_AddNode(t *testing.T) {
	workflow := NewWorkflow("test", "")

	first := workflow.AddNode("CheckpointLoaderSimple", nil, nil)
	second := workflow.AddNode("CLIPTextEncode", nil, []interface{}{"a photo of a cat"})
	third := workflow.AddNode("KSampler", nil, nil)
	fourth := workflow.AddNode("VAEDecode", nil, nil)

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
	assert.Equal(t, 3, third)
	assert.Equal(t, 4, fourth)
	assert.Equal(t, 4, workflow.NodeCount())

	// Auto-placement walks a 3-column grid from (50,50).
	assert.Equal(t, [2]int{50, 50}, workflow.Node(first).Pos)
	assert.Equal(t, [2]int{450, 50}, workflow.Node(second).Pos)
	assert.Equal(t, [2]int{850, 50}, workflow.Node(third).Pos)
	assert.Equal(t, [2]int{50, 350}, workflow.Node(fourth).Pos)

	assert.Equal(t, []interface{}{"a photo of a cat"}, workflow.Node(second).WidgetsValues)
	assert.Equal(t, [2]int{320, 240}, workflow.Node(first).Size)
}

func TestWorkflow_AddNodeExplicitPosition(t *testing.T) {
	workflow := NewWorkflow("test", "")
	pos := [2]int{700, 120}
	id := workflow.AddNode("SaveImage", &pos, nil)
	assert.Equal(t, [2]int{700, 120}, workflow.Node(id).Pos)
}

func TestWorkflow_NodeIDsNeverReused(t *testing.T) {
	workflow := NewWorkflow("test", "")
	first := workflow.AddNode("LoadImage", nil, nil)
	assert.True(t, workflow.RemoveNode(first))
	second := workflow.AddNode("LoadImage", nil, nil)
	assert.Equal(t, first+1, second)
}

func TestWorkflow_ConnectNodes(t *testing.T) {
	workflow := NewWorkflow("test", "")
	loader := workflow.AddNode("CheckpointLoaderSimple", nil, nil)
	sampler := workflow.AddNode("KSampler", nil, nil)

	linkID, ok := workflow.ConnectNodes(loader, 0, sampler, 0, "MODEL")
	assert.True(t, ok)
	assert.Equal(t, 1, linkID)
	assert.Equal(t, 1, workflow.LinkCount())

	origin := workflow.Node(loader)
	assert.Len(t, origin.Outputs, 1)
	assert.Equal(t, "output_0", origin.Outputs[0].Name)
	assert.Equal(t, "MODEL", origin.Outputs[0].Type)
	assert.Equal(t, []int{linkID}, origin.Outputs[0].Links)

	target := workflow.Node(sampler)
	assert.Len(t, target.Inputs, 1)
	assert.Equal(t, "input_0", target.Inputs[0].Name)
	if assert.NotNil(t, target.Inputs[0].Link) {
		assert.Equal(t, linkID, *target.Inputs[0].Link)
	}
}

func TestWorkflow_ConnectNodesGrowsSlots(t *testing.T) {
	workflow := NewWorkflow("test", "")
	origin := workflow.AddNode("CheckpointLoaderSimple", nil, nil)
	target := workflow.AddNode("KSampler", nil, nil)

	_, ok := workflow.ConnectNodes(origin, 2, target, 3, "CLIP")
	assert.True(t, ok)

	originNode := workflow.Node(origin)
	assert.Len(t, originNode.Outputs, 3)
	assert.Equal(t, "output_2", originNode.Outputs[2].Name)
	assert.Equal(t, 3, originNode.Outputs[2].Shape)
	assert.Empty(t, originNode.Outputs[0].Links)

	targetNode := workflow.Node(target)
	assert.Len(t, targetNode.Inputs, 4)
	assert.Nil(t, targetNode.Inputs[0].Link)
	assert.NotNil(t, targetNode.Inputs[3].Link)
}

func TestWorkflow_ConnectNodesMissingEndpoint(t *testing.T) {
	workflow := NewWorkflow("test", "")
	origin := workflow.AddNode("LoadImage", nil, nil)

	linkID, ok := workflow.ConnectNodes(origin, 0, 99, 0, "IMAGE")
	assert.False(t, ok)
	assert.Equal(t, 0, linkID)
	assert.Equal(t, 0, workflow.LinkCount())
	// Validation precedes mutation: no slot was grown either.
	assert.Empty(t, workflow.Node(origin).Outputs)

	_, ok = workflow.ConnectNodes(99, 0, origin, 0, "IMAGE")
	assert.False(t, ok)

	_, ok = workflow.ConnectNodes(origin, -1, origin, 0, "IMAGE")
	assert.False(t, ok)
}

func TestWorkflow_ConnectNodesSupersedesInputLink(t *testing.T) {
	workflow := NewWorkflow("test", "")
	first := workflow.AddNode("CheckpointLoaderSimple", nil, nil)
	second := workflow.AddNode("CheckpointLoaderSimple", nil, nil)
	sampler := workflow.AddNode("KSampler", nil, nil)

	oldLink, ok := workflow.ConnectNodes(first, 0, sampler, 0, "MODEL")
	assert.True(t, ok)
	newLink, ok := workflow.ConnectNodes(second, 0, sampler, 0, "MODEL")
	assert.True(t, ok)
	assert.NotEqual(t, oldLink, newLink)

	// The superseded link is gone entirely, not just unhooked from the input.
	assert.Equal(t, 1, workflow.LinkCount())
	assert.Empty(t, workflow.Node(first).Outputs[0].Links)
	assert.Equal(t, []int{newLink}, workflow.Node(second).Outputs[0].Links)
	if link := workflow.Node(sampler).Inputs[0].Link; assert.NotNil(t, link) {
		assert.Equal(t, newLink, *link)
	}
}

func TestWorkflow_DisconnectNodes(t *testing.T) {
	workflow := NewWorkflow("test", "")
	origin := workflow.AddNode("LoadImage", nil, nil)
	target := workflow.AddNode("SaveImage", nil, nil)
	linkID, _ := workflow.ConnectNodes(origin, 0, target, 0, "IMAGE")

	assert.True(t, workflow.DisconnectNodes(linkID))
	assert.Equal(t, 0, workflow.LinkCount())
	assert.Empty(t, workflow.Node(origin).Outputs[0].Links)
	assert.Nil(t, workflow.Node(target).Inputs[0].Link)

	assert.False(t, workflow.DisconnectNodes(linkID))
}

func TestWorkflow_RemoveNodeCascades(t *testing.T) {
	workflow := NewWorkflow("test", "")
	loader := workflow.AddNode("CheckpointLoaderSimple", nil, nil)
	sampler := workflow.AddNode("KSampler", nil, nil)
	decode := workflow.AddNode("VAEDecode", nil, nil)
	workflow.ConnectNodes(loader, 0, sampler, 0, "MODEL")
	workflow.ConnectNodes(sampler, 0, decode, 0, "LATENT")

	assert.True(t, workflow.RemoveNode(sampler))
	assert.Equal(t, 2, workflow.NodeCount())
	assert.Equal(t, 0, workflow.LinkCount())
	assert.Empty(t, workflow.Node(loader).Outputs[0].Links)
	assert.Nil(t, workflow.Node(decode).Inputs[0].Link)

	assert.False(t, workflow.RemoveNode(sampler))
}

func TestWorkflow_UpdateNodeParams(t *testing.T) {
	workflow := NewWorkflow("test", "")
	id := workflow.AddNode("CLIPTextEncode", nil, []interface{}{"old"})

	assert.True(t, workflow.UpdateNodeParams(id, []interface{}{"new", 42}))
	assert.Equal(t, []interface{}{"new", 42}, workflow.Node(id).WidgetsValues)

	assert.True(t, workflow.UpdateNodeParams(id, nil))
	assert.Equal(t, []interface{}{}, workflow.Node(id).WidgetsValues)

	assert.False(t, workflow.UpdateNodeParams(99, nil))
}

func TestWorkflow_NodeInfo(t *testing.T) {
	workflow := NewWorkflow("test", "")
	loader := workflow.AddNode("CheckpointLoaderSimple", nil, nil)
	sampler := workflow.AddNode("KSampler", nil, nil)
	decode := workflow.AddNode("VAEDecode", nil, nil)
	workflow.ConnectNodes(loader, 0, sampler, 0, "MODEL")
	workflow.ConnectNodes(sampler, 0, decode, 0, "LATENT")

	info := workflow.NodeInfo(sampler)
	if !assert.NotNil(t, info) {
		return
	}
	assert.Equal(t, "KSampler", info.Type)
	if assert.Len(t, info.ConnectedTo, 1) {
		assert.Equal(t, decode, info.ConnectedTo[0].NodeID)
		assert.Equal(t, "VAEDecode", info.ConnectedTo[0].NodeType)
	}
	if assert.Len(t, info.ConnectedFrom, 1) {
		assert.Equal(t, loader, info.ConnectedFrom[0].NodeID)
		assert.Equal(t, "CheckpointLoaderSimple", info.ConnectedFrom[0].NodeType)
	}

	assert.Nil(t, workflow.NodeInfo(99))
}

func TestWorkflow_ListNodesOrder(t *testing.T) {
	workflow := NewWorkflow("test", "")
	workflow.AddNode("A", nil, nil)
	b := workflow.AddNode("B", nil, nil)
	workflow.AddNode("C", nil, nil)
	workflow.RemoveNode(b)
	workflow.AddNode("D", nil, nil)

	nodes := workflow.ListNodes()
	types := make([]string, 0, len(nodes))
	for _, node := range nodes {
		types = append(types, node.Type)
	}
	assert.Equal(t, []string{"A", "C", "D"}, types)
}

func TestWorkflow_Clone(t *testing.T) {
	workflow := NewWorkflow("original", "desc")
	loader := workflow.AddNode("CheckpointLoaderSimple", nil, nil)
	sampler := workflow.AddNode("KSampler", nil, []interface{}{7})
	workflow.ConnectNodes(loader, 0, sampler, 0, "MODEL")

	clone := workflow.Clone()
	assert.NotEqual(t, workflow.ID(), clone.ID())
	assert.Equal(t, "original (Copy)", clone.Name())
	assert.Equal(t, "desc", clone.Description())
	assert.Equal(t, workflow.NodeCount(), clone.NodeCount())
	assert.Equal(t, workflow.LinkCount(), clone.LinkCount())

	// Mutating the clone leaves the original untouched.
	extra := clone.AddNode("VAEDecode", nil, nil)
	assert.Equal(t, 3, extra)
	clone.UpdateNodeParams(sampler, []interface{}{99})
	assert.Equal(t, 2, workflow.NodeCount())
	assert.Equal(t, []interface{}{7}, workflow.Node(sampler).WidgetsValues)

	// And vice versa.
	workflow.RemoveNode(loader)
	assert.Equal(t, 3, clone.NodeCount())
}

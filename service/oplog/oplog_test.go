package oplog

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLog_Capacity(t *testing.T) {
	log := New(3)
	for i := 0; i < 5; i++ {
		log.Info("node.add", fmt.Sprintf("entry %d", i), nil, "")
	}
	entries := log.All()
	if assert.Len(t, entries, 3) {
		// Oldest entries were dropped.
		assert.Equal(t, "entry 2", entries[0].Message)
		assert.Equal(t, "entry 4", entries[2].Message)
	}
}

func TestLog_RecentFilters(t *testing.T) {
	log := New(0)
	log.Info("workflow.create", "created", nil, "wf-1")
	log.Error("link.connect", "failed", nil, "wf-1")
	log.Info("node.add", "added", nil, "wf-2")
	log.Warning("inspect.validate", "warned", nil, "wf-2")

	assert.Len(t, log.Recent(10, "", ""), 4)
	assert.Len(t, log.Recent(2, "", ""), 2)

	byLevel := log.Recent(10, LevelInfo, "")
	if assert.Len(t, byLevel, 2) {
		assert.Equal(t, "workflow.create", byLevel[0].Operation)
		assert.Equal(t, "node.add", byLevel[1].Operation)
	}

	byWorkflow := log.Recent(10, "", "wf-2")
	assert.Len(t, byWorkflow, 2)

	both := log.Recent(10, LevelError, "wf-1")
	if assert.Len(t, both, 1) {
		assert.Equal(t, "failed", both[0].Message)
	}

	// Count keeps the newest matches.
	tail := log.Recent(1, "", "wf-1")
	if assert.Len(t, tail, 1) {
		assert.Equal(t, "link.connect", tail[0].Operation)
	}
}

func TestLog_DetailsDropEmptyValues(t *testing.T) {
	log := New(0)
	log.Info("workflow.save", "saved", map[string]interface{}{
		"location": "mem://dev/flow.json",
		"noise":    "",
	}, "wf-1")
	entries := log.All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, map[string]interface{}{"location": "mem://dev/flow.json"}, entries[0].Details)
	}
}

func TestLog_Stats(t *testing.T) {
	log := New(0)
	log.Info("node.add", "a", nil, "")
	log.Info("node.add", "b", nil, "")
	log.Error("link.connect", "c", nil, "")

	stats := log.Stats()
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.ByLevel[LevelInfo])
	assert.Equal(t, 1, stats.ByLevel[LevelError])
	assert.Equal(t, 2, stats.ByOperation["node.add"])
}

func TestLog_Clear(t *testing.T) {
	log := New(0)
	log.Info("node.add", "a", nil, "")
	log.Clear()
	assert.Empty(t, log.All())
	assert.Equal(t, 0, log.Stats().Total)
}

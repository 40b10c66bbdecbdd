// Package model implements the in-memory workflow graph: nodes with typed
// input/output slots, directed links between them, and the Workflow container
// that owns both collections, maintains referential integrity across all
// mutations and round-trips to the visual editor's JSON document format.
package model

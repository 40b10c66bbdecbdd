// Package comfygraph assembles a collaborative workflow graph service: an
// in-memory session of mutable node/link graphs, a document codec compatible
// with the ComfyUI visual editor, a tool surface for graph manipulation and
// an execution client for a running ComfyUI backend.
package comfygraph

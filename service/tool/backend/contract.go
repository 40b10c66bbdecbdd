package backend

import "github.com/comfygraph/comfygraph/client/comfyui"

// RunInput carries an API-format prompt graph and optional parameter
// overrides. Overrides replace matching input keys on every node that
// already carries them.
type RunInput struct {
	Graph       map[string]interface{} `json:"graph"`
	Params      map[string]interface{} `json:"params,omitempty"`
	IncludeData bool                   `json:"include_data,omitempty"`
}

// RunFromLocationInput locates a prompt graph to load and submit.
type RunFromLocationInput struct {
	Location    string                 `json:"location"`
	Params      map[string]interface{} `json:"params,omitempty"`
	IncludeData bool                   `json:"include_data,omitempty"`
}

// TextToImageInput parameterises the named template graph. Template
// defaults to "text_to_image".
type TextToImageInput struct {
	Template    string   `json:"template,omitempty"`
	Prompt      string   `json:"prompt"`
	Seed        *int     `json:"seed,omitempty"`
	Steps       *int     `json:"steps,omitempty"`
	CFG         *float64 `json:"cfg,omitempty"`
	Denoise     *float64 `json:"denoise,omitempty"`
	IncludeData bool     `json:"include_data,omitempty"`
}

// RunOutput carries the images produced by a prompt execution.
type RunOutput struct {
	PromptID  string           `json:"prompt_id"`
	Images    []*comfyui.Image `json:"images"`
	NumImages int              `json:"num_images"`
}

package comfyui

// ApplyParams overlays parameter values onto a prompt graph. For every node
// whose inputs already carry a key named in params, the value is replaced.
// Nodes without a matching input are left untouched.
func ApplyParams(graph map[string]interface{}, params map[string]interface{}) {
	if len(params) == 0 {
		return
	}
	for _, value := range graph {
		node, ok := value.(map[string]interface{})
		if !ok {
			continue
		}
		inputs, ok := node["inputs"].(map[string]interface{})
		if !ok {
			continue
		}
		for key, param := range params {
			if _, ok := inputs[key]; ok {
				inputs[key] = param
			}
		}
	}
}

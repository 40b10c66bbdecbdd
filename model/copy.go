package model

// copyValue deep-copies a JSON-shaped value. Maps and slices are duplicated
// recursively; scalars are returned as is.
func copyValue(value interface{}) interface{} {
	switch actual := value.(type) {
	case map[string]interface{}:
		return copyValues(actual)
	case []interface{}:
		result := make([]interface{}, len(actual))
		for i, item := range actual {
			result[i] = copyValue(item)
		}
		return result
	default:
		return value
	}
}

// copyValues deep-copies a JSON-shaped map. A nil map yields nil.
func copyValues(values map[string]interface{}) map[string]interface{} {
	if values == nil {
		return nil
	}
	result := make(map[string]interface{}, len(values))
	for k, v := range values {
		result[k] = copyValue(v)
	}
	return result
}

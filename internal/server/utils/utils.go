// Package utils holds small helpers shared by the JSON-RPC method
// handlers.
package utils

import (
	"encoding/json"
	"fmt"
)

// ConvertParams re-marshals the decoded params of a JSON-RPC request
// into a method's typed request struct. Params arrive as a single
// object, or as a one-element positional array wrapping that object.
func ConvertParams(params any, target any) error {
	switch p := params.(type) {
	case []any:
		if len(p) != 1 {
			return fmt.Errorf("params must be a single-item array")
		}
		params = p[0]
	case map[string]any:
	default:
		return fmt.Errorf("params should be either a single-item array or a map")
	}

	raw, err := json.Marshal(params)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, target)
}

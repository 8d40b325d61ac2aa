package utils

import (
	"bytes"
	"encoding/json"
	"maps"
)

// CleanJSON returns the JSON document found in the input,
// MCP clients driven by models may send the arguments like
// `Here you go: {json}` or wrapped in backticks.
func CleanJSON(bs []byte) []byte {
	start := firstIndex(bytes.IndexByte(bs, '{'), bytes.IndexByte(bs, '['))
	if start == -1 {
		return bs
	}
	bs = bs[start:]

	end := max(bytes.LastIndexByte(bs, '}'), bytes.LastIndexByte(bs, ']'))
	if end == -1 {
		return bs
	}
	return bs[:end+1]
}

// firstIndex returns the lowest non-negative index, or -1
func firstIndex(a, b int) int {
	switch {
	case a == -1:
		return b
	case b == -1:
		return a
	default:
		return min(a, b)
	}
}

// ToJSON returns compact JSON, or empty string if the value can not be encoded
func ToJSON(val any) string {
	js, _ := json.Marshal(val)
	return string(js)
}

// MergeInputs returns a new map with userInputs overriding configInputs
func MergeInputs(configInputs map[string]any, userInputs map[string]any) map[string]any {
	res := make(map[string]any, len(configInputs)+len(userInputs))
	maps.Copy(res, configInputs)
	maps.Copy(res, userInputs)
	return res
}

// ErrorJSON returns `{"error": msg}`
func ErrorJSON(msg string) string {
	return ToJSON(map[string]string{"error": msg})
}

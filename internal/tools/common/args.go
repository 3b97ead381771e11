package common

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// RequireString extracts a required string argument from the request arguments.
func RequireString(args map[string]any, key string) (string, error) {
	raw, ok := args[key]
	if !ok {
		return "", fmt.Errorf("missing required argument: %s", key)
	}
	value, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("argument %s must be a string, got %T", key, raw)
	}
	if value == "" {
		return "", fmt.Errorf("argument %s must not be empty", key)
	}
	return value, nil
}

// OptionalString extracts an optional string argument, returning the
// default when the argument is absent.
func OptionalString(args map[string]any, key, defaultValue string) (string, error) {
	raw, ok := args[key]
	if !ok {
		return defaultValue, nil
	}
	value, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("argument %s must be a string, got %T", key, raw)
	}
	return value, nil
}

// OptionalInt extracts an optional integer argument. JSON numbers arrive
// as float64, so both representations are accepted.
func OptionalInt(args map[string]any, key string, defaultValue int64) (int64, error) {
	raw, ok := args[key]
	if !ok {
		return defaultValue, nil
	}
	switch v := raw.(type) {
	case float64:
		return int64(v), nil
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	default:
		return 0, fmt.Errorf("argument %s must be a number, got %T", key, raw)
	}
}

// RequireInt extracts a required integer argument.
func RequireInt(args map[string]any, key string) (int64, error) {
	if _, ok := args[key]; !ok {
		return 0, fmt.Errorf("missing required argument: %s", key)
	}
	return OptionalInt(args, key, 0)
}

// OptionalBool extracts an optional boolean argument.
func OptionalBool(args map[string]any, key string, defaultValue bool) (bool, error) {
	raw, ok := args[key]
	if !ok {
		return defaultValue, nil
	}
	value, ok := raw.(bool)
	if !ok {
		return false, fmt.Errorf("argument %s must be a boolean, got %T", key, raw)
	}
	return value, nil
}

// ToValues converts a decoded JSON argument into the row-major cell
// matrix the Sheets API expects. The argument must be an array of arrays.
func ToValues(raw any) ([][]interface{}, error) {
	rows, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("data must be a 2D array of cell values, got %T", raw)
	}

	values := make([][]interface{}, 0, len(rows))
	for i, row := range rows {
		cells, ok := row.([]interface{})
		if !ok {
			return nil, fmt.Errorf("data row %d must be an array of cell values, got %T", i, row)
		}
		values = append(values, cells)
	}
	return values, nil
}

// JSONResult marshals v and returns it as a successful text result.
func JSONResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

// NotFoundResult reports a failed lookup as a successful tool result with
// a structured error payload, so MCP clients can read the message instead
// of treating the call as a protocol failure.
func NotFoundResult(err error) (*mcp.CallToolResult, error) {
	return JSONResult(map[string]string{"error": err.Error()})
}

package common

// StringArg returns the named argument as a string. Missing or non-string
// values return the empty string.
func StringArg(args map[string]interface{}, name string) string {
	if v, ok := args[name].(string); ok {
		return v
	}
	return ""
}

// OptionalStringArg returns a pointer to the named string argument, or nil
// when the argument is absent. An explicitly provided empty string is
// returned as a pointer to "" so callers can distinguish "clear this field"
// from "leave it alone".
func OptionalStringArg(args map[string]interface{}, name string) *string {
	raw, ok := args[name]
	if !ok {
		return nil
	}
	if v, ok := raw.(string); ok {
		return &v
	}
	return nil
}

// IntArg returns the named argument as an int, falling back to def when the
// argument is absent or not numeric. JSON numbers arrive as float64.
func IntArg(args map[string]interface{}, name string, def int) int {
	switch v := args[name].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return def
}

// BoolArg returns the named argument as a bool, falling back to def when the
// argument is absent or not a boolean.
func BoolArg(args map[string]interface{}, name string, def bool) bool {
	if v, ok := args[name].(bool); ok {
		return v
	}
	return def
}

// OptionalBoolArg returns a pointer to the named bool argument, or nil when
// the argument is absent.
func OptionalBoolArg(args map[string]interface{}, name string) *bool {
	raw, ok := args[name]
	if !ok {
		return nil
	}
	if v, ok := raw.(bool); ok {
		return &v
	}
	return nil
}

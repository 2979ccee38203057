package role

// roleFields lists the object keys role lookup procedures have been seen
// returning, in preference order.
var roleFields = []string{"role", "user_role", "role_name"}

// ExtractRole normalizes the loosely shaped results remote role procedures
// come back with: a bare string, a single-row array, or an object keyed by
// one of several field names. Unrecognized shapes fail closed with false
// rather than guessing.
func ExtractRole(data any) (string, bool) {
	switch v := data.(type) {
	case string:
		if v == "" {
			return "", false
		}
		return v, true

	case []any:
		if len(v) == 0 {
			return "", false
		}
		// Single-row result sets wrap the actual payload.
		return ExtractRole(v[0])

	case []map[string]any:
		if len(v) == 0 {
			return "", false
		}
		return ExtractRole(v[0])

	case map[string]any:
		for _, field := range roleFields {
			if s, ok := v[field].(string); ok && s != "" {
				return s, true
			}
		}
		return "", false
	}

	return "", false
}

package validation

// KeyMode selects how Project turns an issue path into a map key.
type KeyMode int

const (
	// FirstSegment keys by the top-level field only. Used by flat forms
	// (register, login, product).
	FirstSegment KeyMode = iota
	// FullPath keys by the rendered path. Used by nested shapes (checkout).
	FullPath
)

// GlobalKey holds issues that are not attached to any field.
const GlobalKey = "_global"

// Project folds issues into a field -> message map. Messages for the same key
// are joined with ", " in issue order.
func Project(issues Issues, mode KeyMode) map[string]string {
	out := make(map[string]string, len(issues))
	for _, is := range issues {
		key := is.Path.String()
		if mode == FirstSegment {
			key = is.Path.First()
		}
		if key == "" {
			key = GlobalKey
		}
		if prev, ok := out[key]; ok {
			out[key] = prev + ", " + is.Message
			continue
		}
		out[key] = is.Message
	}
	return out
}

package snapshot

// RootQuery is the distinguished top-level key holding per-field query
// results. Its value is itself a mapping from field keys to values.
const RootQuery = "ROOT_QUERY"

// Snapshot is a point-in-time extraction of normalized cache contents:
// entity keys at the top level, field keys nested under RootQuery.
type Snapshot map[string]any

// Root returns the root query container.
// A missing or malformed container is treated as an empty mapping.
func (s Snapshot) Root() map[string]any {
	if root, ok := s[RootQuery].(map[string]any); ok {
		return root
	}
	return map[string]any{}
}

// Clone copies the top level and the root query container,
// values themselves are shared.
func (s Snapshot) Clone() Snapshot {
	cloned := make(Snapshot, len(s))
	for key, value := range s {
		cloned[key] = value
	}
	if root, ok := s[RootQuery].(map[string]any); ok {
		clonedRoot := make(map[string]any, len(root))
		for key, value := range root {
			clonedRoot[key] = value
		}
		cloned[RootQuery] = clonedRoot
	}
	return cloned
}

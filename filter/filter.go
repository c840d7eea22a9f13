package filter

import "github.com/RuiFG/cachesnap/snapshot"

func retain(key string, whitelist, blacklist []string, prefix string) bool {
	if len(whitelist) == 0 && len(blacklist) == 0 {
		return true
	}
	//whitelist takes precedence over blacklist
	if len(whitelist) > 0 && Matches(whitelist, key, prefix) {
		return true
	}
	if len(blacklist) > 0 && !Matches(blacklist, key, prefix) {
		return true
	}
	return false
}

// Apply narrows a snapshot in two passes: entity keys at the top level,
// then field keys inside the root query container. The container key itself
// always survives the top-level pass. The input is never mutated.
func Apply(s snapshot.Snapshot, whitelist, blacklist []string) snapshot.Snapshot {
	filtered := make(snapshot.Snapshot, len(s))
	for key, value := range s {
		if key == snapshot.RootQuery || retain(key, whitelist, blacklist, snapshot.RootQuery) {
			filtered[key] = value
		}
	}
	//nested pass, a missing or malformed container is left untouched
	if rootValue, ok := filtered[snapshot.RootQuery]; ok {
		if root, ok := rootValue.(map[string]any); ok {
			filteredRoot := make(map[string]any, len(root))
			for key, value := range root {
				if retain(key, whitelist, blacklist, "") {
					filteredRoot[key] = value
				}
			}
			filtered[snapshot.RootQuery] = filteredRoot
		}
	}
	return filtered
}

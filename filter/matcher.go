package filter

import "strings"

// splitKey splits a cache key on the first occurrence of '.' or '(' into
// an entity segment and an optional nested field segment.
func splitKey(key string) (string, string) {
	if i := strings.IndexAny(key, ".("); i >= 0 {
		if key[i] == '.' {
			return key[:i], key[i+1:]
		}
		return key[:i], key[i:]
	}
	return key, ""
}

// Matches reports whether key belongs to list.
// Without a prefix the entity segment must equal a list item exactly.
// With a prefix a key also matches when its entity segment contains the
// prefix and its field segment equals a list item, which covers flat
// "ROOT_QUERY.field" style keys.
func Matches(list []string, key string, prefix string) bool {
	segment0, segment1 := splitKey(key)
	for _, item := range list {
		if segment0 == item {
			return true
		}
		if prefix != "" && strings.Contains(segment0, prefix) && segment1 == item {
			return true
		}
	}
	return false
}

package category

import "strings"

// Sanitize normalizes a user-edited category list: labels are trimmed,
// entries that end up empty are dropped, and duplicates are removed
// keeping the first occurrence in place. Matching is exact, so labels
// differing only in case both survive.
func Sanitize(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	sanitized := make([]string, 0, len(raw))
	for _, label := range raw {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		sanitized = append(sanitized, label)
	}
	return sanitized
}

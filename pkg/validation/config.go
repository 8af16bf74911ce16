package validation

import "fmt"

// DuplicateNames returns one warning per name used more than once. Empty
// names are ignored.
func DuplicateNames(entity string, names []string) []string {
	var warnings []string
	seen := make(map[string]int, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		seen[name]++
		if seen[name] == 2 {
			warnings = append(warnings, fmt.Sprintf("%s name '%s' is used more than once", entity, name))
		}
	}
	return warnings
}

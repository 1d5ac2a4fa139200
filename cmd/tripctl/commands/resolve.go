package commands

import (
	"fmt"
	"strings"
)

// resolveID expands an ID prefix as printed by the list commands. An exact
// match wins; otherwise the prefix must match exactly one ID.
func resolveID(kind, prefix string, ids []string) (string, error) {
	var matches []string
	for _, id := range ids {
		if id == prefix {
			return id, nil
		}
		if strings.HasPrefix(id, prefix) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no %s matches %q", kind, prefix)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%q matches %d %ss, use more characters", prefix, len(matches), kind)
	}
}

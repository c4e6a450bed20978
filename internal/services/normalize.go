package services

import (
	"strconv"
	"strings"
)

// SplitTags normalizes free-text tag input: split on comma, trim each
// segment, drop empties. Order is preserved.
func SplitTags(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// JoinTags is the inverse projection used when seeding an edit form.
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

// ParseIDList parses comma-separated ids, discarding segments that are
// empty or not valid integers.
func ParseIDList(s string) []int {
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			continue
		}
		out = append(out, n)
	}
	return out
}

// JoinIDs renders an id list back to the comma-separated edit form.
func JoinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ", ")
}

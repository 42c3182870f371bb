package util

import "strings"

// EqualFold reports whether a and b are identical once lowercased.
func EqualFold(a, b string) bool {
	return strings.ToLower(a) == strings.ToLower(b)
}

// ContainsFold reports whether needle occurs in haystack ignoring case.
// An empty needle matches every haystack.
func ContainsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

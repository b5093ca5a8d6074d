// Package strings provides list parsing helpers for configuration and token claims.
package strings

import (
	"strings"
)

// DedupeAndTrim removes duplicates and empty strings from a slice,
// trimming whitespace from each element. Order is preserved.
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; !ok {
			seen[trimmed] = struct{}{}
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

// SplitCSV splits a comma separated list such as KAFKA_BROKERS.
//
//	SplitCSV(" a:9092, b:9092,,a:9092") // []string{"a:9092", "b:9092"}
func SplitCSV(raw string) []string {
	return DedupeAndTrim(strings.Split(raw, ","))
}

// SplitFields splits a space separated list such as an OAuth scope claim.
func SplitFields(raw string) []string {
	return DedupeAndTrim(strings.Fields(raw))
}

package shipment

import (
	"slices"
	"strings"
)

// CodeSetKey identifies a set of classification codes regardless of order,
// blanks or duplicates. Rates are cached per shipment and code set.
func CodeSetKey(codes []string) string {
	set := make([]string, 0, len(codes))
	for _, c := range codes {
		if c = strings.TrimSpace(c); c != "" {
			set = append(set, c)
		}
	}
	slices.Sort(set)
	return strings.Join(slices.Compact(set), ",")
}

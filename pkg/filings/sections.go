package filings

import (
	"strings"
)

// DefaultSections are the items of the annual report extracted when the
// whole document is not available: business, risk factors, MD&A,
// market risk and financial statements.
var DefaultSections = []string{"1", "1A", "7", "7A", "8"}

// ParseSections returns the list of section items from comma-separated string
func ParseSections(csv string) []string {
	return FilterSections(strings.Split(csv, ","))
}

// FilterSections returns trimmed items in the original order,
// without blank and duplicate entries.
func FilterSections(items []string) []string {
	var res []string
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		res = append(res, item)
	}
	return res
}

package catalog

import "strings"

// Filter keeps the items whose label contains every word of query,
// ignoring case. An empty query returns items unchanged.
func Filter(items []Item, query string) []Item {
	kw := strings.Fields(strings.ToLower(query))
	if len(kw) == 0 {
		return items
	}
	var out []Item
	for _, it := range items {
		label := strings.ToLower(Label(it))
		ok := true
		for _, k := range kw {
			if !strings.Contains(label, k) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, it)
		}
	}
	return out
}

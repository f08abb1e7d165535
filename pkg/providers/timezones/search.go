package timezones

import (
	"sort"
	"strings"
)

// Search returns up to limit zones containing query, case-insensitively.
// Zones where the query matches the start of the name, or of the city part
// after the last slash, rank first. An empty query matches nothing.
func Search(zones []string, query string, limit int) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || limit <= 0 {
		return nil
	}

	type match struct {
		name     string
		isPrefix bool
	}
	matches := make([]match, 0, 16)
	for _, zone := range zones {
		lower := strings.ToLower(zone)
		if !strings.Contains(lower, query) {
			continue
		}
		city := lower[strings.LastIndex(lower, "/")+1:]
		matches = append(matches, match{
			name:     zone,
			isPrefix: strings.HasPrefix(lower, query) || strings.HasPrefix(city, query),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].isPrefix != matches[j].isPrefix {
			return matches[i].isPrefix
		}
		return matches[i].name < matches[j].name
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.name
	}
	return out
}

package client

import "strings"

// searchWords lowercases term and splits it on whitespace.
func searchWords(term string) []string {
	return strings.Fields(strings.ToLower(term))
}

// haystack is the lowercased text a row is searched in.
func haystack(r Row) string {
	parts := []string{r.Title, r.Requirement, r.Domain, r.Chapter, r.SubChapter}
	if r.Audit != nil {
		parts = append(parts, r.Audit.Status)
		if r.Audit.Owner != nil {
			parts = append(parts, *r.Audit.Owner)
		}
	} else {
		parts = append(parts, "pending")
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// matches reports whether every word occurs in the row's text and, when
// domainName is set, the row belongs to exactly that domain.
func matches(r Row, words []string, domainName string) bool {
	if domainName != "" && r.Domain != domainName {
		return false
	}
	if len(words) == 0 {
		return true
	}
	text := haystack(r)
	for _, w := range words {
		if !strings.Contains(text, w) {
			return false
		}
	}
	return true
}

func filterRows(rows []Row, term, domainName string) []Row {
	words := searchWords(term)
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if matches(r, words, domainName) {
			out = append(out, r)
		}
	}
	return out
}

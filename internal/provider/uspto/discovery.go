package uspto

import (
	"strings"
	"unicode"
)

// normWords lowercases s and collapses every run of non-alphanumeric
// characters to a single space, giving a consistent tokenization for
// prefix/boundary matching independent of punctuation and casing.
func normWords(s string) string {
	if s == "" {
		return ""
	}
	var out strings.Builder
	prevSpace := false
	for _, ch := range s {
		if unicode.IsLetter(ch) || unicode.IsDigit(ch) {
			out.WriteRune(unicode.ToLower(ch))
			prevSpace = false
		} else if !prevSpace {
			out.WriteByte(' ')
			prevSpace = true
		}
	}
	return strings.TrimSpace(strings.Join(strings.Fields(out.String()), " "))
}

// discoverOrgsViaBegins issues an operator-first _begins discovery query
// and keeps any harvested assignee organization whose raw string starts
// with prefix, or whose word-normalized form starts with prefix's
// word-normalized form at a token boundary (end of string or a space
// immediately after the match).
func (p *Provider) discoverOrgsViaBegins(prefix string, year *int, limit int) ([]string, error) {
	var filters []map[string]interface{}
	if year != nil {
		start, end := yearBounds(*year)
		filters = append(filters,
			map[string]interface{}{"_gte": map[string]interface{}{"patent_date": start}},
			map[string]interface{}{"_lte": map[string]interface{}{"patent_date": end}},
		)
	}
	beginsClause := map[string]interface{}{"_begins": map[string]interface{}{"assignees.assignee_organization": prefix}}

	var query map[string]interface{}
	if len(filters) > 0 {
		query = map[string]interface{}{"_and": append(filters, beginsClause)}
	} else {
		query = beginsClause
	}

	size := limit
	if size > 200 {
		size = 200
	}
	if size < 1 {
		size = 1
	}
	payload := map[string]interface{}{
		"q": query,
		"f": []string{"assignees.assignee_organization"},
		"o": map[string]interface{}{"size": size, "page": 1},
	}
	data, err := p.post(payload)
	if err != nil {
		return nil, err
	}

	wantRaw := strings.TrimSpace(prefix)
	wantWords := normWords(prefix)

	var out []string
	seen := make(map[string]struct{})
	patents, _ := data["patents"].([]interface{})
	for _, pRaw := range patents {
		pat, ok := pRaw.(map[string]interface{})
		if !ok {
			continue
		}
		assignees, _ := pat["assignees"].([]interface{})
		for _, aRaw := range assignees {
			a, ok := aRaw.(map[string]interface{})
			if !ok {
				continue
			}
			org, _ := a["assignee_organization"].(string)
			if org == "" {
				continue
			}
			orgRaw := strings.TrimSpace(org)
			rawOK := wantRaw != "" && strings.HasPrefix(orgRaw, wantRaw)

			var boundaryOK bool
			if wantWords != "" {
				ow := normWords(orgRaw)
				if strings.HasPrefix(ow, wantWords) {
					boundaryOK = len(ow) == len(wantWords) || ow[len(wantWords)] == ' '
				}
			}

			if rawOK || boundaryOK {
				if _, dup := seen[orgRaw]; !dup {
					seen[orgRaw] = struct{}{}
					out = append(out, orgRaw)
				}
			}
		}
	}
	return out, nil
}

// eqCount runs an exact match on assignees.assignee_organization bounded
// to year, returning the total hit count.
func (p *Provider) eqCount(company string, year *int, utilityOnly bool) (int, error) {
	filters := []map[string]interface{}{
		{"_eq": map[string]interface{}{"assignees.assignee_organization": company}},
	}
	if year != nil {
		start, end := yearBounds(*year)
		filters = append([]map[string]interface{}{
			{"_gte": map[string]interface{}{"patent_date": start}},
			{"_lte": map[string]interface{}{"patent_date": end}},
		}, filters...)
	}
	if utilityOnly {
		filters = append(filters, map[string]interface{}{"_eq": map[string]interface{}{"patent_type": "utility"}})
	}
	payload := map[string]interface{}{
		"q": map[string]interface{}{"_and": filters},
		"o": map[string]interface{}{"size": 0},
	}
	data, err := p.post(payload)
	if err != nil {
		return 0, err
	}
	return totalHits(data), nil
}

// CountEq implements internal/resolver.NameProvider.
func (p *Provider) CountEq(name string, year *int) (int, error) {
	return p.eqCount(name, year, false)
}

// DiscoverPrefix implements internal/resolver.NameProvider.
func (p *Provider) DiscoverPrefix(prefix string, year *int, limit int) ([]string, error) {
	return p.discoverOrgsViaBegins(prefix, year, limit)
}

package search

import (
	"sort"
	"strings"
)

// FilterOptions are the static value lists offered by the search filters.
type FilterOptions struct {
	Domains        []string `json:"domains"`
	Types          []string `json:"types"`
	Statuses       []string `json:"statuses"`
	Certifications []string `json:"certifications"`
	Tags           []string `json:"tags"`
}

func DefaultFilterOptions() FilterOptions {
	return FilterOptions{
		Domains:        []string{"Customer", "Finance", "Marketing", "Human Resources", "Reference Data", "Operations"},
		Types:          []string{"Table", "View", "Dataset", "API", "Report", "Dashboard", "File"},
		Statuses:       []string{"Production", "Development", "Testing", "Deprecated"},
		Certifications: []string{"certified", "pending", "uncertified"},
		Tags:           []string{"pii", "finance", "sox", "customer", "marketing", "analytics", "hr", "master-data"},
	}
}

type Suggestion struct {
	Text  string `json:"text"`
	Field string `json:"field"`
	Value string `json:"value"`
}

const DefaultSuggestionLimit = 8

func (o FilterOptions) fields() []struct {
	name   string
	values []string
} {
	return []struct {
		name   string
		values []string
	}{
		{ParamDomain, o.Domains},
		{ParamType, o.Types},
		{ParamStatus, o.Statuses},
		{ParamCertification, o.Certifications},
		{ParamTag, o.Tags},
	}
}

// Suggest returns up to limit suggestions for input. "field:partial" narrows
// to one field. Prefix matches rank ahead of substring matches; ties keep
// option-list order.
func Suggest(input string, opts FilterOptions, limit int) []Suggestion {
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}
	term := strings.ToLower(strings.TrimSpace(input))
	if term == "" {
		return []Suggestion{}
	}

	only := ""
	if field, rest, ok := strings.Cut(term, ":"); ok {
		only, term = strings.TrimSpace(field), strings.TrimSpace(rest)
	}

	type ranked struct {
		s    Suggestion
		rank int
	}
	var found []ranked
	for _, f := range opts.fields() {
		if only != "" && f.name != only {
			continue
		}
		for _, v := range f.values {
			lv := strings.ToLower(v)
			rank := -1
			switch {
			case strings.HasPrefix(lv, term):
				rank = 0
			case strings.Contains(lv, term):
				rank = 1
			}
			if rank < 0 {
				continue
			}
			found = append(found, ranked{
				s:    Suggestion{Text: f.name + ":" + v, Field: f.name, Value: v},
				rank: rank,
			})
		}
	}

	sort.SliceStable(found, func(i, j int) bool { return found[i].rank < found[j].rank })

	out := make([]Suggestion, 0, limit)
	for _, r := range found {
		if len(out) == limit {
			break
		}
		out = append(out, r.s)
	}
	return out
}

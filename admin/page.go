package admin

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Query is what a list page applies: debounced search text, equality
// filters by name, and an optional column sort.
type Query struct {
	Search  string            `json:"search"`
	Filters map[string]string `json:"filters,omitempty"`
	Sort    *SortState        `json:"sort,omitempty"`
}

// ParseQuery reads search, sort, order and any filter names from values.
func ParseQuery(values url.Values, filterNames []string) Query {
	q := Query{Search: values.Get("search"), Filters: map[string]string{}}
	for _, name := range filterNames {
		if v := values.Get(name); v != "" {
			q.Filters[name] = v
		}
	}
	if field := values.Get("sort"); field != "" {
		dir := Asc
		if strings.EqualFold(values.Get("order"), string(Desc)) {
			dir = Desc
		}
		q.Sort = &SortState{Field: field, Direction: dir}
	}
	return q
}

// Searchable is a list page with its items hidden behind Search.
type Searchable interface {
	Name() string
	FilterNames() []string
	DefaultSort() *SortState
	Search(q Query) interface{}
	Count(q Query) int
}

// Page is a fixed in-memory list with search fields, equality filters and
// optional sort keys.
type Page[T any] struct {
	name         string
	items        []T
	searchFields func(T) []string
	filters      map[string]func(T) string
	sortKeys     map[string]SortKey[T]
	defaultSort  *SortState
}

func (p *Page[T]) Name() string { return p.name }

func (p *Page[T]) FilterNames() []string {
	names := make([]string, 0, len(p.filters))
	for n := range p.filters {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// DefaultSort is the sort shown before any column is toggled, or nil.
func (p *Page[T]) DefaultSort() *SortState {
	if p.defaultSort == nil {
		return nil
	}
	s := *p.defaultSort
	return &s
}

// Run filters then sorts. Search runs first, then each filter in name order.
func (p *Page[T]) Run(q Query) []T {
	preds := []Predicate[T]{MatchText(q.Search, p.searchFields)}
	for _, name := range p.FilterNames() {
		if want, ok := q.Filters[name]; ok {
			preds = append(preds, Equals(want, p.filters[name]))
		}
	}
	out := Apply(p.items, preds...)

	state := q.Sort
	if state == nil {
		state = p.defaultSort
	}
	if state != nil && p.sortKeys != nil {
		out = SortBy(out, *state, p.sortKeys)
	}
	return out
}

func (p *Page[T]) Search(q Query) interface{} { return p.Run(q) }
func (p *Page[T]) Count(q Query) int          { return len(p.Run(q)) }

func CharacteristicsPage(items []Characteristic) *Page[Characteristic] {
	return &Page[Characteristic]{
		name:  "characteristics",
		items: items,
		searchFields: func(c Characteristic) []string {
			return []string{c.Name, c.Description, c.Category}
		},
		filters: map[string]func(Characteristic) string{
			"category": func(c Characteristic) string { return c.Category },
			"status":   func(c Characteristic) string { return c.Status },
		},
	}
}

// DomainTypeSortKeys are the sortable DomainTypes columns.
func DomainTypeSortKeys() map[string]SortKey[DomainType] {
	return map[string]SortKey[DomainType]{
		"name":           {Text: func(d DomainType) string { return d.Name }},
		"category":       {Text: func(d DomainType) string { return d.Category }},
		"status":         {Text: func(d DomainType) string { return d.Status }},
		"lastModified":   {Text: func(d DomainType) string { return d.LastModified }},
		"attributeCount": {Number: func(d DomainType) float64 { return float64(d.AttributeCount) }},
		"domainCount":    {Number: func(d DomainType) float64 { return float64(d.DomainCount) }},
	}
}

func DomainTypesPage(items []DomainType) *Page[DomainType] {
	return &Page[DomainType]{
		name:  "domain-types",
		items: items,
		searchFields: func(d DomainType) []string {
			return []string{d.Name, d.Description}
		},
		filters: map[string]func(DomainType) string{
			"category": func(d DomainType) string { return d.Category },
			"status":   func(d DomainType) string { return d.Status },
		},
		sortKeys:    DomainTypeSortKeys(),
		defaultSort: &SortState{Field: "name", Direction: Asc},
	}
}

func QualityRulesPage(items []QualityRule) *Page[QualityRule] {
	return &Page[QualityRule]{
		name:  "quality-rules",
		items: items,
		searchFields: func(r QualityRule) []string {
			return []string{r.Name, r.Description, r.Dimension, r.RuleType}
		},
		filters: map[string]func(QualityRule) string{
			"type":     func(r QualityRule) string { return r.RuleType },
			"status":   func(r QualityRule) string { return r.Status },
			"severity": func(r QualityRule) string { return r.Severity },
		},
	}
}

// Catalog indexes the admin pages by name.
type Catalog map[string]Searchable

func NewCatalog() Catalog {
	c := Catalog{}
	for _, p := range []Searchable{
		CharacteristicsPage(SampleCharacteristics()),
		DomainTypesPage(SampleDomainTypes()),
		QualityRulesPage(SampleQualityRules()),
	} {
		c[p.Name()] = p
	}
	return c
}

func (c Catalog) Page(name string) (Searchable, error) {
	p, ok := c[name]
	if !ok {
		return nil, fmt.Errorf("unknown admin page %q", name)
	}
	return p, nil
}

package admin

import (
	"sync"
	"time"
)

// Result is one filtered snapshot pushed by a View.
type Result struct {
	Page  string      `json:"page"`
	Query Query       `json:"query"`
	Items interface{} `json:"items"`
	Count int         `json:"count"`
}

// View is one user's session on a page: search keystrokes are debounced,
// filter and sort changes apply immediately. Every applied change is pushed
// to publish.
type View struct {
	mu        sync.Mutex
	page      Searchable
	query     Query
	debouncer *Debouncer
	publish   func(Result)
}

func NewView(page Searchable, delay time.Duration, publish func(Result)) *View {
	return &View{
		page:      page,
		query:     Query{Filters: map[string]string{}},
		debouncer: NewDebouncer(delay),
		publish:   publish,
	}
}

// SetSearch records text and filters once typing settles.
func (v *View) SetSearch(text string) {
	v.debouncer.Trigger(func() {
		v.mu.Lock()
		v.query.Search = text
		v.mu.Unlock()
		v.apply()
	})
}

func (v *View) SetFilter(name, value string) {
	v.mu.Lock()
	if value == "" {
		delete(v.query.Filters, name)
	} else {
		v.query.Filters[name] = value
	}
	v.mu.Unlock()
	v.apply()
}

// ToggleSort flips or starts the sort on field.
func (v *View) ToggleSort(field string) {
	v.mu.Lock()
	current := SortState{}
	if v.query.Sort != nil {
		current = *v.query.Sort
	} else if def := v.page.DefaultSort(); def != nil {
		current = *def
	}
	next := current.Toggle(field)
	v.query.Sort = &next
	v.mu.Unlock()
	v.apply()
}

func (v *View) Refresh() { v.apply() }

func (v *View) Close() { v.debouncer.Stop() }

func (v *View) snapshot() Query {
	v.mu.Lock()
	defer v.mu.Unlock()
	q := Query{Search: v.query.Search, Filters: make(map[string]string, len(v.query.Filters))}
	for k, val := range v.query.Filters {
		q.Filters[k] = val
	}
	if v.query.Sort != nil {
		s := *v.query.Sort
		q.Sort = &s
	}
	return q
}

func (v *View) apply() {
	q := v.snapshot()
	v.publish(Result{
		Page:  v.page.Name(),
		Query: q,
		Items: v.page.Search(q),
		Count: v.page.Count(q),
	})
}

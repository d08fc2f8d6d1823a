package admin

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncer_RunsOnlyLastCall(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	var calls atomic.Int32
	got := make(chan string, 3)

	for _, s := range []string{"p", "pi", "pii"} {
		s := s
		d.Trigger(func() {
			calls.Add(1)
			got <- s
		})
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case s := <-got:
		assert.Equal(t, "pii", s)
	case <-time.After(time.Second):
		t.Fatal("debounced call never ran")
	}
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDebouncer_Stop(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	assert.False(t, d.Stop())

	var ran atomic.Bool
	d.Trigger(func() { ran.Store(true) })
	assert.True(t, d.Stop())

	time.Sleep(50 * time.Millisecond)
	assert.False(t, ran.Load())
}

func TestView_DebouncedSearchAndImmediateFilters(t *testing.T) {
	var mu sync.Mutex
	var results []Result
	pushed := make(chan struct{}, 10)
	publish := func(r Result) {
		mu.Lock()
		results = append(results, r)
		mu.Unlock()
		pushed <- struct{}{}
	}

	v := NewView(CharacteristicsPage(SampleCharacteristics()), 20*time.Millisecond, publish)
	defer v.Close()

	v.SetSearch("p")
	v.SetSearch("pi")
	v.SetSearch("pii")

	select {
	case <-pushed:
	case <-time.After(time.Second):
		t.Fatal("no result published")
	}
	mu.Lock()
	require.Len(t, results, 1)
	assert.Equal(t, "pii", results[0].Query.Search)
	assert.Equal(t, 3, results[0].Count)
	mu.Unlock()

	v.SetFilter("category", "Privacy")
	<-pushed
	mu.Lock()
	assert.Equal(t, 2, results[1].Count)
	mu.Unlock()

	v.SetFilter("category", "")
	<-pushed
	mu.Lock()
	assert.Equal(t, 3, results[2].Count)
	mu.Unlock()
}

func TestView_ToggleSort(t *testing.T) {
	out := make(chan Result, 4)
	v := NewView(DomainTypesPage(SampleDomainTypes()), DefaultSearchDelay, func(r Result) { out <- r })
	defer v.Close()

	v.Refresh()
	initial := (<-out).Items.([]DomainType)
	assert.Equal(t, "archive", initial[0].Name)

	v.ToggleSort("name")
	r := <-out
	require.NotNil(t, r.Query.Sort)
	assert.Equal(t, Desc, r.Query.Sort.Direction)
	assert.Equal(t, "Technical Domain", r.Items.([]DomainType)[0].Name)

	v.ToggleSort("name")
	r = <-out
	assert.Equal(t, Asc, r.Query.Sort.Direction)
	assert.Equal(t, initial, r.Items.([]DomainType))

	v.ToggleSort("name")
	r = <-out
	assert.Equal(t, Desc, r.Query.Sort.Direction)
}

func TestView_ToggleOtherColumnStartsAscending(t *testing.T) {
	out := make(chan Result, 1)
	v := NewView(DomainTypesPage(SampleDomainTypes()), DefaultSearchDelay, func(r Result) { out <- r })
	defer v.Close()

	v.ToggleSort("domainCount")
	r := <-out
	assert.Equal(t, SortState{Field: "domainCount", Direction: Asc}, *r.Query.Sort)
}

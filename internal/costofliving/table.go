// Package costofliving provides the static state and city cost-of-living
// index used to scale retirement spending targets.
package costofliving

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/Noyack/webapp-sub003/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed data/col.yaml
var defaultData []byte

// NationalAverage is the index value for an average-cost location
var NationalAverage = decimal.NewFromInt(100)

// Source tells where a looked-up index came from
type Source string

const (
	SourceExplicit Source = "explicit"
	SourceCity     Source = "city"
	SourceState    Source = "state"
	SourceNational Source = "national"
)

// Entry is one row of the table
type Entry struct {
	State string          `json:"state"`
	City  string          `json:"city,omitempty"`
	Index decimal.Decimal `json:"index"`
}

type tableFile struct {
	States map[string]decimal.Decimal            `yaml:"states"`
	Cities map[string]map[string]decimal.Decimal `yaml:"cities"`
}

// Table is an immutable cost-of-living lookup
type Table struct {
	states map[string]decimal.Decimal
	cities map[string]map[string]Entry // state -> lower-case city -> entry
}

// Parse builds a table from YAML data
func Parse(data []byte) (*Table, error) {
	var file tableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse cost-of-living data: %w", err)
	}

	t := &Table{
		states: make(map[string]decimal.Decimal, len(file.States)),
		cities: make(map[string]map[string]Entry, len(file.Cities)),
	}
	for state, index := range file.States {
		if !index.IsPositive() {
			return nil, fmt.Errorf("state %s: index must be positive", state)
		}
		t.states[normalizeState(state)] = index
	}
	for state, cities := range file.Cities {
		st := normalizeState(state)
		if _, ok := t.states[st]; !ok {
			return nil, fmt.Errorf("cities listed for unknown state %s", state)
		}
		byName := make(map[string]Entry, len(cities))
		for city, index := range cities {
			if !index.IsPositive() {
				return nil, fmt.Errorf("%s, %s: index must be positive", city, state)
			}
			byName[normalizeCity(city)] = Entry{State: st, City: city, Index: index}
		}
		t.cities[st] = byName
	}
	return t, nil
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Default returns the embedded table
func Default() *Table {
	defaultOnce.Do(func() {
		t, err := Parse(defaultData)
		if err != nil {
			panic(err)
		}
		defaultTable = t
	})
	return defaultTable
}

// Lookup returns the index for a city, falling back to its state and then
// to the national average
func (t *Table) Lookup(state, city string) (decimal.Decimal, Source) {
	st := normalizeState(state)
	if city != "" {
		if entry, ok := t.cities[st][normalizeCity(city)]; ok {
			return entry.Index, SourceCity
		}
	}
	if index, ok := t.states[st]; ok {
		return index, SourceState
	}
	return NationalAverage, SourceNational
}

// ForPlan resolves the index a plan should run with. An explicit index in
// the plan wins over its location.
func (t *Table) ForPlan(plan *domain.PlanConfiguration) (decimal.Decimal, Source) {
	if plan.CostOfLivingIndex != nil {
		return *plan.CostOfLivingIndex, SourceExplicit
	}
	if plan.Location == nil {
		return NationalAverage, SourceNational
	}
	return t.Lookup(plan.Location.State, plan.Location.City)
}

// List returns every state and city entry ordered by state, then city
func (t *Table) List() []Entry {
	entries := make([]Entry, 0, len(t.states))
	for state, index := range t.states {
		entries = append(entries, Entry{State: state, Index: index})
		for _, city := range t.cities[state] {
			entries = append(entries, city)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].State != entries[j].State {
			return entries[i].State < entries[j].State
		}
		return entries[i].City < entries[j].City
	})
	return entries
}

// States returns the known state codes in order
func (t *Table) States() []string {
	states := make([]string, 0, len(t.states))
	for s := range t.states {
		states = append(states, s)
	}
	sort.Strings(states)
	return states
}

func normalizeState(s string) string { return strings.ToUpper(strings.TrimSpace(s)) }
func normalizeCity(s string) string  { return strings.ToLower(strings.TrimSpace(s)) }

// Package strategy defines rule-based trading strategies and a registry
// resolving them by name. A strategy is declarative: the rolling windows
// it needs plus an entry and an exit predicate over the working series.
package strategy

import (
	"fmt"
	"sort"

	"BacktestLab/internal/calculator"
)

// Rule evaluates a per-bar condition against the working series. A rule
// may only read index i and earlier, never ahead.
type Rule func(i int, s *calculator.Series) bool

// Strategy bundles the indicator windows and entry/exit rules of one
// trading strategy.
type Strategy struct {
	Name        string
	Description string
	Specs       []calculator.WindowSpec
	Entry       Rule
	Exit        Rule
}

var registry = map[string]Strategy{}

// Register adds a strategy to the registry. It panics on an empty name or
// a duplicate, since registration happens at init time.
func Register(st Strategy) {
	if st.Name == "" {
		panic("strategy: register with empty name")
	}
	if _, exists := registry[st.Name]; exists {
		panic(fmt.Sprintf("strategy: duplicate registration of %q", st.Name))
	}
	registry[st.Name] = st
}

// Lookup resolves a strategy by name.
func Lookup(name string) (Strategy, bool) {
	st, ok := registry[name]
	return st, ok
}

// Names returns all registered strategy names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Package calcexpr reports which functions an input line calls and which
// variables it reads, without evaluating it.
package calcexpr

import (
	"github.com/hashicorp/hcl/v2"
)

// Analysis describes one or more parsed expressions. It is computed once by
// Analyze and never changes afterwards, so it may be shared freely.
type Analysis struct {
	// Functions holds the unique names of called functions, sorted.
	// Namespaced calls keep their `ns::` prefix.
	Functions []string
	// References holds the unique variable traversals, sorted by
	// TraversalKey.
	References []hcl.Traversal
	// Roots holds the unique root names of References, sorted.
	Roots []string
}

// Analyze walks exprs, skipping nils.
func Analyze(exprs ...hcl.Expression) *Analysis {
	present := make([]hcl.Expression, 0, len(exprs))
	for _, expr := range exprs {
		if expr != nil {
			present = append(present, expr)
		}
	}

	refs, funcs := extract(present...)
	return &Analysis{
		Functions:  funcs,
		References: refs,
		Roots:      rootNames(refs),
	}
}

// Unknown returns the called functions for which known reports false, in
// sorted order.
func (a *Analysis) Unknown(known func(name string) bool) []string {
	var out []string
	for _, name := range a.Functions {
		if !known(name) {
			out = append(out, name)
		}
	}
	return out
}

// refs arrive sorted by key, and every key starts with its root name, so
// the roots come out sorted too.
func rootNames(refs []hcl.Traversal) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, t := range refs {
		name := t.RootName()
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

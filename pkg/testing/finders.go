package testing

import (
	"fmt"
	"strings"

	"github.com/go-coat/coat/pkg/core"
	"github.com/go-coat/coat/pkg/graphics"
)

// Finder locates nodes in the attached tree.
type Finder interface {
	// Evaluate returns all matching nodes under root (depth-first pre-order).
	Evaluate(a *core.Arena, root core.Cid) []core.Cid
	// Description returns a human-readable description for error messages.
	Description() string
}

// FinderResult wraps finder results with convenient accessors.
type FinderResult struct {
	ids    []core.Cid
	finder Finder
	arena  *core.Arena
}

func (r FinderResult) description() string {
	if r.finder == nil {
		return "unknown"
	}
	return r.finder.Description()
}

// First returns the first match. Panics if no matches.
func (r FinderResult) First() core.Cid {
	if len(r.ids) == 0 {
		panic(fmt.Sprintf("Finder found no nodes: %s", r.description()))
	}
	return r.ids[0]
}

// FirstOrNone returns the first match, or core.NoCid if none.
func (r FinderResult) FirstOrNone() core.Cid {
	if len(r.ids) == 0 {
		return core.NoCid
	}
	return r.ids[0]
}

// At returns the match at index. Panics if out of range.
func (r FinderResult) At(index int) core.Cid {
	if index < 0 || index >= len(r.ids) {
		panic(fmt.Sprintf("Finder index %d out of range (found %d): %s", index, len(r.ids), r.description()))
	}
	return r.ids[index]
}

// All returns all matches in traversal order.
func (r FinderResult) All() []core.Cid {
	return r.ids
}

// Count returns the number of matches.
func (r FinderResult) Count() int {
	return len(r.ids)
}

// Exists returns true if at least one match was found.
func (r FinderResult) Exists() bool {
	return len(r.ids) > 0
}

// Bounds returns the root-relative rectangle of the first match from the
// latest layout. Panics if no matches.
func (r FinderResult) Bounds() graphics.Rect {
	return r.arena.AbsoluteBounds(r.First())
}

// Size returns the laid out size of the first match. Panics if no matches.
func (r FinderResult) Size() graphics.Size {
	return r.arena.Size(r.First())
}

// Position returns the parent-relative position of the first match.
// Panics if no matches.
func (r FinderResult) Position() graphics.Offset {
	return r.arena.Position(r.First())
}

// Path returns the full debug name of the first match. Panics if no matches.
func (r FinderResult) Path() string {
	return r.arena.FullDebugName(r.First())
}

// --- Concrete finders ---

// nameFinder matches nodes by debug name, which is the declaring Iid.
type nameFinder struct {
	name string
}

func (f *nameFinder) Evaluate(a *core.Arena, root core.Cid) []core.Cid {
	return collectMatches(a, root, func(id core.Cid) bool {
		return a.Name(id) == f.name
	})
}

func (f *nameFinder) Description() string {
	return fmt.Sprintf("ByName(%q)", f.name)
}

// ByName returns a finder that matches nodes declared with the given Iid
// string, such as "add" or "row[2]".
func ByName(name string) Finder {
	return &nameFinder{name: name}
}

// pathFinder matches a node by its full debug name.
type pathFinder struct {
	path string
}

func (f *pathFinder) Evaluate(a *core.Arena, root core.Cid) []core.Cid {
	return collectMatches(a, root, func(id core.Cid) bool {
		return a.FullDebugName(id) == f.path
	})
}

func (f *pathFinder) Description() string {
	return fmt.Sprintf("ByPath(%q)", f.path)
}

// ByPath returns a finder that matches the node with the given full debug
// name, such as "/App/column/add".
func ByPath(path string) Finder {
	return &pathFinder{path: path}
}

// pathSuffixFinder matches nodes whose full debug name ends with a suffix.
type pathSuffixFinder struct {
	suffix string
}

func (f *pathSuffixFinder) Evaluate(a *core.Arena, root core.Cid) []core.Cid {
	return collectMatches(a, root, func(id core.Cid) bool {
		return strings.HasSuffix(a.FullDebugName(id), f.suffix)
	})
}

func (f *pathSuffixFinder) Description() string {
	return fmt.Sprintf("ByPathSuffix(%q)", f.suffix)
}

// ByPathSuffix returns a finder that matches nodes whose full debug name
// ends with suffix, such as "editor/keys".
func ByPathSuffix(suffix string) Finder {
	return &pathSuffixFinder{suffix: suffix}
}

// kindFinder matches nodes of a component kind.
type kindFinder struct {
	kind string
}

func (f *kindFinder) Evaluate(a *core.Arena, root core.Cid) []core.Cid {
	return collectMatches(a, root, func(id core.Cid) bool {
		return a.KindName(id) == f.kind
	})
}

func (f *kindFinder) Description() string {
	return fmt.Sprintf("ByKind(%s)", f.kind)
}

// ByKind returns a finder that matches nodes of the kind registered under
// name, such as "TouchArea".
func ByKind(name string) Finder {
	return &kindFinder{kind: name}
}

// predicateFinder matches nodes satisfying a predicate.
type predicateFinder struct {
	fn   func(a *core.Arena, id core.Cid) bool
	desc string
}

func (f *predicateFinder) Evaluate(a *core.Arena, root core.Cid) []core.Cid {
	return collectMatches(a, root, func(id core.Cid) bool { return f.fn(a, id) })
}

func (f *predicateFinder) Description() string {
	return f.desc
}

// ByPredicate returns a finder that matches nodes satisfying fn.
func ByPredicate(fn func(a *core.Arena, id core.Cid) bool) Finder {
	return &predicateFinder{fn: fn, desc: "ByPredicate(...)"}
}

// descendantFinder finds nodes matching 'matching' that are descendants of
// nodes matching 'of'.
type descendantFinder struct {
	of       Finder
	matching Finder
}

func (f *descendantFinder) Evaluate(a *core.Arena, root core.Cid) []core.Cid {
	ancestors := f.of.Evaluate(a, root)
	if len(ancestors) == 0 {
		return nil
	}
	var results []core.Cid
	seen := make(map[core.Cid]bool)
	for _, ancestor := range ancestors {
		// Search within each ancestor's subtree, skipping the ancestor itself.
		for _, child := range a.Children(ancestor) {
			for _, match := range f.matching.Evaluate(a, child) {
				if !seen[match] {
					seen[match] = true
					results = append(results, match)
				}
			}
		}
	}
	return results
}

func (f *descendantFinder) Description() string {
	return fmt.Sprintf("Descendant(of: %s, matching: %s)", f.of.Description(), f.matching.Description())
}

// Descendant returns a finder that matches nodes satisfying 'matching' that
// are descendants of nodes matching 'of'.
func Descendant(of, matching Finder) Finder {
	return &descendantFinder{of: of, matching: matching}
}

// collectMatches performs a depth-first pre-order traversal, collecting
// nodes that satisfy the predicate.
func collectMatches(a *core.Arena, root core.Cid, predicate func(core.Cid) bool) []core.Cid {
	var results []core.Cid
	a.Walk(root, func(id core.Cid, _ int) bool {
		if predicate(id) {
			results = append(results, id)
		}
		return true
	})
	return results
}

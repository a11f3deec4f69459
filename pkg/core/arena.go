package core

import (
	"log/slog"
	"strings"

	"github.com/go-coat/coat/pkg/errors"
	"github.com/go-coat/coat/pkg/graphics"
)

// Arena stores every node of a component tree in index-aligned columns.
//
// Nodes are allocated on first declaration and, unless [Arena.Sweep] is
// called with a positive TTL, never freed: a component that stops being
// declared keeps its state and resumes with it when declared again.
//
// An Arena is not safe for concurrent use; all passes run on one goroutine.
type Arena struct {
	kinds     []kindID
	tables    []*dispatchTable
	names     []string
	iids      []Iid
	parents   []Cid
	children  [][]Cid
	creations []map[Iid]Cid
	positions []graphics.Offset
	sizes     []graphics.Size
	states    []any
	messages  []any
	events    []any
	gens      []uint32
	lastSeen  []uint64

	free    []uint32
	focused Cid
	frame   uint64
	logger  *slog.Logger
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{focused: NoCid, logger: slog.Default()}
}

// SetLogger sets the logger used for pass diagnostics.
func (a *Arena) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	a.logger = l
}

// Logger returns the arena's diagnostic logger.
func (a *Arena) Logger() *slog.Logger { return a.logger }

// Len returns the number of allocated slots.
func (a *Arena) Len() int { return len(a.kinds) }

// Frame returns the number of View passes run against this arena.
func (a *Arena) Frame() uint64 { return a.frame }

// FreshID allocates an uninitialised slot. Slots are allocated monotonically
// unless reclaimed slots are available from a sweep.
func (a *Arena) FreshID() Cid {
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		return Cid{index: idx, gen: a.gens[idx]}
	}
	idx := uint32(len(a.kinds))
	a.kinds = append(a.kinds, voidKind)
	a.tables = append(a.tables, nil)
	a.names = append(a.names, "")
	a.iids = append(a.iids, Iid{})
	a.parents = append(a.parents, NoCid)
	a.children = append(a.children, nil)
	a.creations = append(a.creations, nil)
	a.positions = append(a.positions, graphics.Offset{})
	a.sizes = append(a.sizes, graphics.Size{})
	a.states = append(a.states, nil)
	a.messages = append(a.messages, nil)
	a.events = append(a.events, nil)
	a.gens = append(a.gens, 0)
	a.lastSeen = append(a.lastSeen, 0)
	return Cid{index: idx}
}

// IsFresh reports whether the slot has been allocated but never initialised.
func (a *Arena) IsFresh(id Cid) bool {
	return a.kinds[a.check("core.Arena.IsFresh", id)] == voidKind
}

// check validates id and returns its slot index. An out-of-range or stale id
// is a broken invariant.
func (a *Arena) check(op string, id Cid) int {
	idx := int(id.index)
	if id == NoCid || idx >= len(a.kinds) {
		errors.Invariant(op, "%s out of range (arena holds %d slots)", id, len(a.kinds))
	}
	if a.gens[idx] != id.gen {
		errors.Invariant(op, "%s is stale (slot generation %d)", id, a.gens[idx])
	}
	return idx
}

// Contains reports whether id names a live slot of this arena.
func (a *Arena) Contains(id Cid) bool {
	idx := int(id.index)
	return id != NoCid && idx < len(a.kinds) && a.gens[idx] == id.gen
}

// Name returns the debug name of a node.
func (a *Arena) Name(id Cid) string { return a.names[a.check("core.Arena.Name", id)] }

// KindName returns the registered name of the node's kind.
func (a *Arena) KindName(id Cid) string {
	if t := a.tables[a.check("core.Arena.KindName", id)]; t != nil {
		return t.name
	}
	return ""
}

// Parent returns the parent of a node, or NoCid for the root.
func (a *Arena) Parent(id Cid) Cid { return a.parents[a.check("core.Arena.Parent", id)] }

// Children returns the children declared for a node in the latest View pass.
// The slice is owned by the arena.
func (a *Arena) Children(id Cid) []Cid { return a.children[a.check("core.Arena.Children", id)] }

// Position returns the node's position relative to its parent.
func (a *Arena) Position(id Cid) graphics.Offset {
	return a.positions[a.check("core.Arena.Position", id)]
}

// Size returns the node's size from the latest layout pass.
func (a *Arena) Size(id Cid) graphics.Size { return a.sizes[a.check("core.Arena.Size", id)] }

// Focused returns the node holding keyboard focus.
func (a *Arena) Focused() (Cid, bool) {
	return a.focused, a.focused != NoCid
}

// ClearFocus drops keyboard focus.
func (a *Arena) ClearFocus() { a.focused = NoCid }

// FullDebugName returns the path of debug names from the root to the node,
// for example "/Root/Container/AddButton".
func (a *Arena) FullDebugName(id Cid) string {
	if !a.Contains(id) {
		return "/" + id.String()
	}
	var parts []string
	for cur := id; cur != NoCid; cur = a.parents[cur.index] {
		parts = append(parts, a.names[cur.index])
	}
	var sb strings.Builder
	for i := len(parts) - 1; i >= 0; i-- {
		sb.WriteByte('/')
		sb.WriteString(parts[i])
	}
	return sb.String()
}

// register initialises a fresh slot for a kind.
func (a *Arena) register(id, parent Cid, iid Iid, name string, table *dispatchTable) int {
	idx := a.check("core.Arena.register", id)
	if a.kinds[idx] != voidKind {
		errors.Invariant("core.Arena.register", "%s is already initialised as %s", id, a.tables[idx].name)
	}
	a.kinds[idx] = table.id
	a.tables[idx] = table
	a.names[idx] = name
	a.iids[idx] = iid
	a.parents[idx] = parent
	a.messages[idx], a.events[idx] = table.newQueues()
	if parent != NoCid {
		pidx := int(parent.index)
		if a.creations[pidx] == nil {
			a.creations[pidx] = make(map[Iid]Cid)
		}
		a.creations[pidx][iid] = id
	}
	return idx
}

// lookup finds the child created under parent with iid.
func (a *Arena) lookup(parent Cid, iid Iid) (Cid, bool) {
	id, ok := a.creations[parent.index][iid]
	return id, ok
}

// takeState detaches a node's state. A node whose state is already detached
// is being re-entered, which is a broken invariant.
func (a *Arena) takeState(op string, idx int) any {
	s := a.states[idx]
	if s == nil {
		errors.Invariant(op, "state of %s is detached", a.FullDebugName(Cid{index: uint32(idx), gen: a.gens[idx]}))
	}
	a.states[idx] = nil
	return s
}

// peekState reads a node's state without detaching it.
func (a *Arena) peekState(op string, idx int) any {
	s := a.states[idx]
	if s == nil {
		errors.Invariant(op, "state of %s is detached", a.FullDebugName(Cid{index: uint32(idx), gen: a.gens[idx]}))
	}
	return s
}

func (a *Arena) cidAt(idx int) Cid {
	return Cid{index: uint32(idx), gen: a.gens[idx]}
}

// isAttached reports whether the node sits on a path of current child lists
// from root.
func (a *Arena) isAttached(root, id Cid) bool {
	for cur := id; cur != root; {
		parent := a.parents[cur.index]
		if parent == NoCid {
			return false
		}
		found := false
		for _, c := range a.children[parent.index] {
			if c == cur {
				found = true
				break
			}
		}
		if !found {
			return false
		}
		cur = parent
	}
	return true
}

// Walk visits the attached subtree of id in pre-order. Returning false from
// fn skips the node's children.
func (a *Arena) Walk(id Cid, fn func(id Cid, depth int) bool) {
	a.check("core.Arena.Walk", id)
	a.walk(id, 0, fn)
}

func (a *Arena) walk(id Cid, depth int, fn func(Cid, int) bool) {
	if !fn(id, depth) {
		return
	}
	for _, c := range a.children[id.index] {
		a.walk(c, depth+1, fn)
	}
}

// Sweep reclaims nodes that have not been declared for more than ttl View
// passes, together with their descendants. Reclaimed slots are reused by
// [Arena.FreshID] with a bumped generation, so stale Cids are detected.
// A ttl of zero or less disables reclamation. root is never reclaimed.
// It returns the number of slots reclaimed.
func (a *Arena) Sweep(root Cid, ttl uint64) int {
	if ttl == 0 || a.frame <= ttl {
		return 0
	}
	a.check("core.Arena.Sweep", root)
	horizon := a.frame - ttl
	reclaimed := 0
	for idx := range a.kinds {
		id := a.cidAt(idx)
		if id == root || a.kinds[idx] == voidKind || a.lastSeen[idx] >= horizon {
			continue
		}
		parent := a.parents[idx]
		if parent != NoCid && a.kinds[parent.index] != voidKind && a.lastSeen[parent.index] < horizon && parent != root {
			// Reclaimed together with the parent.
			continue
		}
		reclaimed += a.reclaim(idx)
	}
	if reclaimed > 0 {
		a.logger.Debug("arena sweep", "reclaimed", reclaimed, "frame", a.frame)
	}
	return reclaimed
}

func (a *Arena) reclaim(idx int) int {
	n := 1
	for _, c := range a.creations[idx] {
		if a.kinds[c.index] != voidKind && a.gens[c.index] == c.gen {
			n += a.reclaim(int(c.index))
		}
	}
	if parent := a.parents[idx]; parent != NoCid {
		if m := a.creations[parent.index]; m != nil && m[a.iids[idx]] == a.cidAt(idx) {
			delete(m, a.iids[idx])
		}
	}
	if a.focused == a.cidAt(idx) {
		a.focused = NoCid
	}
	a.kinds[idx] = voidKind
	a.tables[idx] = nil
	a.names[idx] = ""
	a.iids[idx] = Iid{}
	a.parents[idx] = NoCid
	a.children[idx] = nil
	a.creations[idx] = nil
	a.positions[idx] = graphics.Offset{}
	a.sizes[idx] = graphics.Size{}
	a.states[idx] = nil
	a.messages[idx] = nil
	a.events[idx] = nil
	a.lastSeen[idx] = 0
	a.gens[idx]++
	a.free = append(a.free, uint32(idx))
	return n
}

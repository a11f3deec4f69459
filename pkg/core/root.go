package core

import (
	"github.com/go-coat/coat/pkg/graphics"
)

// Root binds a root component kind to its props so callers that do not know
// the kind's type parameters, such as the engine, can run View.
type Root struct {
	name string
	view func(a *Arena, id Cid) int
}

// Mount returns a Root that declares kind with props on every View pass.
func Mount[P, S, M, E any](kind *Kind[P, S, M, E], props P) *Root {
	return &Root{
		name: kind.Name(),
		view: func(a *Arena, id Cid) int { return RunView(a, id, kind, props) },
	}
}

// Name returns the root kind's name.
func (r *Root) Name() string { return r.name }

// View runs the View pass for the root at id. See [RunView].
func (r *Root) View(a *Arena, id Cid) int { return r.view(a, id) }

// AbsoluteBounds returns a node's rectangle in root coordinates, from the
// latest layout pass.
func (a *Arena) AbsoluteBounds(id Cid) graphics.Rect {
	idx := a.check("core.Arena.AbsoluteBounds", id)
	origin := a.positions[idx]
	for cur := a.parents[idx]; cur != NoCid; cur = a.parents[cur.index] {
		origin = origin.Add(a.positions[cur.index])
	}
	return graphics.Rect{Origin: origin, Size: a.sizes[idx]}
}

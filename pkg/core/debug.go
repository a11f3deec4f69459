package core

import (
	"github.com/go-coat/coat/pkg/graphics"
)

// NodeInfo is a read-only snapshot of one attached node, used by debug
// tooling.
type NodeInfo struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Path     string          `json:"path"`
	Kind     string          `json:"kind"`
	Position graphics.Offset `json:"position"`
	Size     graphics.Size   `json:"size"`
	Focused  bool            `json:"focused,omitempty"`
	Children []NodeInfo      `json:"children,omitempty"`
}

// Snapshot copies the attached tree under root. It returns nil for a root
// that has never been through View.
func (a *Arena) Snapshot(root Cid) *NodeInfo {
	idx := a.check("core.Arena.Snapshot", root)
	if a.kinds[idx] == voidKind {
		return nil
	}
	info := a.snapshot(root)
	return &info
}

func (a *Arena) snapshot(id Cid) NodeInfo {
	idx := int(id.index)
	info := NodeInfo{
		ID:       id.String(),
		Name:     a.names[idx],
		Path:     a.FullDebugName(id),
		Kind:     a.tables[idx].name,
		Position: a.positions[idx],
		Size:     a.sizes[idx],
		Focused:  a.focused == id,
	}
	if n := len(a.children[idx]); n > 0 {
		info.Children = make([]NodeInfo, 0, n)
		for _, c := range a.children[idx] {
			info.Children = append(info.Children, a.snapshot(c))
		}
	}
	return info
}

// Count returns the number of nodes in the snapshot.
func (n *NodeInfo) Count() int {
	if n == nil {
		return 0
	}
	total := 1
	for i := range n.Children {
		total += n.Children[i].Count()
	}
	return total
}

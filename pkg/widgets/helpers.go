package widgets

import (
	"github.com/go-coat/coat/pkg/core"
	"github.com/go-coat/coat/pkg/errors"
)

// reportIgnoredContent flags content attached to a leaf component.
func reportIgnoredContent(op string, children []core.Cid, ctx *core.LayoutContext) {
	if len(children) != 0 {
		errors.ReportUsage(op, ctx.FullDebugName(),
			"leaf component has %d children attached, they are ignored", len(children))
	}
}

// requireOneChild flags a container that needs exactly one child. It
// reports whether there is a child to lay out.
func requireOneChild(op string, children []core.Cid, ctx *core.LayoutContext) bool {
	if len(children) != 1 {
		errors.ReportUsage(op, ctx.FullDebugName(),
			"must have exactly 1 child but it has %d", len(children))
	}
	return len(children) > 0
}

package widgets

import (
	"github.com/go-coat/coat/pkg/core"
	"github.com/go-coat/coat/pkg/graphics"
	"github.com/go-coat/coat/pkg/layout"
)

// PaddingProps configures a [Padding].
//
// Use [layout.EdgeInsets] helpers to create padding values:
//
//	widgets.PaddingProps{Insets: layout.EdgeInsetsAll(16)}
//	widgets.PaddingProps{Insets: layout.EdgeInsetsSymmetric(24, 12)}
type PaddingProps struct {
	Insets layout.EdgeInsets
}

type padding struct {
	core.Base[PaddingProps, PaddingProps, core.None, core.None]
}

// Padding insets its single child. The child is offered the bounded space
// left after the insets and the padding's size is the child's plus the
// insets.
var Padding = core.Define[PaddingProps, PaddingProps, core.None, core.None]("Padding", padding{})

func (padding) Init(p PaddingProps) PaddingProps { return p }

func (padding) DeriveState(p PaddingProps, s *PaddingProps) { *s = p }

func (padding) Layout(s *PaddingProps, children []core.Cid, c layout.Constraints, ctx *core.LayoutContext) graphics.Size {
	if !requireOneChild("widgets.Padding", children, ctx) {
		return graphics.Size{}
	}
	insets := s.Insets
	size := ctx.Size(children[0], c.Deflate(insets))
	ctx.Position(children[0], graphics.Offset{X: insets.Left, Y: insets.Top})
	return graphics.Size{
		Width:  size.Width + insets.Horizontal(),
		Height: size.Height + insets.Vertical(),
	}
}

package graphics

// DisplayListBuilder receives draw primitives from the render pass.
// Renderer backends implement it directly or consume a recorded [DisplayList].
type DisplayListBuilder interface {
	// FillRect pushes a solid rectangle.
	FillRect(rect Rect, color Color)
	// DrawGlyphs pushes a run of positioned glyphs bound to one font instance.
	DrawGlyphs(run GlyphRun)
}

// FontInstance identifies a loaded font at a specific size.
type FontInstance struct {
	Family string
	Size   float64
}

// Glyph is a single shaped glyph placed in absolute coordinates.
type Glyph struct {
	// Index is the glyph index within the font.
	Index uint32
	// Rune is the character the glyph was shaped from. Cell based
	// backends draw the rune instead of the glyph outline.
	Rune rune
	// Bounds is the glyph box in absolute coordinates.
	Bounds Rect
}

// GlyphRun is a sequence of glyphs drawn with one font instance and color.
type GlyphRun struct {
	Font   FontInstance
	Color  Color
	Glyphs []Glyph
	// Clip limits drawing to the bounds of the emitting component.
	Clip Rect
}

// DisplayOp is a recorded drawing primitive.
type DisplayOp interface {
	replay(b DisplayListBuilder)
}

// FillRectOp is the recorded form of [DisplayListBuilder.FillRect].
type FillRectOp struct {
	Rect  Rect
	Color Color
}

func (op FillRectOp) replay(b DisplayListBuilder) { b.FillRect(op.Rect, op.Color) }

// GlyphRunOp is the recorded form of [DisplayListBuilder.DrawGlyphs].
type GlyphRunOp struct {
	Run GlyphRun
}

func (op GlyphRunOp) replay(b DisplayListBuilder) { b.DrawGlyphs(op.Run) }

// DisplayList records primitives in push order (painter's algorithm).
// The zero value is an empty list ready for recording.
type DisplayList struct {
	ops  []DisplayOp
	size Size
}

// NewDisplayList returns an empty list for a surface of the given size.
func NewDisplayList(size Size) *DisplayList {
	return &DisplayList{size: size}
}

// FillRect records a rectangle.
func (d *DisplayList) FillRect(rect Rect, color Color) {
	d.ops = append(d.ops, FillRectOp{Rect: rect, Color: color})
}

// DrawGlyphs records a glyph run. The glyph slice is copied.
func (d *DisplayList) DrawGlyphs(run GlyphRun) {
	glyphs := make([]Glyph, len(run.Glyphs))
	copy(glyphs, run.Glyphs)
	run.Glyphs = glyphs
	d.ops = append(d.ops, GlyphRunOp{Run: run})
}

// Ops returns the recorded operations. The slice must not be modified.
func (d *DisplayList) Ops() []DisplayOp {
	return d.ops
}

// Len returns the number of recorded operations.
func (d *DisplayList) Len() int {
	return len(d.ops)
}

// Size returns the surface size the list was recorded for.
func (d *DisplayList) Size() Size {
	return d.size
}

// Reset clears the list for reuse, keeping the allocated capacity.
func (d *DisplayList) Reset(size Size) {
	clear(d.ops)
	d.ops = d.ops[:0]
	d.size = size
}

// Replay pushes every recorded operation onto another builder in order.
func (d *DisplayList) Replay(b DisplayListBuilder) {
	for _, op := range d.ops {
		op.replay(b)
	}
}

package testing

import (
	"fmt"
	"math"

	"github.com/go-coat/coat/pkg/graphics"
)

// DisplayOp represents a serialized drawing primitive.
type DisplayOp struct {
	Op     string         `json:"op"`
	Params map[string]any `json:"params,omitempty"`
}

// serializingBuilder implements graphics.DisplayListBuilder and records
// primitives as DisplayOp.
type serializingBuilder struct {
	ops []DisplayOp
}

func (b *serializingBuilder) FillRect(rect graphics.Rect, color graphics.Color) {
	b.ops = append(b.ops, DisplayOp{
		Op:     "fillRect",
		Params: sortedMap("rect", serializeRect(rect), "color", serializeColor(color)),
	})
}

func (b *serializingBuilder) DrawGlyphs(run graphics.GlyphRun) {
	text := make([]rune, 0, len(run.Glyphs))
	origin := graphics.Offset{}
	if len(run.Glyphs) > 0 {
		origin = run.Glyphs[0].Bounds.Origin
	}
	for _, g := range run.Glyphs {
		text = append(text, g.Rune)
	}
	b.ops = append(b.ops, DisplayOp{
		Op: "drawGlyphs",
		Params: sortedMap(
			"text", string(text),
			"family", run.Font.Family,
			"size", round2(run.Font.Size),
			"color", serializeColor(run.Color),
			"origin", [2]float64{round2(origin.X), round2(origin.Y)},
			"clip", serializeRect(run.Clip),
		),
	})
}

// serializeDisplayList replays a DisplayList through the serializing builder.
func serializeDisplayList(dl *graphics.DisplayList) []DisplayOp {
	if dl == nil {
		return nil
	}
	b := &serializingBuilder{}
	dl.Replay(b)
	return b.ops
}

// --- Serialization helpers ---

// serializeRect flattens a rect to [left, top, width, height].
func serializeRect(r graphics.Rect) [4]float64 {
	return [4]float64{round2(r.Left()), round2(r.Top()), round2(r.Size.Width), round2(r.Size.Height)}
}

func serializeColor(c graphics.Color) string {
	return fmt.Sprintf("0x%08X", uint32(c))
}

// round2 rounds a float64 to 2 decimal places.
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// sortedMap creates a map from alternating key-value pairs. JSON encoding
// sorts map keys, which keeps snapshot output stable.
func sortedMap(kvs ...any) map[string]any {
	m := make(map[string]any, len(kvs)/2)
	for i := 0; i+1 < len(kvs); i += 2 {
		m[kvs[i].(string)] = kvs[i+1]
	}
	return m
}

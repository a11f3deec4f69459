package text

import (
	stderrors "errors"
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/go-coat/coat/pkg/errors"
	"github.com/go-coat/coat/pkg/graphics"
)

const (
	// DefaultFamily is the family name of the bundled Go Regular font.
	DefaultFamily = "go"
	// BasicFamily names the fixed 7x13 bitmap face used as a fallback.
	BasicFamily = "basic"

	defaultFontSize = 12
)

type faceKey struct {
	family string
	size   float64
}

// FontManager registers OpenType fonts and shapes text with them.
// It is safe for concurrent use.
type FontManager struct {
	mu          sync.Mutex
	fonts       map[string]*opentype.Font
	faces       map[faceKey]font.Face
	buf         sfnt.Buffer
	defaultName string
}

var (
	defaultFontManager     *FontManager
	defaultFontManagerErr  error
	defaultFontManagerOnce sync.Once
)

// NewFontManager creates a font manager with Go Regular registered as the
// default family.
func NewFontManager() (*FontManager, error) {
	m := &FontManager{
		fonts:       make(map[string]*opentype.Font),
		faces:       make(map[faceKey]font.Face),
		defaultName: DefaultFamily,
	}
	if err := m.RegisterFont(DefaultFamily, goregular.TTF); err != nil {
		return nil, err
	}
	return m, nil
}

// DefaultFontManagerErr returns a shared font manager with the bundled font.
func DefaultFontManagerErr() (*FontManager, error) {
	defaultFontManagerOnce.Do(func() {
		manager, err := NewFontManager()
		if err != nil {
			defaultFontManagerErr = err
			errors.Report(&errors.CoatError{
				Op:   "text.DefaultFontManager",
				Kind: errors.KindBackend,
				Err:  err,
			})
			return
		}
		defaultFontManager = manager
	})
	return defaultFontManager, defaultFontManagerErr
}

// DefaultFontManager returns the shared font manager, or nil if the bundled
// font could not be parsed.
func DefaultFontManager() *FontManager {
	manager, _ := DefaultFontManagerErr()
	return manager
}

// RegisterFont registers a font family from TrueType or OpenType data.
func (m *FontManager) RegisterFont(name string, data []byte) error {
	if name == "" {
		return stderrors.New("font name required")
	}
	parsed, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("parse font %q: %w", name, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fonts[name] = parsed
	for key, face := range m.faces {
		if key.family == name {
			face.Close()
			delete(m.faces, key)
		}
	}
	return nil
}

// Families returns the number of registered families.
func (m *FontManager) Families() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.fonts)
}

// face resolves a face for the family and size. Unknown families fall back to
// the default family; if that fails too the basic bitmap face is used.
// The caller must hold m.mu.
func (m *FontManager) face(family string, size float64) (font.Face, *opentype.Font, string) {
	if family == "" {
		family = m.defaultName
	}
	if family == BasicFamily {
		return basicfont.Face7x13, nil, BasicFamily
	}
	parsed, ok := m.fonts[family]
	if !ok {
		family = m.defaultName
		if parsed, ok = m.fonts[family]; !ok {
			return basicfont.Face7x13, nil, BasicFamily
		}
	}
	key := faceKey{family: family, size: size}
	if face, ok := m.faces[key]; ok {
		return face, parsed, family
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		errors.Report(&errors.CoatError{
			Op:   "text.FontManager.face",
			Kind: errors.KindBackend,
			Err:  err,
		})
		return basicfont.Face7x13, nil, BasicFamily
	}
	m.faces[key] = face
	return face, parsed, family
}

// Layout shapes a single line of text. Each glyph's bounds is its advance
// box spanning the full line height, which keeps caret placement and hit
// testing consistent across faces.
func (m *FontManager) Layout(s string, f Font, size float64) TextLayout {
	if size <= 0 {
		size = defaultFontSize
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	face, parsed, family := m.face(f.Family, size)
	metrics := face.Metrics()
	ascent := toFloat(metrics.Ascent)
	descent := toFloat(metrics.Descent)
	height := ascent + descent

	layout := TextLayout{
		Text:    s,
		Font:    graphics.FontInstance{Family: family, Size: size},
		Ascent:  ascent,
		Descent: descent,
	}
	var (
		pen  fixed.Int26_6
		prev rune = -1
	)
	for cluster, r := range s {
		if prev >= 0 {
			pen += face.Kern(prev, r)
		}
		advance, ok := face.GlyphAdvance(r)
		if !ok {
			advance, _ = face.GlyphAdvance('?')
		}
		layout.Glyphs = append(layout.Glyphs, LayoutGlyph{
			Index:   m.glyphIndex(parsed, r),
			Rune:    r,
			Bounds:  graphics.RectFromLTWH(toFloat(pen), 0, toFloat(advance), height),
			Advance: toFloat(advance),
			Cluster: cluster,
		})
		pen += advance
		prev = r
	}
	layout.Size = graphics.Size{Width: toFloat(pen), Height: height}
	return layout
}

func (m *FontManager) glyphIndex(parsed *opentype.Font, r rune) uint32 {
	if parsed == nil {
		return uint32(r)
	}
	idx, err := parsed.GlyphIndex(&m.buf, r)
	if err != nil {
		return 0
	}
	return uint32(idx)
}

func toFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

package text

import (
	"math"
	"strings"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

// basicFontSize is the pixel height of gg's built-in fallback face.
const basicFontSize = 13.0

// Measurer measures and wraps text. With no font file configured, or when the
// font cannot be loaded, it scales gg's built-in face to the requested size.
type Measurer struct {
	fontPath string

	mu    sync.Mutex
	faces map[float64]font.Face
}

// NewMeasurer creates a measurer for the given TrueType font path ("" for the
// built-in face).
func NewMeasurer(fontPath string) *Measurer {
	return &Measurer{fontPath: fontPath, faces: make(map[float64]font.Face)}
}

// face returns the loaded face for fontSize, or nil and the factor to scale
// gg's built-in face by.
func (m *Measurer) face(fontSize float64) (font.Face, float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fontPath == "" {
		return nil, fontSize / basicFontSize
	}
	face, ok := m.faces[fontSize]
	if !ok {
		f, err := gg.LoadFontFace(m.fontPath, fontSize)
		if err != nil {
			// Remember the failure so we do not retry every measurement.
			m.fontPath = ""
			return nil, fontSize / basicFontSize
		}
		m.faces[fontSize] = f
		face = f
	}
	return face, 1
}

// context returns a scratch context with the right face and the factor to
// scale its measurements by.
func (m *Measurer) context(fontSize float64) (*gg.Context, float64) {
	dc := gg.NewContext(1, 1)
	face, scale := m.face(fontSize)
	if face != nil {
		dc.SetFontFace(face)
	}
	return dc, scale
}

// LineHeight returns the distance between baselines of wrapped lines.
func (m *Measurer) LineHeight(fontSize float64) float64 {
	dc, scale := m.context(fontSize)
	return dc.FontHeight() * scale * 1.2
}

// Draw paints s onto dc with its baseline at (x, y), using the face Measure
// measures with. The current color of dc is used.
func (m *Measurer) Draw(dc *gg.Context, s string, fontSize, x, y float64) {
	face, scale := m.face(fontSize)
	dc.Push()
	defer dc.Pop()
	if face != nil {
		dc.SetFontFace(face)
		dc.DrawString(s, x, y)
		return
	}
	dc.Translate(x, y)
	dc.Scale(scale, scale)
	dc.DrawString(s, 0, 0)
}

// Measure returns the size of text wrapped to maxWidth. A non-positive or
// infinite maxWidth disables wrapping.
func (m *Measurer) Measure(text string, fontSize, maxWidth float64) (width, height float64) {
	lines := m.BreakLines(text, fontSize, maxWidth)
	dc, scale := m.context(fontSize)
	lineHeight := m.LineHeight(fontSize)
	for _, line := range lines {
		w, _ := dc.MeasureString(line)
		width = math.Max(width, w*scale)
	}
	return width, lineHeight * float64(len(lines))
}

// BreakLines breaks text into lines that fit within maxWidth. Explicit
// newlines always break.
func (m *Measurer) BreakLines(text string, fontSize, maxWidth float64) []string {
	var out []string
	for _, para := range strings.Split(text, "\n") {
		out = append(out, m.breakParagraph(para, fontSize, maxWidth)...)
	}
	return out
}

func (m *Measurer) breakParagraph(text string, fontSize, maxWidth float64) []string {
	dc, scale := m.context(fontSize)
	measure := func(s string) float64 {
		w, _ := dc.MeasureString(s)
		return w * scale
	}
	if maxWidth <= 0 || math.IsInf(maxWidth, 1) || measure(text) <= maxWidth {
		return []string{text}
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{text}
	}

	lines := make([]string, 0)
	currentLine := ""
	for _, word := range words {
		testLine := currentLine
		if testLine != "" {
			testLine += " "
		}
		testLine += word

		if measure(testLine) <= maxWidth {
			currentLine = testLine
		} else {
			// Word doesn't fit, start new line
			if currentLine != "" {
				lines = append(lines, currentLine)
			}
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}
	return lines
}

package software

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/fzipp/bmfont"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Point size for TrueType and OpenType HUD fonts.
const hudFontSize = 14

// HUD draws a few lines of status text in the top left corner. It uses the
// built-in 7x13 face unless a BMFont or TrueType file is loaded.
type HUD struct {
	bitmap *bmfont.BitmapFont
	face   font.Face
	color  color.Color
	lines  []string
}

func NewHUD() *HUD {
	return &HUD{
		face:  basicfont.Face7x13,
		color: color.RGBA{R: 0xe6, G: 0xe6, B: 0xe6, A: 0xff},
	}
}

// LoadHUD reads a font for the HUD: .ttf, .otf or .ttc files are rasterized
// with opentype, anything else is taken as an AngelCode .fnt descriptor.
func LoadHUD(path string) (*HUD, error) {
	h := NewHUD()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ttf", ".otf", ".ttc":
		face, err := loadFace(path)
		if err != nil {
			return nil, fmt.Errorf("loading HUD font: %w", err)
		}
		h.face = face
	default:
		f, err := bmfont.Load(path)
		if err != nil {
			return nil, fmt.Errorf("loading HUD font: %w", err)
		}
		h.bitmap = f
	}
	return h, nil
}

func loadFace(path string) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	// A collection holds several faces; the first one is the regular style.
	collection, err := opentype.ParseCollection(data)
	if err != nil {
		return nil, err
	}
	f, err := collection.Font(0)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    hudFontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

func (h *HUD) SetLines(lines ...string) {
	h.lines = append(h.lines[:0], lines...)
}

func (h *HUD) Lines() []string {
	return h.lines
}

func (h *HUD) lineHeight() int {
	if h.bitmap != nil {
		return h.bitmap.Descriptor.Common.LineHeight
	}
	return h.face.Metrics().Height.Ceil()
}

func (h *HUD) Draw(dst draw.Image) {
	if len(h.lines) == 0 {
		return
	}
	const margin = 4
	lh := h.lineHeight()

	if h.bitmap != nil {
		for i, line := range h.lines {
			h.bitmap.DrawText(dst, image.Pt(margin, margin+i*lh), line)
		}
		return
	}

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(h.color),
		Face: h.face,
	}
	ascent := h.face.Metrics().Ascent.Ceil()
	for i, line := range h.lines {
		d.Dot = fixed.P(margin, margin+ascent+i*lh)
		d.DrawString(line)
	}
}

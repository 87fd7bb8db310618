package capture

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"

	"github.com/YannUFLL/HumanGL/engine/core"
)

// Format is an output image encoding.
type Format uint8

const (
	FormatPNG Format = iota
	FormatWebP
	FormatTGA
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "png":
		return FormatPNG, nil
	case "webp":
		return FormatWebP, nil
	case "tga":
		return FormatTGA, nil
	}
	return 0, fmt.Errorf("%q: %w", s, core.ErrUnknownFormat)
}

func (f Format) String() string {
	return f.Ext()
}

// Ext is the file extension without the dot.
func (f Format) Ext() string {
	switch f {
	case FormatWebP:
		return "webp"
	case FormatTGA:
		return "tga"
	default:
		return "png"
	}
}

func (f Format) Encode(w io.Writer, img image.Image) error {
	switch f {
	case FormatWebP:
		// Lossless VP8L.
		return nativewebp.Encode(w, img, nil)
	case FormatTGA:
		return tga.Encode(w, img)
	default:
		return png.Encode(w, img)
	}
}

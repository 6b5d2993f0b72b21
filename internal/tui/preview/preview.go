// Package preview renders emoji as large block art using half-block
// characters. Color emoji fonts store bitmaps the outline rasterizer cannot
// draw, so only monochrome emoji fonts are used.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// FontPaths lists monochrome fonts with emoji outlines, tried in order.
var FontPaths = []string{
	// Linux
	"/usr/share/fonts/truetype/noto/NotoEmoji-Regular.ttf",
	"/usr/share/fonts/noto/NotoEmoji-Regular.ttf",
	"/usr/share/fonts/google-noto-emoji/NotoEmoji-Regular.ttf",
	"/usr/share/fonts/truetype/ancient-scripts/Symbola_hint.ttf",
	"/usr/share/fonts/TTF/Symbola.ttf",
	// macOS
	"/Library/Fonts/Symbola.ttf",
	"/System/Library/Fonts/Apple Symbols.ttf",
	// Windows
	"C:\\Windows\\Fonts\\seguisym.ttf",
}

const (
	fontSize  = 64
	threshold = 40
	padding   = 4
)

// Renderer draws emoji with one font and caches the results.
type Renderer struct {
	font *opentype.Font
	face font.Face

	mu    sync.Mutex
	buf   sfnt.Buffer
	cache map[string]string
}

// Load returns a Renderer for the first font in paths that can be parsed.
func Load(paths []string) (*Renderer, error) {
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		fnt, err := parseFont(data)
		if err != nil {
			continue
		}
		if r, err := NewRenderer(fnt); err == nil {
			return r, nil
		}
	}
	return nil, fmt.Errorf("no emoji font found in %d locations", len(paths))
}

// parseFont accepts a single font or the first font of a collection.
func parseFont(data []byte) (*opentype.Font, error) {
	if coll, err := opentype.ParseCollection(data); err == nil && coll.NumFonts() > 0 {
		return coll.Font(0)
	}
	return opentype.Parse(data)
}

// NewRenderer creates a Renderer drawing with fnt.
func NewRenderer(fnt *opentype.Font) (*Renderer, error) {
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{Size: fontSize, DPI: 72})
	if err != nil {
		return nil, fmt.Errorf("creating font face: %w", err)
	}
	return &Renderer{font: fnt, face: face, cache: make(map[string]string)}, nil
}

// Render draws the first code point of emoji into a block of cols x rows
// terminal cells. It returns "" when the font has no glyph for it.
func (r *Renderer) Render(emoji string, cols, rows int) string {
	if r == nil || emoji == "" || cols <= 0 || rows <= 0 {
		return ""
	}

	key := fmt.Sprintf("%s/%dx%d", emoji, cols, rows)
	r.mu.Lock()
	defer r.mu.Unlock()

	if cached, ok := r.cache[key]; ok {
		return cached
	}
	rendered := r.render(emoji, cols, rows)
	r.cache[key] = rendered
	return rendered
}

func (r *Renderer) render(emoji string, cols, rows int) string {
	base := []rune(emoji)[0]
	if idx, err := r.font.GlyphIndex(&r.buf, base); err != nil || idx == 0 {
		return ""
	}

	bounds, _, _ := r.face.GlyphBounds(base)
	glyphWidth := (bounds.Max.X - bounds.Min.X).Ceil()
	glyphHeight := (bounds.Max.Y - bounds.Min.Y).Ceil()

	srcWidth := max(glyphWidth+padding*2, fontSize)
	srcHeight := max(glyphHeight+padding*2, fontSize)

	src := image.NewGray(image.Rect(0, 0, srcWidth, srcHeight))
	draw.Draw(src, src.Bounds(), &image.Uniform{color.Black}, image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  src,
		Src:  image.White,
		Face: r.face,
		Dot:  fixed.P((srcWidth-glyphWidth)/2-bounds.Min.X.Floor(), srcHeight-padding-bounds.Max.Y.Ceil()),
	}
	d.DrawString(string(base))

	return halfBlocks(scaleDown(src, cols, rows*2), cols, rows)
}

// scaleDown scales a grayscale image using area averaging.
func scaleDown(src *image.Gray, dstWidth, dstHeight int) *image.Gray {
	srcWidth := src.Bounds().Dx()
	srcHeight := src.Bounds().Dy()

	dst := image.NewGray(image.Rect(0, 0, dstWidth, dstHeight))

	xRatio := float64(srcWidth) / float64(dstWidth)
	yRatio := float64(srcHeight) / float64(dstHeight)

	for dy := 0; dy < dstHeight; dy++ {
		for dx := 0; dx < dstWidth; dx++ {
			sx1, sy1 := int(float64(dx)*xRatio), int(float64(dy)*yRatio)
			sx2 := min(int(float64(dx+1)*xRatio), srcWidth)
			sy2 := min(int(float64(dy+1)*yRatio), srcHeight)

			var sum, count int
			for sy := sy1; sy < sy2; sy++ {
				for sx := sx1; sx < sx2; sx++ {
					sum += int(src.GrayAt(sx, sy).Y)
					count++
				}
			}
			if count > 0 {
				dst.SetGray(dx, dy, color.Gray{Y: uint8(sum / count)})
			}
		}
	}
	return dst
}

// halfBlocks maps each pair of vertical pixels to one of ▀▄█ or a space.
func halfBlocks(img *image.Gray, cols, rows int) string {
	var b strings.Builder

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			top := lit(img, col, row*2)
			bottom := lit(img, col, row*2+1)

			switch {
			case top && bottom:
				b.WriteRune('█')
			case top:
				b.WriteRune('▀')
			case bottom:
				b.WriteRune('▄')
			default:
				b.WriteRune(' ')
			}
		}
		if row < rows-1 {
			b.WriteRune('\n')
		}
	}
	return b.String()
}

func lit(img *image.Gray, x, y int) bool {
	if !(image.Point{X: x, Y: y}).In(img.Bounds()) {
		return false
	}
	return img.GrayAt(x, y).Y > threshold
}

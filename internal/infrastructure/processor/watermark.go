package processor

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"

	"github.com/alexai/greeting-cards/pkg/logger"
	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	watermarkText = "AlexAI Cards"

	// Glyph height as a fraction of image height, margin as a fraction of the
	// corresponding image dimension.
	glyphHeightRatio = 0.025
	marginRatio      = 0.02

	// White at 60% opacity.
	watermarkAlpha = 153

	jpegQuality = 95
)

// fontCandidates is probed in order before falling back to the embedded
// go-regular face and finally the fixed bitmap face.
var fontCandidates = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSerif.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationSerif-Regular.ttf",
	"/System/Library/Fonts/Supplemental/Georgia.ttf",
	"/System/Library/Fonts/Supplemental/Times New Roman.ttf",
	"C:\\Windows\\Fonts\\georgia.ttf",
}

// Watermarker brands generated cards. The watermark is cosmetic: every failure
// path degrades to returning the input unchanged instead of failing the
// pipeline.
type Watermarker struct {
	logger logger.Interface
}

func New(l logger.Interface) *Watermarker {
	return &Watermarker{logger: l}
}

func (w *Watermarker) Apply(_ context.Context, data []byte) []byte {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		w.logger.Warn("Watermarker - Apply - imaging.Decode, skipping watermark: %v", err)

		return data
	}

	out, err := w.composite(img)
	if err != nil {
		w.logger.Warn("Watermarker - Apply - composite, skipping watermark: %v", err)

		return data
	}

	return out
}

func (w *Watermarker) composite(img image.Image) ([]byte, error) {
	base := imaging.Clone(img)
	bounds := base.Bounds()

	face := loadFace(float64(bounds.Dy()) * glyphHeightRatio)
	if face == nil {
		return nil, fmt.Errorf("no usable font face")
	}
	defer face.Close()

	overlay := image.NewNRGBA(bounds)
	d := &font.Drawer{
		Dst:  overlay,
		Src:  image.NewUniform(color.NRGBA{R: 255, G: 255, B: 255, A: watermarkAlpha}),
		Face: face,
	}

	textBounds, advance := font.BoundString(face, watermarkText)
	margin := int(float64(bounds.Dx()) * marginRatio)

	// Anchor on the measured glyph box, not the face's nominal descent:
	// descender-free text would otherwise float above the margin.
	d.Dot = anchorDot(bounds.Max, textBounds, advance, margin)
	d.DrawString(watermarkText)

	draw.Draw(base, bounds, overlay, image.Point{}, draw.Over)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, base, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("imaging.Encode: %w", err)
	}

	return buf.Bytes(), nil
}

// anchorDot returns the drawing origin that puts the text's glyph box
// lower-right corner margin pixels in from max.
func anchorDot(max image.Point, textBounds fixed.Rectangle26_6, advance fixed.Int26_6, margin int) fixed.Point26_6 {
	return fixed.P(
		max.X-advance.Ceil()-margin,
		max.Y-margin-textBounds.Max.Y.Ceil(),
	)
}

// loadFace tries the elegant on-disk candidates, then the embedded go-regular
// face, then the fixed bitmap face. The bitmap face ignores the requested size
// but keeps the watermark alive on minimal systems.
func loadFace(pixelHeight float64) font.Face {
	opts := &opentype.FaceOptions{
		Size:    pixelHeight, // points == pixels at 72 DPI
		DPI:     72,
		Hinting: font.HintingFull,
	}

	for _, path := range fontCandidates {
		raw, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		ft, err := opentype.Parse(raw)
		if err != nil {
			continue
		}
		face, err := opentype.NewFace(ft, opts)
		if err != nil {
			continue
		}
		return face
	}

	if ft, err := opentype.Parse(goregular.TTF); err == nil {
		if face, err := opentype.NewFace(ft, opts); err == nil {
			return face
		}
	}

	return basicfont.Face7x13
}

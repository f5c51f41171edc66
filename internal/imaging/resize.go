// ABOUTME: Cover image downscaling before upload
// ABOUTME: Bounds dimensions, re-encodes as JPEG, and returns a data URL

package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"

	"golang.org/x/image/draw"
)

// Covers are capped at 500x500 before upload; the server stores the data
// URL verbatim, so an unbounded photo would bloat every catalog response.
const (
	MaxCoverWidth  = 500
	MaxCoverHeight = 500
)

const jpegQuality = 90

// FitCover decodes an image, downscales it to fit within maxW x maxH
// preserving aspect ratio, and returns it as a JPEG data URL. Images
// already within bounds are re-encoded without scaling.
func FitCover(r io.Reader, maxW, maxH int) (string, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return "", fmt.Errorf("decode cover image: %w", err)
	}

	bounds := src.Bounds()
	w, h := fitDimensions(bounds.Dx(), bounds.Dy(), maxW, maxH)

	out := src
	if w != bounds.Dx() || h != bounds.Dy() {
		scaled := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.BiLinear.Scale(scaled, scaled.Bounds(), src, bounds, draw.Over, nil)
		out = scaled
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, out, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return "", fmt.Errorf("encode cover image: %w", err)
	}

	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// fitDimensions shrinks (w, h) proportionally until both fit the bounds.
// Dimensions already within bounds are returned unchanged; never upscales.
func fitDimensions(w, h, maxW, maxH int) (int, int) {
	if w <= maxW && h <= maxH {
		return w, h
	}

	scaleW := float64(maxW) / float64(w)
	scaleH := float64(maxH) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}

	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}
	return newW, newH
}

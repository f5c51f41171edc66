// ABOUTME: Tests for cover image downscaling
// ABOUTME: Verifies bound enforcement, aspect ratio, and data URL output

package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"
)

func encodePNG(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return &buf
}

func decodeDataURL(t *testing.T, dataURL string) image.Image {
	t.Helper()
	const prefix = "data:image/jpeg;base64,"
	if !strings.HasPrefix(dataURL, prefix) {
		t.Fatalf("expected JPEG data URL, got %.40s...", dataURL)
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(dataURL, prefix))
	if err != nil {
		t.Fatalf("data URL payload is not base64: %v", err)
	}
	img, err := jpeg.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("payload is not a JPEG: %v", err)
	}
	return img
}

func TestFitCover_DownscalesWide(t *testing.T) {
	dataURL, err := FitCover(encodePNG(t, 1000, 400), MaxCoverWidth, MaxCoverHeight)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	img := decodeDataURL(t, dataURL)
	if img.Bounds().Dx() != 500 || img.Bounds().Dy() != 200 {
		t.Errorf("expected 500x200, got %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestFitCover_DownscalesTall(t *testing.T) {
	dataURL, err := FitCover(encodePNG(t, 300, 1500), MaxCoverWidth, MaxCoverHeight)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	img := decodeDataURL(t, dataURL)
	if img.Bounds().Dx() != 100 || img.Bounds().Dy() != 500 {
		t.Errorf("expected 100x500, got %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestFitCover_SmallImageNotUpscaled(t *testing.T) {
	dataURL, err := FitCover(encodePNG(t, 120, 80), MaxCoverWidth, MaxCoverHeight)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	img := decodeDataURL(t, dataURL)
	if img.Bounds().Dx() != 120 || img.Bounds().Dy() != 80 {
		t.Errorf("expected 120x80 unchanged, got %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestFitCover_RejectsGarbage(t *testing.T) {
	_, err := FitCover(strings.NewReader("not an image"), MaxCoverWidth, MaxCoverHeight)
	if err == nil {
		t.Fatal("expected error for non-image input")
	}
}

func TestFitDimensions(t *testing.T) {
	tests := []struct {
		w, h, maxW, maxH, wantW, wantH int
	}{
		{1000, 400, 500, 500, 500, 200},
		{400, 1000, 500, 500, 200, 500},
		{500, 500, 500, 500, 500, 500},
		{100, 100, 500, 500, 100, 100},
		{2000, 2000, 500, 500, 500, 500},
		{10000, 3, 500, 500, 500, 1},
	}
	for _, tt := range tests {
		gotW, gotH := fitDimensions(tt.w, tt.h, tt.maxW, tt.maxH)
		if gotW != tt.wantW || gotH != tt.wantH {
			t.Errorf("fitDimensions(%d,%d) = %dx%d, want %dx%d", tt.w, tt.h, gotW, gotH, tt.wantW, tt.wantH)
		}
	}
}

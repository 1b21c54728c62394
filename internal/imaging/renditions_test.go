// Copyright (c) 2026 Vince Veselosky and contributors
// SPDX-License-Identifier: Apache-2.0

package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"path/filepath"
	"strings"
	"testing"
)

// createTestImage creates a simple test image with the given dimensions.
func createTestImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	return img
}

func encodeJPEG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	return buf.Bytes()
}

func TestProcessUpload(t *testing.T) {
	p := NewProcessor(t.TempDir())
	data := encodeJPEG(t, createTestImage(800, 600))

	result, err := p.ProcessUpload(bytes.NewReader(data), "photo.jpg")
	if err != nil {
		t.Fatalf("process upload: %v", err)
	}

	if result.Width != 800 || result.Height != 600 {
		t.Errorf("dimensions = %dx%d, want 800x600", result.Width, result.Height)
	}
	if result.MimeType != "image/jpeg" {
		t.Errorf("mime type = %q", result.MimeType)
	}
	if result.UUID == "" {
		t.Error("missing uuid")
	}
	if !strings.HasPrefix(result.FilePath, filepath.Join("originals", result.UUID)) {
		t.Errorf("file path = %q", result.FilePath)
	}

	w, h, err := p.Dimensions(result.FilePath)
	if err != nil {
		t.Fatalf("dimensions: %v", err)
	}
	if w != 800 || h != 600 {
		t.Errorf("stored dimensions = %dx%d", w, h)
	}
}

func TestProcessUploadRejectsUnknownFormat(t *testing.T) {
	p := NewProcessor(t.TempDir())
	if _, err := p.ProcessUpload(bytes.NewReader([]byte("not an image")), "x.jpg"); err == nil {
		t.Error("expected error for non-image data")
	}
}

func TestCreateRenditionCrop(t *testing.T) {
	p := NewProcessor(t.TempDir())
	data := encodeJPEG(t, createTestImage(800, 600))
	upload, err := p.ProcessUpload(bytes.NewReader(data), "photo.jpg")
	if err != nil {
		t.Fatalf("process upload: %v", err)
	}

	result, err := p.CreateRendition(upload.FilePath, upload.UUID, "small", Renditions["small"])
	if err != nil {
		t.Fatalf("create rendition: %v", err)
	}
	if result.Width != 160 || result.Height != 90 {
		t.Errorf("crop dimensions = %dx%d, want 160x90", result.Width, result.Height)
	}
	if !strings.HasSuffix(result.FilePath, ".jpg") {
		t.Errorf("rendition path = %q", result.FilePath)
	}
}

func TestCreateRenditionFitPreservesAspect(t *testing.T) {
	p := NewProcessor(t.TempDir())
	data := encodeJPEG(t, createTestImage(2000, 1000))
	upload, err := p.ProcessUpload(bytes.NewReader(data), "wide.jpg")
	if err != nil {
		t.Fatalf("process upload: %v", err)
	}

	result, err := p.CreateRendition(upload.FilePath, upload.UUID, "large", Renditions["large"])
	if err != nil {
		t.Fatalf("create rendition: %v", err)
	}
	if result.Width != 960 || result.Height != 480 {
		t.Errorf("fit dimensions = %dx%d, want 960x480", result.Width, result.Height)
	}
}

func TestCreateRenditionSkipsSmallSource(t *testing.T) {
	p := NewProcessor(t.TempDir())
	data := encodeJPEG(t, createTestImage(100, 80))
	upload, err := p.ProcessUpload(bytes.NewReader(data), "tiny.jpg")
	if err != nil {
		t.Fatalf("process upload: %v", err)
	}

	result, err := p.CreateRendition(upload.FilePath, upload.UUID, "hd1080p", Renditions["hd1080p"])
	if err != nil {
		t.Fatalf("create rendition: %v", err)
	}
	if result != nil {
		t.Errorf("expected nil result for undersized source, got %+v", result)
	}

	// Crop renditions still upscale to fill their slot.
	cropped, err := p.CreateRendition(upload.FilePath, upload.UUID, "small", Renditions["small"])
	if err != nil {
		t.Fatalf("create crop rendition: %v", err)
	}
	if cropped == nil || cropped.Width != 160 || cropped.Height != 90 {
		t.Errorf("crop result = %+v", cropped)
	}
}

func TestCreateAllRenditions(t *testing.T) {
	p := NewProcessor(t.TempDir())
	data := encodeJPEG(t, createTestImage(2400, 1600))
	upload, err := p.ProcessUpload(bytes.NewReader(data), "photo.jpg")
	if err != nil {
		t.Fatalf("process upload: %v", err)
	}

	results, err := p.CreateAllRenditions(upload.FilePath, upload.UUID)
	if err != nil {
		t.Fatalf("create all renditions: %v", err)
	}
	if len(results) != len(Renditions) {
		t.Errorf("renditions = %d, want %d", len(results), len(Renditions))
	}

	if err := p.DeleteRenditions(upload.UUID); err != nil {
		t.Fatalf("delete renditions: %v", err)
	}
	if _, _, err := p.Dimensions(upload.FilePath); err == nil {
		t.Error("original should be deleted")
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"jpeg magic bytes", []byte{0xFF, 0xD8, 0xFF, 0xE0}, "jpeg"},
		{"png magic bytes", []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, "png"},
		{"gif magic bytes", []byte{0x47, 0x49, 0x46, 0x38, 0x39, 0x61}, "gif"},
		{"unknown", []byte{0x00, 0x01, 0x02, 0x03}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detectFormat(tt.data); got != tt.want {
				t.Errorf("detectFormat() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApplyOrientation(t *testing.T) {
	// Verify 90-degree orientations swap dimensions and the rest keep them.
	for orientation := 0; orientation <= 9; orientation++ {
		img := createTestImage(20, 10)
		result := applyOrientation(img, orientation)
		if result == nil {
			t.Fatalf("orientation %d returned nil", orientation)
		}
		bounds := result.Bounds()
		swapped := orientation >= 5 && orientation <= 8
		if swapped && (bounds.Dx() != 10 || bounds.Dy() != 20) {
			t.Errorf("orientation %d = %dx%d, want 10x20", orientation, bounds.Dx(), bounds.Dy())
		}
		if !swapped && (bounds.Dx() != 20 || bounds.Dy() != 10) {
			t.Errorf("orientation %d = %dx%d, want 20x10", orientation, bounds.Dx(), bounds.Dy())
		}
	}
}

// Copyright (c) 2026 Vince Veselosky and contributors
// SPDX-License-Identifier: Apache-2.0

// Package imaging produces the standard image renditions used in page
// layouts and social share cards. Renditions are always encoded as JPEG.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/rwcarlsen/goexif/exif"
)

// JPEGQuality is the encoding quality for all renditions.
const JPEGQuality = 60

// Rendition describes one derived image size. Crop renditions fill the
// exact box from the center; the rest scale to fit inside it.
type Rendition struct {
	Width  int
	Height int
	Crop   bool
}

// Renditions defines the standard set. The small, medium and social
// sizes appear in fixed layout slots, so they crop to exact dimensions.
// Large and HD sizes preserve aspect ratio for featured images. The
// portrait set serves vertically-oriented sources.
var Renditions = map[string]Rendition{
	"hd1080p":         {Width: 1920, Height: 1080},
	"hd720p":          {Width: 1280, Height: 720},
	"social":          {Width: 1200, Height: 630, Crop: true},
	"large":           {Width: 960, Height: 540},
	"medium":          {Width: 400, Height: 225, Crop: true},
	"small":           {Width: 160, Height: 90, Crop: true},
	"portrait_small":  {Width: 90, Height: 160, Crop: true},
	"portrait_medium": {Width: 225, Height: 400, Crop: true},
	"portrait_large":  {Width: 540, Height: 960},
	"portrait_cover":  {Width: 1000, Height: 1500, Crop: true},
	"portrait_social": {Width: 1080, Height: 1350, Crop: true},
	"portrait_hd":     {Width: 1080, Height: 1920},
}

// UploadResult describes a stored original image.
type UploadResult struct {
	UUID     string
	FilePath string // relative to the media dir
	MimeType string
	Size     int64
	Width    int
	Height   int
}

// RenditionResult describes one generated rendition file.
type RenditionResult struct {
	Name     string
	FilePath string // relative to the media dir
	Width    int
	Height   int
	Size     int64
}

// Processor stores originals and generates renditions under the media
// directory.
type Processor struct {
	mediaDir string
}

// NewProcessor creates a processor rooted at mediaDir.
func NewProcessor(mediaDir string) *Processor {
	return &Processor{mediaDir: mediaDir}
}

// ProcessUpload decodes an uploaded image, normalizes its EXIF
// orientation and stores the original under originals/<uuid>/.
func (p *Processor) ProcessUpload(r io.Reader, filename string) (*UploadResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading image data: %w", err)
	}

	format := detectFormat(data)
	if format == "" {
		return nil, fmt.Errorf("unsupported image format")
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	img = applyOrientation(img, readExifOrientation(bytes.NewReader(data)))

	encoded, err := encode(img, format)
	if err != nil {
		return nil, fmt.Errorf("encoding image: %w", err)
	}

	id := uuid.NewString()
	relPath, err := p.save(filepath.Join("originals", id), filename, encoded)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	return &UploadResult{
		UUID:     id,
		FilePath: relPath,
		MimeType: formatMimeType(format),
		Size:     int64(len(encoded)),
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
	}, nil
}

// CreateRendition generates one named rendition from a stored original.
// It returns nil when the source already fits inside a non-crop box.
func (p *Processor) CreateRendition(sourcePath, id string, name string, spec Rendition) (*RenditionResult, error) {
	img, err := imaging.Open(filepath.Join(p.mediaDir, sourcePath))
	if err != nil {
		return nil, fmt.Errorf("opening source image: %w", err)
	}

	bounds := img.Bounds()
	if !spec.Crop && bounds.Dx() <= spec.Width && bounds.Dy() <= spec.Height {
		return nil, nil
	}

	var resized image.Image
	if spec.Crop {
		resized = imaging.Fill(img, spec.Width, spec.Height, imaging.Center, imaging.Lanczos)
	} else {
		resized = imaging.Fit(img, spec.Width, spec.Height, imaging.Lanczos)
	}

	encoded, err := encode(resized, "jpeg")
	if err != nil {
		return nil, fmt.Errorf("encoding %s rendition: %w", name, err)
	}

	base := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	relPath, err := p.save(filepath.Join(name, id), base+".jpg", encoded)
	if err != nil {
		return nil, err
	}

	resBounds := resized.Bounds()
	return &RenditionResult{
		Name:     name,
		FilePath: relPath,
		Width:    resBounds.Dx(),
		Height:   resBounds.Dy(),
		Size:     int64(len(encoded)),
	}, nil
}

// CreateAllRenditions generates every standard rendition, skipping sizes
// the source cannot fill and collecting per-rendition failures.
func (p *Processor) CreateAllRenditions(sourcePath, id string) ([]*RenditionResult, error) {
	var results []*RenditionResult
	var errs []string

	for name, spec := range Renditions {
		result, err := p.CreateRendition(sourcePath, id, name, spec)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		if result != nil {
			results = append(results, result)
		}
	}

	if len(errs) > 0 && len(results) == 0 {
		return nil, fmt.Errorf("all renditions failed: %s", strings.Join(errs, "; "))
	}
	return results, nil
}

// Dimensions reads the pixel size of an image file without decoding the
// full image.
func (p *Processor) Dimensions(relPath string) (width, height int, err error) {
	file, err := os.Open(filepath.Join(p.mediaDir, relPath))
	if err != nil {
		return 0, 0, fmt.Errorf("opening image: %w", err)
	}
	defer func() { _ = file.Close() }()

	cfg, _, err := image.DecodeConfig(file)
	if err != nil {
		return 0, 0, fmt.Errorf("reading image config: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}

// DeleteRenditions removes the original and every rendition for one
// stored image.
func (p *Processor) DeleteRenditions(id string) error {
	dirs := []string{"originals"}
	for name := range Renditions {
		dirs = append(dirs, name)
	}
	for _, dir := range dirs {
		target := filepath.Join(p.mediaDir, dir, id)
		if err := os.RemoveAll(target); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("deleting %s: %w", target, err)
		}
	}
	return nil
}

// readExifOrientation returns the EXIF orientation tag, or 1 (normal)
// when it cannot be read.
func readExifOrientation(r io.Reader) int {
	x, err := exif.Decode(r)
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	orientation, err := tag.Int(0)
	if err != nil {
		return 1
	}
	return orientation
}

func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.FlipH(imaging.Rotate270(img))
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.FlipH(imaging.Rotate90(img))
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}

func encode(img image.Image, format string) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case "png":
		if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
			return nil, err
		}
	case "gif":
		if err := imaging.Encode(&buf, img, imaging.GIF); err != nil {
			return nil, err
		}
	default:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func detectFormat(data []byte) string {
	contentType := http.DetectContentType(data)
	switch {
	case strings.Contains(contentType, "jpeg"):
		return "jpeg"
	case strings.Contains(contentType, "png"):
		return "png"
	case strings.Contains(contentType, "gif"):
		return "gif"
	default:
		return ""
	}
}

func formatMimeType(format string) string {
	switch format {
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	default:
		return "image/jpeg"
	}
}

// save writes data under mediaDir/subDir/filename and returns the path
// relative to mediaDir. The filename and subdirectory are validated to
// stay inside the media dir.
func (p *Processor) save(subDir, filename string, data []byte) (string, error) {
	safeName := filepath.Base(filename)
	if safeName == "." || safeName == ".." || safeName == "" {
		return "", fmt.Errorf("invalid filename")
	}
	cleanSub := filepath.Clean(subDir)
	if strings.Contains(cleanSub, "..") || filepath.IsAbs(cleanSub) {
		return "", fmt.Errorf("invalid subdirectory path")
	}

	target := filepath.Join(p.mediaDir, cleanSub)
	if err := os.MkdirAll(target, 0o755); err != nil {
		return "", fmt.Errorf("creating directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(target, safeName), data, 0o644); err != nil {
		return "", fmt.Errorf("saving image: %w", err)
	}
	return filepath.Join(cleanSub, safeName), nil
}

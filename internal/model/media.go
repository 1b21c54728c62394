// Copyright (c) 2026 Vince Veselosky and contributors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"database/sql"
	"mime"
	"path/filepath"
	"strconv"

	"github.com/veselosky/commoncontent/internal/schemas"
)

// MediaObject holds the properties common to stored media files. The
// title is optional for media to make bulk uploads painless; FilePath is
// the path of the stored file below the media root.
type MediaObject struct {
	CreativeWork
	FilePath   string `json:"file_path"`
	MimeType   string `json:"mime_type"`
	FileSize   int64        `json:"file_size,omitempty"`
	UploadDate sql.NullTime `json:"upload_date,omitempty"`
}

// GuessMimeType fills in MimeType from the file extension when it is not
// already set.
func (m *MediaObject) GuessMimeType() {
	if m.MimeType != "" {
		return
	}
	m.MimeType = mime.TypeByExtension(filepath.Ext(m.FilePath))
}

// MediaPath returns the site-relative URL of the stored file.
func (m *MediaObject) MediaPath() string {
	return "/media/" + m.FilePath
}

// MediaURL returns the canonical URL of the stored file.
func (m *MediaObject) MediaURL(site *Site) string {
	return site.AbsoluteURL(m.MediaPath())
}

// Image is a stored image file with dimensions and alt text recorded at
// upload time.
type Image struct {
	MediaObject
	AltText string `json:"alt_text,omitempty"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
}

// IsPortrait reports whether the image is taller than it is wide.
func (i *Image) IsPortrait() bool {
	return i.Height > i.Width
}

// ImageProp returns the image as an og:image structured property.
func (i *Image) ImageProp(site *Site) (*schemas.ImageProp, error) {
	return schemas.NewImageProp(schemas.ImageProp{
		Type:   i.MimeType,
		URL:    i.MediaURL(site),
		Width:  i.Width,
		Height: i.Height,
		Alt:    i.AltText,
	})
}

// Schema returns the image as a schema.org MediaObject.
func (i *Image) Schema(site *Site) (schemas.Schema, error) {
	base, err := i.baseSchema(i.MediaURL(site))
	if err != nil {
		return nil, err
	}
	obj := &schemas.MediaObjectSchema{
		CreativeWorkSchema: base,
		ContentURL:         i.MediaURL(site),
		EncodingFormat:     i.MimeType,
		UploadDate:         nullTimestamp(i.UploadDate),
	}
	if i.Width > 0 {
		obj.Width = strconv.Itoa(i.Width)
	}
	if i.Height > 0 {
		obj.Height = strconv.Itoa(i.Height)
	}
	return obj, nil
}

// Attachment is a stored file offered for download.
type Attachment struct {
	MediaObject
}

// Schema returns the attachment as a schema.org MediaObject.
func (a *Attachment) Schema(site *Site) (schemas.Schema, error) {
	base, err := a.baseSchema(a.MediaURL(site))
	if err != nil {
		return nil, err
	}
	return &schemas.MediaObjectSchema{
		CreativeWorkSchema: base,
		ContentURL:         a.MediaURL(site),
		EncodingFormat:     a.MimeType,
	}, nil
}

// Copyright (c) 2026 Vince Veselosky and contributors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/veselosky/commoncontent/internal/model"
)

// Queries wraps a database handle with typed query methods.
type Queries struct {
	db *sql.DB
}

// New creates a Queries instance around the database handle.
func New(db *sql.DB) *Queries {
	return &Queries{db: db}
}

// CreateSiteParams holds the fields for CreateSite.
type CreateSiteParams struct {
	Domain string
	Name   string
}

// CreateSite inserts a site and returns it with its assigned ID.
func (q *Queries) CreateSite(ctx context.Context, arg CreateSiteParams) (model.Site, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO site (domain, name) VALUES (?, ?)`, arg.Domain, arg.Name)
	if err != nil {
		return model.Site{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Site{}, err
	}
	return model.Site{ID: id, Domain: arg.Domain, Name: arg.Name}, nil
}

// GetSite fetches a site by ID.
func (q *Queries) GetSite(ctx context.Context, id int64) (model.Site, error) {
	var s model.Site
	err := q.db.QueryRowContext(ctx,
		`SELECT id, domain, name FROM site WHERE id = ?`, id).
		Scan(&s.ID, &s.Domain, &s.Name)
	return s, err
}

// GetSiteByDomain fetches a site by its domain.
func (q *Queries) GetSiteByDomain(ctx context.Context, domain string) (model.Site, error) {
	var s model.Site
	err := q.db.QueryRowContext(ctx,
		`SELECT id, domain, name FROM site WHERE domain = ?`, domain).
		Scan(&s.ID, &s.Domain, &s.Name)
	return s, err
}

// ListSites returns all sites ordered by domain.
func (q *Queries) ListSites(ctx context.Context) ([]model.Site, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, domain, name FROM site ORDER BY domain`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sites []model.Site
	for rows.Next() {
		var s model.Site
		if err := rows.Scan(&s.ID, &s.Domain, &s.Name); err != nil {
			return nil, err
		}
		sites = append(sites, s)
	}
	return sites, rows.Err()
}

// UpsertSiteVar sets a site var, replacing any existing value.
func (q *Queries) UpsertSiteVar(ctx context.Context, siteID int64, name, value string) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO sitevar (site_id, name, value, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT (site_id, name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		siteID, name, value, time.Now())
	return err
}

// ListSiteVars returns all vars stored for a site.
func (q *Queries) ListSiteVars(ctx context.Context, siteID int64) ([]model.SiteVar, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, site_id, name, value, updated_at FROM sitevar WHERE site_id = ? ORDER BY name`,
		siteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vars []model.SiteVar
	for rows.Next() {
		var v model.SiteVar
		if err := rows.Scan(&v.ID, &v.SiteID, &v.Name, &v.Value, &v.UpdatedAt); err != nil {
			return nil, err
		}
		vars = append(vars, v)
	}
	return vars, rows.Err()
}

// DeleteSiteVar removes a site var.
func (q *Queries) DeleteSiteVar(ctx context.Context, siteID int64, name string) error {
	_, err := q.db.ExecContext(ctx,
		`DELETE FROM sitevar WHERE site_id = ? AND name = ?`, siteID, name)
	return err
}

// CreateAuthorParams holds the fields for CreateAuthor.
type CreateAuthorParams struct {
	SiteID          int64
	Name            string
	Slug            string
	Description     string
	ShortBio        string
	FullBio         string
	ProfileID       sql.NullInt64
	CopyrightHolder string
	CopyrightNotice string
}

// CreateAuthor inserts an author and returns its ID.
func (q *Queries) CreateAuthor(ctx context.Context, arg CreateAuthorParams) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO author (site_id, name, slug, description, short_bio, full_bio,
		 profile_image_id, copyright_holder, copyright_notice)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.SiteID, arg.Name, arg.Slug, arg.Description, arg.ShortBio, arg.FullBio,
		arg.ProfileID, arg.CopyrightHolder, arg.CopyrightNotice)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

const authorColumns = `a.id, a.site_id, a.name, a.slug, a.description, a.short_bio,
	a.full_bio, a.profile_image_id, a.social_links_id, a.copyright_holder,
	a.copyright_notice, a.date_modified`

func scanAuthor(row interface{ Scan(...any) error }) (model.Author, error) {
	var a model.Author
	err := row.Scan(&a.ID, &a.SiteID, &a.Name, &a.Slug, &a.Description, &a.ShortBio,
		&a.FullBio, &a.ProfileID, &a.LinksID, &a.CopyrightHolder,
		&a.CopyrightNotice, &a.DateModified)
	return a, err
}

// GetAuthorBySlug fetches an author with its profile image loaded.
func (q *Queries) GetAuthorBySlug(ctx context.Context, siteID int64, slug string) (model.Author, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+authorColumns+` FROM author a WHERE a.site_id = ? AND a.slug = ?`,
		siteID, slug)
	a, err := scanAuthor(row)
	if err != nil {
		return a, err
	}
	if a.ProfileID.Valid {
		img, err := q.GetImage(ctx, a.ProfileID.Int64)
		if err == nil {
			a.ProfileImage = &img
		}
	}
	return a, nil
}

// ListAuthors returns all authors for a site ordered by name.
func (q *Queries) ListAuthors(ctx context.Context, siteID int64) ([]model.Author, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+authorColumns+` FROM author a WHERE a.site_id = ? ORDER BY a.name`, siteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var authors []model.Author
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, err
		}
		authors = append(authors, a)
	}
	return authors, rows.Err()
}

// CreateImageParams holds the fields for CreateImage.
type CreateImageParams struct {
	SiteID   int64
	Title    string
	FilePath string
	MimeType string
	FileSize int64
	AltText  string
	Width    int
	Height   int
}

// CreateImage inserts an image record and returns its ID.
func (q *Queries) CreateImage(ctx context.Context, arg CreateImageParams) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO image (site_id, title, file_path, mime_type, file_size,
		 upload_date, alt_text, width, height)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.SiteID, arg.Title, arg.FilePath, arg.MimeType, arg.FileSize,
		time.Now(), arg.AltText, arg.Width, arg.Height)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

const imageColumns = `id, site_id, title, status, description, file_path,
	mime_type, file_size, upload_date, alt_text, width, height`

func scanImage(row interface{ Scan(...any) error }) (model.Image, error) {
	var img model.Image
	err := row.Scan(&img.ID, &img.SiteID, &img.Title, &img.Status, &img.Description,
		&img.FilePath, &img.MimeType, &img.FileSize, &img.UploadDate,
		&img.AltText, &img.Width, &img.Height)
	return img, err
}

// GetImage fetches an image by ID.
func (q *Queries) GetImage(ctx context.Context, id int64) (model.Image, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+imageColumns+` FROM image WHERE id = ?`, id)
	return scanImage(row)
}

// GetImageByPath fetches an image by its stored file path.
func (q *Queries) GetImageByPath(ctx context.Context, siteID int64, path string) (model.Image, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+imageColumns+` FROM image WHERE site_id = ? AND file_path = ?`, siteID, path)
	return scanImage(row)
}

// ListImages returns the site's images, most recently uploaded first.
func (q *Queries) ListImages(ctx context.Context, siteID int64, limit, offset int) ([]model.Image, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+imageColumns+` FROM image WHERE site_id = ?
		 ORDER BY upload_date DESC LIMIT ? OFFSET ?`, siteID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []model.Image
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// CreateAttachmentParams holds the fields for CreateAttachment.
type CreateAttachmentParams struct {
	SiteID   int64
	Title    string
	FilePath string
	MimeType string
	FileSize int64
}

// CreateAttachment inserts an attachment record and returns its ID.
func (q *Queries) CreateAttachment(ctx context.Context, arg CreateAttachmentParams) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO attachment (site_id, title, file_path, mime_type, file_size, upload_date)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		arg.SiteID, arg.Title, arg.FilePath, arg.MimeType, arg.FileSize, time.Now())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

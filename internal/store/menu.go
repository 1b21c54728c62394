// Copyright (c) 2026 Vince Veselosky and contributors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"

	"github.com/veselosky/commoncontent/internal/model"
)

// CreateMenuParams holds the fields for CreateMenu.
type CreateMenuParams struct {
	SiteID    int64
	AdminName string
	Slug      string
	Title     string
}

// CreateMenu inserts a menu and returns its ID.
func (q *Queries) CreateMenu(ctx context.Context, arg CreateMenuParams) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO menu (site_id, admin_name, slug, title) VALUES (?, ?, ?, ?)`,
		arg.SiteID, arg.AdminName, arg.Slug, arg.Title)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// CreateLinkParams holds the fields for CreateLink.
type CreateLinkParams struct {
	MenuID      int64
	URL         string
	Title       string
	CustomIcon  string
	Description string
	Position    int
}

// CreateLink inserts a menu link and returns its ID.
func (q *Queries) CreateLink(ctx context.Context, arg CreateLinkParams) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO link (menu_id, url, title, custom_icon, description, position)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		arg.MenuID, arg.URL, arg.Title, arg.CustomIcon, arg.Description, arg.Position)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetMenuBySlug fetches a menu with its links in position order.
func (q *Queries) GetMenuBySlug(ctx context.Context, siteID int64, slug string) (model.Menu, error) {
	var m model.Menu
	err := q.db.QueryRowContext(ctx,
		`SELECT id, site_id, admin_name, slug, title FROM menu
		 WHERE site_id = ? AND slug = ?`, siteID, slug).
		Scan(&m.ID, &m.SiteID, &m.AdminName, &m.Slug, &m.Title)
	if err != nil {
		return m, err
	}

	rows, err := q.db.QueryContext(ctx,
		`SELECT id, menu_id, url, title, custom_icon, description, share_image_id
		 FROM link WHERE menu_id = ? ORDER BY position, id`, m.ID)
	if err != nil {
		return m, err
	}
	defer rows.Close()

	for rows.Next() {
		var l model.Link
		if err := rows.Scan(&l.ID, &l.MenuID, &l.URL, &l.Title, &l.CustomIcon,
			&l.Description, &l.ShareImageID); err != nil {
			return m, err
		}
		m.Links = append(m.Links, l)
	}
	return m, rows.Err()
}

// ListMenus returns all menus for a site.
func (q *Queries) ListMenus(ctx context.Context, siteID int64) ([]model.Menu, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, site_id, admin_name, slug, title FROM menu
		 WHERE site_id = ? ORDER BY slug`, siteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var menus []model.Menu
	for rows.Next() {
		var m model.Menu
		if err := rows.Scan(&m.ID, &m.SiteID, &m.AdminName, &m.Slug, &m.Title); err != nil {
			return nil, err
		}
		menus = append(menus, m)
	}
	return menus, rows.Err()
}

// Package catalog stores the project categories shown on the projects page
// and the images each gallery is built from.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite"

	"github.com/Zachkp/portfolio-gallery/internal/gallery"
)

var ErrCategoryNotFound = errors.New("catalog: category not found")

type Image struct {
	Ref string `json:"ref" yaml:"ref"`
	Alt string `json:"alt" yaml:"alt"`
}

type Category struct {
	Slug        string  `json:"slug" yaml:"slug"`
	Title       string  `json:"title" yaml:"title"`
	Description string  `json:"description" yaml:"description"`
	Images      []Image `json:"images" yaml:"images"`
}

type fileFormat struct {
	Categories []Category `yaml:"categories"`
}

// LoadFile reads a YAML catalog of the form
//
//	categories:
//	  - slug: tui-mail
//	    title: Terminal mail client
//	    images:
//	      - ref: /images/tui-mail-inbox.png
//	        alt: Inbox view
func LoadFile(path string) ([]Category, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	for i, c := range f.Categories {
		if c.Slug == "" {
			return nil, fmt.Errorf("parse catalog %s: category %d has no slug", path, i)
		}
	}
	return f.Categories, nil
}

type Store struct {
	db  *sql.DB
	log *logrus.Entry
}

// Open opens (creating if needed) the SQLite catalog at path and applies the
// schema.
func Open(ctx context.Context, path string, log *logrus.Entry) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open catalog db: %w", err)
	}
	// SQLite serializes writers anyway, and :memory: databases are per connection.
	db.SetMaxOpenConns(1)

	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	s := &Store{db: db, log: log}
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS categories (
		slug TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT,
		position INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS images (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		category_slug TEXT NOT NULL REFERENCES categories(slug) ON DELETE CASCADE,
		ref TEXT NOT NULL,
		alt TEXT,
		position INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS images_by_category ON images(category_slug, position);`)
	if err != nil {
		return fmt.Errorf("migrate catalog: %w", err)
	}
	return nil
}

// Seed replaces the whole catalog with categories, keeping their order.
func (s *Store) Seed(ctx context.Context, categories []Category) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM images`); err != nil {
		return fmt.Errorf("seed catalog: clear images: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM categories`); err != nil {
		return fmt.Errorf("seed catalog: clear categories: %w", err)
	}

	images := 0
	for i, c := range categories {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO categories (slug, title, description, position) VALUES (?, ?, ?, ?)`,
			c.Slug, c.Title, c.Description, i)
		if err != nil {
			return fmt.Errorf("seed catalog: category %s: %w", c.Slug, err)
		}
		for j, img := range c.Images {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO images (category_slug, ref, alt, position) VALUES (?, ?, ?, ?)`,
				c.Slug, img.Ref, img.Alt, j)
			if err != nil {
				return fmt.Errorf("seed catalog: image %s: %w", img.Ref, err)
			}
			images++
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed catalog: commit: %w", err)
	}
	s.log.WithFields(logrus.Fields{"categories": len(categories), "images": images}).Info("catalog seeded")
	return nil
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Categories returns every category in page order with its images, read in
// one transaction.
func (s *Store) Categories(ctx context.Context) ([]Category, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx,
		`SELECT slug, title, COALESCE(description, '') FROM categories ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.Slug, &c.Title, &c.Description); err != nil {
			rows.Close()
			return nil, fmt.Errorf("list categories: %w", err)
		}
		out = append(out, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	for i := range out {
		imgs, err := images(ctx, tx, out[i].Slug)
		if err != nil {
			return nil, err
		}
		out[i].Images = imgs
	}
	return out, nil
}

func images(ctx context.Context, q queryer, slug string) ([]Image, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT ref, COALESCE(alt, '') FROM images WHERE category_slug = ? ORDER BY position`, slug)
	if err != nil {
		return nil, fmt.Errorf("list images for %s: %w", slug, err)
	}
	defer rows.Close()

	imgs := []Image{}
	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.Ref, &img.Alt); err != nil {
			return nil, fmt.Errorf("list images for %s: %w", slug, err)
		}
		imgs = append(imgs, img)
	}
	return imgs, rows.Err()
}

// Category loads one category with its images in a single query, so a
// concurrent Seed cannot pair it with another category's image list.
func (s *Store) Category(ctx context.Context, slug string) (Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.slug, c.title, COALESCE(c.description, ''), i.ref, COALESCE(i.alt, '')
		FROM categories c
		LEFT JOIN images i ON i.category_slug = c.slug
		WHERE c.slug = ?
		ORDER BY i.position`, slug)
	if err != nil {
		return Category{}, fmt.Errorf("load category %s: %w", slug, err)
	}
	defer rows.Close()

	var (
		c     Category
		found bool
	)
	c.Images = []Image{}
	for rows.Next() {
		var ref, alt sql.NullString
		if err := rows.Scan(&c.Slug, &c.Title, &c.Description, &ref, &alt); err != nil {
			return Category{}, fmt.Errorf("load category %s: %w", slug, err)
		}
		found = true
		if ref.Valid {
			c.Images = append(c.Images, Image{Ref: ref.String, Alt: alt.String})
		}
	}
	if err := rows.Err(); err != nil {
		return Category{}, fmt.Errorf("load category %s: %w", slug, err)
	}
	if !found {
		return Category{}, fmt.Errorf("%w: %s", ErrCategoryNotFound, slug)
	}
	return c, nil
}

// Set builds the gallery for one category. A category with no images gives
// an empty set.
func (s *Store) Set(ctx context.Context, slug string) (gallery.GallerySet, error) {
	c, err := s.Category(ctx, slug)
	if err != nil {
		return gallery.GallerySet{}, err
	}
	return c.Set(), nil
}

// Set returns the category's images as a gallery set.
func (c Category) Set() gallery.GallerySet {
	refs := make([]gallery.ImageRef, len(c.Images))
	for i, img := range c.Images {
		refs[i] = gallery.ImageRef(img.Ref)
	}
	return gallery.NewSet(c.Slug, refs...)
}

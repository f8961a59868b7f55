// ABOUTME: Directory cache mapping natural-language names to workspace identifiers
// ABOUTME: Databases cached for the process lifetime; pages resolved live
package workspace

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/jomei/notionapi"

	"github.com/dvergara/nexo/internal/models"
)

// Directory resolves fuzzy names against the workspace service. The database
// listing is fetched once and cached until process exit; pages are numerous
// and mutable, so page lookups always go to the service.
type Directory struct {
	search searchService

	mu        sync.Mutex
	databases []models.Database
	populated bool
}

// ListDatabases returns all shared databases, from cache after the first
// successful call. Unreachable or unauthenticated service yields an empty
// list: callers treat that as "no workspace integration available".
func (d *Directory) ListDatabases(ctx context.Context) []models.Database {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.populated {
		return d.databases
	}
	if d.search == nil {
		return nil
	}

	resp, err := d.search.Do(ctx, &notionapi.SearchRequest{
		Filter: notionapi.SearchFilter{Property: "object", Value: "database"},
	})
	if err != nil {
		log.Printf("Warning: listing workspace databases failed: %v", err)
		return nil
	}

	var databases []models.Database
	for _, obj := range resp.Results {
		if db, ok := obj.(*notionapi.Database); ok {
			databases = append(databases, models.Database{
				ID:    db.ID.String(),
				Title: richPlainText(db.Title),
				URL:   db.URL,
			})
		}
	}

	d.databases = databases
	d.populated = true
	return d.databases
}

// FindDatabaseByName resolves a database by case-insensitive substring match
// against the cached titles. First match in listing order wins; no ranking.
func (d *Directory) FindDatabaseByName(ctx context.Context, name string) (*models.Database, error) {
	needle := strings.ToLower(name)
	for _, db := range d.ListDatabases(ctx) {
		if strings.Contains(strings.ToLower(db.Title), needle) {
			found := db
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

// FindPageByTitle searches live for a page, preferring an exact
// case-insensitive title match and falling back to the first search result.
func (d *Directory) FindPageByTitle(ctx context.Context, title string) (*models.Page, error) {
	if d.search == nil {
		return nil, ErrServiceUnavailable
	}

	resp, err := d.search.Do(ctx, &notionapi.SearchRequest{
		Query:  title,
		Filter: notionapi.SearchFilter{Property: "object", Value: "page"},
	})
	if err != nil {
		log.Printf("Warning: page search failed: %v", err)
		return nil, ErrNotFound
	}

	var first *models.Page
	for _, obj := range resp.Results {
		p, ok := obj.(*notionapi.Page)
		if !ok {
			continue
		}
		page := models.Page{ID: p.ID.String(), Title: pageTitle(p), URL: p.URL}
		if strings.EqualFold(page.Title, title) {
			return &page, nil
		}
		if first == nil {
			first = &page
		}
	}
	if first != nil {
		return first, nil
	}
	return nil, ErrNotFound
}

// DefaultParentID picks a parent for new pages when the caller names none:
// the first cached database, else the first result of an unfiltered search,
// else empty.
func (d *Directory) DefaultParentID(ctx context.Context) string {
	if databases := d.ListDatabases(ctx); len(databases) > 0 {
		return databases[0].ID
	}
	if d.search == nil {
		return ""
	}

	resp, err := d.search.Do(ctx, &notionapi.SearchRequest{})
	if err != nil {
		log.Printf("Warning: unfiltered workspace search failed: %v", err)
		return ""
	}
	for _, obj := range resp.Results {
		switch v := obj.(type) {
		case *notionapi.Page:
			return v.ID.String()
		case *notionapi.Database:
			return v.ID.String()
		}
	}
	return ""
}

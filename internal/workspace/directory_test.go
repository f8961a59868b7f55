// ABOUTME: Tests for the workspace directory cache
// ABOUTME: Verifies database caching, fuzzy name resolution and parent fallback

package workspace

import (
	"context"
	"errors"
	"testing"

	"github.com/jomei/notionapi"
)

func searchReturning(results ...notionapi.Object) *fakeSearch {
	return &fakeSearch{do: func(*notionapi.SearchRequest) (*notionapi.SearchResponse, error) {
		return &notionapi.SearchResponse{Results: results}, nil
	}}
}

func TestListDatabases_CachedAfterFirstCall(t *testing.T) {
	search := searchReturning(
		apiDatabase("d1", "Projects Q1"),
		apiDatabase("d2", "Tareas"),
	)
	d := &Directory{search: search}
	ctx := context.Background()

	first := d.ListDatabases(ctx)
	second := d.ListDatabases(ctx)

	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("got %d then %d databases, want 2 both times", len(first), len(second))
	}
	if search.calls != 1 {
		t.Errorf("service called %d times, want 1 (cached)", search.calls)
	}
}

func TestListDatabases_FailureIsNotCached(t *testing.T) {
	failing := true
	search := &fakeSearch{do: func(*notionapi.SearchRequest) (*notionapi.SearchResponse, error) {
		if failing {
			return nil, errors.New("service unreachable")
		}
		return &notionapi.SearchResponse{Results: []notionapi.Object{
			apiDatabase("d1", "Tareas"),
		}}, nil
	}}
	d := &Directory{search: search}
	ctx := context.Background()

	if got := d.ListDatabases(ctx); got != nil {
		t.Fatalf("ListDatabases() = %v on failure, want nil", got)
	}

	// The next call retries instead of caching the failure.
	failing = false
	if got := d.ListDatabases(ctx); len(got) != 1 {
		t.Errorf("got %d databases after recovery, want 1", len(got))
	}
	if search.calls != 2 {
		t.Errorf("service called %d times, want 2", search.calls)
	}
}

func TestListDatabases_EmptyCachedAsPopulated(t *testing.T) {
	search := searchReturning()
	d := &Directory{search: search}
	ctx := context.Background()

	d.ListDatabases(ctx)
	d.ListDatabases(ctx)
	if search.calls != 1 {
		t.Errorf("service called %d times, want 1 (empty listing still caches)", search.calls)
	}
}

func TestFindDatabaseByName(t *testing.T) {
	d := &Directory{search: searchReturning(
		apiDatabase("d1", "Projects Q1"),
		apiDatabase("d2", "Archived Projects"),
		apiDatabase("d3", "Tareas"),
	)}
	ctx := context.Background()

	tests := []struct {
		name   string
		query  string
		wantID string
	}{
		{"substring match", "Proj", "d1"},
		{"case insensitive", "tareas", "d3"},
		{"first match wins", "projects", "d1"},
		{"exact title", "Archived Projects", "d2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, err := d.FindDatabaseByName(ctx, tt.query)
			if err != nil {
				t.Fatalf("FindDatabaseByName(%q) error = %v", tt.query, err)
			}
			if db.ID != tt.wantID {
				t.Errorf("FindDatabaseByName(%q) = %s, want %s", tt.query, db.ID, tt.wantID)
			}
		})
	}
}

func TestFindDatabaseByName_NotFound(t *testing.T) {
	d := &Directory{search: searchReturning(apiDatabase("d1", "Tareas"))}

	_, err := d.FindDatabaseByName(context.Background(), "inexistente")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestFindPageByTitle_ExactPreferred(t *testing.T) {
	d := &Directory{search: searchReturning(
		apiPage("p1", "Roadmap 2024 draft"),
		apiPage("p2", "Roadmap"),
	)}

	page, err := d.FindPageByTitle(context.Background(), "roadmap")
	if err != nil {
		t.Fatalf("FindPageByTitle() error = %v", err)
	}
	// Exact case-insensitive title beats an earlier partial match.
	if page.ID != "p2" {
		t.Errorf("page.ID = %s, want p2 (exact match)", page.ID)
	}
}

func TestFindPageByTitle_FallsBackToFirstResult(t *testing.T) {
	d := &Directory{search: searchReturning(
		apiPage("p1", "Notas de la reunión semanal"),
		apiPage("p2", "Notas antiguas"),
	)}

	page, err := d.FindPageByTitle(context.Background(), "notas")
	if err != nil {
		t.Fatalf("FindPageByTitle() error = %v", err)
	}
	if page.ID != "p1" {
		t.Errorf("page.ID = %s, want first result p1", page.ID)
	}
}

func TestFindPageByTitle_NoResults(t *testing.T) {
	d := &Directory{search: searchReturning()}

	_, err := d.FindPageByTitle(context.Background(), "nada")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestFindPageByTitle_Unconfigured(t *testing.T) {
	d := &Directory{}

	_, err := d.FindPageByTitle(context.Background(), "algo")
	if !errors.Is(err, ErrServiceUnavailable) {
		t.Errorf("error = %v, want ErrServiceUnavailable", err)
	}
}

func TestDefaultParentID_FirstDatabase(t *testing.T) {
	d := &Directory{search: searchReturning(
		apiDatabase("d1", "Tareas"),
		apiDatabase("d2", "Projects"),
	)}

	if got := d.DefaultParentID(context.Background()); got != "d1" {
		t.Errorf("DefaultParentID() = %q, want d1", got)
	}
}

func TestDefaultParentID_FallsBackToUnfilteredSearch(t *testing.T) {
	search := &fakeSearch{do: func(req *notionapi.SearchRequest) (*notionapi.SearchResponse, error) {
		// No databases shared with the integration; only a lone page shows
		// up in the unfiltered search.
		if req.Filter.Value == "database" {
			return &notionapi.SearchResponse{}, nil
		}
		return &notionapi.SearchResponse{Results: []notionapi.Object{
			apiPage("p9", "Única página"),
		}}, nil
	}}
	d := &Directory{search: search}

	if got := d.DefaultParentID(context.Background()); got != "p9" {
		t.Errorf("DefaultParentID() = %q, want p9", got)
	}
}

func TestDefaultParentID_EmptyWorkspace(t *testing.T) {
	d := &Directory{search: searchReturning()}

	if got := d.DefaultParentID(context.Background()); got != "" {
		t.Errorf("DefaultParentID() = %q, want empty", got)
	}
}

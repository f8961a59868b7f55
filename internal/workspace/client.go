// ABOUTME: Workspace service client over the Notion API
// ABOUTME: All operations degrade to empty/not-found results, never panic the router
package workspace

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jomei/notionapi"

	"github.com/dvergara/nexo/internal/models"
)

var (
	// ErrServiceUnavailable means the service is unreachable or unauthenticated
	ErrServiceUnavailable = errors.New("notion no está configurado")
	// ErrNotFound means a named entity is absent
	ErrNotFound = errors.New("no encontrado")
)

// Narrow views of the notionapi services; fakes in tests implement these.
type searchService interface {
	Do(ctx context.Context, request *notionapi.SearchRequest) (*notionapi.SearchResponse, error)
}

type pageService interface {
	Get(ctx context.Context, id notionapi.PageID) (*notionapi.Page, error)
	Create(ctx context.Context, request *notionapi.PageCreateRequest) (*notionapi.Page, error)
	Update(ctx context.Context, id notionapi.PageID, request *notionapi.PageUpdateRequest) (*notionapi.Page, error)
}

type blockService interface {
	GetChildren(ctx context.Context, id notionapi.BlockID, pagination *notionapi.Pagination) (*notionapi.GetChildrenResponse, error)
	AppendChildren(ctx context.Context, id notionapi.BlockID, request *notionapi.AppendBlockChildrenRequest) (*notionapi.AppendBlockChildrenResponse, error)
}

// Client wraps the workspace service plus the directory cache
type Client struct {
	search searchService
	pages  pageService
	blocks blockService

	*Directory
}

// New builds a client from an integration token. An empty token yields an
// unconfigured client whose operations all degrade gracefully.
func New(token string) *Client {
	c := &Client{}
	if token != "" {
		api := notionapi.NewClient(notionapi.Token(token))
		c.search = api.Search
		c.pages = api.Page
		c.blocks = api.Block
	}
	c.Directory = &Directory{search: c.search}
	return c
}

// Configured reports whether a service token was provided
func (c *Client) Configured() bool {
	return c.search != nil
}

// SearchPages runs a free-text search filtered to page objects
func (c *Client) SearchPages(ctx context.Context, query string) ([]models.Page, error) {
	if !c.Configured() {
		return nil, ErrServiceUnavailable
	}

	resp, err := c.search.Do(ctx, &notionapi.SearchRequest{
		Query:  query,
		Filter: notionapi.SearchFilter{Property: "object", Value: "page"},
	})
	if err != nil {
		return nil, fmt.Errorf("buscando páginas: %w", err)
	}

	var pages []models.Page
	for _, obj := range resp.Results {
		if p, ok := obj.(*notionapi.Page); ok {
			pages = append(pages, models.Page{
				ID:    p.ID.String(),
				Title: pageTitle(p),
				URL:   p.URL,
			})
		}
	}
	return pages, nil
}

// GetPage retrieves a page and the number of its child blocks
func (c *Client) GetPage(ctx context.Context, pageID string) (*models.Page, int, error) {
	if !c.Configured() {
		return nil, 0, ErrServiceUnavailable
	}

	clean := CleanID(pageID)
	page, err := c.pages.Get(ctx, notionapi.PageID(clean))
	if err != nil {
		return nil, 0, fmt.Errorf("obteniendo página: %w", err)
	}

	blockCount := 0
	if children, err := c.blocks.GetChildren(ctx, notionapi.BlockID(clean), nil); err == nil {
		blockCount = len(children.Results)
	}

	return &models.Page{
		ID:    clean,
		Title: pageTitle(page),
		URL:   page.URL,
	}, blockCount, nil
}

// CreatePage creates a page under parentID, rewrites its title to carry the
// new page ID, and appends the optional paragraph content. Both follow-ups
// mirror the observed service usage; their failure does not undo creation.
func (c *Client) CreatePage(ctx context.Context, parentID, title, content string) (*models.Page, error) {
	if !c.Configured() {
		return nil, ErrServiceUnavailable
	}

	clean := CleanID(parentID)
	page, err := c.pages.Create(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:   notionapi.ParentTypePageID,
			PageID: notionapi.PageID(clean),
		},
		Properties: titleProperties(title),
	})
	if err != nil {
		return nil, fmt.Errorf("creando página: %w", err)
	}

	pageID := page.ID.String()
	titleWithID := fmt.Sprintf("%s %s", title, pageID)
	if _, err := c.pages.Update(ctx, notionapi.PageID(pageID), &notionapi.PageUpdateRequest{
		Properties: titleProperties(titleWithID),
	}); err != nil {
		titleWithID = title
	}

	if content != "" {
		_ = c.AppendParagraph(ctx, pageID, content)
	}

	return &models.Page{
		ID:    pageID,
		Title: titleWithID,
		URL:   page.URL,
	}, nil
}

// UpdateTitle replaces a page's title
func (c *Client) UpdateTitle(ctx context.Context, pageID, title string) error {
	if !c.Configured() {
		return ErrServiceUnavailable
	}
	_, err := c.pages.Update(ctx, notionapi.PageID(CleanID(pageID)), &notionapi.PageUpdateRequest{
		Properties: titleProperties(title),
	})
	if err != nil {
		return fmt.Errorf("actualizando título: %w", err)
	}
	return nil
}

// AppendParagraph appends a paragraph block at the end of a page
func (c *Client) AppendParagraph(ctx context.Context, pageID, content string) error {
	if !c.Configured() {
		return ErrServiceUnavailable
	}
	_, err := c.blocks.AppendChildren(ctx, notionapi.BlockID(CleanID(pageID)), &notionapi.AppendBlockChildrenRequest{
		Children: []notionapi.Block{
			&notionapi.ParagraphBlock{
				BasicBlock: notionapi.BasicBlock{
					Object: notionapi.ObjectTypeBlock,
					Type:   notionapi.BlockTypeParagraph,
				},
				Paragraph: notionapi.Paragraph{
					RichText: []notionapi.RichText{
						{
							Type: notionapi.ObjectTypeText,
							Text: &notionapi.Text{Content: content},
						},
					},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("agregando contenido: %w", err)
	}
	return nil
}

// BlockCount returns the number of child blocks of a page
func (c *Client) BlockCount(ctx context.Context, pageID string) (int, error) {
	if !c.Configured() {
		return 0, ErrServiceUnavailable
	}
	children, err := c.blocks.GetChildren(ctx, notionapi.BlockID(CleanID(pageID)), nil)
	if err != nil {
		return 0, fmt.Errorf("listando bloques: %w", err)
	}
	return len(children.Results), nil
}

// CleanID strips separator punctuation from a workspace identifier.
// Identifiers may arrive with or without hyphens; the service takes both but
// is normalized here for consistency.
func CleanID(id string) string {
	return strings.ReplaceAll(strings.TrimSpace(id), "-", "")
}

// titleProperties builds the properties payload for a title update
func titleProperties(title string) notionapi.Properties {
	return notionapi.Properties{
		"title": notionapi.TitleProperty{
			Title: []notionapi.RichText{
				{Text: &notionapi.Text{Content: title}},
			},
		},
	}
}

// pageTitle extracts the plain-text title from a page's properties
func pageTitle(page *notionapi.Page) string {
	for _, prop := range page.Properties {
		if tp, ok := prop.(*notionapi.TitleProperty); ok {
			return richPlainText(tp.Title)
		}
		if tp, ok := prop.(notionapi.TitleProperty); ok {
			return richPlainText(tp.Title)
		}
	}
	return "Sin título"
}

// richPlainText flattens rich text into its plain form
func richPlainText(parts []notionapi.RichText) string {
	if len(parts) == 0 {
		return "Sin título"
	}
	var sb strings.Builder
	for _, rt := range parts {
		if rt.PlainText != "" {
			sb.WriteString(rt.PlainText)
		} else if rt.Text != nil {
			sb.WriteString(rt.Text.Content)
		}
	}
	if sb.Len() == 0 {
		return "Sin título"
	}
	return sb.String()
}

package notion

import (
	"context"
	"fmt"

	"github.com/jomei/notionapi"
	"github.com/takak2166/bleeeeeefing/internal/logger"
	"github.com/takak2166/bleeeeeefing/internal/models"
)

// TitleProperty is the name of the title property of week collections
const TitleProperty = "Name"

const pageSize = 100

// Client wraps the Notion API client
type Client struct {
	client NotionClient
}

// New creates a new Notion client
func New(token string) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("notion token is not set")
	}

	notionClient := notionapi.NewClient(notionapi.Token(token))
	return &Client{
		client: newNotionClientAdapter(notionClient),
	}, nil
}

// Children returns every direct child block of blockID, following pagination
func (c *Client) Children(ctx context.Context, blockID string) ([]models.Block, error) {
	var blocks []models.Block
	pagination := &notionapi.Pagination{PageSize: pageSize}

	for {
		resp, err := c.client.Block().GetChildren(ctx, notionapi.BlockID(blockID), pagination)
		if err != nil {
			return nil, fmt.Errorf("failed to get children of %s: %w", blockID, err)
		}
		for _, b := range resp.Results {
			blocks = append(blocks, toModel(b))
		}
		if !resp.HasMore || resp.NextCursor == "" {
			break
		}
		pagination = &notionapi.Pagination{
			StartCursor: notionapi.Cursor(resp.NextCursor),
			PageSize:    pageSize,
		}
	}

	logger.Debug("Fetched Notion children", logger.Fields{
		"block_id": blockID,
		"count":    len(blocks),
	})

	return blocks, nil
}

// QueryByTitle returns the rows of a database whose title equals title
func (c *Client) QueryByTitle(ctx context.Context, collectionID, title string) ([]models.Record, error) {
	return c.query(ctx, collectionID, &notionapi.PropertyFilter{
		Property: TitleProperty,
		RichText: &notionapi.TextFilterCondition{
			Equals: title,
		},
	})
}

// Rows returns all rows of a database in the database's natural order
func (c *Client) Rows(ctx context.Context, collectionID string) ([]models.Record, error) {
	return c.query(ctx, collectionID, nil)
}

func (c *Client) query(ctx context.Context, collectionID string, filter notionapi.Filter) ([]models.Record, error) {
	var records []models.Record
	req := &notionapi.DatabaseQueryRequest{
		Filter:   filter,
		PageSize: pageSize,
	}

	for {
		resp, err := c.client.Database().Query(ctx, notionapi.DatabaseID(collectionID), req)
		if err != nil {
			return nil, fmt.Errorf("failed to query database %s: %w", collectionID, err)
		}
		for _, page := range resp.Results {
			records = append(records, models.Record{
				ID:    string(page.ID),
				Title: pageTitle(page.Properties),
			})
		}
		if !resp.HasMore || resp.NextCursor == "" {
			break
		}
		req = &notionapi.DatabaseQueryRequest{
			Filter:      filter,
			StartCursor: notionapi.Cursor(resp.NextCursor),
			PageSize:    pageSize,
		}
	}

	return records, nil
}

// CreatePage creates a page under parentID with the given title and content
func (c *Client) CreatePage(ctx context.Context, parentID, title string, blocks []models.Block) (string, error) {
	logger.Debug("Creating Notion page", logger.Fields{
		"parent": parentID,
		"title":  title,
		"blocks": len(blocks),
	})

	page, err := c.client.Page().Create(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:   "page_id",
			PageID: notionapi.PageID(parentID),
		},
		Properties: notionapi.Properties{
			"title": notionapi.TitleProperty{
				Title: richText(title),
			},
		},
		Children: fromModels(blocks),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create page %q: %w", title, err)
	}

	return string(page.ID), nil
}

// CreateCollection creates an inline database under a page. Its rows are
// keyed by the TitleProperty.
func (c *Client) CreateCollection(ctx context.Context, parentPageID, title string) (string, error) {
	db, err := c.client.Database().Create(ctx, &notionapi.DatabaseCreateRequest{
		Parent: notionapi.Parent{
			Type:   "page_id",
			PageID: notionapi.PageID(parentPageID),
		},
		Title: richText(title),
		Properties: notionapi.PropertyConfigs{
			TitleProperty: notionapi.TitlePropertyConfig{
				Type:  "title",
				Title: struct{}{},
			},
		},
		IsInline: true,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create database %q: %w", title, err)
	}

	logger.Debug("Created Notion database", logger.Fields{
		"parent": parentPageID,
		"title":  title,
		"id":     db.ID,
	})

	return string(db.ID), nil
}

// AddRow adds a row titled title with the given content to a database
func (c *Client) AddRow(ctx context.Context, collectionID, title string, blocks []models.Block) (string, error) {
	page, err := c.client.Page().Create(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       "database_id",
			DatabaseID: notionapi.DatabaseID(collectionID),
		},
		Properties: notionapi.Properties{
			TitleProperty: notionapi.TitleProperty{
				Title: richText(title),
			},
		},
		Children: fromModels(blocks),
	})
	if err != nil {
		return "", fmt.Errorf("failed to add row %q: %w", title, err)
	}

	return string(page.ID), nil
}

// pageTitle returns the text of the title property of a page
func pageTitle(props notionapi.Properties) string {
	for _, p := range props {
		switch tp := p.(type) {
		case *notionapi.TitleProperty:
			return plainText(tp.Title)
		case notionapi.TitleProperty:
			return plainText(tp.Title)
		}
	}
	return ""
}

package notion

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/jomei/notionapi"
	"github.com/takak2166/bleeeeeefing/internal/models"
	"github.com/takak2166/bleeeeeefing/internal/notion/mock_notion"
)

type mockServices struct {
	page     *mock_notion.MockPageService
	block    *mock_notion.MockBlockService
	database *mock_notion.MockDatabaseService
}

func (m *mockServices) Page() PageService         { return m.page }
func (m *mockServices) Block() BlockService       { return m.block }
func (m *mockServices) Database() DatabaseService { return m.database }

func newTestClient(t *testing.T) (*Client, *mockServices) {
	t.Helper()
	ctrl := gomock.NewController(t)

	services := &mockServices{
		page:     mock_notion.NewMockPageService(ctrl),
		block:    mock_notion.NewMockBlockService(ctrl),
		database: mock_notion.NewMockDatabaseService(ctrl),
	}
	return &Client{client: services}, services
}

func heading3(id, text string) notionapi.Block {
	return &notionapi.Heading3Block{
		BasicBlock: notionapi.BasicBlock{ID: notionapi.BlockID(id), Type: notionapi.BlockTypeHeading3},
		Heading3:   notionapi.Heading{RichText: []notionapi.RichText{{PlainText: text}}},
	}
}

func bulleted(id, text string) notionapi.Block {
	return &notionapi.BulletedListItemBlock{
		BasicBlock:       notionapi.BasicBlock{ID: notionapi.BlockID(id), Type: notionapi.BlockTypeBulletedListItem},
		BulletedListItem: notionapi.ListItem{RichText: []notionapi.RichText{{PlainText: text}}},
	}
}

func childPage(id, title string) notionapi.Block {
	b := &notionapi.ChildPageBlock{}
	b.ID = notionapi.BlockID(id)
	b.Type = notionapi.BlockTypeChildPage
	b.ChildPage.Title = title
	return b
}

func childDatabase(id, title string) notionapi.Block {
	b := &notionapi.ChildDatabaseBlock{}
	b.ID = notionapi.BlockID(id)
	b.Type = notionapi.BlockTypeChildDatabase
	b.ChildDatabase.Title = title
	return b
}

func TestNew(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Error("Expected error for empty token, got nil")
	}

	client, err := New("secret_test")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if client == nil {
		t.Error("Expected client, got nil")
	}
}

func TestChildren(t *testing.T) {
	ctx := context.Background()
	client, m := newTestClient(t)

	gomock.InOrder(
		m.block.EXPECT().GetChildren(ctx, notionapi.BlockID("top"), &notionapi.Pagination{PageSize: pageSize}).
			Return(&notionapi.GetChildrenResponse{
				Results:    []notionapi.Block{childPage("w1", "20210315〜20210321"), heading3("h1", "Done")},
				HasMore:    true,
				NextCursor: "cursor-2",
			}, nil),
		m.block.EXPECT().GetChildren(ctx, notionapi.BlockID("top"), &notionapi.Pagination{StartCursor: "cursor-2", PageSize: pageSize}).
			Return(&notionapi.GetChildrenResponse{
				Results: []notionapi.Block{bulleted("b1", "item1"), childDatabase("d1", "20210315〜20210321")},
			}, nil),
	)

	got, err := client.Children(ctx, "top")
	if err != nil {
		t.Fatalf("Children() error = %v", err)
	}

	expected := []models.Block{
		{ID: "w1", Type: models.BlockChildPage, Text: "20210315〜20210321"},
		{ID: "h1", Type: models.BlockHeading3, Text: "Done"},
		{ID: "b1", Type: models.BlockBulletedList, Text: "item1"},
		{ID: "d1", Type: models.BlockChildDatabase, Text: "20210315〜20210321"},
	}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Children() = %+v, want %+v", got, expected)
	}
}

func TestChildrenError(t *testing.T) {
	ctx := context.Background()
	client, m := newTestClient(t)

	m.block.EXPECT().GetChildren(ctx, notionapi.BlockID("top"), gomock.Any()).
		Return(nil, errors.New("unauthorized"))

	if _, err := client.Children(ctx, "top"); err == nil {
		t.Error("Expected error, got nil")
	}
}

func TestQueryByTitle(t *testing.T) {
	ctx := context.Background()
	client, m := newTestClient(t)

	m.database.EXPECT().Query(ctx, notionapi.DatabaseID("db1"), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ notionapi.DatabaseID, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error) {
			filter, ok := req.Filter.(*notionapi.PropertyFilter)
			if !ok {
				t.Fatalf("Expected property filter, got %T", req.Filter)
			}
			if filter.Property != TitleProperty {
				t.Errorf("Filter property = %q, want %q", filter.Property, TitleProperty)
			}
			if filter.RichText == nil || filter.RichText.Equals != "20210316" {
				t.Errorf("Filter value = %+v, want exact 20210316", filter.RichText)
			}
			return &notionapi.DatabaseQueryResponse{
				Results: []notionapi.Page{
					{
						ID: "row1",
						Properties: notionapi.Properties{
							TitleProperty: &notionapi.TitleProperty{
								Title: []notionapi.RichText{{PlainText: "20210316"}},
							},
						},
					},
				},
			}, nil
		})

	got, err := client.QueryByTitle(ctx, "db1", "20210316")
	if err != nil {
		t.Fatalf("QueryByTitle() error = %v", err)
	}
	expected := []models.Record{{ID: "row1", Title: "20210316"}}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("QueryByTitle() = %+v, want %+v", got, expected)
	}
}

func TestCreatePage(t *testing.T) {
	ctx := context.Background()
	client, m := newTestClient(t)

	layout := []models.Block{
		{Type: models.BlockHeading2, Text: "Summary"},
		{Type: models.BlockBulletedList, Text: "-"},
		{Type: models.BlockParagraph, Text: ""},
	}

	m.page.EXPECT().Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, req *notionapi.PageCreateRequest) (*notionapi.Page, error) {
			if req.Parent.PageID != "top" {
				t.Errorf("Parent page = %q, want top", req.Parent.PageID)
			}
			if len(req.Children) != len(layout) {
				t.Errorf("Children = %d, want %d", len(req.Children), len(layout))
			}
			if _, ok := req.Children[0].(*notionapi.Heading2Block); !ok {
				t.Errorf("First child = %T, want *notionapi.Heading2Block", req.Children[0])
			}
			return &notionapi.Page{ID: "new-page"}, nil
		})

	id, err := client.CreatePage(ctx, "top", "20210322〜20210328", layout)
	if err != nil {
		t.Fatalf("CreatePage() error = %v", err)
	}
	if id != "new-page" {
		t.Errorf("CreatePage() = %q, want new-page", id)
	}
}

func TestCreateCollectionAndAddRow(t *testing.T) {
	ctx := context.Background()
	client, m := newTestClient(t)

	m.database.EXPECT().Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, req *notionapi.DatabaseCreateRequest) (*notionapi.Database, error) {
			if !req.IsInline {
				t.Error("Expected inline database")
			}
			if _, ok := req.Properties[TitleProperty]; !ok {
				t.Errorf("Expected %s title property", TitleProperty)
			}
			return &notionapi.Database{ID: "db-new"}, nil
		})
	m.page.EXPECT().Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, req *notionapi.PageCreateRequest) (*notionapi.Page, error) {
			if req.Parent.DatabaseID != "db-new" {
				t.Errorf("Parent database = %q, want db-new", req.Parent.DatabaseID)
			}
			return &notionapi.Page{ID: "row-new"}, nil
		})

	dbID, err := client.CreateCollection(ctx, "week", "20210322〜20210328")
	if err != nil {
		t.Fatalf("CreateCollection() error = %v", err)
	}
	rowID, err := client.AddRow(ctx, dbID, "20210322", []models.Block{{Type: models.BlockHeading3, Text: "Done"}})
	if err != nil {
		t.Fatalf("AddRow() error = %v", err)
	}
	if rowID != "row-new" {
		t.Errorf("AddRow() = %q, want row-new", rowID)
	}
}

func TestCreatePageFailure(t *testing.T) {
	ctx := context.Background()
	client, m := newTestClient(t)

	m.page.EXPECT().Create(ctx, gomock.Any()).Return(nil, errors.New("validation_error"))

	if _, err := client.CreatePage(ctx, "top", "", nil); err == nil {
		t.Error("Expected error, got nil")
	}
}

package notion

import (
	"strings"

	"github.com/jomei/notionapi"
	"github.com/takak2166/bleeeeeefing/internal/models"
)

// toModel converts a notionapi block into a models.Block
func toModel(block notionapi.Block) models.Block {
	b := models.Block{
		ID:   string(block.GetID()),
		Type: models.BlockType(block.GetType()),
	}

	switch v := block.(type) {
	case *notionapi.Heading1Block:
		b.Type, b.Text = models.BlockHeading1, plainText(v.Heading1.RichText)
	case *notionapi.Heading2Block:
		b.Type, b.Text = models.BlockHeading2, plainText(v.Heading2.RichText)
	case *notionapi.Heading3Block:
		b.Type, b.Text = models.BlockHeading3, plainText(v.Heading3.RichText)
	case *notionapi.BulletedListItemBlock:
		b.Type, b.Text = models.BlockBulletedList, plainText(v.BulletedListItem.RichText)
	case *notionapi.NumberedListItemBlock:
		b.Type, b.Text = models.BlockNumberedList, plainText(v.NumberedListItem.RichText)
	case *notionapi.ToDoBlock:
		b.Type, b.Text = models.BlockToDo, plainText(v.ToDo.RichText)
	case *notionapi.ParagraphBlock:
		b.Type, b.Text = models.BlockParagraph, plainText(v.Paragraph.RichText)
	case *notionapi.ChildPageBlock:
		b.Type, b.Text = models.BlockChildPage, v.ChildPage.Title
	case *notionapi.ChildDatabaseBlock:
		b.Type, b.Text = models.BlockChildDatabase, v.ChildDatabase.Title
	}

	return b
}

// plainText concatenates the text of a rich text array
func plainText(rt []notionapi.RichText) string {
	var sb strings.Builder
	for _, r := range rt {
		if r.PlainText != "" {
			sb.WriteString(r.PlainText)
		} else if r.Text != nil {
			sb.WriteString(r.Text.Content)
		}
	}
	return sb.String()
}

func richText(text string) []notionapi.RichText {
	if text == "" {
		return []notionapi.RichText{}
	}
	return []notionapi.RichText{
		{
			Text: &notionapi.Text{
				Content: text,
			},
		},
	}
}

// fromModel converts a layout block into a notionapi block for creation.
// Types that cannot be created are written as paragraphs.
func fromModel(b models.Block) notionapi.Block {
	switch b.Type {
	case models.BlockHeading1:
		return &notionapi.Heading1Block{
			BasicBlock: notionapi.BasicBlock{
				Object: "block",
				Type:   notionapi.BlockTypeHeading1,
			},
			Heading1: notionapi.Heading{
				RichText: richText(b.Text),
			},
		}
	case models.BlockHeading2:
		return &notionapi.Heading2Block{
			BasicBlock: notionapi.BasicBlock{
				Object: "block",
				Type:   notionapi.BlockTypeHeading2,
			},
			Heading2: notionapi.Heading{
				RichText: richText(b.Text),
			},
		}
	case models.BlockHeading3:
		return &notionapi.Heading3Block{
			BasicBlock: notionapi.BasicBlock{
				Object: "block",
				Type:   notionapi.BlockTypeHeading3,
			},
			Heading3: notionapi.Heading{
				RichText: richText(b.Text),
			},
		}
	case models.BlockBulletedList:
		return &notionapi.BulletedListItemBlock{
			BasicBlock: notionapi.BasicBlock{
				Object: "block",
				Type:   notionapi.BlockTypeBulletedListItem,
			},
			BulletedListItem: notionapi.ListItem{
				RichText: richText(b.Text),
			},
		}
	case models.BlockNumberedList:
		return &notionapi.NumberedListItemBlock{
			BasicBlock: notionapi.BasicBlock{
				Object: "block",
				Type:   notionapi.BlockTypeNumberedListItem,
			},
			NumberedListItem: notionapi.ListItem{
				RichText: richText(b.Text),
			},
		}
	case models.BlockToDo:
		return &notionapi.ToDoBlock{
			BasicBlock: notionapi.BasicBlock{
				Object: "block",
				Type:   notionapi.BlockTypeToDo,
			},
			ToDo: notionapi.ToDo{
				RichText: richText(b.Text),
			},
		}
	default:
		return &notionapi.ParagraphBlock{
			BasicBlock: notionapi.BasicBlock{
				Object: "block",
				Type:   notionapi.BlockTypeParagraph,
			},
			Paragraph: notionapi.Paragraph{
				RichText: richText(b.Text),
			},
		}
	}
}

func fromModels(blocks []models.Block) []notionapi.Block {
	out := make([]notionapi.Block, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, fromModel(b))
	}
	return out
}

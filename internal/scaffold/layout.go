package scaffold

import "github.com/takak2166/bleeeeeefing/internal/models"

// Placeholder is the text of the empty list item under each header
const Placeholder = "-"

// Layout is an ordered list of blocks copied into a new page
type Layout []models.Block

// DefaultWeeklyLayout returns the summary section of a week page
func DefaultWeeklyLayout() Layout {
	return Layout{
		{Type: models.BlockHeading2, Text: "Summary"},
		{Type: models.BlockHeading3, Text: "Done"},
		{Type: models.BlockBulletedList, Text: Placeholder},
		{Type: models.BlockHeading3, Text: "Doing"},
		{Type: models.BlockBulletedList, Text: Placeholder},
		{Type: models.BlockHeading3, Text: "TODO"},
		{Type: models.BlockBulletedList, Text: Placeholder},
		{Type: models.BlockHeading3, Text: "Problems"},
		{Type: models.BlockBulletedList, Text: Placeholder},
		{Type: models.BlockParagraph, Text: ""},
	}
}

// DefaultDailyLayout returns the content of a day record
func DefaultDailyLayout() Layout {
	return Layout{
		{Type: models.BlockHeading3, Text: "Done"},
		{Type: models.BlockBulletedList, Text: Placeholder},
		{Type: models.BlockHeading3, Text: "TODO"},
		{Type: models.BlockBulletedList, Text: Placeholder},
		{Type: models.BlockHeading3, Text: "Problems"},
		{Type: models.BlockBulletedList, Text: Placeholder},
	}
}

// copyable drops blocks that cannot be recreated from their text alone
func copyable(blocks []models.Block) Layout {
	var layout Layout
	for _, b := range blocks {
		if b.Type == models.BlockChildDatabase || b.Type == models.BlockChildPage {
			continue
		}
		layout = append(layout, models.Block{Type: b.Type, Text: b.Text})
	}
	return layout
}

package models

import "time"

// BlockType is the document-store type of a block
type BlockType string

const (
	BlockHeading1      BlockType = "heading_1"
	BlockHeading2      BlockType = "heading_2"
	BlockHeading3      BlockType = "heading_3"
	BlockBulletedList  BlockType = "bulleted_list_item"
	BlockNumberedList  BlockType = "numbered_list_item"
	BlockToDo          BlockType = "to_do"
	BlockParagraph     BlockType = "paragraph"
	BlockChildPage     BlockType = "child_page"
	BlockChildDatabase BlockType = "child_database"
	BlockUnsupported   BlockType = "unsupported"
)

// Kind classifies a content line for chat formatting
type Kind int

const (
	Plain Kind = iota
	Heading
	ListItem
)

func (k Kind) String() string {
	switch k {
	case Heading:
		return "heading"
	case ListItem:
		return "list_item"
	default:
		return "plain"
	}
}

// KindOf maps a block type onto its content kind
func KindOf(t BlockType) Kind {
	switch t {
	case BlockHeading1, BlockHeading2, BlockHeading3:
		return Heading
	case BlockBulletedList, BlockNumberedList, BlockToDo:
		return ListItem
	default:
		return Plain
	}
}

// Block is a single block of a page. For child pages and child databases
// Text holds the title.
type Block struct {
	ID   string
	Type BlockType
	Text string
}

// ContentLine is a typed line of text ready to be formatted
type ContentLine struct {
	Kind Kind
	Text string
}

// Line converts a block into a content line
func (b Block) Line() ContentLine {
	return ContentLine{Kind: KindOf(b.Type), Text: b.Text}
}

// Record is a row of a collection (a day record inside a week database)
type Record struct {
	ID    string
	Title string
}

// Week describes the pages created for one scaffolded week
type Week struct {
	Title        string
	Begin        time.Time
	End          time.Time
	PageID       string
	CollectionID string
	DayIDs       []string
}

package report

import (
	"context"
	"fmt"
	"time"

	"github.com/takak2166/bleeeeeefing/internal/logger"
	"github.com/takak2166/bleeeeeefing/internal/models"
	"github.com/takak2166/bleeeeeefing/internal/weektitle"
)

// SummaryHeader is the heading of the weekly summary section. It is dropped
// from the weekly report.
const SummaryHeader = "Summary"

// Store is the read side of the document store
type Store interface {
	// Children returns all direct child blocks of a page or block, in order.
	Children(ctx context.Context, blockID string) ([]models.Block, error)
	// QueryByTitle returns the rows of a collection whose title equals title.
	QueryByTitle(ctx context.Context, collectionID, title string) ([]models.Record, error)
}

// DailyReport is the day record of a date along with its content blocks
type DailyReport struct {
	Date   time.Time
	Week   models.Block
	Record models.Record
	Blocks []models.Block
}

// WeeklySummary is the summary section of a week page
type WeeklySummary struct {
	Title string
	Lines []models.ContentLine
}

// Locator finds report pages under the top page
type Locator struct {
	store Store
}

// NewLocator creates a new Locator
func NewLocator(store Store) *Locator {
	return &Locator{store: store}
}

// LocateDailyReport finds the day record for date: the week page under the
// top page, the week collection inside it, then the row titled YYYYMMDD.
func (l *Locator) LocateDailyReport(ctx context.Context, topPageID string, date time.Time) (*DailyReport, error) {
	week, err := l.findWeek(ctx, topPageID, date)
	if err != nil {
		return nil, err
	}

	children, err := l.store.Children(ctx, week.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list week page children: %w", err)
	}
	collection, ok := firstMatching(children, date, StageWeekCollection, func(b models.Block) bool {
		return b.Type == models.BlockChildDatabase
	})
	if !ok {
		return nil, &NotFoundError{Stage: StageWeekCollection, Date: weektitle.FormatDate(date)}
	}

	title := weektitle.FormatDate(date)
	records, err := l.store.QueryByTitle(ctx, collection.ID, title)
	if err != nil {
		return nil, fmt.Errorf("failed to query week collection: %w", err)
	}
	if len(records) == 0 {
		return nil, &NotFoundError{Stage: StageDay, Date: title}
	}
	if len(records) > 1 {
		logger.Warn("Multiple day records found, using the first", logger.Fields{
			"stage":   StageDay,
			"date":    title,
			"matches": len(records),
		})
	}
	record := records[0]

	blocks, err := l.store.Children(ctx, record.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list day record content: %w", err)
	}

	logger.Debug("Located daily report", logger.Fields{
		"week":   week.Text,
		"record": record.Title,
		"blocks": len(blocks),
	})

	return &DailyReport{
		Date:   date,
		Week:   week,
		Record: record,
		Blocks: blocks,
	}, nil
}

// LocateWeeklySummary returns the summary lines of the week page containing
// date. Collection views, plain paragraphs and the Summary header are left out.
func (l *Locator) LocateWeeklySummary(ctx context.Context, topPageID string, date time.Time) (*WeeklySummary, error) {
	week, err := l.findWeek(ctx, topPageID, date)
	if err != nil {
		return nil, err
	}

	children, err := l.store.Children(ctx, week.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list week page children: %w", err)
	}

	var lines []models.ContentLine
	for _, b := range children {
		if b.Type == models.BlockChildDatabase || b.Type == models.BlockParagraph {
			continue
		}
		if b.Text == SummaryHeader {
			continue
		}
		lines = append(lines, b.Line())
	}

	return &WeeklySummary{Title: week.Text, Lines: lines}, nil
}

func (l *Locator) findWeek(ctx context.Context, topPageID string, date time.Time) (models.Block, error) {
	children, err := l.store.Children(ctx, topPageID)
	if err != nil {
		return models.Block{}, fmt.Errorf("failed to list top page children: %w", err)
	}

	week, ok := firstMatching(children, date, StageWeek, func(b models.Block) bool {
		return b.Type == models.BlockChildPage
	})
	if !ok {
		return models.Block{}, &NotFoundError{Stage: StageWeek, Date: weektitle.FormatDate(date)}
	}
	return week, nil
}

// firstMatching returns the first block accepted by filter whose title is a
// week title containing date. Duplicates are tolerated and logged.
func firstMatching(blocks []models.Block, date time.Time, stage string, filter func(models.Block) bool) (models.Block, bool) {
	var matches []models.Block
	for _, b := range blocks {
		if filter(b) && weektitle.Matches(b.Text, date) {
			matches = append(matches, b)
		}
	}
	if len(matches) == 0 {
		return models.Block{}, false
	}
	if len(matches) > 1 {
		logger.Warn("Multiple pages match date, using the first", logger.Fields{
			"stage":   stage,
			"date":    weektitle.FormatDate(date),
			"matches": len(matches),
		})
	}
	return matches[0], true
}

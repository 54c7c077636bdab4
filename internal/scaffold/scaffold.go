package scaffold

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/takak2166/bleeeeeefing/internal/logger"
	"github.com/takak2166/bleeeeeefing/internal/models"
	"github.com/takak2166/bleeeeeefing/internal/weektitle"
)

// TemplateTitle is the title of the page new weeks are copied from
const TemplateTitle = "Template"

// DaysPerWeek is the number of day records created for each week
const DaysPerWeek = 7

// Writer is the write side of the document store
type Writer interface {
	CreatePage(ctx context.Context, parentID, title string, blocks []models.Block) (string, error)
	CreateCollection(ctx context.Context, parentPageID, title string) (string, error)
	AddRow(ctx context.Context, collectionID, title string, blocks []models.Block) (string, error)
}

// TemplateReader reads an existing template page
type TemplateReader interface {
	Children(ctx context.Context, blockID string) ([]models.Block, error)
	Rows(ctx context.Context, collectionID string) ([]models.Record, error)
}

// Scaffolder creates week pages and their day records
type Scaffolder struct {
	writer Writer
	reader TemplateReader
	weekly Layout
	daily  Layout
}

// Option configures a Scaffolder
type Option func(*Scaffolder)

// WithLayouts overrides the default weekly and daily layouts. Empty layouts
// keep the defaults.
func WithLayouts(weekly, daily Layout) Option {
	return func(s *Scaffolder) {
		if len(weekly) > 0 {
			s.weekly = weekly
		}
		if len(daily) > 0 {
			s.daily = daily
		}
	}
}

// WithTemplatePage copies layouts from the Template page under the top page
// when one exists.
func WithTemplatePage(reader TemplateReader) Option {
	return func(s *Scaffolder) {
		s.reader = reader
	}
}

// New creates a new Scaffolder
func New(writer Writer, opts ...Option) *Scaffolder {
	s := &Scaffolder{
		writer: writer,
		weekly: DefaultWeeklyLayout(),
		daily:  DefaultDailyLayout(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScaffoldWeek creates the week page for begin..begin+6 under the top page,
// with the weekly layout, a collection titled like the page and one day
// record per day.
func (s *Scaffolder) ScaffoldWeek(ctx context.Context, topPageID string, begin time.Time) (*models.Week, error) {
	weekly, daily := s.layouts(ctx, topPageID)
	title := weektitle.ForWeek(begin)

	week, err := s.build(ctx, topPageID, title, title, begin, weekly, daily)
	if err != nil {
		return nil, err
	}

	logger.Info("Created next week pages", logger.Fields{
		"title": week.Title,
		"days":  len(week.DayIDs),
	})
	return week, nil
}

// CreateTemplate creates the Template page that later weeks are copied from
func (s *Scaffolder) CreateTemplate(ctx context.Context, topPageID string, begin time.Time) (*models.Week, error) {
	daily := make([]Layout, DaysPerWeek)
	for i := range daily {
		daily[i] = s.daily
	}

	week, err := s.build(ctx, topPageID, TemplateTitle, weektitle.ForWeek(begin), begin, s.weekly, daily)
	if err != nil {
		return nil, err
	}

	logger.Info("Created template page", logger.Fields{
		"page_id": week.PageID,
	})
	return week, nil
}

func (s *Scaffolder) build(ctx context.Context, topPageID, pageTitle, collectionTitle string, begin time.Time, weekly Layout, daily []Layout) (*models.Week, error) {
	week := &models.Week{
		Title: collectionTitle,
		Begin: begin,
		End:   begin.AddDate(0, 0, DaysPerWeek-1),
	}

	pageID, err := s.writer.CreatePage(ctx, topPageID, pageTitle, weekly)
	if err != nil {
		return nil, fmt.Errorf("failed to create week page: %w", err)
	}
	week.PageID = pageID

	collectionID, err := s.writer.CreateCollection(ctx, pageID, collectionTitle)
	if err != nil {
		return nil, fmt.Errorf("failed to create week collection: %w", err)
	}
	week.CollectionID = collectionID

	for i := 0; i < DaysPerWeek; i++ {
		day := weektitle.FormatDate(begin.AddDate(0, 0, i))
		id, err := s.writer.AddRow(ctx, collectionID, day, daily[i])
		if err != nil {
			return nil, fmt.Errorf("failed to create day record %s: %w", day, err)
		}
		week.DayIDs = append(week.DayIDs, id)
	}

	return week, nil
}

// layouts returns the weekly layout and one daily layout per day. Layouts
// from the Template page take precedence over the configured ones.
func (s *Scaffolder) layouts(ctx context.Context, topPageID string) (Layout, []Layout) {
	weekly := s.weekly
	daily := make([]Layout, DaysPerWeek)
	for i := range daily {
		daily[i] = s.daily
	}

	if s.reader == nil {
		return weekly, daily
	}

	tmpl, err := s.readTemplate(ctx, topPageID)
	if err != nil {
		logger.Warn("Failed to read template page, using configured layouts", logger.Fields{
			"error": err.Error(),
		})
		return weekly, daily
	}
	if tmpl == nil {
		return weekly, daily
	}

	if len(tmpl.weekly) > 0 {
		weekly = tmpl.weekly
	}
	for i, l := range tmpl.daily {
		if i < DaysPerWeek && len(l) > 0 {
			daily[i] = l
		}
	}
	return weekly, daily
}

type template struct {
	weekly Layout
	daily  []Layout
}

func (s *Scaffolder) readTemplate(ctx context.Context, topPageID string) (*template, error) {
	top, err := s.reader.Children(ctx, topPageID)
	if err != nil {
		return nil, err
	}

	var pageID string
	for _, b := range top {
		if b.Type == models.BlockChildPage && b.Text == TemplateTitle {
			pageID = b.ID
			break
		}
	}
	if pageID == "" {
		logger.Debug("No template page found")
		return nil, nil
	}

	children, err := s.reader.Children(ctx, pageID)
	if err != nil {
		return nil, err
	}
	tmpl := &template{weekly: copyable(children)}

	for _, b := range children {
		if b.Type != models.BlockChildDatabase {
			continue
		}
		rows, err := s.reader.Rows(ctx, b.ID)
		if err != nil {
			return nil, err
		}
		// Day i of a new week takes the i-th row by title, whatever order
		// the store returns them in.
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].Title < rows[j].Title
		})
		for _, row := range rows {
			content, err := s.reader.Children(ctx, row.ID)
			if err != nil {
				return nil, err
			}
			tmpl.daily = append(tmpl.daily, copyable(content))
		}
		break
	}

	return tmpl, nil
}

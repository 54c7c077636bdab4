package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/takak2166/bleeeeeefing/internal/formatter"
	"github.com/takak2166/bleeeeeefing/internal/logger"
	"github.com/takak2166/bleeeeeefing/internal/models"
	"github.com/takak2166/bleeeeeefing/internal/slack"
)

// HeaderDateLayout is the layout of the date line on top of a daily report
const HeaderDateLayout = "2006/01/02"

// Publisher posts formatted lines to a chat channel
type Publisher interface {
	Publish(ctx context.Context, lines []string, channel string) error
}

// WeekScaffolder creates the pages of a new week
type WeekScaffolder interface {
	ScaffoldWeek(ctx context.Context, topPageID string, begin time.Time) (*models.Week, error)
}

// Service runs the daily and weekly reports
type Service struct {
	locator    *Locator
	formatter  *formatter.Formatter
	publisher  Publisher
	scaffolder WeekScaffolder
	topPageID  string
	channel    string
}

// Option configures a Service
type Option func(*Service)

// WithScaffolder makes the weekly report create next week's pages
func WithScaffolder(s WeekScaffolder) Option {
	return func(svc *Service) {
		svc.scaffolder = s
	}
}

// NewService creates a new Service
func NewService(store Store, f *formatter.Formatter, publisher Publisher, topPageID, channel string, opts ...Option) *Service {
	s := &Service{
		locator:   NewLocator(store),
		formatter: f,
		publisher: publisher,
		topPageID: topPageID,
		channel:   channel,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Daily posts the day record of date
func (s *Service) Daily(ctx context.Context, date time.Time) error {
	rep, err := s.locator.LocateDailyReport(ctx, s.topPageID, date)
	if err != nil {
		return err
	}

	lines := append([]string{date.Format(HeaderDateLayout)}, s.formatter.Blocks(rep.Blocks)...)
	return s.publish(ctx, "daily", lines)
}

// Weekly posts the summary of the week that ended yesterday and, when a
// scaffolder is set, creates the pages of the week starting today.
func (s *Service) Weekly(ctx context.Context, today time.Time) error {
	yesterday := today.AddDate(0, 0, -1)
	summary, err := s.locator.LocateWeeklySummary(ctx, s.topPageID, yesterday)
	if err != nil {
		return err
	}

	lines := append([]string{summary.Title}, s.formatter.Format(summary.Lines)...)
	if err := s.publish(ctx, "weekly", lines); err != nil {
		return err
	}

	if s.scaffolder == nil {
		return nil
	}
	if _, err := s.scaffolder.ScaffoldWeek(ctx, s.topPageID, today); err != nil {
		return fmt.Errorf("failed to create next week: %w", err)
	}
	return nil
}

// publish posts lines and swallows Slack failures after logging them
func (s *Service) publish(ctx context.Context, kind string, lines []string) error {
	err := s.publisher.Publish(ctx, lines, s.channel)
	if err == nil {
		return nil
	}

	var publishErr *slack.PublishError
	if errors.As(err, &publishErr) {
		logger.Error("Failed to post report", err, logger.Fields{
			"report":  kind,
			"channel": publishErr.Channel,
			"reason":  publishErr.Reason,
		})
		return nil
	}
	return err
}

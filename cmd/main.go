package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/takak2166/bleeeeeefing/internal/config"
	"github.com/takak2166/bleeeeeefing/internal/formatter"
	"github.com/takak2166/bleeeeeefing/internal/logger"
	"github.com/takak2166/bleeeeeefing/internal/notion"
	"github.com/takak2166/bleeeeeefing/internal/report"
	"github.com/takak2166/bleeeeeefing/internal/scaffold"
	"github.com/takak2166/bleeeeeefing/internal/slack"
	"github.com/takak2166/bleeeeeefing/internal/weektitle"
)

var dateFlag string

var rootCmd = &cobra.Command{
	Use:   "bleeeeeefing",
	Short: "Post Bleeeeeefing reports from Notion to Slack",
	Long: `Posts the daily and weekly Bleeeeeefing reports kept in Notion to a
Slack channel, and creates next week's pages from the template.

Configuration is read from .env, config.yaml (or CONFIG_PATH) and the
environment: NOTION_TOKEN, SLACK_TOKEN, TOP_PAGE_ID and SLACK_CHANNEL.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dateFlag, "date", "", "Run for this date (YYYYMMDD) instead of today")
	rootCmd.AddCommand(dailyCmd, weeklyCmd, templateCmd, scheduleCmd)
}

// app holds the components built from the configuration
type app struct {
	cfg        *config.Config
	notion     *notion.Client
	formatter  *formatter.Formatter
	publisher  *slack.Publisher
	scaffolder *scaffold.Scaffolder
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if err := logger.Init(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	notionClient, err := notion.New(cfg.NotionToken)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Notion client: %w", err)
	}

	publisher, err := slack.New(cfg.SlackToken)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Slack client: %w", err)
	}

	return &app{
		cfg:    cfg,
		notion: notionClient,
		formatter: formatter.New(
			formatter.WithBullet(cfg.Bullet),
			formatter.WithHeadingSpacing(*cfg.HeadingSpacing),
		),
		publisher: publisher,
		scaffolder: scaffold.New(notionClient,
			scaffold.WithLayouts(cfg.Layouts()),
			scaffold.WithTemplatePage(notionClient),
		),
	}, nil
}

func (a *app) service(withScaffolder bool) *report.Service {
	var opts []report.Option
	if withScaffolder {
		opts = append(opts, report.WithScaffolder(a.scaffolder))
	}
	return report.NewService(a.notion, a.formatter, a.publisher, a.cfg.TopPageID, a.cfg.Channel, opts...)
}

// today returns the --date flag value or the current date
func (a *app) today() (time.Time, error) {
	return reportDate(dateFlag, a.cfg.Today())
}

// reportDate parses a YYYYMMDD date override, using now when it is empty
func reportDate(value string, now time.Time) (time.Time, error) {
	if value == "" {
		return now, nil
	}
	date, err := weektitle.ParseDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("--date: %w", err)
	}
	return date, nil
}

// logFailure logs a failed invocation, naming the lookup stage when a page
// was missing
func logFailure(name string, err error) {
	var notFound *report.NotFoundError
	if errors.As(err, &notFound) {
		logger.Error("Report page not found", err, logger.Fields{
			"report": name,
			"stage":  notFound.Stage,
			"date":   notFound.Date,
		})
		return
	}
	logger.Error("Report failed", err, logger.Fields{
		"report": name,
	})
}

func main() {
	cmd, err := rootCmd.ExecuteC()
	if err != nil {
		logFailure(cmd.Name(), err)
		os.Exit(1)
	}
}

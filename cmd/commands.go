package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/takak2166/bleeeeeefing/internal/logger"
	"github.com/takak2166/bleeeeeefing/internal/schedule"
	"github.com/takak2166/bleeeeeefing/internal/weektitle"
)

var (
	weeklyNoTemplate bool
	templateBegin    string
	templateInit     bool
)

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Post today's daily report",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		today, err := a.today()
		if err != nil {
			return err
		}
		return a.service(false).Daily(cmd.Context(), today)
	},
}

var weeklyCmd = &cobra.Command{
	Use:   "weekly",
	Short: "Post the summary of the week that ended yesterday and create next week's pages",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		today, err := a.today()
		if err != nil {
			return err
		}
		return a.service(!weeklyNoTemplate).Weekly(cmd.Context(), today)
	},
}

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Create the pages of a week, or the Template page with --init",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		begin, err := a.today()
		if err != nil {
			return err
		}
		if templateBegin != "" {
			if begin, err = weektitle.ParseDate(templateBegin); err != nil {
				return err
			}
		}

		if templateInit {
			_, err = a.scaffolder.CreateTemplate(cmd.Context(), a.cfg.TopPageID, begin)
			return err
		}
		_, err = a.scaffolder.ScaffoldWeek(cmd.Context(), a.cfg.TopPageID, begin)
		return err
	},
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run the daily and weekly reports on DAILY_SCHEDULE and WEEKLY_SCHEDULE",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		s, err := schedule.New(a.cfg.Location,
			// weekly first, so Monday's daily report finds the week it creates
			schedule.Job{
				Name:     "weekly",
				Schedule: a.cfg.WeeklySchedule,
				Run: func(ctx context.Context, today time.Time) error {
					return a.service(!weeklyNoTemplate).Weekly(ctx, today)
				},
			},
			schedule.Job{
				Name:     "daily",
				Schedule: a.cfg.DailySchedule,
				Run: func(ctx context.Context, today time.Time) error {
					return a.service(false).Daily(ctx, today)
				},
			},
		)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		logger.Info("Starting scheduler", logger.Fields{
			"timezone": a.cfg.Location.String(),
		})
		s.Run(ctx)
		return nil
	},
}

func init() {
	weeklyCmd.Flags().BoolVar(&weeklyNoTemplate, "no-template", false, "Do not create next week's pages")
	scheduleCmd.Flags().BoolVar(&weeklyNoTemplate, "no-template", false, "Do not create next week's pages in the weekly run")
	templateCmd.Flags().StringVar(&templateBegin, "begin", "", "First day of the week (YYYYMMDD), defaults to today")
	templateCmd.Flags().BoolVar(&templateInit, "init", false, "Create the Template page instead of a week")
}

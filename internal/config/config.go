package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/takak2166/bleeeeeefing/internal/formatter"
	"github.com/takak2166/bleeeeeefing/internal/models"
	"github.com/takak2166/bleeeeeefing/internal/scaffold"
	"gopkg.in/yaml.v3"
)

// Defaults
const (
	DefaultChannel        = "#bleeeeeefing"
	DefaultBullet         = formatter.DefaultBullet
	DefaultDailySchedule  = "0 9 * * 1-5"
	DefaultWeeklySchedule = "0 9 * * 1"
	DefaultLogLevel       = "info"
	DefaultConfigPath     = "config.yaml"
)

// LayoutBlock is one block of a layout in the YAML file
type LayoutBlock struct {
	Type string `yaml:"type"`
	Text string `yaml:"text"`
}

// Config is loaded once at startup and passed to every component
type Config struct {
	NotionToken string `yaml:"notion_token"`
	SlackToken  string `yaml:"slack_token"`
	TopPageID   string `yaml:"top_page_id"`
	Channel     string `yaml:"slack_channel"`

	Bullet         string `yaml:"bullet"`
	HeadingSpacing *bool  `yaml:"heading_spacing"`

	Timezone       string `yaml:"timezone"`
	DailySchedule  string `yaml:"daily_schedule"`
	WeeklySchedule string `yaml:"weekly_schedule"`
	LogLevel       string `yaml:"log_level"`

	WeeklyLayout []LayoutBlock `yaml:"weekly_layout"`
	DailyLayout  []LayoutBlock `yaml:"daily_layout"`

	Location *time.Location `yaml:"-"`
}

// Load reads .env (when present), the YAML config file (when present) and
// the environment, in increasing order of precedence.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	path := DefaultConfigPath
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		path = p
	}
	return LoadFile(path)
}

// LoadFile is Load without .env handling. A missing file is not an error.
func LoadFile(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	envOverride(&cfg.NotionToken, "NOTION_TOKEN")
	envOverride(&cfg.SlackToken, "SLACK_TOKEN")
	envOverride(&cfg.TopPageID, "TOP_PAGE_ID")
	envOverride(&cfg.Channel, "SLACK_CHANNEL")
	envOverride(&cfg.Bullet, "BULLET")
	envOverride(&cfg.Timezone, "TIMEZONE")
	envOverride(&cfg.DailySchedule, "DAILY_SCHEDULE")
	envOverride(&cfg.WeeklySchedule, "WEEKLY_SCHEDULE")
	envOverride(&cfg.LogLevel, "LOG_LEVEL")
	if err := envOverrideBool(&cfg.HeadingSpacing, "HEADING_SPACING"); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Channel == "" {
		c.Channel = DefaultChannel
	}
	if c.Bullet == "" {
		c.Bullet = DefaultBullet
	}
	if c.HeadingSpacing == nil {
		enabled := true
		c.HeadingSpacing = &enabled
	}
	if c.DailySchedule == "" {
		c.DailySchedule = DefaultDailySchedule
	}
	if c.WeeklySchedule == "" {
		c.WeeklySchedule = DefaultWeeklySchedule
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.Timezone == "" {
		c.Timezone = "Local"
	}
}

func (c *Config) validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"NOTION_TOKEN", c.NotionToken},
		{"SLACK_TOKEN", c.SlackToken},
		{"TOP_PAGE_ID", c.TopPageID},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%s is not set", r.name)
		}
	}

	if strings.EqualFold(c.Timezone, "Local") {
		c.Location = time.Local
	} else {
		loc, err := time.LoadLocation(c.Timezone)
		if err != nil {
			return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
		}
		c.Location = loc
	}

	if _, err := toLayout(c.WeeklyLayout); err != nil {
		return fmt.Errorf("invalid weekly_layout: %w", err)
	}
	if _, err := toLayout(c.DailyLayout); err != nil {
		return fmt.Errorf("invalid daily_layout: %w", err)
	}
	return nil
}

// Today returns the current date in the configured timezone
func (c *Config) Today() time.Time {
	return time.Now().In(c.Location)
}

// Layouts returns the configured weekly and daily layouts. Unset layouts are
// empty and leave the scaffolder defaults in place.
func (c *Config) Layouts() (scaffold.Layout, scaffold.Layout) {
	weekly, _ := toLayout(c.WeeklyLayout)
	daily, _ := toLayout(c.DailyLayout)
	return weekly, daily
}

var layoutTypes = map[string]models.BlockType{
	"heading_1":          models.BlockHeading1,
	"heading_2":          models.BlockHeading2,
	"heading_3":          models.BlockHeading3,
	"bulleted_list_item": models.BlockBulletedList,
	"numbered_list_item": models.BlockNumberedList,
	"to_do":              models.BlockToDo,
	"paragraph":          models.BlockParagraph,
}

func toLayout(blocks []LayoutBlock) (scaffold.Layout, error) {
	var layout scaffold.Layout
	for i, b := range blocks {
		t, ok := layoutTypes[b.Type]
		if !ok {
			return nil, fmt.Errorf("block %d: unsupported type %q", i, b.Type)
		}
		layout = append(layout, models.Block{Type: t, Text: b.Text})
	}
	return layout, nil
}

func envOverride(field *string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}

func envOverrideBool(field **bool, envKey string) error {
	val := os.Getenv(envKey)
	if val == "" {
		return nil
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", envKey, val, err)
	}
	*field = &parsed
	return nil
}

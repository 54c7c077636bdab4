package formatter

import (
	"strings"

	"github.com/takak2166/bleeeeeefing/internal/logger"
	"github.com/takak2166/bleeeeeefing/internal/models"
)

// DefaultBullet is the prefix put in front of list items
const DefaultBullet = "• "

// Formatter converts content lines into Slack mrkdwn lines
type Formatter struct {
	bullet         string
	headingSpacing bool
}

// Option configures a Formatter
type Option func(*Formatter)

// WithBullet sets the list item prefix, e.g. "・"
func WithBullet(bullet string) Option {
	return func(f *Formatter) {
		f.bullet = bullet
	}
}

// WithHeadingSpacing puts a blank line in front of every heading except the
// first output line.
func WithHeadingSpacing(enabled bool) Option {
	return func(f *Formatter) {
		f.headingSpacing = enabled
	}
}

// New creates a new Formatter
func New(opts ...Option) *Formatter {
	f := &Formatter{bullet: DefaultBullet}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format converts each line into one output line. The output always has the
// same length as the input and the first line never starts with a blank line.
func (f *Formatter) Format(lines []models.ContentLine) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, f.formatLine(line))
	}
	if len(out) > 0 {
		out[0] = strings.TrimLeft(out[0], "\n")
	}

	logger.Debug("Formatted content lines", logger.Fields{
		"lines": len(out),
	})

	return out
}

// Blocks formats the blocks of a page
func (f *Formatter) Blocks(blocks []models.Block) []string {
	return f.Format(Lines(blocks))
}

func (f *Formatter) formatLine(line models.ContentLine) string {
	switch line.Kind {
	case models.Heading:
		if f.headingSpacing {
			return "\n*" + line.Text + "*"
		}
		return "*" + line.Text + "*"
	case models.ListItem:
		return f.bullet + line.Text
	default:
		return line.Text
	}
}

// Lines converts blocks into content lines
func Lines(blocks []models.Block) []models.ContentLine {
	lines := make([]models.ContentLine, 0, len(blocks))
	for _, b := range blocks {
		lines = append(lines, b.Line())
	}
	return lines
}

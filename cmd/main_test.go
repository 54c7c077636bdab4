package main

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/takak2166/bleeeeeefing/internal/logger"
	"github.com/takak2166/bleeeeeefing/internal/report"
)

func TestReportDate(t *testing.T) {
	now := time.Date(2021, 3, 16, 8, 30, 0, 0, time.UTC)

	tests := []struct {
		name        string
		value       string
		expected    time.Time
		expectError bool
	}{
		{
			name:     "No override uses now",
			value:    "",
			expected: now,
		},
		{
			name:     "Override",
			value:    "20210101",
			expected: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:        "Dashed date",
			value:       "2021-01-01",
			expectError: true,
		},
		{
			name:        "Impossible date",
			value:       "20210230",
			expectError: true,
		},
		{
			name:        "Too short",
			value:       "2021011",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reportDate(tt.value, now)
			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !got.Equal(tt.expected) {
				t.Errorf("reportDate() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestLogFailure(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected []string
		absent   []string
	}{
		{
			name: "Missing week page",
			err:  fmt.Errorf("daily: %w", &report.NotFoundError{Stage: report.StageWeek, Date: "20210316"}),
			expected: []string{
				`msg="Report page not found"`,
				"stage=week",
				"date=20210316",
				"report=daily",
			},
		},
		{
			name:     "Missing day row",
			err:      &report.NotFoundError{Stage: report.StageDay, Date: "20210316"},
			expected: []string{"stage=day"},
		},
		{
			name:     "Other failure",
			err:      errors.New("unauthorized"),
			expected: []string{`msg="Report failed"`, "error=unauthorized", "report=daily"},
			absent:   []string{"stage="},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger.SetOutput(&buf)

			logFailure("daily", tt.err)

			out := buf.String()
			for _, want := range tt.expected {
				if !strings.Contains(out, want) {
					t.Errorf("log %q does not contain %q", out, want)
				}
			}
			for _, unwanted := range tt.absent {
				if strings.Contains(out, unwanted) {
					t.Errorf("log %q contains %q", out, unwanted)
				}
			}
		})
	}
}

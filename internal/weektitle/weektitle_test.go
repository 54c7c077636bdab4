package weektitle

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		title     string
		wantOK    bool
		wantBegin time.Time
		wantEnd   time.Time
	}{
		{
			name:      "Valid week title",
			title:     "20210101〜20210107",
			wantOK:    true,
			wantBegin: date(2021, 1, 1),
			wantEnd:   date(2021, 1, 7),
		},
		{
			name:      "Single day range",
			title:     "20210214〜20210214",
			wantOK:    true,
			wantBegin: date(2021, 2, 14),
			wantEnd:   date(2021, 2, 14),
		},
		{
			name:   "No delimiter",
			title:  "20210101",
			wantOK: false,
		},
		{
			name:   "Two delimiters",
			title:  "20210101〜20210107〜20210113",
			wantOK: false,
		},
		{
			name:   "Invalid month",
			title:  "20211301〜20211307",
			wantOK: false,
		},
		{
			name:   "Invalid day",
			title:  "20210230〜20210305",
			wantOK: false,
		},
		{
			name:   "Short date",
			title:  "2021011〜20210107",
			wantOK: false,
		},
		{
			name:   "ASCII tilde",
			title:  "20210101~20210107",
			wantOK: false,
		},
		{
			name:   "Begin after end",
			title:  "20210107〜20210101",
			wantOK: false,
		},
		{
			name:   "Template page",
			title:  "Template",
			wantOK: false,
		},
		{
			name:   "Empty",
			title:  "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ok := Parse(tt.title)
			if ok != tt.wantOK {
				t.Fatalf("Parse(%q) ok = %v, want %v", tt.title, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if !r.Begin.Equal(tt.wantBegin) || !r.End.Equal(tt.wantEnd) {
				t.Errorf("Parse(%q) = %v..%v, want %v..%v", tt.title, r.Begin, r.End, tt.wantBegin, tt.wantEnd)
			}
		})
	}
}

func TestMatchesWholeRange(t *testing.T) {
	begin := date(2021, 12, 28)
	end := date(2022, 1, 3)
	title := Make(begin, end)

	for d := begin; !d.After(end); d = d.AddDate(0, 0, 1) {
		if !Matches(title, d) {
			t.Errorf("Matches(%q, %s) = false, want true", title, FormatDate(d))
		}
	}

	outside := []time.Time{
		begin.AddDate(0, 0, -1),
		end.AddDate(0, 0, 1),
		begin.AddDate(-1, 0, 0),
	}
	for _, d := range outside {
		if Matches(title, d) {
			t.Errorf("Matches(%q, %s) = true, want false", title, FormatDate(d))
		}
	}
}

func TestMatchesIgnoresTimeOfDay(t *testing.T) {
	jst := time.FixedZone("JST", 9*60*60)
	title := "20210212〜20210218"

	late := time.Date(2021, 2, 18, 23, 59, 0, 0, jst)
	if !Matches(title, late) {
		t.Errorf("expected %v to match %q", late, title)
	}
	early := time.Date(2021, 2, 12, 0, 1, 0, 0, jst)
	if !Matches(title, early) {
		t.Errorf("expected %v to match %q", early, title)
	}
}

func TestMatchesMalformed(t *testing.T) {
	target := date(2021, 1, 3)
	for _, title := range []string{"20210101", "20210101〜20210107〜20210113", "abc〜def", "Summary"} {
		if Matches(title, target) {
			t.Errorf("Matches(%q) = true, want false", title)
		}
	}
}

func TestForWeek(t *testing.T) {
	got := ForWeek(date(2021, 1, 1))
	if got != "20210101〜20210107" {
		t.Errorf("ForWeek() = %q, want %q", got, "20210101〜20210107")
	}

	got = ForWeek(date(2021, 2, 26))
	if got != "20210226〜20210304" {
		t.Errorf("ForWeek() across month = %q, want %q", got, "20210226〜20210304")
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("20210214")
	if err != nil {
		t.Fatalf("ParseDate() error = %v", err)
	}
	if !got.Equal(date(2021, 2, 14)) {
		t.Errorf("ParseDate() = %v, want 2021-02-14", got)
	}

	for _, s := range []string{"", "2021-2-14", "20211301", "+2021021", "202102140"} {
		if _, err := ParseDate(s); err == nil {
			t.Errorf("ParseDate(%q) expected error", s)
		}
	}
}

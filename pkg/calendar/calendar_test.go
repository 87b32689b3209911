package calendar

import (
	"errors"
	"shiftboard/pkg/model"
	"testing"
	"time"
)

func TestMonthStart_SameKeyForWholeMonth(t *testing.T) {
	tests := []struct {
		name string
		date string
	}{
		{"first day", "2026-02-01"},
		{"middle", "2026-02-14"},
		{"last day", "2026-02-28"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MonthStartOf(tt.date)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != "2026-02-01" {
				t.Errorf("MonthStartOf(%s) = %s, want 2026-02-01", tt.date, got)
			}
		})
	}
}

func TestMonthStart_IndependentOfZone(t *testing.T) {
	newYork := time.FixedZone("UTC-5", -5*60*60)
	tokyo := time.FixedZone("UTC+9", 9*60*60)

	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{"late evening west of UTC", time.Date(2026, 2, 28, 23, 30, 0, 0, newYork), "2026-02-01"},
		{"just after midnight east of UTC", time.Date(2026, 3, 1, 0, 15, 0, 0, tokyo), "2026-03-01"},
		{"start of month west of UTC", time.Date(2026, 2, 1, 0, 0, 0, 0, newYork), "2026-02-01"},
		{"utc end of month", time.Date(2026, 1, 31, 23, 59, 59, 0, time.UTC), "2026-01-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MonthStart(tt.at); got != tt.want {
				t.Errorf("MonthStart(%v) = %s, want %s", tt.at, got, tt.want)
			}
		})
	}
}

func TestParseDate_Strict(t *testing.T) {
	invalid := []string{"", "2026-2-14", "2026/02/14", "2026-02-30", "14-02-2026", "2026-02-14T00:00:00Z"}
	for _, s := range invalid {
		if _, err := ParseDate(s); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("ParseDate(%q) error = %v, want ErrInvalidDate", s, err)
		}
	}

	if _, err := ParseDate("2028-02-29"); err != nil {
		t.Errorf("leap day rejected: %v", err)
	}
}

func TestNormalizeMonth(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"2026-02", "2026-02-01", false},
		{"2026-02-01", "2026-02-01", false},
		{"2026-02-17", "2026-02-01", false},
		{"2026-13", "", true},
		{"february", "", true},
	}

	for _, tt := range tests {
		got, err := NormalizeMonth(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidMonth) {
				t.Errorf("NormalizeMonth(%q) error = %v, want ErrInvalidMonth", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("NormalizeMonth(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestMonthEnd(t *testing.T) {
	tests := map[string]string{
		"2026-02-01": "2026-02-28",
		"2028-02-01": "2028-02-29",
		"2026-12-01": "2026-12-31",
		"2026-04-01": "2026-04-30",
	}
	for start, want := range tests {
		got, err := MonthEnd(start)
		if err != nil || got != want {
			t.Errorf("MonthEnd(%s) = %s, %v; want %s", start, got, err, want)
		}
	}
}

func TestMonthsOfYear(t *testing.T) {
	months := MonthsOfYear(2026)
	if len(months) != 12 {
		t.Fatalf("expected 12 months, got %d", len(months))
	}
	if months[0] != "2026-01-01" || months[11] != "2026-12-01" {
		t.Errorf("unexpected bounds: %s .. %s", months[0], months[11])
	}
}

func TestValidateRange(t *testing.T) {
	if err := ValidateRange("2026-02-01", "2026-02-28"); err != nil {
		t.Errorf("valid range rejected: %v", err)
	}
	if err := ValidateRange("2026-02-10", "2026-02-10"); err != nil {
		t.Errorf("single-day range rejected: %v", err)
	}
	if err := ValidateRange("2026-03-01", "2026-02-01"); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("reversed range error = %v, want ErrInvalidRange", err)
	}
	if err := ValidateRange("bad", "2026-02-01"); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("bad start error = %v, want ErrInvalidDate", err)
	}
}

func TestNextStatus_ThreeStateCycle(t *testing.T) {
	status := model.StatusAvailable
	want := []model.AvailabilityStatus{model.StatusVacation, model.StatusBlocked, model.StatusAvailable, model.StatusVacation}

	for i, w := range want {
		status = NextStatus(status)
		if status != w {
			t.Fatalf("step %d: got %q, want %q", i, status, w)
		}
	}
}

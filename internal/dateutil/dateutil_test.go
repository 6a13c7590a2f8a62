package dateutil

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestLayout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format string
		want   string
	}{
		{"revision date", RevisionDateFormat, "02-Jan-2006"},
		{"iso", "YYYY-MM-DD", "2006-01-02"},
		{"long month", "MMMM D, YYYY", "January 2, 2006"},
		{"short year", "DD/MM/YY", "02/01/06"},
		{"bracket literal", "[Day] D", "Day 2"},
		{"literal characters kept", "YYYY.MM", "2006.01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Layout(tt.format)
			if err != nil {
				t.Fatalf("Layout(%q) unexpected error: %v", tt.format, err)
			}
			if got != tt.want {
				t.Errorf("Layout(%q) = %q, want %q", tt.format, got, tt.want)
			}
		})
	}
}

func TestLayout_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format string
	}{
		{"empty", ""},
		{"too long", strings.Repeat("Y", MaxDateFormatLength+1)},
		{"unclosed bracket", "[YYYY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Layout(tt.format)
			if !errors.Is(err, ErrInvalidDateFormat) {
				t.Errorf("Layout(%q) error = %v, want ErrInvalidDateFormat", tt.format, err)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	ts := time.Date(2011, time.March, 5, 10, 0, 0, 0, time.UTC)

	got, err := Format(ts, RevisionDateFormat)
	if err != nil {
		t.Fatalf("Format() unexpected error: %v", err)
	}
	if got != "05-Mar-2011" {
		t.Errorf("Format() = %q, want %q", got, "05-Mar-2011")
	}

	if _, err := Format(ts, ""); !errors.Is(err, ErrInvalidDateFormat) {
		t.Errorf("Format(empty) error = %v, want ErrInvalidDateFormat", err)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	if err := Validate(RevisionDateFormat); err != nil {
		t.Errorf("Validate(%q) unexpected error: %v", RevisionDateFormat, err)
	}
	if err := Validate("[oops"); err == nil {
		t.Error("Validate(\"[oops\") expected error")
	}
}

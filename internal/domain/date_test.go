package domain

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	t.Parallel()

	d, err := ParseDate(" 2024-02-29 ")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if want := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC); !d.Equal(want) {
		t.Errorf("ParseDate = %v, want %v", d, want)
	}

	for _, bad := range []string{"", "2024-13-01", "01/02/2024", "2023-02-29"} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("ParseDate(%q) should fail", bad)
		}
	}
}

func TestDateOf_DropsTimeAndZone(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC-5", -5*60*60)
	// 03:00 UTC on Mar 10 is still Mar 9 at UTC-5.
	ts := time.Date(2024, 3, 10, 3, 0, 0, 0, time.UTC)

	if got := FormatDate(DateOf(ts, loc)); got != "2024-03-09" {
		t.Errorf("DateOf(UTC-5) = %s, want 2024-03-09", got)
	}
	if got := FormatDate(DateOf(ts, nil)); got != "2024-03-10" {
		t.Errorf("DateOf(nil) = %s, want 2024-03-10", got)
	}
}

// Tests for the grain package: truncation, stepping, JSON round trips.
package grain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestString(t *testing.T) {
	t.Parallel()

	cases := []struct {
		g    Grain
		want string
	}{
		{Second, "Second"},
		{Minute, "Minute"},
		{Hour, "Hour"},
		{Day, "Day"},
		{Week, "Week"},
		{Month, "Month"},
		{Quarter, "Quarter"},
		{Year, "Year"},
		{Grain(99), "Grain(99)"},
	}
	for _, tt := range cases {
		if got := tt.g.String(); got != tt.want {
			t.Errorf("String(%d) = %q, want %q", int(tt.g), got, tt.want)
		}
	}
}

func TestJSONRoundTrip(t *testing.T) {
	t.Parallel()

	for g := Second; g < Count; g++ {
		data, err := json.Marshal(g)
		if err != nil {
			t.Fatalf("marshal %v: %v", g, err)
		}
		var back Grain
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if back != g {
			t.Errorf("round trip %v = %v", g, back)
		}
	}

	var g Grain
	if err := json.Unmarshal([]byte(`"Fortnight"`), &g); err == nil {
		t.Error("unmarshal of unknown grain did not fail")
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	// Wednesday, deep inside the day.
	at := time.Date(2017, time.March, 15, 14, 35, 27, 0, time.UTC)

	cases := []struct {
		name string
		g    Grain
		want time.Time
	}{
		{"second", Second, time.Date(2017, 3, 15, 14, 35, 27, 0, time.UTC)},
		{"minute", Minute, time.Date(2017, 3, 15, 14, 35, 0, 0, time.UTC)},
		{"hour", Hour, time.Date(2017, 3, 15, 14, 0, 0, 0, time.UTC)},
		{"day", Day, time.Date(2017, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"week", Week, time.Date(2017, 3, 13, 0, 0, 0, 0, time.UTC)}, // Monday
		{"month", Month, time.Date(2017, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"quarter", Quarter, time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"year", Year, time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Truncate(at, tt.g, time.Monday)
			if !got.Equal(tt.want) {
				t.Errorf("Truncate(%v, %v) = %v, want %v", at, tt.g, got, tt.want)
			}
		})
	}
}

func TestTruncateWeekStart(t *testing.T) {
	t.Parallel()

	// 2017-01-01 is a Sunday.
	sunday := time.Date(2017, 1, 1, 10, 0, 0, 0, time.UTC)

	monday := Truncate(sunday, Week, time.Monday)
	if want := time.Date(2016, 12, 26, 0, 0, 0, 0, time.UTC); !monday.Equal(want) {
		t.Errorf("Monday-start week = %v, want %v", monday, want)
	}

	sundayStart := Truncate(sunday, Week, time.Sunday)
	if want := time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC); !sundayStart.Equal(want) {
		t.Errorf("Sunday-start week = %v, want %v", sundayStart, want)
	}
}

func TestAdd(t *testing.T) {
	t.Parallel()

	at := time.Date(2017, time.January, 31, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		g    Grain
		n    int
		want time.Time
	}{
		{"plus two hours", Hour, 2, time.Date(2017, 1, 31, 14, 0, 0, 0, time.UTC)},
		{"plus a week", Week, 1, time.Date(2017, 2, 7, 12, 0, 0, 0, time.UTC)},
		{"minus a day", Day, -1, time.Date(2017, 1, 30, 12, 0, 0, 0, time.UTC)},
		{"plus a quarter", Quarter, 1, time.Date(2017, 5, 1, 12, 0, 0, 0, time.UTC)},
		{"plus a year", Year, 1, time.Date(2018, 1, 31, 12, 0, 0, 0, time.UTC)},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Add(at, tt.g, tt.n)
			if !got.Equal(tt.want) {
				t.Errorf("Add(%v, %v, %d) = %v, want %v", at, tt.g, tt.n, got, tt.want)
			}
		})
	}
}

func TestFinerCoarser(t *testing.T) {
	t.Parallel()

	if Finer(Day, Hour) != Hour {
		t.Error("Finer(Day, Hour) != Hour")
	}
	if Coarser(Day, Hour) != Day {
		t.Error("Coarser(Day, Hour) != Day")
	}
}

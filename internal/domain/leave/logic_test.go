package leave

import (
	"testing"
	"time"
)

func TestDaysInclusive(t *testing.T) {
	cases := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{
			name:  "single day",
			start: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
			want:  1,
		},
		{
			name:  "three days",
			start: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC),
			want:  3,
		},
		{
			name:  "month boundary",
			start: time.Date(2025, 1, 30, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2025, 2, 2, 0, 0, 0, 0, time.UTC),
			want:  4,
		},
		{
			name:  "time of day ignored",
			start: time.Date(2025, 3, 1, 23, 30, 0, 0, time.UTC),
			end:   time.Date(2025, 3, 3, 0, 15, 0, 0, time.UTC),
			want:  3,
		},
		{
			name:  "end before start is not rejected",
			start: time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2025, 4, 8, 0, 0, 0, 0, time.UTC),
			want:  -1,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DaysInclusive(tc.start, tc.end); got != tc.want {
				t.Fatalf("DaysInclusive(%v, %v) = %d, want %d", tc.start, tc.end, got, tc.want)
			}
		})
	}
}

func TestYearOf(t *testing.T) {
	late := time.Date(2025, 12, 31, 23, 0, 0, 0, time.UTC)
	if got := YearOf(late); got != 2025 {
		t.Fatalf("YearOf(%v) = %d, want 2025", late, got)
	}
}

package service

import (
	"testing"
	"time"
)

func TestOverlaps(t *testing.T) {
	base := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	at := func(mins int) time.Time { return base.Add(time.Duration(mins) * time.Minute) }

	tests := []struct {
		name           string
		s1, e1, s2, e2 time.Time
		want           bool
	}{
		{
			name: "identical intervals",
			s1:   at(0), e1: at(60), s2: at(0), e2: at(60),
			want: true,
		},
		{
			name: "partial overlap at end",
			s1:   at(0), e1: at(60), s2: at(30), e2: at(90),
			want: true,
		},
		{
			name: "partial overlap at start",
			s1:   at(30), e1: at(90), s2: at(0), e2: at(60),
			want: true,
		},
		{
			name: "containment",
			s1:   at(0), e1: at(120), s2: at(30), e2: at(60),
			want: true,
		},
		{
			name: "touching endpoints do not conflict",
			s1:   at(0), e1: at(60), s2: at(60), e2: at(120),
			want: false,
		},
		{
			name: "touching endpoints reversed",
			s1:   at(60), e1: at(120), s2: at(0), e2: at(60),
			want: false,
		},
		{
			name: "disjoint",
			s1:   at(0), e1: at(30), s2: at(90), e2: at(120),
			want: false,
		},
		{
			name: "one minute overlap",
			s1:   at(0), e1: at(61), s2: at(60), e2: at(120),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := overlaps(tt.s1, tt.e1, tt.s2, tt.e2); got != tt.want {
				t.Errorf("overlaps() = %v, want %v", got, tt.want)
			}
		})
	}
}

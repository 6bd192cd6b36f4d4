package service

import (
	"testing"
	"time"
)

func TestQuote(t *testing.T) {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		hourlyRate float64
		duration   time.Duration
		wantTotal  float64
		wantHours  int64
	}{
		{
			name:       "exact single hour",
			hourlyRate: 50,
			duration:   time.Hour,
			wantTotal:  50,
			wantHours:  1,
		},
		{
			name:       "ninety minutes rounds up to two hours",
			hourlyRate: 45,
			duration:   90 * time.Minute,
			wantTotal:  90,
			wantHours:  2,
		},
		{
			name:       "five minutes bills minimum one hour",
			hourlyRate: 30,
			duration:   5 * time.Minute,
			wantTotal:  30,
			wantHours:  1,
		},
		{
			name:       "sixty one minutes rounds up to two hours",
			hourlyRate: 10,
			duration:   61 * time.Minute,
			wantTotal:  20,
			wantHours:  2,
		},
		{
			name:       "exact multiple hours",
			hourlyRate: 25,
			duration:   3 * time.Hour,
			wantTotal:  75,
			wantHours:  3,
		},
		{
			name:       "free facility",
			hourlyRate: 0,
			duration:   2 * time.Hour,
			wantTotal:  0,
			wantHours:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, hours := Quote(tt.hourlyRate, base, base.Add(tt.duration))
			if total != tt.wantTotal {
				t.Errorf("Quote() total = %v, want %v", total, tt.wantTotal)
			}
			if hours != tt.wantHours {
				t.Errorf("Quote() hours = %v, want %v", hours, tt.wantHours)
			}
		})
	}
}

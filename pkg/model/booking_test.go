package model

import "testing"

func TestParseBookingStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    BookingStatus
		wantErr bool
	}{
		{"PENDING", StatusPending, false},
		{"confirmed", StatusConfirmed, false},
		{"  Cancelled  ", StatusCancelled, false},
		{"COMPLETED", StatusCompleted, false},
		{"ARCHIVED", "", true},
		{"", "", true},
		{"PENDING ", StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBookingStatus(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseBookingStatus(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseBookingStatus(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to BookingStatus
		want     bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusPending, StatusPending, false},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusPending, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCompleted, StatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
				t.Errorf("%s.CanTransitionTo(%s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestStatusClassification(t *testing.T) {
	if !StatusPending.Active() || !StatusConfirmed.Active() {
		t.Error("PENDING and CONFIRMED must be active")
	}
	if StatusCancelled.Active() || StatusCompleted.Active() {
		t.Error("CANCELLED and COMPLETED must not be active")
	}
	if !StatusCancelled.Terminal() || !StatusCompleted.Terminal() {
		t.Error("CANCELLED and COMPLETED must be terminal")
	}
	if StatusPending.Terminal() || StatusConfirmed.Terminal() {
		t.Error("PENDING and CONFIRMED must not be terminal")
	}

	active := ActiveStatuses()
	if len(active) != 2 {
		t.Fatalf("ActiveStatuses() has %d entries, want 2", len(active))
	}
	for _, s := range active {
		if !s.Active() {
			t.Errorf("ActiveStatuses() contains inactive status %s", s)
		}
	}
}

package entities

import "testing"

func TestParseUrgencyLevel(t *testing.T) {
	tests := []struct {
		in   string
		want UrgencyLevel
		ok   bool
	}{
		{"routine", UrgencyRoutine, true},
		{"low", UrgencyRoutine, true},
		{"soon", UrgencySoon, true},
		{"medium", UrgencySoon, true},
		{"urgent", UrgencyUrgent, true},
		{"high", UrgencyUrgent, true},
		{"emergency", UrgencyEmergency, true},
		{" EMERGENCY ", UrgencyEmergency, true},
		{"critical", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseUrgencyLevel(tt.in)
		if ok != tt.ok {
			t.Errorf("ParseUrgencyLevel(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("ParseUrgencyLevel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUrgencyOrder(t *testing.T) {
	if !(UrgencyRoutine.Rank() < UrgencySoon.Rank() &&
		UrgencySoon.Rank() < UrgencyUrgent.Rank() &&
		UrgencyUrgent.Rank() < UrgencyEmergency.Rank()) {
		t.Error("urgency levels are not totally ordered")
	}
}

func TestUrgencyMax_KeepsHigherEvidence(t *testing.T) {
	if got := UrgencyUrgent.Max(UrgencySoon); got != UrgencyUrgent {
		t.Errorf("expected urgent, got %q", got)
	}
	if got := UrgencySoon.Max(UrgencyEmergency); got != UrgencyEmergency {
		t.Errorf("expected emergency, got %q", got)
	}
}

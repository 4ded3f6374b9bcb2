package services

import (
	"context"
	"testing"

	"github.com/providervault/ai-service/internal/domain/entities"
)

func TestClassify_LexiconForcesEmergency(t *testing.T) {
	c := NewUrgencyClassifier()

	// Model underplays classic heart attack symptoms
	level := c.Classify(context.Background(), "crushing chest pain and shortness of breath", "routine")

	if level != entities.UrgencyEmergency {
		t.Errorf("expected emergency, got %s", level)
	}
}

func TestClassify_EscalationMarkersForceAtLeastUrgent(t *testing.T) {
	c := NewUrgencyClassifier()

	if level := c.Classify(context.Background(), "high fever for three days", "routine"); level != entities.UrgencyUrgent {
		t.Errorf("expected urgent, got %s", level)
	}
	// Model's higher assessment survives the floor
	if level := c.Classify(context.Background(), "high fever for three days", "emergency"); level != entities.UrgencyEmergency {
		t.Errorf("expected emergency, got %s", level)
	}
}

func TestClassify_ModelLevelUsedWhenNoMarkers(t *testing.T) {
	c := NewUrgencyClassifier()

	cases := map[string]entities.UrgencyLevel{
		"routine":   entities.UrgencyRoutine,
		"soon":      entities.UrgencySoon,
		"urgent":    entities.UrgencyUrgent,
		"emergency": entities.UrgencyEmergency,
		"low":       entities.UrgencyRoutine,
		"medium":    entities.UrgencySoon,
		"high":      entities.UrgencyUrgent,
	}
	for raw, want := range cases {
		if got := c.Classify(context.Background(), "mild rash on arm", raw); got != want {
			t.Errorf("Classify(%q) = %s, want %s", raw, got, want)
		}
	}
}

func TestClassify_UnrecognizedClampsToUrgent(t *testing.T) {
	c := NewUrgencyClassifier()

	if level := c.Classify(context.Background(), "mild rash on arm", "catastrophic"); level != entities.UrgencyUrgent {
		t.Errorf("expected urgent fail-safe, got %s", level)
	}
	if level := c.Classify(context.Background(), "mild rash on arm", ""); level != entities.UrgencyUrgent {
		t.Errorf("expected urgent fail-safe for empty value, got %s", level)
	}
}

func TestDirective_EmergencyAlwaysHasInstructions(t *testing.T) {
	c := NewUrgencyClassifier()

	if got := c.Directive(entities.UrgencyEmergency, "Call 911 now."); got != "Call 911 now." {
		t.Errorf("model directive should be kept, got %q", got)
	}
	if got := c.Directive(entities.UrgencyEmergency, "  "); got == "" {
		t.Error("emergency with no model directive must get the fallback")
	}
	if got := c.Directive(entities.UrgencyUrgent, "Call 911 now."); got != "" {
		t.Errorf("non-emergency levels carry no directive, got %q", got)
	}
}

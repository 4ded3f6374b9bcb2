package services

import (
	"context"
	"strings"

	"github.com/providervault/ai-service/internal/domain/entities"
	"github.com/providervault/ai-service/internal/infrastructure/observability"
)

// fallbackEmergencyDirective is attached whenever a triage lands on
// emergency and the model supplied no usable directive of its own. An
// emergency result must never reach a caller without instructions.
const fallbackEmergencyDirective = "Call 911 or go to the nearest emergency room immediately. Do not wait for an appointment."

// emergencyMarkers are symptom phrases that force the emergency level
// regardless of what the model said. Matching is substring-based over
// lowercased text.
var emergencyMarkers = []string{
	"chest pain",
	"crushing chest",
	"shortness of breath",
	"difficulty breathing",
	"can't breathe",
	"cannot breathe",
	"not breathing",
	"severe bleeding",
	"left arm numbness",
	"face drooping",
	"slurred speech",
	"sudden confusion",
	"loss of consciousness",
	"unconscious",
	"suicidal",
	"overdose",
	"anaphyla",
	"seizure",
}

// escalationMarkers force at least the urgent level.
var escalationMarkers = []string{
	"severe pain",
	"high fever",
	"uncontrolled vomiting",
	"blood in stool",
	"blood in urine",
	"coughing blood",
	"sudden vision loss",
	"worst headache",
	"deep cut",
	"broken bone",
}

// UrgencyClassifier combines the model's self-assessed urgency with a
// local symptom lexicon. The lexicon establishes a floor the model can
// raise but never lower.
type UrgencyClassifier struct{}

// NewUrgencyClassifier creates an urgency classifier
func NewUrgencyClassifier() *UrgencyClassifier {
	return &UrgencyClassifier{}
}

// Classify returns the final urgency for the given symptom text and the
// model's raw urgency string. Unrecognized model values clamp to urgent
// as the fail-safe.
func (c *UrgencyClassifier) Classify(ctx context.Context, symptoms, modelLevel string) entities.UrgencyLevel {
	level, ok := entities.ParseUrgencyLevel(modelLevel)
	if !ok {
		observability.LoggerFromContext(ctx).Warn().Str("urgency", modelLevel).Msg("unrecognized urgency from model, clamping to urgent")
		level = entities.UrgencyUrgent
	}

	return c.lexiconFloor(symptoms).Max(level)
}

// Directive returns the emergency instructions for the final level:
// the model's own directive when present, the hardcoded fallback when
// the level is emergency and the model gave none, empty otherwise.
func (c *UrgencyClassifier) Directive(level entities.UrgencyLevel, modelDirective string) string {
	if level != entities.UrgencyEmergency {
		return ""
	}
	if strings.TrimSpace(modelDirective) != "" {
		return modelDirective
	}
	return fallbackEmergencyDirective
}

func (c *UrgencyClassifier) lexiconFloor(symptoms string) entities.UrgencyLevel {
	lowered := strings.ToLower(symptoms)

	for _, marker := range emergencyMarkers {
		if strings.Contains(lowered, marker) {
			return entities.UrgencyEmergency
		}
	}
	for _, marker := range escalationMarkers {
		if strings.Contains(lowered, marker) {
			return entities.UrgencyUrgent
		}
	}
	return entities.UrgencyRoutine
}

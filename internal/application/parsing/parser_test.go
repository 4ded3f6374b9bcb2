package parsing

import (
	"errors"
	"strings"
	"testing"

	apperrors "github.com/providervault/ai-service/pkg/errors"
)

func TestParseDescription_EmptyIsMalformed(t *testing.T) {
	_, err := ParseDescription("Cardiology", "   \n  ")

	assertMalformed(t, err, "empty description")
}

func TestParseRelatedSpecialties(t *testing.T) {
	raw := `Here are the related specialties:
1. Cardiothoracic Surgery: Surgical partner for advanced cardiac disease.
2. Endocrinology: Diabetes and thyroid disease drive cardiac risk.
3. Nephrology: Kidney and heart disease frequently co-occur.`

	result, err := ParseRelatedSpecialties("Cardiology", raw, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Related) != 3 {
		t.Fatalf("expected 3 suggestions, got %d", len(result.Related))
	}
	if result.Related[0].Specialty != "Cardiothoracic Surgery" {
		t.Errorf("order not preserved, got %q first", result.Related[0].Specialty)
	}
	if result.Related[1].Reason != "Diabetes and thyroid disease drive cardiac risk." {
		t.Errorf("reason not captured: %q", result.Related[1].Reason)
	}
}

func TestParseRelatedSpecialties_CapsAtCount(t *testing.T) {
	raw := "1. A: one\n2. B: two\n3. C: three\n4. D: four"

	result, err := ParseRelatedSpecialties("Cardiology", raw, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Related) != 2 {
		t.Errorf("expected cap at 2, got %d", len(result.Related))
	}
}

func TestParseRelatedSpecialties_NoEntriesIsMalformed(t *testing.T) {
	_, err := ParseRelatedSpecialties("Cardiology", "I cannot help with that.", 3)

	assertMalformed(t, err, "no specialty suggestions")
}

func TestParseDistributionAnalysis_CapturesPercentCallouts(t *testing.T) {
	raw := "Cardiology is concentrated on the coasts. CA alone holds 35% of providers. Coverage gaps exist in the midwest."

	result, err := ParseDistributionAnalysis("Cardiology", 85, raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Callouts) != 1 {
		t.Fatalf("expected 1 callout, got %d", len(result.Callouts))
	}
	if result.Callouts[0].Value != 35 || !result.Callouts[0].Percent {
		t.Errorf("callout mis-parsed: %+v", result.Callouts[0])
	}
	if !strings.Contains(result.Callouts[0].Context, "CA alone") {
		t.Errorf("callout context missing: %q", result.Callouts[0].Context)
	}
}

func TestParseDistributionAnalysis_ProseOnlyIsValid(t *testing.T) {
	result, err := ParseDistributionAnalysis("Cardiology", 85, "Coverage is broadly even across regions.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Callouts) != 0 {
		t.Error("no numbers means no callouts")
	}
}

func TestParseSymptomFields(t *testing.T) {
	raw := `SPECIALTIES: Emergency Medicine, Cardiology
REASONING: These are classic signs of a possible heart attack.
URGENCY: emergency
EMERGENCY_ACTION: Call 911 immediately. Do not drive yourself.`

	fields, err := ParseSymptomFields(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(fields.Specialties) != 2 || fields.Specialties[0] != "Emergency Medicine" {
		t.Errorf("specialties mis-parsed: %v", fields.Specialties)
	}
	if fields.UrgencyRaw != "emergency" {
		t.Errorf("urgency mis-parsed: %q", fields.UrgencyRaw)
	}
	if !strings.Contains(fields.EmergencyAction, "Call 911") {
		t.Errorf("emergency action mis-parsed: %q", fields.EmergencyAction)
	}
}

func TestParseSymptomFields_NAActionMeansNone(t *testing.T) {
	raw := "SPECIALTIES: Primary Care\nREASONING: Minor complaint.\nURGENCY: routine\nEMERGENCY_ACTION: N/A"

	fields, err := ParseSymptomFields(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fields.EmergencyAction != "" {
		t.Errorf("N/A should mean no directive, got %q", fields.EmergencyAction)
	}
}

func TestParseSymptomFields_MultiLineReasoning(t *testing.T) {
	raw := `SPECIALTIES: Neurology
REASONING: Persistent headaches with visual changes
warrant neurological evaluation.
URGENCY: soon
EMERGENCY_ACTION: N/A`

	fields, err := ParseSymptomFields(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(fields.Reasoning, "warrant neurological evaluation") {
		t.Errorf("continuation line not accumulated: %q", fields.Reasoning)
	}
}

func TestParseSymptomFields_MissingSpecialtiesIsMalformed(t *testing.T) {
	raw := "REASONING: Something.\nURGENCY: routine"

	_, err := ParseSymptomFields(raw)

	assertMalformed(t, err, "missing recommended specialties")

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Raw != raw {
		t.Error("raw model text should be retained on the error")
	}
}

func TestParseSymptomFields_MissingReasoningIsMalformed(t *testing.T) {
	_, err := ParseSymptomFields("SPECIALTIES: Cardiology\nURGENCY: urgent")

	assertMalformed(t, err, "missing reasoning")
}

func TestParseSearchIntent(t *testing.T) {
	raw := `INTENT: Patient seeking help for a parent's memory decline
KEY_TERMS: memory, dementia, cognitive decline
SPECIALTIES: Neurology, Geriatric Medicine, Psychiatry`

	intent, err := ParseSearchIntent(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if intent.Specialties[0] != "Neurology" {
		t.Errorf("specialty order not preserved: %v", intent.Specialties)
	}
	if len(intent.KeyTerms) != 3 {
		t.Errorf("key terms mis-parsed: %v", intent.KeyTerms)
	}
}

func TestParseSearchIntent_MissingSpecialtiesIsMalformed(t *testing.T) {
	_, err := ParseSearchIntent("INTENT: something\nKEY_TERMS: a, b")

	assertMalformed(t, err, "missing recommended specialties")
}

func TestParseFollowUps(t *testing.T) {
	raw := "- How many are in California?\n- What does a cardiologist treat?\n- Can I search by city?\n- Extra question?"

	suggestions := ParseFollowUps(raw, 3)

	if len(suggestions) != 3 {
		t.Fatalf("expected 3 suggestions, got %d", len(suggestions))
	}
	if suggestions[0] != "How many are in California?" {
		t.Errorf("suggestion mis-parsed: %q", suggestions[0])
	}
}

func TestParseFollowUps_BadFormatYieldsNone(t *testing.T) {
	if got := ParseFollowUps("no list here at all", 3); len(got) != 0 {
		t.Errorf("expected no suggestions, got %v", got)
	}
}

func assertMalformed(t *testing.T, err error, wantMessage string) {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error")
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Type != apperrors.ErrorTypeMalformedResponse {
		t.Errorf("expected MALFORMED_RESPONSE, got %s", appErr.Type)
	}
	if !strings.Contains(appErr.Message, wantMessage) {
		t.Errorf("message %q missing %q", appErr.Message, wantMessage)
	}
}

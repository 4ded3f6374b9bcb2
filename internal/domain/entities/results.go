package entities

// The six structured result variants produced by the response parser.
// Each has a fixed required-field set; a missing required field is a
// parse failure, never a defaulted value. Results are returned to the
// caller and never mutated afterwards.

// SpecialtyDescription is the validated answer for a specialty
// description request.
type SpecialtyDescription struct {
	Specialty   string `json:"specialty"`
	Description string `json:"description"`
}

// RelatedSpecialty is one referral suggestion with its rationale.
type RelatedSpecialty struct {
	Specialty string `json:"specialty"`
	Reason    string `json:"reason"`
}

// RelatedSpecialties is the ordered referral list for a specialty. The
// model may return fewer entries than requested; that is not an error.
type RelatedSpecialties struct {
	Specialty string             `json:"specialty"`
	Related   []RelatedSpecialty `json:"related_specialties"`
}

// NumericCallout is a figure the model cited inside a distribution
// analysis, captured opportunistically for the caller.
type NumericCallout struct {
	Value   float64 `json:"value"`
	Percent bool    `json:"percent"`
	Context string  `json:"context"`
}

// DistributionAnalysis is the insight text for a specialty's provider
// distribution. Callouts may be empty; prose-only output is valid.
type DistributionAnalysis struct {
	Specialty     string           `json:"specialty"`
	ProviderCount int              `json:"provider_count"`
	Analysis      string           `json:"analysis"`
	Callouts      []NumericCallout `json:"numeric_callouts,omitempty"`
}

// SymptomRecommendation is the triage answer for a symptom description.
// EmergencyAction is present exactly when UrgencyLevel is emergency.
type SymptomRecommendation struct {
	Symptoms               string       `json:"symptoms"`
	RecommendedSpecialties []string     `json:"recommended_specialties"`
	Reasoning              string       `json:"reasoning"`
	UrgencyLevel           UrgencyLevel `json:"urgency_level"`
	EmergencyAction        string       `json:"emergency_action,omitempty"`
	Disclaimer             string       `json:"disclaimer"`
	AvailableProviders     []Provider   `json:"available_providers"`
	LocationChecked        string       `json:"location_checked,omitempty"`
}

// SearchResult is the semantic search answer. An empty provider list is
// a valid result when nothing matches.
type SearchResult struct {
	Query                  string     `json:"query"`
	UnderstoodIntent       string     `json:"understood_intent"`
	SearchTerms            []string   `json:"search_terms"`
	RecommendedSpecialties []string   `json:"recommended_specialties"`
	Providers              []Provider `json:"providers"`
	TotalFound             int        `json:"total_found"`
}

// FAQAnswer is the conversational answer with the grounding data echoed
// back and the updated history for the next round-trip.
type FAQAnswer struct {
	Answer              string             `json:"answer"`
	DataRetrieved       *GroundingFacts    `json:"data_retrieved,omitempty"`
	FollowUpSuggestions []string           `json:"follow_up_suggestions"`
	ConversationHistory []ConversationTurn `json:"conversation_history"`
}

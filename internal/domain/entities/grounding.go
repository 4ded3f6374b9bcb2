package entities

// GroundingFacts is the per-request snapshot of store data injected into
// a prompt. It is assembled once by fact retrieval, read during prompt
// composition, and discarded; nothing mutates it after assembly.
type GroundingFacts struct {
	Stats              *NetworkStats         `json:"network_stats,omitempty"`
	Specialties        []string              `json:"available_specialties,omitempty"`
	SpecialtyProviders *SpecialtyProviderSet `json:"specialty_providers,omitempty"`
	StateProviders     *StateProviderSet     `json:"state_data,omitempty"`
	SpecialtyCounts    []SpecialtyCount      `json:"specialty_distribution,omitempty"`
	StateCounts        []StateCount          `json:"state_distribution,omitempty"`
}

// SpecialtyProviderSet carries the providers found for a specialty the
// caller's text mentioned, with a small sample for prompt context.
type SpecialtyProviderSet struct {
	Specialty string     `json:"specialty"`
	Count     int        `json:"count"`
	Sample    []Provider `json:"sample_providers,omitempty"`
}

// StateProviderSet carries the provider count for a state the caller's
// text mentioned.
type StateProviderSet struct {
	State string `json:"state"`
	Count int    `json:"provider_count"`
}

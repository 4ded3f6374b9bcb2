package entities

// Provider is a row from the read-only providers table. NPI (National
// Provider Identifier) is the unique key.
type Provider struct {
	NPI       string `json:"npi"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	State     string `json:"state"`
	City      string `json:"city"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// SpecialtyCount is one row of the per-specialty distribution.
type SpecialtyCount struct {
	Specialty     string `json:"specialty"`
	ProviderCount int    `json:"provider_count"`
}

// StateCount is one row of the per-state distribution.
type StateCount struct {
	State         string `json:"state"`
	ProviderCount int    `json:"provider_count"`
}

// NetworkStats are the aggregate counts for the whole network.
type NetworkStats struct {
	TotalProviders   int `json:"total_providers"`
	TotalSpecialties int `json:"total_specialties"`
	TotalStates      int `json:"total_states"`
}

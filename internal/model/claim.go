package model

// Claim represents an incident asserted by the language model that must be
// checked against citations before it is surfaced in the feed
type Claim struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	Summary          string `json:"summary"`
	SourceName       string `json:"sourceName,omitempty"`
	URL              string `json:"url"`
	Timestamp        string `json:"timestamp,omitempty"`
	Category         string `json:"category"`
	Severity         string `json:"severity"`
	Location         string `json:"location,omitempty"`
	Verified         bool   `json:"verified"`
	VerificationNote string `json:"verificationNote,omitempty"`
}

// Claim categories over the civic-incident vocabulary
const (
	CategoryEnvironment    = "environment"
	CategoryInfrastructure = "infrastructure"
	CategoryPublicSafety   = "public-safety"
	CategoryHealth         = "health"
	CategoryGovernment     = "government"
	CategoryWeather        = "weather"
	CategoryOther          = "other"
)

// Claim severities
const (
	SeverityCritical = "critical"
	SeverityHigh     = "high"
	SeverityMedium   = "medium"
	SeverityLow      = "low"
)

var knownCategories = map[string]bool{
	CategoryEnvironment:    true,
	CategoryInfrastructure: true,
	CategoryPublicSafety:   true,
	CategoryHealth:         true,
	CategoryGovernment:     true,
	CategoryWeather:        true,
	CategoryOther:          true,
}

var knownSeverities = map[string]bool{
	SeverityCritical: true,
	SeverityHigh:     true,
	SeverityMedium:   true,
	SeverityLow:      true,
}

// NormalizeCategory maps arbitrary model output onto the fixed vocabulary
func NormalizeCategory(s string) string {
	if knownCategories[s] {
		return s
	}
	return CategoryOther
}

// NormalizeSeverity maps arbitrary model output onto the fixed vocabulary
func NormalizeSeverity(s string) string {
	if knownSeverities[s] {
		return s
	}
	return SeverityMedium
}

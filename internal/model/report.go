package model

// VerifyStats holds the aggregate counts for one verification run.
// Verified + Rejected always equals TotalFound.
type VerifyStats struct {
	TotalFound int `json:"totalFound"`
	Verified   int `json:"verified"`
	Rejected   int `json:"rejected"`
}

// Rejection records why a claim was excluded from the feed. Rejected claims
// are never silently dropped; they persist here for operator inspection.
type Rejection struct {
	Claim   Claim               `json:"claim"`
	Outcome VerificationOutcome `json:"outcome"`
	Reason  string              `json:"reason"`
}

// FeedResponse is the response contract handed to the HTTP layer
type FeedResponse struct {
	Items           []Claim     `json:"items"`
	RawResponse     string      `json:"rawResponse"`
	VerifiedSources []Citation  `json:"verifiedSources"`
	Stats           VerifyStats `json:"stats"`
}

// FeedRequest carries the caller-supplied query parameters. The values are
// opaque to the verification core; they only shape the outbound prompt and
// default a claim's location.
type FeedRequest struct {
	City      string `json:"city"`
	Topic     string `json:"topic,omitempty"`
	Category  string `json:"category,omitempty"`
	DateRange string `json:"dateRange,omitempty"`
}

package model

// Citation represents an evidence record returned directly by the web-search
// tool. Citations are ground truth: they are extracted verbatim from the
// tool's own result blocks and never fabricated by the pipeline.
type Citation struct {
	Title         string `json:"title"`
	URL           string `json:"url"`
	Snippet       string `json:"snippet,omitempty"`
	SourceDomain  string `json:"sourceDomain"`
	PublishedDate string `json:"publishedDate,omitempty"`
}

// VerificationOutcome is the terminal categorical judgment attached to a
// claim during cross-reference and probing
type VerificationOutcome string

const (
	OutcomeNoURL              VerificationOutcome = "no_url"
	OutcomeConfirmed          VerificationOutcome = "confirmed"
	OutcomeVerifiedLive       VerificationOutcome = "verified_live"
	OutcomeRejectedDead       VerificationOutcome = "rejected_dead"
	OutcomeRejectedFabricated VerificationOutcome = "rejected_fabricated"
)

// Accepted reports whether the outcome places the claim in the feed
func (o VerificationOutcome) Accepted() bool {
	return o == OutcomeConfirmed || o == OutcomeVerifiedLive
}

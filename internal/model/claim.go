package model

import "time"

// ClaimVerdict is the outcome of matching free text against the known-claim rules
type ClaimVerdict struct {
	Claim           string     `json:"claim"`                     // Label of the matched claim (e.g., "Vaccines cause autism")
	Verdict         VerdictTag `json:"verdict"`                   // FALSE, SUSPICIOUS, UNVERIFIED
	Headline        string     `json:"headline"`                  // Short banner text for display
	TrustScore      int        `json:"trust_score"`               // Credibility rating (0-100)
	Rule            string     `json:"rule"`                      // Which rule produced the verdict (e.g., "vaccine_autism", "fallback")
	Evidence        []string   `json:"evidence"`                  // Supporting evidence points
	Citations       []string   `json:"citations"`                 // Static citation text, never fetched
	RedFlags        []string   `json:"red_flags"`                 // Identified red flags (may be empty)
	ExpertConsensus string     `json:"expert_consensus"`          // Consensus statement
	Recommendations []string   `json:"recommendations,omitempty"` // Verification recommendations
	AnalyzedAt      time.Time  `json:"analyzed_at"`               // When the analysis ran
}

// VerdictTag classifies a claim verdict
type VerdictTag string

const (
	VerdictFalse      VerdictTag = "FALSE"      // Matches a known-false claim
	VerdictSuspicious VerdictTag = "SUSPICIOUS" // Contains misinformation language patterns
	VerdictUnverified VerdictTag = "UNVERIFIED" // Nothing recognized, needs manual verification
)

// IsFalse reports whether the verdict marks a known-false claim
func (v ClaimVerdict) IsFalse() bool {
	return v.Verdict == VerdictFalse
}

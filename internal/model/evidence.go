package model

// URLReport is the result of scanning a URL. No content is fetched: only the
// host component of the URL is inspected.
type URLReport struct {
	URL               string        `json:"url"`                          // URL as submitted
	Domain            string        `json:"domain"`                       // Host with "www." removed
	RegistrableDomain string        `json:"registrable_domain,omitempty"` // eTLD+1 (e.g., "bbc.co.uk")
	TrustScore        int           `json:"trust_score"`                  // Domain trust (30-89)
	RiskLevel         RiskLevel     `json:"risk_level"`                   // TRUSTED, QUESTIONABLE, HIGH_RISK
	Authority         AuthorityTier `json:"authority"`                    // Source authority classification (informational)
	Summary           string        `json:"summary"`                      // Human-readable summary
}

// RiskLevel buckets a domain trust score
type RiskLevel string

const (
	RiskTrusted      RiskLevel = "TRUSTED"      // trust > 70
	RiskQuestionable RiskLevel = "QUESTIONABLE" // trust > 40
	RiskHigh         RiskLevel = "HIGH_RISK"
)

// RiskLevelFor maps a trust score to its risk level
func RiskLevelFor(trust int) RiskLevel {
	switch {
	case trust > 70:
		return RiskTrusted
	case trust > 40:
		return RiskQuestionable
	default:
		return RiskHigh
	}
}

// AuthorityTier represents the classification of source authority
type AuthorityTier int

const (
	TierUnknown   AuthorityTier = 0 // Not yet classified
	TierPrimary   AuthorityTier = 1 // Government, health agencies, academic institutions
	TierSecondary AuthorityTier = 2 // Fact-checkers, wire services, reputable media
	TierTertiary  AuthorityTier = 3 // Everything else
)

func (t AuthorityTier) String() string {
	switch t {
	case TierPrimary:
		return "primary"
	case TierSecondary:
		return "secondary"
	case TierTertiary:
		return "tertiary"
	default:
		return "unknown"
	}
}

// MarshalText renders the tier by name in JSON and YAML output
func (t AuthorityTier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

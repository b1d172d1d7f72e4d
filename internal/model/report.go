package model

// ImageVerdict is the outcome of the image heuristic scorer
type ImageVerdict struct {
	Filename          string       `json:"filename,omitempty"`
	Width             int          `json:"width"`
	Height            int          `json:"height"`
	AuthenticityScore int          `json:"authenticity_score"` // 5-100, after override caps
	SuspicionScore    int          `json:"suspicion_score"`    // Always 100 - AuthenticityScore
	IndicatorTotal    int          `json:"indicator_total"`    // Raw sum of indicator penalties (unbounded)
	Tier              VerdictTier  `json:"tier"`               // GENUINE, SUSPICIOUS, LIKELY_AI, AI_CONFIRMED
	Headline          string       `json:"headline"`           // Banner text for display
	Override          OverrideKind `json:"override"`           // Which cap, if any, was applied
	Details           []string     `json:"details"`            // Human-readable detection details, in check order
	Indicators        []Indicator  `json:"indicators"`         // Transparent per-check breakdown
	Recommendations   []string     `json:"recommendations,omitempty"`
}

// VerdictTier classifies an image by authenticity score
type VerdictTier string

const (
	TierGenuine     VerdictTier = "GENUINE"
	TierSuspicious  VerdictTier = "SUSPICIOUS"
	TierLikelyAI    VerdictTier = "LIKELY_AI"
	TierAIConfirmed VerdictTier = "AI_CONFIRMED"
)

// OverrideKind records which indicator-total override fired
type OverrideKind string

const (
	OverrideNone            OverrideKind = "none"
	OverrideHighProbability OverrideKind = "high_probability" // indicator total >= 40, score capped at 30
	OverrideConfirmed       OverrideKind = "confirmed"        // indicator total >= 60, score capped at 15
)

// Indicator represents one heuristic check with transparent scoring data
type Indicator struct {
	Check       string                 `json:"check"`                 // Check name (e.g., "dimensions")
	Penalty     int                    `json:"penalty"`               // Points added to the indicator total (0 when not fired)
	Fired       bool                   `json:"fired"`                 // Whether the check contributed a penalty
	Severity    SignalSeverity         `json:"severity"`              // info when silent, warning when fired
	Description string                 `json:"description,omitempty"` // Human-readable description
	Data        map[string]interface{} `json:"data,omitempty"`        // Measured values and thresholds
}

// SignalSeverity indicates the importance of an indicator
type SignalSeverity string

const (
	SeverityInfo     SignalSeverity = "info"
	SeverityWarning  SignalSeverity = "warning"
	SeverityCritical SignalSeverity = "critical"
)

// FiredIndicators returns only the indicators that contributed a penalty
func (v ImageVerdict) FiredIndicators() []Indicator {
	var fired []Indicator
	for _, ind := range v.Indicators {
		if ind.Fired {
			fired = append(fired, ind)
		}
	}
	return fired
}

package score

import (
	"context"
	"fmt"

	"github.com/ppiankov/trustbuddy/internal/extract"
	"github.com/ppiankov/trustbuddy/internal/model"
)

// Override thresholds on the raw indicator total
const (
	ConfirmedThreshold       = 60
	ConfirmedCap             = 15
	HighProbabilityThreshold = 40
	HighProbabilityCap       = 30

	minAuthenticity = 5
	maxAuthenticity = 100
)

// Outcome is the result of a single check
type Outcome struct {
	Penalty int                    // 0 when the check did not fire
	Detail  string                 // Detection detail shown when fired
	Data    map[string]interface{} // Measured values, always populated when measured
}

// CheckFunc scores one heuristic against a decoded image.
// It returns the context error when ctx ends before the check completes.
type CheckFunc func(ctx context.Context, img *extract.Image) (Outcome, error)

// pure adapts a check whose cost is linear in the pixel count
func pure(fn func(img *extract.Image) Outcome) CheckFunc {
	return func(_ context.Context, img *extract.Image) (Outcome, error) {
		return fn(img), nil
	}
}

// Check is a named entry in the check registry
type Check struct {
	Name string
	Fn   CheckFunc
}

// Scorer sums heuristic penalties into an authenticity verdict
type Scorer struct {
	checks []Check
}

// NewScorer creates a scorer with the default checks
func NewScorer() *Scorer {
	return &Scorer{checks: DefaultChecks()}
}

// NewScorerWithChecks creates a scorer with a custom check registry
func NewScorerWithChecks(checks []Check) *Scorer {
	return &Scorer{checks: checks}
}

// Checks returns the registered check names in evaluation order
func (s *Scorer) Checks() []string {
	names := make([]string, len(s.checks))
	for i, c := range s.checks {
		names[i] = c.Name
	}
	return names
}

// Evaluate runs every check and maps the indicator total to a verdict.
// The verdict is a pure function of the raster, filename and metadata;
// the only error is ctx ending before every check has run.
func (s *Scorer) Evaluate(ctx context.Context, img *extract.Image) (model.ImageVerdict, error) {
	total := 0
	var details []string
	indicators := make([]model.Indicator, 0, len(s.checks))

	for _, check := range s.checks {
		if err := ctx.Err(); err != nil {
			return model.ImageVerdict{}, err
		}
		out, err := check.Fn(ctx, img)
		if err != nil {
			return model.ImageVerdict{}, fmt.Errorf("%s check: %w", check.Name, err)
		}
		total += out.Penalty

		ind := model.Indicator{
			Check:    check.Name,
			Penalty:  out.Penalty,
			Fired:    out.Penalty > 0,
			Severity: model.SeverityInfo,
			Data:     out.Data,
		}
		if ind.Fired {
			ind.Severity = model.SeverityWarning
			ind.Description = out.Detail
			details = append(details, out.Detail)
		}
		indicators = append(indicators, ind)
	}

	verdict := Finalize(total)
	verdict.Filename = img.Filename
	verdict.Width = img.Raster.Width
	verdict.Height = img.Raster.Height
	verdict.Indicators = indicators
	verdict.Details = append(details, verdict.Details...)
	return verdict, nil
}

// Finalize maps an indicator total to scores, tier and headline.
// The override caps apply after the base clamp and tier table.
func Finalize(total int) model.ImageVerdict {
	authenticity := clamp(100-total, minAuthenticity, maxAuthenticity)

	v := model.ImageVerdict{
		IndicatorTotal: total,
		Override:       model.OverrideNone,
		Details:        []string{},
	}
	v.Tier, v.Headline = tierFor(authenticity)

	switch {
	case total >= ConfirmedThreshold:
		authenticity = min(authenticity, ConfirmedCap)
		v.Override = model.OverrideConfirmed
		v.Tier = model.TierAIConfirmed
		v.Headline = "AI-GENERATED IMAGE CONFIRMED"
		v.Details = append(v.Details, "Multiple strong AI generation indicators detected")
	case total >= HighProbabilityThreshold:
		authenticity = min(authenticity, HighProbabilityCap)
		v.Override = model.OverrideHighProbability
		v.Tier, _ = tierFor(authenticity)
		v.Headline = "HIGH PROBABILITY AI-GENERATED"
		v.Details = append(v.Details, "Several AI generation indicators detected")
	}

	v.AuthenticityScore = authenticity
	v.SuspicionScore = 100 - authenticity
	v.Recommendations = recommendationsFor(total)
	return v
}

// tierFor applies the score threshold table
func tierFor(authenticity int) (model.VerdictTier, string) {
	switch {
	case authenticity >= 75:
		return model.TierGenuine, "LIKELY GENUINE"
	case authenticity >= 50:
		return model.TierSuspicious, "SUSPICIOUS - VERIFY CAREFULLY"
	case authenticity >= 25:
		return model.TierLikelyAI, "LIKELY AI-GENERATED"
	default:
		return model.TierAIConfirmed, "AI-GENERATED DETECTED"
	}
}

func recommendationsFor(total int) []string {
	switch {
	case total >= 50:
		return []string{
			"Multiple technical indicators suggest synthetic origin",
			"Cross-verify with reverse image search",
			"Check original source and context",
			"Be extremely cautious about sharing or believing associated claims",
		}
	case total >= 30:
		return []string{
			"Some indicators suggest possible AI generation",
			"Verify through multiple detection tools",
			"Check source credibility and metadata",
			"Exercise caution with associated information",
		}
	default:
		return []string{
			"No major AI generation indicators detected",
			"Still recommend standard verification practices",
			"Check source and context for accuracy",
			"Verify any claims made about the image content",
		}
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Summary renders a one-line description of a verdict
func Summary(v model.ImageVerdict) string {
	return fmt.Sprintf("%s (authenticity %d%%, indicators %d)", v.Headline, v.AuthenticityScore, v.IndicatorTotal)
}

package extract

import (
	"strings"
	"time"

	"github.com/ppiankov/trustbuddy/internal/model"
)

// ClaimRule is one entry of the known-claim table
type ClaimRule struct {
	Name   string
	Match  func(lower string) bool
	Bundle ClaimBundle
}

// ClaimBundle is the static verdict attached to a rule
type ClaimBundle struct {
	Claim           string
	Headline        string
	TrustScore      int
	Evidence        []string
	Citations       []string
	RedFlags        []string
	ExpertConsensus string
}

// FallbackRule names verdicts produced when no rule matched
const FallbackRule = "fallback"

// ClaimMatcher evaluates text against an ordered list of known-claim rules.
// The first matching rule wins; otherwise the suspicion-phrase fallback runs.
type ClaimMatcher struct {
	rules      []ClaimRule
	suspicious []string
	rng        model.Rand
	now        func() time.Time
}

// ClaimOption customizes a ClaimMatcher
type ClaimOption func(*ClaimMatcher)

// WithRules replaces the default rule table
func WithRules(rules []ClaimRule) ClaimOption {
	return func(m *ClaimMatcher) {
		m.rules = rules
	}
}

// WithClock overrides the timestamp source
func WithClock(now func() time.Time) ClaimOption {
	return func(m *ClaimMatcher) {
		m.now = now
	}
}

// NewClaimMatcher creates a claim matcher drawing fallback scores from rng
func NewClaimMatcher(rng model.Rand, opts ...ClaimOption) *ClaimMatcher {
	if rng == nil {
		rng = model.NewRand(0)
	}
	m := &ClaimMatcher{
		rules: DefaultClaimRules(),
		suspicious: []string{
			"miracle cure", "they don't want you to know", "secret",
			"coverup", "big pharma conspiracy",
		},
		rng: rng,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Evaluate matches text against the rule table
func (m *ClaimMatcher) Evaluate(text string) (model.ClaimVerdict, error) {
	if strings.TrimSpace(text) == "" {
		return model.ClaimVerdict{}, &model.EmptyInputError{Field: "text"}
	}

	lower := strings.ToLower(text)

	for _, rule := range m.rules {
		if rule.Match(lower) {
			return m.fromBundle(rule.Name, model.VerdictFalse, rule.Bundle), nil
		}
	}

	return m.fallback(lower), nil
}

// SuspicionCount counts how many distinct suspicion phrases occur in lower-cased text
func (m *ClaimMatcher) SuspicionCount(lower string) int {
	count := 0
	for _, phrase := range m.suspicious {
		if strings.Contains(lower, phrase) {
			count++
		}
	}
	return count
}

func (m *ClaimMatcher) fallback(lower string) model.ClaimVerdict {
	count := m.SuspicionCount(lower)

	bundle := generalBundle
	tag := model.VerdictUnverified
	if count > 0 {
		tag = model.VerdictSuspicious
		bundle.Headline = "SUSPICIOUS CONTENT"
		bundle.TrustScore = max(20, 70-count*20)
		bundle.RedFlags = []string{"Contains language patterns associated with misinformation"}
	} else {
		bundle.Headline = "REQUIRES VERIFICATION"
		bundle.TrustScore = 60 + m.rng.IntN(25)
		bundle.RedFlags = []string{}
	}

	return m.fromBundle(FallbackRule, tag, bundle)
}

func (m *ClaimMatcher) fromBundle(rule string, tag model.VerdictTag, b ClaimBundle) model.ClaimVerdict {
	return model.ClaimVerdict{
		Claim:           b.Claim,
		Verdict:         tag,
		Headline:        b.Headline,
		TrustScore:      b.TrustScore,
		Rule:            rule,
		Evidence:        clone(b.Evidence),
		Citations:       clone(b.Citations),
		RedFlags:        clone(b.RedFlags),
		ExpertConsensus: b.ExpertConsensus,
		Recommendations: clone(verificationRecommendations),
		AnalyzedAt:      m.now().UTC(),
	}
}

func clone(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func containsAll(lower string, terms ...string) bool {
	for _, t := range terms {
		if !strings.Contains(lower, t) {
			return false
		}
	}
	return true
}

func containsAny(lower string, terms ...string) bool {
	for _, t := range terms {
		if strings.Contains(lower, t) {
			return true
		}
	}
	return false
}

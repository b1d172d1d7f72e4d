package validate

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"

	"github.com/ppiankov/trustbuddy/internal/model"
)

// URLScanner rates a URL by its domain without fetching it
type URLScanner struct {
	authority *AuthorityClassifier
	rng       model.Rand
}

// NewURLScanner creates a URL scanner drawing trust scores from rng
func NewURLScanner(authority *AuthorityClassifier, rng model.Rand) *URLScanner {
	if authority == nil {
		authority = NewAuthorityClassifier(nil)
	}
	if rng == nil {
		rng = model.NewRand(0)
	}
	return &URLScanner{authority: authority, rng: rng}
}

// Scan parses the URL's host and assigns a simulated domain trust score
func (s *URLScanner) Scan(rawURL string) (*model.URLReport, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, &model.EmptyInputError{Field: "url"}
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidURL, err)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("%w: no host in %q", model.ErrInvalidURL, rawURL)
	}

	domain := strings.ReplaceAll(parsed.Host, "www.", "")

	registrable, err := publicsuffix.EffectiveTLDPlusOne(strings.ToLower(parsed.Hostname()))
	if err != nil {
		registrable = ""
	}

	trust := 30 + s.rng.IntN(60)

	return &model.URLReport{
		URL:               rawURL,
		Domain:            domain,
		RegistrableDomain: registrable,
		TrustScore:        trust,
		RiskLevel:         model.RiskLevelFor(trust),
		Authority:         s.authority.Classify(rawURL),
		Summary:           fmt.Sprintf("Domain Analysis: %s shows %d%% credibility based on reputation metrics", domain, trust),
	}, nil
}

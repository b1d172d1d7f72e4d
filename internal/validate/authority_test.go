package validate

import (
	"testing"

	"github.com/ppiankov/trustbuddy/internal/model"
)

func TestAuthorityClassifier_Classify(t *testing.T) {
	classifier := NewAuthorityClassifier(&model.AuthorityConfig{
		PrimaryDomains:   []string{"who.int", "doi.org"},
		SecondaryDomains: []string{"snopes.com", "wikipedia.org"},
		PathPatterns: []model.PathPattern{
			{Pattern: `^/fact-check/`, Tier: "secondary"},
			{Pattern: `[`, Tier: "primary"}, // invalid, skipped
		},
		DomainMap: map[string]string{"blog.who.int": "tertiary"},
	})

	tests := []struct {
		url  string
		want model.AuthorityTier
	}{
		{"https://who.int/news", model.TierPrimary},
		{"https://www.who.int/news", model.TierPrimary},
		{"https://doi.org/10.1234/example", model.TierPrimary},
		{"https://blog.who.int/post", model.TierTertiary},
		{"https://en.wikipedia.org/wiki/Misinformation", model.TierSecondary},
		{"https://www.snopes.com/fact-check/5g", model.TierSecondary},
		{"https://example.com/fact-check/claim", model.TierSecondary},
		{"https://data.cdc.gov/report", model.TierPrimary},
		{"https://cs.stanford.edu/", model.TierPrimary},
		{"https://www.ox.ac.uk/", model.TierPrimary},
		{"https://notwho.int/", model.TierTertiary},
		{"https://random-blog.net/post", model.TierTertiary},
		{"not a url", model.TierTertiary},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := classifier.Classify(tt.url); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}

func TestAuthorityClassifier_Defaults(t *testing.T) {
	classifier := NewAuthorityClassifier(nil)

	tests := []struct {
		url  string
		want model.AuthorityTier
	}{
		{"https://WWW.CDC.GOV/", model.TierPrimary},
		{"https://www.reuters.com/world", model.TierSecondary},
		{"https://example.org", model.TierTertiary},
	}
	for _, tt := range tests {
		if got := classifier.Classify(tt.url); got != tt.want {
			t.Errorf("Classify(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

func TestParseTierString(t *testing.T) {
	tests := []struct {
		in   string
		want model.AuthorityTier
	}{
		{"PRIMARY", model.TierPrimary},
		{"1", model.TierPrimary},
		{"secondary", model.TierSecondary},
		{"whatever", model.TierTertiary},
	}
	for _, tt := range tests {
		if got := parseTierString(tt.in); got != tt.want {
			t.Errorf("parseTierString(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

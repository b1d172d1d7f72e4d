package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ppiankov/trustbuddy/internal/model"
	"github.com/ppiankov/trustbuddy/internal/score"
)

// Renderer writes verdicts for terminal and file output
type Renderer struct {
	out io.Writer
}

// NewRenderer creates a renderer writing summaries to out (stdout when nil)
func NewRenderer(out io.Writer) *Renderer {
	if out == nil {
		out = os.Stdout
	}
	return &Renderer{out: out}
}

// RenderJSON writes v as indented JSON to path, or to the renderer's writer when path is "-"
func (r *Renderer) RenderJSON(v any, path string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	data = append(data, '\n')

	if path == "" || path == "-" {
		_, err = r.out.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// RenderClaim prints a claim verdict
func (r *Renderer) RenderClaim(v *model.ClaimVerdict) {
	fmt.Fprintf(r.out, "%s\n", v.Headline)
	fmt.Fprintf(r.out, "Verdict:     %s\n", v.Verdict)
	fmt.Fprintf(r.out, "Trust score: %d%%\n", v.TrustScore)
	if v.Claim != "" {
		fmt.Fprintf(r.out, "Claim:       %s\n", v.Claim)
	}
	r.list("Evidence", v.Evidence)
	r.list("Red flags", v.RedFlags)
	r.list("Citations", v.Citations)
	if v.ExpertConsensus != "" {
		fmt.Fprintf(r.out, "\nExpert consensus: %s\n", v.ExpertConsensus)
	}
	r.list("Recommendations", v.Recommendations)
}

// RenderURL prints a URL report
func (r *Renderer) RenderURL(v *model.URLReport) {
	fmt.Fprintf(r.out, "%s\n", v.Summary)
	fmt.Fprintf(r.out, "Domain:      %s\n", v.Domain)
	if v.RegistrableDomain != "" && v.RegistrableDomain != v.Domain {
		fmt.Fprintf(r.out, "Registrable: %s\n", v.RegistrableDomain)
	}
	fmt.Fprintf(r.out, "Trust score: %d%%\n", v.TrustScore)
	fmt.Fprintf(r.out, "Risk level:  %s\n", v.RiskLevel)
	fmt.Fprintf(r.out, "Authority:   %s\n", v.Authority)
}

// RenderImage prints an image verdict
func (r *Renderer) RenderImage(v *model.ImageVerdict) {
	fmt.Fprintln(r.out, score.Summary(*v))
	fmt.Fprintf(r.out, "Authenticity: %d%%  Suspicion: %d%%  Indicators: %d\n",
		v.AuthenticityScore, v.SuspicionScore, v.IndicatorTotal)
	for _, ind := range v.FiredIndicators() {
		fmt.Fprintf(r.out, "  [%s] +%d %s: %s\n", ind.Severity, ind.Penalty, ind.Check, ind.Description)
	}
	r.list("Details", v.Details)
	r.list("Recommendations", v.Recommendations)
}

// RenderQuiz prints a quiz outcome
func (r *Renderer) RenderQuiz(o model.QuizOutcome) {
	fmt.Fprintf(r.out, "%s\n", o.Message)
	fmt.Fprintf(r.out, "Score: %d/%d", o.Tally.Correct, o.Tally.Total)
	if o.Tally.Accuracy != nil {
		fmt.Fprintf(r.out, " (%.1f%%)", *o.Tally.Accuracy*100)
	}
	fmt.Fprintln(r.out)
}

// RenderImageMarkdown writes an image verdict as a Markdown report
func (r *Renderer) RenderImageMarkdown(v *model.ImageVerdict, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Image Analysis: %s\n\n", v.Filename)
	fmt.Fprintf(&b, "**%s**\n\n", v.Headline)
	fmt.Fprintf(&b, "| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Dimensions | %dx%d |\n", v.Width, v.Height)
	fmt.Fprintf(&b, "| Authenticity | %d%% |\n", v.AuthenticityScore)
	fmt.Fprintf(&b, "| Suspicion | %d%% |\n", v.SuspicionScore)
	fmt.Fprintf(&b, "| Indicator total | %d |\n", v.IndicatorTotal)
	fmt.Fprintf(&b, "| Tier | %s |\n\n", v.Tier)

	if fired := v.FiredIndicators(); len(fired) > 0 {
		b.WriteString("## Indicators\n\n")
		for _, ind := range fired {
			fmt.Fprintf(&b, "- **%s** (+%d, %s): %s\n", ind.Check, ind.Penalty, ind.Severity, ind.Description)
		}
		b.WriteString("\n")
	}
	if len(v.Details) > 0 {
		b.WriteString("## Details\n\n")
		for _, d := range v.Details {
			fmt.Fprintf(&b, "- %s\n", d)
		}
		b.WriteString("\n")
	}
	if len(v.Recommendations) > 0 {
		b.WriteString("## Recommendations\n\n")
		for _, rec := range v.Recommendations {
			fmt.Fprintf(&b, "- %s\n", rec)
		}
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (r *Renderer) list(title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(r.out, "\n%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(r.out, "  - %s\n", item)
	}
}

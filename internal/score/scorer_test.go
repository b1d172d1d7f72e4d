package score

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/trustbuddy/internal/extract"
	"github.com/ppiankov/trustbuddy/internal/model"
)

// fill builds a raster by evaluating px for every pixel
func fill(w, h, channels int, px func(x, y int) []float64) *extract.Raster {
	pix := make([]float64, 0, w*h*channels)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			pix = append(pix, px(x, y)...)
		}
	}
	return extract.NewRaster(w, h, channels, pix)
}

func solid(w, h int, rgb ...float64) *extract.Raster {
	return fill(w, h, len(rgb), func(x, y int) []float64 { return rgb })
}

func withCamera(r *extract.Raster, filename string) *extract.Image {
	return &extract.Image{
		Filename: filename,
		Raster:   r,
		Metadata: extract.Metadata{Readable: true, Tags: map[string]string{"Make": "Canon"}},
	}
}

func TestFinalize(t *testing.T) {
	tests := []struct {
		total    int
		score    int
		tier     model.VerdictTier
		override model.OverrideKind
		headline string
	}{
		{0, 100, model.TierGenuine, model.OverrideNone, "LIKELY GENUINE"},
		{25, 75, model.TierGenuine, model.OverrideNone, "LIKELY GENUINE"},
		{26, 74, model.TierSuspicious, model.OverrideNone, "SUSPICIOUS - VERIFY CAREFULLY"},
		{39, 61, model.TierSuspicious, model.OverrideNone, "SUSPICIOUS - VERIFY CAREFULLY"},
		{40, 30, model.TierLikelyAI, model.OverrideHighProbability, "HIGH PROBABILITY AI-GENERATED"},
		{59, 30, model.TierLikelyAI, model.OverrideHighProbability, "HIGH PROBABILITY AI-GENERATED"},
		{60, 15, model.TierAIConfirmed, model.OverrideConfirmed, "AI-GENERATED IMAGE CONFIRMED"},
		{90, 10, model.TierAIConfirmed, model.OverrideConfirmed, "AI-GENERATED IMAGE CONFIRMED"},
		{95, 5, model.TierAIConfirmed, model.OverrideConfirmed, "AI-GENERATED IMAGE CONFIRMED"},
		{250, 5, model.TierAIConfirmed, model.OverrideConfirmed, "AI-GENERATED IMAGE CONFIRMED"},
	}

	for _, tt := range tests {
		v := Finalize(tt.total)
		assert.Equal(t, tt.score, v.AuthenticityScore, "total %d", tt.total)
		assert.Equal(t, 100-tt.score, v.SuspicionScore, "total %d", tt.total)
		assert.Equal(t, tt.tier, v.Tier, "total %d", tt.total)
		assert.Equal(t, tt.override, v.Override, "total %d", tt.total)
		assert.Equal(t, tt.headline, v.Headline, "total %d", tt.total)
		assert.Equal(t, tt.total, v.IndicatorTotal)
	}
}

func TestFinalize_Invariants(t *testing.T) {
	for total := 0; total <= 300; total++ {
		v := Finalize(total)
		require.Equal(t, 100, v.AuthenticityScore+v.SuspicionScore, "total %d", total)
		require.GreaterOrEqual(t, v.AuthenticityScore, minAuthenticity)
		require.LessOrEqual(t, v.AuthenticityScore, maxAuthenticity)
		if total >= ConfirmedThreshold {
			require.LessOrEqual(t, v.AuthenticityScore, ConfirmedCap)
			require.Equal(t, model.TierAIConfirmed, v.Tier)
		} else if total >= HighProbabilityThreshold {
			require.LessOrEqual(t, v.AuthenticityScore, HighProbabilityCap)
		}
	}
}

func TestFinalize_Recommendations(t *testing.T) {
	assert.Equal(t, "No major AI generation indicators detected", Finalize(29).Recommendations[0])
	assert.Equal(t, "Some indicators suggest possible AI generation", Finalize(30).Recommendations[0])
	assert.Equal(t, "Some indicators suggest possible AI generation", Finalize(49).Recommendations[0])
	assert.Equal(t, "Multiple technical indicators suggest synthetic origin", Finalize(50).Recommendations[0])
}

func TestFinalize_OverrideDetails(t *testing.T) {
	assert.Empty(t, Finalize(10).Details)
	assert.Equal(t, []string{"Several AI generation indicators detected"}, Finalize(45).Details)
	assert.Equal(t, []string{"Multiple strong AI generation indicators detected"}, Finalize(70).Details)
}

func TestScorer_AIGeneratedUpload(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 512, 512))
	for y := 0; y < 512; y++ {
		for x := 0; x < 512; x++ {
			src.Set(x, y, color.RGBA{R: uint8(x / 2), G: uint8(y / 2), B: uint8((x * y) % 251), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))

	img, err := extract.DecodeImage(buf.Bytes(), "ai_generated.png")
	require.NoError(t, err)

	v, err := NewScorer().Evaluate(context.Background(), img)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, v.IndicatorTotal, 90)
	assert.LessOrEqual(t, v.AuthenticityScore, 15)
	assert.Equal(t, model.TierAIConfirmed, v.Tier)
	assert.Equal(t, model.OverrideConfirmed, v.Override)
	assert.Equal(t, "ai_generated.png", v.Filename)
	assert.Equal(t, 512, v.Width)

	fired := map[string]bool{}
	for _, ind := range v.FiredIndicators() {
		fired[ind.Check] = true
	}
	assert.True(t, fired[CheckDimensions])
	assert.True(t, fired[CheckFilename])
	assert.True(t, fired[CheckMetadata])

	again, err := NewScorer().Evaluate(context.Background(), img)
	require.NoError(t, err)
	assert.Equal(t, v, again, "scoring is a pure function of the image")

	_, err = json.Marshal(v)
	assert.NoError(t, err)
}

func TestScorer_EvaluateOrderAndDetails(t *testing.T) {
	fixed := func(p int, detail string) CheckFunc {
		return func(context.Context, *extract.Image) (Outcome, error) {
			return Outcome{Penalty: p, Detail: detail}, nil
		}
	}
	s := NewScorerWithChecks([]Check{
		{Name: "first", Fn: fixed(30, "first fired")},
		{Name: "silent", Fn: fixed(0, "never shown")},
		{Name: "second", Fn: fixed(15, "second fired")},
	})
	assert.Equal(t, []string{"first", "silent", "second"}, s.Checks())

	v, err := s.Evaluate(context.Background(), withCamera(solid(10, 10, 0), "x.png"))
	require.NoError(t, err)
	assert.Equal(t, 45, v.IndicatorTotal)
	assert.Equal(t, 30, v.AuthenticityScore)
	assert.Equal(t, []string{"first fired", "second fired", "Several AI generation indicators detected"}, v.Details)

	require.Len(t, v.Indicators, 3)
	assert.Equal(t, model.SeverityWarning, v.Indicators[0].Severity)
	assert.False(t, v.Indicators[1].Fired)
	assert.Equal(t, model.SeverityInfo, v.Indicators[1].Severity)
	assert.Empty(t, v.Indicators[1].Description)
	assert.Len(t, v.FiredIndicators(), 2)
}

func TestScorer_DefaultRegistry(t *testing.T) {
	assert.Equal(t, []string{
		CheckDimensions, CheckFilename, CheckChannelCorrelation, CheckSaturation,
		CheckGradientUniformity, CheckFrequency, CheckSkinTexture, CheckMetadata, CheckBlockRepetition,
	}, NewScorer().Checks())
}

func TestScorer_FlatImageIsEncodable(t *testing.T) {
	v, err := NewScorer().Evaluate(context.Background(), withCamera(solid(64, 64, 128, 128, 128), "flat.png"))
	require.NoError(t, err)
	_, err = json.Marshal(v)
	require.NoError(t, err)

	for _, ind := range v.Indicators {
		if ind.Check == CheckChannelCorrelation {
			assert.False(t, ind.Fired, "undefined correlation never fires")
		}
	}
}

func TestScorer_EvaluateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewScorer().Evaluate(ctx, withCamera(solid(64, 64, 1, 2, 3), "x.png"))
	assert.ErrorIs(t, err, context.Canceled)

	calls := 0
	stop, stopCancel := context.WithCancel(context.Background())
	defer stopCancel()
	s := NewScorerWithChecks([]Check{
		{Name: "first", Fn: func(context.Context, *extract.Image) (Outcome, error) {
			calls++
			stopCancel()
			return Outcome{}, nil
		}},
		{Name: "second", Fn: func(context.Context, *extract.Image) (Outcome, error) {
			calls++
			return Outcome{}, nil
		}},
	})
	_, err = s.Evaluate(stop, withCamera(solid(4, 4, 0), ""))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls, "no check runs after ctx ends")
}

func TestScorer_BlockCheckStopsOnDeadline(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := NewScorer().Evaluate(ctx, withCamera(gradient(1536), "large.png"))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 3*time.Second)
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "LIKELY GENUINE (authenticity 100%, indicators 0)", Summary(Finalize(0)))
}

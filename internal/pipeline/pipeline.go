package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/ppiankov/trustbuddy/internal/cache"
	"github.com/ppiankov/trustbuddy/internal/extract"
	"github.com/ppiankov/trustbuddy/internal/logging"
	"github.com/ppiankov/trustbuddy/internal/model"
	"github.com/ppiankov/trustbuddy/internal/score"
	"github.com/ppiankov/trustbuddy/internal/session"
	"github.com/ppiankov/trustbuddy/internal/validate"
)

// Analyzer wires the evaluators to the random source, cache and logger
type Analyzer struct {
	claims   *extract.ClaimMatcher
	urls     *validate.URLScanner
	scorer   *score.Scorer
	cache    cache.Cache
	cacheTTL time.Duration
	rng      model.Rand
	delay    time.Duration
	timeout  time.Duration
	maxPix   int
	logger   *zap.Logger
}

// Option customizes an Analyzer
type Option func(*Analyzer)

// WithRand pins the random source
func WithRand(rng model.Rand) Option {
	return func(a *Analyzer) { a.rng = rng }
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(a *Analyzer) { a.logger = l }
}

// WithCache replaces the verdict cache
func WithCache(c cache.Cache) Option {
	return func(a *Analyzer) { a.cache = c }
}

// NewAnalyzer creates an analyzer from configuration
func NewAnalyzer(cfg *model.Config, opts ...Option) *Analyzer {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}

	a := &Analyzer{
		cacheTTL: cfg.Cache.TTL,
		delay:    cfg.Analysis.SimulatedDelay,
		timeout:  cfg.Analysis.Timeout,
		maxPix:   cfg.Analysis.MaxPixels,
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.rng == nil {
		a.rng = model.NewRand(cfg.Analysis.Seed)
	}
	a.logger = logging.OrNop(a.logger)
	if a.cache == nil {
		if cfg.Cache.Enabled {
			a.cache = cache.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.CleanupInterval)
		} else {
			a.cache = cache.Nop{}
		}
	}

	a.claims = extract.NewClaimMatcher(a.rng)
	a.urls = validate.NewURLScanner(validate.NewAuthorityClassifier(&cfg.Authority), a.rng)
	a.scorer = score.NewScorer()

	a.logger.Debug("Analyzer ready",
		zap.Strings("checks", a.scorer.Checks()),
		zap.Int("max_pixels", a.maxPix),
		zap.Duration("timeout", a.timeout))
	return a
}

// AnalyzeText runs the claim matcher
func (a *Analyzer) AnalyzeText(ctx context.Context, text string) (*model.ClaimVerdict, error) {
	verdict, err := a.claims.Evaluate(text)
	if err != nil {
		a.logger.Debug("Claim analysis rejected", zap.Error(err))
		return nil, err
	}
	if err := a.pause(ctx); err != nil {
		return nil, err
	}

	a.logger.Info("Claim analyzed",
		zap.String("rule", verdict.Rule),
		zap.String("verdict", string(verdict.Verdict)),
		zap.Int("trust_score", verdict.TrustScore))
	return &verdict, nil
}

// ScanURL rates a URL by its domain
func (a *Analyzer) ScanURL(ctx context.Context, rawURL string) (*model.URLReport, error) {
	report, err := a.urls.Scan(rawURL)
	if err != nil {
		a.logger.Debug("URL scan rejected", zap.Error(err))
		return nil, err
	}
	if err := a.pause(ctx); err != nil {
		return nil, err
	}

	a.logger.Info("URL scanned",
		zap.String("domain", report.Domain),
		zap.Int("trust_score", report.TrustScore),
		zap.String("risk", string(report.RiskLevel)))
	return report, nil
}

// AnalyzeImage decodes and scores an uploaded image.
// Verdicts are cached by content and filename since scoring is deterministic.
func (a *Analyzer) AnalyzeImage(ctx context.Context, data []byte, filename string) (*model.ImageVerdict, error) {
	key := cache.CacheKey(data, filename)
	if cached, ok := a.cache.Get(key); ok {
		var verdict model.ImageVerdict
		if err := json.Unmarshal(cached, &verdict); err == nil {
			a.logger.Debug("Image verdict cache hit", zap.String("filename", filename))
			return &verdict, a.pause(ctx)
		}
		_ = a.cache.Delete(key)
	}

	img, err := extract.DecodeImage(data, filename, extract.WithMaxPixels(a.maxPix))
	if err != nil {
		a.logger.Debug("Image decode failed", zap.String("filename", filename), zap.Error(err))
		return nil, err
	}

	scoreCtx := ctx
	if a.timeout > 0 {
		var cancel context.CancelFunc
		scoreCtx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	start := time.Now()
	verdict, err := a.scorer.Evaluate(scoreCtx, img)
	if err != nil {
		a.logger.Warn("Image scoring stopped",
			zap.String("filename", filename),
			zap.Int("width", img.Raster.Width),
			zap.Int("height", img.Raster.Height),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return nil, err
	}

	if encoded, err := json.Marshal(verdict); err == nil {
		if err := a.cache.Set(key, encoded, a.cacheTTL); err != nil {
			a.logger.Warn("Failed to cache image verdict", zap.Error(err))
		} else {
			a.logger.Debug("Image verdict cached", zap.Int("entries", a.cache.Len()))
		}
	} else {
		a.logger.Warn("Failed to encode image verdict", zap.Error(err))
	}

	if err := a.pause(ctx); err != nil {
		return nil, err
	}

	a.logger.Info("Image analyzed",
		zap.String("filename", filename),
		zap.String("format", img.Format),
		zap.Int("width", verdict.Width),
		zap.Int("height", verdict.Height),
		zap.Int("indicator_total", verdict.IndicatorTotal),
		zap.String("tier", string(verdict.Tier)),
		zap.Duration("elapsed", time.Since(start)))
	return &verdict, nil
}

// RunQuiz records one simulated quiz attempt on the session's tally
func (a *Analyzer) RunQuiz(t *session.Tally) model.QuizOutcome {
	outcome := t.Run(a.rng)
	a.logger.Debug("Quiz simulation",
		zap.Bool("success", outcome.Success),
		zap.Int("total", outcome.Tally.Total))
	return outcome
}

// pause waits for the configured simulated processing delay
func (a *Analyzer) pause(ctx context.Context) error {
	if a.delay <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(a.delay):
		return nil
	}
}

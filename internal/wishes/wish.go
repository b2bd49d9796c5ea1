// Package wishes generates birthday greetings and gift ideas through an
// external text model, falling back to fixed content on any failure.
package wishes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cyberbirth/cyberbirth-backend/internal/logging"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// GiftIdeaCount is the number of gift ideas every result carries.
const GiftIdeaCount = 3

type Tone string

const (
	ToneFunny     Tone = "funny"
	ToneSincere   Tone = "sincere"
	ToneCyberpunk Tone = "cyberpunk"
)

// ParseTone maps user input to a Tone; blank input means cyberpunk.
func ParseTone(s string) (Tone, error) {
	switch t := Tone(strings.ToLower(strings.TrimSpace(s))); t {
	case "":
		return ToneCyberpunk, nil
	case ToneFunny, ToneSincere, ToneCyberpunk:
		return t, nil
	default:
		return "", fmt.Errorf("unknown tone %q", s)
	}
}

// Params describe whom the wish is for
type Params struct {
	Name         string `json:"name"`
	Age          int    `json:"age"`
	Relationship string `json:"relationship"`
	Tone         Tone   `json:"tone"`
}

// Result is a generated (or fallback) wish
type Result struct {
	Wish      string   `json:"wish"`
	GiftIdeas []string `json:"gift_ideas"`
	Fallback  bool     `json:"fallback"`
}

var (
	errMissingWish = errors.New("response has no wish")
	errTooFewIdeas = fmt.Errorf("response has fewer than %d gift ideas", GiftIdeaCount)
)

// Generator produces wish content from a remote model.
type Generator interface {
	Generate(ctx context.Context, p Params) (Result, error)
}

// WishGenerationError wraps any failure of the external call.
type WishGenerationError struct {
	Op  string
	Err error
}

func (e *WishGenerationError) Error() string {
	return fmt.Sprintf("wish generation %s: %v", e.Op, e.Err)
}

func (e *WishGenerationError) Unwrap() error { return e.Err }

// FallbackFunc builds deterministic content when generation fails.
type FallbackFunc func(p Params) Result

// DefaultFallback is the canned greeting used when the model is unreachable.
func DefaultFallback(p Params) Result {
	return Result{
		Wish:      fmt.Sprintf("Happy %dth Birthday, %s! (System offline, default message loaded)", p.Age, p.Name),
		GiftIdeas: []string{"Gift Card", "Cake", "Party"},
		Fallback:  true,
	}
}

// Options tune a Client. Zero values disable the corresponding guard.
type Options struct {
	Fallback  FallbackFunc
	Timeout   time.Duration
	RateLimit float64 // requests per second
	RateBurst int
}

// Client hides whether a network call happened: GenerateWish always
// returns usable content.
type Client struct {
	generator Generator
	fallback  FallbackFunc
	timeout   time.Duration
	limiter   *rate.Limiter
	metrics   *Metrics
}

// NewClient creates a Client. A nil generator makes every call use the
// fallback.
func NewClient(generator Generator, opts Options) *Client {
	c := &Client{
		generator: generator,
		fallback:  opts.Fallback,
		timeout:   opts.Timeout,
		metrics:   &Metrics{},
	}
	if c.fallback == nil {
		c.fallback = DefaultFallback
	}
	if opts.RateLimit > 0 {
		burst := opts.RateBurst
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}
	return c
}

// GenerateWish returns model content, or fallback content on any failure.
func (c *Client) GenerateWish(ctx context.Context, p Params) Result {
	logger := logging.FromContext(ctx).With(zap.String("operation", "generate_wish"))

	if p.Tone == "" {
		p.Tone = ToneCyberpunk
	}

	if c.generator == nil {
		logger.Debug("no wish generator configured, using fallback")
		c.metrics.recordFallback()
		return c.fallback(p)
	}

	if c.limiter != nil && !c.limiter.Allow() {
		logger.Warn("wish rate limit exceeded, using fallback")
		c.metrics.recordFallback()
		return c.fallback(p)
	}

	callCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	res, err := c.generator.Generate(callCtx, p)
	if err == nil {
		if res, err = normalizeResult(res); err != nil {
			err = &WishGenerationError{Op: "validate", Err: err}
		}
	}
	c.metrics.recordCall(time.Since(start), err)
	if err != nil {
		logger.Error("wish generation failed, using fallback", zap.Error(err))
		c.metrics.recordFallback()
		return c.fallback(p)
	}

	res.Fallback = false
	return res
}

// normalizeResult trims the wish and keeps exactly GiftIdeaCount non-blank
// gift ideas. Blank wishes and short idea lists are rejected.
func normalizeResult(res Result) (Result, error) {
	wish := strings.TrimSpace(res.Wish)
	if wish == "" {
		return Result{}, errMissingWish
	}

	ideas := make([]string, 0, GiftIdeaCount)
	for _, idea := range res.GiftIdeas {
		if idea = strings.TrimSpace(idea); idea != "" {
			ideas = append(ideas, idea)
		}
	}
	if len(ideas) < GiftIdeaCount {
		return Result{}, errTooFewIdeas
	}

	return Result{Wish: wish, GiftIdeas: ideas[:GiftIdeaCount]}, nil
}

// Stats returns a snapshot of call counters
func (c *Client) Stats() Stats {
	return c.metrics.Snapshot()
}

// Package narrative writes the short prose shown beside a product. It never
// fails: when the text service errors the shopper gets a templated sentence
// built from the product's own details.
package narrative

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/lumiere-stone/atelier/internal/cache"
	"github.com/lumiere-stone/atelier/internal/llm"
	"github.com/lumiere-stone/atelier/internal/metrics"
	"github.com/lumiere-stone/atelier/internal/models"
)

const EmptyReplyFallback = "A masterpiece of light and shadow, crafted for eternity."

const operation = "narrative"

type Generator struct {
	llm      llm.Generator
	cache    cache.Cache
	cacheTTL time.Duration
	logger   *slog.Logger
}

type Option func(*Generator)

func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(g *Generator) {
		g.cache = c
		g.cacheTTL = ttl
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

func NewGenerator(gen llm.Generator, opts ...Option) *Generator {
	g := &Generator{llm: gen, cache: cache.Noop{}, logger: slog.Default()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Prompt describes p to the text service.
func Prompt(p models.Product) string {
	return fmt.Sprintf(`Write a short, luxurious, and evocative description (max 60 words) for a jewelry piece named %q.
It is a %s made of %s featuring a %s carat diamond (Color: %s, Clarity: %s).
The tone should be sophisticated, romantic, and akin to high-end brands like Cartier or Van Cleef.
Focus on the emotion and sparkle. Do not use markdown.`,
		p.Name, p.Category, p.Metal, formatCarat(p.Specs.Carat), p.Specs.Color, p.Specs.Clarity)
}

// Fallback is served whenever the text service call fails.
func Fallback(p models.Product) string {
	return fmt.Sprintf("An exquisite %s %s featuring a stunning %s carat stone. A timeless addition to any collection.",
		p.Metal, strings.ToLower(string(p.Category)), formatCarat(p.Specs.Carat))
}

// Generate makes a single attempt. Only replies from the service are cached.
func (g *Generator) Generate(ctx context.Context, p models.Product) string {
	key := cache.Key(cache.NarrativeKeyPrefix, p.ID)

	var cached string
	if found, err := g.cache.Get(ctx, key, &cached); err != nil {
		g.logger.Warn("Narrative cache read failed", slog.String("productId", p.ID), slog.String("error", err.Error()))
	} else if found && cached != "" {
		metrics.ObserveCollaborator(operation, metrics.OutcomeCached)
		return cached
	}

	text, err := g.llm.Generate(ctx, Prompt(p))
	if err != nil {
		g.logger.Warn("Narrative generation failed, serving fallback",
			slog.String("productId", p.ID),
			slog.String("error", err.Error()))
		metrics.ObserveCollaborator(operation, metrics.OutcomeFallback)
		return Fallback(p)
	}

	if strings.TrimSpace(text) == "" {
		metrics.ObserveCollaborator(operation, metrics.OutcomeEmpty)
		return EmptyReplyFallback
	}

	metrics.ObserveCollaborator(operation, metrics.OutcomeSuccess)

	if err := g.cache.Set(ctx, key, text, g.cacheTTL); err != nil {
		g.logger.Warn("Narrative cache write failed", slog.String("productId", p.ID), slog.String("error", err.Error()))
	}

	return text
}

// formatCarat prints the shortest decimal form, so 2.0 reads "2" and 1.02 stays "1.02".
func formatCarat(c float64) string {
	return strconv.FormatFloat(c, 'f', -1, 64)
}

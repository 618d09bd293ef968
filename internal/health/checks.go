package health

import (
	"context"
	"fmt"
	"time"

	"github.com/hellofresh/health-go/v5"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
	"github.com/lumiere-stone/atelier/internal/config"
)

// Registry is the part of the session registry the health check reads.
type Registry interface {
	Len() int
}

// checkSessions fails when the registry cannot be read before ctx ends, as
// happens when its lock is held by a stuck writer.
func checkSessions(ctx context.Context, sessions Registry) error {
	if sessions == nil {
		return fmt.Errorf("session registry is not initialized")
	}

	done := make(chan struct{})
	go func() {
		sessions.Len()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("session registry did not respond: %w", ctx.Err())
	}
}

func NewHealthHandler(cfg *config.Config, sessions Registry, version string) (*health.Health, error) {
	checks := []health.Config{
		{
			Name:      "sessions",
			Timeout:   time.Second,
			SkipOnErr: false,
			Check: func(ctx context.Context) error {
				return checkSessions(ctx, sessions)
			},
		},
	}

	if cfg.RedisConnect.Enabled() {
		// Redis only backs the narrative cache and the login limiter; both
		// degrade without it.
		checks = append(checks, health.Config{
			Name:      "redis",
			Timeout:   2 * time.Second,
			SkipOnErr: true,
			Check:     healthRedis.New(healthRedis.Config{DSN: cfg.RedisConnect.GetDSN()}),
		})
	}

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    "atelier",
			Version: version,
		}),
		health.WithSystemInfo(),
		health.WithChecks(checks...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}

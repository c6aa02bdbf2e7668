package health

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const probeTimeout = 2 * time.Second

// Pinger is a backing service that can report whether it is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Checker struct {
	deps map[string]Pinger
	log  *zap.SugaredLogger
}

func NewChecker(log *zap.SugaredLogger) *Checker {
	return &Checker{deps: make(map[string]Pinger), log: log}
}

// Add registers a dependency under name. Not safe to call once Check is in use.
func (c *Checker) Add(name string, dep Pinger) {
	c.deps[name] = dep
}

// Check pings every dependency and returns the first failure.
func (c *Checker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	for name, dep := range c.deps {
		if err := dep.Ping(ctx); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// Sync sets the overall serving status of srv from a single Check.
func (c *Checker) Sync(ctx context.Context, srv *grpchealth.Server) {
	status := healthpb.HealthCheckResponse_SERVING
	if err := c.Check(ctx); err != nil {
		c.log.Warnf("health check failed: %v", err)
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	srv.SetServingStatus("", status)
}

// Watch keeps srv in sync every interval until ctx is done, then marks it
// NOT_SERVING for the rest of the shutdown.
func (c *Checker) Watch(ctx context.Context, srv *grpchealth.Server, interval time.Duration) {
	c.Sync(ctx, srv)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			srv.Shutdown()
			return
		case <-ticker.C:
			c.Sync(ctx, srv)
		}
	}
}

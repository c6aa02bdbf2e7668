package stats

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"hangman/internal/domain/game"
	"hangman/internal/taskqueue"
)

const (
	RefreshTaskName      = "cache_average_attempts"
	averageMessageFormat = "The average moves remaining is %.2f"
)

type OpenGameLister interface {
	ListOpenGames(ctx context.Context) ([]game.Game, error)
}

// StatCache is a single-slot cache for the average attempts message.
type StatCache interface {
	GetAverageAttempts(ctx context.Context) (value string, ok bool, err error)
	SetAverageAttempts(ctx context.Context, value string) error
}

type Submitter interface {
	Submit(name string, task taskqueue.Task) bool
}

type StatsUseCase struct {
	games OpenGameLister
	cache StatCache
	queue Submitter
	log   *zap.SugaredLogger
}

func NewStatsUseCase(games OpenGameLister, cache StatCache, queue Submitter, log *zap.SugaredLogger) *StatsUseCase {
	return &StatsUseCase{games: games, cache: cache, queue: queue, log: log}
}

// RefreshAverageAttempts caches the mean attempts_remaining of open games.
// With no open games the previous value is kept.
func (s *StatsUseCase) RefreshAverageAttempts(ctx context.Context) error {
	games, err := s.games.ListOpenGames(ctx)
	if err != nil {
		return fmt.Errorf("list open games: %w", err)
	}
	if len(games) == 0 {
		return nil
	}

	total := 0
	for _, play := range games {
		total += play.AttemptsRemaining
	}
	average := float64(total) / float64(len(games))

	return s.cache.SetAverageAttempts(ctx, fmt.Sprintf(averageMessageFormat, average))
}

// AverageAttempts returns the last cached message, or "" if none was stored.
func (s *StatsUseCase) AverageAttempts(ctx context.Context) (string, error) {
	value, ok, err := s.cache.GetAverageAttempts(ctx)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}
	return value, nil
}

// ScheduleRefresh queues a refresh without waiting for it.
func (s *StatsUseCase) ScheduleRefresh() {
	s.queue.Submit(RefreshTaskName, s.RefreshAverageAttempts)
}

// RunPeriodicRefresh schedules a refresh every interval until ctx is done.
func (s *StatsUseCase) RunPeriodicRefresh(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.log.Infof("average attempts refresh every %s", interval)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.ScheduleRefresh()
		}
	}
}

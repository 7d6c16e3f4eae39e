package maintenance

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"Food-Rescue-Backend/domain"
	"Food-Rescue-Backend/entities"
	"Food-Rescue-Backend/internal/metrics"
	"Food-Rescue-Backend/internal/utils/cache"
	"Food-Rescue-Backend/pkg/food"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

const (
	JobExpireStaleFood     = "expire_stale_food"
	JobPurgeExpiredFood    = "purge_expired_food"
	JobPurgeStaleAvailable = "purge_stale_available"
	JobClearLogs           = "clear_logs"
)

type (
	MaintenanceService interface {
		ExpireStaleFood(ctx context.Context) (int64, error)
		PurgeExpiredFood(ctx context.Context) (int64, error)
		PurgeStaleAvailable(ctx context.Context) (int64, error)
		ClearLogs(ctx context.Context) (int64, error)
	}

	maintenanceService struct {
		foodRepository food.FoodRepository
		cache          *cache.Store
		clock          clockwork.Clock
		logDir         string
		logger         *zap.Logger
		locks          map[string]*sync.Mutex
	}
)

func NewMaintenanceService(
	foodRepository food.FoodRepository,
	store *cache.Store,
	clock clockwork.Clock,
	logDir string,
	logger *zap.Logger,
) MaintenanceService {
	locks := make(map[string]*sync.Mutex)
	for _, job := range []string{JobExpireStaleFood, JobPurgeExpiredFood, JobPurgeStaleAvailable, JobClearLogs} {
		locks[job] = &sync.Mutex{}
	}
	return &maintenanceService{
		foodRepository: foodRepository,
		cache:          store,
		clock:          clock,
		logDir:         logDir,
		logger:         logger,
		locks:          locks,
	}
}

// run executes fn under the job's run-lock. An invocation that finds the job
// already running returns ErrJobAlreadyRunning without doing any work.
func (s *maintenanceService) run(ctx context.Context, job string, fn func(ctx context.Context) (int64, error)) (int64, error) {
	lock := s.locks[job]
	if !lock.TryLock() {
		metrics.JobRunsTotal.WithLabelValues(job, "skipped").Inc()
		s.logger.Warn("job skipped, previous run still in progress", zap.String("job", job))
		return 0, domain.ErrJobAlreadyRunning
	}
	defer lock.Unlock()

	affected, err := fn(ctx)
	if err != nil {
		metrics.JobRunsTotal.WithLabelValues(job, "failed").Inc()
		s.logger.Error("job failed", zap.String("job", job), zap.Error(err))
		return 0, err
	}

	metrics.JobRunsTotal.WithLabelValues(job, "succeeded").Inc()
	metrics.JobAffectedRows.WithLabelValues(job).Add(float64(affected))
	s.logger.Info("job finished", zap.String("job", job), zap.Int64("affected", affected))
	return affected, nil
}

func (s *maintenanceService) ExpireStaleFood(ctx context.Context) (int64, error) {
	return s.run(ctx, JobExpireStaleFood, func(ctx context.Context) (int64, error) {
		n, err := s.foodRepository.ExpireStaleFoods(ctx, s.clock.Now())
		if err == nil && n > 0 {
			s.cache.Invalidate(ctx, cache.KeyAvailableFoods)
		}
		return n, err
	})
}

func (s *maintenanceService) PurgeExpiredFood(ctx context.Context) (int64, error) {
	return s.run(ctx, JobPurgeExpiredFood, func(ctx context.Context) (int64, error) {
		n, err := s.foodRepository.DeleteFoodsByStatus(ctx, entities.FoodStatusExpired)
		if err == nil && n > 0 {
			s.cache.Invalidate(ctx, cache.KeyAvailableFoods)
		}
		return n, err
	})
}

func (s *maintenanceService) PurgeStaleAvailable(ctx context.Context) (int64, error) {
	return s.run(ctx, JobPurgeStaleAvailable, func(ctx context.Context) (int64, error) {
		n, err := s.foodRepository.DeleteStaleAvailableFoods(ctx, s.clock.Now())
		if err == nil && n > 0 {
			s.cache.Invalidate(ctx, cache.KeyAvailableFoods)
		}
		return n, err
	})
}

// ClearLogs truncates every regular file in the log directory and reports
// how many were emptied. A missing directory is not an error.
func (s *maintenanceService) ClearLogs(ctx context.Context) (int64, error) {
	return s.run(ctx, JobClearLogs, func(ctx context.Context) (int64, error) {
		entries, err := os.ReadDir(s.logDir)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return 0, nil
			}
			return 0, err
		}

		var cleared int64
		for _, entry := range entries {
			if ctx.Err() != nil {
				return cleared, ctx.Err()
			}
			if !entry.Type().IsRegular() {
				continue
			}
			if err := os.Truncate(filepath.Join(s.logDir, entry.Name()), 0); err != nil {
				return cleared, err
			}
			cleared++
		}
		return cleared, nil
	})
}

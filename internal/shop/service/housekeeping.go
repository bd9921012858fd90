package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/chocomax/shop/internal/shop/challenge"
	"github.com/chocomax/shop/internal/shop/store"
)

// HousekeepingService periodically removes expired second factor challenges
// and pending registrations so neither grows without bound.
type HousekeepingService struct {
	Store      store.Store
	Challenges challenge.Store
	Logger     *slog.Logger
	Interval   time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// SweepResult reports what one cleanup pass removed.
type SweepResult struct {
	Challenges      int
	PendingAccounts int64
}

// NewHousekeepingService defaults a non-positive interval to one minute.
// Challenges live for minutes, so the sweep runs far more often than the
// pending registration expiry needs.
func NewHousekeepingService(st store.Store, challenges challenge.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &HousekeepingService{
		Store:      st,
		Challenges: challenges,
		Logger:     logger,
		Interval:   interval,
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
	}
}

// Start runs a cleanup immediately and then every Interval until Stop.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop blocks until an in-progress cleanup has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.Sweep(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Sweep(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Sweep performs one cleanup pass. Each deletion is independent; a failure
// in one does not stop the other.
func (s *HousekeepingService) Sweep(ctx context.Context) SweepResult {
	var res SweepResult

	if s.Challenges != nil {
		n, err := s.Challenges.DeleteExpired(ctx)
		if err != nil {
			s.Logger.Error("failed to delete expired challenges", "error", err)
		} else {
			res.Challenges = n
		}
	}

	n, err := s.Store.Registrations().DeleteExpiredPendingUsers(ctx)
	if err != nil {
		s.Logger.Error("failed to delete expired pending users", "error", err)
	} else {
		res.PendingAccounts = n
	}

	if res.Challenges > 0 || res.PendingAccounts > 0 {
		s.Logger.Info("housekeeping cleanup completed",
			"challenges", res.Challenges,
			"pending_users", res.PendingAccounts,
		)
	} else {
		s.Logger.Debug("housekeeping cleanup found nothing to remove")
	}
	return res
}

package application

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultRefreshInterval is the scheduler period used until reconfigured.
const DefaultRefreshInterval = 10 * time.Minute

// Scheduler drives Store refreshes on a recurring timer and on explicit
// trigger. At most one refresh runs at a time: a trigger or tick arriving
// while a refresh is in flight is dropped, not queued.
//
// Reconfigure re-arms the timer with the new period measured from the moment
// of reconfiguration; it never fires an immediate extra refresh.
type Scheduler struct {
	store    *Store
	interval time.Duration

	reconfigure chan time.Duration

	// refreshing is held for the duration of one refresh; TryLock failure is
	// the drop policy for overlapping triggers.
	refreshing sync.Mutex

	// Service lifecycle context - cancelled when Close() is called
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewScheduler creates a Scheduler for the given store. The timer does not
// run until Start is called.
func NewScheduler(store *Store, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		store:       store,
		interval:    interval,
		reconfigure: make(chan time.Duration),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Start launches the timer loop in a background goroutine.
func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.run()
}

// Close stops the timer loop and waits for it to exit. An in-flight refresh
// runs to completion; it is not cancelled.
func (s *Scheduler) Close() error {
	s.cancel()
	s.wg.Wait()

	return nil
}

// Reconfigure replaces the timer period. The next tick occurs at
// now + interval; the currently pending tick is discarded without firing.
func (s *Scheduler) Reconfigure(interval time.Duration) {
	if interval <= 0 {
		return
	}
	select {
	case s.reconfigure <- interval:
	case <-s.ctx.Done():
	}
}

// TriggerRefresh runs a refresh immediately in the caller's goroutine.
// It reports false when a refresh was already in flight and this trigger was
// dropped.
func (s *Scheduler) TriggerRefresh() bool {
	return s.runRefresh()
}

func (s *Scheduler) run() {
	defer s.wg.Done()

	timer := time.NewTicker(s.interval)
	defer timer.Stop()

	for {
		select {
		case <-timer.C:
			if !s.runRefresh() {
				log.Debug().Msg("Scheduled refresh skipped: another refresh in flight")
			}
		case interval := <-s.reconfigure:
			timer.Reset(interval)
			log.Info().Dur("interval", interval).Msg("Refresh interval reconfigured")
		case <-s.ctx.Done():
			return
		}
	}
}

// runRefresh performs one refresh if none is in flight. Fetch failures are
// logged and swallowed so the timer loop survives a bad tick.
func (s *Scheduler) runRefresh() bool {
	if !s.refreshing.TryLock() {
		return false
	}
	defer s.refreshing.Unlock()

	if err := s.store.Refresh(s.ctx); err != nil {
		log.Error().Err(err).Msg("Failed to refresh post cache")
		return true
	}

	log.Info().Int("posts", s.store.Len()).Msg("Post cache refreshed")

	return true
}

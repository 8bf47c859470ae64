package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/offerwatch/offerwatch/internal/domain"
	"github.com/offerwatch/offerwatch/internal/logger"
)

// dueCheckSpec is how often the wake loop checks whether the persisted fire
// time has been reached.
const dueCheckSpec = "@every 30s"

// Default re-arm policy values.
const (
	// DefaultRetryDelay is the fast-retry delay after a full-outage cycle.
	DefaultRetryDelay = time.Hour
	// DefaultCheckWeekday is the weekly check day.
	DefaultCheckWeekday = time.Monday
	// DefaultCheckHour is the local hour the weekly check fires.
	DefaultCheckHour = 9
)

// ScheduleStore persists the single schedule state record.
type ScheduleStore interface {
	Get(ctx context.Context) (*domain.ScheduleState, error)
	Put(ctx context.Context, state *domain.ScheduleState) error
	Clear(ctx context.Context) error
}

// CycleRunner runs one sync cycle and reports its outcome.
type CycleRunner interface {
	RunCycle(ctx context.Context, now time.Time) domain.Outcome
}

// Config holds the re-arm policy.
type Config struct {
	// RetryDelay is the re-arm delay after a cycle in which no market
	// could be reached.
	RetryDelay time.Duration
	// CheckWeekday is the weekday the regular check runs.
	CheckWeekday time.Weekday
	// CheckHour is the local hour of day the regular check runs.
	CheckHour int
}

// Scheduler owns the schedule state machine: it arms and cancels the
// persisted wake time, fires due wakes, and re-arms after each cycle
// according to the outcome. A single mutex serializes arm, cancel, and
// wake handling, so the last caller wins and at most one cycle runs at a
// time; duplicate wakes during a running cycle are dropped.
type Scheduler struct {
	store  ScheduleStore
	runner CycleRunner
	log    logger.Interface
	cfg    Config
	cron   *cron.Cron
	now    func() time.Time

	mu    sync.Mutex
	state State
}

// NewScheduler creates a scheduler. Zero config fields fall back to the
// weekly Monday 09:00 policy with a one hour outage retry.
func NewScheduler(store ScheduleStore, runner CycleRunner, log logger.Interface, cfg Config) *Scheduler {
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = DefaultRetryDelay
	}
	if cfg.CheckHour < 0 || cfg.CheckHour > 23 {
		cfg.CheckHour = DefaultCheckHour
	}

	schedLog := log.WithComponent("scheduler")
	return &Scheduler{
		store:  store,
		runner: runner,
		log:    schedLog,
		cfg:    cfg,
		cron: cron.New(
			cron.WithChain(cron.Recover(cron.DefaultLogger)),
		),
		now:   time.Now,
		state: StateIdle,
	}
}

// Start recovers persisted state and begins the wake loop. A persisted fire
// time already in the past counts as a missed wake and fires immediately.
func (s *Scheduler) Start(ctx context.Context) error {
	if err := s.Recover(ctx); err != nil {
		return err
	}

	if _, err := s.cron.AddFunc(dueCheckSpec, func() { s.tick(ctx) }); err != nil {
		return err
	}

	s.cron.Start()
	s.log.Info("Scheduler started", "due_check", dueCheckSpec)
	return nil
}

// Stop halts the wake loop, waiting for a running wake handler to return.
func (s *Scheduler) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.log.Info("Scheduler stopped")
}

// Recover re-reads persisted state after a restart. Armed state with a
// future fire time is resumed; a past fire time fires immediately.
func (s *Scheduler) Recover(ctx context.Context) error {
	state, err := s.store.Get(ctx)
	if errors.Is(err, domain.ErrScheduleNotArmed) {
		s.log.Info("No persisted schedule, scheduler idle")
		return nil
	}
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.state = StateArmed
	s.mu.Unlock()

	now := s.now()
	if state.NextFireAt.After(now) {
		s.log.Info("Recovered armed schedule", "next_fire_at", state.NextFireAt)
		return nil
	}

	s.log.Info("Persisted fire time already passed, treating as missed wake",
		"next_fire_at", state.NextFireAt,
	)
	s.OnWake(ctx, now)
	return nil
}

// Arm persists the next fire time. A persistence failure is fatal to the
// arming attempt: the previous state is kept and the failure is logged
// loudly, since dropping it would silently lose all future checks.
func (s *Scheduler) Arm(ctx context.Context, at time.Time, outcome domain.Outcome) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.armLocked(ctx, at, outcome)
}

func (s *Scheduler) armLocked(ctx context.Context, at time.Time, outcome domain.Outcome) error {
	if err := ValidateStateTransition(s.state, StateArmed); err != nil {
		return err
	}

	err := s.store.Put(ctx, &domain.ScheduleState{
		NextFireAt:  at,
		LastOutcome: outcome,
	})
	if err != nil {
		s.log.Error("FATAL: failed to persist schedule state, alarm left in previous state",
			"fatal", true,
			"next_fire_at", at,
			"error", err,
		)
		return err
	}

	s.state = StateArmed
	s.log.Info("Scheduler armed", "next_fire_at", at, "last_outcome", outcome)
	return nil
}

// EnsureArmed arms the next regular check when nothing is persisted yet.
// Already-armed or firing schedules are left untouched.
func (s *Scheduler) EnsureArmed(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateIdle {
		return nil
	}

	next := NextWeeklyCheck(s.now(), s.cfg.CheckWeekday, s.cfg.CheckHour)
	return s.armLocked(ctx, next, "")
}

// Cancel clears the persisted fire time. Safe to call while a cycle is
// firing: the in-flight cycle is not aborted and will still re-arm by
// policy on completion; the last write to the store wins.
func (s *Scheduler) Cancel(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelLocked(ctx)
}

func (s *Scheduler) cancelLocked(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		s.log.Error("Failed to clear schedule state", "error", err)
		return err
	}

	if s.state != StateFiring {
		s.state = StateIdle
	}
	s.log.Info("Scheduler cancelled")
	return nil
}

// State returns the current in-memory scheduler state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Status returns the persisted schedule state, or domain.ErrScheduleNotArmed.
func (s *Scheduler) Status(ctx context.Context) (*domain.ScheduleState, error) {
	return s.store.Get(ctx)
}

// tick is the wake loop body: fire OnWake when the persisted time is due.
func (s *Scheduler) tick(ctx context.Context) {
	now := s.now()

	s.mu.Lock()
	firing := s.state == StateFiring
	s.mu.Unlock()
	if firing {
		// Coalesce: the running cycle's re-arm supersedes this wake.
		return
	}

	state, err := s.store.Get(ctx)
	if errors.Is(err, domain.ErrScheduleNotArmed) {
		s.mu.Lock()
		if s.state == StateArmed {
			// Cancelled out-of-process; follow the store.
			s.state = StateIdle
		}
		s.mu.Unlock()
		return
	}
	if err != nil {
		s.log.Error("Failed to read schedule state", "error", err)
		return
	}

	// The row is the source of truth: it may have been armed out-of-process
	// (schedule arm) while this daemon sat idle.
	s.mu.Lock()
	if s.state == StateIdle {
		s.state = StateArmed
		s.log.Info("Adopted externally armed schedule", "next_fire_at", state.NextFireAt)
	}
	s.mu.Unlock()

	if state.NextFireAt.After(now) {
		return
	}

	s.OnWake(ctx, now)
}

// OnWake is the wake entry point. It is idempotent-safe against duplicate
// wakes: a wake arriving while a cycle is firing is dropped. The cycle runs
// synchronously; the next fire time is computed and persisted before OnWake
// returns.
func (s *Scheduler) OnWake(ctx context.Context, now time.Time) {
	s.mu.Lock()
	if s.state == StateFiring {
		s.mu.Unlock()
		s.log.Debug("Wake coalesced, cycle already firing")
		return
	}
	if err := ValidateStateTransition(s.state, StateFiring); err != nil {
		// Idle with a stray wake: nothing is armed, nothing to do.
		s.mu.Unlock()
		s.log.Debug("Wake ignored", "state", s.state, "error", err)
		return
	}
	s.state = StateFiring
	s.mu.Unlock()

	s.log.Info("Wake fired", "now", now)
	outcome := s.runner.RunCycle(ctx, now)
	s.rearm(ctx, outcome)
}

// rearm applies the re-arm policy after a completed cycle:
// no favorites -> cancel; full outage -> retry in RetryDelay;
// success -> next weekly check.
func (s *Scheduler) rearm(ctx context.Context, outcome domain.Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	switch outcome {
	case domain.OutcomeNoFavorites:
		if err := s.cancelLocked(ctx); err == nil {
			s.state = StateIdle
		} else {
			// Could not clear; the stale persisted time will fire again and
			// re-evaluate, which is the safer failure mode.
			s.state = StateArmed
		}
	case domain.OutcomeNetworkFailure:
		if err := s.armLocked(ctx, now.Add(s.cfg.RetryDelay), outcome); err != nil {
			s.state = StateArmed
		}
	default:
		next := NextWeeklyCheck(now, s.cfg.CheckWeekday, s.cfg.CheckHour)
		if err := s.armLocked(ctx, next, outcome); err != nil {
			s.state = StateArmed
		}
	}
}

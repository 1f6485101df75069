package monitor

import (
	"context"
	"ctwatch/internal/config"
	"ctwatch/pkg/certlog"
	"ctwatch/pkg/clock"
	"ctwatch/pkg/domain"
	"ctwatch/pkg/logger"
	"ctwatch/pkg/metrics"
	"ctwatch/pkg/notifier"
	"ctwatch/pkg/storage"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultInterval is the pause between two cycles.
	DefaultInterval = time.Hour
	// DefaultDomainDelay is the pause between two consecutive domains of a cycle.
	DefaultDomainDelay = 10 * time.Second
)

// SchedulerOptions configure the scan loop.
type SchedulerOptions struct {
	// Interval is the pause after a cycle before the next one starts.
	Interval time.Duration
	// DomainDelay is the pause between two consecutive domains within a cycle.
	DomainDelay time.Duration
	// Sleep waits for d. It must return early with an error once ctx is done.
	Sleep func(ctx context.Context, d time.Duration) error
	// Now returns the current time.
	Now func() time.Time
	// Metrics receives cycle measurements. May be nil.
	Metrics *metrics.Recorder
}

// NewSchedulerOptions constructs SchedulerOptions from the provided application config.
func NewSchedulerOptions(cfg *config.Config) SchedulerOptions {
	return SchedulerOptions{
		Interval:    cfg.Monitor.Interval,
		DomainDelay: cfg.Monitor.DomainDelay,
	}
}

// CycleOutcome summarises one pass over the monitored domains.
type CycleOutcome struct {
	// Domains is the snapshot of the monitored list the cycle iterated.
	Domains []string
	// Processed is the number of domains that were fetched, successfully or not.
	Processed int
	// New holds the non-empty deltas by domain.
	New map[string][]string
	// ScanErrors is the number of domains whose fetch failed.
	ScanErrors int
	// PersistErrors is the number of domains whose store update failed.
	PersistErrors int
	// Completed reports whether every domain of the snapshot was processed.
	Completed bool
}

// Clean reports whether the cycle went through a non-empty list and found nothing new.
func (o CycleOutcome) Clean() bool {
	return o.Completed && len(o.Domains) > 0 && len(o.New) == 0 && o.PersistErrors == 0
}

// Scheduler drives scan cycles. It is Idle until Start and returns to Idle on Stop.
// At most one loop runs at any time.
type Scheduler struct {
	options  SchedulerOptions
	domains  storage.DomainStorage
	client   certlog.Client
	differ   *Differ
	notifier notifier.Notifier

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	status Status
}

// NewScheduler creates an idle Scheduler.
func NewScheduler(
	domains storage.DomainStorage,
	client certlog.Client,
	differ *Differ,
	n notifier.Notifier,
	options SchedulerOptions) *Scheduler {
	if options.Interval <= 0 {
		options.Interval = DefaultInterval
	}
	if options.DomainDelay < 0 {
		options.DomainDelay = DefaultDomainDelay
	}
	if options.Sleep == nil {
		options.Sleep = clock.Sleep
	}
	if options.Now == nil {
		options.Now = time.Now
	}

	return &Scheduler{
		options:  options,
		domains:  domains,
		client:   client,
		differ:   differ,
		notifier: n,
	}
}

// Start launches the loop in its own goroutine. A duplicate Start is a no-op and
// reports false. If a previously stopped loop is still winding down, the new loop
// waits for it to exit before its first cycle. The loop does not inherit the
// caller's context: neither its cancellation nor its values.
func (s *Scheduler) Start(_ context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		return false
	}

	prev := s.done
	loopCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	s.cancel, s.done = cancel, done
	s.status.Running = true
	s.status.NextCycleAt = time.Time{}

	go func() {
		defer close(done)
		if prev != nil {
			<-prev
		}
		s.loop(loopCtx)
	}()

	return true
}

// Stop asks the loop to exit at its next decision point. It reports false if the
// scheduler was already idle. Stop does not wait for the loop; use Wait for that.
func (s *Scheduler) Stop() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel == nil {
		return false
	}
	s.cancel()
	s.cancel = nil
	s.status.Running = false
	s.status.NextCycleAt = time.Time{}

	return true
}

// Wait blocks until the most recently started loop has exited.
func (s *Scheduler) Wait() {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()

	if done != nil {
		<-done
	}
}

// Running reports whether monitoring is enabled.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.status.Running
}

// Status returns the current loop status.
func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.status
}

func (s *Scheduler) loop(ctx context.Context) {
	logger.Info(ctx, "monitoring loop started")
	defer logger.Info(ctx, "monitoring loop finished")

	for cycle := 1; ; cycle++ {
		s.RunCycle(logger.WithFields(ctx, zap.Int("cycle", cycle)))
		if ctx.Err() != nil {
			return
		}

		s.mu.Lock()
		if s.status.Running {
			s.status.NextCycleAt = s.options.Now().Add(s.options.Interval)
		}
		s.mu.Unlock()

		if err := s.options.Sleep(ctx, s.options.Interval); err != nil {
			return
		}
	}
}

// RunCycle scans every monitored domain once and emits the resulting events.
// It stops early, without a CycleClean event, once ctx is done. Hostnames fetched
// before the stop are still recorded and reported.
func (s *Scheduler) RunCycle(ctx context.Context) CycleOutcome {
	started := s.options.Now()
	s.mu.Lock()
	s.status.LastCycleStartedAt = started
	s.status.NextCycleAt = time.Time{}
	s.mu.Unlock()

	out := CycleOutcome{New: map[string][]string{}}

	domains, err := s.domains.Domains(ctx)
	if err != nil {
		logger.Error(ctx, "could not load monitored domains", zap.Error(err))
		s.options.Metrics.ScanError(ctx, "")
		s.notify(ctx, domain.ScanErrorEvent("", err.Error()))

		return out
	}
	out.Domains = domains

	for i, name := range domains {
		if ctx.Err() != nil {
			return out
		}
		if i > 0 {
			if err := s.options.Sleep(ctx, s.options.DomainDelay); err != nil {
				return out
			}
		}

		s.scanDomain(logger.WithFields(ctx, zap.String("domain", name)), name, &out)
		out.Processed++
	}

	if ctx.Err() != nil {
		return out
	}
	out.Completed = true

	took := s.options.Now().Sub(started)
	s.options.Metrics.CycleCompleted(ctx, took, out.Clean())
	s.mu.Lock()
	s.status.LastCycleFinishedAt = s.options.Now()
	s.status.LastCycleClean = out.Clean()
	s.mu.Unlock()

	logger.Info(ctx, "cycle completed",
		zap.Int("domains", len(out.Domains)),
		zap.Int("withNewSubdomains", len(out.New)),
		zap.Int("scanErrors", out.ScanErrors),
		zap.Int("persistErrors", out.PersistErrors),
		zap.Duration("took", took))

	if out.Clean() {
		s.notify(ctx, domain.CycleCleanEvent(out.Domains, s.options.Interval))
	}

	return out
}

func (s *Scheduler) scanDomain(ctx context.Context, name string, out *CycleOutcome) {
	candidates, err := s.client.Fetch(ctx, name)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		out.ScanErrors++
		s.options.Metrics.ScanError(ctx, name)
		logger.Warn(ctx, "could not scan domain", zap.Error(err))
		s.notify(ctx, domain.ScanErrorEvent(name, err.Error()))

		return
	}

	// a fetched result is recorded and reported even if a stop arrives meanwhile
	ctx = context.WithoutCancel(ctx)

	delta, err := s.differ.Apply(ctx, name, candidates)
	if err != nil {
		out.PersistErrors++
		s.options.Metrics.PersistError(ctx, name)
		logger.Error(ctx, "could not update known subdomains", zap.Error(err))
		if len(delta) == 0 {
			s.notify(ctx, domain.ScanErrorEvent(name, err.Error()))

			return
		}
		out.New[name] = delta
		s.notify(ctx, domain.PersistErrorEvent(name, delta, err.Error()))

		return
	}

	logger.Debug(ctx, "domain scanned", zap.Int("candidates", len(candidates)), zap.Int("new", len(delta)))
	if len(delta) == 0 {
		return
	}

	out.New[name] = delta
	s.options.Metrics.NewSubdomains(ctx, name, len(delta))
	s.notify(ctx, domain.NewSubdomainsEvent(name, delta))
}

// notify delivers event once. Failures are logged and never retried.
func (s *Scheduler) notify(ctx context.Context, event domain.Event) {
	if err := s.notifier.Notify(ctx, event); err != nil {
		logger.Warn(ctx, "could not deliver notification",
			zap.String("event", string(event.Kind)),
			zap.Error(err))
	}
}

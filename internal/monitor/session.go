package monitor

import (
	"context"
	"os"
	"time"

	"github.com/glueful/memwatch/internal/alert"
	"github.com/glueful/memwatch/internal/config"
	"github.com/glueful/memwatch/internal/logger"
	"github.com/glueful/memwatch/internal/sampler"
	"github.com/glueful/memwatch/internal/sink"
	"github.com/glueful/memwatch/internal/supervisor"
)

// Stop reasons shown in the session summary.
const (
	ReasonChildExited = "monitored command exited"
	ReasonDuration    = "maximum duration reached"
	ReasonInterrupt   = "interrupted"
	ReasonSampleError = "memory sampling failed"
)

// Sampler yields point-in-time memory readings for the monitored process.
type Sampler interface {
	Sample() (sampler.Sample, error)
}

// Options carries the session's collaborators. Zero values get sensible
// defaults; tests inject stubs here.
type Options struct {
	Reporter *Reporter
	Logger   logger.Logger

	// NewSampler builds the sampler once the monitored PID is known
	// (0 = current process). Defaults to the gopsutil-backed sampler.
	NewSampler func(pid int) (Sampler, error)

	// Grace is how long a still-running child gets between SIGTERM and
	// SIGKILL during finalization.
	Grace time.Duration
}

// Session drives the polling loop: spawn (optional), then once per interval
// sample, report, evaluate the alert, record to the sink, and drain child
// output, until a stop condition fires. Finalization runs on every exit
// path.
type Session struct {
	cfg *config.Session
	rep *Reporter
	log logger.Logger
	eng *alert.Engine

	newSampler func(pid int) (Sampler, error)
	grace      time.Duration

	handle *supervisor.Handle
	smp    Sampler
	sink   *sink.CSVSink

	iterations int
	peak       uint64
	stopReason string
	finalized  bool
}

// NewSession creates a session for the given (validated) config.
func NewSession(cfg *config.Session, opts Options) *Session {
	if opts.Reporter == nil {
		opts.Reporter = NewReporter(os.Stdout)
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewEnvLogger("[monitor]")
	}
	if opts.NewSampler == nil {
		opts.NewSampler = func(pid int) (Sampler, error) {
			return sampler.New(pid)
		}
	}
	if opts.Grace <= 0 {
		opts.Grace = 5 * time.Second
	}

	return &Session{
		cfg:        cfg,
		rep:        opts.Reporter,
		log:        opts.Logger,
		eng:        alert.NewEngine(cfg.Threshold, cfg.SelfTarget()),
		newSampler: opts.NewSampler,
		grace:      opts.Grace,
	}
}

// Peak returns the highest usage observed so far. Non-decreasing across
// the session.
func (s *Session) Peak() uint64 {
	return s.peak
}

// Iterations returns the number of completed ticks.
func (s *Session) Iterations() int {
	return s.iterations
}

// Engine exposes the alert engine (tests swap the GC hook through it).
func (s *Session) Engine() *alert.Engine {
	return s.eng
}

// Run executes the session until a stop condition fires or a fatal error
// occurs. Finalization — drain remaining child output, reap the child,
// close the sink, print the summary — runs on every exit path, including
// sampling failure and context cancellation.
func (s *Session) Run(ctx context.Context) error {
	// Idle -> Running: spawn the child first; a spawn failure is fatal
	// before any resource needs cleanup.
	if !s.cfg.SelfTarget() {
		handle, err := supervisor.Start(s.cfg.Command)
		if err != nil {
			return err
		}
		s.handle = handle
	}

	defer s.finalize()

	pid := 0
	if s.handle != nil {
		pid = s.handle.PID()
	}

	smp, err := s.newSampler(pid)
	if err != nil {
		s.stopReason = ReasonSampleError
		return err
	}
	s.smp = smp

	if s.cfg.CSVEnabled {
		s.sink = sink.Open(s.cfg.CSVPath, s.log)
		if !s.sink.Enabled() {
			s.rep.SinkError(s.cfg.CSVPath)
		}
	}

	s.rep.Start(s.cfg, pid)

	return s.loop(ctx)
}

// loop is the Running state. It suspends only between ticks; stop
// conditions are observed cooperatively at the sleep point.
func (s *Session) loop(ctx context.Context) error {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	var deadline <-chan time.Time
	if s.cfg.MaxDuration > 0 {
		timer := time.NewTimer(s.cfg.MaxDuration)
		defer timer.Stop()
		deadline = timer.C
	}

	for {
		// Liveness comes before sampling: once the child is reaped its
		// /proc entry is gone and a sample would fail, turning a normal
		// child exit into a sampling error.
		if s.handle != nil && !s.handle.Alive() {
			s.stopReason = ReasonChildExited
			return nil
		}

		if err := s.tick(); err != nil {
			// The child can be reaped between the liveness check and the
			// sample; that is still a normal stop.
			if s.handle != nil && !s.handle.Alive() {
				s.stopReason = ReasonChildExited
				return nil
			}
			s.stopReason = ReasonSampleError
			return err
		}

		if s.handle != nil && !s.handle.Alive() {
			s.stopReason = ReasonChildExited
			return nil
		}

		select {
		case <-ctx.Done():
			s.stopReason = ReasonInterrupt
			return nil
		case <-deadline:
			s.stopReason = ReasonDuration
			return nil
		case <-ticker.C:
		}
	}
}

// tick is one loop iteration: sample, report, evaluate, record, drain.
func (s *Session) tick() error {
	sample, err := s.smp.Sample()
	if err != nil {
		return err
	}

	// Session peak accumulator never decreases, even if the process's own
	// high-water mark resets (e.g. after exec). Reported and recorded
	// peaks always reflect the accumulator.
	if sample.Peak > s.peak {
		s.peak = sample.Peak
	} else {
		sample.Peak = s.peak
	}

	s.rep.Sample(sample)

	if s.eng.Check(sample) == alert.ThresholdExceeded {
		s.rep.ThresholdWarning(sample, s.cfg.Threshold)
		if s.cfg.SelfTarget() {
			s.rep.CorrectiveAction()
		}
	}

	s.sink.Record(sample, s.iterations)
	s.iterations++

	if s.handle != nil {
		stdout, stderr := s.handle.Drain()
		for _, line := range stdout {
			s.rep.ChildOutput(line)
		}
		for _, line := range stderr {
			s.rep.ChildError(line)
		}
	}

	return nil
}

// finalize is the Finalizing -> Done transition. Runs exactly once.
func (s *Session) finalize() {
	if s.finalized {
		return
	}
	s.finalized = true

	if s.stopReason == "" {
		s.stopReason = ReasonInterrupt
	}

	if s.handle != nil {
		stdout, stderr, code, err := s.handle.Finalize(s.grace)
		if err != nil {
			s.log.Error("finalize child: %v", err)
		} else {
			for _, line := range stdout {
				s.rep.ChildOutput(line)
			}
			for _, line := range stderr {
				s.rep.ChildError(line)
			}
			s.rep.ExitCode(code)
		}
		s.handle = nil
	}

	s.sink.Close()
	s.sink = nil

	s.rep.Summary(s.peak, s.iterations, s.stopReason)
}

package audit

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// RecorderConfig controls queueing and retention of audit records.
type RecorderConfig struct {
	QueueSize     int
	Retention     time.Duration
	SweepInterval time.Duration
}

// Recorder accepts formatted audit messages and writes them to the log
// asynchronously. Record never blocks a business operation and never
// returns an error: a full queue or a failed write is logged and
// dropped. A cron schedule sweeps out entries past retention.
type Recorder struct {
	log    *Log
	logger *zap.Logger
	cfg    RecorderConfig

	queue  chan Entry
	cron   *cron.Cron
	wg     sync.WaitGroup
	once   sync.Once
	closed atomic.Bool
}

func NewRecorder(log *Log, logger *zap.Logger, cfg RecorderConfig) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1024
	}
	if cfg.Retention <= 0 {
		cfg.Retention = 30 * 24 * time.Hour
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = time.Hour
	}

	r := &Recorder{
		log:    log,
		logger: logger,
		cfg:    cfg,
		queue:  make(chan Entry, cfg.QueueSize),
		cron:   cron.New(),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.SweepInterval.Seconds()))
	_, _ = r.cron.AddFunc(schedule, r.sweep)

	return r
}

// Record enqueues the message for the background writer. Records
// arriving after Stop are dropped.
func (r *Recorder) Record(message string) {
	if r == nil || r.log == nil || r.closed.Load() {
		return
	}
	entry := Entry{Message: message, RecordedAt: time.Now()}
	select {
	case r.queue <- entry:
	default:
		r.logger.Warn("audit queue full, dropping record", zap.String("message", message))
	}
}

// Start launches the writer goroutine and the retention schedule.
func (r *Recorder) Start() {
	if r == nil {
		return
	}
	r.wg.Add(1)
	go r.drain()
	r.cron.Start()
	r.logger.Info("audit recorder started")
}

// Stop flushes queued records and halts the retention schedule.
func (r *Recorder) Stop(ctx context.Context) {
	if r == nil {
		return
	}
	r.once.Do(func() {
		r.closed.Store(true)
		close(r.queue)
	})

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
	}

	stopCtx := r.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	r.logger.Info("audit recorder stopped")
}

func (r *Recorder) drain() {
	defer r.wg.Done()
	for entry := range r.queue {
		if err := r.log.Append(entry); err != nil {
			r.logger.Error("failed to append audit entry", zap.Error(err))
		}
	}
}

func (r *Recorder) sweep() {
	cutoff := time.Now().Add(-r.cfg.Retention)
	if err := r.log.Cleanup(cutoff); err != nil {
		r.logger.Error("audit retention sweep failed", zap.Error(err))
	}
}

// Package scheduler drives the outbox: on a fixed interval it asks the
// message service to drain one batch of pending messages through the
// provider gateway.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"
)

// BatchProcessor is the dependency that actually does the work.
// The scheduler calls ProcessBatch on a fixed interval.
type BatchProcessor interface {
	ProcessBatch(ctx context.Context) error
}

// SchedulerService exposes a small control surface for the scheduler.
// Start/Stop are synchronous controls, and IsRunning reports
// whether the scheduler is currently accepting ticks.
type SchedulerService interface {
	Start() error
	Stop() error
	IsRunning() bool
}

// DefaultInterval is used when no custom interval is provided.
const DefaultInterval = 2 * time.Minute

// DefaultBatchTimeout is how long a single batch may run before its
// context is cancelled.
const DefaultBatchTimeout = 30 * time.Second

// controlTimeout bounds how long Start/Stop wait for the control loop to
// accept and acknowledge a command, so callers never hang.
const controlTimeout = 2 * time.Second

// controlOp represents the kind of command sent into the internal control loop.
type controlOp int

const (
	opStart controlOp = iota
	opStop
	opStatus
)

// controlMsg is sent over the ctrl channel to drive the scheduler's state.
type controlMsg struct {
	op   controlOp
	resp chan bool // used by callers to get a synchronous answer
}

// schedulerService owns the internal state and runs the control loop.
// All mutable state lives in the loop goroutine, so we don't need locks.
type schedulerService struct {
	processor    BatchProcessor
	interval     time.Duration
	batchTimeout time.Duration
	ctrl         chan controlMsg
}

// NewSchedulerService creates a new scheduler with the given interval
// and batch timeout. Values <= 0 fall back to the defaults.
func NewSchedulerService(
	processor BatchProcessor,
	interval time.Duration,
	batchTimeout time.Duration,
) SchedulerService {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if batchTimeout <= 0 {
		batchTimeout = DefaultBatchTimeout
	}

	s := &schedulerService{
		processor:    processor,
		interval:     interval,
		batchTimeout: batchTimeout,
		ctrl:         make(chan controlMsg),
	}

	// The control loop is started in its own goroutine and lives
	// for the lifetime of the process.
	go s.loop()

	return s
}

// Start tells the scheduler to begin processing ticks. It blocks until the
// internal loop has acknowledged the state change, or returns an error if
// the control loop does not respond in time.
func (s *schedulerService) Start() error {
	return s.send(opStart, "Start")
}

// Stop tells the scheduler to stop accepting new ticks. If a batch is
// currently running, Stop waits until that batch finishes (or times out)
// before returning.
func (s *schedulerService) Stop() error {
	return s.send(opStop, "Stop")
}

// IsRunning reports whether the scheduler is currently in "running" mode.
// It does not mean a batch is actively executing, only that new ticks will
// be processed when the timer fires.
func (s *schedulerService) IsRunning() bool {
	resp := make(chan bool)
	s.ctrl <- controlMsg{op: opStatus, resp: resp}
	return <-resp
}

// send delivers a command to the control loop and waits for the
// acknowledgement, bounding both steps with controlTimeout.
func (s *schedulerService) send(op controlOp, name string) error {
	resp := make(chan bool)
	msg := controlMsg{op: op, resp: resp}

	select {
	case s.ctrl <- msg:
	case <-time.After(controlTimeout):
		return fmt.Errorf("[Scheduler] %s: control loop not responding", name)
	}

	select {
	case <-resp:
		return nil
	case <-time.After(controlTimeout):
		return fmt.Errorf("[Scheduler] %s: acknowledgement timeout", name)
	}
}

// loop is the heart of the scheduler. It owns all mutable state
// and reacts to either control messages or timer ticks.
func (s *schedulerService) loop() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// running: whether we should accept new ticks
	// inBatch: whether a batch is currently executing
	running := false
	inBatch := false

	// pendingStop is a response channel to be completed once
	// the current batch finishes, if Stop was called mid-batch.
	var pendingStop chan bool

	for {
		select {
		case msg := <-s.ctrl:
			switch msg.op {
			case opStart:
				if !running {
					log.Printf("[Scheduler] Started (interval=%s, batchTimeout=%s)\n",
						s.interval, s.batchTimeout)
				}
				running = true
				msg.resp <- true

			case opStop:
				// Already idle and not in a batch: acknowledge immediately.
				if !running && !inBatch {
					log.Println("[Scheduler] Stop requested, but already idle.")
					msg.resp <- true
					continue
				}

				log.Println("[Scheduler] Stop requested. Waiting for current batch (if any)...")

				// Mark as not running so future ticks are ignored.
				running = false

				if inBatch {
					// Defer the response until the batch completes.
					pendingStop = msg.resp
				} else {
					msg.resp <- true
				}

			case opStatus:
				msg.resp <- running
			}

		case <-ticker.C:
			// Ignore ticks while stopped or mid-batch.
			if !running || inBatch {
				continue
			}

			inBatch = true
			log.Println("[Scheduler] Draining outbox batch...")

			// Time-bound the batch execution so Stop doesn't hang forever
			// if ProcessBatch never returns.
			ctx, cancel := context.WithTimeout(context.Background(), s.batchTimeout)

			err := s.processor.ProcessBatch(ctx)
			cancel()

			if err != nil {
				log.Printf("[Scheduler] Batch failed: %v\n", err)
			} else {
				log.Println("[Scheduler] Batch completed.")
			}

			inBatch = false

			// Complete a Stop that arrived while the batch was running.
			if pendingStop != nil {
				pendingStop <- true
				pendingStop = nil
				log.Println("[Scheduler] Stopped (no active batch).")
			}
		}
	}
}

package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/roach88/helix/internal/ir"
	"github.com/roach88/helix/internal/store"
)

// Scheduler defaults.
const (
	// DefaultMaxPerCycle bounds how many requests one Process call may
	// drain. This is the system's only backpressure mechanism: excess
	// work stays queued for the next cycle rather than being processed
	// unboundedly. Callers needing different fairness change the cap,
	// they do not bypass it.
	DefaultMaxPerCycle = 5

	// DefaultHistoryCap bounds the in-memory history log; the oldest
	// entries are evicted beyond it.
	DefaultHistoryCap = 1000
)

// RequestStatus is the lifecycle state of a reconfiguration request.
type RequestStatus string

const (
	StatusQueued    RequestStatus = "queued"
	StatusCompleted RequestStatus = "completed"
	StatusFailed    RequestStatus = "failed"
)

// Request is one pending or finished hardware reconfiguration.
// Consumed exactly once by Process; retained afterward only in the
// bounded history log.
type Request struct {
	ID            string
	Target        string
	Configuration ir.Params
	Priority      int
	Timestamp     float64 // simulation clock at enqueue
	Status        RequestStatus
	Detail        string // outcome summary, or the failure reason

	seq int64 // arrival order, breaks priority ties FIFO
}

// Reconfigurable is the single capability a target must expose. This is
// the only contract the external cellular hierarchy has to satisfy;
// there is no attribute-name fallback.
//
// Implementations must treat the configuration as read-only. Errors (and
// panics) never propagate past the scheduler boundary.
type Reconfigurable interface {
	Reconfigure(configuration ir.Params) error
}

// SchedulerStatus is a point-in-time snapshot of scheduler counters.
type SchedulerStatus struct {
	Queued               int `json:"queued_reconfigurations"`
	ActiveConfigurations int `json:"active_configurations"`
	TotalProcessed       int `json:"total_reconfigurations"`
	RecentFailures       int `json:"recent_failures"` // failures among the last 10
}

// Scheduler is the priority queue of pending reconfiguration requests.
//
// Ordering: priority descending, arrival ascending - highest priority
// first, FIFO among equals, guaranteeing eventual fairness.
//
// Thread-safety: Enqueue may be called from any goroutine; Process must
// be called from the engine's single writer.
type Scheduler struct {
	mu          sync.Mutex
	queue       []*Request
	nextSeq     int64
	maxPerCycle int

	history    []*Request
	historyCap int
	active     map[string]ir.Params // last successfully applied config per target

	clock   *Clock
	durable *store.Store // optional durable log; nil disables
}

// NewScheduler creates an empty scheduler reading enqueue timestamps
// from the given clock.
func NewScheduler(clock *Clock) *Scheduler {
	return &Scheduler{
		maxPerCycle: DefaultMaxPerCycle,
		historyCap:  DefaultHistoryCap,
		active:      map[string]ir.Params{},
		clock:       clock,
	}
}

// SetMaxPerCycle overrides the per-cycle processing cap.
func (s *Scheduler) SetMaxPerCycle(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maxPerCycle = n
}

// SetHistoryStore attaches a durable history log. Finished requests are
// appended to it; write failures are logged and never fail the cycle.
func (s *Scheduler) SetHistoryStore(st *store.Store) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.durable = st
}

// Enqueue adds a reconfiguration request for target at the given
// priority and keeps the queue sorted.
func (s *Scheduler) Enqueue(target string, configuration ir.Params, priority int) *Request {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSeq++
	req := &Request{
		ID:            uuid.Must(uuid.NewV7()).String(),
		Target:        target,
		Configuration: configuration.Clone(),
		Priority:      priority,
		Timestamp:     s.clock.Now(),
		Status:        StatusQueued,
		seq:           s.nextSeq,
	}

	s.queue = append(s.queue, req)
	sort.SliceStable(s.queue, func(i, j int) bool {
		if s.queue[i].Priority != s.queue[j].Priority {
			return s.queue[i].Priority > s.queue[j].Priority
		}
		return s.queue[i].seq < s.queue[j].seq
	})

	return req
}

// QueueLen returns the number of pending requests.
func (s *Scheduler) QueueLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Process drains up to maxPerCycle requests against the targets mapping
// and returns one human-readable outcome string per finished request.
//
// A target absent from the mapping is treated identically to an apply
// failure: the request finishes with status failed, counts against the
// cycle cap, and lands in the history log. Unprocessed excess requests
// remain queued for the next call.
func (s *Scheduler) Process(ctx context.Context, targets map[string]Reconfigurable) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var outcomes []string
	for cycle := 0; cycle < s.maxPerCycle && len(s.queue) > 0; cycle++ {
		req := s.queue[0]
		s.queue[0] = nil // release for GC
		s.queue = s.queue[1:]

		err := applyRequest(req, targets)
		if err == nil {
			req.Status = StatusCompleted
			req.Detail = fmt.Sprintf("Reconfigured %s", req.Target)
			s.active[req.Target] = req.Configuration
		} else {
			req.Status = StatusFailed
			req.Detail = err.Error()
			slog.Warn("reconfiguration failed",
				"target", req.Target, "request", req.ID, "error", err)
		}
		outcomes = append(outcomes, outcomeString(req))

		s.history = append(s.history, req)
		if len(s.history) > s.historyCap {
			s.history = s.history[len(s.history)-s.historyCap:]
		}

		s.record(ctx, req)
	}

	return outcomes
}

// applyRequest invokes the target's Reconfigure capability, converting
// a missing target, a returned error, or a panic into a RuntimeError.
func applyRequest(req *Request, targets map[string]Reconfigurable) (err error) {
	target, ok := targets[req.Target]
	if !ok {
		return &RuntimeError{Code: ErrCodeUnknownTarget, Target: req.Target, RequestID: req.ID}
	}

	defer func() {
		if r := recover(); r != nil {
			err = &RuntimeError{
				Code:      ErrCodeApplyFailed,
				Target:    req.Target,
				RequestID: req.ID,
				Err:       fmt.Errorf("panic: %v", r),
			}
		}
	}()

	if applyErr := target.Reconfigure(req.Configuration); applyErr != nil {
		return &RuntimeError{
			Code:      ErrCodeApplyFailed,
			Target:    req.Target,
			RequestID: req.ID,
			Err:       applyErr,
		}
	}
	return nil
}

// outcomeString renders the per-request outcome line.
func outcomeString(req *Request) string {
	if req.Status == StatusCompleted {
		return fmt.Sprintf("Reconfigured %s", req.Target)
	}
	return fmt.Sprintf("Failed to reconfigure %s", req.Target)
}

// record appends the finished request to the durable log, if attached.
func (s *Scheduler) record(ctx context.Context, req *Request) {
	if s.durable == nil {
		return
	}

	cfg, err := json.Marshal(req.Configuration)
	if err != nil {
		slog.Warn("history record skipped", "request", req.ID, "error", err)
		return
	}

	rec := store.Reconfiguration{
		ID:            req.ID,
		Target:        req.Target,
		Configuration: string(cfg),
		Priority:      req.Priority,
		Timestamp:     req.Timestamp,
		Status:        string(req.Status),
		Detail:        req.Detail,
	}
	if err := s.durable.WriteReconfiguration(ctx, rec); err != nil {
		slog.Warn("history write failed", "request", req.ID, "error", err)
	}
}

// History returns a copy of the in-memory history log, oldest first.
func (s *Scheduler) History() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Request, len(s.history))
	for i, req := range s.history {
		out[i] = *req
	}
	return out
}

// Status returns current scheduler counters. RecentFailures counts
// failed requests among the last 10 history entries.
func (s *Scheduler) Status() SchedulerStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	recent := s.history
	if len(recent) > 10 {
		recent = recent[len(recent)-10:]
	}
	failures := 0
	for _, req := range recent {
		if req.Status == StatusFailed {
			failures++
		}
	}

	return SchedulerStatus{
		Queued:               len(s.queue),
		ActiveConfigurations: len(s.active),
		TotalProcessed:       len(s.history),
		RecentFailures:       failures,
	}
}

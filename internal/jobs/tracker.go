package jobs

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// State is a job's lifecycle phase.
type State string

const (
	StatePending    State = "pending"
	StateProcessing State = "processing"
	StateCompleted  State = "completed"
	StateFailed     State = "failed"
)

// Status is what pollers see for a submitted job.
type Status struct {
	JobID     uuid.UUID `json:"job_id"`
	State     State     `json:"state"`
	SessionID uuid.UUID `json:"session_id,omitempty"`
	Error     string    `json:"error,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Tracker records job statuses for polling.
type Tracker struct {
	mu       sync.RWMutex
	statuses map[uuid.UUID]Status
}

func NewTracker() *Tracker {
	return &Tracker{statuses: make(map[uuid.UUID]Status)}
}

func (t *Tracker) Register(jobID uuid.UUID) {
	t.set(Status{JobID: jobID, State: StatePending})
}

func (t *Tracker) SetProcessing(jobID uuid.UUID) {
	t.set(Status{JobID: jobID, State: StateProcessing})
}

func (t *Tracker) SetCompleted(jobID, sessionID uuid.UUID) {
	t.set(Status{JobID: jobID, State: StateCompleted, SessionID: sessionID})
}

func (t *Tracker) SetFailed(jobID uuid.UUID, err error) {
	t.set(Status{JobID: jobID, State: StateFailed, Error: err.Error()})
}

func (t *Tracker) Get(jobID uuid.UUID) (Status, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	st, ok := t.statuses[jobID]
	return st, ok
}

func (t *Tracker) set(st Status) {
	st.UpdatedAt = time.Now()
	t.mu.Lock()
	t.statuses[st.JobID] = st
	t.mu.Unlock()
}

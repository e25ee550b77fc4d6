package pipeline

// Status is the display status of one pipeline step.
type Status string

const (
	StatusPending  Status = "pending"
	StatusLoading  Status = "loading"
	StatusComplete Status = "complete"
	StatusError    Status = "error"
)

// StepState mirrors one orchestrator stage for display.
type StepState struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Status Status `json:"status"`
}

// Tracker holds the per-attempt step states. It is created fresh for every
// submission attempt and discarded afterwards. Transitions are monotonic: a
// step never regresses from complete or error back to pending or loading.
type Tracker struct {
	steps []StepState
	index map[string]int
}

// NewTracker builds a tracker with every step pending.
func NewTracker(stages []Stage) *Tracker {
	t := &Tracker{index: make(map[string]int, len(stages))}
	for _, stage := range stages {
		t.index[stage.Name] = len(t.steps)
		t.steps = append(t.steps, StepState{ID: stage.Name, Label: stage.Label, Status: StatusPending})
	}
	return t
}

// Set transitions one step, ignoring unknown ids and regressions out of the
// terminal statuses.
func (t *Tracker) Set(id string, status Status) {
	if t == nil {
		return
	}
	i, ok := t.index[id]
	if !ok {
		return
	}
	current := t.steps[i].Status
	if current == StatusComplete || current == StatusError {
		return
	}
	t.steps[i].Status = status
}

// Steps returns a copy of the current step states in pipeline order.
func (t *Tracker) Steps() []StepState {
	if t == nil {
		return nil
	}
	out := make([]StepState, len(t.steps))
	copy(out, t.steps)
	return out
}

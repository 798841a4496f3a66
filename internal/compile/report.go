package compile

import (
	"time"

	"github.com/google/uuid"
)

// PhaseReport records what one compile phase did.
type PhaseReport struct {
	Sources  int           `json:"sources"`
	Duration time.Duration `json:"duration"`
	Skipped  bool          `json:"skipped"`
}

// Report summarizes a build: per-stage durations, per-phase source counts,
// and the final outcome. Persisted by the build-history store.
type Report struct {
	ID             string                       `json:"id"`
	Project        string                       `json:"project"`
	Started        time.Time                    `json:"started"`
	Duration       time.Duration                `json:"duration"`
	StageDurations map[StageName]time.Duration  `json:"stage_durations"`
	Phases         map[StageName]PhaseReport    `json:"phases"`
	StageErrors    map[StageName]StageErrorKind `json:"stage_errors,omitempty"`
	Outcome        string                       `json:"outcome"`
	Error          string                       `json:"error,omitempty"`
}

func newReport(projectName string) *Report {
	return &Report{
		ID:             uuid.NewString(),
		Project:        projectName,
		Started:        time.Now(),
		StageDurations: make(map[StageName]time.Duration),
		Phases:         make(map[StageName]PhaseReport),
		StageErrors:    make(map[StageName]StageErrorKind),
	}
}

func (r *Report) recordDuration(stage StageName, d time.Duration) {
	r.StageDurations[stage] = d
	// Phase entries are recorded inside the stage, before timing is known.
	if p, ok := r.Phases[stage]; ok {
		p.Duration = d
		r.Phases[stage] = p
	}
}

func (r *Report) recordPhase(stage StageName, sources int, skipped bool) {
	r.Phases[stage] = PhaseReport{Sources: sources, Skipped: skipped}
}

func (r *Report) recordError(stage StageName, se *StageError) {
	r.StageErrors[stage] = se.Kind
	r.Error = se.Error()
}

func (r *Report) finish(err error) {
	r.Duration = time.Since(r.Started)
	if err != nil {
		r.Outcome = "failed"
		return
	}
	r.Outcome = "success"
}

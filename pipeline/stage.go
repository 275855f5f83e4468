package pipeline

import "github.com/njchilds90/explicitize/simplify"

// Stage is the position of a row in the conversion state machine:
// Pending → Solved → Rescaled → Cleaned → Final, or Failed.
type Stage int

const (
	StagePending Stage = iota
	StageSolved
	StageRescaled
	StageCleaned
	StageFinal
	StageFailed
)

var stageNames = [...]string{"pending", "solved", "rescaled", "cleaned", "final", "failed"}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return "unknown"
	}
	return stageNames[s]
}

// Outcome describes how one row ended.
type Outcome struct {
	Index int
	// Stage is StageFinal or StageFailed.
	Stage Stage
	// Reached is the last stage the row completed.
	Reached Stage
	// Err wraps one of the row failure sentinels when Stage is StageFailed.
	Err error
	// Roots is the number of roots the solver returned.
	Roots   int
	Scaling simplify.Scaling
}

// Failed reports whether the row failed.
func (o Outcome) Failed() bool { return o.Stage == StageFailed }

// Observer is notified as rows finish.
type Observer func(Outcome)

// Summary counts a batch.
type Summary struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

package model

// TallySnapshot is a read-only view of a session's quiz tally
type TallySnapshot struct {
	Correct  int      `json:"correct"`
	Total    int      `json:"total"`
	Accuracy *float64 `json:"accuracy,omitempty"` // nil until the first simulation
}

// QuizOutcome is the result of one simulated quiz run
type QuizOutcome struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Tally   TallySnapshot `json:"tally"`
}

package models

// Difficulty is the tier a puzzle belongs to.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Difficulties lists the tiers in presentation order.
var Difficulties = []Difficulty{Easy, Medium, Hard}

// Valid reports whether d is one of the known tiers.
func (d Difficulty) Valid() bool {
	switch d {
	case Easy, Medium, Hard:
		return true
	}
	return false
}

type Puzzle struct {
	ID           int64      `json:"id"`
	Difficulty   Difficulty `json:"difficulty"`
	Instructions string     `json:"instructions"`
	Text         string     `json:"text"`
	Solution     string     `json:"solution"`
	Hint         string     `json:"hint"`
	Order        int        `json:"order"` // rank within the tier, ascending
}

// NewPuzzle is the input for creating a puzzle; the store assigns the id.
type NewPuzzle struct {
	Difficulty   Difficulty
	Instructions string
	Text         string
	Solution     string
	Hint         string
	Order        int
}

// Progress records whether an anonymous session completed a puzzle.
// UserID is always nil; there are no accounts.
type Progress struct {
	ID        int64  `json:"id"`
	UserID    *int64 `json:"userId"`
	PuzzleID  int64  `json:"puzzleId"`
	Completed bool   `json:"completed"`
	SessionID string `json:"sessionId"`
}

// NewProgress is the input for creating a progress row.
// A nil Completed defaults to false.
type NewProgress struct {
	UserID    *int64
	PuzzleID  int64
	Completed *bool
	SessionID string
}

// IsCompleted resolves the Completed default.
func (p NewProgress) IsCompleted() bool {
	return p.Completed != nil && *p.Completed
}

package domain

// SplitRequest asks for one expense to be split. Amount is a pointer so that
// a missing amount can be told apart from zero.
type SplitRequest struct {
	ExpenseID    string        `json:"expenseId,omitempty" example:"dinner-2024-05-01"`
	Amount       *float64      `json:"amount" example:"100"`
	Currency     string        `json:"currency,omitempty" example:"USD"`
	Method       SplitMethod   `json:"method" example:"equal"`
	Participants []Participant `json:"participants"`
	Persist      bool          `json:"persist,omitempty"`
}

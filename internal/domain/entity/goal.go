// Package entity defines the core business entities for the domain layer.
package entity

// GoalKind represents the type of a financial goal.
type GoalKind string

const (
	GoalKindSavings   GoalKind = "savings"
	GoalKindRepayment GoalKind = "repayment"
)

// DeadlineOngoing marks a goal without a target month.
const DeadlineOngoing = "ongoing"

// Goal represents a savings or repayment target with its current progress.
// Amounts are kept as loosely typed currency-like strings (e.g. "$1,200.50").
type Goal struct {
	ID            string
	Kind          GoalKind
	GoalName      string
	Category      string
	GoalAmount    string
	CurrentAmount string
	Deadline      string
}

// IsOngoing reports whether the goal has no deadline.
func (g Goal) IsOngoing() bool {
	return g.Deadline == "" || g.Deadline == DeadlineOngoing
}

package tasks_models

import "math"

// NextTaskNumber continues the per-project sequence. Numbers start at 1.
func NextTaskNumber(maxNumber *int) int {
	if maxNumber == nil {
		return 1
	}

	return *maxNumber + 1
}

// NextPosition appends to the end of a board column. Positions start at 0.
func NextPosition(maxPosition *int) int {
	if maxPosition == nil {
		return 0
	}

	return *maxPosition + 1
}

// MilestoneProgress is round(100 * done / total), and 0 for an empty milestone.
func MilestoneProgress(done, total int) int {
	if total <= 0 {
		return 0
	}

	done = min(max(done, 0), total)

	return int(math.Round(100 * float64(done) / float64(total)))
}

package availability

import "time"

// DefaultAdvanceCap bounds how many consecutive months the calendar may
// auto-skip when everything it would show is blocked.
const DefaultAdvanceCap = 12

// MonthFullyBlocked reports whether every day of the given month evaluates to
// blocked. Advisory minimum-stay flags do not count: a day the user could
// still pick with a longer stay keeps the month open.
func (e *Evaluator) MonthFullyBlocked(year int, month time.Month, role EndpointRole, sel Selected) bool {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	for day := first; day.Month() == month; day = day.AddDate(0, 0, 1) {
		if !e.Evaluate(day, role, sel).Blocked {
			return false
		}
	}
	return true
}

// AdvanceToOpenMonth walks forward from the given month until one with at
// least one selectable day is found, moving at most cap months (DefaultAdvanceCap
// when cap <= 0). If every inspected month is blocked it stays on the furthest
// month reached rather than looping on.
func (e *Evaluator) AdvanceToOpenMonth(year int, month time.Month, role EndpointRole, sel Selected, cap int) (int, time.Month) {
	if cap <= 0 {
		cap = DefaultAdvanceCap
	}
	current := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < cap; i++ {
		if !e.MonthFullyBlocked(current.Year(), current.Month(), role, sel) {
			break
		}
		current = current.AddDate(0, 1, 0)
	}
	return current.Year(), current.Month()
}

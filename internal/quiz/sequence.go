package quiz

// LastUnitAndProblem returns the highest unit number for a level and the
// highest problem number within that unit. A level with no rows yields the
// safe default (1, 1).
func LastUnitAndProblem(t Table, level int) (lastUnit, lastProblem int) {
	lastUnit = 0
	for _, row := range t {
		if row.Level == level && row.Unit > lastUnit {
			lastUnit = row.Unit
		}
	}
	if lastUnit == 0 {
		return 1, 1
	}

	lastProblem = 0
	for _, row := range t {
		if row.Level == level && row.Unit == lastUnit && row.ProblemNumber > lastProblem {
			lastProblem = row.ProblemNumber
		}
	}
	if lastProblem == 0 {
		lastProblem = 1
	}
	return lastUnit, lastProblem
}

// LastProblemForUnit returns the highest problem number in (level, unit),
// defaulting to 1 when the unit has no rows. This is the pagination-display
// form; advance decisions use CountProblemsInUnit instead, because problem
// numbers are not guaranteed contiguous.
func LastProblemForUnit(t Table, level, unit int) int {
	last := 0
	for _, row := range t {
		if row.Level == level && row.Unit == unit && row.ProblemNumber > last {
			last = row.ProblemNumber
		}
	}
	if last == 0 {
		return 1
	}
	return last
}

// NextPosition computes the position following a correct answer.
// lastUnitForLevel is the highest unit of the current level and
// problemsInUnit the actual row count of the current unit. When the current
// problem exhausts the unit, play moves to the first problem of the next
// unit. When the unit was also the last of the level, the session is
// complete and the returned position is meaningless.
func NextPosition(current Position, lastUnitForLevel, problemsInUnit int) (next Position, complete bool) {
	if current.Problem >= problemsInUnit {
		if current.Unit >= lastUnitForLevel {
			return Position{}, true
		}
		return Position{Level: current.Level, Unit: current.Unit + 1, Problem: 1}, false
	}
	return Position{Level: current.Level, Unit: current.Unit, Problem: current.Problem + 1}, false
}

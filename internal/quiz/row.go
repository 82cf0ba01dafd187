package quiz

import "errors"

// ErrRowNotFound is returned when no quiz row matches a requested position.
var ErrRowNotFound = errors.New("quiz row not found")

// Position identifies a single problem: a level (book), a unit within the
// level, and a problem number within the unit. All components are 1-based.
type Position struct {
	Level   int
	Unit    int
	Problem int
}

// DefaultPosition is the starting position when none is supplied.
func DefaultPosition() Position {
	return Position{Level: 1, Unit: 1, Problem: 1}
}

// Row is one quiz problem loaded from the quiz workbook. The composite key
// (Level, Unit, ProblemNumber) is unique per row.
type Row struct {
	Level          int
	Unit           int
	ProblemNumber  int
	Word           string
	AnswerPhonetic string

	// SlotCharStart/SlotCharEnd form the inclusive 1-based character range
	// of the word presented as the fill-in slot.
	SlotCharStart int
	SlotCharEnd   int

	// ColorDisplayStart/ColorDisplayCount describe a secondary highlight
	// range, independent of the slot range. Zero means absent.
	ColorDisplayStart int
	ColorDisplayCount int

	CorrectImagePath string
	ShadowImagePath  string
	CorrectAudioPath string

	// TargetPhonetic is informational only; it takes no part in answer
	// resolution.
	TargetPhonetic string
}

// Valid reports whether the row carries the fields required for play.
// Rows missing a word or either image are dropped during parsing.
func (r Row) Valid() bool {
	return r.Word != "" && r.CorrectImagePath != "" && r.ShadowImagePath != ""
}

// UnitRow names a unit within a level, sourced from the unit workbook.
type UnitRow struct {
	Level    int
	Unit     int
	UnitName string
}

// Table is the flat set of quiz rows for all levels.
type Table []Row

// FindRow returns the row exactly matching the position.
func (t Table) FindRow(pos Position) (Row, bool) {
	for _, row := range t {
		if row.Level == pos.Level && row.Unit == pos.Unit && row.ProblemNumber == pos.Problem {
			return row, true
		}
	}
	return Row{}, false
}

// CountProblemsInUnit returns the number of rows in (level, unit). Problem
// numbers are not guaranteed contiguous, so advance and completion decisions
// use this row count rather than the highest problem number.
func (t Table) CountProblemsInUnit(level, unit int) int {
	count := 0
	for _, row := range t {
		if row.Level == level && row.Unit == unit {
			count++
		}
	}
	return count
}

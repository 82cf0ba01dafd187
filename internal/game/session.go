// Package game drives a play session through its states, from the tutorial
// to level completion. A Controller owns the position, the current problem
// view, and the feedback playback that follows a correct answer.
package game

import (
	"phonicscode/internal/assets"
	"phonicscode/internal/quiz"
	"phonicscode/internal/render"
)

// Kind selects which of the two games a session plays.
type Kind int

const (
	// Builder is the phonics-builder game: spin the slot to complete the
	// word with the right phonetic.
	Builder Kind = iota
	// Shadow is the shadow-puzzle game: match the word to its shadow.
	Shadow
)

func (k Kind) String() string {
	if k == Shadow {
		return "shadow"
	}
	return "builder"
}

// State is a session's position in its lifecycle.
type State int

const (
	// Loading covers the initial data fetch.
	Loading State = iota
	// Tutorial shows the how-to-play overlay on a player's first visit.
	Tutorial
	// UnitIntro announces the unit before its first problem.
	UnitIntro
	// Awaiting presents a problem and waits for an answer.
	Awaiting
	// Resolving plays the correct-answer feedback.
	Resolving
	// Advancing loads the next problem after feedback finishes.
	Advancing
	// Complete means the level's last problem was answered.
	Complete
	// Failed means the requested problem does not exist.
	Failed
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Tutorial:
		return "tutorial"
	case UnitIntro:
		return "unit-intro"
	case Awaiting:
		return "awaiting"
	case Resolving:
		return "resolving"
	case Advancing:
		return "advancing"
	case Complete:
		return "complete"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Option is one slot value offered in the builder game.
type Option struct {
	Value    string
	AudioURL string
	Correct  bool
}

// Choice is one shadow offered in the shadow-puzzle game.
type Choice struct {
	Word      string
	Label     string // word with the answer span marked up
	ShadowURL string
	Correct   bool
}

// Problem is the full view of one problem, ready for rendering.
type Problem struct {
	Row quiz.Row
	Pos quiz.Position

	// PageCurrent/PageTotal drive the "N / M" pagination badge.
	PageCurrent int
	PageTotal   int

	Segments []render.Segment
	Options  []Option // builder only
	Choices  []Choice // shadow only

	ImageURL    string
	AudioURL    string
	SlotSpinURL string
	UnitName    string
}

// distractorCount is the number of wrong slot values shown alongside the
// correct one in the builder game, for five slot options in total.
const distractorCount = 4

// buildProblem assembles the view for a row. The option and pair draws are
// random, so every load of the same problem can present a different set.
func buildProblem(kind Kind, table quiz.Table, units []quiz.UnitRow, row quiz.Row, pos quiz.Position, res *assets.Resolver) *Problem {
	p := &Problem{
		Row:         row,
		Pos:         pos,
		PageCurrent: pos.Problem,
		ImageURL:    res.URL(row.CorrectImagePath),
		AudioURL:    res.URL(row.CorrectAudioPath),
		SlotSpinURL: res.SlotSpinAudio(),
		Segments:    render.WithSlot(row.Word, row.SlotCharStart, row.SlotCharEnd, row.ColorDisplayStart, row.ColorDisplayCount),
	}

	for _, u := range units {
		if u.Level == pos.Level && u.Unit == pos.Unit {
			p.UnitName = u.UnitName
			break
		}
	}

	switch kind {
	case Builder:
		p.PageTotal = table.CountProblemsInUnit(pos.Level, pos.Unit)
		for _, value := range quiz.OptionSet(table, row, distractorCount) {
			p.Options = append(p.Options, Option{
				Value:    value,
				AudioURL: res.OptionAudio(pos.Level, value),
				Correct:  value == row.AnswerPhonetic,
			})
		}
	case Shadow:
		_, p.PageTotal = quiz.LastUnitAndProblem(table, pos.Level)
		for _, candidate := range quiz.PairOptions(table, row) {
			p.Choices = append(p.Choices, Choice{
				Word:      candidate.Word,
				Label:     render.SlotOnly(candidate.Word, candidate.SlotCharStart, candidate.SlotCharEnd),
				ShadowURL: res.URL(candidate.ShadowImagePath),
				Correct:   candidate.Word == row.Word,
			})
		}
	}

	if p.PageTotal < 1 {
		p.PageTotal = 1
	}
	return p
}

// correctAnswer returns the value Resolve compares submissions against.
func correctAnswer(kind Kind, row quiz.Row) string {
	if kind == Shadow {
		return row.Word
	}
	return row.AnswerPhonetic
}

// feedbackSources lists the clips played after a correct answer, in order.
func feedbackSources(kind Kind, p *Problem) []string {
	if kind == Shadow {
		return []string{p.AudioURL}
	}
	return []string{p.SlotSpinURL, p.AudioURL}
}

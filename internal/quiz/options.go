package quiz

import "math/rand"

// RandomOptions builds the distractor set for the phonics-builder slot: count
// distinct answer-phonetic values other than correct, drawn first from the
// current unit, widened to the whole level and then the whole table when the
// narrower pool runs short. The combined pool is shuffled, and when fewer
// than count distinct values exist anywhere, the shuffled pool is repeated
// cyclically so the result always has exactly count entries. Only a table
// with no usable value at all produces an empty result.
func RandomOptions(t Table, level, unit int, correct string, count int) []string {
	seen := map[string]bool{correct: true, "": true}
	var pool []string

	collect := func(match func(Row) bool) {
		for _, row := range t {
			if !match(row) || seen[row.AnswerPhonetic] {
				continue
			}
			seen[row.AnswerPhonetic] = true
			pool = append(pool, row.AnswerPhonetic)
		}
	}

	collect(func(r Row) bool { return r.Level == level && r.Unit == unit })
	if len(pool) < count {
		collect(func(r Row) bool { return r.Level == level })
	}
	if len(pool) < count {
		collect(func(r Row) bool { return true })
	}

	if len(pool) == 0 {
		return nil
	}

	rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	selected := make([]string, 0, count)
	for i := 0; i < count && i < len(pool); i++ {
		selected = append(selected, pool[i])
	}
	for len(selected) < count {
		selected = append(selected, pool[len(selected)%len(pool)])
	}
	return selected
}

// OptionSet returns the full presented option list for a problem: the correct
// value plus count distractors, re-shuffled after insertion so the correct
// value's slot is uniformly random.
func OptionSet(t Table, row Row, count int) []string {
	options := append([]string{row.AnswerPhonetic},
		RandomOptions(t, row.Level, row.Unit, row.AnswerPhonetic, count)...)
	rand.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options
}

// PairOptions returns the two rows shown in the shadow puzzle: the correct
// row and one distractor from the same unit with a different word, in random
// order. When the unit offers no distractor the correct row is returned
// alone.
func PairOptions(t Table, correct Row) []Row {
	var distractors []Row
	for _, row := range t {
		if row.Level == correct.Level && row.Unit == correct.Unit && row.Word != correct.Word {
			distractors = append(distractors, row)
		}
	}
	if len(distractors) == 0 {
		return []Row{correct}
	}

	pair := []Row{correct, distractors[rand.Intn(len(distractors))]}
	if rand.Intn(2) == 1 {
		pair[0], pair[1] = pair[1], pair[0]
	}
	return pair
}

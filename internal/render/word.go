// Package render transforms a quiz word plus its 1-based slot and highlight
// ranges into structured segments. It performs no markup or widget work
// itself; the handler and template layer decide how segments become the
// interactive slot widget and styled glyphs.
package render

import "strings"

// SegmentKind distinguishes static glyphs from the interactive fill-in slot.
type SegmentKind int

const (
	// Fixed characters render as static glyphs.
	Fixed SegmentKind = iota
	// Slotted characters form the answer slot, rendered as the interactive
	// fill-in target.
	Slotted
)

// Segment is a run of adjacent characters sharing a kind. Emphasized marks
// fixed runs inside the secondary highlight range.
type Segment struct {
	Text       string
	Kind       SegmentKind
	Emphasized bool
}

// IsSlot reports whether the segment is the interactive fill-in slot.
func (s Segment) IsSlot() bool {
	return s.Kind == Slotted
}

// WithSlot splits word into fixed and slotted segments. Characters at 1-based
// positions slotStart..slotEnd (inclusive) form a single slotted segment;
// everything else is fixed. When colorStart is positive, fixed characters at
// positions colorStart+1..colorStart+colorCount are emphasized. An invalid
// slot range yields the whole word as fixed segments.
func WithSlot(word string, slotStart, slotEnd, colorStart, colorCount int) []Segment {
	runes := []rune(word)
	if slotStart < 1 || slotEnd < slotStart || slotStart > len(runes) {
		slotStart, slotEnd = 0, -1
	}
	if slotEnd > len(runes) {
		slotEnd = len(runes)
	}

	emphasized := func(pos int) bool {
		return colorStart > 0 && pos > colorStart && pos <= colorStart+colorCount
	}

	var segments []Segment
	appendRun := func(text string, kind SegmentKind, em bool) {
		if text == "" {
			return
		}
		last := len(segments) - 1
		if last >= 0 && segments[last].Kind == kind && segments[last].Emphasized == em {
			segments[last].Text += text
			return
		}
		segments = append(segments, Segment{Text: text, Kind: kind, Emphasized: em})
	}

	for i, r := range runes {
		pos := i + 1 // 1-based
		if pos >= slotStart && pos <= slotEnd {
			appendRun(string(r), Slotted, false)
			continue
		}
		appendRun(string(r), Fixed, emphasized(pos))
	}
	return segments
}

// SlotOnly marks the slot range of word with a single contiguous <em> span,
// as used by the shadow-puzzle item labels: SlotOnly("tall", 1, 2) yields
// "<em>ta</em>ll". The word is returned unchanged when the range is absent or
// invalid.
func SlotOnly(word string, slotStart, slotEnd int) string {
	runes := []rune(word)
	if slotStart < 1 || slotEnd < slotStart || slotStart > len(runes) {
		return word
	}
	if slotEnd > len(runes) {
		slotEnd = len(runes)
	}

	var b strings.Builder
	for i, r := range runes {
		pos := i + 1
		if pos == slotStart {
			b.WriteString("<em>")
		}
		b.WriteRune(r)
		if pos == slotEnd {
			b.WriteString("</em>")
		}
	}
	return b.String()
}

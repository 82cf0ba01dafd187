package render

import (
	"reflect"
	"testing"
)

func TestWithSlot(t *testing.T) {
	tests := []struct {
		name       string
		word       string
		slotStart  int
		slotEnd    int
		colorStart int
		colorCount int
		want       []Segment
	}{
		{
			name: "slot in the middle", word: "ball", slotStart: 2, slotEnd: 3,
			want: []Segment{
				{Text: "b", Kind: Fixed},
				{Text: "al", Kind: Slotted},
				{Text: "l", Kind: Fixed},
			},
		},
		{
			name: "slot at the start", word: "tall", slotStart: 1, slotEnd: 2,
			want: []Segment{
				{Text: "ta", Kind: Slotted},
				{Text: "ll", Kind: Fixed},
			},
		},
		{
			name: "whole word slotted", word: "cat", slotStart: 1, slotEnd: 3,
			want: []Segment{{Text: "cat", Kind: Slotted}},
		},
		{
			name: "invalid range falls back to fixed", word: "cat", slotStart: 0, slotEnd: 2,
			want: []Segment{{Text: "cat", Kind: Fixed}},
		},
		{
			name: "end before start falls back to fixed", word: "cat", slotStart: 3, slotEnd: 1,
			want: []Segment{{Text: "cat", Kind: Fixed}},
		},
		{
			name: "end past the word is clamped", word: "dog", slotStart: 2, slotEnd: 9,
			want: []Segment{
				{Text: "d", Kind: Fixed},
				{Text: "og", Kind: Slotted},
			},
		},
		{
			name: "emphasis after the slot", word: "small", slotStart: 1, slotEnd: 2,
			colorStart: 2, colorCount: 2,
			want: []Segment{
				{Text: "sm", Kind: Slotted},
				{Text: "al", Kind: Fixed, Emphasized: true},
				{Text: "l", Kind: Fixed},
			},
		},
		{
			name: "emphasis splits fixed runs", word: "faster", slotStart: 0, slotEnd: 0,
			colorStart: 1, colorCount: 3,
			want: []Segment{
				{Text: "f", Kind: Fixed},
				{Text: "ast", Kind: Fixed, Emphasized: true},
				{Text: "er", Kind: Fixed},
			},
		},
		{
			name: "zero colorStart disables emphasis", word: "dog", slotStart: 0, slotEnd: 0,
			colorStart: 0, colorCount: 2,
			want: []Segment{{Text: "dog", Kind: Fixed}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WithSlot(tt.word, tt.slotStart, tt.slotEnd, tt.colorStart, tt.colorCount)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("WithSlot(%q, %d, %d, %d, %d) = %v, want %v",
					tt.word, tt.slotStart, tt.slotEnd, tt.colorStart, tt.colorCount, got, tt.want)
			}
		})
	}
}

func TestSlotOnly(t *testing.T) {
	tests := []struct {
		name      string
		word      string
		slotStart int
		slotEnd   int
		want      string
	}{
		{"prefix slot", "tall", 1, 2, "<em>ta</em>ll"},
		{"middle slot", "ball", 2, 3, "b<em>al</em>l"},
		{"suffix slot", "ring", 2, 4, "r<em>ing</em>"},
		{"whole word", "cat", 1, 3, "<em>cat</em>"},
		{"zero start is a no-op", "cat", 0, 2, "cat"},
		{"inverted range is a no-op", "cat", 3, 1, "cat"},
		{"end clamped to word length", "dog", 3, 8, "do<em>g</em>"},
		{"start past the word is a no-op", "dog", 5, 6, "dog"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SlotOnly(tt.word, tt.slotStart, tt.slotEnd); got != tt.want {
				t.Errorf("SlotOnly(%q, %d, %d) = %q, want %q",
					tt.word, tt.slotStart, tt.slotEnd, got, tt.want)
			}
		})
	}
}

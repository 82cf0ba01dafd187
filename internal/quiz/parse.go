package quiz

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// The content team maintains the workbooks in Korean; exported copies
// occasionally carry English headers instead. Both spellings resolve to the
// same columns.
var quizColumns = map[string][]string{
	"level":               {"레벨", "level"},
	"unit":                {"유닛", "unit"},
	"answer_phonetic":     {"정답(음가)", "answer_phonetic"},
	"problem_number":      {"문제번호", "problem_number"},
	"word":                {"단어", "word"},
	"slot_char_start":     {"슬롯 문자 시작", "slot_char_start"},
	"slot_char_end":       {"슬롯 문자 종료", "slot_char_end"},
	"color_display_start": {"색상 표시 시작", "color_display_start"},
	"color_display_count": {"색상 표시 개수", "color_display_count"},
	"correct_image_path":  {"정답 이미지 경로", "correct_image_path"},
	"shadow_image_path":   {"그림자 이미지 경로", "shadow_image_path"},
	"correct_audio_path":  {"정답 음원 경로", "correct_audio_path"},
	"target_phonetic":     {"타겟음가", "target_phonetic"},
}

var unitColumns = map[string][]string{
	"level":     {"레벨", "level", "book_seq"},
	"unit":      {"유닛", "unit"},
	"unit_name": {"유닛명", "유닛 이름", "unitName", "Unit Name", "unit_name"},
}

// The unit sheet contains instructional rows that must never reach the UI.
// Any row whose concatenated cell text contains one of these markers is
// dropped.
var sentinelMarkers = []string{
	"TESTTESTTEST",
	"해당 행은 절대 삭제",
	"대화 형식 데이터",
}

// columnIndex maps the given header row to logical column names using the
// synonym table. Unknown headers are ignored; missing columns simply have no
// entry.
func columnIndex(headers []string, synonyms map[string][]string) map[string]int {
	index := make(map[string]int, len(synonyms))
	for i, header := range headers {
		header = strings.TrimSpace(header)
		for name, names := range synonyms {
			if _, done := index[name]; done {
				continue
			}
			for _, candidate := range names {
				if header == candidate {
					index[name] = i
					break
				}
			}
		}
	}
	return index
}

func cell(row []string, index map[string]int, name string) string {
	i, ok := index[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// cellInt parses a numeric cell, falling back to def when empty or
// unparsable, matching the permissive behavior of the original sheet import.
func cellInt(row []string, index map[string]int, name string, def int) int {
	s := cell(row, index, name)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		// Sheets sometimes export integers as "3.0".
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return def
		}
		n = int(f)
	}
	return n
}

// firstSheetRows opens a workbook and returns the rows of its first sheet.
func firstSheetRows(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

// ParseQuizWorkbook reads the quiz workbook into a Table. Rows failing
// required-field validation are dropped silently; only the aggregate empty
// table is ever surfaced to the user.
func ParseQuizWorkbook(r io.Reader) (Table, error) {
	rows, err := firstSheetRows(r)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return Table{}, nil
	}

	index := columnIndex(rows[0], quizColumns)

	table := make(Table, 0, len(rows)-1)
	for _, cells := range rows[1:] {
		row := Row{
			Level:             cellInt(cells, index, "level", 1),
			Unit:              cellInt(cells, index, "unit", 1),
			ProblemNumber:     cellInt(cells, index, "problem_number", 1),
			Word:              cell(cells, index, "word"),
			AnswerPhonetic:    cell(cells, index, "answer_phonetic"),
			SlotCharStart:     cellInt(cells, index, "slot_char_start", 1),
			SlotCharEnd:       cellInt(cells, index, "slot_char_end", 1),
			ColorDisplayStart: cellInt(cells, index, "color_display_start", 0),
			ColorDisplayCount: cellInt(cells, index, "color_display_count", 0),
			CorrectImagePath:  cell(cells, index, "correct_image_path"),
			ShadowImagePath:   cell(cells, index, "shadow_image_path"),
			CorrectAudioPath:  cell(cells, index, "correct_audio_path"),
			TargetPhonetic:    cell(cells, index, "target_phonetic"),
		}
		if !row.Valid() {
			continue
		}
		table = append(table, row)
	}
	return table, nil
}

// ParseUnitWorkbook reads the unit-name workbook. Sentinel rows, rows with an
// empty name, and rows whose level or unit is non-positive or unparsable are
// excluded.
func ParseUnitWorkbook(r io.Reader) ([]UnitRow, error) {
	rows, err := firstSheetRows(r)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return []UnitRow{}, nil
	}

	index := columnIndex(rows[0], unitColumns)

	units := make([]UnitRow, 0, len(rows)-1)
	for _, cells := range rows[1:] {
		if isSentinelRow(cells) {
			continue
		}

		level := cellInt(cells, index, "level", 0)
		unit := cellInt(cells, index, "unit", 0)
		name := cell(cells, index, "unit_name")
		if level <= 0 || unit <= 0 || name == "" {
			continue
		}

		units = append(units, UnitRow{Level: level, Unit: unit, UnitName: name})
	}
	return units, nil
}

// isSentinelRow reports whether any known marker appears in the concatenated
// cell text of the row.
func isSentinelRow(cells []string) bool {
	joined := strings.ToUpper(strings.Join(cells, ""))
	for _, marker := range sentinelMarkers {
		if strings.Contains(joined, strings.ToUpper(marker)) {
			return true
		}
	}
	return false
}

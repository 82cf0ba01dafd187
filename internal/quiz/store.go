package quiz

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Store loads and caches the quiz and unit tables from their remote
// workbooks. A load failure yields an empty table rather than an error, so
// callers must treat "position not found" as the signal that data is
// unavailable.
type Store struct {
	client  *http.Client
	quizURL string
	unitURL string

	group singleflight.Group

	mu    sync.RWMutex
	table Table     // nil until a load succeeds
	units []UnitRow // nil until a load succeeds
}

// NewStore creates a store that fetches the quiz workbook from quizURL and
// the unit workbook from unitURL. A nil client uses a default with a
// conservative timeout.
func NewStore(client *http.Client, quizURL, unitURL string) *Store {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Store{client: client, quizURL: quizURL, unitURL: unitURL}
}

// NewStatic creates a store pre-populated with fixture tables and no remote
// source. Used by tests and local tooling.
func NewStatic(table Table, units []UnitRow) *Store {
	if table == nil {
		table = Table{}
	}
	if units == nil {
		units = []UnitRow{}
	}
	return &Store{table: table, units: units}
}

// QuizTable returns the cached quiz table, fetching it on first use.
// Concurrent callers share a single in-flight fetch. On failure the returned
// table is empty and the next call retries; only successful loads are cached.
func (s *Store) QuizTable(ctx context.Context) Table {
	s.mu.RLock()
	cached := s.table
	s.mu.RUnlock()
	if cached != nil {
		return cached
	}
	if s.quizURL == "" {
		return Table{}
	}

	result, err, _ := s.group.Do("quiz", func() (interface{}, error) {
		body, err := s.fetch(ctx, s.quizURL)
		if err != nil {
			return nil, err
		}
		table, err := ParseQuizWorkbook(bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.table = table
		s.mu.Unlock()
		return table, nil
	})
	if err != nil {
		log.Printf("Failed to load quiz data: %v", err)
		return Table{}
	}
	return result.(Table)
}

// Units returns the cached unit rows, fetching them on first use with the
// same caching and failure semantics as QuizTable.
func (s *Store) Units(ctx context.Context) []UnitRow {
	s.mu.RLock()
	cached := s.units
	s.mu.RUnlock()
	if cached != nil {
		return cached
	}
	if s.unitURL == "" {
		return []UnitRow{}
	}

	result, err, _ := s.group.Do("units", func() (interface{}, error) {
		body, err := s.fetch(ctx, s.unitURL)
		if err != nil {
			return nil, err
		}
		units, err := ParseUnitWorkbook(bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.units = units
		s.mu.Unlock()
		return units, nil
	})
	if err != nil {
		log.Printf("Failed to load unit data: %v", err)
		return []UnitRow{}
	}
	return result.([]UnitRow)
}

// Clear drops the cached tables so the next call re-fetches. Intended for
// tests and content-refresh tooling.
func (s *Store) Clear() {
	s.mu.Lock()
	s.table = nil
	s.units = nil
	s.mu.Unlock()
}

// FindRow locates the row for a position in the loaded table.
func (s *Store) FindRow(ctx context.Context, pos Position) (Row, error) {
	row, found := s.QuizTable(ctx).FindRow(pos)
	if !found {
		return Row{}, fmt.Errorf("level %d unit %d problem %d: %w",
			pos.Level, pos.Unit, pos.Problem, ErrRowNotFound)
	}
	return row, nil
}

// CountProblemsInUnit returns the row count for (level, unit) in the loaded
// table.
func (s *Store) CountProblemsInUnit(ctx context.Context, level, unit int) int {
	return s.QuizTable(ctx).CountProblemsInUnit(level, unit)
}

// UnitsByLevel returns the unit rows for a level, sorted by unit number.
func (s *Store) UnitsByLevel(ctx context.Context, level int) []UnitRow {
	var units []UnitRow
	for _, u := range s.Units(ctx) {
		if u.Level == level {
			units = append(units, u)
		}
	}
	sort.Slice(units, func(i, j int) bool { return units[i].Unit < units[j].Unit })
	return units
}

func (s *Store) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: unexpected status %d", url, resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

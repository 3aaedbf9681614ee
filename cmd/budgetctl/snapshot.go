package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/budget-tracker/insights/internal/domain/entity"
	"github.com/budget-tracker/insights/internal/integration/upstream"
)

// snapshot is the decoded content of a snapshot file.
type snapshot struct {
	Income   []entity.Entry
	Expenses []entity.Entry
	Savings  []entity.Entry
	Budgets  []entity.Budget
	Goals    []entity.Goal
}

// snapshotFile is embedded by every command that reads a snapshot.
type snapshotFile struct {
	path string
}

func (s *snapshotFile) setFlags(f *flag.FlagSet) {
	f.StringVar(&s.path, "f", "snapshot.json", "Path to the JSON snapshot file.")
}

func (s *snapshotFile) load() (*snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	return decodeSnapshot(data)
}

// decodeSnapshot decodes {"income":[],"expenses":[],"budgets":[],"savings":[],"goals":[]}.
// Records are coerced the same way as upstream responses; missing sections are empty.
func decodeSnapshot(data []byte) (*snapshot, error) {
	var sections map[string]json.RawMessage
	if err := json.Unmarshal(data, &sections); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}

	var snap snapshot
	var err error
	if snap.Income, err = upstream.DecodeEntries(entity.EntryKindIncome, sections["income"]); err != nil {
		return nil, fmt.Errorf("decoding income: %w", err)
	}
	if snap.Expenses, err = upstream.DecodeEntries(entity.EntryKindExpense, sections["expenses"]); err != nil {
		return nil, fmt.Errorf("decoding expenses: %w", err)
	}
	if snap.Savings, err = upstream.DecodeEntries(entity.EntryKindSavings, sections["savings"]); err != nil {
		return nil, fmt.Errorf("decoding savings: %w", err)
	}
	if snap.Budgets, err = upstream.DecodeBudgets(sections["budgets"]); err != nil {
		return nil, fmt.Errorf("decoding budgets: %w", err)
	}
	if snap.Goals, err = upstream.DecodeGoals(entity.GoalKindSavings, sections["goals"]); err != nil {
		return nil, fmt.Errorf("decoding goals: %w", err)
	}
	return &snap, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

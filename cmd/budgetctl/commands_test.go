package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/subcommands"
)

const testSnapshot = `{
  "income": [
    {"_id": "i1", "date": "2024-01-15", "amount": "$3,000.00", "category": "salary", "recurringMonthly": "yes"}
  ],
  "expenses": [
    {"_id": "e1", "date": "2024-03-01", "amount": 1200, "category": "rent", "recurringMonthly": true},
    {"_id": "e2", "date": "2024-03-10", "amount": "80", "category": "custom", "customCategory": "Gym", "recurringMonthly": "yes"},
    {"_id": "e3", "date": "2024-05-20", "amount": 250, "category": "groceries", "recurringMonthly": "no"},
    {"_id": "e4", "date": "not-a-date", "amount": 10, "category": "misc", "recurringMonthly": "no"}
  ],
  "savings": [],
  "budgets": [
    {"_id": "b1", "date": "2024-05-01", "amount": "200", "category": "groceries", "recurringMonthly": "no"}
  ],
  "goals": [
    {"_id": "g1", "goalName": "Trip", "category": "travel", "goalAmount": "1000", "currentAmount": "250", "deadline": "Dec"},
    {"_id": "g2", "kind": "repayment", "goalName": "Loan", "category": "debt", "goalAmount": "5000", "currentAmount": "0"}
  ]
}`

func writeSnapshot(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snapshot.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write snapshot: %v", err)
	}
	return path
}

func runCommand(t *testing.T, name string, args ...string) (subcommands.ExitStatus, string) {
	t.Helper()
	var out bytes.Buffer
	for _, c := range commands(&out) {
		if c.Name() != name {
			continue
		}
		fs := flag.NewFlagSet(name, flag.ContinueOnError)
		c.SetFlags(fs)
		if err := fs.Parse(args); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}
		return c.Execute(context.Background(), fs), out.String()
	}
	t.Fatalf("unknown command %q", name)
	return subcommands.ExitFailure, ""
}

func TestBreakdownCommand(t *testing.T) {
	path := writeSnapshot(t, testSnapshot)

	status, out := runCommand(t, "breakdown", "-f", path, "-month", "Mar")
	if status != subcommands.ExitSuccess {
		t.Fatalf("expected success, got %v", status)
	}

	var result struct {
		Series []struct {
			Name  string `json:"name"`
			Value string `json:"value"`
		} `json:"series"`
		Rejected []struct {
			EntryID string `json:"entry_id"`
		} `json:"rejected"`
	}
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}
	if len(result.Series) != 2 || result.Series[0].Name != "rent" || result.Series[1].Name != "gym" {
		t.Errorf("unexpected March series: %+v", result.Series)
	}
	if len(result.Rejected) != 1 || result.Rejected[0].EntryID != "e4" {
		t.Errorf("expected e4 rejected, got %+v", result.Rejected)
	}
}

func TestBudgetsCommand(t *testing.T) {
	path := writeSnapshot(t, testSnapshot)

	status, out := runCommand(t, "budgets", "-f", path, "-month", "May")
	if status != subcommands.ExitSuccess {
		t.Fatalf("expected success, got %v", status)
	}

	var result struct {
		Comparisons []struct {
			Category       string `json:"category"`
			PercentageUsed string `json:"percentage_used"`
			OverBudget     bool   `json:"over_budget"`
		} `json:"comparisons"`
	}
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if len(result.Comparisons) != 1 {
		t.Fatalf("expected one comparison, got %+v", result.Comparisons)
	}
	got := result.Comparisons[0]
	if got.Category != "groceries" || got.PercentageUsed != "125" || !got.OverBudget {
		t.Errorf("unexpected comparison: %+v", got)
	}
}

func TestTopCommand(t *testing.T) {
	path := writeSnapshot(t, testSnapshot)

	status, out := runCommand(t, "top", "-f", path, "-n", "1")
	if status != subcommands.ExitSuccess {
		t.Fatalf("expected success, got %v", status)
	}
	var result []struct {
		Category string `json:"category"`
	}
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if len(result) != 1 || result[0].Category != "rent" {
		t.Errorf("expected rent on top, got %+v", result)
	}

	if status, _ := runCommand(t, "top", "-f", path, "-n", "-1"); status != subcommands.ExitFailure {
		t.Errorf("expected failure for negative -n, got %v", status)
	}
}

func TestGoalsCommand(t *testing.T) {
	path := writeSnapshot(t, testSnapshot)

	status, out := runCommand(t, "goals", "-f", path, "-kind", "repayment")
	if status != subcommands.ExitSuccess {
		t.Fatalf("expected success, got %v", status)
	}
	var result []struct {
		GoalID string `json:"goal_id"`
		Kind   string `json:"kind"`
	}
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if len(result) != 1 || result[0].GoalID != "g2" {
		t.Errorf("expected only g2, got %+v", result)
	}

	if status, _ := runCommand(t, "goals", "-f", path, "-kind", "stocks"); status != subcommands.ExitFailure {
		t.Errorf("expected failure for unknown kind, got %v", status)
	}
}

func TestOverviewCommand(t *testing.T) {
	path := writeSnapshot(t, testSnapshot)

	status, out := runCommand(t, "overview", "-f", path, "-granularity", "yearly", "-year", "2024")
	if status != subcommands.ExitSuccess {
		t.Fatalf("expected success, got %v", status)
	}
	var result struct {
		Periods []struct {
			Label string `json:"label"`
		} `json:"periods"`
	}
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if len(result.Periods) != 1 || result.Periods[0].Label != "2024" {
		t.Errorf("expected a single 2024 period, got %+v", result.Periods)
	}

	if status, _ := runCommand(t, "overview", "-f", path, "-granularity", "weekly"); status != subcommands.ExitFailure {
		t.Errorf("expected failure for unknown granularity, got %v", status)
	}
}

func TestSeriesCommand(t *testing.T) {
	path := writeSnapshot(t, testSnapshot)

	status, out := runCommand(t, "series", "-f", path)
	if status != subcommands.ExitSuccess {
		t.Fatalf("expected success, got %v", status)
	}
	if strings.Count(out, `"month"`) != 12 {
		t.Errorf("expected twelve points, got:\n%s", out)
	}
}

func TestCommands_MissingOrInvalidSnapshot(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.json")
	if status, _ := runCommand(t, "breakdown", "-f", missing); status != subcommands.ExitFailure {
		t.Errorf("expected failure for missing file, got %v", status)
	}

	invalid := writeSnapshot(t, "[1, 2")
	if status, _ := runCommand(t, "budgets", "-f", invalid); status != subcommands.ExitFailure {
		t.Errorf("expected failure for invalid JSON, got %v", status)
	}
}

func TestDecodeSnapshot_MissingSectionsAreEmpty(t *testing.T) {
	snap, err := decodeSnapshot([]byte(`{"expenses": [{"_id": "e1", "date": "2024-01-01", "amount": 5, "category": "misc"}]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snap.Expenses) != 1 || len(snap.Income) != 0 || len(snap.Goals) != 0 {
		t.Errorf("unexpected snapshot: %+v", snap)
	}
}

// Package upstream implements the entry source backed by the budgeting REST API.
package upstream

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/budget-tracker/insights/internal/domain/entity"
	"github.com/budget-tracker/insights/internal/domain/valueobject"
)

// entryPayload is the loose wire shape shared by income, expense, savings and budget records.
type entryPayload struct {
	ID               string          `json:"id"`
	MongoID          string          `json:"_id"`
	Date             string          `json:"date"`
	Amount           json.RawMessage `json:"amount"`
	Category         string          `json:"category"`
	CustomCategory   string          `json:"customCategory"`
	RecurringMonthly json.RawMessage `json:"recurringMonthly"`
}

// goalPayload is the wire shape of savings and repayment goals.
type goalPayload struct {
	ID            string          `json:"id"`
	MongoID       string          `json:"_id"`
	Kind          string          `json:"kind"`
	GoalName      string          `json:"goalName"`
	Category      string          `json:"category"`
	GoalAmount    json.RawMessage `json:"goalAmount"`
	CurrentAmount json.RawMessage `json:"currentAmount"`
	Deadline      string          `json:"deadline"`
}

type envelope struct {
	Data json.RawMessage `json:"data"`
}

func (p entryPayload) id() string {
	if p.ID != "" {
		return p.ID
	}
	return p.MongoID
}

func (p goalPayload) id() string {
	if p.ID != "" {
		return p.ID
	}
	return p.MongoID
}

// DecodeEntries decodes a JSON array of entry records, coercing loose amount and
// recurrence values. Amounts that are not numeric decode as invalid rather than failing.
func DecodeEntries(kind entity.EntryKind, data []byte) ([]entity.Entry, error) {
	var payloads []entryPayload
	if err := decodeArray(data, &payloads); err != nil {
		return nil, err
	}

	entries := make([]entity.Entry, 0, len(payloads))
	for _, p := range payloads {
		entries = append(entries, entity.Entry{
			ID:               p.id(),
			Kind:             kind,
			Date:             p.Date,
			Amount:           coerceAmount(p.Amount),
			Category:         p.Category,
			CustomCategory:   p.CustomCategory,
			RecurringMonthly: coerceFlag(p.RecurringMonthly),
		})
	}
	return entries, nil
}

// DecodeBudgets decodes a JSON array of budget records.
func DecodeBudgets(data []byte) ([]entity.Budget, error) {
	var payloads []entryPayload
	if err := decodeArray(data, &payloads); err != nil {
		return nil, err
	}

	budgets := make([]entity.Budget, 0, len(payloads))
	for _, p := range payloads {
		budgets = append(budgets, entity.Budget{
			ID:               p.id(),
			Date:             p.Date,
			Amount:           coerceAmount(p.Amount),
			Category:         p.Category,
			CustomCategory:   p.CustomCategory,
			RecurringMonthly: coerceFlag(p.RecurringMonthly),
		})
	}
	return budgets, nil
}

// DecodeGoals decodes a JSON array of goals. Records without a kind get defaultKind.
func DecodeGoals(defaultKind entity.GoalKind, data []byte) ([]entity.Goal, error) {
	var payloads []goalPayload
	if err := decodeArray(data, &payloads); err != nil {
		return nil, err
	}

	goals := make([]entity.Goal, 0, len(payloads))
	for _, p := range payloads {
		kind := defaultKind
		if p.Kind != "" {
			kind = entity.GoalKind(strings.ToLower(p.Kind))
		}
		goals = append(goals, entity.Goal{
			ID:            p.id(),
			Kind:          kind,
			GoalName:      p.GoalName,
			Category:      p.Category,
			GoalAmount:    rawString(p.GoalAmount),
			CurrentAmount: rawString(p.CurrentAmount),
			Deadline:      p.Deadline,
		})
	}
	return goals, nil
}

// decodeArray accepts a bare JSON array or an object wrapping it under "data".
func decodeArray(data []byte, v any) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		trimmed = []byte("[]")
	}
	if trimmed[0] == '{' {
		var env envelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return fmt.Errorf("failed to decode envelope: %w", err)
		}
		trimmed = env.Data
		if len(trimmed) == 0 {
			trimmed = []byte("[]")
		}
	}
	if err := json.Unmarshal(trimmed, v); err != nil {
		return fmt.Errorf("failed to decode records: %w", err)
	}
	return nil
}

// coerceAmount reads a JSON number or currency-like string.
func coerceAmount(raw json.RawMessage) decimal.NullDecimal {
	s := rawString(raw)
	if s == "" {
		return decimal.NullDecimal{}
	}
	if raw := bytes.TrimSpace(raw); raw[0] != '"' {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.NullDecimal{}
		}
		return decimal.NewNullDecimal(d)
	}
	d, err := valueobject.ParseCurrencyLike(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

// coerceFlag reads "yes"/"no", "true"/"false" or a JSON boolean.
func coerceFlag(raw json.RawMessage) bool {
	switch strings.ToLower(rawString(raw)) {
	case "yes", "true", "y", "1":
		return true
	default:
		return false
	}
}

// rawString returns a JSON string's content, or the literal text of any other scalar.
func rawString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return strings.TrimSpace(s)
	}
	return string(raw)
}

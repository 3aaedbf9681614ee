package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/budget-tracker/insights/internal/application/usecase/aggregation"
	"github.com/budget-tracker/insights/internal/application/usecase/dashboard"
	"github.com/budget-tracker/insights/internal/domain/entity"
	"github.com/budget-tracker/insights/internal/domain/valueobject"
)

// MetaResponse reports whether any upstream collection failed to load.
type MetaResponse struct {
	Currency      string   `json:"currency"`
	Partial       bool     `json:"partial"`
	FailedSources []string `json:"failed_sources"`
}

// RejectedEntryResponse represents an entry left out because its date was unusable.
type RejectedEntryResponse struct {
	EntryID string `json:"entry_id"`
	Reason  string `json:"reason"`
}

// SeriesPointResponse is one {name, value} chart point.
type SeriesPointResponse struct {
	Name      string  `json:"name"`
	Value     float64 `json:"value"`
	Formatted string  `json:"formatted"`
}

// MonthTotalsResponse represents one month of a breakdown.
type MonthTotalsResponse struct {
	Month      string                `json:"month"`
	MonthIndex int                   `json:"month_index"`
	Total      Amount                `json:"total"`
	Categories []SeriesPointResponse `json:"categories"`
}

// MonthlyBreakdownResponse represents the response for the monthly breakdown API.
type MonthlyBreakdownResponse struct {
	Data MonthlyBreakdownData `json:"data"`
	Meta MetaResponse         `json:"meta"`
}

// MonthlyBreakdownData represents the data section of the monthly breakdown.
type MonthlyBreakdownData struct {
	Kind          string                  `json:"kind"`
	Year          int                     `json:"year"`
	SelectedMonth string                  `json:"selected_month,omitempty"`
	Months        []MonthTotalsResponse   `json:"months"`
	Series        []SeriesPointResponse   `json:"series"`
	Rejected      []RejectedEntryResponse `json:"rejected"`
}

// BudgetComparisonItemResponse represents one budget and month.
type BudgetComparisonItemResponse struct {
	BudgetID       string  `json:"budget_id"`
	Category       string  `json:"category"`
	Month          string  `json:"month"`
	BudgetAmount   Amount  `json:"budget_amount"`
	ActualAmount   Amount  `json:"actual_amount"`
	PercentageUsed float64 `json:"percentage_used"`
	OverBudget     bool    `json:"over_budget"`
}

// BudgetComparisonResponse represents the response for the budget comparison API.
type BudgetComparisonResponse struct {
	Data BudgetComparisonData `json:"data"`
	Meta MetaResponse         `json:"meta"`
}

// BudgetComparisonData represents the data section of the budget comparison.
type BudgetComparisonData struct {
	Year            int                            `json:"year"`
	Comparisons     []BudgetComparisonItemResponse `json:"comparisons"`
	OverBudgetCount int                            `json:"over_budget_count"`
	Rejected        []RejectedEntryResponse        `json:"rejected"`
}

// RankedCategoryResponse represents a ranked recurring category.
type RankedCategoryResponse struct {
	Rank     int    `json:"rank"`
	Category string `json:"category"`
	Amount   Amount `json:"amount"`
}

// TopRecurringResponse represents the response for the top recurring API.
type TopRecurringResponse struct {
	Data TopRecurringData `json:"data"`
	Meta MetaResponse     `json:"meta"`
}

// TopRecurringData represents the data section of the ranking.
type TopRecurringData struct {
	Limit      int                      `json:"limit"`
	Categories []RankedCategoryResponse `json:"categories"`
}

// GoalProgressItemResponse represents one goal's progress.
type GoalProgressItemResponse struct {
	GoalID            string  `json:"goal_id"`
	GoalName          string  `json:"goal_name"`
	Kind              string  `json:"kind"`
	Category          string  `json:"category"`
	GoalAmount        Amount  `json:"goal_amount"`
	CurrentAmount     Amount  `json:"current_amount"`
	Outstanding       Amount  `json:"outstanding"`
	Percentage        float64 `json:"percentage"`
	DisplayPercentage float64 `json:"display_percentage"`
	Deadline          string  `json:"deadline,omitempty"`
}

// GoalProgressResponse represents the response for the goals API.
type GoalProgressResponse struct {
	Data []GoalProgressItemResponse `json:"data"`
	Meta MetaResponse               `json:"meta"`
}

// PeriodTotalsResponse represents one overview period.
type PeriodTotalsResponse struct {
	Label    string `json:"label"`
	Income   Amount `json:"income"`
	Expenses Amount `json:"expenses"`
	Savings  Amount `json:"savings"`
	Net      Amount `json:"net"`
}

// OverviewResponse represents the response for the overview API.
type OverviewResponse struct {
	Data OverviewData `json:"data"`
	Meta MetaResponse `json:"meta"`
}

// OverviewData represents the data section of the overview.
type OverviewData struct {
	Granularity string                  `json:"granularity"`
	Year        int                     `json:"year"`
	Periods     []PeriodTotalsResponse  `json:"periods"`
	Rejected    []RejectedEntryResponse `json:"rejected"`
}

// MonthPointResponse represents one time-series point.
type MonthPointResponse struct {
	Month    string `json:"month"`
	Income   Amount `json:"income"`
	Expenses Amount `json:"expenses"`
	Net      Amount `json:"net"`
}

// TimeSeriesResponse represents the response for the time-series API.
type TimeSeriesResponse struct {
	Data TimeSeriesData `json:"data"`
	Meta MetaResponse   `json:"meta"`
}

// TimeSeriesData represents the data section of the time series.
type TimeSeriesData struct {
	Year     int                     `json:"year"`
	Points   []MonthPointResponse    `json:"points"`
	Rejected []RejectedEntryResponse `json:"rejected"`
}

// ToMonthlyBreakdownResponse converts a GetMonthlyBreakdownOutput to its DTO.
func ToMonthlyBreakdownResponse(output *dashboard.GetMonthlyBreakdownOutput, f *MoneyFormatter) MonthlyBreakdownResponse {
	months := make([]MonthTotalsResponse, 0, len(output.Breakdown.Months))
	for _, m := range output.Breakdown.Months {
		month := m.Month
		months = append(months, MonthTotalsResponse{
			Month:      m.Label,
			MonthIndex: int(m.Month),
			Total:      f.Amount(m.Total),
			Categories: toSeries(aggregation.CategorySeries(output.Breakdown, &month), f),
		})
	}

	data := MonthlyBreakdownData{
		Kind:     string(output.Kind),
		Year:     output.Year,
		Months:   months,
		Series:   toSeries(output.Series, f),
		Rejected: toRejected(output.Rejected),
	}
	if output.SelectedMonth != nil {
		data.SelectedMonth = valueobject.MonthLabel(*output.SelectedMonth)
	}

	return MonthlyBreakdownResponse{
		Data: data,
		Meta: toMeta(output.FailedSources, f),
	}
}

// ToBudgetComparisonResponse converts a GetBudgetComparisonOutput to its DTO.
func ToBudgetComparisonResponse(output *dashboard.GetBudgetComparisonOutput, f *MoneyFormatter) BudgetComparisonResponse {
	items := make([]BudgetComparisonItemResponse, len(output.Comparisons))
	for i, c := range output.Comparisons {
		items[i] = BudgetComparisonItemResponse{
			BudgetID:       c.BudgetID,
			Category:       c.Category,
			Month:          c.Month,
			BudgetAmount:   f.Amount(c.BudgetAmount),
			ActualAmount:   f.Amount(c.ActualAmount),
			PercentageUsed: percent(c.PercentageUsed),
			OverBudget:     c.OverBudget,
		}
	}

	return BudgetComparisonResponse{
		Data: BudgetComparisonData{
			Year:            output.Year,
			Comparisons:     items,
			OverBudgetCount: output.OverBudget,
			Rejected:        toRejected(output.Rejected),
		},
		Meta: toMeta(output.FailedSources, f),
	}
}

// ToTopRecurringResponse converts a GetTopRecurringOutput to its DTO.
func ToTopRecurringResponse(output *dashboard.GetTopRecurringOutput, f *MoneyFormatter) TopRecurringResponse {
	categories := make([]RankedCategoryResponse, len(output.Categories))
	for i, c := range output.Categories {
		categories[i] = RankedCategoryResponse{
			Rank:     i + 1,
			Category: c.Category,
			Amount:   f.Amount(c.Amount),
		}
	}

	return TopRecurringResponse{
		Data: TopRecurringData{
			Limit:      output.Limit,
			Categories: categories,
		},
		Meta: toMeta(output.FailedSources, f),
	}
}

// ToGoalProgressResponse converts a GetGoalProgressOutput to its DTO.
func ToGoalProgressResponse(output *dashboard.GetGoalProgressOutput, f *MoneyFormatter) GoalProgressResponse {
	goals := make([]GoalProgressItemResponse, len(output.Goals))
	for i, g := range output.Goals {
		goals[i] = GoalProgressItemResponse{
			GoalID:            g.GoalID,
			GoalName:          g.GoalName,
			Kind:              string(g.Kind),
			Category:          g.Category,
			GoalAmount:        f.Amount(g.GoalAmount),
			CurrentAmount:     f.Amount(g.CurrentAmount),
			Outstanding:       f.Amount(g.Outstanding),
			Percentage:        percent(g.Percentage),
			DisplayPercentage: percent(g.DisplayPercentage),
			Deadline:          g.Deadline,
		}
	}

	return GoalProgressResponse{
		Data: goals,
		Meta: toMeta(output.FailedSources, f),
	}
}

// ToOverviewResponse converts a GetOverviewOutput to its DTO.
func ToOverviewResponse(output *dashboard.GetOverviewOutput, f *MoneyFormatter) OverviewResponse {
	periods := make([]PeriodTotalsResponse, len(output.Periods))
	for i, p := range output.Periods {
		periods[i] = PeriodTotalsResponse{
			Label:    p.Label,
			Income:   f.Amount(p.Income),
			Expenses: f.Amount(p.Expenses),
			Savings:  f.Amount(p.Savings),
			Net:      f.Amount(p.Net),
		}
	}

	return OverviewResponse{
		Data: OverviewData{
			Granularity: string(output.Granularity),
			Year:        output.Year,
			Periods:     periods,
			Rejected:    toRejected(output.Rejected),
		},
		Meta: toMeta(output.FailedSources, f),
	}
}

// ToTimeSeriesResponse converts a GetTimeSeriesOutput to its DTO.
func ToTimeSeriesResponse(output *dashboard.GetTimeSeriesOutput, f *MoneyFormatter) TimeSeriesResponse {
	points := make([]MonthPointResponse, len(output.Points))
	for i, p := range output.Points {
		points[i] = MonthPointResponse{
			Month:    p.Month,
			Income:   f.Amount(p.Income),
			Expenses: f.Amount(p.Expenses),
			Net:      f.Amount(p.Net),
		}
	}

	return TimeSeriesResponse{
		Data: TimeSeriesData{
			Year:     output.Year,
			Points:   points,
			Rejected: toRejected(output.Rejected),
		},
		Meta: toMeta(output.FailedSources, f),
	}
}

func toSeries(series []entity.NameValue, f *MoneyFormatter) []SeriesPointResponse {
	points := make([]SeriesPointResponse, len(series))
	for i, p := range series {
		amount := f.Amount(p.Value)
		points[i] = SeriesPointResponse{
			Name:      p.Name,
			Value:     amount.Value,
			Formatted: amount.Formatted,
		}
	}
	return points
}

func toRejected(rejected []entity.RejectedEntry) []RejectedEntryResponse {
	items := make([]RejectedEntryResponse, len(rejected))
	for i, r := range rejected {
		items[i] = RejectedEntryResponse{EntryID: r.EntryID, Reason: r.Reason}
	}
	return items
}

func toMeta(failed []string, f *MoneyFormatter) MetaResponse {
	if failed == nil {
		failed = []string{}
	}
	return MetaResponse{
		Currency:      f.Code(),
		Partial:       len(failed) > 0,
		FailedSources: failed,
	}
}

// percent rounds a percentage to two decimals for display.
func percent(d decimal.Decimal) float64 {
	v, _ := d.Round(2).Float64()
	return v
}

// FormatTimestamp renders a time in RFC 3339 UTC.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

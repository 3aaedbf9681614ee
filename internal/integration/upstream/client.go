package upstream

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/budget-tracker/insights/internal/application/adapter"
	"github.com/budget-tracker/insights/internal/domain/entity"
	domainerror "github.com/budget-tracker/insights/internal/domain/error"
)

// maxResponseBytes bounds a single collection response.
const maxResponseBytes = 10 << 20

// Collection paths relative to the base URL.
const (
	pathIncome         = "income"
	pathExpenses       = "expenses"
	pathSavings        = "savings"
	pathBudgets        = "budgets"
	pathSavingsGoals   = "savings-goals"
	pathRepaymentGoals = "repayment-goals"
)

// Client fetches a session's records from the budgeting API, forwarding the caller's
// bearer token unchanged.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new upstream Client.
func NewClient(baseURL string, httpClient *http.Client) adapter.EntrySource {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// NewHTTPClient creates an HTTP client with connection pooling and the given overall timeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	dialer := &net.Dialer{
		Timeout:   5 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	transport := &http.Transport{
		DialContext:           dialer.DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   20,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: timeout,
		ExpectContinueTimeout: 1 * time.Second,
		ForceAttemptHTTP2:     true,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}

// ListIncome retrieves all income entries.
func (c *Client) ListIncome(ctx context.Context, session *entity.Session) ([]entity.Entry, error) {
	return c.listEntries(ctx, session, pathIncome, entity.EntryKindIncome)
}

// ListExpenses retrieves all expense entries.
func (c *Client) ListExpenses(ctx context.Context, session *entity.Session) ([]entity.Entry, error) {
	return c.listEntries(ctx, session, pathExpenses, entity.EntryKindExpense)
}

// ListSavings retrieves all savings contributions.
func (c *Client) ListSavings(ctx context.Context, session *entity.Session) ([]entity.Entry, error) {
	return c.listEntries(ctx, session, pathSavings, entity.EntryKindSavings)
}

// ListBudgets retrieves all budgets.
func (c *Client) ListBudgets(ctx context.Context, session *entity.Session) ([]entity.Budget, error) {
	body, err := c.fetch(ctx, session, pathBudgets)
	if err != nil {
		return nil, err
	}
	budgets, err := DecodeBudgets(body)
	if err != nil {
		return nil, badPayload(pathBudgets, err)
	}
	return budgets, nil
}

// ListGoals retrieves savings and repayment goals. Both collections must load.
func (c *Client) ListGoals(ctx context.Context, session *entity.Session) ([]entity.Goal, error) {
	var savings, repayment []entity.Goal

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		savings, err = c.listGoals(gctx, session, pathSavingsGoals, entity.GoalKindSavings)
		return err
	})
	g.Go(func() error {
		var err error
		repayment, err = c.listGoals(gctx, session, pathRepaymentGoals, entity.GoalKindRepayment)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return append(savings, repayment...), nil
}

func (c *Client) listEntries(ctx context.Context, session *entity.Session, path string, kind entity.EntryKind) ([]entity.Entry, error) {
	body, err := c.fetch(ctx, session, path)
	if err != nil {
		return nil, err
	}
	entries, err := DecodeEntries(kind, body)
	if err != nil {
		return nil, badPayload(path, err)
	}
	return entries, nil
}

func (c *Client) listGoals(ctx context.Context, session *entity.Session, path string, kind entity.GoalKind) ([]entity.Goal, error) {
	body, err := c.fetch(ctx, session, path)
	if err != nil {
		return nil, err
	}
	goals, err := DecodeGoals(kind, body)
	if err != nil {
		return nil, badPayload(path, err)
	}
	return goals, nil
}

// fetch performs a GET for one collection and returns the raw body.
func (c *Client) fetch(ctx context.Context, session *entity.Session, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+path, nil)
	if err != nil {
		return nil, domainerror.NewSourceError(domainerror.ErrCodeSourceUnavailable, path, 0,
			fmt.Errorf("%w: %v", domainerror.ErrSourceUnavailable, err))
	}
	req.Header.Set("Accept", "application/json")
	if session != nil && session.Token != "" {
		req.Header.Set("Authorization", "Bearer "+session.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domainerror.NewSourceError(domainerror.ErrCodeSourceUnavailable, path, 0,
			fmt.Errorf("%w: %v", domainerror.ErrSourceUnavailable, err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, domainerror.NewSourceError(domainerror.ErrCodeSourceUnauthorized, path, resp.StatusCode,
			domainerror.ErrSourceUnauthorized)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, domainerror.NewSourceError(domainerror.ErrCodeSourceUnavailable, path, resp.StatusCode,
			domainerror.ErrSourceUnavailable)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, domainerror.NewSourceError(domainerror.ErrCodeSourceUnavailable, path, resp.StatusCode,
			fmt.Errorf("%w: %v", domainerror.ErrSourceUnavailable, err))
	}
	return body, nil
}

func badPayload(path string, err error) error {
	return domainerror.NewSourceError(domainerror.ErrCodeSourceBadPayload, path, 0,
		fmt.Errorf("%w: %v", domainerror.ErrSourceBadPayload, err))
}

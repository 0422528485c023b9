// Package budgetwise implements the record sources on top of the BudgetWise backend REST API.
package budgetwise

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/budgetwise/statistics/internal/application/adapter"
	"github.com/budgetwise/statistics/internal/domain/entity"
	domainerror "github.com/budgetwise/statistics/internal/domain/error"
)

const (
	defaultTimeout  = 10 * time.Second
	defaultPageSize = 100
	maxErrorBody    = 4 << 10
	dateLayout      = "2006-01-02"
)

// Config holds the backend client settings.
type Config struct {
	BaseURL  string
	Timeout  time.Duration
	PageSize int // Page size used when listing without a date range
}

// Client reads expenses, revenues and budgets from the backend.
// It implements adapter.TransactionSource, adapter.BudgetSource and adapter.HealthChecker.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	pageSize   int
}

// NewClient creates a new backend client.
func NewClient(cfg Config) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid backend base URL %q", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	return &Client{
		baseURL:    base,
		httpClient: &http.Client{Timeout: timeout},
		pageSize:   pageSize,
	}, nil
}

// ListExpenses returns the expenses matching the query, ordered by date.
func (c *Client) ListExpenses(ctx context.Context, query adapter.TransactionQuery) ([]*entity.Expense, error) {
	payloads, err := list[ExpensePayload](ctx, c, "/expenses/", query)
	if err != nil {
		return nil, err
	}

	expenses := make([]*entity.Expense, 0, len(payloads))
	for i := range payloads {
		expenses = append(expenses, payloads[i].ToEntity())
	}
	sort.SliceStable(expenses, func(i, j int) bool {
		return expenses[i].Date.Before(expenses[j].Date)
	})
	return expenses, nil
}

// ListRevenues returns the revenues matching the query, ordered by date.
func (c *Client) ListRevenues(ctx context.Context, query adapter.TransactionQuery) ([]*entity.Revenue, error) {
	payloads, err := list[RevenuePayload](ctx, c, "/revenues/", query)
	if err != nil {
		return nil, err
	}

	revenues := make([]*entity.Revenue, 0, len(payloads))
	for i := range payloads {
		revenues = append(revenues, payloads[i].ToEntity())
	}
	sort.SliceStable(revenues, func(i, j int) bool {
		return revenues[i].Date.Before(revenues[j].Date)
	})
	return revenues, nil
}

// GetBudgetByMonth returns the budget of a month or domainerror.ErrBudgetNotFound.
func (c *Client) GetBudgetByMonth(ctx context.Context, query adapter.BudgetQuery) (*entity.Budget, error) {
	var payload BudgetPayload
	path := "/budgets/month/" + url.PathEscape(query.Month)

	err := c.get(ctx, path, nil, query.AccessToken, &payload)
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return nil, domainerror.ErrBudgetNotFound
		}
		return nil, err
	}

	return payload.ToEntity(), nil
}

// Name identifies the backend in health responses.
func (c *Client) Name() string {
	return "backend"
}

// Ping checks that the backend answers HTTP requests.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL.String()+"/", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domainerror.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%w: backend answered %d", domainerror.ErrSourceUnavailable, resp.StatusCode)
	}
	return nil
}

// StatusError is returned for unexpected backend status codes.
type StatusError struct {
	StatusCode int
	Detail     string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("backend answered %d", e.StatusCode)
	}
	return fmt.Sprintf("backend answered %d: %s", e.StatusCode, e.Detail)
}

// Unwrap maps the status to the matching source sentinel.
func (e *StatusError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusUnauthorized, e.StatusCode == http.StatusForbidden:
		return domainerror.ErrSourceUnauthorized
	case e.StatusCode >= http.StatusInternalServerError:
		return domainerror.ErrSourceUnavailable
	default:
		return nil
	}
}

// list fetches every record of a collection. A query with a date range is
// answered in one response; without one the backend pages with skip and limit.
func list[T any](ctx context.Context, c *Client, path string, query adapter.TransactionQuery) ([]T, error) {
	params := url.Values{}
	params.Set("user_id", strconv.FormatInt(query.UserID, 10))

	if query.StartDate != nil && query.EndDate != nil {
		params.Set("start_date", query.StartDate.Format(dateLayout))
		params.Set("end_date", query.EndDate.Format(dateLayout))
		if query.Limit > 0 {
			params.Set("limit", strconv.Itoa(query.Limit))
		}

		var items []T
		if err := c.get(ctx, path, params, query.AccessToken, &items); err != nil {
			return nil, err
		}
		return items, nil
	}

	pageSize := c.pageSize
	if query.Limit > 0 && query.Limit < pageSize {
		pageSize = query.Limit
	}

	var all []T
	for skip := 0; ; skip += pageSize {
		params.Set("skip", strconv.Itoa(skip))
		params.Set("limit", strconv.Itoa(pageSize))

		var page []T
		if err := c.get(ctx, path, params, query.AccessToken, &page); err != nil {
			return nil, err
		}
		all = append(all, page...)

		if len(page) < pageSize || (query.Limit > 0 && len(all) >= query.Limit) {
			break
		}
	}

	if query.Limit > 0 && len(all) > query.Limit {
		all = all[:query.Limit]
	}
	return all, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, accessToken string, out any) error {
	target := c.baseURL.String() + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", domainerror.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		statusErr := &StatusError{StatusCode: resp.StatusCode, Detail: errorDetail(body)}
		slog.WarnContext(ctx, "Backend request failed",
			"path", path,
			"status", resp.StatusCode,
			"detail", statusErr.Detail,
		)
		return statusErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

func errorDetail(body []byte) string {
	var payload errorPayload
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != nil {
		if s, ok := payload.Detail.(string); ok {
			return s
		}
		encoded, _ := json.Marshal(payload.Detail)
		return string(encoded)
	}
	return strings.TrimSpace(string(body))
}

package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/cucumber/godog/colors"
	"github.com/gin-gonic/gin"

	"github.com/budgetwise/statistics/config"
	"github.com/budgetwise/statistics/internal/infra/dependency"
	"github.com/budgetwise/statistics/internal/integration/adapters"
)

const testJWTSecret = "feature-test-secret"

// TestFeatures runs all BDD feature tests.
func TestFeatures(t *testing.T) {
	opts := godog.Options{
		Format:      "pretty",
		Paths:       []string{"features"},
		Output:      colors.Colored(os.Stdout),
		Concurrency: 1,
		Randomize:   0,
		Strict:      true,
		TestingT:    t,
	}

	if tags := os.Getenv("GODOG_TAGS"); tags != "" {
		opts.Tags = tags
	}

	suite := godog.TestSuite{
		Name:                 "statistics-api",
		ScenarioInitializer:  initializeScenario,
		TestSuiteInitializer: initializeTestSuite,
		Options:              &opts,
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

// testContext holds the state of one scenario.
type testContext struct {
	backend      *fakeBackend
	server       *httptest.Server
	accessToken  string
	response     *http.Response
	responseBody []byte
}

type contextKey struct{}

func getTestContext(ctx context.Context) *testContext {
	if tc, ok := ctx.Value(contextKey{}).(*testContext); ok {
		return tc
	}
	return nil
}

func initializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})
}

func initializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		backend := newFakeBackend()

		cfg := config.Load()
		cfg.Server.Environment = "test"
		cfg.DataSource = config.DataSourceAPI
		cfg.Backend.BaseURL = backend.URL()
		cfg.Backend.PageSize = 2
		cfg.JWT.Secret = testJWTSecret
		cfg.RateLimit.Enabled = false
		cfg.Email.ResendAPIKey = ""

		injector, err := dependency.NewInjector(cfg, nil, nil)
		if err != nil {
			backend.Close()
			return ctx, err
		}

		tc := &testContext{
			backend: backend,
			server:  httptest.NewServer(injector.Router.Setup(cfg.Server.Environment)),
		}
		return context.WithValue(ctx, contextKey{}, tc), nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if tc := getTestContext(ctx); tc != nil {
			tc.server.Close()
			tc.backend.Close()
		}
		return ctx, nil
	})

	ctx.Step(`^the backend has the following expenses:$`, theBackendHasExpenses)
	ctx.Step(`^the backend has the following revenues:$`, theBackendHasRevenues)
	ctx.Step(`^the backend has a budget of "([^"]*)" for "([^"]*)"$`, theBackendHasABudget)
	ctx.Step(`^the backend answers with status (\d+)$`, theBackendAnswersWithStatus)
	ctx.Step(`^I am authenticated as user (\d+)$`, iAmAuthenticatedAsUser)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, iSendARequestToWithBody)
	ctx.Step(`^the response status should be (\d+)$`, theResponseStatusShouldBe)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, theResponseFieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should have (\d+) items$`, theResponseFieldShouldHaveItems)
	ctx.Step(`^the response header "([^"]*)" should contain "([^"]*)"$`, theResponseHeaderShouldContain)
	ctx.Step(`^the response should contain "([^"]*)"$`, theResponseShouldContain)
	ctx.Step(`^the backend should have received my token$`, theBackendShouldHaveReceivedMyToken)
}

// tableRows turns a table with a header row into one map per data row.
func tableRows(table *godog.Table) []map[string]string {
	if len(table.Rows) == 0 {
		return nil
	}
	header := table.Rows[0].Cells
	rows := make([]map[string]string, 0, len(table.Rows)-1)
	for _, row := range table.Rows[1:] {
		values := make(map[string]string, len(header))
		for i, cell := range row.Cells {
			values[header[i].Value] = cell.Value
		}
		rows = append(rows, values)
	}
	return rows
}

func theBackendHasExpenses(ctx context.Context, table *godog.Table) error {
	tc := getTestContext(ctx)
	for _, row := range tableRows(table) {
		id, err := strconv.ParseInt(row["id"], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid expense id %q", row["id"])
		}
		expense := map[string]any{
			"id":          id,
			"amount":      json.Number(row["amount"]),
			"description": row["description"],
			"type":        row["type"],
			"date":        row["date"],
		}
		if row["category_id"] != "" {
			categoryID, err := strconv.ParseInt(row["category_id"], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid category id %q", row["category_id"])
			}
			expense["category_id"] = categoryID
			expense["category"] = map[string]any{"id": categoryID, "name": row["category"]}
		}
		tc.backend.expenses = append(tc.backend.expenses, expense)
	}
	return nil
}

func theBackendHasRevenues(ctx context.Context, table *godog.Table) error {
	tc := getTestContext(ctx)
	for _, row := range tableRows(table) {
		id, err := strconv.ParseInt(row["id"], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid revenue id %q", row["id"])
		}
		tc.backend.revenues = append(tc.backend.revenues, map[string]any{
			"id":     id,
			"amount": json.Number(row["amount"]),
			"source": row["source"],
			"date":   row["date"],
		})
	}
	return nil
}

func theBackendHasABudget(ctx context.Context, amount, month string) error {
	getTestContext(ctx).backend.budgets[month] = amount
	return nil
}

func theBackendAnswersWithStatus(ctx context.Context, status int) error {
	getTestContext(ctx).backend.status = status
	return nil
}

func iAmAuthenticatedAsUser(ctx context.Context, userID int64) error {
	token, err := adapters.NewTokenService(testJWTSecret).GenerateAccessToken(userID, time.Hour)
	if err != nil {
		return err
	}
	getTestContext(ctx).accessToken = token
	return nil
}

func iSendARequestTo(ctx context.Context, method, endpoint string) error {
	return sendRequest(ctx, method, endpoint, nil)
}

func iSendARequestToWithBody(ctx context.Context, method, endpoint string, body *godog.DocString) error {
	return sendRequest(ctx, method, endpoint, bytes.NewBufferString(body.Content))
}

func sendRequest(ctx context.Context, method, endpoint string, body io.Reader) error {
	tc := getTestContext(ctx)

	req, err := http.NewRequest(method, tc.server.URL+endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tc.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+tc.accessToken)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	tc.response = resp
	tc.responseBody, err = io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	return nil
}

func theResponseStatusShouldBe(ctx context.Context, expectedStatus int) error {
	tc := getTestContext(ctx)
	if tc.response == nil {
		return fmt.Errorf("no response received")
	}
	if tc.response.StatusCode != expectedStatus {
		return fmt.Errorf("expected status %d, got %d. Body: %s", expectedStatus, tc.response.StatusCode, string(tc.responseBody))
	}
	return nil
}

// lookupField resolves a dotted path such as "data.categories.0.name" in the JSON response.
func lookupField(body []byte, path string) (any, error) {
	var current any
	if err := json.Unmarshal(body, &current); err != nil {
		return nil, fmt.Errorf("failed to parse response JSON: %w", err)
	}

	for _, part := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			value, ok := node[part]
			if !ok {
				return nil, fmt.Errorf("field '%s' not found in response: %s", path, string(body))
			}
			current = value
		case []any:
			index, err := strconv.Atoi(part)
			if err != nil || index < 0 || index >= len(node) {
				return nil, fmt.Errorf("index '%s' out of range in '%s'", part, path)
			}
			current = node[index]
		default:
			return nil, fmt.Errorf("field '%s' not found in response: %s", path, string(body))
		}
	}
	return current, nil
}

func theResponseFieldShouldBe(ctx context.Context, field, expected string) error {
	value, err := lookupField(getTestContext(ctx).responseBody, field)
	if err != nil {
		return err
	}
	if actual := fmt.Sprintf("%v", value); actual != expected {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expected, actual)
	}
	return nil
}

func theResponseFieldShouldHaveItems(ctx context.Context, field string, count int) error {
	value, err := lookupField(getTestContext(ctx).responseBody, field)
	if err != nil {
		return err
	}
	items, ok := value.([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not a list", field)
	}
	if len(items) != count {
		return fmt.Errorf("field '%s' expected %d items, got %d", field, count, len(items))
	}
	return nil
}

func theResponseHeaderShouldContain(ctx context.Context, header, expected string) error {
	actual := getTestContext(ctx).response.Header.Get(header)
	if !strings.Contains(actual, expected) {
		return fmt.Errorf("header '%s' expected to contain '%s', got '%s'", header, expected, actual)
	}
	return nil
}

func theResponseShouldContain(ctx context.Context, expected string) error {
	tc := getTestContext(ctx)
	if !strings.Contains(string(tc.responseBody), expected) {
		return fmt.Errorf("response does not contain '%s'. Body: %s", expected, string(tc.responseBody))
	}
	return nil
}

func theBackendShouldHaveReceivedMyToken(ctx context.Context) error {
	tc := getTestContext(ctx)
	tc.backend.mu.Lock()
	defer tc.backend.mu.Unlock()

	if len(tc.backend.tokens) == 0 {
		return fmt.Errorf("the backend received no request")
	}
	for _, token := range tc.backend.tokens {
		if token != tc.accessToken {
			return fmt.Errorf("the backend received token %q", token)
		}
	}
	return nil
}

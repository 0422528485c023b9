package router_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// fakeBackend serves the subset of the BudgetWise backend API read by the service.
type fakeBackend struct {
	mu       sync.Mutex
	server   *httptest.Server
	expenses []map[string]any
	revenues []map[string]any
	budgets  map[string]string
	status   int
	tokens   []string
}

func newFakeBackend() *fakeBackend {
	b := &fakeBackend{budgets: map[string]string{}}
	b.server = httptest.NewServer(http.HandlerFunc(b.serve))
	return b
}

func (b *fakeBackend) URL() string {
	return b.server.URL
}

func (b *fakeBackend) Close() {
	b.server.Close()
}

func (b *fakeBackend) serve(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.tokens = append(b.tokens, strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "))
	w.Header().Set("Content-Type", "application/json")

	if b.status != 0 {
		w.WriteHeader(b.status)
		_ = json.NewEncoder(w).Encode(map[string]any{"detail": "backend failure"})
		return
	}

	switch {
	case r.URL.Path == "/":
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	case r.URL.Path == "/expenses/":
		_ = json.NewEncoder(w).Encode(filterRecords(b.expenses, r))
	case r.URL.Path == "/revenues/":
		_ = json.NewEncoder(w).Encode(filterRecords(b.revenues, r))
	case strings.HasPrefix(r.URL.Path, "/budgets/month/"):
		month := strings.TrimPrefix(r.URL.Path, "/budgets/month/")
		amount, ok := b.budgets[month]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Budget not found"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"id": 1, "month": month, "amount": json.Number(amount)})
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// filterRecords applies the date range, then skip and limit, the way the backend does.
func filterRecords(records []map[string]any, r *http.Request) []map[string]any {
	query := r.URL.Query()
	start, end := query.Get("start_date"), query.Get("end_date")

	result := []map[string]any{}
	for _, record := range records {
		date, _ := record["date"].(string)
		if start != "" && date < start {
			continue
		}
		if end != "" && date > end {
			continue
		}
		result = append(result, record)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i]["date"].(string) < result[j]["date"].(string)
	})

	skip, _ := strconv.Atoi(query.Get("skip"))
	if skip > len(result) {
		skip = len(result)
	}
	result = result[skip:]

	if limit, err := strconv.Atoi(query.Get("limit")); err == nil && limit < len(result) {
		result = result[:limit]
	}
	return result
}

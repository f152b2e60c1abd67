package history

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/ziadkadry99/treemap/internal/db"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database)
}

func TestLogAndGetByID(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	entry := Entry{
		ID:         "run-1",
		Dataset:    "movies",
		URL:        "https://example.com/movies.json",
		Outcome:    OutcomeRendered,
		Format:     "svg",
		Leaves:     95,
		Categories: []string{"Action", "Drama"},
		DurationMS: 42,
	}
	if err := store.Log(ctx, entry); err != nil {
		t.Fatalf("Log: %v", err)
	}

	got, err := store.GetByID(ctx, "run-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Dataset != "movies" {
		t.Errorf("Dataset = %q, want %q", got.Dataset, "movies")
	}
	if got.Outcome != OutcomeRendered {
		t.Errorf("Outcome = %q, want %q", got.Outcome, OutcomeRendered)
	}
	if got.Format != "svg" {
		t.Errorf("Format = %q, want svg", got.Format)
	}
	if got.Leaves != 95 || got.DurationMS != 42 {
		t.Errorf("Leaves = %d, DurationMS = %d", got.Leaves, got.DurationMS)
	}
	if len(got.Categories) != 2 || got.Categories[1] != "Drama" {
		t.Errorf("Categories = %v, want [Action Drama]", got.Categories)
	}
	if got.Error != "" {
		t.Errorf("Error = %q, want empty", got.Error)
	}
	if got.Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}
}

func TestLogFailure(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	if err := store.Log(ctx, Entry{
		Dataset: "kickstarter",
		URL:     "https://example.com/k.json",
		Outcome: OutcomeFailed,
		Error:   "status 500",
	}); err != nil {
		t.Fatalf("Log: %v", err)
	}

	entries, err := store.Query(ctx, QueryFilter{Outcome: OutcomeFailed})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].ID == "" {
		t.Error("expected generated ID, got empty string")
	}
	if entries[0].Error != "status 500" {
		t.Errorf("Error = %q", entries[0].Error)
	}
	if entries[0].Format != "html" {
		t.Errorf("Format = %q, want default html", entries[0].Format)
	}
}

func TestLogRejectsUnknownOutcome(t *testing.T) {
	store := setupStore(t)
	err := store.Log(context.Background(), Entry{Dataset: "movies", URL: "u", Outcome: "awaiting"})
	if err == nil {
		t.Error("expected error for non-terminal outcome")
	}
}

func TestQueryFilterByDataset(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	for _, ds := range []string{"movies", "videogames", "movies"} {
		if err := store.Log(ctx, Entry{Dataset: ds, URL: "u", Outcome: OutcomeRendered}); err != nil {
			t.Fatalf("Log: %v", err)
		}
	}

	entries, err := store.Query(ctx, QueryFilter{Dataset: "movies"})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 movies entries, got %d", len(entries))
	}
}

func TestQueryLimitOffset(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := store.Log(ctx, Entry{Dataset: "movies", URL: "u", Outcome: OutcomeRendered}); err != nil {
			t.Fatalf("Log: %v", err)
		}
	}

	entries, err := store.Query(ctx, QueryFilter{Limit: 2})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 entries with limit, got %d", len(entries))
	}

	entries, err = store.Query(ctx, QueryFilter{Offset: 3})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 entries with offset 3, got %d", len(entries))
	}
}

func TestQueryEmpty(t *testing.T) {
	store := setupStore(t)
	entries, err := store.Query(context.Background(), QueryFilter{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if entries == nil || len(entries) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", entries)
	}
}

func TestDeleteBefore(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	if err := store.Log(ctx, Entry{Dataset: "movies", URL: "u", Outcome: OutcomeRendered}); err != nil {
		t.Fatalf("Log: %v", err)
	}

	n, err := store.DeleteBefore(ctx, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("DeleteBefore: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted %d rows, want 1", n)
	}
}

func setupRouter(t *testing.T) (chi.Router, *Store) {
	t.Helper()
	store := setupStore(t)
	r := chi.NewRouter()
	RegisterRoutes(r, store)
	return r, store
}

func TestHTTPGetByID(t *testing.T) {
	r, store := setupRouter(t)

	if err := store.Log(context.Background(), Entry{
		ID:      "http-1",
		Dataset: "videogames",
		URL:     "u",
		Outcome: OutcomeRendered,
	}); err != nil {
		t.Fatalf("Log: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/history/http-1", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var got Entry
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ID != "http-1" || got.Dataset != "videogames" {
		t.Errorf("got %+v", got)
	}
}

func TestHTTPGetByIDNotFound(t *testing.T) {
	r, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/history/missing", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestHTTPQueryWithFilter(t *testing.T) {
	r, store := setupRouter(t)
	ctx := context.Background()

	for _, outcome := range []Outcome{OutcomeRendered, OutcomeFailed, OutcomeRendered} {
		if err := store.Log(ctx, Entry{Dataset: "movies", URL: "u", Outcome: outcome}); err != nil {
			t.Fatalf("Log: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/history?outcome=rendered&limit=10", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var entries []Entry
	if err := json.NewDecoder(rec.Body).Decode(&entries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 rendered entries, got %d", len(entries))
	}
}

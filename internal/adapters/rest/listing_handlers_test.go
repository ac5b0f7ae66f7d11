package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"listings-service/internal/core/domain"
	"listings-service/internal/core/port"
	"listings-service/internal/core/port/usecases_port"
)

type nopLogger struct{}

func (nopLogger) Debug(msg string, fields port.Fields)            {}
func (nopLogger) Info(msg string, fields port.Fields)             {}
func (nopLogger) Warn(msg string, fields port.Fields)             {}
func (nopLogger) Error(msg string, err error, fields port.Fields) {}
func (nopLogger) WithFields(fields port.Fields) port.LoggerPort   { return nopLogger{} }

type fakeGetPublished struct{ records []domain.ListingRecord }

func (f fakeGetPublished) GetPublishedListings(ctx context.Context) []domain.ListingRecord {
	return f.records
}

type fakeGetAll struct{ records []domain.ListingRecord }

func (f fakeGetAll) GetAllListings(ctx context.Context) []domain.ListingRecord {
	return f.records
}

type fakeUpsert struct {
	result *usecases_port.UpsertResult
	err    error
}

func (f fakeUpsert) UpsertListing(ctx context.Context, payload domain.UpsertPayload) (*usecases_port.UpsertResult, error) {
	return f.result, f.err
}

type fakeDelete struct{ deleted bool }

func (f fakeDelete) DeleteListing(ctx context.Context, id string) bool {
	return f.deleted
}

func testRecord(id, slug string, published bool) domain.ListingRecord {
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	return domain.ListingRecord{
		ID:        id,
		CreatedAt: now,
		UpdatedAt: now,
		Title:     "Listing " + id,
		Slug:      slug,
		Category:  domain.CategoryHaus,
		Status:    "Zu verkaufen",
		Price:     450000,
		Area:      120,
		Rooms:     4,
		Address:   "Neckarstraße 1",
		City:      "Ladenburg",
		Zip:       "68526",
		Features:  []string{},
		Images:    []string{"/images/a.jpg"},
		Published: published,
	}
}

func serve(t *testing.T, handlers *ListingHandlers, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	srv := NewServer("8080", handlers, nopLogger{})

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rr := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rr, req)
	return rr
}

func TestHealthEndpoint(t *testing.T) {
	handlers := NewListingHandlers(fakeGetPublished{}, fakeGetAll{}, fakeUpsert{}, fakeDelete{})

	rr := serve(t, handlers, http.MethodGet, "/health", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var resp HealthResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if resp.Status != "ok" {
		t.Fatalf("status field = %q, want ok", resp.Status)
	}
}

func TestGetPublishedListingsProjectsPublicShape(t *testing.T) {
	rec := testRecord("1", "listing-eins", true)
	handlers := NewListingHandlers(fakeGetPublished{records: []domain.ListingRecord{rec}}, fakeGetAll{}, fakeUpsert{}, fakeDelete{})

	rr := serve(t, handlers, http.MethodGet, "/api/v1/listings", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var resp []PublicListingResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if len(resp) != 1 {
		t.Fatalf("response length = %d, want 1", len(resp))
	}
	if resp[0].PriceType != domain.PriceTypeBuy {
		t.Fatalf("price_type = %q, want %q", resp[0].PriceType, domain.PriceTypeBuy)
	}
	if resp[0].Image != "/images/a.jpg" {
		t.Fatalf("image = %q, want the first record image", resp[0].Image)
	}
}

func TestGetListingBySlug(t *testing.T) {
	rec := testRecord("1", "listing-eins", true)
	handlers := NewListingHandlers(fakeGetPublished{records: []domain.ListingRecord{rec}}, fakeGetAll{}, fakeUpsert{}, fakeDelete{})

	rr := serve(t, handlers, http.MethodGet, "/api/v1/listings/listing-eins", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var resp PublicListingResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if resp.ID != "1" {
		t.Fatalf("id = %q, want the record matched by slug", resp.ID)
	}
}

func TestGetListingUnknownKeyReturns404(t *testing.T) {
	handlers := NewListingHandlers(fakeGetPublished{}, fakeGetAll{}, fakeUpsert{}, fakeDelete{})

	rr := serve(t, handlers, http.MethodGet, "/api/v1/listings/nope", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
}

func TestGetAllListingsIncludesDrafts(t *testing.T) {
	records := []domain.ListingRecord{
		testRecord("1", "eins", true),
		testRecord("2", "zwei", false),
	}
	handlers := NewListingHandlers(fakeGetPublished{}, fakeGetAll{records: records}, fakeUpsert{}, fakeDelete{})

	rr := serve(t, handlers, http.MethodGet, "/api/v1/admin/listings", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var resp []ListingResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("response length = %d, want the draft included", len(resp))
	}
}

func TestUpsertListingReportsSyncState(t *testing.T) {
	result := &usecases_port.UpsertResult{
		Listing: testRecord("1", "eins", false),
		Storage: "local",
		Synced:  false,
	}
	handlers := NewListingHandlers(fakeGetPublished{}, fakeGetAll{}, fakeUpsert{result: result}, fakeDelete{})

	rr := serve(t, handlers, http.MethodPost, "/api/v1/admin/listings", `{"title":"Haus X"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var resp UpsertListingResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if resp.Storage != "local" || resp.Synced {
		t.Fatalf("storage/synced = %s/%t, want local/false surfaced to the client", resp.Storage, resp.Synced)
	}
	if resp.Listing.ID != "1" {
		t.Fatalf("listing id = %q, want the stored record", resp.Listing.ID)
	}
}

func TestUpsertListingRejectsMalformedBody(t *testing.T) {
	handlers := NewListingHandlers(fakeGetPublished{}, fakeGetAll{}, fakeUpsert{}, fakeDelete{})

	rr := serve(t, handlers, http.MethodPost, "/api/v1/admin/listings", `{not json`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestUpsertListingValidationErrorIs400(t *testing.T) {
	failing := fakeUpsert{err: &domain.ValidationError{Missing: []string{"title", "price"}}}
	handlers := NewListingHandlers(fakeGetPublished{}, fakeGetAll{}, failing, fakeDelete{})

	rr := serve(t, handlers, http.MethodPost, "/api/v1/admin/listings", `{}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "title") {
		t.Fatalf("body = %q, want the missing fields named", rr.Body.String())
	}
}

func TestDeleteListing(t *testing.T) {
	tests := []struct {
		name    string
		deleted bool
	}{
		{"existing record", true},
		{"missing record", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlers := NewListingHandlers(fakeGetPublished{}, fakeGetAll{}, fakeUpsert{}, fakeDelete{deleted: tt.deleted})

			rr := serve(t, handlers, http.MethodDelete, "/api/v1/admin/listings/1", "")
			if rr.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rr.Code)
			}

			var resp DeleteListingResponse
			if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
				t.Fatalf("response is not valid JSON: %v", err)
			}
			if resp.Deleted != tt.deleted {
				t.Fatalf("deleted = %t, want %t", resp.Deleted, tt.deleted)
			}
		})
	}
}

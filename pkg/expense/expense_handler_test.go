package expense

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/simplespend/simplespend/internal/event_bus"
	"github.com/simplespend/simplespend/internal/utils"
	"github.com/simplespend/simplespend/pkg/attachment"
)

func setupHandler(t *testing.T) (*mux.Router, Service, *attachment.Store) {
	t.Helper()

	repo := NewStubExpenseRepo()
	service := NewExpenseService(repo, event_bus.NewEventBus())
	attachments := attachment.NewStore()
	clock := &utils.MockClock{FixedNow: date(2026, time.May, 15)}
	handler := NewExpenseHandler(service, attachments, clock)

	r := mux.NewRouter()
	r.HandleFunc("/api/expense", handler.List).Methods("GET")
	r.HandleFunc("/api/expense", handler.Create).Methods("POST")
	r.HandleFunc("/api/expense", handler.DeleteMany).Methods("DELETE")
	r.HandleFunc("/api/expense/{id}", handler.Get).Methods("GET")
	r.HandleFunc("/api/expense/{id}", handler.Update).Methods("PUT")
	r.HandleFunc("/api/expense/{id}", handler.Delete).Methods("DELETE")

	return r, service, attachments
}

func TestExpenseHandler_List(t *testing.T) {
	t.Run("should default to the current month and annotate attachments", func(t *testing.T) {
		// given
		router, service, attachments := setupHandler(t)
		inMonth, err := service.Create(ctx, "Groceries", decimal.RequireFromString("1200.50"), "식비", date(2026, time.May, 10))
		require.NoError(t, err)
		_, err = service.Create(ctx, "Old coffee", decimal.NewFromInt(300), "카페/간식", date(2026, time.April, 2))
		require.NoError(t, err)
		attachments.Attach(inMonth.ID, attachment.Image{Data: []byte("receipt"), ContentType: "image/jpeg"})

		// when
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/expense", nil))

		// then
		require.Equal(t, http.StatusOK, rr.Code)
		var listDTO ExpenseListDTO
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &listDTO))
		require.Len(t, listDTO.Expenses, 1)
		assert.Equal(t, inMonth.ID.String(), listDTO.Expenses[0].ID)
		assert.True(t, listDTO.Expenses[0].HasAttachment)
		assert.True(t, listDTO.Total.Equal(decimal.RequireFromString("1200.50")))
	})

	t.Run("should apply month, category, and search params", func(t *testing.T) {
		// given
		router, service, _ := setupHandler(t)
		_, err := service.Create(ctx, "Groceries", decimal.NewFromInt(40), "식비", date(2026, time.March, 10))
		require.NoError(t, err)
		match, err := service.Create(ctx, "Morning coffee", decimal.NewFromInt(5), "카페/간식", date(2026, time.March, 12))
		require.NoError(t, err)

		// when
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet,
			"/api/expense?month=2026-03&category=카페/간식&search=COFFEE", nil))

		// then
		require.Equal(t, http.StatusOK, rr.Code)
		var listDTO ExpenseListDTO
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &listDTO))
		require.Len(t, listDTO.Expenses, 1)
		assert.Equal(t, match.ID.String(), listDTO.Expenses[0].ID)
		assert.False(t, listDTO.Expenses[0].HasAttachment)
	})

	t.Run("should reject a malformed month", func(t *testing.T) {
		router, _, _ := setupHandler(t)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/expense?month=May-2026", nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestExpenseHandler_Create(t *testing.T) {
	t.Run("should create an expense from a valid payload", func(t *testing.T) {
		// given
		router, service, _ := setupHandler(t)
		body := `{"title":"Groceries","amount":"42.50","category":"식비","date":"2026-05-10"}`

		// when
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/expense", strings.NewReader(body)))

		// then
		require.Equal(t, http.StatusCreated, rr.Code)
		var dto ExpenseDTO
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &dto))
		assert.Equal(t, "Groceries", dto.Title)
		assert.Equal(t, "2026-05-10", dto.Date)

		listed, err := service.List(ctx)
		require.NoError(t, err)
		assert.Len(t, listed, 1)
	})

	t.Run("should reject validation failures with a JSON error body", func(t *testing.T) {
		// given
		router, service, _ := setupHandler(t)
		body := `{"title":"   ","amount":"10","category":"식비","date":"2026-05-10"}`

		// when
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/expense", strings.NewReader(body)))

		// then
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "title")

		listed, err := service.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, listed)
	})
}

func TestExpenseHandler_Update(t *testing.T) {
	t.Run("should apply partial changes", func(t *testing.T) {
		// given
		router, service, _ := setupHandler(t)
		created, err := service.Create(ctx, "Groceries", decimal.NewFromInt(40), "식비", date(2026, time.May, 10))
		require.NoError(t, err)

		// when
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodPut, "/api/expense/"+created.ID.String(),
			strings.NewReader(`{"title":"Late groceries"}`)))

		// then
		require.Equal(t, http.StatusOK, rr.Code)
		updated, err := service.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Late groceries", updated.Title)
		assert.Equal(t, created.Category, updated.Category)
	})

	t.Run("should return 404 for an unknown id", func(t *testing.T) {
		router, _, _ := setupHandler(t)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodPut,
			"/api/expense/6a6ff0a3-9030-4bc9-baf9-3d4a6f9a7a10", strings.NewReader(`{"title":"Anything"}`)))

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestExpenseHandler_DeleteMany(t *testing.T) {
	// given
	router, service, _ := setupHandler(t)
	first, err := service.Create(ctx, "First", decimal.NewFromInt(1), "기타", date(2026, time.May, 1))
	require.NoError(t, err)
	second, err := service.Create(ctx, "Second", decimal.NewFromInt(2), "기타", date(2026, time.May, 2))
	require.NoError(t, err)

	// when
	body := `{"ids":["` + first.ID.String() + `","` + second.ID.String() + `"]}`
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/api/expense", strings.NewReader(body)))

	// then
	require.Equal(t, http.StatusNoContent, rr.Code)
	listed, err := service.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

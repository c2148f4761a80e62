package expense

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/simplespend/simplespend/internal/rest"
	"github.com/simplespend/simplespend/internal/utils"
)

const monthLayout = "2006-01"

// AttachmentChecker reports whether an in-memory attachment exists for
// the given expense. Listing uses it to annotate rows.
type AttachmentChecker interface {
	Has(id uuid.UUID) bool
}

type ExpenseDTO struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category"`
	Date          string          `json:"date"`
	HasAttachment bool            `json:"hasAttachment"`
}

type ExpenseListDTO struct {
	Expenses []ExpenseDTO    `json:"expenses"`
	Total    decimal.Decimal `json:"total"`
}

type CreateExpenseDTO struct {
	Title    string          `json:"title"`
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category"`
	Date     string          `json:"date"`
}

type UpdateExpenseDTO struct {
	Title    *string          `json:"title"`
	Amount   *decimal.Decimal `json:"amount"`
	Category *string          `json:"category"`
	Date     *string          `json:"date"`
}

type DeleteManyDTO struct {
	IDs []string `json:"ids"`
}

type ExpenseHandler struct {
	service     Service
	attachments AttachmentChecker
	clock       utils.Clock
}

func NewExpenseHandler(service Service, attachments AttachmentChecker, clock utils.Clock) *ExpenseHandler {
	return &ExpenseHandler{service: service, attachments: attachments, clock: clock}
}

// List returns the filtered ledger view together with the filtered total.
// Query params: month (2006-01, defaults to the current month), category
// (exact match), search (case-insensitive substring over title/category).
func (handler *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	month := handler.clock.Now()
	if monthParam := r.URL.Query().Get("month"); monthParam != "" {
		parsed, err := time.Parse(monthLayout, monthParam)
		if err != nil {
			http.Error(w, "Invalid month, expected format "+monthLayout, http.StatusBadRequest)
			return
		}
		month = parsed
	}

	expenses, err := handler.service.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	result := Filter(expenses, Filters{
		Month:    month,
		Category: r.URL.Query().Get("category"),
		Text:     r.URL.Query().Get("search"),
	})

	listDTO := ExpenseListDTO{
		Expenses: make([]ExpenseDTO, 0, len(result.Expenses)),
		Total:    result.Total,
	}
	for _, e := range result.Expenses {
		listDTO.Expenses = append(listDTO.Expenses, handler.toDTO(e))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(listDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Registering new expense")
	w.Header().Set("Content-Type", "application/json")

	var dto CreateExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	date, err := time.Parse(dateLayout, dto.Date)
	if err != nil {
		http.Error(w, "Invalid date, expected format "+dateLayout, http.StatusBadRequest)
		return
	}

	created, err := handler.service.Create(r.Context(), dto.Title, dto.Amount, dto.Category, date)
	if errors.Is(err, ErrEmptyTitle) || errors.Is(err, ErrNonPositiveAmount) {
		w.WriteHeader(http.StatusBadRequest)
		if encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: err.Error()}); encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(handler.toDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *ExpenseHandler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id, ok := expenseID(w, r)
	if !ok {
		return
	}

	expense, err := handler.service.Get(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		http.Error(w, "Expense not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(handler.toDTO(expense)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *ExpenseHandler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id, ok := expenseID(w, r)
	if !ok {
		return
	}

	var dto UpdateExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	update := ExpenseUpdate{
		Title:    dto.Title,
		Amount:   dto.Amount,
		Category: dto.Category,
	}
	if dto.Date != nil {
		date, err := time.Parse(dateLayout, *dto.Date)
		if err != nil {
			http.Error(w, "Invalid date, expected format "+dateLayout, http.StatusBadRequest)
			return
		}
		update.Date = &date
	}

	updated, err := handler.service.Update(r.Context(), id, update)
	if errors.Is(err, ErrNotFound) {
		http.Error(w, "Expense not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(handler.toDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := expenseID(w, r)
	if !ok {
		return
	}

	if err := handler.service.Delete(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteMany removes a batch of expenses in one call, typically the
// selection the user swiped away from the filtered list.
func (handler *ExpenseHandler) DeleteMany(w http.ResponseWriter, r *http.Request) {
	var dto DeleteManyDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ids := make([]uuid.UUID, 0, len(dto.IDs))
	for _, raw := range dto.IDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			http.Error(w, "Invalid expense id: "+raw, http.StatusBadRequest)
			return
		}
		ids = append(ids, id)
	}

	if err := handler.service.DeleteMany(r.Context(), ids); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (handler *ExpenseHandler) toDTO(e Expense) ExpenseDTO {
	return ExpenseDTO{
		ID:            e.ID.String(),
		Title:         e.Title,
		Amount:        e.Amount,
		Category:      e.Category,
		Date:          e.Date.Format(dateLayout),
		HasAttachment: handler.attachments.Has(e.ID),
	}
}

func expenseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		http.Error(w, "Invalid expense id", http.StatusBadRequest)
		return uuid.UUID{}, false
	}
	return id, true
}

package category

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

type CategoryHandler struct {
	service Service
}

func NewCategoryHandler(service Service) *CategoryHandler {
	return &CategoryHandler{service: service}
}

func (handler *CategoryHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	categories, err := handler.service.Read(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(categories); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *CategoryHandler) Replace(w http.ResponseWriter, r *http.Request) {
	log.Debug("Replacing category list")
	w.Header().Set("Content-Type", "application/json")

	var raw []string
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	stored, err := handler.service.Write(r.Context(), raw)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(stored); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

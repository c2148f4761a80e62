package app

import (
	"github.com/gorilla/mux"
	"github.com/simplespend/simplespend/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Expenses
	r.HandleFunc("/api/expense", deps.ExpenseHandler.List).Methods("GET")
	r.HandleFunc("/api/expense", deps.ExpenseHandler.Create).Methods("POST")
	r.HandleFunc("/api/expense", deps.ExpenseHandler.DeleteMany).Methods("DELETE")
	r.HandleFunc("/api/expense/{id}", deps.ExpenseHandler.Get).Methods("GET")
	r.HandleFunc("/api/expense/{id}", deps.ExpenseHandler.Update).Methods("PUT")
	r.HandleFunc("/api/expense/{id}", deps.ExpenseHandler.Delete).Methods("DELETE")

	// Attachments
	r.HandleFunc("/api/expense/{id}/attachment", deps.AttachmentHandler.Upload).Methods("PUT")
	r.HandleFunc("/api/expense/{id}/attachment", deps.AttachmentHandler.Get).Methods("GET")
	r.HandleFunc("/api/expense/{id}/attachment", deps.AttachmentHandler.Delete).Methods("DELETE")

	// Categories
	r.HandleFunc("/api/category", deps.CategoryHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/category", deps.CategoryHandler.Replace).Methods("PUT")
}

package app

import (
	"database/sql"

	"github.com/simplespend/simplespend/internal/event_bus"
	"github.com/simplespend/simplespend/internal/utils"
	"github.com/simplespend/simplespend/pkg/attachment"
	"github.com/simplespend/simplespend/pkg/category"
	"github.com/simplespend/simplespend/pkg/expense"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Bus *event_bus.EventBus

	ExpenseRepo    expense.ExpenseRepo
	ExpenseService expense.Service
	ExpenseHandler *expense.ExpenseHandler

	SettingsRepo    category.SettingsRepo
	CategoryService category.Service
	CategoryHandler *category.CategoryHandler

	AttachmentStore   *attachment.Store
	AttachmentHandler *attachment.AttachmentHandler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB) *Dependencies {
	deps := &Dependencies{}

	deps.Bus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	deps.AttachmentStore = attachment.NewStore()
	deps.AttachmentHandler = attachment.NewAttachmentHandler(deps.AttachmentStore)

	deps.ExpenseRepo = expense.NewExpenseRepo(db)
	deps.ExpenseService = expense.NewExpenseService(deps.ExpenseRepo, deps.Bus)
	deps.ExpenseHandler = expense.NewExpenseHandler(deps.ExpenseService, deps.AttachmentStore, deps.Clock)

	deps.SettingsRepo = category.NewSettingsRepo(db)
	deps.CategoryService = category.NewCategoryService(deps.SettingsRepo)
	deps.CategoryHandler = category.NewCategoryHandler(deps.CategoryService)

	// Drop cached attachments eagerly when their expense goes away. The
	// store tolerates orphans either way.
	event_bus.SubscribeTyped[event_bus.ExpenseDeleted](deps.Bus, event_bus.ExpenseDeletedEvent,
		func(e event_bus.EventT[event_bus.ExpenseDeleted]) error {
			deps.AttachmentStore.Forget(e.Data.ID)
			return nil
		})

	return deps
}

package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/orderdesk/orderdesk/internal/application"
)

// ReadinessChecker reports whether downstream dependencies are usable.
type ReadinessChecker func(ctx context.Context) error

// NewRouter assembles the full HTTP surface. Everything except the
// login endpoint and the health probes sits behind identity resolution.
func NewRouter(service *application.Service, ready ReadinessChecker) http.Handler {
	handler := NewHandler(service, ready)

	router := chi.NewRouter()
	router.Use(requestIDMiddleware)
	router.Use(recoverMiddleware)
	router.Use(loggingMiddleware)

	router.Get("/healthz", handler.Healthz)
	router.Get("/readyz", handler.Readyz)
	router.Post("/auth/telegram", handler.LoginTelegram)

	router.Group(func(protected chi.Router) {
		protected.Use(identityMiddleware(service))

		protected.Get("/auth/me", handler.Me)
		protected.Get("/dashboard/summary", handler.DashboardSummary)

		protected.Route("/clients", func(r chi.Router) {
			r.Get("/", handler.ListClients)
			r.Post("/", handler.CreateClient)
			r.Patch("/{clientID}", handler.UpdateClient)
			r.Delete("/{clientID}", handler.DeleteClient)
		})

		protected.Route("/orders", func(r chi.Router) {
			r.Get("/", handler.ListOrders)
			r.Post("/", handler.CreateOrder)
			r.Get("/{orderID}", handler.GetOrder)
			r.Patch("/{orderID}", handler.UpdateOrder)
			r.Delete("/{orderID}", handler.DeleteOrder)
			r.Post("/{orderID}/status", handler.UpdateOrderStatus)
			r.Get("/{orderID}/tasks", handler.ListOrderTasks)
			r.Post("/{orderID}/tasks", handler.CreateOrderTask)
			r.Get("/{orderID}/notes", handler.ListOrderNotes)
			r.Post("/{orderID}/notes", handler.CreateOrderNote)
		})

		protected.Patch("/tasks/{taskID}", handler.UpdateTask)

		protected.Route("/templates", func(r chi.Router) {
			r.Get("/", handler.ListTemplates)
			r.Post("/", handler.CreateTemplate)
			r.Patch("/{templateID}", handler.UpdateTemplate)
			r.Delete("/{templateID}", handler.DeleteTemplate)
		})

		protected.Route("/reminders", func(r chi.Router) {
			r.Get("/", handler.ListReminders)
			r.Post("/", handler.CreateReminder)
			r.Patch("/{reminderID}", handler.UpdateReminder)
			r.Delete("/{reminderID}", handler.DeleteReminder)
		})
	})

	return router
}

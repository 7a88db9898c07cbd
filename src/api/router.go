package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"smartfinance-server/src/handlers"
	"smartfinance-server/src/middleware"
)

func NewRouter(pool *pgxpool.Pool) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware)
	r.Use(middleware.MetricsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", handlers.Register(pool))
		r.Post("/login", handlers.Login(pool))

		// Protected routes
		r.With(middleware.JWTAuthMiddleware(pool)).Group(func(r chi.Router) {
			// User
			r.Get("/user", handlers.GetUser(pool))
			r.Put("/user", handlers.UpdateUser(pool))
			r.Post("/user/change-password", handlers.ChangePassword(pool))

			// Categories
			r.Get("/categories", handlers.GetCategories(pool))
			r.Post("/categories", handlers.CreateCategory(pool))
			r.Put("/categories/{category_id}", handlers.UpdateCategory(pool))
			r.Delete("/categories/{category_id}", handlers.DeleteCategory(pool))

			// Transactions
			r.Post("/transactions", handlers.CreateTransaction(pool))
			r.Get("/transactions", handlers.GetTransactions(pool))
			r.Put("/transactions/{transaction_id}", handlers.UpdateTransaction(pool))
			r.Delete("/transactions/{transaction_id}", handlers.DeleteTransaction(pool))

			// Budgets
			r.Post("/budgets", handlers.CreateBudget(pool))
			r.Get("/budgets", handlers.GetAllBudgetsForUser(pool))
			r.Get("/budgets/{budget_id}", handlers.GetBudgetByID(pool))
			r.Put("/budgets/{budget_id}", handlers.UpdateBudget(pool))
			r.Delete("/budgets/{budget_id}", handlers.DeleteBudget(pool))

			// Saving goals
			r.Post("/goals", handlers.CreateSavingGoal(pool))
			r.Get("/goals", handlers.GetSavingGoals(pool))
			r.Put("/goals/{goal_id}", handlers.UpdateSavingGoal(pool))
			r.Delete("/goals/{goal_id}", handlers.DeleteSavingGoal(pool))

			// Reports
			r.Get("/reports/summary", handlers.GetSummary(pool))
			r.Get("/reports/monthly", handlers.GetMonthlySummary(pool))
			r.Get("/reports/insights", handlers.GetInsights(pool))
			r.Get("/reports/chart", handlers.GetSpendingChart(pool))
		})
	})

	return r
}

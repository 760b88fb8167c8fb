package routes

import (
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/adapters/http/handlers"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/adapters/http/middleware"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/adapters/persistence/repositories"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/config"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Repositories and the shared transaction boundary
	stores := repositories.NewStores(db)
	transactor := repositories.NewGormTransactor(db)

	// Services
	notifyService := services.NewNotificationService(stores.Notifications)
	authService := services.NewAuthService(stores, cfg.JWT.Secret, cfg.JWT.AccessTokenMins)
	loanService := services.NewLoanService(transactor, stores, notifyService, cfg.IsDev())
	savingsService := services.NewSavingsService(transactor, stores, notifyService)
	transactionService := services.NewTransactionService(stores)
	memberService := services.NewMemberService(stores, notifyService)

	// Handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService)
	loanHandler := handlers.NewLoanHandler(loanService)
	savingsHandler := handlers.NewSavingsHandler(savingsService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	masterHandler := handlers.NewMasterHandler(loanService)
	notificationHandler := handlers.NewNotificationHandler(notifyService)
	memberHandler := handlers.NewMemberHandler(memberService)

	// Health
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	api := app.Group("/api/v1")

	// Auth (stricter rate limit)
	auth := api.Group("/auth", middleware.AuthRateLimiter())
	auth.Post("/register", authHandler.RegisterMember)
	auth.Post("/login", authHandler.LoginMember)
	auth.Post("/admin/login", authHandler.LoginUser)

	// Member loan endpoints
	loans := api.Group("/loans", middleware.AuthMiddleware(cfg))
	loans.Get("/categories", loanHandler.ListCategories)
	loans.Post("/apply", middleware.MemberOnly(), loanHandler.Apply)
	loans.Post("/confirm", middleware.MemberOnly(), middleware.AuthRateLimiter(), loanHandler.Confirm)
	loans.Get("/balance", middleware.MemberOnly(), loanHandler.Balance)

	// Admin loan decisions
	loans.Get("/", middleware.AdminOnly(), loanHandler.ListAll)
	loans.Patch("/:id/approve", middleware.AdminOnly(), loanHandler.Approve)
	loans.Patch("/:id/reject", middleware.AdminOnly(), loanHandler.Reject)

	// Savings
	savings := api.Group("/savings", middleware.AuthMiddleware(cfg))
	savings.Post("/deposit", middleware.MemberOnly(), savingsHandler.Deposit)
	savings.Post("/withdraw", middleware.MemberOnly(), savingsHandler.Withdraw)
	savings.Get("/balance", middleware.MemberOnly(), savingsHandler.Balance)
	savings.Patch("/deduction", middleware.MemberOnly(), savingsHandler.EditDeduction)
	savings.Get("/", middleware.AdminOnly(), savingsHandler.ListAll)

	// Member administration
	members := api.Group("/members", middleware.AuthMiddleware(cfg))
	members.Get("/", middleware.AdminOnly(), memberHandler.List)
	members.Get("/terminations", middleware.AdminOnly(), memberHandler.ListTerminations)
	members.Patch("/pin", middleware.MemberOnly(), memberHandler.ChangePin)
	members.Post("/termination", middleware.MemberOnly(), memberHandler.RequestTermination)
	members.Patch("/:id/approve", middleware.AdminOnly(), memberHandler.Approve)
	members.Patch("/:id/reject", middleware.AdminOnly(), memberHandler.Reject)

	// Ledger
	transactions := api.Group("/transactions", middleware.AuthMiddleware(cfg))
	transactions.Get("/", middleware.MemberOnly(), transactionHandler.List)
	transactions.Get("/payments", middleware.AdminOnly(), transactionHandler.Payments)
	transactions.Get("/payments/summary", middleware.AdminOnly(), transactionHandler.PaymentsSummary)

	// Notifications
	notifications := api.Group("/notifications", middleware.AuthMiddleware(cfg), middleware.MemberOnly())
	notifications.Get("/", notificationHandler.List)
	notifications.Get("/unread-count", notificationHandler.UnreadCount)
	notifications.Patch("/read-all", notificationHandler.MarkAllRead)
	notifications.Patch("/:id/read", notificationHandler.MarkRead)

	// Master data administration
	master := api.Group("/master", middleware.AuthMiddleware(cfg), middleware.AdminOnly())
	master.Get("/loan-categories", masterHandler.ListCategories)
	master.Patch("/loan-categories/:name", masterHandler.SetCategoryActive)
}

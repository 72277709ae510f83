// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/devart/devart-server/internal/config"
	"github.com/devart/devart-server/internal/database"
	"github.com/devart/devart-server/internal/gateway"
	"github.com/devart/devart-server/internal/handler"
	"github.com/devart/devart-server/internal/model"
	"github.com/devart/devart-server/internal/repository"
	"github.com/devart/devart-server/internal/service"
	"github.com/devart/devart-server/internal/token"
)

const tokenTTL = time.Hour

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config", zap.Error(err))
	}

	ctx := context.Background()

	// ── 1. Connect to PostgreSQL ──────────────────────────────────────────
	pool, err := database.NewPool(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()
	logger.Info("connected to postgres")

	// ── 2. Wire up layers ────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	classRepo := repository.NewClassRepository(pool)
	cartRepo := repository.NewCartRepository(pool)
	paymentRepo := repository.NewPaymentRepository(pool)

	codec := token.NewCodec(cfg.TokenSecret, tokenTTL)
	stripeClient := gateway.NewClient(cfg.StripeSecret)

	authSvc := service.NewAuthService(codec, userRepo)
	userSvc := service.NewUserService(userRepo)
	classSvc := service.NewClassService(classRepo)
	cartSvc := service.NewCartService(cartRepo)
	checkoutSvc := service.NewCheckoutService(paymentRepo, stripeClient)

	h := handler.New(logger, authSvc, userSvc, classSvc, cartSvc, checkoutSvc)

	// ── 3. Build the router ───────────────────────────────────────────────
	r := chi.NewRouter()

	// Global middleware stack
	r.Use(chimiddleware.Recoverer) // recover from panics, return 500
	r.Use(chimiddleware.RequestID) // attach request IDs
	r.Use(chimiddleware.RealIP)    // trust X-Forwarded-For
	r.Use(handler.AccessLog(logger))
	r.Use(handler.CORS)

	// Health
	r.Get("/health", handler.HealthCheck)

	// Public routes
	r.Post("/jwt", h.IssueToken)
	r.Post("/user/{email}", h.RegisterUser)
	r.Get("/classes", h.ListClasses)
	r.Get("/popularclasses", h.PopularClasses)
	r.Get("/instructors", h.Instructors)
	r.Get("/popularinstructors", h.PopularInstructors)
	r.Post("/cart/{email}", h.AddCartItem)

	// Token-protected routes
	r.Group(func(r chi.Router) {
		r.Use(h.RequireAuth)

		r.Get("/userrole/{email}", h.UserRole)
		r.Get("/cart", h.ListCart)
		r.Get("/enrolled", h.ListEnrolled)
		r.Get("/cart/{id}", h.GetCartItem)
		r.Delete("/cart/{id}", h.DeleteCartItem)
		r.Post("/create-payment-intent", h.CreatePaymentIntent)
		r.Post("/payments", h.FinalizePayment)
		r.Get("/paymenthistory", h.PaymentHistory)

		// Admin-only
		r.Group(func(r chi.Router) {
			r.Use(h.RequireRole(model.RoleAdmin))

			r.Get("/users", h.ListUsers)
			r.Put("/makeadmin/{id}", h.MakeAdmin)
			r.Put("/makeinstructor/{id}", h.MakeInstructor)
			r.Get("/allclass", h.ListAllClasses)
			r.Put("/approveclass/{id}", h.ApproveClass)
			r.Put("/denyclass/{id}", h.DenyClass)
			r.Put("/feedback/{id}", h.ClassFeedback)
		})

		// Instructor-only
		r.Group(func(r chi.Router) {
			r.Use(h.RequireRole(model.RoleInstructor))

			r.Post("/classes/{email}", h.CreateClass)
			r.Get("/myclass/{email}", h.MyClasses)
		})
	})

	// ── 4. Start server with graceful shutdown ────────────────────────────
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Run in background goroutine so we can listen for shutdown signal.
	go func() {
		logger.Info("server listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// Block until SIGINT or SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("graceful shutdown failed", zap.Error(err))
	}
	logger.Info("server stopped")
}

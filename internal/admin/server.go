package admin

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/abdujalils571-glitch/Slide-Master-AI-Bot/internal/models"
	"github.com/abdujalils571-glitch/Slide-Master-AI-Bot/internal/service"
)

// UpdateHandler receives platform-pushed updates in webhook mode.
type UpdateHandler interface {
	HandleUpdate(ctx context.Context, update tgbotapi.Update)
}

// PaymentNotifier tells a user that their payment was applied.
type PaymentNotifier interface {
	NotifyPaymentResolved(ctx context.Context, record *models.PaymentRecord, pkg models.Package)
}

// Broadcaster fans a message out to every account. The bot owns the pacing
// and skip-on-failure policy.
type Broadcaster interface {
	Broadcast(ctx context.Context, text string) (int, error)
}

// Server hosts the liveness endpoints, the Telegram webhook intake and the
// basic-auth admin API for manual payment resolution, stats and broadcast.
type Server struct {
	addr        string
	username    string
	password    string
	log         *slog.Logger
	accounts    *service.AccountService
	credits     *service.CreditService
	updates     UpdateHandler
	notifier    PaymentNotifier
	broadcaster Broadcaster
	router      *chi.Mux
}

func NewServer(addr, username, password, webhookPath string, log *slog.Logger, accounts *service.AccountService, credits *service.CreditService, updates UpdateHandler, notifier PaymentNotifier, broadcaster Broadcaster) *Server {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	s := &Server{
		addr:        addr,
		username:    username,
		password:    password,
		log:         log,
		accounts:    accounts,
		credits:     credits,
		updates:     updates,
		notifier:    notifier,
		broadcaster: broadcaster,
		router:      r,
	}

	r.Get("/", s.handleHealth)
	r.Get("/health", s.handleHealth)
	if webhookPath != "" {
		r.Post(webhookPath, s.handleWebhook)
	}
	r.Group(func(protected chi.Router) {
		protected.Use(s.basicAuthMiddleware())
		protected.Get("/stats", s.handleStats)
		protected.Post("/broadcast", s.handleBroadcast)
		protected.Route("/payments", func(r chi.Router) {
			r.Get("/pending", s.handlePendingPayments)
			r.Post("/{id}/confirm", s.handleConfirmPayment)
			r.Post("/{id}/reject", s.handleRejectPayment)
		})
	})
	return s
}

func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Error("admin shutdown error", "err", err)
		}
	}()

	s.log.Info("http server listening", "addr", s.addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("admin listen: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	var update tgbotapi.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		s.log.Error("decode webhook update", "err", err)
		http.Error(w, "invalid update", http.StatusBadRequest)
		return
	}
	// Ack immediately; handler work must not hold the platform's push.
	go s.updates.HandleUpdate(context.Background(), update)
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.accounts.Stats(r.Context())
	if err != nil {
		s.log.Error("aggregate stats", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]int{
		"total_accounts": stats.TotalAccounts,
		"total_balance":  stats.TotalBalance,
		"total_premium":  stats.TotalPremium,
	})
}

type broadcastRequest struct {
	Message string `json:"message"`
}

func (s *Server) handleBroadcast(w http.ResponseWriter, r *http.Request) {
	var req broadcastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		http.Error(w, "message required", http.StatusBadRequest)
		return
	}

	count, err := s.broadcaster.Broadcast(r.Context(), req.Message)
	if err != nil {
		s.log.Error("broadcast", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]int{"sent": count})
}

func (s *Server) handlePendingPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := s.credits.PendingPayments(r.Context())
	if err != nil {
		s.log.Error("list pending payments", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, payments)
}

func (s *Server) handleConfirmPayment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid payment id", http.StatusBadRequest)
		return
	}
	record, pkg, err := s.credits.ConfirmPayment(r.Context(), id)
	if err != nil {
		s.writePaymentError(w, err)
		return
	}
	s.notifier.NotifyPaymentResolved(r.Context(), record, pkg)
	writeJSON(w, record)
}

func (s *Server) handleRejectPayment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid payment id", http.StatusBadRequest)
		return
	}
	record, err := s.credits.RejectPayment(r.Context(), id)
	if err != nil {
		s.writePaymentError(w, err)
		return
	}
	writeJSON(w, record)
}

func (s *Server) writePaymentError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrPaymentNotFound):
		http.Error(w, "payment not found", http.StatusNotFound)
	case errors.Is(err, service.ErrPaymentAlreadyFinal):
		http.Error(w, "payment already resolved", http.StatusConflict)
	default:
		s.log.Error("resolve payment", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func (s *Server) basicAuthMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, pass, ok := r.BasicAuth()
			if !ok ||
				subtle.ConstantTimeCompare([]byte(user), []byte(s.username)) != 1 ||
				subtle.ConstantTimeCompare([]byte(pass), []byte(s.password)) != 1 {
				w.Header().Set("WWW-Authenticate", `Basic realm="admin"`)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

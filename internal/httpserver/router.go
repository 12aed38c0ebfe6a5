package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"mockchat/internal/config"
	"mockchat/internal/domain"
	"mockchat/internal/service"
	"mockchat/internal/store/memory"
	"mockchat/internal/ws"

	_ "mockchat/docs"
	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter constructs the main HTTP router and wires routes, services, and middleware.
func NewRouter(cfg *config.Config, db *memory.DB, hub *ws.Hub, scheduler *service.DeliveryScheduler) http.Handler {
	r := chi.NewRouter()

	// Middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Repositories
	userRepo := memory.NewUserRepo(db)
	convRepo := memory.NewConversationRepo(db)
	msgRepo := memory.NewMessageRepo(db)
	blobRepo := memory.NewBlobRepo(db)

	// Services
	userSvc := service.NewUserService(userRepo)
	convSvc := service.NewConversationService(convRepo, scheduler, hub)
	msgSvc := service.NewMessageService(msgRepo, blobRepo, scheduler, hub, cfg.DefaultPageSize)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"message": cfg.AppName,
			"version": "1.0.0",
			"docs":    "/docs",
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	// Swagger documentation
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	// API routes
	r.Route("/api/messaging", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Get("/", handleListUsers(userSvc))
			r.Post("/", handleCreateUser(userSvc))
			r.Get("/{userID}", handleGetUser(userSvc))
		})

		r.Route("/conversations", func(r chi.Router) {
			r.Get("/", handleListConversations(convSvc))
			r.Post("/", handleCreateConversation(convSvc))

			r.Route("/{conversationID}", func(r chi.Router) {
				r.Get("/", handleGetConversation(convSvc))
				r.Patch("/", handleUpdateConversation(convSvc))
				r.Delete("/", handleDeleteConversation(convSvc))
				r.Post("/leave", handleLeaveConversation(convSvc))
				r.Get("/messages", handleListMessages(msgSvc))
				r.Post("/messages", handleCreateMessage(msgSvc, cfg.MaxUploadBytes))
			})
		})

		r.Route("/messages", func(r chi.Router) {
			r.Get("/search", handleSearchMessages(msgSvc))
			r.Put("/{messageID}", handleEditMessage(msgSvc))
			r.Delete("/{messageID}", handleDeleteMessage(msgSvc))
			r.Delete("/{messageID}/reactions", handleRemoveReaction())
		})

		r.Get("/uploads/{blobID}", handleGetUpload(blobRepo))
	})

	// WebSocket change feed
	r.Get("/ws", ws.MakeHandler(hub, cfg.CORSOrigins))

	return r
}

// writeJSON is a small helper to send JSON responses.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// writeStoreError maps store errors to the gateway's status codes. The
// entity name keeps 404 bodies in the wire format the client expects
// ("Conversation not found", etc).
func writeStoreError(w http.ResponseWriter, err error, entity string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": entity + " not found"})
	case errors.Is(err, domain.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"mockchat/internal/domain"
	"mockchat/internal/service"
)

type conversationCreateRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type conversationUpdateRequest struct {
	Name *string `json:"name"`
	Type *string `json:"type"`
}

func handleListConversations(convSvc *service.ConversationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// userId is accepted for forward compatibility but does not filter.
		userID := r.URL.Query().Get("userId")
		convs, err := convSvc.List(r.Context(), userID)
		if err != nil {
			writeStoreError(w, err, "Conversation")
			return
		}
		writeJSON(w, http.StatusOK, convs)
	}
}

func handleCreateConversation(convSvc *service.ConversationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req conversationCreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
			return
		}

		conv, err := convSvc.Create(r.Context(), service.ConversationCreateInput{
			Name: req.Name,
			Type: domain.ConversationType(req.Type),
		})
		if err != nil {
			writeStoreError(w, err, "Conversation")
			return
		}
		writeJSON(w, http.StatusCreated, conv)
	}
}

func handleGetConversation(convSvc *service.ConversationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conv, err := convSvc.GetByID(r.Context(), chi.URLParam(r, "conversationID"))
		if err != nil {
			writeStoreError(w, err, "Conversation")
			return
		}
		writeJSON(w, http.StatusOK, conv)
	}
}

func handleUpdateConversation(convSvc *service.ConversationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req conversationUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
			return
		}

		patch := domain.ConversationPatch{Name: req.Name}
		if req.Type != nil {
			t := domain.ConversationType(*req.Type)
			patch.Type = &t
		}

		conv, err := convSvc.Update(r.Context(), chi.URLParam(r, "conversationID"), patch)
		if err != nil {
			writeStoreError(w, err, "Conversation")
			return
		}
		writeJSON(w, http.StatusOK, conv)
	}
}

func handleDeleteConversation(convSvc *service.ConversationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := convSvc.Delete(r.Context(), chi.URLParam(r, "conversationID")); err != nil {
			writeStoreError(w, err, "Conversation")
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

func handleLeaveConversation(convSvc *service.ConversationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := convSvc.Leave(r.Context(), chi.URLParam(r, "conversationID")); err != nil {
			writeStoreError(w, err, "Conversation")
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

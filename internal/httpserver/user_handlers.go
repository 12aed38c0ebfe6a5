package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"mockchat/internal/service"
)

type userCreateRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

func handleListUsers(userSvc *service.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := userSvc.List(r.Context())
		if err != nil {
			writeStoreError(w, err, "User")
			return
		}
		writeJSON(w, http.StatusOK, users)
	}
}

func handleCreateUser(userSvc *service.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req userCreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
			return
		}

		user, err := userSvc.CreateUser(r.Context(), service.UserCreateInput{
			Name:  req.Name,
			Phone: req.Phone,
		})
		if err != nil {
			writeStoreError(w, err, "User")
			return
		}
		writeJSON(w, http.StatusCreated, user)
	}
}

func handleGetUser(userSvc *service.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := userSvc.GetByID(r.Context(), chi.URLParam(r, "userID"))
		if err != nil {
			writeStoreError(w, err, "User")
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}

package httpserver

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"mockchat/internal/service"
)

type messageCreateRequest struct {
	Content  string `json:"content"`
	Type     string `json:"type"`
	SenderID string `json:"senderId"`
}

type messageUpdateRequest struct {
	Content string `json:"content"`
}

type removeReactionRequest struct {
	Emoji  string `json:"emoji"`
	UserID string `json:"userId"`
}

func handleListMessages(msgSvc *service.MessageService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := queryInt(r, "limit", 0)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid limit"})
			return
		}
		offset, err := queryInt(r, "offset", 0)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid offset"})
			return
		}

		msgs, err := msgSvc.List(r.Context(), chi.URLParam(r, "conversationID"), limit, offset)
		if err != nil {
			writeStoreError(w, err, "Conversation")
			return
		}
		writeJSON(w, http.StatusOK, msgs)
	}
}

func handleCreateMessage(msgSvc *service.MessageService, maxUploadBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in := service.MessageCreateInput{
			ConversationID: chi.URLParam(r, "conversationID"),
		}

		if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "failed to parse multipart form"})
				return
			}
			in.SenderID = r.FormValue("senderId")
			in.Content = r.FormValue("content")

			uploads, err := readUploads(r)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
				return
			}
			in.Uploads = uploads
		} else {
			var req messageCreateRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
				return
			}
			in.SenderID = req.SenderID
			in.Content = req.Content
			// req.Type is ignored; the type is derived from attachments.
		}

		msg, err := msgSvc.Create(r.Context(), in)
		if err != nil {
			writeStoreError(w, err, "Message")
			return
		}
		writeJSON(w, http.StatusCreated, msg)
	}
}

// readUploads drains every "files" part of the multipart form into memory.
func readUploads(r *http.Request) ([]service.AttachmentUpload, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	var uploads []service.AttachmentUpload
	for _, header := range r.MultipartForm.File["files"] {
		f, err := header.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, service.AttachmentUpload{
			Name:        header.Filename,
			Size:        header.Size,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
		})
	}
	return uploads, nil
}

func handleEditMessage(msgSvc *service.MessageService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req messageUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
			return
		}

		msg, err := msgSvc.Edit(r.Context(), chi.URLParam(r, "messageID"), req.Content)
		if err != nil {
			writeStoreError(w, err, "Message")
			return
		}
		writeJSON(w, http.StatusOK, msg)
	}
}

func handleDeleteMessage(msgSvc *service.MessageService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := msgSvc.Delete(r.Context(), chi.URLParam(r, "messageID")); err != nil {
			writeStoreError(w, err, "Message")
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

func handleSearchMessages(msgSvc *service.MessageService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		conversationID := r.URL.Query().Get("conversationId")

		msgs, err := msgSvc.Search(r.Context(), q, conversationID)
		if err != nil {
			writeStoreError(w, err, "Message")
			return
		}
		writeJSON(w, http.StatusOK, msgs)
	}
}

// handleRemoveReaction acknowledges reaction removal. Reaction state lives
// in the client; the store does not track it.
func handleRemoveReaction() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req removeReactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}

package httpserver

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"mockchat/internal/domain"
)

// handleGetUpload serves attachment bytes from the in-memory blob store.
// Blobs disappear with the message that owns them.
func handleGetUpload(blobs domain.BlobRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blob, err := blobs.Get(r.Context(), chi.URLParam(r, "blobID"))
		if err != nil {
			writeStoreError(w, err, "File")
			return
		}

		contentType := blob.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Length", strconv.Itoa(len(blob.Data)))
		w.Header().Set("Content-Disposition", `inline; filename="`+blob.Name+`"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(blob.Data)
	}
}

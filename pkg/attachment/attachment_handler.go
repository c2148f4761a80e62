package attachment

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/simplespend/simplespend/internal/rest"
)

type AttachmentHandler struct {
	store *Store
}

func NewAttachmentHandler(store *Store) *AttachmentHandler {
	return &AttachmentHandler{store: store}
}

func (handler *AttachmentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	log.Trace("Uploading expense attachment")

	id, ok := attachmentID(w, r)
	if !ok {
		return
	}

	// Enforce a hard limit of 3MB on the request body
	r.Body = http.MaxBytesReader(w, r.Body, 3<<20)
	err := r.ParseMultipartForm(3 << 20)
	if err != nil {
		log.Debugf("File is too large: %v", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Image is too large",
			Details: "Maximum size is 3MB. Please try again with a smaller image.",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			return
		}
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()
	log.Debugf("Uploaded File: %+v\n", header.Filename)
	log.Debugf("File Size: %+v\n", header.Size)

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(fileBytes)
	}

	handler.store.Attach(id, Image{Data: fileBytes, ContentType: contentType})

	w.WriteHeader(http.StatusNoContent)
}

func (handler *AttachmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := attachmentID(w, r)
	if !ok {
		return
	}

	image, found := handler.store.Get(id)
	if !found {
		http.Error(w, "No attachment for this expense", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", image.ContentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(image.Data); err != nil {
		log.Errorf("failed to write attachment response: %v", err)
	}
}

func (handler *AttachmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := attachmentID(w, r)
	if !ok {
		return
	}

	handler.store.Forget(id)

	w.WriteHeader(http.StatusNoContent)
}

func attachmentID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		http.Error(w, "Invalid expense id", http.StatusBadRequest)
		return uuid.UUID{}, false
	}
	return id, true
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/ChristianBello1/hosting/internal/services"
)

// FileHandler handles HTTP requests for the per-client file manager.
type FileHandler struct {
	service services.FileServiceProvider
}

// NewFileHandler creates a new FileHandler.
func NewFileHandler(service services.FileServiceProvider) *FileHandler {
	return &FileHandler{service: service}
}

// List returns the entries of a directory in the client's site tree. The
// directory is taken from the "path" query parameter, defaulting to the root.
func (h *FileHandler) List(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientId")
	dirPath := r.URL.Query().Get("path")

	files, err := h.service.ListFiles(clientID, dirPath)
	if err != nil {
		log.Error().Err(err).Str("client_id", clientID).Str("path", dirPath).Msg("Failed to list files")
		respondError(w, http.StatusInternalServerError, "Failed to list files", err)
		return
	}
	respondJSON(w, http.StatusOK, files)
}

// ReadContent returns the content of one file.
func (h *FileHandler) ReadContent(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientId")
	filePath := r.URL.Query().Get("path")

	content, err := h.service.ReadFile(clientID, filePath)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondError(w, http.StatusNotFound, "File not found", nil)
			return
		}
		log.Error().Err(err).Str("client_id", clientID).Str("path", filePath).Msg("Failed to read file")
		respondError(w, http.StatusInternalServerError, "Failed to read file", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"content": content})
}

// WriteContent writes the content of one file.
func (h *FileHandler) WriteContent(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientId")
	var payload struct {
		Path    string `json:"path"`
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Path == "" {
		respondError(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.service.WriteFile(clientID, payload.Path, payload.Content); err != nil {
		log.Error().Err(err).Str("client_id", clientID).Str("path", payload.Path).Msg("Failed to write file")
		respondError(w, http.StatusInternalServerError, "Failed to write file", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "File saved"})
}

// CreateDirectory creates a directory in the client's site tree.
func (h *FileHandler) CreateDirectory(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientId")
	var payload struct {
		Path string `json:"path"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Path == "" {
		respondError(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.service.CreateDirectory(clientID, payload.Path); err != nil {
		log.Error().Err(err).Str("client_id", clientID).Str("path", payload.Path).Msg("Failed to create directory")
		respondError(w, http.StatusInternalServerError, "Failed to create directory", err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"message": "Directory created"})
}

// Delete removes a file or directory.
func (h *FileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientId")
	filePath := r.URL.Query().Get("path")
	if filePath == "" {
		respondError(w, http.StatusBadRequest, "path is required", nil)
		return
	}

	if err := h.service.Delete(clientID, filePath); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondError(w, http.StatusNotFound, "File not found", nil)
			return
		}
		log.Error().Err(err).Str("client_id", clientID).Str("path", filePath).Msg("Failed to delete file")
		respondError(w, http.StatusInternalServerError, "Failed to delete file", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Move renames a file or directory within the client's site tree.
func (h *FileHandler) Move(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientId")
	var payload struct {
		OldPath string `json:"oldPath"`
		NewPath string `json:"newPath"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.OldPath == "" || payload.NewPath == "" {
		respondError(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.service.Move(clientID, payload.OldPath, payload.NewPath); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondError(w, http.StatusNotFound, "File not found", nil)
			return
		}
		log.Error().Err(err).Str("client_id", clientID).Msg("Failed to move file")
		respondError(w, http.StatusInternalServerError, "Failed to move file", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "File moved"})
}

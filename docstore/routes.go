package docstore

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// maxBodyBytes caps a project document upload.
const maxBodyBytes = 16 << 20

// NewRouter builds the HTTP API:
//
//	GET  /health
//	GET  /projects?limit=N
//	POST /projects
//	GET  /projects/{id}
//	PUT  /projects/{id}
func NewRouter(cfg ServerConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware())
	r.Use(RecoveryMiddleware(cfg.Logger))
	r.Use(LoggingMiddleware(cfg.Logger))

	r.Get("/health", healthHandler(cfg))

	r.Route("/projects", func(r chi.Router) {
		r.Get("/", listHandler(cfg))
		r.Post("/", createHandler(cfg))
		r.Get("/{id}", getHandler(cfg))
		r.Put("/{id}", putHandler(cfg))
	})

	return r
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type listResponse struct {
	Projects []Summary `json:"projects"`
}

type saveResponse struct {
	ID string `json:"id"`
}

func healthHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: cfg.Version})
	}
}

func listHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := DefaultListLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				WriteError(w, http.StatusBadRequest, "limit must be a positive integer", "BAD_REQUEST")
				return
			}
			limit = n
		}

		projects, err := cfg.Store.List(r.Context(), limit)
		if err != nil {
			cfg.Logger.Warn("list projects failed", "error", err)
			WriteError(w, http.StatusInternalServerError, "failed to list projects", "INTERNAL_ERROR")
			return
		}
		WriteJSON(w, http.StatusOK, listResponse{Projects: projects})
	}
}

func createHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, ok := decodeDocument(w, r)
		if !ok {
			return
		}
		id, err := cfg.Store.Create(r.Context(), doc)
		if err != nil {
			cfg.Logger.Warn("create project failed", "error", err)
			WriteError(w, http.StatusInternalServerError, "failed to create project", "INTERNAL_ERROR")
			return
		}
		cfg.Logger.Info("project created", "project_id", id)
		WriteJSON(w, http.StatusCreated, saveResponse{ID: id})
	}
}

func getHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		doc, err := cfg.Store.Get(r.Context(), id)
		if errors.Is(err, ErrNotFound) {
			WriteError(w, http.StatusNotFound, "project not found", "NOT_FOUND")
			return
		}
		if err != nil {
			cfg.Logger.Warn("get project failed", "project_id", id, "error", err)
			WriteError(w, http.StatusInternalServerError, "failed to load project", "INTERNAL_ERROR")
			return
		}
		WriteJSON(w, http.StatusOK, doc)
	}
}

func putHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		doc, ok := decodeDocument(w, r)
		if !ok {
			return
		}
		created, err := cfg.Store.Merge(r.Context(), id, doc)
		if err != nil {
			cfg.Logger.Warn("save project failed", "project_id", id, "error", err)
			WriteError(w, http.StatusInternalServerError, "failed to save project", "INTERNAL_ERROR")
			return
		}
		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		cfg.Logger.Info("project saved", "project_id", id, "created", created)
		WriteJSON(w, status, saveResponse{ID: id})
	}
}

// decodeDocument reads a JSON object body, answering 400 when it is not one.
func decodeDocument(w http.ResponseWriter, r *http.Request) (Document, bool) {
	var doc Document
	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&doc)
	if err != nil || doc == nil {
		WriteError(w, http.StatusBadRequest, ErrInvalidDocument.Error(), "BAD_REQUEST")
		return nil, false
	}
	return doc, true
}

// Package lesson contains all HTTP handlers for the Lesson resource.
//
// HANDLER PATTERN USED HERE — THE CLOSURE / FACTORY PATTERN:
// ────────────────────────────────────────────────────────────
// Go's router expects handler functions with the signature:
//
//	func(http.ResponseWriter, *http.Request)
//
// That signature has no room for extra parameters like a database.
// Each factory below accepts its dependencies (the storage backend),
// runs once at route-registration time, and returns the handler func
// that closes over them:
//
//	router.HandleFunc("POST /api/lessons", lesson.New(storage))
package lesson

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mongolearn/lessons-api/internal/odm"
	"github.com/mongolearn/lessons-api/internal/storage"
	"github.com/mongolearn/lessons-api/internal/types"
	"github.com/mongolearn/lessons-api/internal/utils/response"
)

// New handles POST /api/lessons.
//
// Request body (JSON):
//
//	{ "title": "Intro to Schemas", "url": "https://…", "keywords": ["odm"] }
//
// Success response (201 Created):
//
//	{ "id": "66a1f0c2e4b0a7d93c2f1b04" }
//
// Error responses:
//
//	400 Bad Request — empty body, malformed JSON, or failed validation
//	500 Internal    — storage error
func New(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a lesson")

		var lesson types.Lesson
		err := json.NewDecoder(r.Body).Decode(&lesson)
		if errors.Is(err, io.EOF) {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("request body is empty")))
			return
		}
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		// Schema validation runs before anything touches storage.
		if err := types.LessonSchema.Validate(&lesson); err != nil {
			response.WriteError(w, err)
			return
		}

		id, err := store.CreateLesson(r.Context(), lesson)
		if err != nil {
			slog.Error("error creating lesson", slog.String("error", err.Error()))
			response.WriteError(w, err)
			return
		}

		slog.Info("lesson created", slog.String("id", id))
		response.WriteJSON(w, http.StatusCreated, map[string]string{"id": id})
	}
}

// GetList handles GET /api/lessons.
//
// Optional query parameters:
//
//	keyword — only lessons tagged with this keyword
//	limit   — cap the number of results
//	skip    — offset into the result set
//
// Returns an empty array [] (not null) when nothing matches.
func GetList(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting lessons")

		q := odm.NewQuery().Sort("created_at", odm.Desc)
		if keyword := r.URL.Query().Get("keyword"); keyword != "" {
			q.Where("keywords", odm.OpEq, keyword)
		}
		if limit, err := parseCount(r.URL.Query().Get("limit")); err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		} else if limit > 0 {
			q.Limit(limit)
		}
		if skip, err := parseCount(r.URL.Query().Get("skip")); err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		} else if skip > 0 {
			q.Skip(skip)
		}

		lessons, err := store.GetLessons(r.Context(), q)
		if err != nil {
			slog.Error("error getting lessons", slog.String("error", err.Error()))
			response.WriteError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, lessons)
	}
}

// GetByID handles GET /api/lessons/{id}.
//
// Error responses:
//
//	400 Bad Request — the id cannot be parsed by the storage backend
//	404 Not Found   — no lesson has this id
func GetByID(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("getting a lesson", slog.String("id", id))

		lesson, err := store.GetLessonByID(r.Context(), id)
		if err != nil {
			slog.Error("error getting lesson",
				slog.String("id", id),
				slog.String("error", err.Error()))
			response.WriteError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, lesson)
	}
}

// Update handles PUT /api/lessons/{id}.
// Replaces ALL stored fields; the same validation rules as creation apply.
// Responds with the updated lesson as stored.
func Update(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("updating a lesson", slog.String("id", id))

		var lesson types.Lesson
		err := json.NewDecoder(r.Body).Decode(&lesson)
		if errors.Is(err, io.EOF) {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("request body is empty")))
			return
		}
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		if err := types.LessonSchema.Validate(&lesson); err != nil {
			response.WriteError(w, err)
			return
		}

		updated, err := store.UpdateLessonByID(r.Context(), id, lesson)
		if err != nil {
			slog.Error("error updating lesson",
				slog.String("id", id),
				slog.String("error", err.Error()))
			response.WriteError(w, err)
			return
		}

		slog.Info("lesson updated", slog.String("id", id))
		response.WriteJSON(w, http.StatusOK, updated)
	}
}

// Delete handles DELETE /api/lessons/{id}.
//
// Success response (200 OK):
//
//	{ "status": "deleted" }
func Delete(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("deleting a lesson", slog.String("id", id))

		if err := store.DeleteLessonByID(r.Context(), id); err != nil {
			slog.Error("error deleting lesson",
				slog.String("id", id),
				slog.String("error", err.Error()))
			response.WriteError(w, err)
			return
		}

		slog.Info("lesson deleted", slog.String("id", id))
		response.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

// parseCount parses a non-negative query parameter; "" means absent.
func parseCount(raw string) (int64, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 0 {
		return 0, errors.New("limit and skip must be non-negative integers")
	}
	return n, nil
}

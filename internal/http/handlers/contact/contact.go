// Package contact contains all HTTP handlers for the Contact resource.
//
// Contacts are the one resource with a virtual attribute: the stored
// fields are first_name and last_name, but the API also speaks full_name.
// Responses always include the computed full_name; create and update
// accept full_name in place of the stored pair, routed through the
// schema's virtual setter.
package contact

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

// contactRequest is the inbound shape: every stored field plus the
// full_name virtual.
type contactRequest struct {
	types.Contact
	FullName string `json:"full_name"`
}

// contactView is the outbound shape: the stored document plus the
// computed full_name.
type contactView struct {
	types.Contact
	FullName string `json:"full_name"`
}

// render evaluates the schema's virtuals against the stored document and
// merges them into the API view.
func render(c types.Contact) contactView {
	virtuals := types.ContactSchema.ApplyVirtuals(&c)
	full, _ := virtuals[types.VirtualFullName].(string)
	return contactView{Contact: c, FullName: full}
}

func renderList(contacts []types.Contact) []contactView {
	views := make([]contactView, 0, len(contacts))
	for _, c := range contacts {
		views = append(views, render(c))
	}
	return views
}

// decode reads the request body into a Contact, applying the full_name
// virtual setter when the stored name fields were not supplied directly.
func decode(r *http.Request) (types.Contact, error) {
	var req contactRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if errors.Is(err, io.EOF) {
		return types.Contact{}, errors.New("request body is empty")
	}
	if err != nil {
		return types.Contact{}, err
	}

	contact := req.Contact
	if req.FullName != "" && req.FirstName == "" && req.LastName == "" {
		if err := types.ContactSchema.SetVirtual(&contact, types.VirtualFullName, req.FullName); err != nil {
			return types.Contact{}, err
		}
	}
	return contact, nil
}

// New handles POST /api/contacts.
//
// Request body (JSON) — either the stored pair:
//
//	{ "first_name": "Rutherford", "last_name": "Hayes", "age": 54, ... }
//
// or the virtual:
//
//	{ "full_name": "Rutherford Hayes", "age": 54, ... }
//
// Success response (201 Created):  { "id": "..." }
func New(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a contact")

		contact, err := decode(r)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		if err := types.ContactSchema.Validate(&contact); err != nil {
			response.WriteError(w, err)
			return
		}

		id, err := store.CreateContact(r.Context(), contact)
		if err != nil {
			slog.Error("error creating contact", slog.String("error", err.Error()))
			response.WriteError(w, err)
			return
		}

		slog.Info("contact created", slog.String("id", id))
		response.WriteJSON(w, http.StatusCreated, map[string]string{"id": id})
	}
}

// GetList handles GET /api/contacts.
//
// Optional query parameters:
//
//	party   — exact party match
//	min_age — contacts at least this old
func GetList(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting contacts")

		q := odm.NewQuery().Sort("last_name", odm.Asc)
		if party := r.URL.Query().Get("party"); party != "" {
			q.Where("party", odm.OpEq, party)
		}
		if raw := r.URL.Query().Get("min_age"); raw != "" {
			minAge, err := strconv.Atoi(raw)
			if err != nil || minAge < 0 {
				response.WriteJSON(w, http.StatusBadRequest,
					response.GeneralError(errors.New("min_age must be a non-negative integer")))
				return
			}
			q.Where("age", odm.OpGte, minAge)
		}

		contacts, err := store.GetContacts(r.Context(), q)
		if err != nil {
			slog.Error("error getting contacts", slog.String("error", err.Error()))
			response.WriteError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, renderList(contacts))
	}
}

// GetByID handles GET /api/contacts/{id}.
func GetByID(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("getting a contact", slog.String("id", id))

		contact, err := store.GetContactByID(r.Context(), id)
		if err != nil {
			slog.Error("error getting contact",
				slog.String("id", id),
				slog.String("error", err.Error()))
			response.WriteError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, render(contact))
	}
}

// Update handles PUT /api/contacts/{id}.
// Replaces ALL stored fields; accepts full_name like New does.
func Update(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("updating a contact", slog.String("id", id))

		contact, err := decode(r)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		if err := types.ContactSchema.Validate(&contact); err != nil {
			response.WriteError(w, err)
			return
		}

		updated, err := store.UpdateContactByID(r.Context(), id, contact)
		if err != nil {
			slog.Error("error updating contact",
				slog.String("id", id),
				slog.String("error", err.Error()))
			response.WriteError(w, err)
			return
		}

		slog.Info("contact updated", slog.String("id", id))
		response.WriteJSON(w, http.StatusOK, render(updated))
	}
}

// Delete handles DELETE /api/contacts/{id}.
func Delete(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("deleting a contact", slog.String("id", id))

		if err := store.DeleteContactByID(r.Context(), id); err != nil {
			slog.Error("error deleting contact",
				slog.String("id", id),
				slog.String("error", err.Error()))
			response.WriteError(w, err)
			return
		}

		slog.Info("contact deleted", slog.String("id", id))
		response.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

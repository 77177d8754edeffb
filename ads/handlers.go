package ads

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/user/adboard-go/apperror"
	"github.com/user/adboard-go/auth"
	"github.com/user/adboard-go/validation"
)

// AdHandlers provides the HTTP handlers for advertisement endpoints.
type AdHandlers struct {
	service *AdService
}

// NewAdHandlers creates new AdHandlers.
func NewAdHandlers(service *AdService) *AdHandlers {
	return &AdHandlers{service: service}
}

// adID extracts the numeric ad ID from the URL. A non-numeric id does not
// identify any advertisement, so it is reported as not found.
func adID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return 0, apperror.NewNotFoundError("Advertisement not found", nil)
	}
	return id, nil
}

// callerID extracts the authenticated user from the request context.
func callerID(r *http.Request) (int, error) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		return 0, apperror.NewAuthError("Authentication required", nil)
	}
	return userID, nil
}

// HandleCreate handles POST /api/ads.
func (h *AdHandlers) HandleCreate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		var req CreateRequest
		if err := validation.Decode(r, &req); err != nil {
			auth.WriteError(w, r, err)
			return
		}
		defer r.Body.Close()

		if err := validation.Check(req); err != nil {
			auth.WriteError(w, r, err)
			return
		}

		resp, err := h.service.Create(r.Context(), req, userID)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		auth.WriteJSON(w, http.StatusOK, resp)
	}
}

// HandleGet handles GET /api/ads/{id}.
func (h *AdHandlers) HandleGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := adID(r)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		resp, err := h.service.Get(r.Context(), id)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		auth.WriteJSON(w, http.StatusOK, resp)
	}
}

// HandleUpdate handles PATCH /api/ads/{id}.
func (h *AdHandlers) HandleUpdate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		id, err := adID(r)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		var req UpdateRequest
		if err := validation.Decode(r, &req); err != nil {
			auth.WriteError(w, r, err)
			return
		}
		defer r.Body.Close()

		if err := validation.Check(req); err != nil {
			auth.WriteError(w, r, err)
			return
		}

		resp, err := h.service.Update(r.Context(), id, req, userID)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		auth.WriteJSON(w, http.StatusOK, resp)
	}
}

// HandleDelete handles DELETE /api/ads/{id}.
func (h *AdHandlers) HandleDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		id, err := adID(r)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		if err := h.service.Delete(r.Context(), id, userID); err != nil {
			auth.WriteError(w, r, err)
			return
		}

		auth.WriteJSON(w, http.StatusOK, DeleteResponse{Status: "deleted"})
	}
}

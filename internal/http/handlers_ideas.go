package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/learnwithjason/stytch-b2b-saas/internal/data"
	apperrors "github.com/learnwithjason/stytch-b2b-saas/internal/errors"
	"github.com/learnwithjason/stytch-b2b-saas/internal/service"
)

// IdeaHandlers implements the idea CRUD routes. All of them sit behind the
// permission gate, so a session is always present in the context.
type IdeaHandlers struct {
	Ideas  *service.IdeaService
	Logger *slog.Logger
}

// List returns every idea for the member's organization.
func (h *IdeaHandlers) List(w http.ResponseWriter, r *http.Request) {
	session, _ := SessionFromContext(r.Context())

	ideas, err := h.Ideas.List(r.Context(), session.OrgID)
	if err != nil {
		h.Logger.Error("failed to list ideas", "org_id", session.OrgID, "err", err)
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "internal", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, ideas)
}

// Create stores a new idea credited to the current member.
func (h *IdeaHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Text string `json:"text"`
	}
	if !DecodeJSON(w, r, &body) {
		return
	}

	session, _ := SessionFromContext(r.Context())

	idea, err := h.Ideas.Create(r.Context(), session.OrgID, session.MemberID, body.Text)
	if err != nil {
		if apperrors.IsValidation(err) {
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation", Err: err})
			return
		}
		h.Logger.Error("failed to create idea", "org_id", session.OrgID, "err", err)
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "internal", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, idea)
}

// Delete removes an idea and echoes the deleted record.
func (h *IdeaHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	var body struct {
		IdeaID string `json:"ideaId"`
	}
	if !DecodeJSON(w, r, &body) {
		return
	}

	idea, err := h.Ideas.Delete(r.Context(), body.IdeaID)
	if err != nil {
		if errors.Is(err, data.ErrIdeaNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: err})
			return
		}
		h.Logger.Error("failed to delete idea", "idea_id", body.IdeaID, "err", err)
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "internal", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, idea)
}

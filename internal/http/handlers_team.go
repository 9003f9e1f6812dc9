package httpx

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/learnwithjason/stytch-b2b-saas/internal/service"
)

// TeamHandlers implements the organization administration routes. Reads
// return the provider's objects; settings writes are form posts that bounce
// the browser back to the dashboard page they came from.
type TeamHandlers struct {
	Team   *service.TeamService
	AppURL string
	Logger *slog.Logger
}

func (h *TeamHandlers) appPath(path string) string {
	u, err := url.Parse(h.AppURL)
	if err != nil {
		return path
	}
	u.Path = path
	return u.String()
}

// ListMembers returns the organization's members plus invite availability.
func (h *TeamHandlers) ListMembers(w http.ResponseWriter, r *http.Request) {
	session, _ := SessionFromContext(r.Context())

	members, err := h.Team.ListMembers(r.Context(), session.OrgID, session.JWT)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, members)
}

// InviteMember emails an organization invite to the given address.
func (h *TeamHandlers) InviteMember(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	if !DecodeJSON(w, r, &body) {
		return
	}

	session, _ := SessionFromContext(r.Context())

	member, err := h.Team.InviteMember(r.Context(), session.OrgID, body.Email, session.JWT)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, member)
}

// GetSettings returns the raw organization record.
func (h *TeamHandlers) GetSettings(w http.ResponseWriter, r *http.Request) {
	session, _ := SessionFromContext(r.Context())

	org, err := h.Team.GetSettings(r.Context(), session.OrgID)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, org)
}

// UpdateSettings applies the team-settings form and sends the browser back
// to the settings page.
func (h *TeamHandlers) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_form", Err: err})
		return
	}

	session, _ := SessionFromContext(r.Context())

	input := service.TeamSettingsInput{
		EmailInvites:         r.FormValue("email_invites") != "",
		AllowedAuthMethods:   r.Form["allowed_auth_methods"],
		EmailAllowedDomains:  r.FormValue("email_allowed_domains"),
		EmailJITProvisioning: r.FormValue("email_jit_provisioning") != "",
	}

	if _, err := h.Team.UpdateSettings(r.Context(), session.OrgID, input, session.JWT); err != nil {
		writeUpstreamError(w, err)
		return
	}

	http.Redirect(w, r, h.appPath("/dashboard/team-settings"), http.StatusSeeOther)
}

// GetAccount returns the current member's provider record.
func (h *TeamHandlers) GetAccount(w http.ResponseWriter, r *http.Request) {
	session, _ := SessionFromContext(r.Context())

	member, err := h.Team.GetAccount(r.Context(), session.OrgID, session.MemberID)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, member)
}

// UpdateAccount renames the member and sends the browser back to the
// account page.
func (h *TeamHandlers) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_form", Err: err})
		return
	}

	session, _ := SessionFromContext(r.Context())

	if _, err := h.Team.UpdateAccountName(r.Context(), session.OrgID, session.MemberID, r.FormValue("name"), session.JWT); err != nil {
		writeUpstreamError(w, err)
		return
	}

	http.Redirect(w, r, h.appPath("/dashboard/account"), http.StatusSeeOther)
}

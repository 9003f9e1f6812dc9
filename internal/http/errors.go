package httpx

import (
	"errors"
	"net/http"

	domainauth "github.com/learnwithjason/stytch-b2b-saas/internal/domain/auth"
	apperrors "github.com/learnwithjason/stytch-b2b-saas/internal/errors"
)

// writeUpstreamError relays a provider failure verbatim (same status, same
// body) so the client sees exactly what the provider said. Anything else is
// an internal error.
func writeUpstreamError(w http.ResponseWriter, err error) {
	var pe *domainauth.ProviderError
	if errors.As(err, &pe) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(pe.StatusCode)
		_, _ = w.Write(pe.Body)
		return
	}

	if apperrors.IsValidation(err) {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation", Err: err})
		return
	}

	WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "internal", Err: err})
}

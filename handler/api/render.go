package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pandodao/passkey-wallet/core"
)

type errorBody struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Balance  string `json:"balance,omitempty"`
	Required string `json:"required,omitempty"`
}

func renderJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) renderError(w http.ResponseWriter, err error) {
	status, body := http.StatusInternalServerError, errorBody{Code: "internal", Message: err.Error()}

	var insufficient *core.InsufficientFundsError
	switch {
	case errors.Is(err, core.ErrNotAuthenticated):
		status, body.Code = http.StatusUnauthorized, "not_authenticated"
	case errors.Is(err, core.ErrUnsupportedDevice):
		status, body.Code = http.StatusPreconditionFailed, "unsupported_device"
	case errors.Is(err, core.ErrInvalidArgument):
		status, body.Code = http.StatusBadRequest, "invalid_argument"
	case errors.As(err, &insufficient):
		status, body.Code = http.StatusUnprocessableEntity, "insufficient_funds"
		body.Balance = core.FormatEther(insufficient.Balance)
		body.Required = core.FormatEther(insufficient.Required)
	case core.IsUpstreamFailure(err):
		status, body.Code = http.StatusBadGateway, "upstream"
	default:
		s.logger.Error("unexpected error", "err", err)
	}

	renderJSON(w, status, map[string]errorBody{"error": body})
}

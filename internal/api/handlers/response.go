package handlers

import (
	"encoding/json"
	"net/http"

	errx "github.com/Cheertaboi/storefront-service/internal/core/error"
	logx "github.com/Cheertaboi/storefront-service/pkg/logger"
)

type errorBody struct {
	Error    string `json:"error"`
	Message  string `json:"message"`
	Redirect string `json:"redirect,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := errx.From(err)
	if appErr.Status >= http.StatusInternalServerError {
		logx.Error().Err(err).Str("path", r.URL.Path).Int("status", appErr.Status).Msg("request failed")
	}

	code := appErr.Code
	if code == "" {
		code = "internal_error"
	}
	writeJSON(w, appErr.Status, errorBody{
		Error:    code,
		Message:  appErr.Message,
		Redirect: appErr.Redirect,
	})
}

func invalidBody(w http.ResponseWriter) {
	writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid_body", Message: "Malformed request body"})
}

package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/pefman/duel-arena/internal/battle"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, errorBody(code, msg))
}

func errorBody(code int, msg string) map[string]any {
	return map[string]any{
		"error":   http.StatusText(code),
		"message": msg,
		"status":  code,
	}
}

// statusFor maps a service error to a status and a client-safe message.
// Internal failures are logged and reported without detail.
func statusFor(err error) (int, string) {
	var de *battle.Error
	if errors.As(err, &de) && de.Code != battle.CodeInternal {
		return de.Code.HTTPStatus(), de.Message
	}
	if de != nil {
		log.Printf("http: internal error: %s: %v", de.Message, de.Cause)
	} else {
		log.Printf("http: internal error: %v", err)
	}
	return http.StatusInternalServerError, "internal error"
}

func writeServiceError(w http.ResponseWriter, err error) {
	code, msg := statusFor(err)
	writeError(w, code, msg)
}

// withCORS sets permissive CORS headers for origin and answers preflights.
func withCORS(origin string) func(http.Handler) http.Handler {
	if origin == "" {
		origin = "*"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"

	"github.com/pocketbase/pocketbase/core"

	"quotebuilder/services"
)

type toastPayload struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// SetToast sets the HX-Trigger response header to show a toast notification
// on the client via HTMX. If an HX-Trigger header already exists, the toast
// payload is merged into the existing JSON object.
// It also sets a flash cookie so toasts survive regular (non-HTMX) redirects.
func SetToast(e *core.RequestEvent, toastType string, message string) {
	toast := toastPayload{Message: message, Type: toastType}

	trigger := map[string]any{}
	if existing := e.Response.Header().Get("HX-Trigger"); existing != "" {
		if err := json.Unmarshal([]byte(existing), &trigger); err != nil {
			log.Printf("toast: existing HX-Trigger is not valid JSON, overwriting: %v", err)
			trigger = map[string]any{}
		}
	}
	trigger["showToast"] = toast

	data, err := json.Marshal(trigger)
	if err != nil {
		log.Printf("toast: failed to marshal HX-Trigger JSON: %v", err)
		return
	}
	e.Response.Header().Set("HX-Trigger", string(data))

	// Also set a flash cookie for non-HTMX redirects (302) where HX-Trigger is lost
	if cookieVal, err := json.Marshal(toast); err == nil {
		http.SetCookie(e.Response, &http.Cookie{
			Name:     "flash_toast",
			Value:    url.QueryEscape(string(cookieVal)),
			Path:     "/",
			MaxAge:   10,
			HttpOnly: false, // JS needs to read it
			SameSite: http.SameSiteLaxMode,
		})
	}
}

// ErrorToast sets an error toast and prevents HTMX from swapping the error text into the DOM.
// It sets HX-Reswap: none so the response body is ignored by HTMX, while the HX-Trigger
// header still fires the toast event.
func ErrorToast(e *core.RequestEvent, statusCode int, message string) error {
	SetToast(e, "error", message)
	e.Response.Header().Set("HX-Reswap", "none")
	return e.String(statusCode, message)
}

// ErrorBody is the JSON error response of the quote API.
type ErrorBody struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// respondError maps err to a status code, raises an error toast and writes
// an ErrorBody.
func respondError(e *core.RequestEvent, err error) error {
	kind := services.KindOf(err)
	status := statusForError(err)
	message := userMessage(kind, err)

	if status >= http.StatusInternalServerError {
		log.Printf("handlers: %s: %v", e.Request.URL.Path, err)
	}

	SetToast(e, "error", message)
	e.Response.Header().Set("HX-Reswap", "none")

	body := ErrorBody{Error: kind.String(), Message: message}
	var verr *services.ValidationError
	if errors.As(err, &verr) && kind == services.KindValidation {
		body.Fields = verr.Fields
	}
	if errors.Is(err, sql.ErrNoRows) {
		body.Error = "not_found"
	}
	return e.JSON(status, body)
}

func statusForError(err error) int {
	if errors.Is(err, sql.ErrNoRows) {
		return http.StatusNotFound
	}
	switch services.KindOf(err) {
	case services.KindValidation, services.KindNoSelection:
		return http.StatusBadRequest
	case services.KindIndex:
		return http.StatusNotFound
	case services.KindConfirmation:
		return http.StatusConflict
	case services.KindFormat, services.KindEmpty:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func userMessage(kind services.Kind, err error) string {
	switch kind {
	case services.KindNoSelection:
		return "Select a product to remove."
	case services.KindConfirmation:
		return "Remove this product? Repeat the request with confirm=true."
	case services.KindEmpty:
		return "There are no products to export."
	case services.KindIO:
		return "Could not access the quote file."
	case services.KindInternal:
		if errors.Is(err, sql.ErrNoRows) {
			return "Quote not found."
		}
		return "Something went wrong."
	}
	return err.Error()
}

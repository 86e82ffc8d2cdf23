package services

import (
	"errors"
	"fmt"
	"net/http"

	"storefront/models"
)

// ErrorAlert maps any failure to the banner shown to the user. Server
// supplied message or title wins over the per-status text.
func ErrorAlert(tr *Translator, lang string, err error) models.Alert {
	return models.Banner(models.AlertError, ErrorMessage(tr, lang, err))
}

func ErrorMessage(tr *Translator, lang string, err error) string {
	if tr == nil {
		tr = NewTranslator("")
	}
	if errors.Is(err, models.ErrNetwork) {
		return tr.Message(lang, "errors.network", "Network error. Please check your connection.")
	}
	if errors.Is(err, models.ErrValidation) {
		return tr.Message(lang, "errors.validation", "Some fields are invalid.") + " " + err.Error()
	}

	var apiErr *models.APIError
	if !errors.As(err, &apiErr) {
		return tr.Message(lang, "errors.unknown", "Something went wrong. Please try again.")
	}
	if apiErr.Data.Message != "" {
		return apiErr.Data.Message
	}
	if apiErr.Data.Title != "" {
		return apiErr.Data.Title
	}

	switch apiErr.Status {
	case http.StatusBadRequest:
		return tr.Message(lang, "errors.badRequest", "Invalid request. Please check your input.")
	case http.StatusUnauthorized:
		return tr.Message(lang, "errors.unauthorized", "Unauthorized. Please log in again.")
	case http.StatusForbidden:
		return tr.Message(lang, "errors.forbidden", "You do not have permission to perform this action.")
	case http.StatusNotFound:
		return tr.Message(lang, "errors.notFound", "The requested resource was not found.")
	case http.StatusInternalServerError:
		return tr.Message(lang, "errors.server", "Server error. Please try again later.")
	}
	return fmt.Sprintf("%s (%d)", tr.Message(lang, "errors.unknown", "Something went wrong. Please try again."), apiErr.Status)
}

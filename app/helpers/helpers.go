package helpers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Rakhulsr/khayal-shop/app/models"
	"github.com/Rakhulsr/khayal-shop/app/services"
)

type contextKey string

const (
	ContextKeyUser    contextKey = "userObject"
	ContextKeyIsAdmin contextKey = "isAdmin"
	ContextKeyBearer  contextKey = "bearerAuth"
	CartCountKey      contextKey = "cart_count"

	maxBodyBytes = 1 << 20
)

func WithUser(ctx context.Context, user *models.User, isAdmin bool) context.Context {
	ctx = context.WithValue(ctx, ContextKeyUser, user)
	return context.WithValue(ctx, ContextKeyIsAdmin, isAdmin)
}

// CurrentUser returns the signed-in user, or nil for anonymous requests.
func CurrentUser(r *http.Request) *models.User {
	user, _ := r.Context().Value(ContextKeyUser).(*models.User)
	return user
}

func CurrentUserID(r *http.Request) string {
	if user := CurrentUser(r); user != nil {
		return user.ID
	}
	return ""
}

func IsAdmin(r *http.Request) bool {
	isAdmin, _ := r.Context().Value(ContextKeyIsAdmin).(bool)
	return isAdmin
}

func CartCount(r *http.Request) int {
	count, _ := r.Context().Value(CartCountKey).(int)
	return count
}

// DecodeJSON reads a JSON request body into v. Unknown fields are ignored.
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return &services.ValidationError{Message: "request body is required"}
	}
	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return &services.ValidationError{Message: "request body is required"}
		}
		return &services.ValidationError{Message: fmt.Sprintf("malformed request body: %v", err)}
	}
	return nil
}

// ErrorStatus maps a service error to its HTTP status.
func ErrorStatus(err error) int {
	var (
		authErr      *services.AuthRequiredError
		forbidden    *services.ForbiddenError
		validation   *services.ValidationError
		notFound     *services.NotFoundError
		unavailable  *services.BackendUnavailableError
		stockLimited *services.StockExceededError
	)

	switch {
	case errors.As(err, &authErr), errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.As(err, &forbidden):
		return http.StatusForbidden
	case errors.As(err, &validation):
		return http.StatusUnprocessableEntity
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &stockLimited):
		return http.StatusConflict
	case errors.Is(err, services.ErrEmptyCart):
		return http.StatusBadRequest
	case errors.As(err, &unavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// ErrorBody is the JSON body of every error response.
func ErrorBody(err error) map[string]interface{} {
	body := map[string]interface{}{"error": err.Error()}

	var validation *services.ValidationError
	if errors.As(err, &validation) && len(validation.Fields) > 0 {
		body["fields"] = FormatValidationErrors(validation.Fields)
	}

	var authErr *services.AuthRequiredError
	if errors.As(err, &authErr) {
		body["redirect"] = "/login"
	}

	if ErrorStatus(err) == http.StatusInternalServerError {
		body["error"] = "something went wrong, please try again"
	}
	return body
}

// FormatValidationErrors turns invalid field names into user-facing messages.
func FormatValidationErrors(fields []string) map[string]string {
	messages := make(map[string]string, len(fields))
	for _, field := range fields {
		messages[field] = fmt.Sprintf("%s is missing or invalid.", humanize(field))
	}
	return messages
}

// humanize turns "customerEmail" into "Customer email".
func humanize(field string) string {
	var b strings.Builder
	for i, r := range field {
		switch {
		case i == 0:
			b.WriteString(strings.ToUpper(string(r)))
		case r >= 'A' && r <= 'Z':
			b.WriteByte(' ')
			b.WriteString(strings.ToLower(string(r)))
		case r == '_':
			b.WriteByte(' ')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

package helpers

import (
	"net/http"
	"strings"

	"github.com/Rakhulsr/khayal-shop/app/models/other"
	"github.com/gorilla/csrf"
	"github.com/unrolled/render"
)

// PageData builds the per-request fields every response carries.
func PageData(r *http.Request) other.BasePageData {
	page := other.BasePageData{
		CartCount:     CartCount(r),
		CSRFToken:     csrf.Token(r),
		Message:       r.URL.Query().Get("message"),
		MessageStatus: r.URL.Query().Get("status"),
		CurrentPath:   r.URL.Path,
		IsAdminRoute:  strings.HasPrefix(r.URL.Path, "/admin"),
	}

	if user := CurrentUser(r); user != nil {
		page.IsLoggedIn = true
		page.User = &other.UserForTemplate{
			ID:          user.ID,
			DisplayName: user.DisplayName,
			Email:       user.Email,
			IsAdmin:     IsAdmin(r),
		}
	}
	return page
}

// GetBaseData adds the "page" entry to a response body. Keys already set by
// the handler win.
func GetBaseData(r *http.Request, pageSpecificData map[string]interface{}) map[string]interface{} {
	if pageSpecificData == nil {
		pageSpecificData = make(map[string]interface{})
	}

	page := PageData(r)
	if msg, ok := pageSpecificData["message"].(string); ok && msg != "" {
		page.Message = msg
	}
	if status, ok := pageSpecificData["messageStatus"].(string); ok && status != "" {
		page.MessageStatus = status
	}

	if _, exists := pageSpecificData["page"]; !exists {
		pageSpecificData["page"] = page
	}
	return pageSpecificData
}

// RenderJSON writes data with the base page fields added.
func RenderJSON(rd *render.Render, w http.ResponseWriter, r *http.Request, status int, data map[string]interface{}) {
	_ = rd.JSON(w, status, GetBaseData(r, data))
}

// RenderError writes err with the status ErrorStatus picks for it.
func RenderError(rd *render.Render, w http.ResponseWriter, r *http.Request, err error) {
	body := ErrorBody(err)
	body["messageStatus"] = "error"
	RenderJSON(rd, w, r, ErrorStatus(err), body)
}

// Package renderer configures the JSON renderer shared by all handlers.
package renderer

import (
	"github.com/unrolled/render"
)

// New returns a renderer that writes JSON. Development builds indent their
// output.
func New(isDevelopment bool) *render.Render {
	return render.New(render.Options{
		IndentJSON:      isDevelopment,
		JSONContentType: "application/json",
		Charset:         "UTF-8",
	})
}

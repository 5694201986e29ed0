package handler

import (
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
)

// render writes c to w. Once a template has started writing the status is
// already sent, so a failure can only be logged.
func render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	if err := c.Render(r.Context(), w); err != nil {
		slog.Error("render page", "path", r.URL.Path, "error", err)
	}
}

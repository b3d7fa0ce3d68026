package response

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrymomot/panelhouse/core/handler"
)

// templComponent is satisfied by templ.Component.
type templComponent interface {
	Render(ctx context.Context, w io.Writer) error
}

// Templ renders a templ component with 200 OK.
func Templ(component templComponent) handler.Response {
	return TemplWithStatus(component, http.StatusOK)
}

// TemplWithStatus renders a templ component with the given status.
// The component is buffered, so a render error leaves the writer untouched
// and the error handler can still produce a proper page.
func TemplWithStatus(component templComponent, status int) handler.Response {
	if component == nil {
		return nil
	}
	return func(w http.ResponseWriter, r *http.Request) error {
		var buf bytes.Buffer
		if err := component.Render(r.Context(), &buf); err != nil {
			return fmt.Errorf("templ component render error: %w", err)
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)
		_, err := w.Write(buf.Bytes())
		return err
	}
}

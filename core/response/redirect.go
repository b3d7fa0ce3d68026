package response

import (
	"net/http"

	"github.com/dmitrymomot/panelhouse/core/handler"
)

// HeaderHXRequest marks requests sent by htmx.
const (
	HeaderHXRequest  = "HX-Request"
	HeaderHXLocation = "HX-Location"
)

// Redirect creates a 302 Found redirect.
func Redirect(url string) handler.Response {
	return RedirectWithStatus(url, http.StatusFound)
}

// RedirectSeeOther creates a 303 redirect, the usual answer to a form POST.
func RedirectSeeOther(url string) handler.Response {
	return RedirectWithStatus(url, http.StatusSeeOther)
}

// RedirectWithStatus redirects with a 3xx status; other values fall back to 302.
// htmx requests receive HX-Location with 200 OK instead.
func RedirectWithStatus(url string, status int) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		if r.Header.Get(HeaderHXRequest) == "true" {
			w.Header().Set(HeaderHXLocation, url)
			w.WriteHeader(http.StatusOK)
			return nil
		}
		if status < 300 || status >= 400 {
			status = http.StatusFound
		}
		http.Redirect(w, r, url, status)
		return nil
	}
}

// RedirectBack redirects to the Referer when it points at this host,
// otherwise to fallback.
func RedirectBack(fallback string) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		target := fallback
		if ref := r.Referer(); ref != "" {
			if u, err := r.URL.Parse(ref); err == nil && (u.Host == "" || u.Host == r.Host) {
				target = u.RequestURI()
			}
		}
		return RedirectSeeOther(target)(w, r)
	}
}

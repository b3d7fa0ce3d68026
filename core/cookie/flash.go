package cookie

import (
	"encoding/json"
	"net/http"
)

const flashCookie = "ph_flash"

// FlashKind styles a flash message.
type FlashKind string

const (
	FlashSuccess FlashKind = "success"
	FlashError   FlashKind = "error"
	FlashInfo    FlashKind = "info"
)

// Flash is a message shown on the next page render and then discarded.
type Flash struct {
	Kind    FlashKind `json:"kind"`
	Message string    `json:"message"`
}

// SetFlash stores f for the next request.
func (m *Manager) SetFlash(w http.ResponseWriter, f Flash) error {
	data, err := json.Marshal(f)
	if err != nil {
		return err
	}
	return m.SetEncrypted(w, flashCookie, string(data))
}

// PopFlash returns the pending flash and expires it. Missing or unreadable
// flashes report false.
func (m *Manager) PopFlash(w http.ResponseWriter, r *http.Request) (Flash, bool) {
	raw, err := m.GetEncrypted(r, flashCookie)
	if err != nil {
		return Flash{}, false
	}
	m.Delete(w, flashCookie)

	var f Flash
	if err := json.Unmarshal([]byte(raw), &f); err != nil || f.Message == "" {
		return Flash{}, false
	}
	return f, true
}

// Package cookie manages plain, signed and encrypted HTTP cookies plus one-shot
// flash messages.
//
//	m, err := cookie.New([]string{os.Getenv("COOKIE_SECRET")}, cookie.WithSecure(true))
//
//	_ = m.SetEncrypted(w, "ph_session", token, cookie.WithMaxAge(86400))
//	token, err := m.GetEncrypted(r, "ph_session")
//
//	_ = m.SetFlash(w, cookie.Flash{Kind: cookie.FlashSuccess, Message: "Comic saved"})
//	flash, ok := m.PopFlash(w, r)
//
// Secrets are rotated by prepending the new one: values are always written with
// the first secret and read with any of them.
package cookie

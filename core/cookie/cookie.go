package cookie

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
	"time"

	"golang.org/x/crypto/hkdf"
)

const (
	// MaxSize is the largest Set-Cookie header browsers reliably accept.
	MaxSize = 4096

	minSecretLength = 32
)

type keyPair struct {
	sign []byte
	aead cipher.AEAD
}

// Manager reads and writes cookies with shared defaults and keys.
type Manager struct {
	keys     []keyPair
	defaults Options
}

// New creates a Manager. Every secret must be at least 32 characters; the first
// one writes, all of them read.
func New(secrets []string, opts ...Option) (*Manager, error) {
	secrets = slices.DeleteFunc(slices.Clone(secrets), func(s string) bool { return s == "" })
	if len(secrets) == 0 {
		return nil, ErrNoSecret
	}

	keys := make([]keyPair, 0, len(secrets))
	for i, secret := range secrets {
		if len(secret) < minSecretLength {
			return nil, fmt.Errorf("%w: secret %d has %d chars", ErrSecretTooShort, i, len(secret))
		}
		kp, err := deriveKeys(secret)
		if err != nil {
			return nil, err
		}
		keys = append(keys, kp)
	}

	defaults := applyOptions(Options{
		Path:     "/",
		HTTPOnly: true,
		SameSite: http.SameSiteLaxMode,
	}, opts)

	return &Manager{keys: keys, defaults: defaults}, nil
}

// deriveKeys splits one secret into independent signing and encryption keys.
func deriveKeys(secret string) (keyPair, error) {
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte("panelhouse cookie keys"))
	buf := make([]byte, 64)
	if _, err := io.ReadFull(r, buf); err != nil {
		return keyPair{}, fmt.Errorf("derive cookie keys: %w", err)
	}
	block, err := aes.NewCipher(buf[32:])
	if err != nil {
		return keyPair{}, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return keyPair{}, err
	}
	return keyPair{sign: buf[:32], aead: aead}, nil
}

// Set writes a plain cookie.
func (m *Manager) Set(w http.ResponseWriter, name, value string, opts ...Option) error {
	o := applyOptions(m.defaults, opts)
	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     o.Path,
		Domain:   o.Domain,
		MaxAge:   o.MaxAge,
		Secure:   o.Secure,
		HttpOnly: o.HTTPOnly,
		SameSite: o.SameSite,
	}
	if size := len(c.String()); size > MaxSize {
		return TooLargeError{Name: name, Size: size, Max: MaxSize}
	}
	http.SetCookie(w, c)
	return nil
}

// Get reads a plain cookie.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if errors.Is(err, http.ErrNoCookie) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return c.Value, nil
}

// Delete expires a cookie.
func (m *Manager) Delete(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Path:     m.defaults.Path,
		Domain:   m.defaults.Domain,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   m.defaults.Secure,
		HttpOnly: m.defaults.HTTPOnly,
		SameSite: m.defaults.SameSite,
	})
}

// SetSigned writes value with an HMAC so tampering is detected on read.
func (m *Manager) SetSigned(w http.ResponseWriter, name, value string, opts ...Option) error {
	return m.Set(w, name, m.sign(name, value), opts...)
}

// GetSigned reads and verifies a signed cookie.
func (m *Manager) GetSigned(r *http.Request, name string) (string, error) {
	raw, err := m.Get(r, name)
	if err != nil {
		return "", err
	}
	return m.verify(name, raw)
}

// SetEncrypted writes value encrypted with AES-GCM.
func (m *Manager) SetEncrypted(w http.ResponseWriter, name, value string, opts ...Option) error {
	sealed, err := m.encrypt(name, value)
	if err != nil {
		return err
	}
	return m.Set(w, name, sealed, opts...)
}

// GetEncrypted reads and decrypts a cookie.
func (m *Manager) GetEncrypted(r *http.Request, name string) (string, error) {
	raw, err := m.Get(r, name)
	if err != nil {
		return "", err
	}
	return m.decrypt(name, raw)
}

// The cookie name is mixed into the MAC and used as GCM additional data so a
// value cannot be replayed under another name.

func (m *Manager) sign(name, value string) string {
	mac := hmac.New(sha256.New, m.keys[0].sign)
	mac.Write([]byte(name + "=" + value))
	return base64.RawURLEncoding.EncodeToString([]byte(value)) + "." +
		base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func (m *Manager) verify(name, raw string) (string, error) {
	encoded, sig, ok := strings.Cut(raw, ".")
	if !ok {
		return "", ErrInvalidFormat
	}
	value, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", ErrInvalidFormat
	}
	want, err := base64.RawURLEncoding.DecodeString(sig)
	if err != nil {
		return "", ErrInvalidFormat
	}
	for _, k := range m.keys {
		mac := hmac.New(sha256.New, k.sign)
		mac.Write([]byte(name + "=" + string(value)))
		if hmac.Equal(want, mac.Sum(nil)) {
			return string(value), nil
		}
	}
	return "", ErrInvalidSignature
}

func (m *Manager) encrypt(name, value string) (string, error) {
	aead := m.keys[0].aead
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	sealed := aead.Seal(nonce, nonce, []byte(value), []byte(name))
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

func (m *Manager) decrypt(name, raw string) (string, error) {
	data, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return "", ErrInvalidFormat
	}
	for _, k := range m.keys {
		n := k.aead.NonceSize()
		if len(data) < n {
			return "", ErrInvalidFormat
		}
		plain, err := k.aead.Open(nil, data[:n], data[n:], []byte(name))
		if err == nil {
			return string(plain), nil
		}
	}
	return "", ErrDecryptionFailed
}

package cookie

import (
	"errors"
	"fmt"
)

var (
	ErrNoSecret         = errors.New("cookie: no secret provided")
	ErrSecretTooShort   = errors.New("cookie: secret must be at least 32 characters long")
	ErrNotFound         = errors.New("cookie: not found")
	ErrInvalidFormat    = errors.New("cookie: invalid format")
	ErrInvalidSignature = errors.New("cookie: signature verification failed")
	ErrDecryptionFailed = errors.New("cookie: decryption failed")
)

// TooLargeError reports a cookie exceeding the browser size limit.
type TooLargeError struct {
	Name string
	Size int
	Max  int
}

func (e TooLargeError) Error() string {
	return fmt.Sprintf("cookie %q size %d exceeds maximum %d bytes", e.Name, e.Size, e.Max)
}

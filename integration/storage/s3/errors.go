package s3

import "errors"

var (
	ErrInvalidConfig      = errors.New("s3: bucket and region are required")
	ErrInvalidPath        = errors.New("s3: invalid object key")
	ErrFileNotFound       = errors.New("s3: object not found")
	ErrBucketNotFound     = errors.New("s3: bucket not found")
	ErrAccessDenied       = errors.New("s3: access denied")
	ErrRequestTimeout     = errors.New("s3: request timeout")
	ErrServiceUnavailable = errors.New("s3: service unavailable")
	ErrInvalidObjectState = errors.New("s3: invalid object state")
	ErrOperationTimeout   = errors.New("s3: operation timed out")
	ErrOperationCanceled  = errors.New("s3: operation canceled")

	ErrEmptyFile       = errors.New("s3: empty upload")
	ErrFileTooLarge    = errors.New("s3: upload exceeds size limit")
	ErrUnsupportedType = errors.New("s3: unsupported file type")
	ErrInvalidPDF      = errors.New("s3: unreadable PDF")
)

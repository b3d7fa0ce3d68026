// Package s3 stores comic and blog assets in Amazon S3 or an S3-compatible
// service (MinIO, Spaces, R2) and resolves asset references to URLs.
//
// Manifests and posts returned by the content API carry object keys such as
// "comics/night-shift/p01-lo.webp". Resolve turns a key into a public URL, or a
// short-lived presigned GET URL when Presign is enabled. Absolute references
// (http, https, data) pass through untouched.
//
//	store, err := s3.New(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	url, err := store.Resolve(ctx, "comics/night-shift/issue-1.pdf")
//
// Upload sniffs the payload with mimetype, accepts images and PDFs only,
// counts PDF pages with pdfcpu and stores the object under a dated key:
//
//	asset, err := store.Upload(ctx, "Issue 1.pdf", file)
//	// asset.Key == "uploads/2026/10/issue-1-k3x9q2.pdf", asset.Pages == 24
//
// Errors are classified into package sentinels (ErrFileNotFound,
// ErrAccessDenied, ErrServiceUnavailable, ...) usable with errors.Is.
package s3

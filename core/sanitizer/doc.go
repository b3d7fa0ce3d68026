// Package sanitizer normalizes user input before validation.
//
// Sanitizers are listed in the sanitize tag, separated by commas, and run
// left to right. max:N truncates to N characters.
//
//	type AuthForm struct {
//		Name  string `sanitize:"single_line,max:80"`
//		Email string `sanitize:"email"`
//	}
//
//	err := sanitizer.SanitizeStruct(&f)
//
// String fields, string slices, pointers to strings and nested structs are
// handled. Unknown sanitizer names are ignored. Custom ones are added with
// RegisterSanitizer.
package sanitizer

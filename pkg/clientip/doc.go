// Package clientip extracts the client IP address from HTTP requests.
//
// Proxy headers are checked in order: CF-Connecting-IP, DO-Connecting-IP,
// the first address of X-Forwarded-For, X-Real-IP. RemoteAddr is used when
// none of them holds a valid address. Invalid and unspecified addresses
// (0.0.0.0, ::) are rejected and IPv6 addresses are returned in canonical form.
//
// Only deploy behind a proxy that overwrites these headers; otherwise clients
// can choose the address they are logged under.
package clientip

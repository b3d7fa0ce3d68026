// Package slug generates URL-safe slugs from arbitrary strings.
//
// Diacritics are folded with Unicode NFD decomposition (é → e), a few
// letters without a decomposition are transliterated (ß → ss, ø → o), and
// everything that is not an ASCII letter or digit becomes a separator.
//
//	slug.Make("Café & Restaurant")                  // "cafe-restaurant"
//	slug.Make("Straße in München")                  // "strasse-in-munchen"
//	slug.Make("Long article title", slug.MaxLength(12)) // "long-article"
//	slug.Make("Article", slug.WithSuffix(6))         // "article-k7x2f9"
//
// Valid reports whether a string already is a canonical slug and is used to
// validate comic and post identifiers taken from URLs and forms.
package slug

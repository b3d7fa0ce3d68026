// Package views renders the HTML pages as templ components. Components take
// plain view models filled by the web handlers and escape every value they
// print; only HTML produced by the markdown compiler is written raw.
package views

// Package static serves files from an fs.FS, typically an embed.FS compiled
// into the binary.
//
//	//go:embed assets
//	var assets embed.FS
//
//	r.Get("/assets/*", static.FS[*router.Context](assets,
//		static.WithSubFS("assets"),
//		static.WithFSStripPrefix("/assets"),
//		static.WithCacheControl("public, max-age=3600"),
//	))
//
// Directory listings are never served.
package static

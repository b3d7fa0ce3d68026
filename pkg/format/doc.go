// Package format decides which representation of a comic the reader renders
// for a given device: the single PDF, or an ordered image sequence at a
// device-appropriate quality tier.
//
//	sel := format.Select(manifest, profile)
//	switch sel.Kind {
//	case format.KindPDF:
//		// sel.Ref
//	case format.KindImages:
//		// sel.Refs, in page order
//	case format.KindUnavailable:
//		// nothing to render
//	}
//
// Selection is a pure function of its inputs. Incomplete manifests degrade to
// the other representation and, when nothing can be rendered, to an explicit
// unavailable result instead of an error.
//
// Images are absent only when the flat images and every quality tier are
// empty. A manifest with no PDF, no flat images and a single tier still
// selects that tier.
package format

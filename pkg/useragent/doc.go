// Package useragent classifies User-Agent strings by device type, operating
// system and browser.
//
//	ua := useragent.Parse(r.Header.Get("User-Agent"))
//	switch ua.DeviceType() {
//	case useragent.DeviceTypeMobile:
//	case useragent.DeviceTypeTablet:
//	}
//
// Parsing is keyword based. Unknown or empty strings yield DeviceTypeUnknown.
package useragent

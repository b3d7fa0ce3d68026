// Package qrcode renders PNG QR codes with medium error correction.
//
//	png, err := qrcode.Generate("https://panelhouse.example/comics/night-shift", 256)
//	uri, err := qrcode.GenerateBase64Image(url, 256) // data:image/png;base64,...
//
// Sizes outside [MinSize, MaxSize] are clamped; zero selects DefaultSize.
package qrcode

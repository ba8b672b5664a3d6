package storage

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

const maxImageWidth = 1600

// ReencodeWebP decodes an uploaded image (jpeg/png/gif), scales it down to
// maxImageWidth when wider, and re-encodes as webp. Keeps receipt and
// portfolio uploads small and uniform regardless of what clients send.
func ReencodeWebP(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := src.Bounds()
	if bounds.Dx() > maxImageWidth {
		scale := float64(maxImageWidth) / float64(bounds.Dx())
		dst := image.NewRGBA(image.Rect(
			0, 0,
			maxImageWidth,
			int(float64(bounds.Dy())*scale),
		))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		src = dst
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, src, &webp.Options{Quality: 85}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

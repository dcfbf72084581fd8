package service

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

const webpQuality = 85

// downscale keeps the aspect ratio and never enlarges.
func downscale(src image.Image, maxW int) image.Image {
	if maxW <= 0 || src.Bounds().Dx() <= maxW {
		return src
	}
	return imaging.Resize(src, maxW, 0, imaging.CatmullRom)
}

// encodePage decodes the rasterised page and re-encodes it in the wanted format.
func encodePage(raw []byte, maxW int, format string) (PreviewImage, error) {
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		return PreviewImage{}, fmt.Errorf("decode page: %w", err)
	}
	img = downscale(img, maxW)

	buf := new(bytes.Buffer)
	switch format {
	case FormatWebP:
		if err := webp.Encode(buf, img, &webp.Options{Lossless: false, Quality: webpQuality}); err != nil {
			return PreviewImage{}, fmt.Errorf("encode webp: %w", err)
		}
		return PreviewImage{Data: buf.Bytes(), MimeType: "image/webp"}, nil
	default:
		if err := png.Encode(buf, img); err != nil {
			return PreviewImage{}, fmt.Errorf("encode png: %w", err)
		}
		return PreviewImage{Data: buf.Bytes(), MimeType: "image/png"}, nil
	}
}

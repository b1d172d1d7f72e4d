package extract

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder

	_ "golang.org/x/image/webp" // register WEBP decoder

	"github.com/ppiankov/trustbuddy/internal/model"
)

// DefaultMaxPixels bounds decoded image size unless WithMaxPixels overrides it
const DefaultMaxPixels = 16_000_000

type decodeOptions struct {
	maxPixels int
}

// DecodeOption customizes DecodeImage
type DecodeOption func(*decodeOptions)

// WithMaxPixels rejects images whose width x height exceeds n. Zero or less keeps the default.
func WithMaxPixels(n int) DecodeOption {
	return func(o *decodeOptions) {
		if n > 0 {
			o.maxPixels = n
		}
	}
}

// Image is a decoded upload ready for scoring
type Image struct {
	Filename string
	Format   string // jpeg, png, webp
	Raster   *Raster
	Metadata Metadata
}

// DecodeImage decodes an uploaded image and reads its EXIF metadata.
// Fails with *model.ImageDecodeError when the bytes are not a supported image.
func DecodeImage(data []byte, filename string, opts ...DecodeOption) (*Image, error) {
	o := decodeOptions{maxPixels: DefaultMaxPixels}
	for _, opt := range opts {
		opt(&o)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, &model.ImageDecodeError{Filename: filename, Err: err}
	}
	if cfg.Width*cfg.Height > o.maxPixels {
		return nil, &model.ImageDecodeError{
			Filename: filename,
			Err:      fmt.Errorf("image too large: %dx%d exceeds %d pixels", cfg.Width, cfg.Height, o.maxPixels),
		}
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &model.ImageDecodeError{Filename: filename, Err: err}
	}

	raster := rasterFromImage(img, format)
	if raster.Width == 0 || raster.Height == 0 {
		return nil, &model.ImageDecodeError{Filename: filename, Err: errors.New("empty image")}
	}

	return &Image{
		Filename: filename,
		Format:   format,
		Raster:   raster,
		Metadata: ReadMetadata(data),
	}, nil
}

// Raster is a height x width x channels array of 8-bit intensities.
// Channels is 1 (grayscale or palette index), 3 (colour) or 4 (colour with
// alpha, or CMYK).
type Raster struct {
	Width    int
	Height   int
	Channels int
	Pix      []float64 // row-major, channels interleaved
	luma     []float64
}

// NewRaster wraps an interleaved pixel buffer
func NewRaster(width, height, channels int, pix []float64) *Raster {
	r := &Raster{Width: width, Height: height, Channels: channels, Pix: pix}
	r.luma = make([]float64, width*height)
	for i := range r.luma {
		sum := 0.0
		for c := 0; c < channels; c++ {
			sum += pix[i*channels+c]
		}
		r.luma[i] = sum / float64(channels)
	}
	return r
}

// channelLayout returns how many channels the raster keeps for a decoded
// image. Formats that store alpha keep it as a fourth channel even when every
// pixel is opaque; palette images keep their index plane.
func channelLayout(img image.Image, format string) int {
	switch m := img.(type) {
	case *image.Gray, *image.Gray16, *image.Paletted:
		return 1
	case *image.CMYK, *image.NYCbCrA:
		return 4
	case *image.NRGBA, *image.NRGBA64:
		// Lossless WEBP always decodes to NRGBA; only a real alpha channel counts
		if format == "webp" && m.(interface{ Opaque() bool }).Opaque() {
			return 3
		}
		return 4
	default:
		return 3
	}
}

// rasterFromImage converts a decoded image into a raster
func rasterFromImage(img image.Image, format string) *Raster {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	channels := channelLayout(img, format)
	pix := make([]float64, 0, w*h*channels)

	switch m := img.(type) {
	case *image.Paletted:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				pix = append(pix, float64(m.ColorIndexAt(x, y)))
			}
		}
		return NewRaster(w, h, channels, pix)
	case *image.CMYK:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := m.CMYKAt(x, y)
				pix = append(pix, float64(c.C), float64(c.M), float64(c.Y), float64(c.K))
			}
		}
		return NewRaster(w, h, channels, pix)
	}

	if channels == 1 {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				g := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
				pix = append(pix, float64(g.Y))
			}
		}
		return NewRaster(w, h, channels, pix)
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			pix = append(pix, float64(c.R), float64(c.G), float64(c.B))
			if channels == 4 {
				pix = append(pix, float64(c.A))
			}
		}
	}
	return NewRaster(w, h, channels, pix)
}

// IsColor reports whether the raster has RGB channels
func (r *Raster) IsColor() bool {
	return r.Channels >= 3
}

// At returns channel c of the pixel at column x, row y
func (r *Raster) At(x, y, c int) float64 {
	return r.Pix[(y*r.Width+x)*r.Channels+c]
}

// Channel returns a flattened copy of one channel
func (r *Raster) Channel(c int) []float64 {
	out := make([]float64, r.Width*r.Height)
	for i := range out {
		out[i] = r.Pix[i*r.Channels+c]
	}
	return out
}

// Luma returns the per-pixel mean over all channels, row-major
func (r *Raster) Luma() []float64 {
	return r.luma
}

// LumaAt returns the luminance at column x, row y
func (r *Raster) LumaAt(x, y int) float64 {
	return r.luma[y*r.Width+x]
}

package extract

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/color/palette"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/trustbuddy/internal/model"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecodeImage_RGB(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.Set(1, 2, color.RGBA{R: 30, G: 60, B: 90, A: 255})
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			if x != 1 || y != 2 {
				img.Set(x, y, color.RGBA{A: 255})
			}
		}
	}

	decoded, err := DecodeImage(encodePNG(t, img), "photo.png")
	require.NoError(t, err)

	assert.Equal(t, "photo.png", decoded.Filename)
	assert.Equal(t, "png", decoded.Format)
	r := decoded.Raster
	assert.Equal(t, 4, r.Width)
	assert.Equal(t, 3, r.Height)
	assert.Equal(t, 3, r.Channels)
	assert.True(t, r.IsColor())
	assert.Equal(t, 60.0, r.At(1, 2, 1))
	assert.Equal(t, 60.0, r.LumaAt(1, 2))
	assert.Len(t, r.Luma(), 12)
	assert.False(t, decoded.Metadata.HasCameraInfo())
}

func TestDecodeImage_Gray(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 5, 5))
	img.SetGray(2, 2, color.Gray{Y: 200})

	decoded, err := DecodeImage(encodePNG(t, img), "gray.png")
	require.NoError(t, err)
	assert.Equal(t, 1, decoded.Raster.Channels)
	assert.False(t, decoded.Raster.IsColor())
	assert.Equal(t, 200.0, decoded.Raster.LumaAt(2, 2))
}

func TestDecodeImage_Alpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 40, G: 80, B: 120, A: 0})

	decoded, err := DecodeImage(encodePNG(t, img), "alpha.png")
	require.NoError(t, err)
	r := decoded.Raster
	assert.Equal(t, 4, r.Channels)
	assert.Equal(t, []float64{40, 80, 120, 0}, r.Pix[:4])
	assert.Equal(t, 60.0, r.LumaAt(0, 0), "alpha takes part in the luma mean")
}

func TestDecodeImage_Invalid(t *testing.T) {
	for _, data := range [][]byte{nil, []byte("hello"), []byte("\x89PNG\r\n\x1a\ntruncated")} {
		_, err := DecodeImage(data, "bad.png")
		require.ErrorIs(t, err, model.ErrImageDecode)

		var decodeErr *model.ImageDecodeError
		require.ErrorAs(t, err, &decodeErr)
		assert.Equal(t, "bad.png", decodeErr.Filename)
	}
}

func TestRaster_Channel(t *testing.T) {
	r := NewRaster(2, 1, 3, []float64{1, 2, 3, 4, 5, 6})
	assert.Equal(t, []float64{1, 4}, r.Channel(0))
	assert.Equal(t, []float64{3, 6}, r.Channel(2))
	assert.Equal(t, []float64{2, 5}, r.Luma())
}

func TestReadMetadata_NoExif(t *testing.T) {
	md := ReadMetadata([]byte("plain bytes without any exif block"))
	assert.True(t, md.Readable)
	assert.Empty(t, md.Tags)
	assert.False(t, md.HasCameraInfo())
}

func TestMetadata_HasCameraInfo(t *testing.T) {
	tests := []struct {
		tags map[string]string
		want bool
	}{
		{nil, false},
		{map[string]string{"Software": "Editor"}, false},
		{map[string]string{"Make": "Canon"}, true},
		{map[string]string{"FNumber": "2.8"}, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Metadata{Readable: true, Tags: tt.tags}.HasCameraInfo(), "%v", tt.tags)
	}
}

// makeTIFF builds a little-endian TIFF block whose IFD0 holds one Make entry
func makeTIFF(maker string) []byte {
	value := append([]byte(maker), 0)
	le := binary.LittleEndian

	b := []byte{'I', 'I', 0x2A, 0x00}
	b = le.AppendUint32(b, 8)                  // IFD0 offset
	b = le.AppendUint16(b, 1)                  // entry count
	b = le.AppendUint16(b, 0x010F)             // Make
	b = le.AppendUint16(b, 2)                  // ASCII
	b = le.AppendUint32(b, uint32(len(value))) // count
	b = le.AppendUint32(b, 26)                 // value offset
	b = le.AppendUint32(b, 0)                  // no next IFD
	return append(b, value...)
}

// jpegWithExif encodes a small JPEG and inserts an APP1 Exif segment after SOI
func jpegWithExif(t *testing.T, tiff []byte) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 30), G: uint8(y * 30), B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	encoded := buf.Bytes()
	require.Equal(t, []byte{0xFF, 0xD8}, encoded[:2])

	payload := append([]byte("Exif\x00\x00"), tiff...)
	app1 := []byte{0xFF, 0xE1}
	app1 = binary.BigEndian.AppendUint16(app1, uint16(len(payload)+2))
	app1 = append(app1, payload...)

	out := append([]byte{}, encoded[:2]...)
	out = append(out, app1...)
	return append(out, encoded[2:]...)
}

func TestReadMetadata_CameraExif(t *testing.T) {
	data := jpegWithExif(t, makeTIFF("Canon"))

	md := ReadMetadata(data)
	require.True(t, md.Readable, "error: %s", md.Error)
	assert.Equal(t, "Canon", md.Tags["Make"])
	assert.True(t, md.HasCameraInfo())

	decoded, err := DecodeImage(data, "IMG_0001.JPG")
	require.NoError(t, err)
	assert.Equal(t, "jpeg", decoded.Format)
	assert.Equal(t, 3, decoded.Raster.Channels)
	assert.True(t, decoded.Metadata.HasCameraInfo())
}

func TestReadMetadata_CorruptExif(t *testing.T) {
	tiff := makeTIFF("Canon")
	binary.LittleEndian.PutUint32(tiff[4:8], 0x00FFFFFF) // IFD0 far past the end

	md := ReadMetadata(jpegWithExif(t, tiff))
	assert.False(t, md.Readable)
	assert.NotEmpty(t, md.Error)
}

func TestDecodeImage_MaxPixels(t *testing.T) {
	data := encodePNG(t, image.NewRGBA(image.Rect(0, 0, 20, 20)))

	_, err := DecodeImage(data, "big.png", WithMaxPixels(399))
	require.ErrorIs(t, err, model.ErrImageDecode)
	assert.Contains(t, err.Error(), "exceeds 399 pixels")

	_, err = DecodeImage(data, "big.png", WithMaxPixels(400))
	assert.NoError(t, err)

	_, err = DecodeImage(data, "big.png", WithMaxPixels(0))
	assert.NoError(t, err, "non-positive limit keeps the default")
}

func TestDecodeImage_Paletted(t *testing.T) {
	img := image.NewPaletted(image.Rect(0, 0, 3, 2), palette.Plan9)
	img.SetColorIndex(1, 1, 200)

	decoded, err := DecodeImage(encodePNG(t, img), "palette.png")
	require.NoError(t, err)
	r := decoded.Raster
	assert.Equal(t, 1, r.Channels, "palette images keep the index plane")
	assert.Equal(t, 200.0, r.LumaAt(1, 1))
	assert.Equal(t, 0.0, r.LumaAt(0, 0))
}

func TestChannelLayout(t *testing.T) {
	opaque := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for i := 3; i < len(opaque.Pix); i += 4 {
		opaque.Pix[i] = 255
	}
	rect := image.Rect(0, 0, 2, 2)

	tests := []struct {
		name   string
		img    image.Image
		format string
		want   int
	}{
		{"gray", image.NewGray(rect), "png", 1},
		{"gray16", image.NewGray16(rect), "png", 1},
		{"palette", image.NewPaletted(rect, palette.Plan9), "png", 1},
		{"rgb", image.NewRGBA(rect), "png", 3},
		{"jpeg", image.NewYCbCr(rect, image.YCbCrSubsampleRatio420), "jpeg", 3},
		{"cmyk", image.NewCMYK(rect), "jpeg", 4},
		{"png with opaque alpha", opaque, "png", 4},
		{"lossless webp without alpha", opaque, "webp", 3},
		{"lossless webp with alpha", image.NewNRGBA(rect), "webp", 4},
		{"lossy webp with alpha", image.NewNYCbCrA(rect, image.YCbCrSubsampleRatio420), "webp", 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, channelLayout(tt.img, tt.format))
			assert.Equal(t, tt.want, rasterFromImage(tt.img, tt.format).Channels)
		})
	}
}

func TestRasterFromImage_CMYK(t *testing.T) {
	img := image.NewCMYK(image.Rect(0, 0, 1, 1))
	img.SetCMYK(0, 0, color.CMYK{C: 10, M: 20, Y: 30, K: 40})

	r := rasterFromImage(img, "jpeg")
	assert.Equal(t, []float64{10, 20, 30, 40}, r.Pix)
	assert.Equal(t, 25.0, r.LumaAt(0, 0))
}

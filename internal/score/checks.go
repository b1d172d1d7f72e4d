package score

import (
	"context"
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/ppiankov/trustbuddy/internal/extract"
)

// Check names
const (
	CheckDimensions         = "dimensions"
	CheckFilename           = "filename"
	CheckChannelCorrelation = "channel_correlation"
	CheckSaturation         = "saturation"
	CheckGradientUniformity = "gradient_uniformity"
	CheckFrequency          = "frequency"
	CheckSkinTexture        = "skin_texture"
	CheckMetadata           = "metadata"
	CheckBlockRepetition    = "block_repetition"
)

// Indicator penalties
const (
	PenaltyDimensions         = 30
	PenaltyFilename           = 40
	PenaltyChannelCorrelation = 35
	PenaltySaturation         = 25
	PenaltyGradientUniformity = 30
	PenaltyFrequency          = 25
	PenaltySkinTexture        = 35
	PenaltyMissingMetadata    = 20
	PenaltyUnreadableMetadata = 15
	PenaltyBlockRepetition    = 30
)

// DefaultChecks returns the heuristic registry in evaluation order
func DefaultChecks() []Check {
	return []Check{
		{Name: CheckDimensions, Fn: pure(checkDimensions)},
		{Name: CheckFilename, Fn: pure(checkFilename)},
		{Name: CheckChannelCorrelation, Fn: pure(checkChannelCorrelation)},
		{Name: CheckSaturation, Fn: pure(checkSaturation)},
		{Name: CheckGradientUniformity, Fn: pure(checkGradientUniformity)},
		{Name: CheckFrequency, Fn: pure(checkFrequency)},
		{Name: CheckSkinTexture, Fn: pure(checkSkinTexture)},
		{Name: CheckMetadata, Fn: pure(checkMetadata)},
		{Name: CheckBlockRepetition, Fn: checkBlockRepetition},
	}
}

var generatorSizes = map[int]bool{512: true, 768: true, 1024: true}

func checkDimensions(img *extract.Image) Outcome {
	w, h := img.Raster.Width, img.Raster.Height
	data := map[string]interface{}{"width": w, "height": h}

	if w == h && generatorSizes[w] {
		return Outcome{
			Penalty: PenaltyDimensions,
			Detail:  "Suspicious dimensions: Common AI generation size detected",
			Data:    data,
		}
	}
	return Outcome{Data: data}
}

var generatorKeywords = []string{
	"generated", "ai", "dalle", "midjourney", "stable", "diffusion", "gpt", "artificial", "photo",
}

func checkFilename(img *extract.Image) Outcome {
	if img.Filename == "" {
		return Outcome{}
	}

	lower := strings.ToLower(img.Filename)
	for _, kw := range generatorKeywords {
		if strings.Contains(lower, kw) {
			return Outcome{
				Penalty: PenaltyFilename,
				Detail:  fmt.Sprintf("Suspicious filename pattern: '%s' contains AI-related keywords", lower),
				Data:    map[string]interface{}{"filename": lower, "keyword": kw},
			}
		}
	}
	return Outcome{Data: map[string]interface{}{"filename": lower}}
}

func checkChannelCorrelation(img *extract.Image) Outcome {
	r := img.Raster
	if !r.IsColor() {
		return Outcome{}
	}

	red, green, blue := r.Channel(0), r.Channel(1), r.Channel(2)
	rg := correlation(red, green)
	rb := correlation(red, blue)
	gb := correlation(green, blue)
	avg := (math.Abs(rg) + math.Abs(rb) + math.Abs(gb)) / 3

	data := map[string]interface{}{
		"rg":        finite(rg),
		"rb":        finite(rb),
		"gb":        finite(gb),
		"average":   finite(avg),
		"threshold": 0.8,
	}
	if avg > 0.8 {
		return Outcome{
			Penalty: PenaltyChannelCorrelation,
			Detail:  fmt.Sprintf("Unnatural color correlation: %.2f (AI threshold: >0.8)", avg),
			Data:    data,
		}
	}
	return Outcome{Data: data}
}

func checkSaturation(img *extract.Image) Outcome {
	r := img.Raster
	if !r.IsColor() {
		return Outcome{}
	}

	std := popStd(r.Pix)
	data := map[string]interface{}{"std": finite(std), "low": 20, "high": 80}
	if std < 20 || std > 80 {
		return Outcome{
			Penalty: PenaltySaturation,
			Detail:  fmt.Sprintf("Abnormal saturation patterns: %.1f", std),
			Data:    data,
		}
	}
	return Outcome{Data: data}
}

func checkGradientUniformity(img *extract.Image) Outcome {
	r := img.Raster
	w, h := r.Width, r.Height

	gx := make([]float64, 0, max(w-1, 0)*h)
	for y := 0; y < h; y++ {
		for x := 0; x+1 < w; x++ {
			gx = append(gx, math.Abs(r.LumaAt(x+1, y)-r.LumaAt(x, y)))
		}
	}
	gy := make([]float64, 0, w*max(h-1, 0))
	for y := 0; y+1 < h; y++ {
		for x := 0; x < w; x++ {
			gy = append(gy, math.Abs(r.LumaAt(x, y+1)-r.LumaAt(x, y)))
		}
	}

	sx, sy := popStd(gx), popStd(gy)
	data := map[string]interface{}{"grad_x_std": finite(sx), "grad_y_std": finite(sy), "threshold": 5}
	if sx < 5 || sy < 5 {
		return Outcome{
			Penalty: PenaltyGradientUniformity,
			Detail:  "Artificial gradient uniformity detected",
			Data:    data,
		}
	}
	return Outcome{Data: data}
}

func checkFrequency(img *extract.Image) Outcome {
	ratio, ok := lowFrequencyRatio(img.Raster, 10)
	if !ok {
		return Outcome{}
	}

	data := map[string]interface{}{"low_frequency_ratio": ratio, "threshold": 0.8}
	if ratio > 0.8 {
		return Outcome{
			Penalty: PenaltyFrequency,
			Detail:  "Artificial frequency distribution detected",
			Data:    data,
		}
	}
	return Outcome{Data: data}
}

func checkSkinTexture(img *extract.Image) Outcome {
	r := img.Raster
	if !r.IsColor() || r.Width < 100 || r.Height < 100 {
		return Outcome{}
	}

	var skin []float64
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			red, green, blue := r.At(x, y, 0), r.At(x, y, 1), r.At(x, y, 2)
			if red > 95 && green > 40 && blue > 20 && red > blue && red > green {
				skin = append(skin, r.LumaAt(x, y))
			}
		}
	}

	area := float64(len(skin)) / float64(r.Width*r.Height)
	data := map[string]interface{}{"skin_fraction": area}
	if area <= 0.1 {
		return Outcome{Data: data}
	}

	texture := popStd(skin)
	data["texture_std"] = finite(texture)
	if texture < 8 {
		return Outcome{
			Penalty: PenaltySkinTexture,
			Detail:  "Unnatural skin texture smoothness detected",
			Data:    data,
		}
	}
	return Outcome{Data: data}
}

func checkMetadata(img *extract.Image) Outcome {
	md := img.Metadata
	if !md.Readable {
		return Outcome{
			Penalty: PenaltyUnreadableMetadata,
			Detail:  "Unable to read image metadata",
			Data:    map[string]interface{}{"readable": false, "error": md.Error},
		}
	}

	data := map[string]interface{}{
		"readable":    true,
		"tags":        len(md.Tags),
		"camera_info": md.HasCameraInfo(),
	}
	if !md.HasCameraInfo() && len(md.Tags) == 0 {
		return Outcome{
			Penalty: PenaltyMissingMetadata,
			Detail:  "Missing camera metadata (common in AI-generated images)",
			Data:    data,
		}
	}
	return Outcome{Data: data}
}

// checkBlockRepetition compares every pair of blocks, so its cost grows with
// the square of the block count. It stops as soon as ctx ends.
func checkBlockRepetition(ctx context.Context, img *extract.Image) (Outcome, error) {
	r := img.Raster
	if r.Width <= 50 || r.Height <= 50 {
		return Outcome{}, nil
	}

	size := min(16, r.Height/4, r.Width/4)
	n := size * size

	// Each block is centred and scaled so that a dot product of two blocks
	// is their Pearson correlation. Flat blocks have no defined correlation.
	var blocks [][]float64
	for i := 0; i < r.Height-size; i += size {
		for j := 0; j < r.Width-size; j += size {
			block := make([]float64, 0, n)
			for y := i; y < i+size; y++ {
				for x := j; x < j+size; x++ {
					block = append(block, r.LumaAt(x, y))
				}
			}
			blocks = append(blocks, standardize(block))
		}
	}

	if len(blocks) <= 4 {
		return Outcome{Data: map[string]interface{}{"blocks": len(blocks), "block_size": size}}, nil
	}

	sum, pairs := 0.0, 0
	for a := 0; a < len(blocks); a++ {
		if err := ctx.Err(); err != nil {
			return Outcome{}, err
		}
		if blocks[a] == nil {
			continue
		}
		for b := a + 1; b < len(blocks); b++ {
			if blocks[b] == nil {
				continue
			}
			sum += math.Abs(floats.Dot(blocks[a], blocks[b]))
			pairs++
		}
	}

	data := map[string]interface{}{"blocks": len(blocks), "block_size": size, "pairs": pairs}
	if pairs == 0 {
		return Outcome{Data: data}, nil
	}

	mean := sum / float64(pairs)
	data["mean_similarity"] = mean
	data["threshold"] = 0.7
	if mean > 0.7 {
		return Outcome{
			Penalty: PenaltyBlockRepetition,
			Detail:  "Repetitive pattern artifacts detected",
			Data:    data,
		}, nil
	}
	return Outcome{Data: data}, nil
}

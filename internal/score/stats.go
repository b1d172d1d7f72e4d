package score

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/ppiankov/trustbuddy/internal/extract"
)

// popStd is the population standard deviation; NaN for empty input
func popStd(x []float64) float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	_, std := stat.PopMeanStdDev(x, nil)
	return std
}

// correlation is the Pearson correlation; NaN when either side is constant
func correlation(x, y []float64) float64 {
	if len(x) < 2 {
		return math.NaN()
	}
	return stat.Correlation(x, y, nil)
}

// standardize returns (x - mean) / (std * sqrt(n)), or nil for a constant block
func standardize(x []float64) []float64 {
	mean, std := stat.PopMeanStdDev(x, nil)
	if std == 0 || math.IsNaN(std) {
		return nil
	}
	out := make([]float64, len(x))
	copy(out, x)
	floats.AddConst(-mean, out)
	floats.Scale(1/(std*math.Sqrt(float64(len(x)))), out)
	return out
}

// finite maps NaN and Inf to nil so indicator data stays JSON-encodable
func finite(v float64) interface{} {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}

// lowFrequencyRatio returns the share of FFT magnitude in the corner x corner
// low-frequency block of the centre half-crop of the luminance plane.
func lowFrequencyRatio(r *extract.Raster, corner int) (float64, bool) {
	y0, y1 := r.Height/4, 3*r.Height/4
	x0, x1 := r.Width/4, 3*r.Width/4
	rows, cols := y1-y0, x1-x0
	if rows == 0 || cols == 0 {
		return 0, false
	}

	grid := make([][]complex128, rows)
	rowFFT := fourier.NewCmplxFFT(cols)
	seq := make([]complex128, cols)
	for i := range grid {
		for j := range seq {
			seq[j] = complex(r.LumaAt(x0+j, y0+i), 0)
		}
		grid[i] = rowFFT.Coefficients(nil, seq)
	}

	colFFT := fourier.NewCmplxFFT(rows)
	col := make([]complex128, rows)
	out := make([]complex128, rows)
	total, low := 0.0, 0.0
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			col[i] = grid[i][j]
		}
		colFFT.Coefficients(out, col)
		for i, c := range out {
			mag := cmplx.Abs(c)
			total += mag
			if i < corner && j < corner {
				low += mag
			}
		}
	}

	if total == 0 {
		return 0, false
	}
	return low / total, true
}

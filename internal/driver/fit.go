package driver

import "math"

// linearFit returns the least-squares slope of y over x plus the slope's
// standard error estimated from the fit residuals. With fewer than three
// points the standard error is zero.
func linearFit(xs, ys []float64) (slope, stderr float64) {
	n := float64(len(xs))
	if len(xs) < 2 {
		return 0, 0
	}

	var sumX, sumY float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX := sumX / n
	meanY := sumY / n

	var covXY, varX float64
	for i := range xs {
		dx := xs[i] - meanX
		covXY += dx * (ys[i] - meanY)
		varX += dx * dx
	}
	if varX == 0 {
		return 0, 0
	}
	slope = covXY / varX
	intercept := meanY - slope*meanX

	if len(xs) <= 2 {
		return slope, 0
	}

	var ssr float64
	for i := range xs {
		r := ys[i] - (intercept + slope*xs[i])
		ssr += r * r
	}
	residualVar := ssr / (n - 2)
	sampleVarX := varX / (n - 1)
	stderr = math.Sqrt(residualVar / (n * sampleVarX))

	return slope, stderr
}

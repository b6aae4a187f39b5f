package features

import (
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/rfsense/phasecap/pkg/signal"
)

// MinStatSamples is the minimum sample count for the time-domain statistics.
const MinStatSamples = 4

// Extractor computes the FeatureVector for one cleaned channel. It is pure:
// identical input always yields the identical vector.
type Extractor struct {
	spectral *SpectralAnalyzer
	logger   *logrus.Entry
}

// NewExtractor creates a feature extractor.
func NewExtractor(logger *logrus.Entry) *Extractor {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Extractor{
		spectral: NewSpectralAnalyzer(logger),
		logger:   logger.WithField("component", "feature_extractor"),
	}
}

// Extract computes the full descriptor set over a cleaned series. A series
// shorter than MinStatSamples is not an error: every field comes back
// unavailable with only the sample count set.
func (e *Extractor) Extract(series signal.TimeSeries) FeatureVector {
	n := series.Len()
	fv := FeatureVector{SampleCount: n}
	if n < MinStatSamples {
		e.logger.WithField("samples", n).Debug("series too short for statistics")
		return fv
	}

	t := series.Time
	x := series.Value

	mean := stat.Mean(x, nil)
	std := populationStd(x, mean)
	fv.Mean = Of(mean)
	fv.Std = Of(std)
	fv.Range = Of(floats.Max(x) - floats.Min(x))
	fv.CV = Of(signal.SafeDiv(std, math.Abs(mean)))

	if mad, ok := signal.MedianAbsDev(x); ok {
		fv.Mad = Of(mad)
	}

	skew, kurt := standardizedMoments(x, mean, std)
	fv.Skewness = Of(skew)
	fv.Kurtosis = Of(kurt)

	slope, r2 := LinearFit(t, x)
	fv.TrendSlope = Of(slope)
	fv.TrendR2 = Of(r2)

	fv.AcfHalfLife = Of(float64(AcfDecayHalfLife(x)))

	fs, fsOK := EstimateSamplingRate(t)
	if fsOK {
		fv.SamplingRate = Of(fs)
	}

	if sp, ok := e.spectral.Extract(x, fs); ok && fsOK {
		fv.SpectralCentroid = Of(sp.Centroid)
		fv.SpectralEntropy = Of(sp.Entropy)
		fv.DominantFreq = Of(sp.DominantFreq)
		fv.DominantPower = Of(sp.DominantPower)
		fv.Band0To2 = Of(sp.BandPower[0])
		fv.Band2To5 = Of(sp.BandPower[1])
		fv.Band5To10 = Of(sp.BandPower[2])
		fv.Band10To20 = Of(sp.BandPower[3])
		fv.LowMidRatio = Of(sp.LowMidRatio)
	}

	return fv
}

// populationStd is the population (1/n) standard deviation.
func populationStd(x []float64, mean float64) float64 {
	var ss float64
	for _, v := range x {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(x)))
}

// standardizedMoments returns the skewness and excess kurtosis computed from
// z-scores with an epsilon-guarded standard deviation.
func standardizedMoments(x []float64, mean, std float64) (skew, kurt float64) {
	var m3, m4 float64
	for _, v := range x {
		z := (v - mean) / (std + signal.EpsDiv)
		z2 := z * z
		m3 += z2 * z
		m4 += z2 * z2
	}
	n := float64(len(x))
	return m3 / n, m4/n - 3
}

// EstimateSamplingRate infers the sampling rate as the reciprocal of the
// median positive adjacent time delta. It reports false when no positive
// delta exists.
func EstimateSamplingRate(t []float64) (float64, bool) {
	deltas := make([]float64, 0, len(t))
	for i := 1; i < len(t); i++ {
		if d := t[i] - t[i-1]; d > 0 {
			deltas = append(deltas, d)
		}
	}
	med, ok := signal.Median(deltas)
	if !ok || med <= 0 {
		return math.NaN(), false
	}
	return 1 / med, true
}

// AcfDecayHalfLife returns the smallest lag at which the normalized
// autocorrelation of x first drops below 0.5, or len(x) if it never does.
// Series shorter than 3 samples, and zero-energy (constant) series whose
// autocorrelation never meaningfully decays, return their length. The
// autocovariance is computed by direct summation at every lag; O(n²), which
// is fine for the modest per-file series this pipeline sees.
func AcfDecayHalfLife(x []float64) int {
	n := len(x)
	if n < 3 {
		return n
	}

	mean := stat.Mean(x, nil)
	centered := make([]float64, n)
	for i, v := range x {
		centered[i] = v - mean
	}

	c0 := 0.0
	for _, v := range centered {
		c0 += v * v
	}
	c0 /= float64(n)
	if c0 <= signal.EpsDiv {
		return n
	}

	for lag := 1; lag < n; lag++ {
		var c float64
		for i := 0; i+lag < n; i++ {
			c += centered[i] * centered[i+lag]
		}
		c /= float64(n)
		if c/c0 < 0.5 {
			return lag
		}
	}
	return n
}

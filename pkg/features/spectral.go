package features

import (
	"math"

	"github.com/mjibson/go-dsp/fft"
	"github.com/sirupsen/logrus"

	"github.com/rfsense/phasecap/pkg/signal"
)

// Fixed half-open analysis bands, in Hz.
var bandEdges = [4][2]float64{
	{0, 2},
	{2, 5},
	{5, 10},
	{10, 20},
}

// MinSpectralSamples is the minimum finite sample count for spectral
// analysis.
const MinSpectralSamples = 8

// realTransform converts a real signal to its complex spectrum. Any correct
// power-of-two real FFT is substitutable here.
type realTransform func(x []float64) []complex128

// SpectralAnalyzer computes one-sided power spectra and the derived spectral
// descriptors for a phase-series channel.
type SpectralAnalyzer struct {
	transform realTransform
	logger    *logrus.Entry
}

// NewSpectralAnalyzer creates a spectral analyzer backed by mjibson/go-dsp.
func NewSpectralAnalyzer(logger *logrus.Entry) *SpectralAnalyzer {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &SpectralAnalyzer{
		transform: fft.FFTReal,
		logger:    logger.WithField("component", "spectral_analyzer"),
	}
}

// Spectrum is a one-sided power spectrum with its frequency axis.
type Spectrum struct {
	Freqs []float64
	Power []float64
}

// SpectralFeatures holds the derived frequency-domain descriptors.
type SpectralFeatures struct {
	Centroid      float64
	Entropy       float64
	DominantFreq  float64
	DominantPower float64
	BandPower     [4]float64
	LowMidRatio   float64
}

// PowerSpectrum mean-centers x, zero-pads to the next power of two and
// returns the one-sided power spectrum: power at bin k is (Re²+Im²)/N for
// k = 0..N/2, frequency k·fs/N. It reports false when fs is not a finite
// positive number or fewer than MinSpectralSamples finite samples remain.
func (sa *SpectralAnalyzer) PowerSpectrum(x []float64, fs float64) (*Spectrum, bool) {
	clean := signal.Finite(x)
	if len(clean) < MinSpectralSamples || math.IsNaN(fs) || math.IsInf(fs, 0) || fs <= 0 {
		return nil, false
	}

	mean := 0.0
	for _, v := range clean {
		mean += v
	}
	mean /= float64(len(clean))

	n := nextPowerOfTwo(len(clean))
	padded := make([]float64, n)
	for i, v := range clean {
		padded[i] = v - mean
	}

	spectrum := sa.transform(padded)

	bins := n/2 + 1
	out := &Spectrum{
		Freqs: make([]float64, bins),
		Power: make([]float64, bins),
	}
	for k := 0; k < bins; k++ {
		re := real(spectrum[k])
		im := imag(spectrum[k])
		out.Freqs[k] = float64(k) * fs / float64(n)
		out.Power[k] = (re*re + im*im) / float64(n)
	}

	sa.logger.WithFields(logrus.Fields{
		"samples":   len(clean),
		"fft_size":  n,
		"freq_bins": bins,
	}).Debug("computed power spectrum")

	return out, true
}

// Extract computes the full spectral descriptor set. The second return is
// false when the preconditions for spectral analysis are unmet; callers then
// record every spectral field as unavailable.
func (sa *SpectralAnalyzer) Extract(x []float64, fs float64) (SpectralFeatures, bool) {
	sp, ok := sa.PowerSpectrum(x, fs)
	if !ok {
		return SpectralFeatures{}, false
	}

	var out SpectralFeatures
	out.Centroid = spectralCentroid(sp)
	out.Entropy = spectralEntropy(sp.Power)
	out.DominantFreq, out.DominantPower = dominantBin(sp)
	for i, edges := range bandEdges {
		out.BandPower[i] = bandPower(sp, edges[0], edges[1])
	}
	out.LowMidRatio = signal.SafeDiv(out.BandPower[0], out.BandPower[1]+out.BandPower[2])
	return out, true
}

// spectralCentroid is the power-weighted mean frequency.
func spectralCentroid(sp *Spectrum) float64 {
	var weighted, total float64
	for k := range sp.Power {
		weighted += sp.Freqs[k] * sp.Power[k]
		total += sp.Power[k]
	}
	return signal.SafeDiv(weighted, total)
}

// spectralEntropy is the Shannon entropy of the normalized power
// distribution, in bits. Zero total power yields 0.
func spectralEntropy(power []float64) float64 {
	total := 0.0
	for _, p := range power {
		total += p
	}
	if total <= 0 {
		return 0
	}

	entropy := 0.0
	for _, p := range power {
		pn := p / total
		entropy -= pn * math.Log2(pn+signal.EpsDiv)
	}
	return entropy
}

// dominantBin returns the frequency and power of the strongest bin; ties go
// to the lowest bin index.
func dominantBin(sp *Spectrum) (freq, power float64) {
	best := 0
	for k := 1; k < len(sp.Power); k++ {
		if sp.Power[k] > sp.Power[best] {
			best = k
		}
	}
	return sp.Freqs[best], sp.Power[best]
}

// bandPower sums power over bins whose frequency lies in [lo, hi).
func bandPower(sp *Spectrum, lo, hi float64) float64 {
	sum := 0.0
	for k, f := range sp.Freqs {
		if f >= lo && f < hi {
			sum += sp.Power[k]
		}
	}
	return sum
}

// nextPowerOfTwo returns the smallest power of two >= n.
func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

package features

// FeatureVector holds the per-channel descriptors: time-domain statistics,
// trend fit, autocorrelation decay and the spectral set. Every scalar is an
// optional Value; SampleCount is always known.
type FeatureVector struct {
	SampleCount  int   `json:"n_samples" yaml:"n_samples"`
	SamplingRate Value `json:"fs_est_hz" yaml:"fs_est_hz"`

	// Dispersion and shape
	Mean     Value `json:"mean" yaml:"mean"`
	Std      Value `json:"std" yaml:"std"`
	Mad      Value `json:"mad" yaml:"mad"`
	Range    Value `json:"range" yaml:"range"`
	Skewness Value `json:"skewness" yaml:"skewness"`
	Kurtosis Value `json:"kurtosis" yaml:"kurtosis"`
	CV       Value `json:"cv" yaml:"cv"`

	// Linear trend against time
	TrendSlope Value `json:"trend_slope" yaml:"trend_slope"`
	TrendR2    Value `json:"trend_r2" yaml:"trend_r2"`

	// Autocorrelation decay half-life, in lags
	AcfHalfLife Value `json:"acf_half_life" yaml:"acf_half_life"`

	// Spectral descriptors
	SpectralCentroid Value `json:"spectral_centroid_hz" yaml:"spectral_centroid_hz"`
	SpectralEntropy  Value `json:"spectral_entropy_bits" yaml:"spectral_entropy_bits"`
	DominantFreq     Value `json:"dominant_freq_hz" yaml:"dominant_freq_hz"`
	DominantPower    Value `json:"dominant_power" yaml:"dominant_power"`
	Band0To2         Value `json:"band_0_2" yaml:"band_0_2"`
	Band2To5         Value `json:"band_2_5" yaml:"band_2_5"`
	Band5To10        Value `json:"band_5_10" yaml:"band_5_10"`
	Band10To20       Value `json:"band_10_20" yaml:"band_10_20"`
	LowMidRatio      Value `json:"low_mid_ratio" yaml:"low_mid_ratio"`
}

package kernels

import "math"

// logFn is the logarithm implementation used by every log-density formula
// in this package. It defaults to math.Log and can be swapped for a fast
// approximation via UseFastLog.
var logFn = math.Log

// UseFastLog toggles between math.Log (the default, exact) and a cheap
// bit-manipulation approximation of natural log. The approximation trades a
// small amount of accuracy for speed and is only intended for builds where
// the Metropolis acceptance decisions are insensitive to the difference -
// it is never on by default.
func UseFastLog(enable bool) {
	if enable {
		logFn = fastLog
	} else {
		logFn = math.Log
	}
}

// fastLog approximates the natural log by extracting the IEEE-754 exponent
// directly and evaluating a short series for the log of the mantissa.
// Absolute error stays below ~2e-5, well under the noise floor of an MCMC
// acceptance ratio.
func fastLog(x float64) float64 {
	if x <= 0 {
		return math.Inf(-1)
	}
	bits := math.Float64bits(x)
	exponent := int((bits>>52)&0x7ff) - 1023
	mantissaBits := (bits & ((1 << 52) - 1)) | (1023 << 52)
	mantissa := math.Float64frombits(mantissaBits) // in [1, 2)

	// log(m) = 2*atanh(s) with s = (m-1)/(m+1) in [0, 1/3) for m in [1,2),
	// summed through the s^7 term; the truncation error is below ~2e-5.
	s := (mantissa - 1) / (mantissa + 1)
	s2 := s * s
	logMantissa := 2 * s * (1 + s2*(1.0/3.0+s2*(1.0/5.0+s2/7.0)))

	const ln2 = 0.6931471805599453
	return float64(exponent)*ln2 + logMantissa
}

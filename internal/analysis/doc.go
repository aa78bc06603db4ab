// Package analysis characterizes the logistic map behind the chaotic bit
// source and the spectrum of generated bit streams.
//
//   - [LogisticLyapunov]: mean log-derivative along an orbit
//   - [LyapunovSeparation]: divergence of two nearby orbits
//   - [Bifurcation]: rate sweep recording the attractor at each rate
//   - [ReturnMap]: x(n) against x(n+1)
//   - [BitSpectrum]: power spectrum of a bit stream mapped to ±1
//
// # Chaos Detection
//
// A positive exponent indicates chaotic dynamics:
//
//	lambda := analysis.LogisticLyapunov(chaos.R, 0.3, 1000, 20000)
//	if lambda > 0 {
//	    // bits from this rate are not periodic
//	}
package analysis

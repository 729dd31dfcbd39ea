// Package sigcond designs and runs FIR filters for conditioning biosignals
// such as EEG, and converts their sample rate by rational polyphase
// resampling.
//
// # Features
//
//   - Windowed-sinc design (Hamming or Kaiser) of lowpass, highpass and
//     bandpass filters from band edges, with fixed transition-width rules
//   - Four execution policies trading causality against phase distortion
//   - Anti-aliased rational resampling in a single polyphase pass
//   - FIR notch filters for mains interference
//   - Optional persisted tap cache keyed by design parameters
//   - Optional SIMD acceleration via github.com/tphakala/simd
//
// # Quick Start
//
//	sig, err := sigcond.NewSignal(fz, cz, pz)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	taps, err := sigcond.Design(sigcond.Bandpass(1, 40, 1000))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	filtered, err := sigcond.Apply(sig, taps, sigcond.PolicyTwoPassZeroPhase)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	out, err := sigcond.Resample(filtered, 1000, 512)
//
// # Filter Design
//
// A [FilterSpec] names a low cutoff (highpass edge), a high cutoff (lowpass
// edge) or both. The transition width of a highpass edge f is 0.5 Hz for
// f <= 2 Hz and 0.25·f clamped to [2 Hz, f] above; a lowpass edge gets
// 0.25·f clamped to [2 Hz, nyquist-f]. Hamming designs use
// ceil(3.3·fs/width) taps, Kaiser designs Kaiser's order formula; both are
// rounded up to an odd count. A bandpass is the convolution of its highpass
// and lowpass kernels.
//
// # Execution Policies
//
//   - [PolicyTwoPassZeroPhase]: forward and backward pass, no delay
//   - [PolicyCausal]: one seeded forward pass, delay kept
//   - [PolicyCausalDelayCut]: causal with the delay sliced off the front
//   - [PolicyReflectZeroPhase]: one centred pass over a mirrored signal
//
// [Apply] removes each channel's mean before filtering and restores it for
// filters that pass DC.
//
// # Resampling
//
// [Resample] reduces the rate ratio to up/down. Pure decimation (up == 1)
// uses the Kaiser anti-alias filter from [DesignAntiAlias]; other ratios
// use a Kaiser (β = 5) prototype at the narrower of the two Nyquist
// frequencies.
//
// # Tap Cache
//
// [TapCache] memoises designs in a [Store], by default one flat
// little-endian float64 file per key. Keys carry [KeyVersion]. When the
// store fails, designs are computed on demand and a [*CacheIOError] is
// returned with them.
//
// # Thread Safety
//
// All functions are safe for concurrent use. [TapCache] may be shared.
package sigcond

package sigcond

import (
	"golang.org/x/exp/constraints"
)

// ApplyMono filters a single channel. It is Apply for one-channel signals.
func ApplyMono(x []float64, taps TapSet, policy Policy, opts ...Option) ([]float64, error) {
	sig, err := NewSignal(x)
	if err != nil {
		return nil, err
	}
	out, err := Apply(sig, taps, policy, opts...)
	if err != nil {
		return nil, err
	}
	return out.data[0], nil
}

// ResampleMono resamples a single channel. A *CacheIOError is returned
// together with the result, as in Resample.
func ResampleMono(x []float64, sourceRate, targetRate float64, opts ...Option) ([]float64, error) {
	sig, err := NewSignal(x)
	if err != nil {
		return nil, err
	}
	out, err := Resample(sig, sourceRate, targetRate, opts...)
	if out.NumChannels() == 0 {
		return nil, err
	}
	return out.data[0], err
}

// FromInterleaved builds a Signal from frame-interleaved samples
// [c0[0], c1[0], ..., c0[1], c1[1], ...].
func FromInterleaved(data []float64, channels int) (Signal, error) {
	if channels < 1 || len(data) == 0 || len(data)%channels != 0 {
		return Signal{}, &ShapeError{
			Samples:  len(data),
			Channels: channels,
			Reason:   "interleaved length is not a positive multiple of the channel count",
		}
	}

	n := len(data) / channels
	out := make([][]float64, channels)
	for ch := range out {
		out[ch] = make([]float64, n)
	}
	for i := range n {
		for ch := range channels {
			out[ch][i] = data[i*channels+ch]
		}
	}
	return Signal{data: out}, nil
}

// Interleaved returns the samples frame by frame, the inverse of
// FromInterleaved.
func (s Signal) Interleaved() []float64 {
	c := s.NumChannels()
	out := make([]float64, s.Len()*c)
	for ch, samples := range s.data {
		for i, v := range samples {
			out[i*c+ch] = v
		}
	}
	return out
}

// SignalFrom builds a Signal from channels of any float type. Processing
// always happens in float64.
func SignalFrom[F constraints.Float](channels ...[]F) (Signal, error) {
	conv := make([][]float64, len(channels))
	for i, ch := range channels {
		conv[i] = make([]float64, len(ch))
		for j, v := range ch {
			conv[i][j] = float64(v)
		}
	}
	return NewSignal(conv...)
}

// ChannelsAs returns a copy of every channel of s converted to F.
func ChannelsAs[F constraints.Float](s Signal) [][]F {
	out := make([][]F, len(s.data))
	for i, ch := range s.data {
		out[i] = make([]F, len(ch))
		for j, v := range ch {
			out[i][j] = F(v)
		}
	}
	return out
}

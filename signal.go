package sigcond

import (
	"slices"

	"gonum.org/v1/gonum/mat"
)

// Signal is a multichannel time series: a set of equal-length channels of
// float64 samples. A Signal owns its storage; constructors copy their input
// and accessors return copies, so callers never share buffers with it.
type Signal struct {
	data [][]float64
}

// NewSignal builds a Signal from one slice per channel. All channels must
// be non-empty and of equal length.
func NewSignal(channels ...[]float64) (Signal, error) {
	if len(channels) == 0 {
		return Signal{}, &ShapeError{Reason: "no channels"}
	}

	n := len(channels[0])
	if n == 0 {
		return Signal{}, &ShapeError{Channels: len(channels), Reason: "no samples"}
	}

	data := make([][]float64, len(channels))
	for i, ch := range channels {
		if len(ch) != n {
			return Signal{}, &ShapeError{
				Samples:  n,
				Channels: len(channels),
				Reason:   "ragged channels",
			}
		}
		data[i] = slices.Clone(ch)
	}
	return Signal{data: data}, nil
}

// FromDense builds a Signal from a matrix laid out rows = time,
// columns = channel.
func FromDense(m mat.Matrix) (Signal, error) {
	rows, cols := m.Dims()
	if rows == 0 || cols == 0 {
		return Signal{}, &ShapeError{Samples: rows, Channels: cols, Reason: "empty matrix"}
	}

	data := make([][]float64, cols)
	for j := range cols {
		data[j] = mat.Col(nil, j, m)
	}
	return Signal{data: data}, nil
}

// Dense returns the signal as a rows = time, columns = channel matrix.
func (s Signal) Dense() *mat.Dense {
	n, c := s.Len(), s.NumChannels()
	if n == 0 || c == 0 {
		return &mat.Dense{}
	}
	d := mat.NewDense(n, c, nil)
	for j, ch := range s.data {
		d.SetCol(j, ch)
	}
	return d
}

// NumChannels returns the number of channels.
func (s Signal) NumChannels() int {
	return len(s.data)
}

// Len returns the number of samples per channel.
func (s Signal) Len() int {
	if len(s.data) == 0 {
		return 0
	}
	return len(s.data[0])
}

// Channel returns a copy of channel i.
func (s Signal) Channel(i int) []float64 {
	return slices.Clone(s.data[i])
}

// Channels returns a copy of every channel.
func (s Signal) Channels() [][]float64 {
	out := make([][]float64, len(s.data))
	for i, ch := range s.data {
		out[i] = slices.Clone(ch)
	}
	return out
}

func (s Signal) shapeError(reason string, required int) *ShapeError {
	return &ShapeError{
		Samples:  s.Len(),
		Channels: s.NumChannels(),
		Required: required,
		Reason:   reason,
	}
}

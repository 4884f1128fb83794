package nn

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
)

// ErrShape is returned when data does not match the requested shape.
var ErrShape = errors.New("shape mismatch")

// Array is a dense row-major float64 array.
type Array struct {
	shape []int
	data  []float64
}

// NewArray wraps data with the given shape.
func NewArray(data []float64, shape ...int) (*Array, error) {
	if size(shape) != len(data) {
		return nil, fmt.Errorf("%w: %v holds %d values, got %d", ErrShape, shape, size(shape), len(data))
	}
	return &Array{shape: slices.Clone(shape), data: data}, nil
}

// Zeros returns a zero-filled array.
func Zeros(shape ...int) *Array {
	return &Array{shape: slices.Clone(shape), data: make([]float64, size(shape))}
}

// Uniform returns an array filled with values drawn from [lo, hi).
func Uniform(r *rand.Rand, lo, hi float64, shape ...int) *Array {
	a := Zeros(shape...)
	for i := range a.data {
		a.data[i] = lo + (hi-lo)*r.Float64()
	}
	return a
}

// Shape returns a copy of the array dimensions.
func (a *Array) Shape() []int { return slices.Clone(a.shape) }

// DType returns the element type name.
func (a *Array) DType() string { return "float64" }

// Size returns the number of elements.
func (a *Array) Size() int { return len(a.data) }

// Data returns the underlying storage.
func (a *Array) Data() []float64 { return a.data }

// Map returns a new array with fn applied to every element.
func (a *Array) Map(fn func(float64) float64) *Array {
	out := Zeros(a.shape...)
	for i, v := range a.data {
		out.data[i] = fn(v)
	}
	return out
}

func (a *Array) String() string {
	return fmt.Sprintf("%s%v", a.DType(), a.shape)
}

func size(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n
}

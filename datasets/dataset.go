// Package datasets implements the labeled image dataset types
package datasets

import (
	"errors"
	"math/rand/v2"

	"golang.org/x/xerrors"
	"gonum.org/v1/gonum/mat"
)

// ErrInvalidDimension is returned for a non-positive grid size or for an image
// whose shape differs from the configured grid.
var ErrInvalidDimension = errors.New("invalid dimension")

// ErrInvalidLabel is returned for a label outside of {0, 1}.
var ErrInvalidLabel = errors.New("invalid label")

// Label is the class of a sample. It is kept numeric, the delta rule subtracts it.
type Label uint8

// Sample is one image together with its desired class
type Sample struct {
	Image *mat.Dense
	Label Label
}

// Set is an ordered training set. The order is the visiting order.
type Set []Sample

// CheckDims reports ErrInvalidDimension when width or height is not positive
func CheckDims(width, height int) error {
	if width <= 0 || height <= 0 {
		return xerrors.Errorf("grid %dx%d: %w", width, height, ErrInvalidDimension)
	}
	return nil
}

// CheckShape reports ErrInvalidDimension when m is not a width x height matrix
func CheckShape(m mat.Matrix, width, height int) error {
	if m == nil {
		return xerrors.Errorf("nil image, want %dx%d: %w", width, height, ErrInvalidDimension)
	}
	r, c := m.Dims()
	if r != width || c != height {
		return xerrors.Errorf("image %dx%d, want %dx%d: %w", r, c, width, height, ErrInvalidDimension)
	}
	return nil
}

// Dims returns the shape of the first image, or zeros for an empty set
func (s Set) Dims() (width, height int) {
	if len(s) == 0 || s[0].Image == nil {
		return 0, 0
	}
	return s[0].Image.Dims()
}

// Validate checks that every sample is width x height and labeled 0 or 1
func (s Set) Validate(width, height int) error {
	for i, v := range s {
		if v.Image == nil {
			return xerrors.Errorf("sample %d: nil image: %w", i, ErrInvalidDimension)
		}
		if err := CheckShape(v.Image, width, height); err != nil {
			return xerrors.Errorf("sample %d: %w", i, err)
		}
		if v.Label > 1 {
			return xerrors.Errorf("sample %d: label %d: %w", i, v.Label, ErrInvalidLabel)
		}
	}
	return nil
}

// Split splits the set into label 0 samples and label 1 samples, keeping order
func (s Set) Split() (o [2]Set) {
	for _, v := range s {
		if v.Label == 0 {
			o[0] = append(o[0], v)
		} else {
			o[1] = append(o[1], v)
		}
	}
	return
}

// Interleave merges a and b alternately, starting with a. The longer tail is appended.
func Interleave(a, b Set) (o Set) {
	o = make(Set, 0, len(a)+len(b))
	for i := 0; i < len(a) || i < len(b); i++ {
		if i < len(a) {
			o = append(o, a[i])
		}
		if i < len(b) {
			o = append(o, b[i])
		}
	}
	return
}

// Shuffle shuffles the set in place
func (s Set) Shuffle(r *rand.Rand) {
	shuffle := rand.Shuffle
	if r != nil {
		shuffle = r.Shuffle
	}
	shuffle(len(s), func(i, j int) {
		s[i], s[j] = s[j], s[i]
	})
}

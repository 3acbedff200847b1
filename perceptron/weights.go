package perceptron

import (
	"io"
	"os"

	"github.com/ulikunitz/xz"
	"golang.org/x/xerrors"
	"gonum.org/v1/gonum/mat"
)

// WeightsExt is the usual extension of a weights file
const WeightsExt = ".weights.xz"

// WriteCompressedWeightsToFile writes the weights to a xz file
func (p *Perceptron) WriteCompressedWeightsToFile(name string) error {
	file, err := os.Create(name)
	if err != nil {
		return err
	}
	err = p.WriteCompressedWeights(file)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	return err
}

// WriteCompressedWeights writes the weights as a xz compressed gonum matrix
func (p *Perceptron) WriteCompressedWeights(w io.Writer) error {
	xw, err := xz.NewWriter(w)
	if err != nil {
		return xerrors.Errorf("weights xz writer: %w", err)
	}
	if _, err = p.weights.MarshalBinaryTo(xw); err != nil {
		return xerrors.Errorf("write weights: %w", err)
	}
	return xw.Close()
}

// ReadCompressedWeightsFromFile reads the weights from a xz file
func (p *Perceptron) ReadCompressedWeightsFromFile(name string) error {
	file, err := os.Open(name)
	if err != nil {
		return err
	}
	err = p.ReadCompressedWeights(file)
	file.Close()
	return err
}

// ReadCompressedWeights reads xz compressed weights and overwrites the current
// ones. The stored matrix must have the perceptron's shape.
func (p *Perceptron) ReadCompressedWeights(r io.Reader) error {
	m, err := ReadCompressedMatrix(r)
	if err != nil {
		return err
	}
	return p.SetWeights(m)
}

// ReadCompressedMatrix decodes a matrix written by WriteCompressedWeights
func ReadCompressedMatrix(r io.Reader) (*mat.Dense, error) {
	xr, err := xz.NewReader(r)
	if err != nil {
		return nil, xerrors.Errorf("weights xz reader: %w", err)
	}
	var m mat.Dense
	if _, err = m.UnmarshalBinaryFrom(xr); err != nil {
		return nil, xerrors.Errorf("read weights: %w", err)
	}
	return &m, nil
}

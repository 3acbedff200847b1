package trainer

import "golang.org/x/xerrors"

// WeightsReader loads weights from a file
type WeightsReader interface {
	ReadCompressedWeightsFromFile(name string) error
}

// Resume loads the weights in dstmodel when resume is set
func Resume(p WeightsReader, resume *bool, dstmodel *string) error {
	if resume != nil && *resume && dstmodel != nil && *dstmodel != "" {
		if err := p.ReadCompressedWeightsFromFile(*dstmodel); err != nil {
			return xerrors.Errorf("resume %s: %w", *dstmodel, err)
		}
	}
	return nil
}

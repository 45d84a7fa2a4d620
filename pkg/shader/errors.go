package shader

import "errors"

// Resolution errors.
var (
	ErrUnknownGeneration  = errors.New("unknown shader generation")
	ErrMissingMetaparam   = errors.New("no metaparameters for shader")
	ErrNameOnlyResolution = errors.New("shader info cannot be guessed from name")
	ErrInvalidGroupName   = errors.New("invalid sampler UV group name")
	ErrNilDescriptor      = errors.New("nil shader descriptor")
)

// Layout errors.
var (
	ErrLayoutOverflow = errors.New("more than 4 UV channels in vertex layout")
	ErrInvalidUVCount = errors.New("skinned layout needs 1 or 2 UV channels")
)

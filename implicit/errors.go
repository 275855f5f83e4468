package implicit

import "errors"

var (
	// ErrNoFeatures indicates an empty feature dictionary.
	ErrNoFeatures = errors.New("implicit: feature list is empty")
	// ErrDimensionMismatch indicates a coefficient matrix that is not n×n for n features.
	ErrDimensionMismatch = errors.New("implicit: coefficient matrix dimensions do not match feature count")
	// ErrDuplicateFeature indicates the same feature string listed twice.
	ErrDuplicateFeature = errors.New("implicit: duplicate feature name")
	// ErrNonFiniteCoefficient indicates a NaN or infinite matrix entry.
	ErrNonFiniteCoefficient = errors.New("implicit: coefficient is not finite")
)

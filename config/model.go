package config

import (
	"fmt"
	"os"

	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"
)

// Model is an implicit model document as produced by the fitting step.
type Model struct {
	FeatureNames []string `yaml:"feature_names" json:"feature_names"`
	// XDot is the derivative token every row is solved for.
	XDot string `yaml:"xdot" json:"xdot"`
	// LeftCoeff may be omitted for the identity.
	LeftCoeff  [][]float64 `yaml:"left_coeff,omitempty" json:"left_coeff,omitempty"`
	RightCoeff [][]float64 `yaml:"right_coeff" json:"right_coeff"`
}

// LoadModel reads a YAML or JSON model document.
func LoadModel(path string) (Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Model{}, fmt.Errorf("config: read model %s: %w", path, err)
	}
	return ParseModel(data)
}

// ParseModel decodes a YAML or JSON model document.
func ParseModel(data []byte) (Model, error) {
	var m Model
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Model{}, fmt.Errorf("%w: %v", ErrInvalidModel, err)
	}
	if len(m.FeatureNames) == 0 {
		return Model{}, fmt.Errorf("%w: feature_names is empty", ErrInvalidModel)
	}
	if m.XDot == "" {
		return Model{}, fmt.Errorf("%w: xdot is empty", ErrInvalidModel)
	}
	return m, nil
}

// Matrices converts the coefficient tables. left is nil when LeftCoeff was
// omitted.
func (m Model) Matrices() (left, right mat.Matrix, err error) {
	if len(m.RightCoeff) == 0 {
		return nil, nil, fmt.Errorf("%w: right_coeff is empty", ErrInvalidModel)
	}
	r, err := toMatrix("right_coeff", m.RightCoeff)
	if err != nil {
		return nil, nil, err
	}
	if len(m.LeftCoeff) == 0 {
		return nil, r, nil
	}
	l, err := toMatrix("left_coeff", m.LeftCoeff)
	if err != nil {
		return nil, nil, err
	}
	return l, r, nil
}

func toMatrix(name string, data [][]float64) (*mat.Dense, error) {
	rows := len(data)
	cols := len(data[0])
	if cols == 0 {
		return nil, fmt.Errorf("%w: %s has an empty first row", ErrInvalidModel, name)
	}
	flat := make([]float64, rows*cols)
	for i, row := range data {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: %s row %d has %d entries, want %d", ErrInvalidModel, name, i, len(row), cols)
		}
		copy(flat[i*cols:], row)
	}
	return mat.NewDense(rows, cols, flat), nil
}

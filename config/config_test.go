package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/explicitize/config"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, 1e-6, cfg.Tolerance)
	assert.Equal(t, 4, cfg.SigDigits)
	assert.Equal(t, 1, cfg.Workers)
	assert.False(t, cfg.Color)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeFile(t, "explicitize.yml", `
tolerance: 0.001
target: x0x1
gens: [x0, x1]
csv_path: out.csv
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.001, cfg.Tolerance)
	assert.Equal(t, 4, cfg.SigDigits, "unset fields keep defaults")
	assert.Equal(t, "x0x1", cfg.Target)
	assert.Equal(t, []string{"x0", "x1"}, cfg.Gens)
	assert.Equal(t, "out.csv", cfg.CSVPath)
	assert.Equal(t, 1, cfg.Workers)
}

func TestLoad_Invalid(t *testing.T) {
	_, err := config.Load(writeFile(t, "bad.yml", "tolerance: -1\n"))
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = config.Load(writeFile(t, "broken.yml", "tolerance: [\n"))
	assert.Error(t, err)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"zero tolerance", func(c *config.Config) { c.Tolerance = 0 }},
		{"negative digits", func(c *config.Config) { c.SigDigits = -1 }},
		{"no workers", func(c *config.Config) { c.Workers = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), config.ErrInvalidConfig)
		})
	}
}

func TestParseModel_YAML(t *testing.T) {
	m, err := config.ParseModel([]byte(`
feature_names: ["1", x0, x1, x0_dot]
xdot: x0_dot
right_coeff:
  - [0, 0, 0, 0]
  - [0, 0, 0, 0]
  - [0, 0, 0, 0]
  - [0, 2, -1, 0]
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "x0", "x1", "x0_dot"}, m.FeatureNames)

	left, right, err := m.Matrices()
	require.NoError(t, err)
	assert.Nil(t, left)
	r, c := right.Dims()
	assert.Equal(t, 4, r)
	assert.Equal(t, 4, c)
	assert.Equal(t, -1.0, right.At(3, 2))
}

func TestParseModel_JSON(t *testing.T) {
	m, err := config.ParseModel([]byte(`{
  "feature_names": ["x0", "x0_dot"],
  "xdot": "x0_dot",
  "left_coeff": [[1, 0], [0, 1]],
  "right_coeff": [[0, 0], [3, 0]]
}`))
	require.NoError(t, err)
	left, right, err := m.Matrices()
	require.NoError(t, err)
	require.NotNil(t, left)
	assert.Equal(t, 1.0, left.At(1, 1))
	assert.Equal(t, 3.0, right.At(1, 0))
}

func TestParseModel_Invalid(t *testing.T) {
	_, err := config.ParseModel([]byte("xdot: x0_dot\n"))
	assert.ErrorIs(t, err, config.ErrInvalidModel)

	_, err = config.ParseModel([]byte("feature_names: [x0]\n"))
	assert.ErrorIs(t, err, config.ErrInvalidModel)

	m, err := config.ParseModel([]byte("feature_names: [x0, x1]\nxdot: x1\nright_coeff: [[0, 1], [0]]\n"))
	require.NoError(t, err)
	_, _, err = m.Matrices()
	assert.ErrorIs(t, err, config.ErrInvalidModel)
}

func TestLoadModel(t *testing.T) {
	path := writeFile(t, "model.yml", "feature_names: [x0]\nxdot: x0\nright_coeff: [[0]]\n")
	m, err := config.LoadModel(path)
	require.NoError(t, err)
	assert.Equal(t, "x0", m.XDot)
}

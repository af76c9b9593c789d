package predictor

import (
	"context"
	"math"
	"os"
	"slices"

	"github.com/kubev2v/profit-planner/internal/estimation"
	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"
)

// LinearModel is a regression exported from the training notebook:
// prediction = intercept + sum(coefficients[f] * row[f]) over features.
// It is immutable once loaded and safe for concurrent use.
type LinearModel struct {
	Name         string             `json:"name"`
	Version      string             `json:"version"`
	Features     []string           `json:"features"`
	Intercept    float64            `json:"intercept"`
	Coefficients map[string]float64 `json:"coefficients"`
}

var _ estimation.Predictor = (*LinearModel)(nil)

// LoadLinearModel reads a YAML or JSON artifact from path.
func LoadLinearModel(path string) (*LinearModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read model artifact %s", path)
	}
	model, err := ParseLinearModel(data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load model artifact %s", path)
	}
	return model, nil
}

func ParseLinearModel(data []byte) (*LinearModel, error) {
	var model LinearModel
	if err := yaml.UnmarshalStrict(data, &model); err != nil {
		return nil, NewErrInvalidArtifact("%v", err)
	}
	if err := model.Validate(); err != nil {
		return nil, err
	}
	return &model, nil
}

// Validate checks the artifact is self-consistent.
func (m *LinearModel) Validate() error {
	if m.Name == "" {
		return NewErrInvalidArtifact("missing name")
	}
	if len(m.Features) == 0 {
		return NewErrInvalidArtifact("no features")
	}
	if !isFinite(m.Intercept) {
		return NewErrInvalidArtifact("intercept is not finite")
	}
	seen := make(map[string]struct{}, len(m.Features))
	for _, f := range m.Features {
		if _, dup := seen[f]; dup {
			return NewErrInvalidArtifact("duplicate feature %q", f)
		}
		seen[f] = struct{}{}
		w, ok := m.Coefficients[f]
		if !ok {
			return NewErrInvalidArtifact("no coefficient for feature %q", f)
		}
		if !isFinite(w) {
			return NewErrInvalidArtifact("coefficient of %q is not finite", f)
		}
	}
	if len(m.Coefficients) != len(m.Features) {
		return NewErrInvalidArtifact("%d coefficients for %d features", len(m.Coefficients), len(m.Features))
	}
	return nil
}

// ID identifies the artifact, for cache keys and logs.
func (m *LinearModel) ID() string {
	if m.Version == "" {
		return m.Name
	}
	return m.Name + "@" + m.Version
}

func (m *LinearModel) Predict(ctx context.Context, row estimation.FeatureVector) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	columns := row.Columns()
	if !slices.Equal(m.Features, columns) {
		return nil, NewErrSchemaMismatch(m.ID(), m.Features, columns)
	}

	prediction := m.Intercept
	for i, value := range row.Values() {
		prediction += m.Coefficients[columns[i]] * value
	}
	return []float64{prediction}, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

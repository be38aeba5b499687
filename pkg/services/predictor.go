package services

import (
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
)

// Model artifact kinds.
const (
	ModelKindRegression = "regression"
	ModelKindClassifier = "classifier"
)

// Artifact file names, one per model, as exported by the training pipeline.
const (
	priceModelFile  = "price_model.json"
	demandModelFile = "demand_model.json"
	stockModelFile  = "stock_model.json"
)

// Prediction is the output of a single model call. Regressions fill Value;
// classifiers fill both Value (raw score) and Label.
type Prediction struct {
	Value float64
	Label string
}

// Predictor is an opaque pre-trained model. Implementations are loaded once
// at startup and must be safe for concurrent use.
type Predictor interface {
	Name() string
	ExpectedFeatures() []string
	Predict(features []float64) (Prediction, error)
}

// modelArtifact is the on-disk JSON shape of a trained model.
type modelArtifact struct {
	Name         string    `json:"name"`
	Kind         string    `json:"kind"`
	Features     []string  `json:"features"`
	Intercept    float64   `json:"intercept"`
	Coefficients []float64 `json:"coefficients"`
	Thresholds   []float64 `json:"thresholds,omitempty"`
	Classes      []string  `json:"classes,omitempty"`
}

// LinearModel scores a feature vector as intercept + coefficients·x.
// A classifier additionally maps the score through ascending thresholds to
// a class label: score below Thresholds[0] yields Classes[0], and so on.
type LinearModel struct {
	name         string
	kind         string
	features     []string
	intercept    float64
	coefficients []float64
	thresholds   []float64
	classes      []string
}

// NewLinearModel builds a linear predictor. For classifiers, classes must
// have exactly one more entry than thresholds.
func NewLinearModel(name, kind string, features []string, intercept float64, coefficients, thresholds []float64, classes []string) (*LinearModel, error) {
	if len(features) != len(coefficients) {
		return nil, fmt.Errorf("model %s: %d features but %d coefficients", name, len(features), len(coefficients))
	}
	switch kind {
	case ModelKindRegression:
		if len(thresholds) > 0 || len(classes) > 0 {
			return nil, fmt.Errorf("model %s: regression must not carry thresholds or classes", name)
		}
	case ModelKindClassifier:
		if len(classes) != len(thresholds)+1 {
			return nil, fmt.Errorf("model %s: %d thresholds require %d classes, got %d", name, len(thresholds), len(thresholds)+1, len(classes))
		}
	default:
		return nil, fmt.Errorf("model %s: unknown kind %q", name, kind)
	}
	return &LinearModel{
		name:         name,
		kind:         kind,
		features:     features,
		intercept:    intercept,
		coefficients: coefficients,
		thresholds:   thresholds,
		classes:      classes,
	}, nil
}

// Name returns the model name from the artifact.
func (m *LinearModel) Name() string {
	return m.name
}

// ExpectedFeatures returns the feature columns in training order.
func (m *LinearModel) ExpectedFeatures() []string {
	return m.features
}

// Predict scores the feature vector.
func (m *LinearModel) Predict(features []float64) (Prediction, error) {
	if len(features) != len(m.coefficients) {
		return Prediction{}, fmt.Errorf("model %s: expected %d features, got %d", m.name, len(m.coefficients), len(features))
	}

	score := m.intercept
	for i, coefficient := range m.coefficients {
		score += coefficient * features[i]
	}

	if m.kind == ModelKindRegression {
		return Prediction{Value: score}, nil
	}

	idx := 0
	for _, threshold := range m.thresholds {
		if score >= threshold {
			idx++
		}
	}
	return Prediction{Value: score, Label: m.classes[idx]}, nil
}

// PredictorSet holds the three models the recommendation engine depends on.
type PredictorSet struct {
	Price  Predictor
	Demand Predictor
	Stock  Predictor
}

// LoadPredictors reads the three model artifacts from dir. Any missing or
// malformed artifact is an error; the caller decides whether that is fatal
// (the server treats it as load-or-die at startup).
func LoadPredictors(dir string) (*PredictorSet, error) {
	price, err := loadModel(filepath.Join(dir, priceModelFile))
	if err != nil {
		return nil, err
	}
	demand, err := loadModel(filepath.Join(dir, demandModelFile))
	if err != nil {
		return nil, err
	}
	stock, err := loadModel(filepath.Join(dir, stockModelFile))
	if err != nil {
		return nil, err
	}
	return &PredictorSet{Price: price, Demand: demand, Stock: stock}, nil
}

func loadModel(path string) (*LinearModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model artifact %s: %w", path, err)
	}

	var artifact modelArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("failed to parse model artifact %s: %w", path, err)
	}

	model, err := NewLinearModel(
		artifact.Name,
		artifact.Kind,
		artifact.Features,
		artifact.Intercept,
		artifact.Coefficients,
		artifact.Thresholds,
		artifact.Classes,
	)
	if err != nil {
		return nil, fmt.Errorf("invalid model artifact %s: %w", path, err)
	}
	return model, nil
}

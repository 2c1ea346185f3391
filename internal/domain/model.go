package domain

import (
	"context"
	"errors"
)

// ErrModelUnavailable marks a failure of the model collaborator. The engine
// propagates it unchanged: masking a scoring failure as a valid risk score
// would be unsafe, and retry policy belongs to the model's owner.
var ErrModelUnavailable = errors.New("model unavailable")

// Model is the trained classifier collaborator. Implementations return the
// raw, uncalibrated probability in [0, 1] for a feature vector.
type Model interface {
	PredictRaw(ctx context.Context, features FeatureVector) (float64, error)
}

package scoring

import (
	"fmt"
	"math"

	"framepick/domain/core"
)

// Policy combines one row of per-criterion measurements into a composite
// score. Treating every criterion as equally important is a modeling
// assumption, not a structural requirement, so the combination is pluggable.
type Policy interface {
	Name() string
	Combine(values []float64) (float64, error)
}

// WeightedSum is the reference policy: a per-criterion weighted sum.
// With nil weights every criterion contributes equally (all weights 1),
// which reproduces the original unweighted raw-sum behavior.
type WeightedSum struct {
	weights []float64
}

// NewUniformSum creates the default equal-weight summation policy.
func NewUniformSum() *WeightedSum {
	return &WeightedSum{}
}

// NewWeightedSum creates a summation policy with explicit per-criterion
// weights. Weights must be finite and non-negative.
func NewWeightedSum(weights []float64) (*WeightedSum, error) {
	if len(weights) == 0 {
		return nil, fmt.Errorf("weighted sum requires at least one weight")
	}
	for i, w := range weights {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("weight %d is not finite", i)
		}
		if w < 0 {
			return nil, fmt.Errorf("weight %d is negative (%g)", i, w)
		}
	}
	copied := make([]float64, len(weights))
	copy(copied, weights)
	return &WeightedSum{weights: copied}, nil
}

// Name returns the policy name
func (p *WeightedSum) Name() string {
	if len(p.weights) == 0 {
		return "uniform_sum"
	}
	return "weighted_sum"
}

// Combine sums the row values under the configured weights.
func (p *WeightedSum) Combine(values []float64) (float64, error) {
	if len(p.weights) > 0 && len(p.weights) != len(values) {
		return 0, fmt.Errorf("%w: %d weights for %d criteria",
			core.ErrPolicyMismatch, len(p.weights), len(values))
	}

	sum := 0.0
	for i, v := range values {
		w := 1.0
		if len(p.weights) > 0 {
			w = p.weights[i]
		}
		sum += w * v
	}
	return sum, nil
}

package cmd

import (
	"github.com/CraigKelly/mcmcbugs/model"
	"github.com/CraigKelly/mcmcbugs/node"
	"github.com/CraigKelly/mcmcbugs/value"
)

// buildDemoScenario constructs a small linear-regression-flavored model:
// a Normal(0, 0.01) prior on a scalar mean mu, a Linear deterministic
// combining mu with a fixed design vector, and a set of Normal(mu, 1)
// observed nodes whose mean is mu itself (no observation reads the
// deterministic) - built by hand rather than read from a file since this
// repo carries no model file format.
func buildDemoScenario() (*model.Model, error) {
	m := model.New("demo")

	mu, err := node.NewNormal("mu", node.StaticParam(value.NewScalar(0)), node.StaticParam(value.NewScalar(0.01)), value.NewScalar(0), false)
	if err != nil {
		return nil, err
	}
	m.AddStochastic(mu)

	fitted := node.Linear("fitted", value.NewMatrix(5, 1, []float64{1, 1, 1, 1, 1}), node.DynamicParam(mu))
	m.AddDeterministic(fitted)
	m.Depends("fitted", "mu")

	observations := []float64{2.8, 3.1, 2.6, 3.4, 2.9}
	for i, y := range observations {
		name := observationName(i)
		obs, err := node.NewNormal(name, node.DynamicParam(mu), node.StaticParam(value.NewScalar(1)), value.NewScalar(y), true)
		if err != nil {
			return nil, err
		}
		m.AddStochastic(obs)
		m.Depends(name, "mu")
	}

	return m, nil
}

func observationName(i int) string {
	names := []string{"y0", "y1", "y2", "y3", "y4", "y5", "y6", "y7", "y8", "y9"}
	if i < len(names) {
		return names[i]
	}
	return "y_extra"
}

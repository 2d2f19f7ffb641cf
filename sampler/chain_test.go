package sampler

import (
	"testing"

	"github.com/CraigKelly/mcmcbugs/model"
	"github.com/CraigKelly/mcmcbugs/node"
	"github.com/CraigKelly/mcmcbugs/rand"
	"github.com/CraigKelly/mcmcbugs/value"
	"github.com/stretchr/testify/assert"
)

func buildTestModel() (*model.Model, error) {
	m := model.New("chain-test")
	mu, err := node.NewNormal("mu", node.StaticParam(value.NewScalar(0)), node.StaticParam(value.NewScalar(0.1)), value.NewScalar(0), false)
	if err != nil {
		return nil, err
	}
	m.AddStochastic(mu)
	obs, err := node.NewNormal("y", node.DynamicParam(mu), node.StaticParam(value.NewScalar(1)), value.NewScalar(1.5), true)
	if err != nil {
		return nil, err
	}
	m.AddStochastic(obs)
	return m, nil
}

func TestNewChainRunsBurnIn(t *testing.T) {
	assert := assert.New(t)

	gen, err := rand.NewGenerator(11)
	assert.NoError(err)

	m, err := buildTestModel()
	assert.NoError(err)
	ch, err := NewChain(m, gen, 100, 10)
	assert.NoError(err)
	assert.NotNil(ch)
	assert.Equal(int64(100), ch.TotalSampleCount)
}

func TestChainAdvanceGrowsTrace(t *testing.T) {
	assert := assert.New(t)

	gen, err := rand.NewGenerator(12)
	assert.NoError(err)

	m, err := buildTestModel()
	assert.NoError(err)
	ch, err := NewChain(m, gen, 10, 5)
	assert.NoError(err)

	err = ch.Advance(500)
	assert.NoError(err)
	assert.Equal(int64(510), ch.TotalSampleCount)

	ratio := ch.AcceptanceRatio("mu")
	assert.True(ratio >= 0 && ratio <= 1)
}

func TestNewChainRejectsNilModel(t *testing.T) {
	assert := assert.New(t)

	gen, err := rand.NewGenerator(1)
	assert.NoError(err)

	_, err = NewChain(nil, gen, 10, 1)
	assert.Error(err)
}

package kernels

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUseFastLogTogglesImplementation(t *testing.T) {
	assert := assert.New(t)
	defer UseFastLog(false)

	UseFastLog(false)
	assert.InDelta(math.Log(10), logFn(10), 1e-9)

	UseFastLog(true)
	assert.InDelta(math.Log(10), logFn(10), 5e-3)
}

func TestFastLogHandlesNonPositive(t *testing.T) {
	assert := assert.New(t)

	assert.True(math.IsInf(fastLog(0), -1))
	assert.True(math.IsInf(fastLog(-5), -1))
}

package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRingFloat(t *testing.T) {
	assert := assert.New(t)

	rf := NewRingFloat(6)
	assert.Equal(6, rf.BufSize)
	assert.Equal(0, rf.Count)

	rf.Add(1)
	rf.Add(2)
	rf.Add(3)
	rf.Add(4)
	rf.Add(5)
	assert.Equal(6, rf.BufSize)
	assert.Equal(5, rf.Count)
	assert.Nil(rf.FirstHalf())
	assert.Nil(rf.SecondHalf())

	rf.Add(6)
	assert.Equal(6, rf.BufSize)
	assert.Equal(6, rf.Count)

	exp := 0.0
	for iter := rf.FirstHalf(); iter.Next(); {
		val := iter.Value()
		exp++
		assert.Equal(exp, val)
	}
	for iter := rf.SecondHalf(); iter.Next(); {
		val := iter.Value()
		exp++
		assert.Equal(exp, val)
	}

	// 1 2 3 4 5 6 add 8 add 8 => 8 8 3 4 5 6
	// So first=3,4,5 second=6,8,8
	rf.Add(8)
	rf.Add(8)
	expVals := []float64{3, 4, 5, 6, 8, 8}
	idx := 0
	for iter := rf.FirstHalf(); iter.Next(); {
		val := iter.Value()
		exp := expVals[idx]
		idx++
		assert.Equal(exp, val)
	}
	for iter := rf.SecondHalf(); iter.Next(); {
		val := iter.Value()
		exp := expVals[idx]
		idx++
		assert.Equal(exp, val)
	}
}

func TestRingFloatMean(t *testing.T) {
	assert := assert.New(t)

	rf := NewRingFloat(4)
	assert.Equal(0.0, rf.Mean())

	rf.Add(1)
	rf.Add(2)
	rf.Add(3)
	assert.InDelta(2.0, rf.Mean(), 1e-9)
}

// Package buffer implements the ring buffer used to keep a bounded,
// rolling trace of per-node Metropolis acceptance ratios - ambient
// monitoring data that is never consulted by any sampling decision.
package buffer

// RingFloat is a circular buffer of float64s with the ability to iterate
// over the first and second halves of the values collected, in the order
// they were appended.
type RingFloat struct {
	buffer    []float64 // actual storage
	pos       int       // Current position in buffer
	BufSize   int       // BufSize is the fixed number of values maintained in memory
	Count     int       // Count is the number of values in memory. Will always be <= BufSize
	TotalSeen int64     // TotalSeen is the total number of times Add has been called
}

// NewRingFloat creates a new ring buffer of totalSize. If totalSize is not
// a multiple of 2, it will be adjusted down to the nearest even size.
func NewRingFloat(totalSize int) *RingFloat {
	// Fix odd number situations
	half := totalSize / 2
	total := half + half

	return &RingFloat{
		buffer:  make([]float64, total),
		pos:     0,
		BufSize: total,
		Count:   0,
	}
}

// Internal: return the next array position
func (c *RingFloat) nextPos() int {
	return (c.pos + 1) % c.BufSize
}

// Add appends the given value to the buffer, overwriting the oldest entry.
func (c *RingFloat) Add(x float64) {
	c.TotalSeen++

	c.buffer[c.pos] = x

	c.pos = c.nextPos()

	c.Count++
	if c.Count > c.BufSize {
		c.Count = c.BufSize // max out
	}
}

// Mean returns the arithmetic mean of the values currently held, or 0 if
// the buffer is empty.
func (c *RingFloat) Mean() float64 {
	if c.Count == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range c.buffer[:c.Count] {
		sum += v
	}
	return sum / float64(c.Count)
}

// FirstHalf returns an iterator over the first (oldest) half of the stored
// values. Will not return a valid iterator until Add has been called at
// least BufSize times.
func (c *RingFloat) FirstHalf() *RingFloatIterator {
	if c.Count < c.BufSize {
		return nil
	}

	return &RingFloatIterator{
		buf:    c,
		curr:   c.pos, // Oldest is the one we're about to write
		remain: c.BufSize / 2,
	}
}

// SecondHalf returns an iterator over the second (most recent) half of the
// stored values. Will not return a valid iterator until Add has been
// called at least BufSize times.
func (c *RingFloat) SecondHalf() *RingFloatIterator {
	if c.Count < c.BufSize {
		return nil
	}

	half := c.BufSize / 2
	pos := (c.pos + half) % c.BufSize

	return &RingFloatIterator{
		buf:    c,
		curr:   pos,
		remain: half,
	}
}

// RingFloatIterator provides an iterator over a RingFloat buffer.
type RingFloatIterator struct {
	buf    *RingFloat
	curr   int
	remain int
}

// Next returns true when there are more values to read via Value.
func (i *RingFloatIterator) Next() bool {
	return i.remain > 0
}

// Value returns the next value to be read. Should only be called if
// Next() is true.
func (i *RingFloatIterator) Value() float64 {
	v := i.buf.buffer[i.curr]
	i.curr = (i.curr + 1) % i.buf.BufSize
	i.remain--
	return v
}

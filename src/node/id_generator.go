package node

// IDGenerator produces message ids. Successive calls must return strictly
// increasing values.
type IDGenerator interface {
	Next() int64
}

// CounterIDGenerator hands out consecutive integers. It is not safe for
// concurrent use.
type CounterIDGenerator struct {
	next int64
}

// NewCounterIDGenerator returns a generator whose first id is start.
func NewCounterIDGenerator(start int64) *CounterIDGenerator {
	return &CounterIDGenerator{next: start}
}

// Next implements the IDGenerator interface.
func (c *CounterIDGenerator) Next() int64 {
	id := c.next
	c.next++
	return id
}

// Peek returns the id the next call to Next will return.
func (c *CounterIDGenerator) Peek() int64 {
	return c.next
}

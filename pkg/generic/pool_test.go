package generic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResetPoolClearsOnPut(t *testing.T) {
	p := NewResetPool(func() *[]int {
		s := make([]int, 0, 4)
		return &s
	}, func(s *[]int) *[]int {
		*s = (*s)[:0]
		return s
	})

	buf := p.Get()
	*buf = append(*buf, 1, 2, 3)
	p.Put(buf)

	assert.Len(t, *buf, 0)
}

func TestWithReturnsValue(t *testing.T) {
	gets := 0
	p := NewPool(func() *int {
		gets++
		v := 0
		return &v
	})

	got := With(p, func(v *int) int {
		*v = 7
		return *v * 2
	})
	assert.Equal(t, 14, got)
	assert.GreaterOrEqual(t, gets, 1)
}

func TestWithReleasesOnPanic(t *testing.T) {
	released := false
	p := NewResetPool(func() *int { return new(int) }, func(v *int) *int {
		released = true
		return v
	})

	assert.Panics(t, func() {
		With(p, func(*int) struct{} { panic("boom") })
	})
	assert.True(t, released)
}

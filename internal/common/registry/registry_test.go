package registry

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type namedThing struct {
	name  string
	value int
}

func (n namedThing) Name() string { return n.name }

func TestRegisterAndGet(t *testing.T) {
	r := New[namedThing]()
	r.Register(namedThing{name: "alpha", value: 1})

	got, err := r.Get("alpha")
	require.NoError(t, err)
	assert.Equal(t, 1, got.value)

	_, err = r.Get("missing")
	assert.Error(t, err)
}

func TestNamesKeepRegistrationOrder(t *testing.T) {
	r := New[namedThing]()
	for _, name := range []string{"charlie", "alpha", "bravo"} {
		r.Register(namedThing{name: name})
	}
	assert.Equal(t, []string{"charlie", "alpha", "bravo"}, r.Names())
}

func TestReRegisterKeepsPosition(t *testing.T) {
	r := New[namedThing]()
	r.Register(namedThing{name: "alpha", value: 1})
	r.Register(namedThing{name: "bravo", value: 2})
	r.Register(namedThing{name: "alpha", value: 3})

	assert.Equal(t, []string{"alpha", "bravo"}, r.Names())
	got, err := r.Get("alpha")
	require.NoError(t, err)
	assert.Equal(t, 3, got.value)
	assert.Equal(t, 2, r.Count())
}

func TestIsRegistered(t *testing.T) {
	r := New[namedThing]()
	r.Register(namedThing{name: "alpha"})
	assert.True(t, r.IsRegistered("alpha"))
	assert.False(t, r.IsRegistered("bravo"))
}

func TestConcurrentAccess(t *testing.T) {
	r := New[namedThing]()
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			r.Register(namedThing{name: "shared", value: i})
		}(i)
		go func() {
			defer wg.Done()
			r.Names()
			r.IsRegistered("shared")
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, r.Count())
}

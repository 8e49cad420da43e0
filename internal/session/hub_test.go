package session

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHub(t *testing.T) {
	h := NewHub()
	a, cancelA := h.Subscribe("s1")
	b, cancelB := h.Subscribe("s1")
	other, cancelOther := h.Subscribe("s2")
	defer cancelOther()
	require.Equal(t, 2, h.Subscribers("s1"))

	h.Publish("s1")
	h.Publish("s1") // coalesced, must not block
	require.Len(t, a, 1)
	require.Len(t, b, 1)
	require.Len(t, other, 0)

	cancelA()
	cancelA()
	require.Equal(t, 1, h.Subscribers("s1"))
	cancelB()
	require.Equal(t, 0, h.Subscribers("s1"))

	// publishing with no subscribers is a no-op
	h.Publish("s1")
}

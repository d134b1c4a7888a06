package keycode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEktosStoekRoundTrip(t *testing.T) {
	cases := []Code{
		Key('x'),
		Key('x', Meta),
		Key('X', Ctrl),
		Key(3, FKey),
	}
	for _, c := range cases {
		s := Ektos(c)
		got, err := Stoek(s)
		require.NoError(t, err, s)
		assert.Equal(t, Ektos(c), Ektos(got), "round trip through %q", s)
	}
}

func TestCaretForm(t *testing.T) {
	assert.Equal(t, "^C", CaretForm(0x03))
	assert.Equal(t, "^[", CaretForm(0x1B))
	assert.Equal(t, "", CaretForm('x'))
}

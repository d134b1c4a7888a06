package mem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytesStorLoad(t *testing.T) {
	var m Bytes
	require.NoError(t, m.Stor(0, 'a', 'b', 'c'))
	require.NoError(t, m.Stor(100, 'x', 'y', 'z'))

	b, err := m.Load(1)
	require.NoError(t, err)
	assert.Equal(t, byte('b'), b)

	b, err = m.Load(50)
	require.NoError(t, err)
	assert.Equal(t, byte(0), b)

	buf := make([]byte, 6)
	require.NoError(t, m.LoadInto(0, buf))
	assert.Equal(t, []byte{'a', 'b', 'c', 0, 0, 0}, buf)

	buf = make([]byte, 3)
	require.NoError(t, m.LoadInto(100, buf))
	assert.Equal(t, []byte{'x', 'y', 'z'}, buf)
}

func TestBytesLimit(t *testing.T) {
	m := Bytes{PagedCore: PagedCore{Limit: 10}}
	require.NoError(t, m.Stor(0, 1, 2, 3))
	err := m.Stor(20, 1)
	require.Error(t, err)
	var lim LimitError
	require.ErrorAs(t, err, &lim)
	assert.Equal(t, "stor", lim.Op)
}

func TestBytesSize(t *testing.T) {
	var m Bytes
	require.NoError(t, m.Stor(0, 1, 2, 3))
	assert.True(t, m.Size() >= 3)
}

package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestOpen_Backends(t *testing.T) {
	for _, backend := range []string{"", BackendJSON, BackendSQLite, BackendMemory, "SQLite"} {
		t.Run(backend, func(t *testing.T) {
			kv, closer, err := Open(backend, t.TempDir(), zap.NewNop())
			require.NoError(t, err)
			defer closer.Close()

			require.NoError(t, kv.Set(KeyProducts, "[]"))
			v, ok, err := kv.Get(KeyProducts)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "[]", v)
		})
	}
}

func TestOpen_Unknown(t *testing.T) {
	_, _, err := Open("redis", t.TempDir(), nil)
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

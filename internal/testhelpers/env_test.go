package testhelpers_test

import (
	"github.com/myrjola/mattepaint/internal/testhelpers"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestLookupEnv(t *testing.T) {
	lookupEnv := testhelpers.LookupEnv(map[string]string{"MATTEPAINT_ADDR": "localhost:0", "EMPTY": ""})

	v, ok := lookupEnv("MATTEPAINT_ADDR")
	require.True(t, ok)
	require.Equal(t, "localhost:0", v)

	v, ok = lookupEnv("EMPTY")
	require.True(t, ok, "set but empty is still set")
	require.Empty(t, v)

	_, ok = lookupEnv("MATTEPAINT_SQLITE_URL")
	require.False(t, ok)
}

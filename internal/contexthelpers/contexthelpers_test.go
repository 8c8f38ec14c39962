package contexthelpers_test

import (
	"github.com/myrjola/mattepaint/internal/contexthelpers"
	"github.com/stretchr/testify/require"
	"net/http/httptest"
	"testing"
)

func TestRequestContext(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/hdris/1", nil)
	require.Empty(t, contexthelpers.CurrentPath(r.Context()))
	require.Empty(t, contexthelpers.RequestID(r.Context()))

	r = contexthelpers.SetCurrentPath(r, r.URL.Path)
	r = contexthelpers.SetRequestID(r, "0b7a4a8e")
	require.Equal(t, "/api/hdris/1", contexthelpers.CurrentPath(r.Context()))
	require.Equal(t, "0b7a4a8e", contexthelpers.RequestID(r.Context()))
}

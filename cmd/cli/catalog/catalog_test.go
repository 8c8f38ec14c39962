package catalog_test

import (
	"bytes"
	"context"
	"encoding/json"
	"github.com/myrjola/mattepaint/cmd/cli/catalog"
	"github.com/myrjola/mattepaint/internal/models"
	"github.com/myrjola/mattepaint/internal/repositories"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
	"io"
	"testing"
)

func execute(t *testing.T, args ...string) ([]byte, error) {
	t.Helper()
	root := &cobra.Command{Use: "mattepaint-cli"} //nolint:exhaustruct // test root
	catalog.Register(root)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{"--sqlite-url", ":memory:"}, args...))
	err := root.ExecuteContext(context.Background())
	return out.Bytes(), err
}

func TestHdrisList(t *testing.T) {
	out, err := execute(t, "hdris", "list")
	require.NoError(t, err)

	var hdris []models.Hdri
	require.NoError(t, json.Unmarshal(out, &hdris))
	require.Len(t, hdris, 6)
	require.Equal(t, "Sequence 006", hdris[5].Title)
}

func TestScansGet(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		decode  func([]byte, any) error
		wantID  int64
		wantErr error
	}{
		{
			name:   "json",
			args:   []string{"scans", "get", "4"},
			decode: json.Unmarshal,
			wantID: 4,
		},
		{
			name:   "yaml",
			args:   []string{"scans", "get", "2", "--output", "yaml"},
			decode: yaml.Unmarshal,
			wantID: 2,
		},
		{
			name:    "not found",
			args:    []string{"scans", "get", "42"},
			wantErr: repositories.ErrNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			var scan models.Scan
			require.NoError(t, tt.decode(out, &scan))
			require.Equal(t, tt.wantID, scan.ID)
			require.True(t, scan.ScanType.Valid())
		})
	}
}

func TestInvalidArguments(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "non-numeric id", args: []string{"hdris", "get", "abc"}},
		{name: "missing id", args: []string{"hdris", "get"}},
		{name: "unknown output format", args: []string{"hdris", "list", "--output", "xml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
		})
	}
}

package models_test

import (
	"github.com/myrjola/mattepaint/internal/models"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestScanType_Valid(t *testing.T) {
	tests := []struct {
		scanType models.ScanType
		want     bool
	}{
		{scanType: models.ScanTypePhotogrammetry, want: true},
		{scanType: models.ScanTypeGaussianSplat, want: true},
		{scanType: models.ScanTypeLidar, want: true},
		{scanType: "gaussian_splat", want: false},
		{scanType: "", want: false},
	}
	for _, tt := range tests {
		t.Run(string(tt.scanType), func(t *testing.T) {
			require.Equal(t, tt.want, tt.scanType.Valid())
		})
	}
}

func TestScan_Clone(t *testing.T) {
	scan := models.Scan{
		ID:          1,
		FileFormats: []string{"FBX", "OBJ"},
		Tags:        []string{"nature"},
		Files:       []models.ScanFile{{FileID: 1, Format: "fbx", Resolution: "4K"}},
	}

	clone := scan.Clone()
	require.Equal(t, scan, clone)
	clone.FileFormats[0] = "USD"
	clone.Tags[0] = "urban"
	clone.Files[0].Format = "ply"
	require.Equal(t, "FBX", scan.FileFormats[0])
	require.Equal(t, "nature", scan.Tags[0])
	require.Equal(t, "fbx", scan.Files[0].Format)

	require.Nil(t, models.Scan{}.Clone().Tags, "nil slices stay nil")
}

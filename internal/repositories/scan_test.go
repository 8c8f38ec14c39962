package repositories_test

import (
	"context"
	"github.com/myrjola/mattepaint/internal/models"
	"github.com/myrjola/mattepaint/internal/repositories"
	"github.com/myrjola/mattepaint/internal/testhelpers"
	"github.com/stretchr/testify/require"
	"io"
	"testing"
)

func newScanRepository(t *testing.T) *repositories.ScanRepository {
	t.Helper()
	repo := repositories.NewScanRepository(newTestDB(t), testhelpers.NewLogger(io.Discard), repositories.Latency{})
	t.Cleanup(repo.Close)
	return repo
}

func TestNewScanRepository(t *testing.T) {
	repo := newScanRepository(t)

	require.Empty(t, repo.List())
	require.False(t, repo.Loading())
	require.Equal(t, repositories.StateIdle, repo.State())
}

func TestScanRepository_FetchList(t *testing.T) {
	repo := newScanRepository(t)

	require.NoError(t, repo.FetchList(context.Background()))
	require.False(t, repo.Loading())

	scans := repo.List()
	require.Len(t, scans, 6)

	rock := scans[1]
	require.Equal(t, models.Scan{
		ID:                2,
		Slug:              "ancient-rock-formation",
		Title:             "Ancient Rock Formation",
		Description:       "Weathered sandstone outcrop.",
		LongDescription:   "A weathered sandstone outcrop captured with high-overlap photogrammetry. Deep erosion channels and lichen patches hold up in extreme close-ups.",
		VideoURL:          "/videos/scans/19966012M_gsplat_turntable.mov",
		PreviewVideoURL:   "/videos/scans/19966012M_gsplat_turntable.mov",
		PosterURL:         "/images/scans/ancient-rock-formation.jpg",
		PolyCount:         "2.4M",
		TextureResolution: "8K",
		FileFormats:       []string{"fbx", "obj", "usd"},
		ScanType:          models.ScanTypePhotogrammetry,
		CaptureDate:       "2024-09-02",
		Location:          "Utah, USA",
		Tags:              []string{"rock", "nature", "desert"},
		Files: []models.ScanFile{
			{FileID: 1, Format: "fbx", Resolution: "8K", URL: "/downloads/scans/ancient-rock-formation_8k.fbx"},
			{FileID: 2, Format: "usd", Resolution: "8K", URL: "/downloads/scans/ancient-rock-formation_8k.usd"},
		},
	}, rock)

	for _, scan := range scans {
		require.True(t, scan.ScanType.Valid())
		require.NotNil(t, scan.Tags)
	}
}

func TestScanRepository_FetchByID(t *testing.T) {
	ctx := context.Background()
	repo := newScanRepository(t)

	// Ids 3 and 5 share a slug, each id still resolves to its own record.
	three, err := repo.FetchByID(ctx, 3)
	require.NoError(t, err)
	require.Len(t, repo.List(), 6, "lookup populates the list")
	five, err := repo.FetchByID(ctx, 5)
	require.NoError(t, err)
	require.Equal(t, int64(3), three.ID)
	require.Equal(t, int64(5), five.ID)
	require.Equal(t, three.Slug, five.Slug)
	require.NotEqual(t, three.Title, five.Title)

	_, err = repo.FetchByID(ctx, 7)
	require.ErrorIs(t, err, repositories.ErrNotFound)
	require.False(t, repo.Loading())
	require.Equal(t, repositories.StateIdle, repo.State())
}

func TestScanRepository_returnsDeepCopies(t *testing.T) {
	ctx := context.Background()
	repo := newScanRepository(t)

	got, err := repo.FetchByID(ctx, 1)
	require.NoError(t, err)
	want := repo.List()[0]
	require.NotEmpty(t, got.Tags)
	require.NotEmpty(t, got.FileFormats)

	got.Tags[0] = "changed"
	got.FileFormats[0] = "changed"
	require.Equal(t, want, repo.List()[0])
}

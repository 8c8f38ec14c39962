package models_test

import (
	"github.com/myrjola/mattepaint/internal/models"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestHdri_Clone(t *testing.T) {
	hdri := models.Hdri{
		ID: 1,
		Frames: []models.HdriFrame{
			{Frame: 1000, Time: "16:00", Files: []models.HdriFile{{FileID: 1, Res: 4, Ext: "exr"}}},
			{Frame: 1001, Time: "16:01"},
		},
	}

	clone := hdri.Clone()
	require.Equal(t, hdri, clone)
	clone.Frames[0].Time = "17:00"
	clone.Frames[0].Files[0].Ext = "hdr"
	require.Equal(t, "16:00", hdri.Frames[0].Time)
	require.Equal(t, "exr", hdri.Frames[0].Files[0].Ext)

	empty := models.Hdri{ID: 2, Frames: []models.HdriFrame{}}
	require.NotNil(t, empty.Clone().Frames, "an empty sequence stays empty, not nil")
}

package repositories

import (
	"context"
	"database/sql"
	"github.com/jmoiron/sqlx"
	"github.com/myrjola/mattepaint/internal/errors"
	"github.com/myrjola/mattepaint/internal/models"
	"github.com/myrjola/mattepaint/internal/sqlite"
	"log/slog"
)

// HdriRepository holds the HDRI sequences of the gallery.
type HdriRepository struct {
	*collection[models.Hdri]
	dbs    *sqlite.Database
	logger *slog.Logger
}

func NewHdriRepository(dbs *sqlite.Database, logger *slog.Logger, latency Latency) *HdriRepository {
	logger = logger.With("source", "HdriRepository")
	r := &HdriRepository{
		collection: nil,
		dbs:        dbs,
		logger:     logger,
	}
	r.collection = newCollection(r.readAll, models.Hdri.Clone, latency, logger)
	return r
}

type hdriFrameRow struct {
	HdriID     int64   `db:"hdri_id"`
	Frame      int     `db:"frame"`
	Elevation  float64 `db:"elevation"`
	Luma       float64 `db:"luma"`
	Time       string  `db:"time"`
	PreviewURL string  `db:"preview_url"`
}

type hdriFileRow struct {
	FileID int64  `db:"file_id"`
	HdriID int64  `db:"hdri_id"`
	Frame  int    `db:"frame"`
	Res    int    `db:"res"`
	Ext    string `db:"ext"`
	URL    string `db:"url"`
}

// readAll reads every HDRI with its frames and files in one read transaction so that the result is consistent.
func (r *HdriRepository) readAll(ctx context.Context) ([]models.Hdri, error) {
	var (
		err    error
		tx     *sqlx.Tx
		hdris  []models.Hdri
		frames []hdriFrameRow
		files  []hdriFileRow
	)

	if tx, err = r.dbs.ReadOnly.BeginTxx(ctx, &sql.TxOptions{ReadOnly: true}); err != nil { //nolint:exhaustruct // default isolation
		return nil, errors.Wrap(err, "begin read transaction")
	}
	defer func() {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			rbErr = errors.Wrap(rbErr, "rollback read transaction")
			r.logger.LogAttrs(ctx, slog.LevelError, "could not rollback", errors.SlogError(rbErr))
		}
	}()

	stmt := `SELECT id, slug, title, description, long_description, elevation_range, time_range, luma_range
FROM hdris
ORDER BY id`
	if err = tx.SelectContext(ctx, &hdris, stmt); err != nil {
		return nil, errors.Wrap(err, "select hdris")
	}

	stmt = `SELECT hdri_id, frame, elevation, luma, time, preview_url
FROM hdri_frames
ORDER BY hdri_id, frame`
	if err = tx.SelectContext(ctx, &frames, stmt); err != nil {
		return nil, errors.Wrap(err, "select hdri frames")
	}

	stmt = `SELECT file_id, hdri_id, frame, res, ext, url
FROM hdri_files
ORDER BY file_id`
	if err = tx.SelectContext(ctx, &files, stmt); err != nil {
		return nil, errors.Wrap(err, "select hdri files")
	}

	if err = tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "commit read transaction")
	}

	return assembleHdris(hdris, frames, files), nil
}

func assembleHdris(hdris []models.Hdri, frames []hdriFrameRow, files []hdriFileRow) []models.Hdri {
	type frameKey struct {
		hdriID int64
		frame  int
	}

	filesByFrame := make(map[frameKey][]models.HdriFile)
	for _, f := range files {
		key := frameKey{hdriID: f.HdriID, frame: f.Frame}
		filesByFrame[key] = append(filesByFrame[key], models.HdriFile{
			FileID: f.FileID,
			Res:    f.Res,
			Ext:    f.Ext,
			URL:    f.URL,
		})
	}

	framesByHdri := make(map[int64][]models.HdriFrame, len(hdris))
	for _, f := range frames {
		framesByHdri[f.HdriID] = append(framesByHdri[f.HdriID], models.HdriFrame{
			Frame:     f.Frame,
			Elevation: f.Elevation,
			Luma:      f.Luma,
			Time:      f.Time,
			Preview:   models.Preview{URL: f.PreviewURL},
			Files:     filesByFrame[frameKey{hdriID: f.HdriID, frame: f.Frame}],
		})
	}

	for i := range hdris {
		hdris[i].Frames = framesByHdri[hdris[i].ID]
		if hdris[i].Frames == nil {
			hdris[i].Frames = []models.HdriFrame{}
		}
	}
	return hdris
}

package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"github.com/jmoiron/sqlx"
	"github.com/myrjola/mattepaint/internal/errors"
	"github.com/myrjola/mattepaint/internal/models"
	"github.com/myrjola/mattepaint/internal/sqlite"
	"log/slog"
)

// ScanRepository holds the 3D scan assets of the gallery.
type ScanRepository struct {
	*collection[models.Scan]
	dbs    *sqlite.Database
	logger *slog.Logger
}

func NewScanRepository(dbs *sqlite.Database, logger *slog.Logger, latency Latency) *ScanRepository {
	logger = logger.With("source", "ScanRepository")
	r := &ScanRepository{
		collection: nil,
		dbs:        dbs,
		logger:     logger,
	}
	r.collection = newCollection(r.readAll, models.Scan.Clone, latency, logger)
	return r
}

// stringList is a list of strings stored as a JSON array in a TEXT column.
type stringList []string

func (l *stringList) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	case nil:
		*l = stringList{}
		return nil
	default:
		return errors.New("unsupported type for string list", slog.Any("src", src))
	}
	list := stringList{}
	if err := json.Unmarshal(raw, &list); err != nil {
		return errors.Wrap(err, "unmarshal string list", slog.String("src", string(raw)))
	}
	*l = list
	return nil
}

type scanRow struct {
	ID                int64           `db:"id"`
	Slug              string          `db:"slug"`
	Title             string          `db:"title"`
	Description       string          `db:"description"`
	LongDescription   string          `db:"long_description"`
	VideoURL          string          `db:"video_url"`
	PreviewVideoURL   string          `db:"preview_video_url"`
	PosterURL         string          `db:"poster_url"`
	PolyCount         string          `db:"poly_count"`
	TextureResolution string          `db:"texture_resolution"`
	FileFormats       stringList      `db:"file_formats"`
	ScanType          models.ScanType `db:"scan_type"`
	CaptureDate       string          `db:"capture_date"`
	Location          string          `db:"location"`
	Tags              stringList      `db:"tags"`
}

type scanFileRow struct {
	FileID     int64  `db:"file_id"`
	ScanID     int64  `db:"scan_id"`
	Format     string `db:"format"`
	Resolution string `db:"resolution"`
	URL        string `db:"url"`
}

// readAll reads every scan with its downloadable files in one read transaction.
func (r *ScanRepository) readAll(ctx context.Context) ([]models.Scan, error) {
	var (
		err   error
		tx    *sqlx.Tx
		rows  []scanRow
		files []scanFileRow
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

	stmt := `SELECT id,
       slug,
       title,
       description,
       long_description,
       video_url,
       preview_video_url,
       poster_url,
       poly_count,
       texture_resolution,
       file_formats,
       scan_type,
       capture_date,
       location,
       tags
FROM scans
ORDER BY id`
	if err = tx.SelectContext(ctx, &rows, stmt); err != nil {
		return nil, errors.Wrap(err, "select scans")
	}

	stmt = `SELECT file_id, scan_id, format, resolution, url FROM scan_files ORDER BY scan_id, file_id`
	if err = tx.SelectContext(ctx, &files, stmt); err != nil {
		return nil, errors.Wrap(err, "select scan files")
	}

	if err = tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "commit read transaction")
	}

	filesByScan := make(map[int64][]models.ScanFile)
	for _, f := range files {
		filesByScan[f.ScanID] = append(filesByScan[f.ScanID], models.ScanFile{
			FileID:     f.FileID,
			Format:     f.Format,
			Resolution: f.Resolution,
			URL:        f.URL,
		})
	}

	scans := make([]models.Scan, 0, len(rows))
	for _, row := range rows {
		if !row.ScanType.Valid() {
			return nil, errors.New("invalid scan type",
				slog.Int64("id", row.ID), slog.String("scanType", string(row.ScanType)))
		}
		scans = append(scans, models.Scan{
			ID:                row.ID,
			Slug:              row.Slug,
			Title:             row.Title,
			Description:       row.Description,
			LongDescription:   row.LongDescription,
			VideoURL:          row.VideoURL,
			PreviewVideoURL:   row.PreviewVideoURL,
			PosterURL:         row.PosterURL,
			PolyCount:         row.PolyCount,
			TextureResolution: row.TextureResolution,
			FileFormats:       row.FileFormats,
			ScanType:          row.ScanType,
			CaptureDate:       row.CaptureDate,
			Location:          row.Location,
			Tags:              row.Tags,
			Files:             filesByScan[row.ID],
		})
	}
	return scans, nil
}

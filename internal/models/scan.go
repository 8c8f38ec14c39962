package models

import "slices"

// ScanType is the capture technique of a Scan.
type ScanType string

const (
	ScanTypePhotogrammetry ScanType = "photogrammetry"
	ScanTypeGaussianSplat  ScanType = "gaussian-splat"
	ScanTypeLidar          ScanType = "lidar"
)

// Valid reports whether t is one of the known capture techniques.
func (t ScanType) Valid() bool {
	switch t {
	case ScanTypePhotogrammetry, ScanTypeGaussianSplat, ScanTypeLidar:
		return true
	default:
		return false
	}
}

// Scan is a captured 3D asset with preview media and downloadable files.
type Scan struct {
	ID              int64  `json:"id" yaml:"id"`
	Slug            string `json:"slug" yaml:"slug"`
	Title           string `json:"title" yaml:"title"`
	Description     string `json:"description" yaml:"description"`
	LongDescription string `json:"longDescription" yaml:"longDescription"`

	// Media
	VideoURL        string `json:"videoUrl" yaml:"videoUrl"`
	PreviewVideoURL string `json:"previewVideoUrl,omitempty" yaml:"previewVideoUrl,omitempty"`
	PosterURL       string `json:"posterUrl" yaml:"posterUrl"`

	// Technical specs are free text, e.g. "2.4M" and "8K".
	PolyCount         string   `json:"polyCount" yaml:"polyCount"`
	TextureResolution string   `json:"textureResolution" yaml:"textureResolution"`
	FileFormats       []string `json:"fileFormats" yaml:"fileFormats"`
	ScanType          ScanType `json:"scanType" yaml:"scanType"`

	// Metadata
	CaptureDate string   `json:"captureDate,omitempty" yaml:"captureDate,omitempty"`
	Location    string   `json:"location,omitempty" yaml:"location,omitempty"`
	Tags        []string `json:"tags" yaml:"tags"`

	Files []ScanFile `json:"files,omitempty" yaml:"files,omitempty"`
}

// RecordID identifies the scan within its repository.
func (s Scan) RecordID() int64 {
	return s.ID
}

// ScanFile is a downloadable export of a scan.
type ScanFile struct {
	FileID int64 `json:"fileId" yaml:"fileId"`
	// Format is e.g. fbx, obj, usd or ply.
	Format string `json:"format" yaml:"format"`
	// Resolution is the texture resolution e.g. 4K or 8K.
	Resolution string `json:"resolution" yaml:"resolution"`
	URL        string `json:"url,omitempty" yaml:"url,omitempty"`
}

// Clone returns a deep copy of s that shares no slices with it.
func (s Scan) Clone() Scan {
	s.FileFormats = slices.Clone(s.FileFormats)
	s.Tags = slices.Clone(s.Tags)
	s.Files = slices.Clone(s.Files)
	return s
}

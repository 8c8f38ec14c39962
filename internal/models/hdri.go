package models

import "slices"

// Hdri is a captured lighting environment sequence. Every frame of the sequence is a variant of the environment at a
// different sun elevation and time of day.
type Hdri struct {
	ID   int64  `json:"id" yaml:"id" db:"id"`
	Slug string `json:"slug" yaml:"slug" db:"slug"`
	// Title is the display name e.g. "Sequence 001".
	Title string `json:"title" yaml:"title" db:"title"`
	// Description is a short HTML summary.
	Description string `json:"description" yaml:"description" db:"description"`
	// LongDescription is the detailed emotive description shown on the detail page.
	LongDescription string `json:"longDescription" yaml:"longDescription" db:"long_description"`

	// Display metadata summarising the frames, e.g. "-10 to 40", "16:00 - 18:00" and "100-0".
	ElevationRange string `json:"elevationRange" yaml:"elevationRange" db:"elevation_range"`
	TimeRange      string `json:"timeRange" yaml:"timeRange" db:"time_range"`
	LumaRange      string `json:"lumaRange" yaml:"lumaRange" db:"luma_range"`

	Frames []HdriFrame `json:"frames" yaml:"frames"`
}

// RecordID identifies the HDRI within its repository.
func (h Hdri) RecordID() int64 {
	return h.ID
}

// HdriFrame is one image in the HDRI sequence.
type HdriFrame struct {
	// Frame is the sequence position, e.g. 1001.
	Frame int `json:"frame" yaml:"frame"`
	// Elevation of the sun in degrees, e.g. 10.5.
	Elevation float64 `json:"elevation" yaml:"elevation"`
	// Luma is the light intensity.
	Luma float64 `json:"luma" yaml:"luma"`
	// Time is the capture time formatted as HH:MM.
	Time    string  `json:"time" yaml:"time"`
	Preview Preview `json:"preview" yaml:"preview"`
	// Files are the downloadable variants of the frame.
	Files []HdriFile `json:"files,omitempty" yaml:"files,omitempty"`
}

// Preview references the image used by the frame scrubber.
type Preview struct {
	URL string `json:"url" yaml:"url"`
}

// HdriFile is a downloadable resolution and format variant of an HDRI frame.
type HdriFile struct {
	FileID int64  `json:"fileId" yaml:"fileId"`
	Res    int    `json:"res" yaml:"res"`
	Ext    string `json:"ext" yaml:"ext"`
	URL    string `json:"url,omitempty" yaml:"url,omitempty"`
}

// Clone returns a deep copy of h that shares no slices with it.
func (h Hdri) Clone() Hdri {
	if h.Frames != nil {
		frames := make([]HdriFrame, len(h.Frames))
		for i, frame := range h.Frames {
			frame.Files = slices.Clone(frame.Files)
			frames[i] = frame
		}
		h.Frames = frames
	}
	return h
}

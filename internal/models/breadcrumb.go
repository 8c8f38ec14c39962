package models

// Breadcrumb is one entry of the navigation trail. An entry without To is rendered as plain text.
type Breadcrumb struct {
	Label string `json:"label" yaml:"label"`
	To    string `json:"to,omitempty" yaml:"to,omitempty"`
}

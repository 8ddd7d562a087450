package forms

import "strings"

// SRSForm captures the source and optional target spatial reference system
// for an upload.
type SRSForm struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Clean validates the SRS selection.
func (f *SRSForm) Clean() error {
	if strings.TrimSpace(f.Source) == "" {
		return NewValidationError("source SRS is required")
	}
	return nil
}

// Package forms validates multi-file dataset uploads and their time/SRS
// configuration before anything is handed to the ingestion pipeline.
package forms

import (
	"fmt"
	"sort"

	"github.com/mapstacks/geoupload/utils"
)

// SpatialFileFields are the form field names recognized as parts of a spatial
// dataset bundle.
var SpatialFileFields = []string{
	"base_file",
	"dbf_file",
	"shx_file",
	"prj_file",
	"xml_file",
	"sld_file",
}

// Fields whose size never counts towards the total upload size.
var sizeSumExcluded = map[string]bool{
	"zip_file": true,
	"shp_file": true,
}

// FileInfo describes one submitted file: the client-supplied name and its size in bytes.
type FileInfo struct {
	Name string
	Size int64
}

// ValidationError is a user-facing form validation failure, as opposed to an
// infrastructure error.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError builds a ValidationError from a format string.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// SizeLimitProvider yields the maximum allowed total upload size, creating the
// backing record with a default value when it does not exist yet.
type SizeLimitProvider interface {
	MaxTotalUploadSize() (int64, error)
}

// BundleClassifier decides whether the uploaded files form a valid spatial
// dataset and returns the detected valid extensions.
type BundleClassifier interface {
	ValidateBundle(cleaned map[string]any, uploaded []FileInfo, spatialFields []string) ([]string, error)
}

// DatasetUploadForm is the validation surface for one dataset upload request.
// Files maps form field names to the submitted files.
type DatasetUploadForm struct {
	Charset                        string
	Time                           bool
	Mosaic                         bool
	AppendToMosaicOpts             bool
	AppendToMosaicName             string
	MosaicTimeRegex                string
	MosaicTimeValue                string
	TimePresentation               string
	TimePresentationRes            int
	TimePresentationDefaultValue   string
	TimePresentationReferenceValue string
	Abstract                       string
	DatasetTitle                   string
	Permissions                    map[string]any
	MetadataUploadedPreserve       bool
	MetadataUploadForm             bool
	StyleUploadForm                bool

	Files map[string]FileInfo
}

// Clean validates the form and returns the cleaned data. Field-level problems
// short-circuit before the size guard, which runs before bundle validation;
// the first failure stops further checks.
func (f *DatasetUploadForm) Clean(limits SizeLimitProvider, classifier BundleClassifier) (map[string]any, error) {
	if err := f.validateFields(); err != nil {
		return nil, err
	}
	cleaned := f.cleanedData()
	if err := f.validateSumOfSizes(limits); err != nil {
		return nil, err
	}
	validExtensions, err := classifier.ValidateBundle(cleaned, f.uploadedFiles(), SpatialFileFields)
	if err != nil {
		return nil, err
	}
	cleaned["valid_extensions"] = validExtensions
	return cleaned, nil
}

func (f *DatasetUploadForm) validateFields() error {
	if _, ok := f.Files["base_file"]; !ok {
		return NewValidationError("base_file is required")
	}
	if f.Permissions == nil {
		return NewValidationError("permissions is required")
	}
	return nil
}

func (f *DatasetUploadForm) cleanedData() map[string]any {
	cleaned := map[string]any{
		"charset":                           f.Charset,
		"time":                              f.Time,
		"mosaic":                            f.Mosaic,
		"append_to_mosaic_opts":             f.AppendToMosaicOpts,
		"append_to_mosaic_name":             f.AppendToMosaicName,
		"mosaic_time_regex":                 f.MosaicTimeRegex,
		"mosaic_time_value":                 f.MosaicTimeValue,
		"time_presentation":                 f.TimePresentation,
		"time_presentation_res":             f.TimePresentationRes,
		"time_presentation_default_value":   f.TimePresentationDefaultValue,
		"time_presentation_reference_value": f.TimePresentationReferenceValue,
		"abstract":                          f.Abstract,
		"dataset_title":                     f.DatasetTitle,
		"permissions":                       f.Permissions,
		"metadata_uploaded_preserve":        f.MetadataUploadedPreserve,
		"metadata_upload_form":              f.MetadataUploadForm,
		"style_upload_form":                 f.StyleUploadForm,
	}
	for _, field := range SpatialFileFields {
		if file, ok := f.Files[field]; ok {
			cleaned[field] = file
		}
	}
	return cleaned
}

func (f *DatasetUploadForm) validateSumOfSizes(limits SizeLimitProvider) error {
	maxSize, err := limits.MaxTotalUploadSize()
	if err != nil {
		return fmt.Errorf("fetch upload size limit: %w", err)
	}
	if f.TotalSize() > maxSize {
		return NewValidationError(
			"Total upload size exceeds %s. Please try again with smaller files.",
			utils.FormatByteSize(maxSize))
	}
	return nil
}

// TotalSize sums the sizes of all submitted files except the archive and
// shapefile fields, which are containers the bundle members are counted from.
func (f *DatasetUploadForm) TotalSize() int64 {
	var total int64
	for field, file := range f.Files {
		if sizeSumExcluded[field] {
			continue
		}
		total += file.Size
	}
	return total
}

// uploadedFiles returns the companion files handed to the classifier, which
// treats the base file separately. Order is fixed for reproducible results.
func (f *DatasetUploadForm) uploadedFiles() []FileInfo {
	names := make([]string, 0, len(f.Files))
	for field := range f.Files {
		if field != "base_file" {
			names = append(names, field)
		}
	}
	sort.Strings(names)
	files := make([]FileInfo, 0, len(names))
	for _, field := range names {
		files = append(files, f.Files[field])
	}
	return files
}

// DatasetType is one recognized spatial dataset type, matched by file extension.
type DatasetType interface {
	Matches(ext string) bool
}

// SupportedType reports whether any of the given dataset types matches ext.
func SupportedType(ext string, types []DatasetType) bool {
	for _, t := range types {
		if t.Matches(ext) {
			return true
		}
	}
	return false
}

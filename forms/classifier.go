package forms

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/mapstacks/geoupload/utils"
)

// ExtensionType is a DatasetType recognized by a fixed extension set.
type ExtensionType struct {
	Name       string
	Extensions []string
}

// Matches reports whether ext (without dot, any case) belongs to this type.
func (t ExtensionType) Matches(ext string) bool {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	for _, e := range t.Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// DefaultDatasetTypes are the dataset types accepted out of the box.
var DefaultDatasetTypes = []DatasetType{
	ExtensionType{Name: "shapefile", Extensions: []string{"shp"}},
	ExtensionType{Name: "geotiff", Extensions: []string{"tif", "tiff", "geotif", "geotiff"}},
	ExtensionType{Name: "csv", Extensions: []string{"csv"}},
	ExtensionType{Name: "kml", Extensions: []string{"kml", "kmz"}},
	ExtensionType{Name: "asciigrid", Extensions: []string{"asc"}},
	ExtensionType{Name: "archive", Extensions: []string{"zip"}},
}

// ExtensionClassifier is the default BundleClassifier. It checks the base
// file against the recognized dataset types, verifies shapefile bundles carry
// their mandatory companions, and reports the distinct extensions present.
// Deployments with richer detection plug in their own BundleClassifier.
type ExtensionClassifier struct {
	Types []DatasetType
}

// NewExtensionClassifier builds a classifier over the default dataset types.
func NewExtensionClassifier() *ExtensionClassifier {
	return &ExtensionClassifier{Types: DefaultDatasetTypes}
}

// ValidateBundle implements BundleClassifier.
func (c *ExtensionClassifier) ValidateBundle(cleaned map[string]any, uploaded []FileInfo, spatialFields []string) ([]string, error) {
	base, ok := cleaned["base_file"].(FileInfo)
	if !ok {
		return nil, NewValidationError("base_file is required")
	}
	baseExt := fileExt(base.Name)
	if !SupportedType(baseExt, c.Types) {
		return nil, NewValidationError("unsupported file type: .%s", baseExt)
	}

	extensions := []string{baseExt}
	for _, f := range uploaded {
		if ext := fileExt(f.Name); ext != "" {
			extensions = append(extensions, ext)
		}
	}
	extensions = utils.UniqueString(extensions)
	sort.Strings(extensions)

	if baseExt == "shp" {
		if err := requireCompanions(extensions, "dbf", "shx"); err != nil {
			return nil, err
		}
	}
	return extensions, nil
}

func requireCompanions(extensions []string, required ...string) error {
	present := map[string]bool{}
	for _, ext := range extensions {
		present[ext] = true
	}
	for _, req := range required {
		if !present[req] {
			return NewValidationError("shapefile bundle is missing the .%s companion file", req)
		}
	}
	return nil
}

func fileExt(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}

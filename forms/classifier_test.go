package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classify(t *testing.T, base string, companions ...string) ([]string, error) {
	t.Helper()
	cleaned := map[string]any{"base_file": FileInfo{Name: base, Size: 100}}
	uploaded := make([]FileInfo, 0, len(companions))
	for _, name := range companions {
		uploaded = append(uploaded, FileInfo{Name: name, Size: 10})
	}
	return NewExtensionClassifier().ValidateBundle(cleaned, uploaded, SpatialFileFields)
}

func TestClassifierAcceptsCompleteShapefile(t *testing.T) {
	exts, err := classify(t, "roads.shp", "roads.dbf", "roads.shx", "roads.prj")
	require.NoError(t, err)
	assert.Equal(t, []string{"dbf", "prj", "shp", "shx"}, exts)
}

func TestClassifierRejectsIncompleteShapefile(t *testing.T) {
	_, err := classify(t, "roads.shp", "roads.prj")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".dbf")
}

func TestClassifierAcceptsStandaloneGeoTIFF(t *testing.T) {
	exts, err := classify(t, "elevation.TIF")
	require.NoError(t, err)
	assert.Equal(t, []string{"tif"}, exts)
}

func TestClassifierRejectsUnsupportedType(t *testing.T) {
	_, err := classify(t, "notes.docx")
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, ".docx")
}

func TestClassifierDeduplicatesExtensions(t *testing.T) {
	exts, err := classify(t, "a.csv", "b.csv", "a.xml")
	require.NoError(t, err)
	assert.Equal(t, []string{"csv", "xml"}, exts)
}

func TestClassifierRequiresBaseFile(t *testing.T) {
	_, err := NewExtensionClassifier().ValidateBundle(map[string]any{}, nil, SpatialFileFields)
	require.Error(t, err)
}

func TestExtensionTypeMatchesCaseInsensitive(t *testing.T) {
	shp := ExtensionType{Name: "shapefile", Extensions: []string{"shp"}}
	assert.True(t, shp.Matches("SHP"))
	assert.True(t, shp.Matches(".shp"))
	assert.False(t, shp.Matches("shx"))
}

package forms

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLimits struct {
	max int64
	err error
}

func (s stubLimits) MaxTotalUploadSize() (int64, error) { return s.max, s.err }

type stubClassifier struct {
	extensions []string
	err        error

	gotCleaned  map[string]any
	gotUploaded []FileInfo
	gotFields   []string
}

func (s *stubClassifier) ValidateBundle(cleaned map[string]any, uploaded []FileInfo, spatialFields []string) ([]string, error) {
	s.gotCleaned = cleaned
	s.gotUploaded = uploaded
	s.gotFields = spatialFields
	return s.extensions, s.err
}

func validForm() *DatasetUploadForm {
	return &DatasetUploadForm{
		Permissions: map[string]any{"users": map[string]any{}},
		Files: map[string]FileInfo{
			"base_file": {Name: "roads.shp", Size: 1000},
			"dbf_file":  {Name: "roads.dbf", Size: 200},
			"shx_file":  {Name: "roads.shx", Size: 100},
		},
	}
}

func TestCleanPassesWithinSizeLimit(t *testing.T) {
	form := validForm()
	classifier := &stubClassifier{extensions: []string{"dbf", "shp", "shx"}}

	cleaned, err := form.Clean(stubLimits{max: 2000}, classifier)
	require.NoError(t, err)

	assert.Equal(t, []string{"dbf", "shp", "shx"}, cleaned["valid_extensions"])
	assert.Equal(t, FileInfo{Name: "roads.shp", Size: 1000}, cleaned["base_file"])
}

func TestCleanRejectsOverSizeLimit(t *testing.T) {
	form := validForm()
	classifier := &stubClassifier{}

	_, err := form.Clean(stubLimits{max: 1000}, classifier)
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Total upload size exceeds 1000 bytes. Please try again with smaller files.", verr.Message)
	// size guard fails before the classifier runs
	assert.Nil(t, classifier.gotCleaned)
}

func TestCleanErrorMessageNamesFormattedLimit(t *testing.T) {
	form := validForm()
	form.Files["base_file"] = FileInfo{Name: "big.tif", Size: 200 * 1 << 20}

	_, err := form.Clean(stubLimits{max: 104857600}, &stubClassifier{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "100.0 MB")
}

func TestTotalSizeExcludesArchiveFields(t *testing.T) {
	form := validForm()
	form.Files["zip_file"] = FileInfo{Name: "roads.zip", Size: 1 << 30}
	form.Files["shp_file"] = FileInfo{Name: "roads.shp", Size: 1 << 30}

	assert.Equal(t, int64(1300), form.TotalSize())

	_, err := form.Clean(stubLimits{max: 2000}, &stubClassifier{})
	assert.NoError(t, err)
}

func TestCleanRequiresBaseFile(t *testing.T) {
	form := validForm()
	delete(form.Files, "base_file")

	_, err := form.Clean(stubLimits{max: 2000}, &stubClassifier{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base_file")
}

func TestCleanRequiresPermissions(t *testing.T) {
	form := validForm()
	form.Permissions = nil

	_, err := form.Clean(stubLimits{max: 2000}, &stubClassifier{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "permissions")
}

func TestCleanHandsCompanionFilesToClassifier(t *testing.T) {
	form := validForm()
	classifier := &stubClassifier{extensions: []string{"shp"}}

	_, err := form.Clean(stubLimits{max: 2000}, classifier)
	require.NoError(t, err)

	// base_file excluded, rest in field-name order
	require.Len(t, classifier.gotUploaded, 2)
	assert.Equal(t, "roads.dbf", classifier.gotUploaded[0].Name)
	assert.Equal(t, "roads.shx", classifier.gotUploaded[1].Name)
	assert.Equal(t, SpatialFileFields, classifier.gotFields)
}

func TestCleanPropagatesClassifierFailure(t *testing.T) {
	form := validForm()
	classifier := &stubClassifier{err: NewValidationError("not a valid bundle")}

	_, err := form.Clean(stubLimits{max: 2000}, classifier)
	require.Error(t, err)
	assert.EqualError(t, err, "not a valid bundle")
}

func TestCleanWrapsLimitLookupFailure(t *testing.T) {
	form := validForm()

	_, err := form.Clean(stubLimits{err: errors.New("db down")}, &stubClassifier{})
	require.Error(t, err)

	var verr *ValidationError
	assert.False(t, errors.As(err, &verr), "infrastructure failure must not surface as a validation error")
}

type fixedType struct{ exts []string }

func (f fixedType) Matches(ext string) bool {
	for _, e := range f.exts {
		if e == ext {
			return true
		}
	}
	return false
}

func TestSupportedType(t *testing.T) {
	types := []DatasetType{fixedType{exts: []string{"shp"}}, fixedType{exts: []string{"tif"}}}

	assert.True(t, SupportedType("tif", types))
	assert.False(t, SupportedType("doc", types))
	assert.False(t, SupportedType("doc", nil))
}

package controllers

import (
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartForm(values map[string]string) *multipart.Form {
	mf := &multipart.Form{Value: map[string][]string{}, File: map[string][]*multipart.FileHeader{}}
	for k, v := range values {
		mf.Value[k] = []string{v}
	}
	mf.File["base_file"] = []*multipart.FileHeader{{Filename: "roads.shp", Size: 100}}
	return mf
}

func TestBuildUploadFormBooleanFlags(t *testing.T) {
	cases := []struct {
		raw  string
		want bool
	}{
		{"", false},
		{"false", false},
		{"False", false},
		{"0", false},
		{"true", true},
		{"True", true},
		{"on", true},
		{"1", true},
		{"yes", true},
	}
	for _, c := range cases {
		form, err := buildUploadForm(multipartForm(map[string]string{"time": c.raw, "mosaic": c.raw}))
		require.NoError(t, err)
		assert.Equal(t, c.want, form.Time, "time=%q", c.raw)
		assert.Equal(t, c.want, form.Mosaic, "mosaic=%q", c.raw)
	}
}

func TestBuildUploadFormParsesPermissions(t *testing.T) {
	form, err := buildUploadForm(multipartForm(map[string]string{
		"permissions": `{"users": {"alice": ["view"]}}`,
	}))
	require.NoError(t, err)
	require.NotNil(t, form.Permissions)
	assert.Contains(t, form.Permissions, "users")

	_, err = buildUploadForm(multipartForm(map[string]string{"permissions": "not-json"}))
	assert.Error(t, err)
}

func TestBuildUploadFormCollectsFiles(t *testing.T) {
	mf := multipartForm(map[string]string{"charset": "UTF-8"})
	mf.File["dbf_file"] = []*multipart.FileHeader{{Filename: "roads.dbf", Size: 20}}

	form, err := buildUploadForm(mf)
	require.NoError(t, err)
	assert.Equal(t, "UTF-8", form.Charset)
	assert.Equal(t, "roads.shp", form.Files["base_file"].Name)
	assert.Equal(t, int64(20), form.Files["dbf_file"].Size)
}

func TestBuildUploadFormRejectsBadPresentationRes(t *testing.T) {
	_, err := buildUploadForm(multipartForm(map[string]string{"time_presentation_res": "soon"}))
	assert.Error(t, err)
}

package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSRSFormRequiresSource(t *testing.T) {
	form := SRSForm{Target: "EPSG:3857"}
	assert.Error(t, form.Clean())

	form = SRSForm{Source: "   "}
	assert.Error(t, form.Clean())
}

func TestSRSFormTargetOptional(t *testing.T) {
	form := SRSForm{Source: "EPSG:4326"}
	assert.NoError(t, form.Clean())

	form = SRSForm{Source: "EPSG:4326", Target: "EPSG:3857"}
	assert.NoError(t, form.Clean())
}

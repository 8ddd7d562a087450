package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSortsChoicesWithNoneOption(t *testing.T) {
	form := TimeFormConfig{TimeNames: []string{"updated", "created"}}.Build()

	fields := form.Fields()
	require.Len(t, fields, 2)
	assert.Equal(t, FieldEndTimeAttribute, fields[0].Name)
	assert.Equal(t, FieldTimeAttribute, fields[1].Name)

	choices := fields[1].Choices
	require.Len(t, choices, 3)
	assert.Equal(t, Choice{Value: "", Label: NoneChoiceLabel}, choices[0])
	assert.Equal(t, "created", choices[1].Value)
	assert.Equal(t, "updated", choices[2].Value)
}

func TestBuildDoesNotMutateConfigLists(t *testing.T) {
	names := []string{"b", "a"}
	TimeFormConfig{TimeNames: names}.Build()
	assert.Equal(t, []string{"b", "a"}, names)
}

func TestBuildSkipsEmptyCandidateLists(t *testing.T) {
	form := TimeFormConfig{TextNames: []string{"label"}}.Build()

	fields := form.Fields()
	require.Len(t, fields, 2)
	assert.Equal(t, FieldEndTextAttribute, fields[0].Name)
	assert.Equal(t, FieldTextAttribute, fields[1].Name)
	assert.True(t, form.HasTextFormats())
}

func TestBuildExposesSortedCandidateNames(t *testing.T) {
	form := TimeFormConfig{
		TimeNames: []string{"updated", "created"},
		TextNames: []string{"label"},
		YearNames: []string{"year"},
	}.Build()

	assert.Equal(t, []string{"created", "updated"}, form.TimeNames())
	assert.Equal(t, []string{"label"}, form.TextNames())
	assert.Equal(t, []string{"year"}, form.YearNames())
}

func TestCleanRejectsMultipleStartAttributes(t *testing.T) {
	form := TimeFormConfig{
		TimeNames: []string{"created"},
		TextNames: []string{"label"},
	}.Build()

	_, err := form.Clean(TimeInput{TimeAttribute: "created", TextAttribute: "label"})
	require.Error(t, err)
	assert.EqualError(t, err, "multiple start attributes")
}

func TestCleanRejectsMultipleEndAttributes(t *testing.T) {
	form := TimeFormConfig{
		TimeNames: []string{"created"},
		YearNames: []string{"year"},
	}.Build()

	_, err := form.Clean(TimeInput{EndTimeAttribute: "created", EndYearAttribute: "year"})
	require.Error(t, err)
	assert.EqualError(t, err, "multiple end attributes")
}

func TestCleanResolvesStartAndEndIndependently(t *testing.T) {
	form := TimeFormConfig{
		TimeNames: []string{"created"},
		TextNames: []string{"label"},
		YearNames: []string{"year"},
	}.Build()

	sel, err := form.Clean(TimeInput{TimeAttribute: "created", EndYearAttribute: "year"})
	require.NoError(t, err)

	require.NotNil(t, sel.StartAttribute)
	assert.Equal(t, ResolvedAttribute{Name: "created", Kind: KindDate}, *sel.StartAttribute)
	require.NotNil(t, sel.EndAttribute)
	assert.Equal(t, ResolvedAttribute{Name: "year", Kind: KindNumber}, *sel.EndAttribute)
}

func TestCleanWithNoSelectionLeavesAttributesUnset(t *testing.T) {
	form := TimeFormConfig{TimeNames: []string{"created"}}.Build()

	sel, err := form.Clean(TimeInput{PresentationStrategy: "LIST"})
	require.NoError(t, err)
	assert.Nil(t, sel.StartAttribute)
	assert.Nil(t, sel.EndAttribute)
	assert.Equal(t, "LIST", sel.PresentationStrategy)
}

func TestCleanRejectsUnknownChoice(t *testing.T) {
	form := TimeFormConfig{TimeNames: []string{"created"}}.Build()

	_, err := form.Clean(TimeInput{TimeAttribute: "deleted"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not one of the available choices")
}

func TestCleanRejectsSelectionWithoutCandidates(t *testing.T) {
	form := TimeFormConfig{TimeNames: []string{"created"}}.Build()

	_, err := form.Clean(TimeInput{YearAttribute: "year"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no candidates available")
}

func TestCleanValidatesPrecisionStep(t *testing.T) {
	form := TimeFormConfig{TimeNames: []string{"created"}}.Build()

	_, err := form.Clean(TimeInput{PrecisionStep: "fortnights"})
	require.Error(t, err)

	sel, err := form.Clean(TimeInput{PrecisionStep: "days", PrecisionValue: 3})
	require.NoError(t, err)
	assert.Equal(t, "days", sel.PrecisionStep)
	assert.Equal(t, 3, sel.PrecisionValue)
}

func TestCleanTextFormatsOnlyWithTextCandidates(t *testing.T) {
	noText := TimeFormConfig{TimeNames: []string{"created"}}.Build()
	_, err := noText.Clean(TimeInput{TextAttributeFormat: "yyyy-MM-dd"})
	require.Error(t, err)

	withText := TimeFormConfig{TextNames: []string{"label"}}.Build()
	sel, err := withText.Clean(TimeInput{TextAttribute: "label", TextAttributeFormat: "yyyy-MM-dd"})
	require.NoError(t, err)
	assert.Equal(t, "yyyy-MM-dd", sel.TextAttributeFormat)
}

func TestPrecisionSteps(t *testing.T) {
	assert.Equal(t, []string{"years", "months", "days", "hours", "minutes", "seconds"}, PrecisionSteps())
}

package forms

import "sort"

// AttributeKind is the semantic type of a resolved time attribute.
type AttributeKind string

const (
	KindDate   AttributeKind = "Date"
	KindText   AttributeKind = "Text"
	KindNumber AttributeKind = "Number"
)

// Attribute role field names. Start and end are resolved independently; at
// most one kind may be selected per role.
const (
	FieldTimeAttribute    = "time_attribute"
	FieldEndTimeAttribute = "end_time_attribute"
	FieldTextAttribute    = "text_attribute"
	FieldEndTextAttribute = "end_text_attribute"
	FieldYearAttribute    = "year_attribute"
	FieldEndYearAttribute = "end_year_attribute"
)

// NoneChoiceLabel labels the empty option offered on every attribute field.
const NoneChoiceLabel = "<None>"

var precisionSteps = []string{"years", "months", "days", "hours", "minutes", "seconds"}

// Choice is one selectable (value, label) pair.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ChoiceField is a named field restricted to a fixed choice set.
type ChoiceField struct {
	Name    string   `json:"name"`
	Choices []Choice `json:"choices"`
}

func (f *ChoiceField) allows(value string) bool {
	for _, c := range f.Choices {
		if c.Value == value {
			return true
		}
	}
	return false
}

// TimeFormConfig enumerates the candidate field names detected on a dataset,
// one list per attribute kind. Lists may be empty; empty lists produce no
// fields for that kind.
type TimeFormConfig struct {
	TimeNames []string `json:"time_names"`
	TextNames []string `json:"text_names"`
	YearNames []string `json:"year_names"`
}

// TimeForm is a built, validated field set for time attribute selection.
type TimeForm struct {
	config TimeFormConfig
	fields map[string]*ChoiceField
}

// Build emits the complete field set for this configuration up front: a
// start and an end choice field per non-empty candidate list, all choices
// sorted with a leading none option.
func (c TimeFormConfig) Build() *TimeForm {
	form := &TimeForm{config: c, fields: map[string]*ChoiceField{}}
	form.buildChoice(FieldTimeAttribute, c.TimeNames)
	form.buildChoice(FieldEndTimeAttribute, c.TimeNames)
	form.buildChoice(FieldTextAttribute, c.TextNames)
	form.buildChoice(FieldEndTextAttribute, c.TextNames)
	form.buildChoice(FieldYearAttribute, c.YearNames)
	form.buildChoice(FieldEndYearAttribute, c.YearNames)
	return form
}

func (f *TimeForm) buildChoice(name string, candidates []string) {
	if len(candidates) == 0 {
		return
	}
	sorted := append([]string(nil), candidates...)
	sort.Strings(sorted)
	choices := make([]Choice, 0, len(sorted)+1)
	choices = append(choices, Choice{Value: "", Label: NoneChoiceLabel})
	for _, c := range sorted {
		choices = append(choices, Choice{Value: c, Label: c})
	}
	f.fields[name] = &ChoiceField{Name: name, Choices: choices}
}

// Fields returns the built choice fields in name order, for rendering.
func (f *TimeForm) Fields() []ChoiceField {
	names := make([]string, 0, len(f.fields))
	for name := range f.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]ChoiceField, 0, len(names))
	for _, name := range names {
		out = append(out, *f.fields[name])
	}
	return out
}

// HasTextFormats reports whether the two free-text attribute format fields
// exist, which they do exactly when textual candidates were configured.
func (f *TimeForm) HasTextFormats() bool {
	return len(f.config.TextNames) > 0
}

// TimeNames returns the temporal candidate list the form was built from.
func (f *TimeForm) TimeNames() []string { return f.config.TimeNames }

// TextNames returns the textual candidate list the form was built from.
func (f *TimeForm) TextNames() []string { return f.config.TextNames }

// YearNames returns the numeric-year candidate list the form was built from.
func (f *TimeForm) YearNames() []string { return f.config.YearNames }

// TimeInput carries one submitted time attribute selection.
type TimeInput struct {
	PresentationStrategy   string `json:"presentation_strategy"`
	PrecisionValue         int    `json:"precision_value"`
	PrecisionStep          string `json:"precision_step"`
	TimeAttribute          string `json:"time_attribute"`
	EndTimeAttribute       string `json:"end_time_attribute"`
	TextAttribute          string `json:"text_attribute"`
	EndTextAttribute       string `json:"end_text_attribute"`
	TextAttributeFormat    string `json:"text_attribute_format"`
	EndTextAttributeFormat string `json:"end_text_attribute_format"`
	YearAttribute          string `json:"year_attribute"`
	EndYearAttribute       string `json:"end_year_attribute"`
}

// ResolvedAttribute is the (field name, semantic type) pair selected for a role.
type ResolvedAttribute struct {
	Name string        `json:"name"`
	Kind AttributeKind `json:"kind"`
}

// TimeSelection is the cleaned result of a valid time form submission.
type TimeSelection struct {
	PresentationStrategy   string             `json:"presentation_strategy"`
	PrecisionValue         int                `json:"precision_value"`
	PrecisionStep          string             `json:"precision_step"`
	StartAttribute         *ResolvedAttribute `json:"start_attribute,omitempty"`
	EndAttribute           *ResolvedAttribute `json:"end_attribute,omitempty"`
	TextAttributeFormat    string             `json:"text_attribute_format,omitempty"`
	EndTextAttributeFormat string             `json:"end_text_attribute_format,omitempty"`
}

// Clean validates the submitted selection against the built field set and
// resolves the start and end attributes independently.
func (f *TimeForm) Clean(in TimeInput) (*TimeSelection, error) {
	if err := f.validateChoices(in); err != nil {
		return nil, err
	}

	starts := resolveAttributes(
		selection{in.TimeAttribute, KindDate},
		selection{in.TextAttribute, KindText},
		selection{in.YearAttribute, KindNumber},
	)
	if len(starts) > 1 {
		return nil, NewValidationError("multiple start attributes")
	}
	ends := resolveAttributes(
		selection{in.EndTimeAttribute, KindDate},
		selection{in.EndTextAttribute, KindText},
		selection{in.EndYearAttribute, KindNumber},
	)
	if len(ends) > 1 {
		return nil, NewValidationError("multiple end attributes")
	}

	out := &TimeSelection{
		PresentationStrategy: in.PresentationStrategy,
		PrecisionValue:       in.PrecisionValue,
		PrecisionStep:        in.PrecisionStep,
	}
	if len(starts) > 0 {
		out.StartAttribute = &starts[0]
	}
	if len(ends) > 0 {
		out.EndAttribute = &ends[0]
	}
	if f.HasTextFormats() {
		out.TextAttributeFormat = in.TextAttributeFormat
		out.EndTextAttributeFormat = in.EndTextAttributeFormat
	}
	return out, nil
}

func (f *TimeForm) validateChoices(in TimeInput) error {
	submitted := map[string]string{
		FieldTimeAttribute:    in.TimeAttribute,
		FieldEndTimeAttribute: in.EndTimeAttribute,
		FieldTextAttribute:    in.TextAttribute,
		FieldEndTextAttribute: in.EndTextAttribute,
		FieldYearAttribute:    in.YearAttribute,
		FieldEndYearAttribute: in.EndYearAttribute,
	}
	for name, value := range submitted {
		if value == "" {
			continue
		}
		field, ok := f.fields[name]
		if !ok {
			return NewValidationError("%s: no candidates available", name)
		}
		if !field.allows(value) {
			return NewValidationError("%s: %q is not one of the available choices", name, value)
		}
	}
	if in.PrecisionStep != "" && !validPrecisionStep(in.PrecisionStep) {
		return NewValidationError("precision_step: %q is not one of the available choices", in.PrecisionStep)
	}
	if !f.HasTextFormats() && (in.TextAttributeFormat != "" || in.EndTextAttributeFormat != "") {
		return NewValidationError("text attribute formats require textual candidates")
	}
	return nil
}

type selection struct {
	name string
	kind AttributeKind
}

func resolveAttributes(selections ...selection) []ResolvedAttribute {
	resolved := []ResolvedAttribute{}
	for _, s := range selections {
		if s.name != "" {
			resolved = append(resolved, ResolvedAttribute{Name: s.name, Kind: s.kind})
		}
	}
	return resolved
}

func validPrecisionStep(step string) bool {
	for _, s := range precisionSteps {
		if s == step {
			return true
		}
	}
	return false
}

// PrecisionSteps lists the accepted precision units.
func PrecisionSteps() []string {
	return append([]string(nil), precisionSteps...)
}

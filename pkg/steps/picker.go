package steps

import "github.com/getkin/kin-openapi/openapi3"

// PickerType selects the input widget of a Picker step. Values outside the
// known set are accepted so the CMS can introduce new pickers ahead of
// client support.
type PickerType string

const (
	PickerHeight PickerType = "height"
	PickerWeight PickerType = "weight"
	PickerAge    PickerType = "age"
	PickerGender PickerType = "gender"
	PickerCoach  PickerType = "coach"
	PickerName   PickerType = "name"
	PickerDate   PickerType = "date"
)

// Known reports whether the picker type is one the built-in renderers handle.
func (t PickerType) Known() bool {
	switch t {
	case PickerHeight, PickerWeight, PickerAge, PickerGender, PickerCoach, PickerName, PickerDate:
		return true
	default:
		return false
	}
}

// PickerPayload collects one typed value from the user.
type PickerPayload struct {
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	PickerType  PickerType `json:"pickerType"`
}

var pickerSchema = openapi3.NewObjectSchema().
	WithProperty("title", openapi3.NewStringSchema()).
	WithProperty("description", nullableString()).
	WithProperty("pickerType", openapi3.NewStringSchema().WithMinLength(1)).
	WithRequired([]string{"title", "pickerType"})

func (p *PickerPayload) normalize() []Issue {
	return nil
}

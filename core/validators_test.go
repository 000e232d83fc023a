package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type form struct {
	Title string `json:"title" validate:"required,notblank"`
	Date  string `json:"date" validate:"omitempty,isodate"`
	Time  string `json:"time" validate:"omitempty,hhmm"`
}

func TestValidators(t *testing.T) {
	validate, translator := NewValidator()

	tests := []struct {
		name       string
		in         form
		wantFields []FieldError
	}{
		{name: "ok", in: form{Title: "a", Date: "2024-02-29", Time: "23:59"}},
		{name: "required", in: form{}, wantFields: []FieldError{{Field: "title", Error: "this field is required"}}},
		{name: "blank", in: form{Title: "  "}, wantFields: []FieldError{{Field: "title", Error: "this field cannot be blank"}}},
		{name: "bad date", in: form{Title: "a", Date: "2023-02-29"}, wantFields: []FieldError{{Field: "date", Error: "date must be of form YYYY-MM-DD"}}},
		{name: "bad time", in: form{Title: "a", Time: "24:00"}, wantFields: []FieldError{{Field: "time", Error: "time must be of form HH:MM"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := TranslateValidationError(validate.Struct(tt.in), translator)
			if tt.wantFields == nil {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, KindValidation, KindOf(err))
			assert.Equal(t, tt.wantFields, err.(*ValidationError).Fields)
		})
	}
}

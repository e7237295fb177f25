package core_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/flickernaut/pkg/core"
)

type staticEntries struct {
	raw []string
	err error
}

func (s staticEntries) RawEntries(context.Context) ([]string, error) { return s.raw, s.err }

func TestValidator(t *testing.T) {
	source := staticEntries{raw: []string{
		`{"id":1,"name":"A","native":["code","--wait"]}`,
		`{"id":2,"name":"B","flatpak":["org.gnome.gedit"]}`,
		`garbage`,
		`{"id":"x9","name":"Files","appId":"org.gnome.Nautilus.desktop"}`,
	}}
	v := core.NewValidator(source, nil)
	ctx := context.Background()

	tests := []struct {
		name  string
		value string
		owner string
		field core.Field
		want  core.ValidationResult
	}{
		{"Empty Name", "", "1", core.FieldName, core.ValidationResult{IsEmpty: true}},
		{"Blank Name", "   ", "9", core.FieldName, core.ValidationResult{IsEmpty: true}},
		{"Empty Native Allowed", "", "1", core.FieldNative, core.ValidationResult{IsValid: true, IsEmpty: true}},
		{"Duplicate Name Other Owner", "A", "2", core.FieldName, core.ValidationResult{IsDuplicate: true}},
		{"Own Name", "A", "1", core.FieldName, core.ValidationResult{IsValid: true}},
		{"Name Ignores Case And Padding", "  files ", "1", core.FieldName, core.ValidationResult{IsDuplicate: true}},
		{"Native Compared Normalized", "code   --wait", "2", core.FieldNative, core.ValidationResult{IsValid: true}},
		{"Native Exact Duplicate", "code --wait", "2", core.FieldNative, core.ValidationResult{IsDuplicate: true}},
		{"Flatpak Duplicate", "org.gnome.gedit", "1", core.FieldFlatpak, core.ValidationResult{IsDuplicate: true}},
		{"AppID Duplicate", "org.gnome.Nautilus.desktop", "new", core.FieldAppID, core.ValidationResult{IsDuplicate: true}},
		{"AppID Is Case Sensitive", "ORG.GNOME.NAUTILUS.DESKTOP", "new", core.FieldAppID, core.ValidationResult{IsValid: true}},
		{"Arguments Never Duplicate", "--wait", "2", core.FieldArguments, core.ValidationResult{IsValid: true}},
		{"Fresh Name", "Vim", "new", core.FieldName, core.ValidationResult{IsValid: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, v.Validate(ctx, tt.value, tt.owner, tt.field))
		})
	}
}

func TestValidator_SkipsEntriesLoadDrops(t *testing.T) {
	source := staticEntries{raw: []string{
		`{"name":"Code","native":["code"]}`,
		`{"id":"","name":"Blank","native":["blank"]}`,
		`{"id":"5","name":"Typed","native":"typed"}`,
		`{"id":"1","name":"Vim","native":["vim"]}`,
	}}
	v := core.NewValidator(source, nil)
	ctx := context.Background()

	assert.Equal(t, core.ValidationResult{IsValid: true}, v.Validate(ctx, "Code", "1", core.FieldName))
	assert.Equal(t, core.ValidationResult{IsValid: true}, v.Validate(ctx, "Blank", "1", core.FieldName))
	assert.Equal(t, core.ValidationResult{IsValid: true}, v.Validate(ctx, "Typed", "1", core.FieldName))
	assert.Equal(t, core.ValidationResult{IsDuplicate: true}, v.Validate(ctx, "vim", "2", core.FieldName))
}

func TestValidator_BackendErrorIsPermissive(t *testing.T) {
	v := core.NewValidator(staticEntries{err: errors.New("unavailable")}, nil)
	res := v.Validate(context.Background(), "A", "1", core.FieldName)
	assert.Equal(t, core.ValidationResult{IsValid: true}, res)
}

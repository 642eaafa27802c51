package handler

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

func boolPtr(b bool) *bool { return &b }

func TestValidator_WeightValidation(t *testing.T) {
	InitValidator()
	v := GetValidator()

	tests := []struct {
		name    string
		weight  *float64
		wantErr bool
	}{
		{"typical weight", floatPtr(2.5), false},
		{"zero weight", floatPtr(0), false},
		{"huge weight", floatPtr(1e12), false},
		{"negative weight", floatPtr(-0.1), true},
		{"NaN", floatPtr(math.NaN()), true},
		{"positive infinity", floatPtr(math.Inf(1)), true},
		{"negative infinity", floatPtr(math.Inf(-1)), true},
		{"missing weight", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStruct(UpdateWeightRequest{Weight: tt.weight})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidator_OptionalWeight(t *testing.T) {
	InitValidator()
	v := GetValidator()

	assert.NoError(t, v.ValidateStruct(ParticipantRequest{Name: "alice"}), "omitted weight uses the wheel default")
	assert.NoError(t, v.ValidateStruct(ParticipantRequest{Name: "alice", Weight: floatPtr(0)}))
	assert.Error(t, v.ValidateStruct(ParticipantRequest{Name: "alice", Weight: floatPtr(-1)}))
}

func TestValidator_NameValidation(t *testing.T) {
	InitValidator()
	v := GetValidator()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple name", "alice", false},
		{"unicode name", "Zoë", false},
		{"max length", strings.Repeat("a", 100), false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"too long", strings.Repeat("a", 101), true},
		{"newline", "ali\nce", true},
		{"null byte", "ali\x00ce", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStruct(ParticipantRequest{Name: tt.input})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidator_CreateWheelDivesIntoParticipants(t *testing.T) {
	InitValidator()
	v := GetValidator()

	req := CreateWheelRequest{
		Name: "Friday raffle",
		Participants: []ParticipantRequest{
			{Name: "alice"},
			{Name: "bob", Weight: floatPtr(-3)},
		},
	}

	err := v.ValidateStruct(req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Weight")
}

func TestValidator_SettingsDefaultWeight(t *testing.T) {
	InitValidator()
	v := GetValidator()

	assert.NoError(t, v.ValidateStruct(SettingsRequest{AllowRigging: boolPtr(true)}))
	assert.Error(t, v.ValidateStruct(SettingsRequest{DefaultWeight: floatPtr(math.Inf(1))}))
}

func TestFormatValidationError(t *testing.T) {
	InitValidator()
	v := GetValidator()

	err := v.ValidateStruct(UpdateWeightRequest{Weight: floatPtr(-1)})
	require.Error(t, err)

	fields := FormatValidationError(err)
	assert.Equal(t, "Must be a finite, non-negative number", fields["weight"])

	err = v.ValidateStruct(ParticipantRequest{Name: " "})
	require.Error(t, err)
	assert.Equal(t, "This field is required", FormatValidationError(err)["name"])

	assert.Nil(t, FormatValidationError(nil))
	assert.Equal(t, "Invalid request format", FormatValidationError(assert.AnError)["error"])
}

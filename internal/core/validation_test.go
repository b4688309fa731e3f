package core

import (
	"testing"

	"github.com/JonMunkholm/roster/internal/member"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldRules(t *testing.T) {
	tests := []struct {
		name       string
		rule       FieldRule
		value      string
		wantOK     bool
		wantReason string
	}{
		{"name ok", CheckName, "Ann Lee", true, ""},
		{"name digits", CheckName, "Ann 2", false, "Invalid name (Ann 2)"},
		{"name empty", CheckName, "", false, "Invalid name ()"},
		{"year number", CheckYear, "3", true, ""},
		{"year label", CheckYear, "Year 4", true, ""},
		{"year out of set", CheckYear, "Year 5", false, "Invalid year (Year 5)"},
		{"year lower case", CheckYear, "year 1", false, "Invalid year (year 1)"},
		{"student ok", CheckStudentNumber, "A1234567B", true, ""},
		{"student short", CheckStudentNumber, "A123456B", false, "Invalid student number (A123456B)"},
		{"student no letters", CheckStudentNumber, "112345671", false, "Invalid student number (112345671)"},
		{"email ok", CheckEmail, "ann.lee+club@uni.edu.sg", true, ""},
		{"email no tld", CheckEmail, "ann@x", false, "Invalid email (ann@x)"},
		{"email short tld", CheckEmail, "ann@x.c", false, "Invalid email (ann@x.c)"},
		{"phone ok", CheckPhone, "81234567", true, ""},
		{"phone short", CheckPhone, "123", false, "Invalid phone number (123)"},
		{"phone letters", CheckPhone, "8123456a", false, "Invalid phone number (8123456a)"},
		{"dietary ok", CheckDietaryRequirements, "No Pork", true, ""},
		{"dietary missing", CheckDietaryRequirements, "", false, "Missing dietary requirements."},
		{"dietary invalid", CheckDietaryRequirements, "Halal!", false, "Invalid dietary requirements (Halal!)"},
		{"role ok", CheckRole, "Vice President", true, ""},
		{"role missing", CheckRole, "", false, "Missing role."},
		{"role invalid", CheckRole, "Member1", false, "Invalid role (Member1)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reason, ok := tt.rule(tt.value)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantReason, reason)
		})
	}
}

func validFields(student, phone string) member.Fields {
	return member.Fields{
		Name:                "Ann Lee",
		Year:                "Year 1",
		StudentNumber:       student,
		Email:               "ann@x.com",
		Phone:               phone,
		DietaryRequirements: "Vegetarian",
		Role:                "Member",
	}
}

func TestLineValidator_ReportsEveryViolation(t *testing.T) {
	v := newLineValidator()

	f := validFields("bad", "123")
	f.Name = "R2D2"
	f.Role = ""

	result := v.Validate(7, f)
	require.False(t, result.Valid())
	assert.Equal(t, []string{
		"Invalid name (R2D2)",
		"Invalid student number (bad)",
		"Invalid phone number (123)",
		"Missing role.",
	}, result.Violations)

	diags := result.Diagnostics()
	require.Len(t, diags, 4)
	assert.Equal(t, "Line 7: Invalid name (R2D2)", diags[0].String())
}

func TestLineValidator_DuplicatesAfterRegister(t *testing.T) {
	v := newLineValidator()

	first := validFields("A1234567B", "81234567")
	require.True(t, v.Validate(2, first).Valid())

	r, err := member.New(first)
	require.NoError(t, err)
	v.Register(r)

	again := validFields("A1234567B", "81234567")
	result := v.Validate(3, again)
	assert.Equal(t, []string{
		"Duplicate student number (A1234567B)",
		"Duplicate phone number (81234567)",
	}, result.Violations)
}

func TestLineValidator_MalformedValuesNeverDuplicate(t *testing.T) {
	v := newLineValidator()

	for _, line := range []int{2, 3} {
		result := v.Validate(line, validFields("A12B", "81234567"))
		assert.Equal(t, []string{"Invalid student number (A12B)"}, result.Violations)
	}
}

func TestLineValidator_UnregisteredValuesNotSeen(t *testing.T) {
	v := newLineValidator()

	// Validate alone does not register; only accepted records count.
	require.True(t, v.Validate(2, validFields("A1234567B", "81234567")).Valid())
	assert.True(t, v.Validate(3, validFields("A1234567B", "81234567")).Valid())
}

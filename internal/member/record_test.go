package member

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validFields() Fields {
	return Fields{
		Name:                "Ann Lee",
		Year:                "Year 1",
		StudentNumber:       "A1234567B",
		Email:               "ann@x.com",
		Phone:               "81234567",
		DietaryRequirements: "Vegetarian",
		Role:                "Member",
		Tags:                []string{"treasurer", "exco"},
	}
}

func TestNew_Valid(t *testing.T) {
	r, err := New(validFields())
	require.NoError(t, err)

	assert.Equal(t, "Ann Lee", r.Name().String())
	assert.Equal(t, "Year 1", r.Year().String())
	assert.Equal(t, "A1234567B", r.StudentNumber().String())
	assert.Equal(t, "ann@x.com", r.Email().String())
	assert.Equal(t, "81234567", r.Phone().String())
	assert.Equal(t, "Vegetarian", r.DietaryRequirements().String())
	assert.Equal(t, "Member", r.Role().String())
	assert.Equal(t, []string{"exco", "treasurer"}, r.TagNames())
}

func TestNew_ConstructorErrors(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(f *Fields)
		wantField string
	}{
		{"name too long", func(f *Fields) { f.Name = strings.Repeat("a", 101) }, "name"},
		{"year outside set", func(f *Fields) { f.Year = "Year 5" }, "year"},
		{"student number length", func(f *Fields) { f.StudentNumber = "A123B" }, "student number"},
		{"email rejected by validator", func(f *Fields) { f.Email = "ann..lee@x.com" }, "email"},
		{"phone not digits", func(f *Fields) { f.Phone = "8123456x" }, "phone"},
		{"dietary too long", func(f *Fields) { f.DietaryRequirements = strings.Repeat("b", 51) }, "dietary requirements"},
		{"role empty", func(f *Fields) { f.Role = "" }, "role"},
		{"tag too long", func(f *Fields) { f.Tags = []string{strings.Repeat("t", 31)} }, "tag"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validFields()
			tt.mutate(&f)

			_, err := New(f)
			require.Error(t, err)

			var fe *FieldError
			require.True(t, errors.As(err, &fe), "expected *FieldError, got %T", err)
			assert.Equal(t, tt.wantField, fe.Field)
		})
	}
}

func TestFieldError_Message(t *testing.T) {
	_, err := NewPhone("123")
	require.Error(t, err)
	assert.Equal(t, "phone must be exactly 8 characters", err.Error())
}

func TestParseTags(t *testing.T) {
	tests := []struct {
		name string
		cell string
		want []string
	}{
		{"empty", "", nil},
		{"only separator", ";", nil},
		{"brackets stripped", "[friends];[colleagues]", []string{"colleagues", "friends"}},
		{"whitespace trimmed", " a ; b ", []string{"a", "b"}},
		{"duplicates collapsed", "a;a;b", []string{"a", "b"}},
		{"blank entries dropped", "a;;  ;b", []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTags(tt.cell))
		})
	}
}

func TestJoinTags(t *testing.T) {
	a, _ := NewTag("a")
	b, _ := NewTag("b")
	assert.Equal(t, "a;b", JoinTags([]Tag{a, b}))
	assert.Equal(t, "", JoinTags(nil))
}

func TestRecord_IsSameMember(t *testing.T) {
	a, err := New(validFields())
	require.NoError(t, err)

	f := validFields()
	f.StudentNumber = "a1234567b"
	f.Name = "Someone Else"
	b, err := New(f)
	require.NoError(t, err)

	f.StudentNumber = "B7654321C"
	c, err := New(f)
	require.NoError(t, err)

	assert.True(t, a.IsSameMember(b))
	assert.False(t, a.IsSameMember(c))
}

func TestRecord_TagsAreCopied(t *testing.T) {
	r, err := New(validFields())
	require.NoError(t, err)

	tags := r.Tags()
	tags[0] = Tag{name: "mutated"}

	assert.Equal(t, []string{"exco", "treasurer"}, r.TagNames())
}

func TestRecord_Equal(t *testing.T) {
	a, _ := New(validFields())
	b, _ := New(validFields())
	assert.True(t, a.Equal(b))

	f := validFields()
	f.Tags = []string{"exco"}
	c, _ := New(f)
	assert.False(t, a.Equal(c))
}

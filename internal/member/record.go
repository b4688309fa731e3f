package member

import (
	"fmt"
	"sort"
	"strings"
)

// Record is one validated member entry.
type Record struct {
	name          Name
	year          Year
	studentNumber StudentNumber
	email         Email
	phone         Phone
	dietary       DietaryRequirements
	role          Role
	tags          []Tag // unique by name, sorted
}

// Fields holds the raw string form of a record, in column order.
type Fields struct {
	Name                string
	Year                string
	StudentNumber       string
	Email               string
	Phone               string
	DietaryRequirements string
	Role                string
	Tags                []string
}

// NewRecord assembles a Record from already constructed field values.
// Duplicate tags are collapsed.
func NewRecord(
	name Name,
	year Year,
	studentNumber StudentNumber,
	email Email,
	phone Phone,
	dietary DietaryRequirements,
	role Role,
	tags []Tag,
) Record {
	return Record{
		name:          name,
		year:          year,
		studentNumber: studentNumber,
		email:         email,
		phone:         phone,
		dietary:       dietary,
		role:          role,
		tags:          uniqueTags(tags),
	}
}

// New builds a Record from raw strings, running every field constructor.
// It returns the first constructor error encountered.
func New(f Fields) (Record, error) {
	name, err := NewName(f.Name)
	if err != nil {
		return Record{}, err
	}
	year, err := NewYear(f.Year)
	if err != nil {
		return Record{}, err
	}
	studentNumber, err := NewStudentNumber(f.StudentNumber)
	if err != nil {
		return Record{}, err
	}
	email, err := NewEmail(f.Email)
	if err != nil {
		return Record{}, err
	}
	phone, err := NewPhone(f.Phone)
	if err != nil {
		return Record{}, err
	}
	dietary, err := NewDietaryRequirements(f.DietaryRequirements)
	if err != nil {
		return Record{}, err
	}
	role, err := NewRole(f.Role)
	if err != nil {
		return Record{}, err
	}

	tags := make([]Tag, 0, len(f.Tags))
	for _, raw := range f.Tags {
		tag, err := NewTag(raw)
		if err != nil {
			return Record{}, err
		}
		tags = append(tags, tag)
	}

	return NewRecord(name, year, studentNumber, email, phone, dietary, role, tags), nil
}

func (r Record) Name() Name                               { return r.name }
func (r Record) Year() Year                               { return r.year }
func (r Record) StudentNumber() StudentNumber             { return r.studentNumber }
func (r Record) Email() Email                             { return r.email }
func (r Record) Phone() Phone                             { return r.phone }
func (r Record) DietaryRequirements() DietaryRequirements { return r.dietary }
func (r Record) Role() Role                               { return r.role }

// Tags returns a copy of the record's tags sorted by name.
func (r Record) Tags() []Tag {
	out := make([]Tag, len(r.tags))
	copy(out, r.tags)
	return out
}

// TagNames returns the tag labels sorted by name.
func (r Record) TagNames() []string {
	names := make([]string, len(r.tags))
	for i, t := range r.tags {
		names[i] = t.name
	}
	return names
}

// Fields returns the raw string form of the record.
func (r Record) Fields() Fields {
	return Fields{
		Name:                r.name.value,
		Year:                r.year.value,
		StudentNumber:       r.studentNumber.value,
		Email:               r.email.value,
		Phone:               r.phone.value,
		DietaryRequirements: r.dietary.value,
		Role:                r.role.value,
		Tags:                r.TagNames(),
	}
}

// IsSameMember reports whether two records describe the same member.
// This is the store-level identity: student numbers compared case-insensitively.
func (r Record) IsSameMember(other Record) bool {
	return strings.EqualFold(r.studentNumber.value, other.studentNumber.value)
}

// Equal reports whether every field of both records matches.
func (r Record) Equal(other Record) bool {
	if r.name != other.name || r.year != other.year ||
		r.studentNumber != other.studentNumber || r.email != other.email ||
		r.phone != other.phone || r.dietary != other.dietary || r.role != other.role {
		return false
	}
	if len(r.tags) != len(other.tags) {
		return false
	}
	for i := range r.tags {
		if r.tags[i] != other.tags[i] {
			return false
		}
	}
	return true
}

func (r Record) String() string {
	return fmt.Sprintf("%s; Year: %s; Student Number: %s; Email: %s; Phone: %s; Dietary: %s; Role: %s; Tags: %s",
		r.name, r.year, r.studentNumber, r.email, r.phone, r.dietary, r.role, r.tags)
}

func uniqueTags(tags []Tag) []Tag {
	seen := make(map[string]bool, len(tags))
	out := make([]Tag, 0, len(tags))
	for _, t := range tags {
		if seen[t.name] {
			continue
		}
		seen[t.name] = true
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

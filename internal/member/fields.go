package member

import (
	"strings"
)

// Name is a member's display name.
type Name struct{ value string }

// NewName validates and returns a Name.
func NewName(s string) (Name, error) {
	if err := checkVar("name", s, nameRules); err != nil {
		return Name{}, err
	}
	return Name{value: s}, nil
}

func (n Name) String() string { return n.value }

// Year is the member's year of study.
type Year struct{ value string }

// AcceptedYears lists every value a Year may hold, in display order.
var AcceptedYears = []string{"1", "2", "3", "4", "Year 1", "Year 2", "Year 3", "Year 4"}

// NewYear validates and returns a Year.
func NewYear(s string) (Year, error) {
	for _, y := range AcceptedYears {
		if s == y {
			return Year{value: s}, nil
		}
	}
	return Year{}, &FieldError{
		Field:   "year",
		Value:   s,
		Message: "must be one of: " + strings.Join(AcceptedYears, ", "),
	}
}

func (y Year) String() string { return y.value }

// StudentNumber identifies a member uniquely, e.g. A1234567B.
type StudentNumber struct{ value string }

// NewStudentNumber validates and returns a StudentNumber.
func NewStudentNumber(s string) (StudentNumber, error) {
	if err := checkVar("student number", s, studentNumberRules); err != nil {
		return StudentNumber{}, err
	}
	return StudentNumber{value: s}, nil
}

func (s StudentNumber) String() string { return s.value }

// Email is a member's contact address.
type Email struct{ value string }

// NewEmail validates and returns an Email.
func NewEmail(s string) (Email, error) {
	if err := checkVar("email", s, emailRules); err != nil {
		return Email{}, err
	}
	return Email{value: s}, nil
}

func (e Email) String() string { return e.value }

// Phone is an 8-digit phone number.
type Phone struct{ value string }

// NewPhone validates and returns a Phone.
func NewPhone(s string) (Phone, error) {
	if err := checkVar("phone", s, phoneRules); err != nil {
		return Phone{}, err
	}
	return Phone{value: s}, nil
}

func (p Phone) String() string { return p.value }

// DietaryRequirements is free text such as "Vegetarian" or "None".
type DietaryRequirements struct{ value string }

// NewDietaryRequirements validates and returns DietaryRequirements.
func NewDietaryRequirements(s string) (DietaryRequirements, error) {
	if err := checkVar("dietary requirements", s, dietaryRules); err != nil {
		return DietaryRequirements{}, err
	}
	return DietaryRequirements{value: s}, nil
}

func (d DietaryRequirements) String() string { return d.value }

// Role is the member's role in the organization.
type Role struct{ value string }

// NewRole validates and returns a Role.
func NewRole(s string) (Role, error) {
	if err := checkVar("role", s, roleRules); err != nil {
		return Role{}, err
	}
	return Role{value: s}, nil
}

func (r Role) String() string { return r.value }

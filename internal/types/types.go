// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles —
// the directory, view, storage and handler packages can all import types
// without depending on each other.
package types

// Gender is one of the fixed values offered by the student form.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// Genders lists every accepted Gender in display order.
var Genders = []Gender{GenderMale, GenderFemale}

// Department is one of the fixed departments a student can belong to.
type Department string

const (
	DepartmentComputerScience        Department = "Computer Science"
	DepartmentElectricalEngineering  Department = "Electrical Engineering"
	DepartmentMechanicalEngineering  Department = "Mechanical Engineering"
	DepartmentCivilEngineering       Department = "Civil Engineering"
	DepartmentBusinessAdministration Department = "Business Administration"
)

// Departments lists every accepted Department in display order.
var Departments = []Department{
	DepartmentComputerScience,
	DepartmentElectricalEngineering,
	DepartmentMechanicalEngineering,
	DepartmentCivilEngineering,
	DepartmentBusinessAdministration,
}

// StudentFields is everything a caller supplies when creating or replacing
// a student. The id is never part of it: the store owns identifiers.
//
// Struct tags serve two purposes:
//
//  1. json:"..."  — the key used on the wire and in the persisted snapshot.
//
//  2. validate:"..." — rules checked by the go-playground/validator
//     package. The custom tags (trimmin, simpleemail, phone) are
//     registered by internal/validation.
type StudentFields struct {
	Name       string     `json:"name"       validate:"required,trimmin=3"`
	Email      string     `json:"email"      validate:"required,simpleemail"`
	Phone      string     `json:"phone"      validate:"required,phone"`
	Gender     Gender     `json:"gender"     validate:"required,oneof=Male Female"`
	Department Department `json:"department" validate:"required,oneof='Computer Science' 'Electrical Engineering' 'Mechanical Engineering' 'Civil Engineering' 'Business Administration'"`
}

// Student is one stored record: the generated id plus its fields.
// Embedding flattens the fields so the JSON shape is
//
//	{ "id": "...", "name": "...", "email": "...", "phone": "...",
//	  "gender": "...", "department": "..." }
type Student struct {
	ID string `json:"id"`
	StudentFields
}

// Fields returns the caller-editable part of the record.
func (s Student) Fields() StudentFields {
	return s.StudentFields
}

package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aanand-mishra/student-directory/internal/types"
)

// Encode serialises the collection as a JSON array of student objects.
// A nil slice is written as [] so the snapshot is never "null".
func Encode(students []types.Student) ([]byte, error) {
	if students == nil {
		students = []types.Student{}
	}
	data, err := json.Marshal(students)
	if err != nil {
		return nil, fmt.Errorf("storage.Encode: %w", err)
	}
	return data, nil
}

// persistedStudent mirrors types.Student with pointer fields so Decode can
// tell a missing or null key apart from an empty string.
type persistedStudent struct {
	ID         *string `json:"id"`
	Name       *string `json:"name"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	Gender     *string `json:"gender"`
	Department *string `json:"department"`
}

// Decode parses a snapshot written by Encode. Every record must carry all
// six keys with non-null values, and ids must be non-empty and unique;
// anything else is reported as ErrCorrupt.
func Decode(data []byte) ([]types.Student, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return []types.Student{}, nil
	}

	var raw []persistedStudent
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	students := make([]types.Student, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for i, r := range raw {
		if missing := r.missingKey(); missing != "" {
			return nil, fmt.Errorf("%w: record %d: key %q is missing or null", ErrCorrupt, i, missing)
		}
		if strings.TrimSpace(*r.ID) == "" {
			return nil, fmt.Errorf("%w: record %d: empty id", ErrCorrupt, i)
		}
		if _, dup := seen[*r.ID]; dup {
			return nil, fmt.Errorf("%w: record %d: duplicate id %q", ErrCorrupt, i, *r.ID)
		}
		seen[*r.ID] = struct{}{}

		students = append(students, types.Student{
			ID: *r.ID,
			StudentFields: types.StudentFields{
				Name:       *r.Name,
				Email:      *r.Email,
				Phone:      *r.Phone,
				Gender:     types.Gender(*r.Gender),
				Department: types.Department(*r.Department),
			},
		})
	}
	return students, nil
}

func (r persistedStudent) missingKey() string {
	switch {
	case r.ID == nil:
		return "id"
	case r.Name == nil:
		return "name"
	case r.Email == nil:
		return "email"
	case r.Phone == nil:
		return "phone"
	case r.Gender == nil:
		return "gender"
	case r.Department == nil:
		return "department"
	}
	return ""
}

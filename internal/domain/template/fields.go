package template

import "errors"

var ErrLastField = errors.New("template must keep at least one field")

// AddField returns a copy of fields with f appended. The input slice is not
// modified; callers hold working copies while editing a template.
func AddField(fields []Field, f Field) []Field {
	out := make([]Field, len(fields), len(fields)+1)
	copy(out, fields)
	return append(out, f)
}

// UpdateField replaces the field with the same ID. Unknown IDs leave the list
// unchanged.
func UpdateField(fields []Field, f Field) []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	for i := range out {
		if out[i].ID == f.ID {
			out[i] = f
		}
	}
	return out
}

// RemoveField drops the field with the given ID. Removing the last remaining
// field is refused so every template keeps a non-empty field list.
func RemoveField(fields []Field, id string) ([]Field, error) {
	if len(fields) <= 1 {
		return fields, ErrLastField
	}
	out := make([]Field, 0, len(fields))
	for _, f := range fields {
		if f.ID != id {
			out = append(out, f)
		}
	}
	return out, nil
}

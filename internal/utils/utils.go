package utils

import (
	"fmt"

	"github.com/fatih/structs"
)

// FieldTagNames returns the non-empty values of the given tag across the
// passed struct fields.
func FieldTagNames(fields []*structs.Field, tag string) []string {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		if name := f.Tag(tag); name != "" && name != "-" {
			names = append(names, name)
		}
	}
	return names
}

// FormFields maps the fields of the passed struct to their `form` tag
// names, rendering each value with fmt. Fields without a form tag (or
// tagged "-") are skipped.
func FormFields(v any) map[string]string {
	s := structs.New(v)
	out := make(map[string]string)
	for _, f := range s.Fields() {
		name := f.Tag("form")
		if name == "" || name == "-" {
			continue
		}
		out[name] = fmt.Sprintf("%v", f.Value())
	}
	return out
}

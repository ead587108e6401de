package binder

import (
	"fmt"
	"net/http"
)

// Path returns a binder for route parameters. extract is called once per
// field tagged `path:"name"`; empty values leave the field untouched.
func Path(extract func(r *http.Request, name string) string) Binder {
	return func(r *http.Request, v any) error {
		if extract == nil {
			return fmt.Errorf("%w: nil extractor", ErrFailedToParsePath)
		}

		rv, err := structValue(v, ErrFailedToParsePath)
		if err != nil {
			return err
		}
		rt := rv.Type()

		for i := range rv.NumField() {
			field := rv.Field(i)
			sf := rt.Field(i)
			if !field.CanSet() {
				continue
			}

			name := tagName(sf, "path")
			if name == "" {
				continue
			}
			value := extract(r, name)
			if value == "" {
				continue
			}
			if err := setFieldValue(field, sf.Type, []string{value}); err != nil {
				return fmt.Errorf("%w: field %s: %w", ErrFailedToParsePath, sf.Name, err)
			}
		}

		return nil
	}
}

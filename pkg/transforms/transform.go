package transforms

import (
	"reflect"
)

type TransformDefinition struct {
	Type  string
	Match map[string]string
	Data  map[string]interface{}
}

func (t *TransformDefinition) apply(inputValue reflect.Value) {
	if !inputValue.IsValid() {
		return
	}

	isMatch := true

	for key, value := range t.Match {
		field := inputValue.FieldByName(key)
		if field.IsValid() {
			if value != field.String() {
				isMatch = false
			}
		} else {
			isMatch = false
		}
	}

	// If we match then go over and update the values
	if isMatch {
		for key, value := range t.Data {
			field := inputValue.FieldByName(key)
			if field.IsValid() && field.CanSet() {
				newValue := reflect.ValueOf(value)
				if newValue.Type().AssignableTo(field.Type()) {
					field.Set(newValue)
				}
			}
		}
	}
}

func Transform(input interface{}) {
	transformValue(reflect.ValueOf(input))
}

func transformValue(value reflect.Value) {
	switch value.Kind() {
	case reflect.Pointer:
		if !value.IsNil() {
			transformValue(value.Elem())
		}
	case reflect.Slice:
		// Slice elements stay addressable even when the slice header is
		// passed by value, so the overrides apply in place
		for i := 0; i < value.Len(); i++ {
			transformValue(value.Index(i))
		}
	case reflect.Struct:
		typeName := value.Type().String()

		for _, transformDef := range transforms {
			if transformDef.Type != typeName {
				continue
			}

			transformDef.apply(value)
		}

		for i := 0; i < value.NumField(); i++ {
			field := value.Field(i)

			switch field.Kind() {
			case reflect.Pointer, reflect.Slice, reflect.Struct:
				transformValue(field)
			}
		}
	}
}

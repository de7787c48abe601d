package tabular

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// TagName is the struct tag holding a field's column key
const TagName = "tab"

// FieldKeys returns the `tab` keys of a struct in field order
func FieldKeys(model interface{}) ([]string, error) {
	t := reflect.TypeOf(model)

	// Handle pointer to struct
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("model must be a struct, got %s", t.Kind())
	}

	keys := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if key := t.Field(i).Tag.Get(TagName); key != "" {
			keys = append(keys, key)
		}
	}

	if len(keys) == 0 {
		return nil, fmt.Errorf("struct %s has no %q tagged fields", t.Name(), TagName)
	}

	return keys, nil
}

// Values returns the `tab` tagged field values of a struct in field order
func Values(model interface{}) []interface{} {
	v := reflect.Indirect(reflect.ValueOf(model))
	t := v.Type()

	row := make([]interface{}, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).Tag.Get(TagName) == "" {
			continue
		}
		row = append(row, v.Field(i).Interface())
	}
	return row
}

// DecodeRows maps every non-blank data row of the table onto a struct of type T.
// labels maps a field's `tab` key to the header label holding it; keys without an
// entry are looked up by the key itself. Row numbers in errors are 1-based and count
// the header row, matching what a spreadsheet shows.
func DecodeRows[T any](table *Table, labels map[string]string) ([]T, error) {
	var model T
	t := reflect.TypeOf(model)
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("model must be a struct, got %s", t.Kind())
	}

	index := table.Index()

	// Resolve each tagged field to its column index
	type binding struct {
		fieldIndex int
		column     int
		label      string
	}
	var bindings []binding
	for i := 0; i < t.NumField(); i++ {
		key := t.Field(i).Tag.Get(TagName)
		if key == "" {
			continue
		}
		label, ok := labels[key]
		if !ok {
			label = key
		}
		label = NormalizeHeader(label)
		col, ok := index[label]
		if !ok {
			return nil, fmt.Errorf("column %q not found in header", label)
		}
		bindings = append(bindings, binding{fieldIndex: i, column: col, label: label})
	}

	results := make([]T, 0, len(table.Rows))
	for rowIdx, row := range table.Rows {
		if isBlankRow(row) {
			continue
		}

		result := reflect.New(t).Elem()
		for _, b := range bindings {
			var cell interface{}
			if b.column < len(row) {
				cell = row[b.column]
			}

			if err := setFieldValue(result.Field(b.fieldIndex), cell); err != nil {
				return nil, fmt.Errorf("row %d, column %s: %w", rowIdx+2, b.label, err)
			}
		}

		results = append(results, result.Interface().(T))
	}

	return results, nil
}

// setFieldValue converts a cell value to the field's Go type and sets it.
// Empty cells become "" for strings, NaN for floats and zero for other kinds.
func setFieldValue(field reflect.Value, cellValue interface{}) error {
	if !field.CanSet() {
		return fmt.Errorf("field cannot be set")
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(strings.TrimSpace(cellString(cellValue)))

	case reflect.Float32, reflect.Float64:
		f, err := cellFloat(cellValue)
		if err != nil {
			return err
		}
		field.SetFloat(f)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		cellStr := strings.TrimSpace(cellString(cellValue))
		if cellStr == "" {
			field.SetInt(0)
		} else {
			intVal, err := strconv.ParseInt(cellStr, 10, 64)
			if err != nil {
				return fmt.Errorf("failed to parse int: %w", err)
			}
			field.SetInt(intVal)
		}

	case reflect.Bool:
		cellStr := strings.TrimSpace(cellString(cellValue))
		if cellStr == "" {
			field.SetBool(false)
		} else {
			boolVal, err := strconv.ParseBool(cellStr)
			if err != nil {
				return fmt.Errorf("failed to parse bool: %w", err)
			}
			field.SetBool(boolVal)
		}

	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}

	return nil
}

// cellFloat reads a numeric cell. Empty cells and "NaN" read as NaN.
// A decimal comma is accepted when the cell has no dot.
func cellFloat(cellValue interface{}) (float64, error) {
	switch v := cellValue.(type) {
	case nil:
		return math.NaN(), nil
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	}

	cellStr := strings.TrimSpace(cellString(cellValue))
	if cellStr == "" {
		return math.NaN(), nil
	}
	if strings.Contains(cellStr, ",") && !strings.Contains(cellStr, ".") {
		cellStr = strings.Replace(cellStr, ",", ".", 1)
	}

	f, err := strconv.ParseFloat(cellStr, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse float: %w", err)
	}
	return f, nil
}

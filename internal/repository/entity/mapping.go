package entity

import (
	"database/sql"
	"fmt"
	"reflect"
	"strings"
)

// column binds one struct field to the column named by its json tag.
type column struct {
	name  string
	index int
	kind  reflect.Type
}

var (
	typeInt64   = reflect.TypeOf(int64(0))
	typeString  = reflect.TypeOf("")
	typeIntPtr  = reflect.TypeOf((*int)(nil))
	typeRealPtr = reflect.TypeOf((*float64)(nil))
)

// columnsOf lists the mapped columns of T, id first.
func columnsOf[T any]() ([]column, error) {
	var zero T
	t := reflect.TypeOf(zero)
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%s is not a struct", t)
	}

	cols := make([]column, 0, t.NumField())
	for i := range t.NumField() {
		f := t.Field(i)
		tag, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if tag == "" || tag == "-" {
			continue
		}
		switch f.Type {
		case typeInt64, typeString, typeIntPtr, typeRealPtr:
		default:
			return nil, fmt.Errorf("%s.%s: unsupported type %s", t, f.Name, f.Type)
		}
		cols = append(cols, column{name: tag, index: i, kind: f.Type})
	}
	if len(cols) == 0 || cols[0].name != "id" {
		return nil, fmt.Errorf("%s: first mapped field must be id", t)
	}
	return cols, nil
}

// scanTargets returns one destination per column.
func scanTargets(cols []column) []any {
	out := make([]any, len(cols))
	for i, c := range cols {
		switch c.kind {
		case typeInt64:
			out[i] = new(int64)
		case typeString:
			out[i] = new(sql.NullString)
		case typeIntPtr:
			out[i] = new(sql.NullInt64)
		case typeRealPtr:
			out[i] = new(sql.NullFloat64)
		}
	}
	return out
}

// assign copies scanned values into a new T.
func assign[T any](cols []column, targets []any) T {
	var rec T
	v := reflect.ValueOf(&rec).Elem()
	for i, c := range cols {
		f := v.Field(c.index)
		switch dst := targets[i].(type) {
		case *int64:
			f.SetInt(*dst)
		case *sql.NullString:
			f.SetString(dst.String)
		case *sql.NullInt64:
			if dst.Valid {
				n := int(dst.Int64)
				f.Set(reflect.ValueOf(&n))
			}
		case *sql.NullFloat64:
			if dst.Valid {
				x := dst.Float64
				f.Set(reflect.ValueOf(&x))
			}
		}
	}
	return rec
}

// values returns bind values for every column but id. Empty text and nil
// pointers become NULL.
func values[T any](cols []column, rec T) []any {
	v := reflect.ValueOf(rec)
	out := make([]any, 0, len(cols)-1)
	for _, c := range cols[1:] {
		f := v.Field(c.index)
		switch c.kind {
		case typeString:
			if s := strings.TrimSpace(f.String()); s != "" {
				out = append(out, s)
			} else {
				out = append(out, nil)
			}
		case typeIntPtr, typeRealPtr:
			if f.IsNil() {
				out = append(out, nil)
			} else {
				out = append(out, f.Elem().Interface())
			}
		default:
			out = append(out, f.Interface())
		}
	}
	return out
}

// setID stores id in rec's id field.
func setID[T any](cols []column, rec *T, id int64) {
	reflect.ValueOf(rec).Elem().Field(cols[0].index).SetInt(id)
}

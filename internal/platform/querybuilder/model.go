package querybuilder

import (
	"reflect"
	"strings"

	crerr "github.com/cockroachdb/errors"
)

// InsertModel builds an INSERT for a struct, mapping exported fields through
// their `db` tags the same way sqlx reads them back.
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return "", nil, crerr.New("insert model: nil model")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return "", nil, crerr.Newf("insert model: expected struct, got %s", value.Kind())
	}

	typ := value.Type()
	columns := make([]string, 0, typ.NumField())
	values := make([]any, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if field.PkgPath != "" {
			continue
		}
		column := dbColumnName(field.Tag.Get("db"))
		if column == "" {
			continue
		}
		columns = append(columns, column)
		values = append(values, value.Field(i).Interface())
	}
	if len(columns) == 0 {
		return "", nil, crerr.Newf("insert model: %s has no db-tagged fields", typ.Name())
	}

	return InsertInto(table).
		Columns(columns...).
		Values(values...).
		Suffix(suffix).
		ToSQL()
}

func dbColumnName(tag string) string {
	name := strings.TrimSpace(strings.Split(tag, ",")[0])
	if name == "-" {
		return ""
	}
	return name
}

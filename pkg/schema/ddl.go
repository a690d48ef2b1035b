package schema

import (
	"database/sql/driver"
	"fmt"
	"reflect"
	"strings"
)

// fields walks struct fields that have a `db` tag.
func fields(model any, fn func(f reflect.StructField, v reflect.Value)) {
	v := reflect.ValueOf(model)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Tag.Get("db") == "" {
			continue
		}
		fn(field, v.Field(i))
	}
}

// generateDDL creates a CREATE TABLE statement from struct tags.
func generateDDL(model any, tableName string, constraints ...string) string {
	var columns []string
	fields(model, func(f reflect.StructField, _ reflect.Value) {
		if ddl := f.Tag.Get("ddl"); ddl != "" {
			columns = append(columns,
				fmt.Sprintf("    %s %s", f.Tag.Get("db"), ddl))
		}
	})
	for _, c := range constraints {
		columns = append(columns, "    "+c)
	}

	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n%s\n);",
		tableName,
		strings.Join(columns, ",\n"))
}

// Columns returns column names of a model in field order.
func Columns(model any) []string {
	var res []string
	fields(model, func(f reflect.StructField, _ reflect.Value) {
		res = append(res, f.Tag.Get("db"))
	})
	return res
}

// Values returns column values of a model in the order of Columns.
// Nullable values are converted to plain values or nil.
func Values(model any) []any {
	var res []any
	fields(model, func(_ reflect.StructField, v reflect.Value) {
		val := v.Interface()
		if vl, ok := val.(driver.Valuer); ok {
			val, _ = vl.Value()
		}
		res = append(res, val)
	})
	return res
}

// Run DDL methods
func (r Run) TableDDL() string {
	return generateDDL(r, r.TableName())
}

func (r Run) IndexDDL() []string {
	return nil
}

func (r Run) TableName() string {
	return "runs"
}

// Estimate DDL methods
func (e Estimate) TableDDL() string {
	return generateDDL(e, e.TableName())
}

func (e Estimate) IndexDDL() []string {
	return []string{
		"CREATE INDEX IF NOT EXISTS idx_estimates_run_id ON estimates(run_id);",
		"CREATE INDEX IF NOT EXISTS idx_estimates_population ON estimates(population);",
	}
}

func (e Estimate) TableName() string {
	return "estimates"
}

// Sample DDL methods
func (s Sample) TableDDL() string {
	return generateDDL(s, s.TableName(), "PRIMARY KEY (estimate_id, draw)")
}

func (s Sample) IndexDDL() []string {
	return []string{
		"CREATE INDEX IF NOT EXISTS idx_samples_run_id ON samples(run_id);",
	}
}

func (s Sample) TableName() string {
	return "samples"
}

// LikelihoodPoint DDL methods
func (l LikelihoodPoint) TableDDL() string {
	return generateDDL(l, l.TableName(), "PRIMARY KEY (estimate_id, point)")
}

func (l LikelihoodPoint) IndexDDL() []string {
	return []string{
		"CREATE INDEX IF NOT EXISTS idx_likelihood_points_run_id ON likelihood_points(run_id);",
	}
}

func (l LikelihoodPoint) TableName() string {
	return "likelihood_points"
}

// DDLModels returns generators in the order tables have to be created.
func DDLModels() []DDLGenerator {
	return []DDLGenerator{
		Run{},
		Estimate{},
		Sample{},
		LikelihoodPoint{},
	}
}

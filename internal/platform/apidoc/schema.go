package apidoc

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-openapi/spec"
)

var timeType = reflect.TypeOf(time.Time{})

// valueTyper is implemented by wrappers such as resource.Optional that document as their wrapped type.
type valueTyper interface {
	ValueType() reflect.Type
}

var valueTyperType = reflect.TypeOf((*valueTyper)(nil)).Elem()

// schemaBuilder turns Go types into Swagger schemas, collecting struct definitions.
type schemaBuilder struct {
	definitions spec.Definitions
}

func newSchemaBuilder() *schemaBuilder {
	return &schemaBuilder{definitions: spec.Definitions{}}
}

// schemaOf documents the type of the sample value v; nil gives nil.
func (b *schemaBuilder) schemaOf(v any) *spec.Schema {
	if v == nil {
		return nil
	}
	return b.schema(reflect.TypeOf(v))
}

func (b *schemaBuilder) schema(t reflect.Type) *spec.Schema {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Implements(valueTyperType) {
		inner := reflect.Zero(t).Interface().(valueTyper).ValueType()
		return b.schema(inner)
	}
	if t == timeType {
		return spec.DateTimeProperty()
	}

	switch t.Kind() {
	case reflect.String:
		return spec.StringProperty()
	case reflect.Bool:
		return spec.BoolProperty()
	case reflect.Int, reflect.Int64:
		return spec.Int64Property()
	case reflect.Int8, reflect.Int16, reflect.Int32:
		return spec.Int32Property()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		s := spec.Int64Property()
		s.WithMinimum(0, false)
		return s
	case reflect.Float32:
		return spec.Float32Property()
	case reflect.Float64:
		return spec.Float64Property()
	case reflect.Slice, reflect.Array:
		return spec.ArrayProperty(b.schema(t.Elem()))
	case reflect.Map:
		return spec.MapProperty(b.schema(t.Elem()))
	case reflect.Struct:
		name := definitionName(t)
		if _, ok := b.definitions[name]; !ok {
			// placeholder first so self references terminate
			b.definitions[name] = spec.Schema{}
			b.definitions[name] = *b.object(t)
		}
		return spec.RefSchema("#/definitions/" + name)
	default:
		return &spec.Schema{}
	}
}

func (b *schemaBuilder) object(t reflect.Type) *spec.Schema {
	obj := &spec.Schema{}
	obj.Typed("object", "")
	b.addFields(obj, t)
	return obj
}

func (b *schemaBuilder) addFields(obj *spec.Schema, t reflect.Type) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")

		if f.Anonymous && name == "" {
			ft := f.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				b.addFields(obj, ft)
				continue
			}
		}
		if !f.IsExported() {
			continue
		}
		if name == "" {
			name = f.Name
		}
		obj.SetProperty(name, *b.schema(f.Type))
		if validateHas(f.Tag.Get("validate"), "required") {
			obj.AddRequired(name)
		}
	}
}

func validateHas(tag, rule string) bool {
	for _, part := range strings.Split(tag, ",") {
		if part == rule {
			return true
		}
	}
	return false
}

// definitionName qualifies a type with the nearest meaningful package segment,
// e.g. ".../modules/restaurants/domain".Restaurant gives "restaurants.Restaurant".
func definitionName(t reflect.Type) string {
	parts := strings.Split(t.PkgPath(), "/")
	qualifier := ""
	for i := len(parts) - 1; i >= 0; i-- {
		switch parts[i] {
		case "domain", "interface", "":
			continue
		}
		qualifier = parts[i]
		break
	}
	name := t.Name()
	if qualifier == "" {
		return name
	}
	return qualifier + "." + name
}

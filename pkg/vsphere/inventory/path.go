package inventory

import (
	"reflect"
	"strings"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

/*
lookupPath reads a dotted path out of a property value. Decoded maps are read
with the unstructured helpers; typed values (such as the structs a SOAP
decoder produces) are walked by case-insensitive field name.
*/
func lookupPath(v interface{}, path string) (interface{}, bool) {
	fields := strings.Split(path, ".")
	if m, ok := v.(map[string]interface{}); ok {
		val, found, err := unstructured.NestedFieldNoCopy(m, fields...)
		return val, found && nil == err
	}

	cur := reflect.ValueOf(v)
	for _, field := range fields {
		for cur.Kind() == reflect.Ptr || cur.Kind() == reflect.Interface {
			if cur.IsNil() {
				return nil, false
			}
			cur = cur.Elem()
		}
		switch cur.Kind() {
		case reflect.Struct:
			fv := cur.FieldByNameFunc(func(name string) bool {
				return strings.EqualFold(name, field)
			})
			if !fv.IsValid() {
				return nil, false
			}
			cur = fv
		case reflect.Map:
			if cur.Type().Key().Kind() != reflect.String {
				return nil, false
			}
			mv := cur.MapIndex(reflect.ValueOf(field).Convert(cur.Type().Key()))
			if !mv.IsValid() {
				return nil, false
			}
			cur = mv
		default:
			return nil, false
		}
	}
	if !cur.IsValid() || !cur.CanInterface() {
		return nil, false
	}
	return cur.Interface(), true
}

// stringValue returns v as a string when its kind is string, including named
// enum types.
func stringValue(v interface{}) (string, bool) {
	if nil == v {
		return "", false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.String {
		return "", false
	}
	return rv.String(), true
}

package tradeai

import (
	"context"
	"fmt"
	"reflect"
	"strings"
)

// ResolveStructKey applies the repository-wide rule to resolve a struct
// field's external key used by Decode.
// Priority: tradeai:"name=..." > json tag name > field name; "-" disables the
// field.
func ResolveStructKey(sf reflect.StructField) string {
	if gt := sf.Tag.Get("tradeai"); gt != "" {
		for _, p := range strings.Split(gt, ",") {
			p = strings.TrimSpace(p)
			if strings.HasPrefix(p, "name=") {
				return strings.TrimPrefix(p, "name=")
			}
		}
	}
	if jt := sf.Tag.Get("json"); jt != "" {
		if jt == "-" {
			return "-"
		}
		if i := strings.IndexByte(jt, ','); i >= 0 {
			return jt[:i]
		}
		return jt
	}
	return sf.Name
}

// Decode validates raw against the schema and maps the normalized record onto
// a struct of type T by external key. Validation failures come back as the
// usual ViolationList; mapping failures (a schema/struct shape disagreement)
// are plain errors because they are programmer mistakes, not input problems.
func Decode[T any](ctx context.Context, s *Schema, raw any) (T, error) {
	var out T
	rec, err := s.Validate(ctx, raw)
	if err != nil {
		return out, err
	}
	if err := assignStruct(reflect.ValueOf(&out).Elem(), rec); err != nil {
		return out, err
	}
	return out, nil
}

// DecodeFrom is Decode over a streaming Source.
func DecodeFrom[T any](ctx context.Context, s *Schema, src Source) (T, error) {
	var out T
	raw, err := decodeEnforced(s, src)
	if err != nil {
		return out, err
	}
	return Decode[T](ctx, s, raw)
}

func assignStruct(dst reflect.Value, rec map[string]any) error {
	if dst.Kind() != reflect.Struct {
		return fmt.Errorf("tradeai: decode target must be a struct, got %s", dst.Kind())
	}
	t := dst.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		key := ResolveStructKey(sf)
		if key == "-" {
			continue
		}
		v, ok := rec[key]
		if !ok {
			continue
		}
		if err := assignValue(dst.Field(i), v, key); err != nil {
			return err
		}
	}
	return nil
}

func assignValue(dst reflect.Value, v any, key string) error {
	if v == nil {
		return nil
	}
	if dst.Kind() == reflect.Pointer {
		if dst.IsNil() {
			dst.Set(reflect.New(dst.Type().Elem()))
		}
		return assignValue(dst.Elem(), v, key)
	}
	switch dst.Kind() {
	case reflect.String:
		s, ok := v.(string)
		if !ok {
			return mappingError(key, "string", v)
		}
		dst.SetString(s)
	case reflect.Float64, reflect.Float32:
		n, ok := v.(float64)
		if !ok {
			return mappingError(key, "number", v)
		}
		dst.SetFloat(n)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := v.(float64)
		if !ok {
			return mappingError(key, "number", v)
		}
		dst.SetInt(int64(n))
	case reflect.Bool:
		b, ok := v.(bool)
		if !ok {
			return mappingError(key, "boolean", v)
		}
		dst.SetBool(b)
	case reflect.Slice:
		arr, ok := v.([]any)
		if !ok {
			return mappingError(key, "array", v)
		}
		out := reflect.MakeSlice(dst.Type(), len(arr), len(arr))
		for i, el := range arr {
			if err := assignValue(out.Index(i), el, fmt.Sprintf("%s/%d", key, i)); err != nil {
				return err
			}
		}
		dst.Set(out)
	case reflect.Struct:
		rec, ok := v.(map[string]any)
		if !ok {
			return mappingError(key, "object", v)
		}
		return assignStruct(dst, rec)
	case reflect.Map:
		rec, ok := v.(map[string]any)
		if !ok {
			return mappingError(key, "object", v)
		}
		if dst.Type().Key().Kind() != reflect.String {
			return fmt.Errorf("tradeai: field %q: map keys must be strings", key)
		}
		out := reflect.MakeMapWithSize(dst.Type(), len(rec))
		for k, el := range rec {
			ev := reflect.New(dst.Type().Elem()).Elem()
			if err := assignValue(ev, el, key+"/"+k); err != nil {
				return err
			}
			out.SetMapIndex(reflect.ValueOf(k), ev)
		}
		dst.Set(out)
	case reflect.Interface:
		dst.Set(reflect.ValueOf(v))
	default:
		return fmt.Errorf("tradeai: field %q: unsupported target kind %s", key, dst.Kind())
	}
	return nil
}

func mappingError(key, want string, v any) error {
	return fmt.Errorf("tradeai: field %q: cannot map %s onto %s target", key, typeName(v), want)
}

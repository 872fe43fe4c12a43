package spj

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/funvibe/spj/internal/config"
	"github.com/funvibe/spj/internal/evaluator"
)

// ArrayClassName is the builtin class Go slices become when the library
// defines it.
const ArrayClassName = "Pole"

var objectType = reflect.TypeOf((*evaluator.Object)(nil)).Elem()

// Marshaller handles conversion between Go and runtime values.
type Marshaller struct {
	eval *evaluator.Evaluator
}

func NewMarshaller(e *evaluator.Evaluator) *Marshaller {
	return &Marshaller{eval: e}
}

// ToValue converts a Go value to a runtime Object.
func (m *Marshaller) ToValue(val interface{}) (evaluator.Object, error) {
	if val == nil {
		return evaluator.UNSET, nil
	}
	if obj, ok := val.(evaluator.Object); ok {
		return obj, nil
	}
	return m.toValue(reflect.ValueOf(val))
}

func (m *Marshaller) toValue(v reflect.Value) (evaluator.Object, error) {
	if v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	if !v.IsValid() {
		return evaluator.UNSET, nil
	}

	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return &evaluator.Number{Value: float64(v.Int())}, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &evaluator.Number{Value: float64(v.Uint())}, nil
	case reflect.Float32, reflect.Float64:
		return &evaluator.Number{Value: v.Float()}, nil
	case reflect.Bool:
		if v.Bool() {
			return evaluator.TRUE, nil
		}
		return evaluator.FALSE, nil
	case reflect.String:
		return &evaluator.String{Value: v.String()}, nil
	case reflect.Slice, reflect.Array:
		return m.sliceToArray(v)
	case reflect.Map:
		return m.mapToInstance(v)
	case reflect.Struct:
		return m.structToInstance(v)
	case reflect.Ptr:
		if v.IsNil() {
			return evaluator.UNSET, nil
		}
		return m.toValue(v.Elem())
	case reflect.Func:
		return m.wrapFunc("", v), nil
	}
	return nil, fmt.Errorf("unsupported Go type %s", v.Type())
}

// FromValue converts a runtime Object to a Go value.
// targetType is optional; if provided, tries to convert to that type.
func (m *Marshaller) FromValue(obj evaluator.Object, targetType reflect.Type) (interface{}, error) {
	if obj == nil {
		return nil, nil
	}
	if targetType != nil && targetType == objectType {
		return obj, nil
	}

	switch o := obj.(type) {
	case *evaluator.Number:
		if targetType != nil {
			switch targetType.Kind() {
			case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
				reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
				if o.Value != float64(int64(o.Value)) {
					return nil, fmt.Errorf("%s is not a whole number", evaluator.FormatNumber(o.Value))
				}
				return reflect.ValueOf(int64(o.Value)).Convert(targetType).Interface(), nil
			case reflect.Float32:
				return float32(o.Value), nil
			}
		}
		return o.Value, nil
	case *evaluator.String:
		return o.Value, nil
	case *evaluator.Boolean:
		return o.Value, nil
	case *evaluator.Unset:
		return nil, nil
	case *evaluator.Instance:
		if targetType != nil && targetType.Kind() == reflect.Struct {
			return m.instanceToStruct(o, targetType)
		}
		if isArrayLike(o) && (targetType == nil || targetType.Kind() == reflect.Slice || targetType.Kind() == reflect.Interface) {
			return m.arrayToSlice(o, targetType)
		}
		return m.instanceToMap(o)
	case *evaluator.Function, *evaluator.Class:
		return obj, nil
	}
	return nil, fmt.Errorf("unsupported type for conversion: %s", obj.Type())
}

// sliceToArray builds an instance of the library's Pole class so the
// result has its methods, or a bare indexed instance without one.
func (m *Marshaller) sliceToArray(v reflect.Value) (evaluator.Object, error) {
	elements := make([]evaluator.Object, v.Len())
	for i := range elements {
		val, err := m.toValue(v.Index(i))
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		elements[i] = val
	}

	if obj, ok := m.eval.GlobalEnv.Get(ArrayClassName); ok {
		if class, ok := obj.(*evaluator.Class); ok {
			result := m.eval.Instantiate(class, elements...)
			if err, ok := result.(*evaluator.Error); ok {
				return nil, err.Failure
			}
			return result, nil
		}
	}
	instance := evaluator.NewInstance(nil)
	for i, el := range elements {
		instance.Set(&evaluator.Number{Value: float64(i)}, el)
	}
	instance.SetString(config.LengthName, &evaluator.Number{Value: float64(len(elements))})
	return instance, nil
}

func (m *Marshaller) mapToInstance(v reflect.Value) (evaluator.Object, error) {
	// Go map order is random; sort so properties keep a stable order.
	keys := v.MapKeys()
	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
	})

	instance := evaluator.NewInstance(nil)
	for _, k := range keys {
		key, err := m.toValue(k)
		if err != nil {
			return nil, fmt.Errorf("map key: %w", err)
		}
		val, err := m.toValue(v.MapIndex(k))
		if err != nil {
			return nil, fmt.Errorf("map value: %w", err)
		}
		if !instance.Set(key, val) {
			return nil, fmt.Errorf("map key of type %s cannot be a property key", k.Type())
		}
	}
	return instance, nil
}

func (m *Marshaller) structToInstance(v reflect.Value) (evaluator.Object, error) {
	t := v.Type()
	instance := evaluator.NewInstance(&evaluator.Class{Name: t.Name()})
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" { // Skip unexported fields
			continue
		}
		val, err := m.toValue(v.Field(i))
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}
		instance.SetString(field.Name, val)
	}
	return instance, nil
}

// isArrayLike reports whether an instance carries a whole-number dĺžka.
func isArrayLike(o *evaluator.Instance) bool {
	n, ok := o.Get(&evaluator.String{Value: config.LengthName}).(*evaluator.Number)
	return ok && n.Value >= 0 && n.Value == float64(int(n.Value))
}

func (m *Marshaller) arrayToSlice(o *evaluator.Instance, targetType reflect.Type) (interface{}, error) {
	elemType := reflect.TypeOf((*interface{})(nil)).Elem()
	if targetType != nil && targetType.Kind() == reflect.Slice {
		elemType = targetType.Elem()
	}

	n := int(o.Get(&evaluator.String{Value: config.LengthName}).(*evaluator.Number).Value)
	slice := reflect.MakeSlice(reflect.SliceOf(elemType), 0, n)
	for i := 0; i < n; i++ {
		el := o.Get(&evaluator.Number{Value: float64(i)})
		rv, err := m.goValue(el, elemType)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		slice = reflect.Append(slice, rv)
	}
	return slice.Interface(), nil
}

func (m *Marshaller) instanceToMap(o *evaluator.Instance) (map[string]interface{}, error) {
	result := make(map[string]interface{}, o.Properties.Len())
	var err error
	o.Properties.Each(func(key, value evaluator.Object) {
		if err != nil {
			return
		}
		var val interface{}
		val, err = m.FromValue(value, nil)
		result[evaluator.Stringify(key)] = val
	})
	return result, err
}

func (m *Marshaller) instanceToStruct(o *evaluator.Instance, targetType reflect.Type) (interface{}, error) {
	result := reflect.New(targetType).Elem()
	for i := 0; i < targetType.NumField(); i++ {
		field := targetType.Field(i)
		if field.PkgPath != "" {
			continue
		}
		val := o.Get(&evaluator.String{Value: field.Name})
		if _, unset := val.(*evaluator.Unset); unset {
			continue
		}
		rv, err := m.goValue(val, field.Type)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}
		result.Field(i).Set(rv)
	}
	return result.Interface(), nil
}

// goValue converts obj and makes it assignable to t.
func (m *Marshaller) goValue(obj evaluator.Object, t reflect.Type) (reflect.Value, error) {
	val, err := m.FromValue(obj, t)
	if err != nil {
		return reflect.Value{}, err
	}
	if val == nil {
		return reflect.Zero(t), nil
	}
	rv := reflect.ValueOf(val)
	switch {
	case rv.Type().AssignableTo(t):
		return rv, nil
	case rv.Type().ConvertibleTo(t):
		return rv.Convert(t), nil
	}
	return reflect.Value{}, fmt.Errorf("cannot convert %s to %s", obj.Type(), t)
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// wrapFunc turns a Go function into a native function. Arguments are
// converted to the parameter types; missing ones are zero values. A
// trailing error result that is non-nil fails the call.
func (m *Marshaller) wrapFunc(name string, fn reflect.Value) *evaluator.Function {
	return evaluator.NewBuiltin(name, func(e *evaluator.Evaluator, args ...evaluator.Object) evaluator.Object {
		fnType := fn.Type()
		numIn := fnType.NumIn()
		variadic := fnType.IsVariadic()
		if !variadic && len(args) > numIn {
			return e.Fail("%s expects %d arguments, got %d", displayName(name), numIn, len(args))
		}

		var goArgs []reflect.Value
		for i := 0; i < numIn; i++ {
			if variadic && i == numIn-1 {
				elem := fnType.In(i).Elem()
				for j := i; j < len(args); j++ {
					rv, err := m.goValue(args[j], elem)
					if err != nil {
						return e.Fail("%s argument %d: %s", displayName(name), j+1, err)
					}
					goArgs = append(goArgs, rv)
				}
				break
			}
			var arg evaluator.Object = evaluator.UNSET
			if i < len(args) {
				arg = args[i]
			}
			rv, err := m.goValue(arg, fnType.In(i))
			if err != nil {
				return e.Fail("%s argument %d: %s", displayName(name), i+1, err)
			}
			goArgs = append(goArgs, rv)
		}

		results := fn.Call(goArgs)
		if n := len(results); n > 0 && fnType.Out(n-1) == errorType {
			if err, _ := results[n-1].Interface().(error); err != nil {
				return e.Fail("%s: %s", displayName(name), err)
			}
			results = results[:n-1]
		}
		switch len(results) {
		case 0:
			return evaluator.UNSET
		case 1:
			obj, err := m.toValue(results[0])
			if err != nil {
				return e.Fail("%s result: %s", displayName(name), err)
			}
			return obj
		}
		// Multiple results become an array.
		obj, err := m.sliceToArray(reflect.ValueOf(interfaces(results)))
		if err != nil {
			return e.Fail("%s results: %s", displayName(name), err)
		}
		return obj
	})
}

func interfaces(values []reflect.Value) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v.Interface()
	}
	return out
}

func displayName(name string) string {
	if name == "" {
		return "native function"
	}
	return name
}

package evaluator

// propertyKey identifies an instance property. Keys of different kinds
// never collide: the number 0 and the string "0" are distinct.
type propertyKey struct {
	kind ObjectType
	str  string
	num  float64
}

// keyOf converts a value to a property key. Only numbers, strings,
// booleans and unset can be keys.
func keyOf(obj Object) (propertyKey, bool) {
	switch v := obj.(type) {
	case *Number:
		if v.Value == 0 {
			return propertyKey{kind: NUMBER_OBJ}, true // -0 and 0 are one key
		}
		return propertyKey{kind: NUMBER_OBJ, num: v.Value}, true
	case *String:
		return propertyKey{kind: STRING_OBJ, str: v.Value}, true
	case *Boolean:
		if v.Value {
			return propertyKey{kind: BOOLEAN_OBJ, num: 1}, true
		}
		return propertyKey{kind: BOOLEAN_OBJ}, true
	case *Unset:
		return propertyKey{kind: UNSET_OBJ}, true
	}
	return propertyKey{}, false
}

// value turns a key back into the value it was made from.
func (k propertyKey) value() Object {
	switch k.kind {
	case NUMBER_OBJ:
		return &Number{Value: k.num}
	case STRING_OBJ:
		return &String{Value: k.str}
	case BOOLEAN_OBJ:
		return nativeBool(k.num == 1)
	}
	return UNSET
}

// Properties is an insertion ordered map.
type Properties struct {
	keys   []propertyKey
	values map[propertyKey]Object
}

func NewProperties() *Properties {
	return &Properties{values: make(map[propertyKey]Object)}
}

func (p *Properties) Get(k propertyKey) (Object, bool) {
	v, ok := p.values[k]
	return v, ok
}

func (p *Properties) Set(k propertyKey, v Object) {
	if _, ok := p.values[k]; !ok {
		p.keys = append(p.keys, k)
	}
	p.values[k] = v
}

func (p *Properties) Len() int { return len(p.keys) }

// Each calls f for every property in insertion order.
func (p *Properties) Each(f func(key, value Object)) {
	for _, k := range p.keys {
		f(k.value(), p.values[k])
	}
}

package payroll

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/warp/salary-engine/generic"
)

// Snapshot keys shared by every variant.
const (
	KeyName          = "name"
	KeyHours         = "hours"
	KeyOnVacation    = "on_vacation"
	KeyType          = "type"
	KeyMonthlyPay    = "monthly_pay"
	KeyVacationBonus = "vacation_bonus"
	KeyTotalPay      = "total_pay"

	KeySales    = "sales"
	KeyProjects = "projects"
)

// Field is one key/value pair of a Snapshot.
type Field struct {
	Key   string
	Value any
}

// Snapshot is a read-only, ordered view of an employee's fields. Renderers
// work from it instead of the concrete variant types.
type Snapshot struct {
	fields []Field
}

// NewSnapshot builds a snapshot from fields in the given order.
func NewSnapshot(fields ...Field) Snapshot {
	var s Snapshot
	for _, f := range fields {
		s.set(f.Key, f.Value)
	}
	return s
}

// set replaces an existing key in place or appends a new one.
func (s *Snapshot) set(key string, v any) {
	for i := range s.fields {
		if s.fields[i].Key == key {
			s.fields[i].Value = v
			return
		}
	}
	s.fields = append(s.fields, Field{Key: key, Value: v})
}

// With returns a copy with key set to v.
func (s Snapshot) With(key string, v any) Snapshot {
	out := Snapshot{fields: make([]Field, len(s.fields), len(s.fields)+1)}
	copy(out.fields, s.fields)
	out.set(key, v)
	return out
}

func (s Snapshot) Get(key string) (any, bool) {
	for _, f := range s.fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

func (s Snapshot) Has(key string) bool {
	_, ok := s.Get(key)
	return ok
}

func (s Snapshot) Len() int { return len(s.fields) }

func (s Snapshot) Keys() []string {
	keys := make([]string, len(s.fields))
	for i, f := range s.fields {
		keys[i] = f.Key
	}
	return keys
}

// Fields returns a copy of the fields in declared order.
func (s Snapshot) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// String returns the value of key formatted with fmt, or "" when absent.
func (s Snapshot) String(key string) string {
	v, ok := s.Get(key)
	if !ok {
		return ""
	}
	return fmt.Sprint(v)
}

// Money returns key as money when the stored value is numeric.
func (s Snapshot) Money(key string) (generic.Money, bool) {
	v, ok := s.Get(key)
	if !ok {
		return generic.Money{}, false
	}
	d, err := generic.DecimalValue(v)
	if err != nil {
		return generic.Money{}, false
	}
	return generic.MoneyFromDecimal(d), true
}

// Bool returns key coerced with generic.Truthy.
func (s Snapshot) Bool(key string) bool {
	v, _ := s.Get(key)
	return generic.Truthy(v)
}

// MarshalJSON writes the fields as an object, keys in declared order.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range s.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(f.Value)
		if err != nil {
			return nil, fmt.Errorf("snapshot field %q: %w", f.Key, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object, keeping key order. Numbers are kept as
// json.Number so decimals survive exactly.
func (s *Snapshot) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("snapshot: expected object, got %v", tok)
	}

	s.fields = nil
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("snapshot: expected key, got %v", tok)
		}
		var v any
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("snapshot field %q: %w", key, err)
		}
		s.set(key, v)
	}
	_, err = dec.Token()
	return err
}

// baseSnapshot holds the keys every variant reports, in report order.
func baseSnapshot(e Employee) Snapshot {
	return NewSnapshot(
		Field{KeyName, e.Name()},
		Field{KeyHours, e.Hours()},
		Field{KeyOnVacation, e.OnVacation()},
		Field{KeyType, string(e.Kind())},
		Field{KeyMonthlyPay, e.MonthlyPay()},
		Field{KeyVacationBonus, e.VacationBonus()},
		Field{KeyTotalPay, TotalPay(e)},
	)
}

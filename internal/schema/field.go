package schema

import (
	"fmt"
	"math"
	"reflect"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/bnema/editable-entry/internal/domain"
)

type Kind string

const (
	KindText     Kind = "text"
	KindTextarea Kind = "textarea"
	KindNumber   Kind = "number"
	KindToggle   Kind = "toggle"
	KindSelect   Kind = "select"
	KindRepeater Kind = "repeater"
	// KindDisplay renders a value and never takes part in state.
	KindDisplay Kind = "display"
)

func (k Kind) Valid() bool {
	switch k {
	case KindText, KindTextarea, KindNumber, KindToggle, KindSelect, KindRepeater, KindDisplay:
		return true
	default:
		return false
	}
}

type Field struct {
	Name      string
	Label     string
	Kind      Kind
	Required  bool
	MinLength int
	MaxLength int
	Min       *float64
	Max       *float64
	Options   []string
	Pattern   string
	Default   any

	// Dehydrate transforms the validated value before it reaches state.
	Dehydrate func(any) any
	// Dehydrated set to false keeps the field out of state entirely.
	Dehydrated *bool

	// Items declares the fields of each repeater item.
	Items []Field
	// Relationship names the record relation a repeater is saved into.
	Relationship string
}

func Text(name string) Field     { return Field{Name: name, Kind: KindText} }
func Textarea(name string) Field { return Field{Name: name, Kind: KindTextarea} }
func Number(name string) Field   { return Field{Name: name, Kind: KindNumber} }
func Toggle(name string) Field   { return Field{Name: name, Kind: KindToggle} }
func Display(name string) Field  { return Field{Name: name, Kind: KindDisplay} }

func Select(name string, options ...string) Field {
	return Field{Name: name, Kind: KindSelect, Options: options}
}

func Repeater(name string, items ...Field) Field {
	return Field{Name: name, Kind: KindRepeater, Items: items}
}

func (f Field) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}

	return strings.ReplaceAll(f.Name, "_", " ")
}

func (f Field) isDehydrated() bool {
	if f.Kind == KindDisplay {
		return false
	}

	return f.Dehydrated == nil || *f.Dehydrated
}

func (f Field) check() error {
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidField)
	}
	if strings.Contains(f.Name, ".") {
		return fmt.Errorf("%w: name %q must not contain '.'", ErrInvalidField, f.Name)
	}
	if !f.Kind.Valid() {
		return fmt.Errorf("%w: field %q has unsupported kind %q", ErrInvalidField, f.Name, f.Kind)
	}
	if f.Pattern != "" {
		if _, err := regexp.Compile(f.Pattern); err != nil {
			return fmt.Errorf("%w: field %q pattern: %v", ErrInvalidField, f.Name, err)
		}
	}
	if f.Kind == KindSelect && len(f.Options) == 0 {
		return fmt.Errorf("%w: select %q declares no options", ErrInvalidField, f.Name)
	}
	if f.Kind == KindRepeater {
		if len(f.Items) == 0 {
			return fmt.Errorf("%w: repeater %q declares no item fields", ErrInvalidField, f.Name)
		}
		if err := checkFields(f.Items); err != nil {
			return fmt.Errorf("repeater %q: %w", f.Name, err)
		}
	}
	if f.Kind != KindRepeater && f.Relationship != "" {
		return fmt.Errorf("%w: only repeaters can save a relationship (%q)", ErrInvalidField, f.Name)
	}

	return nil
}

func checkFields(fields []Field) error {
	seen := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		if err := field.check(); err != nil {
			return err
		}
		if _, ok := seen[field.Name]; ok {
			return fmt.Errorf("%w: duplicate field %q", ErrInvalidField, field.Name)
		}
		seen[field.Name] = struct{}{}
	}

	return nil
}

// evaluate coerces a raw scratch value into the field's type and applies its
// rules. A non-empty message list means the value was rejected.
func (f Field) evaluate(raw any) (any, []string) {
	label := f.DisplayLabel()

	if isBlank(raw) {
		if f.Required {
			return nil, []string{fmt.Sprintf("The %s field is required.", label)}
		}
		if f.Kind == KindToggle {
			return false, nil
		}
		return nil, nil
	}

	switch f.Kind {
	case KindNumber:
		number, ok := toNumber(raw)
		if !ok {
			return nil, []string{fmt.Sprintf("The %s field must be a number.", label)}
		}
		var messages []string
		value := asFloat(number)
		if f.Min != nil && value < *f.Min {
			messages = append(messages, fmt.Sprintf("The %s field must be at least %s.", label, formatFloat(*f.Min)))
		}
		if f.Max != nil && value > *f.Max {
			messages = append(messages, fmt.Sprintf("The %s field must not be greater than %s.", label, formatFloat(*f.Max)))
		}
		return number, messages
	case KindToggle:
		value, ok := toBool(raw)
		if !ok {
			return nil, []string{fmt.Sprintf("The %s field must be true or false.", label)}
		}
		return value, nil
	default:
		text := toText(raw)
		var messages []string
		length := utf8.RuneCountInString(text)
		if f.MinLength > 0 && length < f.MinLength {
			messages = append(messages, fmt.Sprintf("The %s field must be at least %d characters.", label, f.MinLength))
		}
		if f.MaxLength > 0 && length > f.MaxLength {
			messages = append(messages, fmt.Sprintf("The %s field must not be greater than %d characters.", label, f.MaxLength))
		}
		if f.Kind == KindSelect && !slices.Contains(f.Options, text) {
			messages = append(messages, fmt.Sprintf("The selected %s is invalid.", label))
		}
		if f.Pattern != "" {
			if re, err := regexp.Compile(f.Pattern); err == nil && !re.MatchString(text) {
				messages = append(messages, fmt.Sprintf("The %s field format is invalid.", label))
			}
		}
		return text, messages
	}
}

func isBlank(value any) bool {
	if value == nil {
		return true
	}
	if text, ok := value.(string); ok {
		return strings.TrimSpace(text) == ""
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map:
		return rv.Len() == 0
	default:
		return false
	}
}

func toText(value any) string {
	if text, ok := value.(string); ok {
		return strings.TrimRight(text, "\r\n")
	}

	return fmt.Sprint(value)
}

// toNumber yields int64 for integral values and float64 otherwise.
func toNumber(value any) (any, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return int64(v), true
	case uint32:
		return int64(v), true
	case float32:
		return normalizeFloat(float64(v)), true
	case float64:
		return normalizeFloat(v), true
	case string:
		trimmed := strings.TrimSpace(v)
		if parsed, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
			return parsed, true
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			return nil, false
		}
		return normalizeFloat(parsed), true
	default:
		return nil, false
	}
}

func normalizeFloat(v float64) any {
	if v == math.Trunc(v) && math.Abs(v) < 1<<53 {
		return int64(v)
	}

	return v
}

func asFloat(number any) float64 {
	switch v := number.(type) {
	case int64:
		return float64(v)
	case float64:
		return v
	default:
		return 0
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func toBool(value any) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case int64:
		return v != 0, v == 0 || v == 1
	case int:
		return v != 0, v == 0 || v == 1
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "1", "on", "yes":
			return true, true
		case "false", "0", "off", "no":
			return false, true
		}
	}

	return false, false
}

// itemsOf normalizes a repeater value into a list of field maps.
func itemsOf(value any) []map[string]any {
	switch v := value.(type) {
	case []map[string]any:
		return v
	case []domain.Attributes:
		items := make([]map[string]any, 0, len(v))
		for _, item := range v {
			items = append(items, map[string]any(item))
		}
		return items
	case []any:
		items := make([]map[string]any, 0, len(v))
		for _, raw := range v {
			switch item := raw.(type) {
			case map[string]any:
				items = append(items, item)
			case domain.Attributes:
				items = append(items, map[string]any(item))
			}
		}
		return items
	default:
		return nil
	}
}

func Float(v float64) *float64 {
	return &v
}

func Bool(v bool) *bool {
	return &v
}

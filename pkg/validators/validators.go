package validators

import (
	"fmt"
	"net"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Validator checks a single submitted value. Validate returns nil for a valid
// value and a user-presentable error otherwise. ClientData exposes the
// constraint as string parameters so renderers can mirror it client-side as
// data attributes.
type Validator interface {
	Name() string
	Validate(value string) error
	ClientData() map[string]string
}

// AsDataAttrs serialises a validator list into HTML data attributes. The
// "validators" key carries the space-joined validator names; each parameter is
// namespaced by its validator name ("parse-len-min", "parse-regexp-pattern").
func AsDataAttrs(list []Validator) map[string]string {
	if len(list) == 0 {
		return nil
	}
	attrs := make(map[string]string)
	names := make([]string, 0, len(list))
	for _, v := range list {
		names = append(names, v.Name())
		for key, value := range v.ClientData() {
			attrs["parse-"+v.Name()+"-"+key] = value
		}
	}
	attrs["validators"] = strings.Join(names, " ")
	return attrs
}

// NotEmpty rejects empty and whitespace-only values.
type NotEmpty struct{}

func (NotEmpty) Name() string { return "notempty" }

func (NotEmpty) Validate(value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("this field is required")
	}
	return nil
}

func (NotEmpty) ClientData() map[string]string { return nil }

// RegExp matches the whole value against a compiled pattern. Msg is shown to
// the user on mismatch.
type RegExp struct {
	Pattern *regexp.Regexp
	Msg     string
}

// NewRegExp compiles pattern, anchoring it to the full value.
func NewRegExp(pattern, msg string) (RegExp, error) {
	re, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		return RegExp{}, fmt.Errorf("validators: compile pattern %q: %w", pattern, err)
	}
	return RegExp{Pattern: re, Msg: msg}, nil
}

func (RegExp) Name() string { return "regexp" }

func (v RegExp) Validate(value string) error {
	if value == "" {
		return nil
	}
	if !v.Pattern.MatchString(value) {
		return fmt.Errorf("%s", v.Msg)
	}
	return nil
}

func (v RegExp) ClientData() map[string]string {
	return map[string]string{"pattern": v.Pattern.String()}
}

// LenRange bounds the value length in characters, inclusive. Max < 0 means
// unbounded above.
type LenRange struct {
	Min, Max int
}

func (LenRange) Name() string { return "lenrange" }

func (v LenRange) Validate(value string) error {
	length := utf8.RuneCountInString(value)
	if length < v.Min {
		return fmt.Errorf("value must be at least %d characters long", v.Min)
	}
	if v.Max >= 0 && length > v.Max {
		return fmt.Errorf("value must be at most %d characters long", v.Max)
	}
	return nil
}

func (v LenRange) ClientData() map[string]string {
	data := map[string]string{"min": strconv.Itoa(v.Min)}
	if v.Max >= 0 {
		data["max"] = strconv.Itoa(v.Max)
	}
	return data
}

// InRange requires a numeric value within [Min, Max].
type InRange struct {
	Min, Max float64
}

func (InRange) Name() string { return "inrange" }

func (v InRange) Validate(value string) error {
	if value == "" {
		return nil
	}
	number, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("value must be a number")
	}
	if number < v.Min || number > v.Max {
		return fmt.Errorf("value must be between %v and %v", v.Min, v.Max)
	}
	return nil
}

func (v InRange) ClientData() map[string]string {
	return map[string]string{
		"min": strconv.FormatFloat(v.Min, 'f', -1, 64),
		"max": strconv.FormatFloat(v.Max, 'f', -1, 64),
	}
}

// Integer requires a base-10 integer.
type Integer struct{}

func (Integer) Name() string { return "integer" }

func (Integer) Validate(value string) error {
	if value == "" {
		return nil
	}
	if _, err := strconv.ParseInt(value, 10, 64); err != nil {
		return fmt.Errorf("value must be an integer")
	}
	return nil
}

func (Integer) ClientData() map[string]string { return nil }

// IPv4 requires a dotted-quad IPv4 address.
type IPv4 struct{}

func (IPv4) Name() string { return "ipv4" }

func (IPv4) Validate(value string) error {
	if value == "" {
		return nil
	}
	ip := net.ParseIP(value)
	if ip == nil || ip.To4() == nil {
		return fmt.Errorf("value must be a valid IPv4 address")
	}
	return nil
}

func (IPv4) ClientData() map[string]string { return nil }

// IPv6 requires an IPv6 address.
type IPv6 struct{}

func (IPv6) Name() string { return "ipv6" }

func (IPv6) Validate(value string) error {
	if value == "" {
		return nil
	}
	ip := net.ParseIP(value)
	if ip == nil || ip.To4() != nil {
		return fmt.Errorf("value must be a valid IPv6 address")
	}
	return nil
}

func (IPv6) ClientData() map[string]string { return nil }

// EqualTo requires the value to match the current value of a peer field,
// read through a supplier bound at construction. Typical use is password
// confirmation. ClientData carries the peer field name so the check can be
// mirrored client-side.
type EqualTo struct {
	Peer  string
	Value func() string
	Msg   string
}

func (EqualTo) Name() string { return "eqto" }

func (v EqualTo) Validate(value string) error {
	if value == "" {
		return nil
	}
	if v.Value == nil || value != v.Value() {
		if v.Msg != "" {
			return fmt.Errorf("%s", v.Msg)
		}
		return fmt.Errorf("value must match the %s field", v.Peer)
	}
	return nil
}

func (v EqualTo) ClientData() map[string]string {
	return map[string]string{"field": v.Peer}
}

// MacAddress requires a colon-separated EUI-48 address.
type MacAddress struct{}

func (MacAddress) Name() string { return "macaddress" }

func (MacAddress) Validate(value string) error {
	if value == "" {
		return nil
	}
	hw, err := net.ParseMAC(value)
	if err != nil || len(hw) != 6 {
		return fmt.Errorf("value must be a valid MAC address")
	}
	return nil
}

func (MacAddress) ClientData() map[string]string { return nil }

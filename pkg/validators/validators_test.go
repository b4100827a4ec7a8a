package validators

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNotEmpty(t *testing.T) {
	v := NotEmpty{}
	if err := v.Validate("value"); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}
	if err := v.Validate(""); err == nil {
		t.Fatal("expected empty value to fail")
	}
	if err := v.Validate("   "); err == nil {
		t.Fatal("expected whitespace-only value to fail")
	}
}

func TestRegExp(t *testing.T) {
	v, err := NewRegExp(`[0-9a-f]{2}`, "must be a hex byte")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	if err := v.Validate("a0"); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}
	if err := v.Validate("a0ff"); err == nil {
		t.Fatal("expected partial match to fail against anchored pattern")
	}
	if got := v.Validate("zz"); got == nil || got.Error() != "must be a hex byte" {
		t.Fatalf("expected configured message, got %v", got)
	}
	// empty values are the concern of NotEmpty, not pattern validators
	if err := v.Validate(""); err != nil {
		t.Fatalf("expected empty value to pass, got %v", err)
	}
}

func TestNewRegExpInvalidPattern(t *testing.T) {
	if _, err := NewRegExp(`(unbalanced`, "msg"); err == nil {
		t.Fatal("expected compile error")
	}
}

func TestLenRange(t *testing.T) {
	cases := []struct {
		name  string
		v     LenRange
		value string
		valid bool
	}{
		{"within", LenRange{Min: 2, Max: 4}, "abc", true},
		{"too short", LenRange{Min: 2, Max: 4}, "a", false},
		{"too long", LenRange{Min: 2, Max: 4}, "abcde", false},
		{"unbounded above", LenRange{Min: 1, Max: -1}, "abcdefgh", true},
		{"multi-byte runes count once", LenRange{Min: 1, Max: 4}, "čtyři", false},
		{"multi-byte within", LenRange{Min: 3, Max: 3}, "čau", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.v.Validate(tc.value)
			if tc.valid && err != nil {
				t.Fatalf("expected valid, got %v", err)
			}
			if !tc.valid && err == nil {
				t.Fatal("expected invalid")
			}
		})
	}
}

func TestInRange(t *testing.T) {
	v := InRange{Min: 1, Max: 65535}
	if err := v.Validate("8080"); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}
	if err := v.Validate("0"); err == nil {
		t.Fatal("expected below-range value to fail")
	}
	if err := v.Validate("not-a-number"); err == nil {
		t.Fatal("expected non-numeric value to fail")
	}
}

func TestAddressValidators(t *testing.T) {
	if err := (IPv4{}).Validate("192.168.1.1"); err != nil {
		t.Fatalf("ipv4: %v", err)
	}
	if err := (IPv4{}).Validate("fe80::1"); err == nil {
		t.Fatal("ipv4: expected IPv6 literal to fail")
	}
	if err := (IPv6{}).Validate("fe80::1"); err != nil {
		t.Fatalf("ipv6: %v", err)
	}
	if err := (IPv6{}).Validate("192.168.1.1"); err == nil {
		t.Fatal("ipv6: expected IPv4 literal to fail")
	}
	if err := (MacAddress{}).Validate("00:11:22:33:44:55"); err != nil {
		t.Fatalf("mac: %v", err)
	}
	if err := (MacAddress{}).Validate("00:11:22"); err == nil {
		t.Fatal("mac: expected short address to fail")
	}
}

func TestEqualTo(t *testing.T) {
	peer := "secret"
	v := EqualTo{Peer: "password", Value: func() string { return peer }, Msg: "passwords do not match"}

	if err := v.Validate("secret"); err != nil {
		t.Fatalf("expected match, got %v", err)
	}
	if got := v.Validate("other"); got == nil || got.Error() != "passwords do not match" {
		t.Fatalf("expected configured message, got %v", got)
	}
	// empty values are the concern of NotEmpty
	if err := v.Validate(""); err != nil {
		t.Fatalf("expected empty value to pass, got %v", err)
	}
	if got := (EqualTo{Peer: "password"}).Validate("x"); got == nil {
		t.Fatal("missing supplier must fail, not match")
	}
	want := map[string]string{"field": "password"}
	if diff := cmp.Diff(want, v.ClientData()); diff != "" {
		t.Fatalf("client data mismatch (-want +got):\n%s", diff)
	}
}

func TestTag(t *testing.T) {
	v := Tag{Rule: "email", Msg: "invalid e-mail address"}
	if err := v.Validate("admin@router.lan"); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}
	if got := v.Validate("not-an-email"); got == nil || got.Error() != "invalid e-mail address" {
		t.Fatalf("expected configured message, got %v", got)
	}
}

func TestAsDataAttrs(t *testing.T) {
	list := []Validator{
		NotEmpty{},
		LenRange{Min: 1, Max: 32},
	}
	want := map[string]string{
		"validators":         "notempty lenrange",
		"parse-lenrange-min": "1",
		"parse-lenrange-max": "32",
	}
	if diff := cmp.Diff(want, AsDataAttrs(list)); diff != "" {
		t.Fatalf("data attrs mismatch (-want +got):\n%s", diff)
	}

	if got := AsDataAttrs(nil); got != nil {
		t.Fatalf("expected nil for empty list, got %v", got)
	}
}

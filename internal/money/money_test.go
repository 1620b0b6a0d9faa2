package money

import "testing"

func TestParse_Valid(t *testing.T) {
	cases := map[string]int64{
		"0.01":       1,
		"1":          100,
		"30.00":      3000,
		"100.5":      10050,
		"9999999.99": 999999999,
	}

	for in, want := range cases {
		got, err := Parse(in)
		if err != nil {
			t.Errorf("Parse(%q) error = %v, want nil", in, err)
			continue
		}
		if got != want {
			t.Errorf("Parse(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestParse_Invalid(t *testing.T) {
	cases := []string{
		"",
		"0",
		"-1",
		"-0.01",
		"abc",
		"1.234",     // three decimal places
		"0.001",
		"10000000",  // at the cap
		"99999999.99",
	}

	for _, in := range cases {
		if _, err := Parse(in); err == nil {
			t.Errorf("Parse(%q) error = nil, want error", in)
		}
	}
}

func TestParseSigned(t *testing.T) {
	got, err := ParseSigned("-20.50")
	if err != nil {
		t.Fatalf("ParseSigned(-20.50) error = %v", err)
	}
	if got != -2050 {
		t.Errorf("ParseSigned(-20.50) = %d, want -2050", got)
	}

	got, err = ParseSigned("20.50")
	if err != nil {
		t.Fatalf("ParseSigned(20.50) error = %v", err)
	}
	if got != 2050 {
		t.Errorf("ParseSigned(20.50) = %d, want 2050", got)
	}

	if _, err := ParseSigned("0"); err == nil {
		t.Error("ParseSigned(0) error = nil, want error")
	}
}

func TestFormat(t *testing.T) {
	cases := map[int64]string{
		0:     "0.00",
		1:     "0.01",
		3000:  "30.00",
		-2050: "-20.50",
		10050: "100.50",
	}

	for in, want := range cases {
		if got := Format(in); got != want {
			t.Errorf("Format(%d) = %q, want %q", in, got, want)
		}
	}
}

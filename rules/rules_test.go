package rules

import "testing"

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v, want nil", err)
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	d := Default()
	d.KuitanEnabled = false
	d.KuikaeLevel = 2

	out, err := d.ToYAML()
	if err != nil {
		t.Fatalf("ToYAML: %v", err)
	}
	parsed, err := ParseYAML(out)
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	if parsed.KuitanEnabled != false || parsed.KuikaeLevel != 2 {
		t.Fatalf("round trip lost overrides: %+v", parsed)
	}
	if parsed.OriginPoints != 25000 {
		t.Fatalf("round trip lost an untouched default: %+v", parsed)
	}
}

func TestValidateRejectsOutOfRangeKuikaeLevel(t *testing.T) {
	r := Default()
	r.KuikaeLevel = 9
	if err := r.Validate(); err == nil {
		t.Fatalf("expected kuikae_level=9 to fail validation")
	}
}

func TestForbidKuikaeStrictMapping(t *testing.T) {
	r := Default()
	r.KuikaeLevel = 0
	if !r.ForbidKuikaeStrict() {
		t.Fatalf("kuikae_level=0 (none) must map to strict=true")
	}
	r.KuikaeLevel = 1
	if r.ForbidKuikaeStrict() {
		t.Fatalf("kuikae_level=1 (suji allowed) must map to strict=false")
	}
}

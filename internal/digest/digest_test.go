package digest

import "testing"

func TestReading_Deterministic(t *testing.T) {
	a := Reading("sensor-1", "temperature", "22.5", 100, "owner-a")
	b := Reading("sensor-1", "temperature", "22.5", 100, "owner-a")
	if a != b {
		t.Errorf("identical inputs produced different digests: %s vs %s", a, b)
	}
	if len(a) != HexSize {
		t.Errorf("digest length = %d, want %d", len(a), HexSize)
	}
}

func TestReading_FieldSensitivity(t *testing.T) {
	base := Reading("sensor-1", "temperature", "22.5", 100, "owner-a")

	tests := []struct {
		name   string
		digest string
	}{
		{"device id", Reading("sensor-2", "temperature", "22.5", 100, "owner-a")},
		{"data type", Reading("sensor-1", "humidity", "22.5", 100, "owner-a")},
		{"data value", Reading("sensor-1", "temperature", "23.5", 100, "owner-a")},
		{"timestamp", Reading("sensor-1", "temperature", "22.5", 101, "owner-a")},
		{"caller", Reading("sensor-1", "temperature", "22.5", 100, "owner-b")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.digest == base {
				t.Errorf("changing %s did not change the digest", tt.name)
			}
		})
	}
}

// TestReading_FieldBoundaries is the regression for ambiguous concatenation:
// tuples whose naive concatenation is identical must still produce distinct
// digests because each field is length-prefixed.
func TestReading_FieldBoundaries(t *testing.T) {
	a := Reading("ab", "c", "v", 1, "x")
	b := Reading("a", "bc", "v", 1, "x")
	if a == b {
		t.Error("digests collide for tuples with identical concatenation")
	}

	c := Reading("s", "tv", "", 1, "x")
	d := Reading("s", "t", "v", 1, "x")
	if c == d {
		t.Error("digests collide across the type/value boundary")
	}
}

func TestValid(t *testing.T) {
	good := Reading("sensor-1", "temperature", "22.5", 100, "owner-a")

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"real digest", good, true},
		{"empty", "", false},
		{"too short", good[:HexSize-1], false},
		{"uppercase", "ABCDEF" + good[6:], false},
		{"non-hex", "zz" + good[2:], false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Valid(tt.input); got != tt.want {
				t.Errorf("Valid(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

package playground

import "testing"

func TestDelayPolicyClampsValues(t *testing.T) {
	policy := NewDelayPolicy(0)
	cases := []struct {
		in   int
		want int
	}{
		{-3, 0},
		{0, 0},
		{4, 4},
		{10, 10},
		{15, 10},
	}
	for _, tc := range cases {
		if got := policy.SetDelaySeconds(tc.in); got != tc.want {
			t.Fatalf("SetDelaySeconds(%d) = %d, want %d", tc.in, got, tc.want)
		}
		if policy.DelaySeconds() != tc.want {
			t.Fatalf("stored %d, want %d", policy.DelaySeconds(), tc.want)
		}
	}
}

func TestDelayPolicyParsesRawInput(t *testing.T) {
	policy := NewDelayPolicy(5)
	cases := map[string]int{
		"":     0,
		"abc":  0,
		" 7 ":  7,
		"2.9":  2,
		"99":   10,
		"-1":   0,
		"1e3":  10,
		"NaN":  0,
		"-2.5": 0,
	}
	for raw, want := range cases {
		if got := policy.SetDelayInput(raw); got != want {
			t.Fatalf("SetDelayInput(%q) = %d, want %d", raw, got, want)
		}
	}
}

func TestNewDelayPolicyClampsInitialValue(t *testing.T) {
	if got := NewDelayPolicy(42).DelaySeconds(); got != MaxDelaySeconds {
		t.Fatalf("expected clamp to %d, got %d", MaxDelaySeconds, got)
	}
}

package palette

import (
	"testing"
)

func TestCrossfader_ReflectsAtOne(t *testing.T) {
	c := NewCrossfader(Cyan, Magenta, 5)

	for i := 0; i < 99; i++ {
		c.Advance(0.05)
	}
	if c.Dir() != 1 {
		t.Fatalf("direction flipped early at mix %v", c.Mix())
	}

	c.Advance(0.2)
	if c.Mix() != 1 {
		t.Errorf("expected mix clamped to exactly 1, got %v", c.Mix())
	}
	if c.Dir() != -1 {
		t.Errorf("expected direction -1, got %d", c.Dir())
	}
	if got := c.Color(); got != Magenta {
		t.Errorf("expected endpoint B at mix 1, got %v", got)
	}
}

func TestCrossfader_ReflectsAtZero(t *testing.T) {
	c := NewCrossfader(Cyan, Magenta, 1)

	c.Advance(1.5)
	if c.Mix() != 1 || c.Dir() != -1 {
		t.Fatalf("setup: mix=%v dir=%d", c.Mix(), c.Dir())
	}

	c.Advance(0.5)
	if c.Dir() != -1 {
		t.Fatalf("direction flipped before reaching zero")
	}

	c.Advance(0.75)
	if c.Mix() != 0 {
		t.Errorf("expected mix clamped to exactly 0, got %v", c.Mix())
	}
	if c.Dir() != 1 {
		t.Errorf("expected direction +1, got %d", c.Dir())
	}
	if got := c.Color(); got != Cyan {
		t.Errorf("expected endpoint A at mix 0, got %v", got)
	}
}

func TestCrossfader_StaysInRange(t *testing.T) {
	c := NewCrossfader(Cyan, Magenta, 0.3)
	for i := 0; i < 1000; i++ {
		c.Advance(0.05)
		if c.Mix() < 0 || c.Mix() > 1 {
			t.Fatalf("mix out of range: %v", c.Mix())
		}
	}
}

func TestLerp(t *testing.T) {
	got := Lerp(RGB{0, 0, 0}, RGB{255, 100, 11}, 0.5)
	want := RGB{128, 50, 6}
	if got != want {
		t.Errorf("Lerp = %v, want %v", got, want)
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    RGB
		wantErr bool
	}{
		{"#00c9ff", Cyan, false},
		{"ff00d6", Magenta, false},
		{"#fff", RGB{}, true},
		{"#zzzzzz", RGB{}, true},
	}

	for _, tt := range tests {
		got, err := ParseHex(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseHex(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseHex(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if Cyan.Hex() != "#00c9ff" {
		t.Errorf("Hex() = %s", Cyan.Hex())
	}
}

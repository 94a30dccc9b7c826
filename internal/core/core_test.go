package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestParseHardwareAddress(t *testing.T) {
	t.Run("Colon", func(t *testing.T) {
		addr, err := ParseHardwareAddress("1a:11:af:a0:47:11")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := HardwareAddress{0x1a, 0x11, 0xaf, 0xa0, 0x47, 0x11}
		if addr != want {
			t.Errorf("expected %v, got %v", want, addr)
		}
	})

	t.Run("DashUpper", func(t *testing.T) {
		addr, err := ParseHardwareAddress("AA-BB-CC-DD-EE-FF")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if addr.String() != "aa:bb:cc:dd:ee:ff" {
			t.Errorf("expected lowercase rendering, got %s", addr)
		}
	})

	t.Run("Invalid", func(t *testing.T) {
		for _, s := range []string{"", "aa:bb:cc", "zz:bb:cc:dd:ee:ff", "00:00:5e:00:53:01:00:00"} {
			if _, err := ParseHardwareAddress(s); !errors.Is(err, ErrInvalidHardwareAddress) {
				t.Errorf("%q: expected ErrInvalidHardwareAddress, got %v", s, err)
			}
		}
	})
}

func TestHardwareAddressEquality(t *testing.T) {
	a := HardwareAddress{1, 2, 3, 4, 5, 6}
	b := HardwareAddress{1, 2, 3, 4, 5, 6}
	c := HardwareAddress{1, 2, 3, 4, 5, 7}

	if a != b {
		t.Error("identical addresses should compare equal")
	}
	if a == c {
		t.Error("addresses differing in the last byte should not compare equal")
	}
	if !Broadcast.IsBroadcast() || a.IsBroadcast() {
		t.Error("IsBroadcast mismatch")
	}
}

func TestHardwareAddressText(t *testing.T) {
	var addr HardwareAddress
	if err := addr.UnmarshalText([]byte("02:00:00:00:00:01")); err != nil {
		t.Fatalf("UnmarshalText failed: %v", err)
	}
	text, err := addr.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText failed: %v", err)
	}
	if string(text) != "02:00:00:00:00:01" {
		t.Errorf("unexpected text %q", text)
	}

	before := addr
	if err := addr.UnmarshalText([]byte("bogus")); err == nil {
		t.Error("expected error for bogus text")
	}
	if addr != before {
		t.Error("failed UnmarshalText must not modify the address")
	}
}

func TestClassString(t *testing.T) {
	tests := map[Class]string{
		ClassNotForMe:     "not-for-me",
		ClassForMe:        "for-me",
		ClassMagicOnline:  "magic-online",
		ClassMagicOffline: "magic-offline",
	}
	for class, want := range tests {
		if class.String() != want {
			t.Errorf("expected %s, got %s", want, class)
		}
	}
}

// Test sentinel errors
func TestSentinelErrors(t *testing.T) {
	t.Run("ErrorMessages", func(t *testing.T) {
		tests := []struct {
			err     error
			message string
		}{
			{ErrTruncatedFrame, "plipbox: truncated frame"},
			{ErrOutOfBounds, "plipbox: field out of bounds"},
			{ErrInvalidHardwareAddress, "plipbox: invalid hardware address"},
			{ErrUnsupportedLinkType, "plipbox: unsupported link type"},
			{ErrConfigInvalid, "plipbox: invalid configuration"},
		}

		for _, tt := range tests {
			if tt.err.Error() != tt.message {
				t.Errorf("expected error message %q, got %q", tt.message, tt.err.Error())
			}
		}
	})

	t.Run("ErrorWrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("decode: %w", ErrTruncatedFrame)
		if !errors.Is(wrapped, ErrTruncatedFrame) {
			t.Error("errors.Is failed for wrapped error")
		}
	})
}

package core

import (
	"errors"
	"math/big"
	"testing"
)

func TestParseEther(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		want    string
		wantErr bool
	}{
		{"one", "1", "1000000000000000000", false},
		{"fraction", "0.5", "500000000000000000", false},
		{"smallest", "0.000000000000000001", "1", false},
		{"zero", "0", "", true},
		{"negative", "-1", "", true},
		{"too precise", "0.0000000000000000001", "", true},
		{"garbage", "one", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEther(tt.amount)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidArgument) {
					t.Fatalf("ParseEther(%q) error = %v, want ErrInvalidArgument", tt.amount, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("ParseEther(%q) error = %v", tt.amount, err)
			}

			if got.String() != tt.want {
				t.Errorf("ParseEther(%q) = %s, want %s", tt.amount, got, tt.want)
			}
		})
	}
}

func TestFormatEther(t *testing.T) {
	tests := []struct {
		wei  string
		want string
	}{
		{"0", "0"},
		{"1", "0.000000000000000001"},
		{"1000000000000000000", "1"},
		{"1500000000000000000", "1.5"},
		{"123456789000000000000", "123.456789"},
	}

	for _, tt := range tests {
		wei, _ := new(big.Int).SetString(tt.wei, 10)
		if got := FormatEther(wei); got != tt.want {
			t.Errorf("FormatEther(%s) = %s, want %s", tt.wei, got, tt.want)
		}
	}

	if got := FormatEther(nil); got != "0" {
		t.Errorf("FormatEther(nil) = %s, want 0", got)
	}
}

func TestEtherRoundTrip(t *testing.T) {
	for _, s := range []string{"1", "1000000000000000000", "42000000000000000", "999999999999999999999", "7"} {
		wei, _ := new(big.Int).SetString(s, 10)
		back, err := ParseEther(FormatEther(wei))
		if err != nil {
			t.Fatalf("ParseEther(FormatEther(%s)) error = %v", s, err)
		}

		if back.Cmp(wei) != 0 {
			t.Errorf("round trip of %s = %s", s, back)
		}
	}
}

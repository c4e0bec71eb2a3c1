package plugbind

import (
	"errors"
	"testing"
)

func TestParseDataKind(t *testing.T) {
	tests := []struct {
		token   string
		want    DataKind
		wantErr bool
	}{
		{"string", KindString, false},
		{"int", KindInt, false},
		{"pointer", KindPointer, false},
		{"bogus", 0, true},
		{"String", 0, true}, // tokens are case-sensitive
		{"", 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.token, func(t *testing.T) {
			got, err := ParseDataKind(tc.token)
			if tc.wantErr {
				if !errors.Is(err, ErrUnknownKind) {
					t.Fatalf("ParseDataKind(%q) error = %v, want ErrUnknownKind", tc.token, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDataKind(%q): %v", tc.token, err)
			}
			if got != tc.want {
				t.Errorf("ParseDataKind(%q) = %v, want %v", tc.token, got, tc.want)
			}
		})
	}
}

func TestDataKindTokenRoundTrip(t *testing.T) {
	for _, k := range []DataKind{KindString, KindInt, KindPointer} {
		got, err := ParseDataKind(k.String())
		if err != nil {
			t.Fatalf("ParseDataKind(%q): %v", k.String(), err)
		}
		if got != k {
			t.Errorf("round trip %v -> %q -> %v", k, k.String(), got)
		}
	}
}

func TestReturnCodeString(t *testing.T) {
	cases := map[ReturnCode]string{
		OK:    "ok",
		OKEat: "eat",
		Error: "error",
	}
	for rc, want := range cases {
		if rc.String() != want {
			t.Errorf("%d.String() = %q, want %q", int(rc), rc.String(), want)
		}
	}
}

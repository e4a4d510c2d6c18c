package endpoint_test

import (
	"testing"

	"wireline/internal/endpoint"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in       string
		wantHost string
		wantPort uint16
		wantErr  bool
	}{
		{"127.0.0.1:8080", "127.0.0.1", 8080, false},
		{":9090", "0.0.0.0", 9090, false},
		{"example.com:1", "example.com", 1, false},
		{"", "", 0, true},
		{"no-port", "", 0, true},
		{"host:0", "", 0, true},
		{"host:70000", "", 0, true},
	}

	for _, c := range cases {
		got, err := endpoint.Parse(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("Parse(%q): expected error, got none", c.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Parse(%q): unexpected error: %v", c.in, err)
		}
		if got.Host != c.wantHost || got.Port != c.wantPort {
			t.Errorf("Parse(%q) = %+v, want {%s %d}", c.in, got, c.wantHost, c.wantPort)
		}
	}
}

func TestStringRoundTrip(t *testing.T) {
	e := endpoint.New("10.0.0.1", 4242)
	if e.String() != "10.0.0.1:4242" {
		t.Fatalf("String() = %q", e.String())
	}
	parsed, err := endpoint.Parse(e.String())
	if err != nil || parsed != e {
		t.Fatalf("Parse(String()) = %+v, %v; want %+v", parsed, err, e)
	}
}

func TestResolveRejectsZeroPort(t *testing.T) {
	e := endpoint.New("localhost", 0)
	if _, err := e.Resolve(); err == nil {
		t.Fatal("expected error resolving a zero port")
	}
}

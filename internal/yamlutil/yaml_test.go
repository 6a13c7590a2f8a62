package yamlutil_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-rep2html/internal/yamlutil"
)

type testConfig struct {
	Name  string   `yaml:"name"`
	Count int      `yaml:"count"`
	Tags  []string `yaml:"tags"`
}

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		dest    any
		wantErr error
		wantMsg string
	}{
		{
			name: "valid",
			data: []byte("name: rep\ncount: 3\ntags: [a, b]"),
			dest: &testConfig{},
		},
		{
			name:    "empty input",
			data:    nil,
			dest:    &testConfig{},
			wantErr: yamlutil.ErrEmptyInput,
		},
		{
			name:    "nil destination",
			data:    []byte("name: x"),
			dest:    nil,
			wantErr: yamlutil.ErrNilDestination,
		},
		{
			name:    "too large",
			data:    []byte("name: " + strings.Repeat("x", yamlutil.MaxInputSize)),
			dest:    &testConfig{},
			wantErr: yamlutil.ErrInputTooLarge,
		},
		{
			name:    "unknown field",
			data:    []byte("name: x\ncolour: red"),
			dest:    &testConfig{},
			wantMsg: "colour",
		},
		{
			name:    "syntax error",
			data:    []byte("name: [unclosed"),
			dest:    &testConfig{},
			wantMsg: "yamlutil:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.UnmarshalStrict(tt.data, tt.dest)
			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("UnmarshalStrict() error = %v, want %v", err, tt.wantErr)
				}
			case tt.wantMsg != "":
				if err == nil || !strings.Contains(err.Error(), tt.wantMsg) {
					t.Errorf("UnmarshalStrict() error = %v, want message containing %q", err, tt.wantMsg)
				}
			case err != nil:
				t.Errorf("UnmarshalStrict() unexpected error: %v", err)
			}
		})
	}
}

func TestUnmarshalStrict_Values(t *testing.T) {
	t.Parallel()

	var cfg testConfig
	if err := yamlutil.UnmarshalStrict([]byte("name: rep\ncount: 3\ntags: [a, b]"), &cfg); err != nil {
		t.Fatalf("UnmarshalStrict() unexpected error: %v", err)
	}
	if cfg.Name != "rep" || cfg.Count != 3 || len(cfg.Tags) != 2 {
		t.Errorf("decoded %+v", cfg)
	}
}

func TestMarshal_RoundTrip(t *testing.T) {
	t.Parallel()

	in := testConfig{Name: "rep", Count: 2, Tags: []string{"x"}}
	data, err := yamlutil.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal() unexpected error: %v", err)
	}

	var out testConfig
	if err := yamlutil.UnmarshalStrict(data, &out); err != nil {
		t.Fatalf("UnmarshalStrict() unexpected error: %v", err)
	}
	if out.Name != in.Name || out.Count != in.Count || out.Tags[0] != "x" {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}

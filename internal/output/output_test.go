package output

import (
	"bytes"
	"strings"
	"testing"
)

type sample struct {
	BeachID int64  `json:"beach_id" yaml:"beach_id"`
	Name    string `json:"name" yaml:"name"`
}

func TestTo(t *testing.T) {
	data := sample{BeachID: 7, Name: "Flamenco Beach"}

	tests := []struct {
		format Format
		want   string
	}{
		{FormatJSON, `"beach_id": 7`},
		{FormatYAML, "beach_id: 7"},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := To(&buf, tt.format, data); err != nil {
				t.Fatalf("To() error = %v", err)
			}
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output %q missing %q", buf.String(), tt.want)
			}
		})
	}

	if err := To(&bytes.Buffer{}, Format("xml"), data); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestSetFormat(t *testing.T) {
	defer SetFormat("text")

	SetFormat("json")
	if GetFormat() != FormatJSON || !IsStructured() {
		t.Errorf("format = %s", GetFormat())
	}
	SetFormat("bogus")
	if GetFormat() != FormatText || IsStructured() {
		t.Errorf("format = %s, want text", GetFormat())
	}
}

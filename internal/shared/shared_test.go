package shared

import "testing"

func TestNormalizeQuery(t *testing.T) {
	tc := []struct {
		name  string
		parts []string
		want  string
	}{
		{
			name:  "basic normalization",
			parts: []string{"Robert Hood", "Minus"},
			want:  "robert hood minus",
		},
		{
			name:  "extra whitespace",
			parts: []string{"  Robert   Hood  ", "  Minus  "},
			want:  "robert hood minus",
		},
		{
			name:  "mixed case",
			parts: []string{"RoBeRt HoOd", "MiNuS"},
			want:  "robert hood minus",
		},
		{
			name:  "single part",
			parts: []string{"Surgeon"},
			want:  "surgeon",
		},
		{
			name:  "empty input",
			parts: nil,
			want:  "",
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeQuery(tt.parts...)
			if got != tt.want {
				t.Errorf("NormalizeQuery() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGenerateID(t *testing.T) {
	a := GenerateID()
	b := GenerateID()

	if a == "" || b == "" {
		t.Error("expected non-empty ids")
	}
	if a == b {
		t.Error("expected distinct ids")
	}
}

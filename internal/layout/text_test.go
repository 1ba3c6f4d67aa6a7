package layout

import "testing"

func TestMeasureText(t *testing.T) {
	tests := map[string]struct {
		in   string
		want int
	}{
		"ascii":         {in: "hello", want: 5},
		"empty":         {in: "", want: 0},
		"wide runes":    {in: "日本", want: 4},
		"mixed":         {in: "a日b", want: 4},
		"ellipsis rune": {in: "…", want: 1},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := MeasureText(tt.in); got != tt.want {
				t.Errorf("MeasureText(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestTruncateText(t *testing.T) {
	tests := map[string]struct {
		in    string
		width int
		want  string
	}{
		"fits unchanged":       {in: "hello", width: 5, want: "hello"},
		"truncated with mark":  {in: "hello world", width: 6, want: "hello…"},
		"zero width":           {in: "hello", width: 0, want: ""},
		"exact boundary":       {in: "abc", width: 3, want: "abc"},
		"wide runes truncated": {in: "日本語", width: 5, want: "日本…"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := TruncateText(tt.in, tt.width)
			if got != tt.want {
				t.Errorf("TruncateText(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
			}
			if w := MeasureText(got); w > tt.width {
				t.Errorf("truncated width %d exceeds limit %d", w, tt.width)
			}
		})
	}
}

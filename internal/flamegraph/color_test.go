package flamegraph

import "testing"

func TestSeverityColors(t *testing.T) {
	tests := []struct {
		name       string
		duration   float64
		background string
	}{
		{"zero duration", 0, zeroBackground},
		{"fast", 0.2, "#37afa9"},
		{"upper bound of fast is exclusive", 0.5, "#a6cf42"},
		{"moderate", 1.9, "#a6cf42"},
		{"slow", 2, "#f5bb3b"},
		{"severe", 5, "#e7522e"},
		{"way past severe", 120, "#e7522e"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			background, color := severityColors(tt.duration)
			if background != tt.background {
				t.Fatalf("got background %q, want %q", background, tt.background)
			}
			if color == "" {
				t.Fatal("matched durations always carry a foreground color")
			}
		})
	}
}

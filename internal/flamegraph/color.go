package flamegraph

type severity struct {
	// Upper bound in milliseconds, exclusive. The last bucket is unbounded.
	limit      float64
	background string
	color      string
}

// Severity buckets for matched render durations. A node with no matched
// duration did not re-render during the capture and gets the neutral pair
// instead.
var severities = []severity{
	{0.5, "#37afa9", "#000000"},
	{2, "#a6cf42", "#000000"},
	{5, "#f5bb3b", "#000000"},
	{0, "#e7522e", "#ffffff"},
}

const (
	zeroBackground = "#80d0ca"
	zeroColor      = "#000000"

	neutralBackground = "#dedede"
	neutralColor      = "#646464"
)

// severityColors maps a matched render duration to its bucket's colors.
func severityColors(duration float64) (background, color string) {
	if duration <= 0 {
		return zeroBackground, zeroColor
	}
	for _, s := range severities[:len(severities)-1] {
		if duration < s.limit {
			return s.background, s.color
		}
	}
	last := severities[len(severities)-1]
	return last.background, last.color
}

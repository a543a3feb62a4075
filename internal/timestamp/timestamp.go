package timestamp

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrMalformedTimestamp indicates a timestamp string that does not follow the
// H:MM:SS.mmm clock format (fewer than 3 colon-separated components, or a
// non-numeric component).
var ErrMalformedTimestamp = errors.New("malformed timestamp")

// Parse converts a caption timestamp in "HH:MM:SS.mmm" form into fractional
// seconds. Extra leading components beyond hours are not supported; extra
// precision in the seconds component is preserved.
func Parse(ts string) (float64, error) {
	parts := strings.Split(ts, ":")
	if len(parts) < 3 {
		return 0, fmt.Errorf("%w: %q has fewer than 3 components", ErrMalformedTimestamp, ts)
	}

	hours, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid hours in %q", ErrMalformedTimestamp, ts)
	}

	minutes, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid minutes in %q", ErrMalformedTimestamp, ts)
	}

	seconds, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid seconds in %q", ErrMalformedTimestamp, ts)
	}

	return hours*3600 + minutes*60 + seconds, nil
}

// Format renders fractional seconds as a zero-padded "HH:MM:SS.mmm" timestamp
// with exactly 3 fractional digits. Negative inputs are clamped to zero.
// Format is the inverse of Parse up to millisecond rounding.
func Format(totalSeconds float64) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}

	hours := int(totalSeconds / 3600)
	remaining := math.Mod(totalSeconds, 3600)
	minutes := int(remaining / 60)
	seconds := math.Mod(remaining, 60)

	return fmt.Sprintf("%02d:%02d:%06.3f", hours, minutes, seconds)
}

// RoundMS normalizes fractional seconds to whole-millisecond precision.
func RoundMS(totalSeconds float64) float64 {
	return math.Round(totalSeconds*1000) / 1000
}

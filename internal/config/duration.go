package config

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// timeSpanPattern matches "[-][d:]hh:mm:ss[.fffffff]", the fixed format the
// tool has historically accepted in its settings files.
var timeSpanPattern = regexp.MustCompile(`^(-)?(?:(\d+):)?(\d{1,2}):(\d{2}):(\d{2})(?:\.(\d{1,7}))?$`)

// ParseDuration parses either Go duration syntax or the
// "[-][d:]hh:mm:ss[.fffffff]" form. Any other input fails with
// [ErrInvalidDuration].
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty value", ErrInvalidDuration)
	}

	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}

	m := timeSpanPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
	}

	days := atoiOrZero(m[2])
	hours := atoiOrZero(m[3])
	minutes := atoiOrZero(m[4])
	seconds := atoiOrZero(m[5])
	if hours > 23 || minutes > 59 || seconds > 59 {
		return 0, fmt.Errorf("%w: %q out of range", ErrInvalidDuration, s)
	}

	// fraction is in 100ns ticks, right-padded to nanoseconds
	var nanos int
	if m[6] != "" {
		nanos = atoiOrZero(m[6] + strings.Repeat("0", 9-len(m[6])))
	}

	d := time.Duration(days)*24*time.Hour +
		time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(nanos)
	if m[1] == "-" {
		d = -d
	}

	return d, nil
}

func atoiOrZero(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings accepted by [ParseDuration] and from integer nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrInvalidDuration, string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

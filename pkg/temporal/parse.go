// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package temporal

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// elapsedPattern matches: P?(d(T|_|-|space))?(HH:MM(:SS(.fff)?)?)?
var elapsedPattern = regexp.MustCompile(
	`^P?(?:(\d+)[T_\- ])?(?:(\d{1,2}):(\d{1,2})(?::(\d{1,2})(?:\.(\d+))?)?)?$`)

// secondsPattern matches: d+.d+
var secondsPattern = regexp.MustCompile(`^\d+\.\d+$`)

// durationPattern matches an ISO-8601-like PnDTnHnMnS.f duration.
var durationPattern = regexp.MustCompile(
	`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+(?:\.\d+)?)S)?)?$`)

// ParseElapsed parses an elapsed-time literal using three grammars tried
// in order: elapsed, seconds, duration.
//
// A lone integer with no separator (e.g. "1500") is interpreted as
// milliseconds; the same integer written as the elapsed grammar's day
// field, followed by a day separator (e.g. "P1500T"), is days. That
// asymmetry is deliberate, not a bug: the separator is what tells the
// two forms apart ("P1500" alone is rejected), and changing it would
// break any existing configuration that relies on a bare duration
// meaning milliseconds.
func ParseElapsed(s string) (Elapsed, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return INVALID, fmt.Errorf("%w: empty string", ErrInvalidTimeFormat)
	}

	// A lone unsigned integer (no 'P', no ':', no '.') is milliseconds.
	if isLoneInteger(s) {
		ms, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return INVALID, fmt.Errorf("%w: %v", ErrInvalidTimeFormat, err)
		}
		return ElapsedFromMillis(ms), nil
	}

	if m := elapsedPattern.FindStringSubmatch(s); m != nil && (m[1] != "" || m[2] != "") {
		return parseElapsedGrammar(m)
	}

	if secondsPattern.MatchString(s) {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return INVALID, fmt.Errorf("%w: %v", ErrInvalidTimeFormat, err)
		}
		return ElapsedFromSeconds(v), nil
	}

	if m := durationPattern.FindStringSubmatch(s); m != nil && hasAnyDurationComponent(m) {
		return parseDurationGrammar(m)
	}

	return INVALID, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
}

func isLoneInteger(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func hasAnyDurationComponent(m []string) bool {
	for _, g := range m[1:] {
		if g != "" {
			return true
		}
	}
	return false
}

func parseElapsedGrammar(m []string) (Elapsed, error) {
	var days, hours, minutes, seconds int64
	var fracUnits int64

	if m[1] != "" {
		v, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return INVALID, fmt.Errorf("%w: %v", ErrInvalidTimeFormat, err)
		}
		days = v
	}
	if m[2] != "" {
		hours, _ = strconv.ParseInt(m[2], 10, 64)
	}
	if m[3] != "" {
		minutes, _ = strconv.ParseInt(m[3], 10, 64)
	}
	if m[4] != "" {
		seconds, _ = strconv.ParseInt(m[4], 10, 64)
	}
	if m[5] != "" {
		fracUnits = fracStringToUnits(m[5])
	}

	total := days*UnitsPerDay + hours*UnitsPerHour + minutes*UnitsPerMinute + seconds*UnitsPerSecond + fracUnits
	return Elapsed(total), nil
}

func parseDurationGrammar(m []string) (Elapsed, error) {
	var days, hours, minutes int64
	var secondsF float64

	if m[1] != "" {
		days, _ = strconv.ParseInt(m[1], 10, 64)
	}
	if m[2] != "" {
		hours, _ = strconv.ParseInt(m[2], 10, 64)
	}
	if m[3] != "" {
		minutes, _ = strconv.ParseInt(m[3], 10, 64)
	}
	if m[4] != "" {
		secondsF, _ = strconv.ParseFloat(m[4], 64)
	}

	total := days*UnitsPerDay + hours*UnitsPerHour + minutes*UnitsPerMinute
	return Elapsed(total).Add(ElapsedFromSeconds(secondsF)), nil
}

// fracStringToUnits converts a fractional-seconds digit string (e.g. "123" for
// ".123") into 100-ns units, regardless of how many digits were supplied.
func fracStringToUnits(frac string) int64 {
	// Pad or truncate to 7 digits (100ns precision).
	for len(frac) < 7 {
		frac += "0"
	}
	frac = frac[:7]
	v, _ := strconv.ParseInt(frac, 10, 64)
	return v
}

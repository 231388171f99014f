package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// this adapted from spf13/viper's size parsing:
// parseSampleCount converts strings like 100000, 100k, 1.5m or 1e5 into a
// sample count. Suffixes are decimal (k = 1000).
func parseSampleCount(countStr string) (int, error) {
	countStr = strings.TrimSpace(countStr)
	lastChar := len(countStr) - 1
	multiplier := 1.0

	if lastChar > 0 {
		switch unicode.ToLower(rune(countStr[lastChar])) {
		case 'k':
			multiplier = 1e3
			countStr = strings.TrimSpace(countStr[:lastChar])
		case 'm':
			multiplier = 1e6
			countStr = strings.TrimSpace(countStr[:lastChar])
		case 'g':
			multiplier = 1e9
			countStr = strings.TrimSpace(countStr[:lastChar])
		}
	}

	if n, err := strconv.ParseInt(countStr, 10, 64); err == nil && multiplier == 1 {
		if n < 0 || n > math.MaxInt32 {
			return 0, fmt.Errorf("sample count %d out of range", n)
		}
		return int(n), nil
	}

	f, err := strconv.ParseFloat(countStr, 64)
	if err != nil {
		return 0, fmt.Errorf("cannot parse '%s' as a sample count", countStr)
	}

	f *= multiplier
	if f != math.Trunc(f) || f < 0 || f > math.MaxInt32 {
		return 0, fmt.Errorf("sample count '%s' must be a whole number between 0 and %d", countStr, math.MaxInt32)
	}

	return int(f), nil
}

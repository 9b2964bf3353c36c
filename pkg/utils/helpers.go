package utils

import (
	"strconv"
	"strings"
	"time"
)

// ParseDuration safely parses duration strings like "5m"
func ParseDuration(d string) time.Duration {
	if d == "" {
		return 5 * time.Minute
	}
	duration, err := time.ParseDuration(d)
	if err != nil {
		return 5 * time.Minute
	}
	return duration
}

// ParseValue converts a CSV cell to int, float64 or string, in that order.
// Hazard probabilities come back as float64, time indices and ages as int.
func ParseValue(s string) interface{} {
	s = strings.TrimSpace(s)

	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

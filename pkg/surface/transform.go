package surface

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Translate formats a vertical translate3d transform value. Positive y moves
// the node down the page.
func Translate(y float64) string {
	return fmt.Sprintf("translate3d(0, %spx, 0)", FormatFloat(y))
}

// TranslateScale formats a combined scale + vertical translate value, used
// for the stacked-card visual on backgrounds and parent sheets.
func TranslateScale(scale, y float64) string {
	return fmt.Sprintf("scale(%s) translate3d(0, %spx, 0)", FormatFloat(scale), FormatFloat(y))
}

// FormatFloat renders a pixel or scale quantity compactly.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Px formats a pixel length value.
func Px(v float64) string {
	return FormatFloat(v) + "px"
}

var translateRe = regexp.MustCompile(`translate3d\(\s*[^,]+,\s*(-?[\d.]+(?:e-?\d+)?)px`)

// TranslateY extracts the vertical offset from a node's transform property.
// The boolean result is false when the node is nil, has no transform, or the
// transform does not parse to a finite number; callers treat that as "no
// measurement available".
func TranslateY(n Node) (float64, bool) {
	if n == nil {
		return 0, false
	}
	value, ok := n.Style("transform")
	if !ok || value == "" || value == "none" {
		return 0, false
	}
	match := translateRe.FindStringSubmatch(value)
	if match == nil {
		return 0, false
	}
	y, err := strconv.ParseFloat(match[1], 64)
	if err != nil || math.IsNaN(y) || math.IsInf(y, 0) {
		return 0, false
	}
	return y, true
}

var scaleRe = regexp.MustCompile(`scale\(\s*(-?[\d.]+(?:e-?\d+)?)\s*\)`)

// ScaleOf extracts the scale factor from a node's transform property,
// defaulting to 1 when none is present.
func ScaleOf(n Node) float64 {
	if n == nil {
		return 1
	}
	value, ok := n.Style("transform")
	if !ok {
		return 1
	}
	match := scaleRe.FindStringSubmatch(value)
	if match == nil {
		return 1
	}
	s, err := strconv.ParseFloat(match[1], 64)
	if err != nil || math.IsNaN(s) || math.IsInf(s, 0) {
		return 1
	}
	return s
}

// ParsePx parses a "<N>px" style value, tolerating a bare number.
func ParsePx(value string) (float64, bool) {
	s := strings.TrimSuffix(strings.TrimSpace(value), "px")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

package utility

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ToFloat converts a CSV cell to a finite float; empty cells report ok == false
func ToFloat(s string) (value float64, ok bool, err error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "nan") {
		return 0, false, nil
	}
	value, err = strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(value, 0) {
		return 0, false, fmt.Errorf("invalid number %q", s)
	}
	return value, true, nil
}

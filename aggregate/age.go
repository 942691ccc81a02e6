// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

package aggregate

import "fmt"

// NumAgeGroups is the number of five-year age groups. The last one is open-ended.
const NumAgeGroups = 18

// ageLabels maps five-year age group codes to labels like "20-24".
var ageLabels = func() map[int]string {
	m := make(map[int]string, NumAgeGroups)
	for code := 1; code < NumAgeGroups; code++ {
		min := AgeGroupMin(code)
		m[code] = fmt.Sprintf("%d-%d", min, min+4)
	}
	m[NumAgeGroups] = "85+"
	return m
}()

// AgeGroupMin returns the youngest age included in the group with the supplied code.
func AgeGroupMin(code int) int {
	return (code - 1) * 5
}

// AgeLabel returns the label for the five-year age group with the supplied code,
// e.g. "0-4" for 1 or "85+" for 18. An empty string is returned for unknown codes.
func AgeLabel(code int) string {
	return ageLabels[code]
}

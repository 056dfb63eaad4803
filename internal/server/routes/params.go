package routes

import "strconv"

// atoiOrZero converts a numeric query param, treating anything malformed as
// unset. Filter validation and clamping happen in graph.BuildParams.
func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

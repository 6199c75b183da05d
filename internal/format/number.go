// Package format renders counts for the document table.
package format

import (
	"fmt"
	"strconv"
)

// Count renders n in abbreviated form: values of 1000 and above become
// thousands with one decimal place and a "k" suffix (1500 -> "1.5k").
func Count(n int) string {
	if n >= 1000 {
		return fmt.Sprintf("%.1fk", float64(n)/1000)
	}
	return strconv.Itoa(n)
}

package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// NextSequentialID returns prefix followed by the highest numeric suffix
// in use plus one, zero padded to three digits (I001, I002, ...).
// IDs that do not follow the pattern are ignored.
func NextSequentialID(prefix string, ids []string) string {
	highest := 0
	for _, id := range ids {
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(id, prefix))
		if err != nil {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("%s%03d", prefix, highest+1)
}

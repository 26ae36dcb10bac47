package store

const (
	ItemIDPrefix     = "I"
	CustomerIDPrefix = "C"
)

// removeID deletes id from the insertion-order slice
func removeID(order []string, id string) []string {
	for i, existing := range order {
		if existing == id {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}

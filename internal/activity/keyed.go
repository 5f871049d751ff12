package activity

// getOrInsert returns the element of *items whose key is want, appending the
// result of create when none exists. Keys stay unique because every insert
// goes through here. The returned pointer is only valid until *items grows.
func getOrInsert[T any](items *[]T, key func(*T) string, want string, create func() T) *T {
	for i := range *items {
		if key(&(*items)[i]) == want {
			return &(*items)[i]
		}
	}
	*items = append(*items, create())
	return &(*items)[len(*items)-1]
}

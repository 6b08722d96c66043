package graph

// paginate applies the optional offset and limit arguments of a list field.
// Missing arguments leave the list untouched.
func paginate[T any](items []T, args map[string]interface{}) []T {
	if offset, ok := args["offset"].(int); ok && offset > 0 {
		if offset >= len(items) {
			return items[len(items):]
		}
		items = items[offset:]
	}
	if limit, ok := args["limit"].(int); ok && limit >= 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

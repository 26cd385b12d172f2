package database

const (
	SortRegionID   = "id"
	SortRegionName = "name" // natural order, so "Region 2" precedes "Region 10"
)

const DefaultRegionSort = SortRegionID

// IsValidRegionSort checks if a string is a valid region sort order. Empty means the default.
func IsValidRegionSort(order string) bool {
	switch order {
	case "", SortRegionID, SortRegionName:
		return true
	default:
		return false
	}
}

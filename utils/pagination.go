package utils

// TotalPages is ceil(totalCount / pageSize); zero when either is non-positive.
func TotalPages(totalCount, pageSize int) int {
	if totalCount <= 0 || pageSize <= 0 {
		return 0
	}
	return (totalCount + pageSize - 1) / pageSize
}

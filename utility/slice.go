package utility

import "sort"

func Contains(array []string, s string) bool {
	for _, v := range array {
		if v == s {
			return true
		}
	}
	return false
}

// SortedUnique returns the distinct values of array in ascending order
func SortedUnique(array []string) []string {
	seen := make(map[string]struct{}, len(array))
	unique := make([]string, 0)
	for _, v := range array {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		unique = append(unique, v)
	}
	sort.Strings(unique)
	return unique
}

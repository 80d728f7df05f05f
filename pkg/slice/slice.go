// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package slice complements the standard [slices] package with Map, Filter and
SumBy helpers used when projecting records into API views and aggregates.
*/
package slice

// Map maps a slice of type T to a slice of type U.
func Map[T any, U any](input []T, transform func(T) U) []U {
	if input == nil {
		return nil
	}

	result := make([]U, len(input))
	for i, v := range input {
		result[i] = transform(v)
	}
	return result
}

// Filter returns only elements where predicate evaluates to true.
func Filter[T any](input []T, predicate func(T) bool) []T {
	var result []T
	for _, v := range input {
		if predicate(v) {
			result = append(result, v)
		}
	}
	return result
}

// SumBy adds up selector(v) over the slice.
func SumBy[T any, N int | float64](input []T, selector func(T) N) N {
	var total N
	for _, v := range input {
		total += selector(v)
	}
	return total
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/yomira-shelf/pkg/slice"
)

func TestSliceHelpers(t *testing.T) {
	numbers := []int{1, 2, 3, 4}

	assert.Equal(t, []int{2, 4, 6, 8}, slice.Map(numbers, func(n int) int { return n * 2 }))
	assert.Equal(t, []int{2, 4}, slice.Filter(numbers, func(n int) bool { return n%2 == 0 }))
	assert.Equal(t, 10, slice.SumBy(numbers, func(n int) int { return n }))
	assert.Nil(t, slice.Map[int, int](nil, nil))
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package manga_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-shelf/internal/core/manga"
	"github.com/taibuivan/yomira-shelf/internal/platform/apperr"
	"github.com/taibuivan/yomira-shelf/pkg/pointer"
)

/*
TestNormalizeRating pins the clamp-then-round-half-up rule.
*/
func TestNormalizeRating(t *testing.T) {
	tests := []struct {
		raw  float64
		want float64
	}{
		{4.49, 4.5},
		{4.24, 4.0},
		{4.25, 4.5},
		{4.75, 5.0},
		{0.24, 0.0},
		{0.25, 0.5},
		{-1, 0},
		{5.5, 5},
		{3, 3},
		{1e9, 5},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.raw), func(t *testing.T) {
			got, err := manga.NormalizeRating(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

/*
TestNormalizeRating_AlwaysOnHalfStep sweeps the input space and checks every
output lands in {0, 0.5, ..., 5}.
*/
func TestNormalizeRating_AlwaysOnHalfStep(t *testing.T) {
	for raw := -2.0; raw <= 7.0; raw += 0.013 {
		got, err := manga.NormalizeRating(raw)
		require.NoError(t, err)

		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, 5.0)
		assert.Equal(t, math.Trunc(got*2), got*2, "raw %v produced %v", raw, got)
	}
}

func TestNormalizeRating_RejectsNonFinite(t *testing.T) {
	for _, raw := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := manga.NormalizeRating(raw)
		assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
	}
}

/*
TestRatingLabel checks the fixed lookup: every half step has a label, nothing else does.
*/
func TestRatingLabel(t *testing.T) {
	label, ok := manga.RatingLabel(pointer.To(5.0))
	assert.True(t, ok)
	assert.Equal(t, "masterpiece", label)

	label, ok = manga.RatingLabel(pointer.To(0.0))
	assert.True(t, ok)
	assert.Equal(t, "unwatchable", label)

	seen := map[string]bool{}
	for step := 0; step <= 10; step++ {
		label, ok := manga.RatingLabel(pointer.To(float64(step) / 2))
		require.True(t, ok, "step %d", step)
		seen[label] = true
	}
	assert.Len(t, seen, 11)

	for _, invalid := range []*float64{nil, pointer.To(4.3), pointer.To(-0.5), pointer.To(5.5), pointer.To(math.Inf(1)), pointer.To(math.NaN())} {
		_, ok := manga.RatingLabel(invalid)
		assert.False(t, ok)
	}
}

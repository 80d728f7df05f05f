// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package stats_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/taibuivan/yomira-shelf/internal/core/manga"
	"github.com/taibuivan/yomira-shelf/internal/core/stats"
	"github.com/taibuivan/yomira-shelf/pkg/pointer"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func record(rating *float64, total *int, prices ...float64) *manga.Record {
	volumes := make([]manga.Volume, 0, len(prices))
	for i, price := range prices {
		volumes = append(volumes, manga.Volume{
			Number:    i + 1,
			Condition: manga.ConditionSealed,
			Price:     pointer.To(price),
		})
	}
	return &manga.Record{Rating: rating, TotalVolumes: total, Volumes: volumes}
}

func TestCompute_Empty(t *testing.T) {
	result := stats.Compute(nil)

	assert.Equal(t, 0, result.MangaCount)
	assert.Equal(t, 0, result.OwnedVolumes)
	assert.Nil(t, result.TotalVolumes)
	assert.Nil(t, result.AverageRating)
	assert.Nil(t, result.RatingLabel)
	assert.Zero(t, result.TotalCost)
}

/*
TestCompute_ZeroRatingCountsButNullDoesNot pins the distinction between
"rated lowest" and "unrated": [0, 3, null, 5] averages to 8/3.
*/
func TestCompute_ZeroRatingCountsButNullDoesNot(t *testing.T) {
	result := stats.Compute([]*manga.Record{
		record(pointer.To(0.0), nil),
		record(pointer.To(3.0), nil),
		record(nil, nil),
		record(pointer.To(5.0), nil),
	})

	require.NotNil(t, result.AverageRating)
	assert.InDelta(t, 8.0/3.0, *result.AverageRating, 1e-9)
	assert.Nil(t, result.RatingLabel, "a mean between half steps has no label")
	assert.Equal(t, 4, result.MangaCount)
}

func TestCompute_RatingLabelOnHalfStepMean(t *testing.T) {
	result := stats.Compute([]*manga.Record{
		record(pointer.To(4.0), nil),
		record(pointer.To(5.0), nil),
	})

	require.NotNil(t, result.AverageRating)
	assert.Equal(t, 4.5, *result.AverageRating)
	require.NotNil(t, result.RatingLabel)
	assert.Equal(t, "excellent", *result.RatingLabel)
}

func TestCompute_TotalVolumesOnlyOverDeclared(t *testing.T) {
	undeclared := stats.Compute([]*manga.Record{record(nil, nil, 10), record(nil, nil)})
	assert.Nil(t, undeclared.TotalVolumes)

	mixed := stats.Compute([]*manga.Record{
		record(nil, pointer.To(12), 10, 10),
		record(nil, nil, 5),
		record(nil, pointer.To(3)),
	})
	require.NotNil(t, mixed.TotalVolumes)
	assert.Equal(t, 15, *mixed.TotalVolumes)
	assert.Equal(t, 3, mixed.OwnedVolumes)
}

// A declared total of zero is an ongoing series: unknown, never a known zero.
func TestCompute_ZeroDeclaredTotalIsUnknown(t *testing.T) {
	ongoing := record(nil, pointer.To(0), 7)

	result := stats.Compute([]*manga.Record{ongoing})
	assert.Nil(t, result.TotalVolumes)
	assert.Equal(t, manga.CompletionUnknown, ongoing.Ledger().CompletionStatus(ongoing.TotalVolumes))

	mixed := stats.Compute([]*manga.Record{ongoing, record(nil, pointer.To(4))})
	require.NotNil(t, mixed.TotalVolumes)
	assert.Equal(t, 4, *mixed.TotalVolumes)
}

func TestCompute_TotalCostRoundsToCentsAndToleratesNilPrice(t *testing.T) {
	legacy := &manga.Record{Volumes: []manga.Volume{{Number: 1, Condition: manga.ConditionOpened}}}

	result := stats.Compute([]*manga.Record{
		record(nil, nil, 0.1, 0.2),
		record(nil, nil, 15, 12.5),
		legacy,
	})

	assert.Equal(t, 27.8, result.TotalCost)
	assert.Equal(t, 5, result.OwnedVolumes)
}

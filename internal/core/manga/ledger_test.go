// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package manga_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-shelf/internal/core/manga"
	"github.com/taibuivan/yomira-shelf/internal/platform/apperr"
	"github.com/taibuivan/yomira-shelf/pkg/pointer"
)

func volumeInput(number int, condition string, price float64, date *string) manga.VolumeInput {
	return manga.VolumeInput{Number: number, Condition: condition, Price: pointer.To(price), PurchaseDate: date}
}

/*
TestLedger_AddRejectsDuplicate checks a colliding add fails and changes nothing.
*/
func TestLedger_AddRejectsDuplicate(t *testing.T) {
	ledger := manga.NewLedger(nil)
	require.NoError(t, ledger.Add(volumeInput(1, "sealed", 15, pointer.To("2024-01-05"))))

	before := ledger.Volumes()
	err := ledger.Add(volumeInput(1, "opened", 99, nil))

	assert.True(t, apperr.HasCode(err, apperr.CodeDuplicateVolume))
	assert.Equal(t, before, ledger.Volumes())
}

/*
TestLedger_AddValidation covers each field rule.
*/
func TestLedger_AddValidation(t *testing.T) {
	tests := []struct {
		name  string
		input manga.VolumeInput
	}{
		{"zero_number", volumeInput(0, "sealed", 1, nil)},
		{"negative_number", volumeInput(-3, "sealed", 1, nil)},
		{"bad_condition", volumeInput(1, "mint", 1, nil)},
		{"negative_price", volumeInput(1, "sealed", -0.01, nil)},
		{"nan_price", volumeInput(1, "sealed", math.NaN(), nil)},
		{"missing_price", manga.VolumeInput{Number: 1, Condition: "sealed"}},
		{"bad_date", volumeInput(1, "sealed", 1, pointer.To("2024-13-01"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := manga.NewLedger(nil)
			err := ledger.Add(tt.input)
			assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
			assert.Zero(t, ledger.OwnedCount())
		})
	}
}

func TestLedger_BlankDateMeansUnknown(t *testing.T) {
	ledger := manga.NewLedger(nil)
	require.NoError(t, ledger.Add(volumeInput(2, "opened", 12.5, pointer.To("  "))))

	assert.Nil(t, ledger.Volumes()[0].PurchaseDate)
}

func TestLedger_LegacyConditionLabels(t *testing.T) {
	ledger := manga.NewLedger(nil)
	require.NoError(t, ledger.Add(volumeInput(1, "lacrado", 1, nil)))
	require.NoError(t, ledger.Add(volumeInput(2, "Aberto", 1, nil)))

	sorted := ledger.Sorted()
	assert.Equal(t, manga.ConditionSealed, sorted[0].Condition)
	assert.Equal(t, manga.ConditionOpened, sorted[1].Condition)
}

/*
TestLedger_Edit covers in-place replacement, renumbering and collisions.
*/
func TestLedger_Edit(t *testing.T) {
	ledger := manga.NewLedger(nil)
	require.NoError(t, ledger.Add(volumeInput(1, "sealed", 10, nil)))
	require.NoError(t, ledger.Add(volumeInput(2, "sealed", 10, nil)))

	require.NoError(t, ledger.Edit(1, volumeInput(1, "opened", 8, nil)))
	assert.Equal(t, manga.ConditionOpened, ledger.Sorted()[0].Condition)

	err := ledger.Edit(1, volumeInput(2, "opened", 8, nil))
	assert.True(t, apperr.HasCode(err, apperr.CodeDuplicateVolume))

	require.NoError(t, ledger.Edit(1, volumeInput(3, "opened", 8, nil)))
	assert.False(t, ledger.Has(1))
	assert.True(t, ledger.Has(3))

	err = ledger.Edit(7, volumeInput(7, "opened", 8, nil))
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

/*
TestLedger_RemoveOnlyVolume checks owned count and completion after emptying.
*/
func TestLedger_RemoveOnlyVolume(t *testing.T) {
	ledger := manga.NewLedger(nil)
	require.NoError(t, ledger.Add(volumeInput(1, "sealed", 10, nil)))

	require.NoError(t, ledger.Remove(1))
	assert.Equal(t, 0, ledger.OwnedCount())
	assert.Equal(t, manga.CompletionIncomplete, ledger.CompletionStatus(pointer.To(3)))

	assert.True(t, apperr.HasCode(ledger.Remove(1), apperr.CodeNotFound))
}

/*
TestLedger_TotalSpent treats a missing legacy price as zero.
*/
func TestLedger_TotalSpent(t *testing.T) {
	ledger := manga.NewLedger([]manga.Volume{
		{Number: 1, Condition: manga.ConditionSealed, Price: pointer.To(10.5)},
		{Number: 2, Condition: manga.ConditionSealed, Price: pointer.To(0.0)},
		{Number: 3, Condition: manga.ConditionOpened, Price: nil},
	})

	assert.Equal(t, 10.5, ledger.TotalSpent())
	assert.Equal(t, 0.0, manga.NewLedger(nil).TotalSpent())

	cents := manga.NewLedger([]manga.Volume{
		{Number: 1, Price: pointer.To(0.1)},
		{Number: 2, Price: pointer.To(0.2)},
	})
	assert.Equal(t, 0.3, cents.TotalSpent())
}

func TestLedger_CompletionStatus(t *testing.T) {
	ledger := manga.NewLedger([]manga.Volume{{Number: 1}, {Number: 2}, {Number: 3}})

	assert.Equal(t, manga.CompletionComplete, ledger.CompletionStatus(pointer.To(3)))
	assert.Equal(t, manga.CompletionComplete, ledger.CompletionStatus(pointer.To(2)))
	assert.Equal(t, manga.CompletionIncomplete, ledger.CompletionStatus(pointer.To(12)))
	assert.Equal(t, manga.CompletionUnknown, ledger.CompletionStatus(nil))
	assert.Equal(t, manga.CompletionUnknown, ledger.CompletionStatus(pointer.To(0)))
}

func TestLedger_CopiesAreIndependent(t *testing.T) {
	source := []manga.Volume{{Number: 1, Price: pointer.To(5.0)}}
	ledger := manga.NewLedger(source)

	*source[0].Price = 100
	assert.Equal(t, 5.0, ledger.TotalSpent())
}

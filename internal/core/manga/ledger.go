// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package manga

import (
	"math"
	"slices"
	"strings"

	"github.com/taibuivan/yomira-shelf/internal/platform/apperr"
	"github.com/taibuivan/yomira-shelf/internal/platform/validate"
	"github.com/taibuivan/yomira-shelf/pkg/pointer"
)

// # Volume Ledger

// Ledger is the in-memory volume set of one record. Mutations either fully
// apply or leave the set untouched; persistence is the caller's job.
type Ledger struct {
	volumes []Volume
}

// NewLedger copies volumes into a fresh ledger.
func NewLedger(volumes []Volume) *Ledger {
	ledger := &Ledger{volumes: make([]Volume, 0, len(volumes))}
	for _, volume := range volumes {
		ledger.volumes = append(ledger.volumes, cloneVolume(volume))
	}
	return ledger
}

// Volumes returns a copy of the set in storage order.
func (ledger *Ledger) Volumes() []Volume {
	return NewLedger(ledger.volumes).volumes
}

// Sorted returns a copy of the set ordered by volume number ascending.
func (ledger *Ledger) Sorted() []Volume {
	sorted := ledger.Volumes()
	slices.SortFunc(sorted, func(a, b Volume) int { return a.Number - b.Number })
	return sorted
}

// Has reports whether a volume with this number is owned.
func (ledger *Ledger) Has(number int) bool {
	return ledger.indexOf(number) >= 0
}

/*
Add inserts a new volume.

Returns:
  - error: VALIDATION_ERROR for bad fields, DUPLICATE_VOLUME if the number is already owned
*/
func (ledger *Ledger) Add(input VolumeInput) error {
	volume, err := ValidateVolume(input)
	if err != nil {
		return err
	}

	if ledger.Has(volume.Number) {
		return apperr.DuplicateVolume(volume.Number)
	}

	ledger.volumes = append(ledger.volumes, volume)
	return nil
}

/*
Edit replaces the volume currently numbered number with input.

Renumbering onto a number held by a different volume is a DUPLICATE_VOLUME.

Returns:
  - error: VALIDATION_ERROR, NOT_FOUND (number not owned) or DUPLICATE_VOLUME
*/
func (ledger *Ledger) Edit(number int, input VolumeInput) error {
	volume, err := ValidateVolume(input)
	if err != nil {
		return err
	}

	index := ledger.indexOf(number)
	if index < 0 {
		return apperr.NotFound("Volume")
	}

	if volume.Number != number && ledger.Has(volume.Number) {
		return apperr.DuplicateVolume(volume.Number)
	}

	ledger.volumes[index] = volume
	return nil
}

// Remove deletes the volume with this number. Removing an unowned number is NOT_FOUND.
func (ledger *Ledger) Remove(number int) error {
	index := ledger.indexOf(number)
	if index < 0 {
		return apperr.NotFound("Volume")
	}

	ledger.volumes = slices.Delete(ledger.volumes, index, index+1)
	return nil
}

// TotalSpent sums every price, treating a missing price as 0, rounded to cents.
func (ledger *Ledger) TotalSpent() float64 {
	total := 0.0
	for _, volume := range ledger.volumes {
		total += pointer.Val(volume.Price)
	}
	return RoundCents(total)
}

// OwnedCount is the cardinality of the set.
func (ledger *Ledger) OwnedCount() int {
	return len(ledger.volumes)
}

// CompletionStatus compares the owned count with a declared series length.
// A nil or zero declared total is unknown; the catalog reports 0 for ongoing series.
func (ledger *Ledger) CompletionStatus(declaredTotal *int) CompletionStatus {
	if declaredTotal == nil || *declaredTotal <= 0 {
		return CompletionUnknown
	}
	if ledger.OwnedCount() >= *declaredTotal {
		return CompletionComplete
	}
	return CompletionIncomplete
}

func (ledger *Ledger) indexOf(number int) int {
	return slices.IndexFunc(ledger.volumes, func(volume Volume) bool { return volume.Number == number })
}

// # Validation

/*
ValidateVolume checks input and converts it to a [Volume].

Rules:
  - number: positive integer
  - condition: sealed or opened
  - price: required, finite, non-negative
  - purchase_date: optional, YYYY-MM-DD calendar date (blank counts as absent)
*/
func ValidateVolume(input VolumeInput) (Volume, error) {
	validator := &validate.Validator{}
	validator.Min(FieldNumber, input.Number, 1)

	condition, ok := ParseCondition(input.Condition)
	validator.Custom(FieldCondition, !ok, "Must be one of: sealed, opened")

	if input.Price == nil {
		validator.Custom(FieldPrice, true, "This field is required")
	} else {
		validator.NonNegative(FieldPrice, *input.Price)
	}

	var purchaseDate *string
	if input.PurchaseDate != nil {
		if trimmed := strings.TrimSpace(*input.PurchaseDate); trimmed != "" {
			validator.Date(FieldPurchaseDate, trimmed)
			purchaseDate = &trimmed
		}
	}

	if err := validator.Err(); err != nil {
		return Volume{}, err
	}

	return Volume{
		Number:       input.Number,
		Condition:    condition,
		Price:        pointer.To(*input.Price),
		PurchaseDate: purchaseDate,
	}, nil
}

// RoundCents rounds a monetary amount to two decimals.
func RoundCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}

func cloneVolume(volume Volume) Volume {
	volume.Price = pointer.Clone(volume.Price)
	volume.PurchaseDate = pointer.Clone(volume.PurchaseDate)
	return volume
}

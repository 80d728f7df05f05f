// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package manga

import "github.com/taibuivan/yomira-shelf/pkg/slice"

// UnknownPurchaseDate is displayed for volumes bought on an unrecorded date.
const UnknownPurchaseDate = "unknown"

// VolumeView is a volume as returned by the API.
type VolumeView struct {
	Volume
	PurchaseDateDisplay string `json:"purchase_date_display"`
}

// RecordView is a record with its derived ledger figures.
type RecordView struct {
	*Record
	Volumes          []VolumeView     `json:"volumes"`
	OwnedCount       int              `json:"owned_count"`
	TotalSpent       float64          `json:"total_spent"`
	CompletionStatus CompletionStatus `json:"completion_status"`
	RatingLabel      *string          `json:"rating_label"`
}

// Present computes the derived fields of a record. Volumes are ordered by number.
func Present(record *Record) RecordView {
	ledger := record.Ledger()

	view := RecordView{
		Record:           record,
		OwnedCount:       ledger.OwnedCount(),
		TotalSpent:       ledger.TotalSpent(),
		CompletionStatus: ledger.CompletionStatus(record.TotalVolumes),
		Volumes: slice.Map(ledger.Sorted(), func(volume Volume) VolumeView {
			display := UnknownPurchaseDate
			if volume.PurchaseDate != nil {
				display = *volume.PurchaseDate
			}
			return VolumeView{Volume: volume, PurchaseDateDisplay: display}
		}),
	}

	if view.Volumes == nil {
		view.Volumes = []VolumeView{}
	}
	if label, ok := RatingLabel(record.Rating); ok {
		view.RatingLabel = &label
	}

	return view
}

// PresentAll maps [Present] over records.
func PresentAll(records []*Record) []RecordView {
	views := slice.Map(records, Present)
	if views == nil {
		return []RecordView{}
	}
	return views
}

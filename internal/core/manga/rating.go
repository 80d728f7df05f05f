// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package manga

import (
	"math"

	"github.com/taibuivan/yomira-shelf/internal/platform/validate"
)

// # Rating

const (
	MinRating = 0.0
	MaxRating = 5.0
)

// ratingLabels maps each valid half step to its meaning. Keys are rating*2.
var ratingLabels = [...]string{
	0:  "unwatchable",
	1:  "appalling",
	2:  "horrible",
	3:  "very bad",
	4:  "bad",
	5:  "average",
	6:  "fine",
	7:  "good",
	8:  "very good",
	9:  "excellent",
	10: "masterpiece",
}

/*
NormalizeRating clamps raw to [0, 5] and rounds half-up to the nearest 0.5.

Examples: 4.49 becomes 4.5, 4.24 becomes 4, -1 becomes 0 and 5.5 becomes 5.

Returns:
  - error: VALIDATION_ERROR when raw is NaN or infinite
*/
func NormalizeRating(raw float64) (float64, error) {
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 0, validate.RequiredError(FieldRating, "Must be a finite number")
	}

	clamped := math.Min(math.Max(raw, MinRating), MaxRating)
	return math.Floor(clamped*2+0.5) / 2, nil
}

// RatingLabel returns the fixed label for a valid rating. Nil and values
// outside the eleven half steps have no label.
func RatingLabel(rating *float64) (string, bool) {
	if rating == nil {
		return "", false
	}

	doubled := *rating * 2
	if doubled != math.Trunc(doubled) || doubled < 0 || doubled >= float64(len(ratingLabels)) {
		return "", false
	}
	return ratingLabels[int(doubled)], true
}

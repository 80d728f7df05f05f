// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/yomira-shelf/pkg/slug"
)

func TestFrom(t *testing.T) {
	tests := map[string]string{
		"Seinen Favourites":   "seinen-favourites",
		"  Pokémon -- Spécial ": "pokemon-special",
		"Ｏｎｅ Ｐｉｅｃｅ":           "one-piece",
		"進撃の巨人":               slug.Fallback,
	}

	for input, want := range tests {
		t.Run(input, func(t *testing.T) {
			assert.Equal(t, want, slug.From(input))
		})
	}
}

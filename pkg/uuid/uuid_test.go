// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package uuid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/yomira-shelf/pkg/uuid"
)

func TestNew_IsValidAndOrdered(t *testing.T) {
	first := uuid.New()
	second := uuid.V7{}.NewID()

	assert.True(t, uuid.Valid(first))
	assert.True(t, uuid.Valid(second))
	assert.NotEqual(t, first, second)
	assert.False(t, uuid.Valid("collection-1"))
}

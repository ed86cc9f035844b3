package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPromotionUsable(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	require.True(t, Promotion{IsActive: true}.Usable(now))
	require.False(t, Promotion{IsActive: false}.Usable(now))

	require.True(t, Promotion{IsActive: true, ValidFrom: &past, ValidTo: &future}.Usable(now))
	require.False(t, Promotion{IsActive: true, ValidFrom: &future}.Usable(now))
	require.False(t, Promotion{IsActive: true, ValidTo: &past}.Usable(now))
}

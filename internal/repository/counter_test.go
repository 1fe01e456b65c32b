package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDisplayCode(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 5, 15, 12, 0, 0, 0, time.UTC)

	require.Equal(t, "BK-2025-0001", displayCode("BK", now, 1))
	require.Equal(t, "RD-2025-0042", displayCode("RD", now, 42))
	require.Equal(t, "LN-2025-12345", displayCode("LN", now, 12345))
}

func TestCounterScope(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 5, 15, 12, 0, 0, 0, time.UTC)

	require.Equal(t, "lending_2025", counterScope("lending", now))
}

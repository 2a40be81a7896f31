package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/light-bringer/promo-engine/internal/models/m_outbox"
)

func TestCutoffs(t *testing.T) {
	now := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

	completed, failed := cutoffs(cleanupConfig{CompletedRetention: 720 * time.Hour, FailedRetention: 2160 * time.Hour}, now)

	assert.Equal(t, time.Date(2026, 9, 19, 0, 0, 0, 0, time.UTC), completed)
	assert.Equal(t, time.Date(2026, 7, 21, 0, 0, 0, 0, time.UTC), failed)
}

func TestExpiredParams(t *testing.T) {
	now := time.Now()

	params := expiredParams(now, now.Add(-time.Hour))

	assert.Equal(t, m_outbox.StatusCompleted, params["completed"])
	assert.Equal(t, m_outbox.StatusFailed, params["failed"])
	assert.Equal(t, now, params["completedCutoff"])
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "health_intelligence", cfg.Database.Database)
	assert.Equal(t, "localhost:6379", cfg.Redis.RedisAddr())
}

func TestLoad_AnalyticsDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	a := cfg.Analytics
	assert.Equal(t, 75.0, a.MinCaseVolume)
	assert.Equal(t, 1.75, a.SpikeMultiplier)
	assert.Equal(t, 3, a.RollingWindowPeriods)
	assert.Equal(t, 200.0, a.AbsoluteOutbreakThreshold)
	assert.Equal(t, 50, a.RecentWindowSize)
	assert.Equal(t, 1.2, a.BedSafetyMargin)
	assert.Equal(t, 1.5, a.ICUSafetyMargin)
	assert.Equal(t, 24.0, a.BedCrisisHours)
	assert.Equal(t, 12.0, a.ICUCrisisHours)
	assert.Equal(t, 200.0, a.WardCaseCeiling)
	assert.Equal(t, 75.0, a.RiskCriticalCutoff)
	assert.Equal(t, 50.0, a.RiskHighCutoff)
	assert.Equal(t, 25.0, a.RiskMediumCutoff)
}

func TestLoad_AnalyticsOverrides(t *testing.T) {
	t.Setenv("SPIKE_MULTIPLIER", "2.5")
	t.Setenv("ROLLING_WINDOW_PERIODS", "6")
	t.Setenv("WARD_CASE_CEILING", "500")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 2.5, cfg.Analytics.SpikeMultiplier)
	assert.Equal(t, 6, cfg.Analytics.RollingWindowPeriods)
	assert.Equal(t, 500.0, cfg.Analytics.WardCaseCeiling)
}

func TestLoad_InvalidNumericFallsBack(t *testing.T) {
	t.Setenv("SPIKE_MULTIPLIER", "not-a-number")
	t.Setenv("SERVER_PORT", "also-not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 1.75, cfg.Analytics.SpikeMultiplier)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestDatabaseDSN(t *testing.T) {
	c := DatabaseConfig{
		Host:     "db",
		Port:     5433,
		User:     "udhe",
		Password: "secret",
		Database: "health",
		SSLMode:  "require",
	}
	assert.Equal(t,
		"host=db port=5433 user=udhe password=secret dbname=health sslmode=require",
		c.DatabaseDSN(),
	)
}

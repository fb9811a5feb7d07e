package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodWindowDay(t *testing.T) {
	// Miércoles 15 de mayo de 2024.
	base := time.Date(2024, 5, 15, 13, 45, 0, 0, time.UTC)

	desde, hasta, err := PeriodWindow(PeriodDay, base)

	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC), desde)
	assert.Equal(t, time.Date(2024, 5, 16, 0, 0, 0, 0, time.UTC), hasta)
}

func TestPeriodWindowWeekStartsSunday(t *testing.T) {
	base := time.Date(2024, 5, 15, 13, 45, 0, 0, time.UTC)

	desde, hasta, err := PeriodWindow(PeriodWeek, base)

	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 12, 0, 0, 0, 0, time.UTC), desde) // domingo
	assert.Equal(t, time.Date(2024, 5, 19, 0, 0, 0, 0, time.UTC), hasta)
}

func TestPeriodWindowMonth(t *testing.T) {
	base := time.Date(2024, 5, 15, 13, 45, 0, 0, time.UTC)

	desde, hasta, err := PeriodWindow(PeriodMonth, base)

	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), desde)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), hasta)
}

func TestPeriodWindowYear(t *testing.T) {
	base := time.Date(2024, 5, 15, 13, 45, 0, 0, time.UTC)

	desde, hasta, err := PeriodWindow(PeriodYear, base)

	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), desde)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), hasta)

	// "anio" se acepta como alias ASCII.
	_, _, err = PeriodWindow("anio", base)
	assert.NoError(t, err)
}

func TestPeriodWindowRejectsUnknownPeriod(t *testing.T) {
	_, _, err := PeriodWindow("quincena", time.Now())
	assert.Error(t, err)
}

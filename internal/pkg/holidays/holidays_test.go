package holidays

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/attendance/internal/domain/attendance"
)

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(" US ")
	require.NoError(t, err)
	assert.Equal(t, "us", p.Region())

	_, err = NewProvider("atlantis")
	assert.Error(t, err)
}

func TestProvider_Between(t *testing.T) {
	p, err := NewProvider("us")
	require.NoError(t, err)

	got, err := p.Between(attendance.Date(2026, time.November, 1), attendance.Date(2026, time.November, 30))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, attendance.Date(2026, time.November, 11), got[0].Date)
	assert.Equal(t, attendance.Date(2026, time.November, 26), got[1].Date)
	assert.NotEmpty(t, got[1].Description)

	none, err := p.Between(attendance.Date(2026, time.March, 2), attendance.Date(2026, time.March, 6))
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = p.Between(attendance.Date(2026, time.March, 6), attendance.Date(2026, time.March, 2))
	assert.ErrorIs(t, err, attendance.ErrInvalidRange)
}

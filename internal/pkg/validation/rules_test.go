package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWeekday(t *testing.T) {
	d, err := ParseWeekday(" MONDAY ")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, d)

	d, err = ParseWeekday("fri")
	require.NoError(t, err)
	assert.Equal(t, time.Friday, d)

	_, err = ParseWeekday("funday")
	assert.Error(t, err)
}

func TestRegister(t *testing.T) {
	v := validator.New()
	require.NoError(t, Register(v))

	type req struct {
		Date     string `validate:"required,civildate"`
		Day      string `validate:"required,weekday"`
		Username string `validate:"required,username"`
	}

	assert.NoError(t, v.Struct(req{Date: "2026-10-19", Day: "Tuesday", Username: "asha.k"}))
	assert.Error(t, v.Struct(req{Date: "2026/10/19", Day: "Tuesday", Username: "asha.k"}))
	assert.Error(t, v.Struct(req{Date: "2026-10-19", Day: "someday", Username: "asha.k"}))
	assert.Error(t, v.Struct(req{Date: "2026-10-19", Day: "Tuesday", Username: "A"}))
}

func TestValidName(t *testing.T) {
	assert.True(t, ValidName("Physics"))
	assert.False(t, ValidName("   "))
	assert.False(t, ValidName(strings.Repeat("x", NameMaxLength+1)))
}

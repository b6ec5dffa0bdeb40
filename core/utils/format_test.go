package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHumanBytes(t *testing.T) {
	assert.Equal(t, "512 B", HumanBytes(512))
	assert.Equal(t, "1.0 KiB", HumanBytes(1024))
	assert.Equal(t, "1.5 MiB", HumanBytes(1572864))
	assert.Equal(t, "2.0 GiB", HumanBytes(2147483648))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 50.0, Percent(50, 100))
	assert.Equal(t, 0.0, Percent(10, 0))
	assert.Equal(t, 33.3, Percent(1, 3))
}

func TestToInt64(t *testing.T) {
	assert.Equal(t, int64(42), ToInt64(42))
	assert.Equal(t, int64(42), ToInt64(int64(42)))
	assert.Equal(t, int64(42), ToInt64(42.9))
	assert.Equal(t, int64(42), ToInt64("42"))
	assert.Equal(t, int64(42), ToInt64("42.5"))
	assert.Equal(t, int64(42), ToInt64([]byte("42")))
	assert.Equal(t, int64(0), ToInt64("not a number"))
	assert.Equal(t, int64(0), ToInt64(nil))
}

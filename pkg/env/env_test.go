package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	t.Setenv("GESTION_TEST_FORMAT", "  console ")
	assert.Equal(t, "console", Get("GESTION_TEST_FORMAT", "json"))

	t.Setenv("GESTION_TEST_FORMAT", "   ")
	assert.Equal(t, "json", Get("GESTION_TEST_FORMAT", "json"))
}

func TestBool(t *testing.T) {
	t.Setenv("GESTION_TEST_FLAG", "true")
	assert.True(t, Bool("GESTION_TEST_FLAG", false))

	t.Setenv("GESTION_TEST_FLAG", "0")
	assert.False(t, Bool("GESTION_TEST_FLAG", true))

	t.Setenv("GESTION_TEST_FLAG", "maybe")
	assert.True(t, Bool("GESTION_TEST_FLAG", true))
}

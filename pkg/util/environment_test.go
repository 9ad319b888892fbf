package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvironmentVariables(t *testing.T) {
	t.Setenv("FINDMYBUS_STATIC_URL", "https://example.com/gtfs.zip")
	t.Setenv("FINDMYBUS_EMPTY", "")
	t.Setenv("OTHER_APP_VALUE", "ignored")

	env := GetEnvironmentVariables()

	assert.Equal(t, "https://example.com/gtfs.zip", env["FINDMYBUS_STATIC_URL"])
	assert.Contains(t, env, "FINDMYBUS_EMPTY")
	assert.NotContains(t, env, "OTHER_APP_VALUE")
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		c := initConfig()
		assert.Equal(t, "0.0.0.0", c.HostIP)
		assert.Equal(t, 8080, c.RESTPort)
		assert.Equal(t, "release", c.GinMode)
		assert.Equal(t, 20, c.MaxMazeDimension)
		assert.Equal(t, 64, c.MaxRuns)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("REST_PORT", "9090")
		t.Setenv("GIN_MODE", "debug")
		t.Setenv("MAX_TICKS", "42")

		c := initConfig()
		assert.Equal(t, 9090, c.RESTPort)
		assert.Equal(t, "debug", c.GinMode)
		assert.Equal(t, 42, c.MaxTicks)
	})
}

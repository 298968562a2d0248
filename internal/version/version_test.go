package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetShortVersion(t *testing.T) {
	previous := BuildVersion
	t.Cleanup(func() { BuildVersion = previous })

	BuildVersion = "v1.4.2"
	assert.Equal(t, "1.4.2", GetShortVersion())
	assert.Contains(t, GetBuildInfo(), "v1.4.2")

	BuildVersion = "dev"
	assert.Equal(t, "dev", GetShortVersion())
}

package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetInfo(t *testing.T) {
	origVersion, origCommit, origDate := Version, Commit, Date
	Version, Commit, Date = "1.2.0", "abc123def456", "2026-01-01T12:00:00Z"
	defer func() { Version, Commit, Date = origVersion, origCommit, origDate }()

	info := GetInfo()

	assert.Equal(t, "1.2.0", info.Version)
	assert.Equal(t, "abc123def456", info.Commit)
	assert.Equal(t, "2026-01-01T12:00:00Z", info.Date)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
}

func TestInfoString(t *testing.T) {
	info := Info{
		Version:   "1.2.0",
		Commit:    "abc123def456",
		Date:      "2026-01-01",
		GoVersion: "go1.24.6",
		Platform:  "linux/amd64",
	}

	s := info.String()
	assert.Contains(t, s, "Habitta 1.2.0")
	assert.Contains(t, s, "abc123de", "commit is truncated to 8 characters")
	assert.Contains(t, s, "linux/amd64")
}

func TestInfoShort(t *testing.T) {
	assert.Equal(t, "1.2.0", Info{Version: "1.2.0"}.Short())
	assert.Equal(t, "dev", Info{Version: "dev"}.Short())
}

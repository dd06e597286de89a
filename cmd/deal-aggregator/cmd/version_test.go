package cmd

import (
	"bytes"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runVersion(t *testing.T, args ...string) string {
	t.Helper()

	var out bytes.Buffer
	c := versionCommand()
	c.SetOut(&out)
	c.SetArgs(args)
	require.NoError(t, c.Execute())
	return out.String()
}

func TestVersionCommand(t *testing.T) {
	assert.Equal(t, Version+"\n", runVersion(t, "--short"))

	full := runVersion(t)
	assert.Contains(t, full, "deal-aggregator "+Version+" (commit ")
	assert.Contains(t, full, runtime.GOOS+"/"+runtime.GOARCH)
}

func TestRevision_PrefersStampedCommit(t *testing.T) {
	orig := Commit
	t.Cleanup(func() { Commit = orig })

	Commit = "0f3c9d1"
	assert.Equal(t, "0f3c9d1", revision())

	Commit = ""
	assert.NotEmpty(t, revision())
}

package lifecycle

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
)

func TestDefaultCommands(t *testing.T) {
	var buf bytes.Buffer
	for _, c := range DefaultLayout().Commands().Named() {
		fmt.Fprintf(&buf, "%s: %s\n", c.Name, c.Command)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "commands", buf.Bytes())
}

func TestCommandsQuoteUnsafeArguments(t *testing.T) {
	layout := DefaultLayout()
	layout.ServerRoot = "tests/serv root"
	layout.ProcessName = "my server"

	c := layout.Commands()
	assert.Contains(t, c.Stop, "grep 'my server' |")
	assert.Contains(t, c.Assemble, "mkdir -p 'tests/serv root' &&")
	assert.Contains(t, c.Assemble, "cp tests/test.conf 'tests/serv root/conf/slardar'")
	assert.Equal(t, "nginx/sbin/nginx -p 'tests/serv root' 1> /dev/null", c.Start)
}

func TestCommandsWithoutStopExcludes(t *testing.T) {
	layout := DefaultLayout()
	layout.StopExcludes = nil
	assert.Equal(t,
		"ps aux | grep nginx | grep -v grep | awk '{print $2}' | xargs kill -9 > /dev/null 2>&1",
		layout.Commands().Stop)
}

func TestLayoutPaths(t *testing.T) {
	layout := DefaultLayout()
	assert.Equal(t, "tests/servroot/logs/error.log", layout.LogPath())
	assert.Equal(t, "tests/servroot/app/etc/config.lua", layout.ConfigPath())
}

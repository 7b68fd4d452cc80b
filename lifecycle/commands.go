package lifecycle

import (
	"path"
	"strings"

	"github.com/alessio/shellescape"
)

// Commands holds the shell command for each lifecycle operation. They are meant to be run by
// "sh -c" with the harness root as the working directory.
type Commands struct {
	// Stop kills every running process matching the layout's ProcessName, except for grep
	// itself and the StopExcludes tools. It exits non-zero if there was nothing to kill.
	Stop string

	// Assemble builds a fresh server root. Steps are chained with && so that the first
	// failure aborts the rest.
	Assemble string

	Start  string
	Reload string
}

type NamedCommand struct {
	Name    string
	Command string
}

// Named returns the commands in the order an orchestrator would use them.
func (c Commands) Named() []NamedCommand {
	return []NamedCommand{
		{"stop", c.Stop},
		{"assemble", c.Assemble},
		{"start", c.Start},
		{"reload", c.Reload},
	}
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

// raw adds shell syntax such as redirections, which must not be quoted.
func (b *commandBuilder) raw(s string) {
	*b = append(*b, s)
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}

func command(args ...string) *commandBuilder {
	var b commandBuilder
	b.add(args...)
	return &b
}

func join(sep string, parts ...*commandBuilder) string {
	ss := make([]string, 0, len(parts))
	for _, p := range parts {
		ss = append(ss, p.String())
	}
	return strings.Join(ss, sep)
}

// Commands builds the command strings for this layout.
func (l Layout) Commands() Commands {
	inRoot := func(rel string) string { return path.Join(l.ServerRoot, rel) }

	stop := []*commandBuilder{
		command("ps", "aux"),
		command("grep", l.ProcessName),
		command("grep", "-v", "grep"),
	}
	for _, name := range l.StopExcludes {
		stop = append(stop, command("grep", "-v", name))
	}
	stop = append(stop, command("awk", "{print $2}"))
	kill := command("xargs", "kill", "-9")
	kill.raw("> /dev/null 2>&1")
	stop = append(stop, kill)

	assemble := []*commandBuilder{
		command("rm", "-rf", l.ServerRoot, l.ScriptRuntimeCopy),
		command("mkdir", "-p", l.ServerRoot),
		command("cp", "-r", l.StockConfig, l.ServerRoot),
		command("cp", l.TestConfig, inRoot(l.TestConfigDest)),
		command("cp", "-r", l.AppSource, l.ServerRoot),
		command("cp", "-r", l.ScriptRuntime, l.ScriptRuntimeCopy),
		command("mkdir", "-p", inRoot(l.LogDir)),
	}

	start := command(l.Binary, "-p", l.ServerRoot)
	start.raw("1> /dev/null")
	reload := command(l.Binary, "-s", "reload", "-p", l.ServerRoot)
	reload.raw("1> /dev/null")

	return Commands{
		Stop:     join(" | ", stop...),
		Assemble: join(" && ", assemble...),
		Start:    start.String(),
		Reload:   reload.String(),
	}
}

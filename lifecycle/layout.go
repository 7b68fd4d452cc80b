package lifecycle

import (
	"path"
	"time"
)

// DefaultTimeout is how long an instance may take to become reachable after Start.
const DefaultTimeout = 15 * time.Second

// Layout describes where everything lives, as slash-separated paths relative to the harness
// root. Paths marked as server-relative are relative to ServerRoot.
type Layout struct {
	ServerRoot string

	// Binary is the service executable; ProcessName is what Stop looks for in the process list.
	Binary       string
	ProcessName  string
	StopExcludes []string

	StockConfig       string
	TestConfig        string
	TestConfigDest    string // server-relative
	AppSource         string
	ScriptRuntime     string
	ScriptRuntimeCopy string

	LogDir     string // server-relative
	ErrorLog   string // server-relative
	LiveConfig string // server-relative
}

func DefaultLayout() Layout {
	return Layout{
		ServerRoot:        "tests/servroot",
		Binary:            "nginx/sbin/nginx",
		ProcessName:       "nginx",
		StopExcludes:      []string{"tail", "vim"},
		StockConfig:       "nginx/conf",
		TestConfig:        "tests/test.conf",
		TestConfigDest:    "conf/slardar",
		AppSource:         "nginx/app",
		ScriptRuntime:     "luajit",
		ScriptRuntimeCopy: "tests/luajit",
		LogDir:            "logs",
		ErrorLog:          "logs/error.log",
		LiveConfig:        "app/etc/config.lua",
	}
}

// LogPath is the instance's error log, relative to the harness root.
func (l Layout) LogPath() string {
	return path.Join(l.ServerRoot, l.ErrorLog)
}

// ConfigPath is the instance's live configuration file, relative to the harness root.
func (l Layout) ConfigPath() string {
	return path.Join(l.ServerRoot, l.LiveConfig)
}

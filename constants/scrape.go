package constants

import (
	"fmt"
	"os"
	"regexp"
	"strconv"

	"github.com/slardar/uptest/paths"
)

var (
	versionPattern = regexp.MustCompile(`slardar\.global\.version = "(\d+\.\d+)\.\d+"`)
	errnoPattern   = regexp.MustCompile(`([A-Z_0-9]+)\s+=\s+\{(\d+),\s+"(.+?)"`)
)

// SourceScraper reads the constants straight out of the service's Lua sources using pattern
// matching. It depends on the formatting of those files; ManifestSource is the alternative
// for when the service publishes a manifest.
type SourceScraper struct {
	InitFile  string
	ErrnoFile string
}

// NewSourceScraper returns a SourceScraper for the standard file locations under the
// harness root.
func NewSourceScraper(p paths.Paths) SourceScraper {
	return SourceScraper{
		InitFile:  p.InitSource(),
		ErrnoFile: p.ErrnoSource(),
	}
}

func (s SourceScraper) Load() (Constants, error) {
	version, err := ExtractVersion(s.InitFile)
	if err != nil {
		return Constants{}, err
	}
	table, err := ExtractErrors(s.ErrnoFile)
	if err != nil {
		return Constants{}, err
	}
	return Constants{Version: version, Errors: table}, nil
}

// ExtractVersion reads the init source file and returns the MAJOR.MINOR part of the first
// `slardar.global.version = "MAJOR.MINOR.PATCH"` declaration in it.
func ExtractVersion(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("cannot read version source: %w", err)
	}
	version, err := ParseVersion(string(data))
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return version, nil
}

func ParseVersion(text string) (string, error) {
	m := versionPattern.FindStringSubmatch(text)
	if m == nil {
		return "", ErrVersionNotFound
	}
	return m[1], nil
}

// ExtractErrors reads the error-definitions source file and builds an ErrorTable from every
// `NAME = {CODE, "MESSAGE"` declaration in it. If a name is declared more than once, the last
// declaration wins.
func ExtractErrors(path string) (ErrorTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ErrorTable{}, fmt.Errorf("cannot read error definitions: %w", err)
	}
	table, err := ParseErrors(string(data))
	if err != nil {
		return ErrorTable{}, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

func ParseErrors(text string) (ErrorTable, error) {
	codes := make(map[string]int)
	for _, m := range errnoPattern.FindAllStringSubmatch(text, -1) {
		// m[3] is the message, which nothing needs
		code, err := strconv.Atoi(m[2])
		if err != nil {
			return ErrorTable{}, fmt.Errorf("invalid code for %s: %w", m[1], err)
		}
		codes[m[1]] = code
	}
	return ErrorTable{codes: codes}, nil
}

package constants

import (
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/slardar/uptest/servicedef"

	"gopkg.in/yaml.v3"
)

var (
	manifestVersionPattern = regexp.MustCompile(`^(\d+\.\d+)(?:\.\d+)?$`)
	errorNamePattern       = regexp.MustCompile(`^[A-Z_0-9]+$`)
)

// ManifestSource loads constants from a YAML manifest in the servicedef.Manifest format.
type ManifestSource struct {
	Path string
}

func (s ManifestSource) Load() (Constants, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return Constants{}, fmt.Errorf("cannot read constants manifest: %w", err)
	}
	c, err := ParseManifest(data)
	if err != nil {
		return Constants{}, fmt.Errorf("%s: %w", s.Path, err)
	}
	return c, nil
}

// ParseManifest decodes a manifest document. The version may be given either as MAJOR.MINOR
// or MAJOR.MINOR.PATCH; it is reduced to MAJOR.MINOR either way.
func ParseManifest(data []byte) (Constants, error) {
	var m servicedef.Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Constants{}, fmt.Errorf("malformed constants manifest: %w", err)
	}
	vm := manifestVersionPattern.FindStringSubmatch(m.Version)
	if vm == nil {
		return Constants{}, ErrVersionNotFound
	}
	codes := make(map[string]int, len(m.Errors))
	for name, def := range m.Errors {
		if !errorNamePattern.MatchString(name) {
			return Constants{}, fmt.Errorf("invalid error constant name %q", name)
		}
		if def.Code < 0 {
			return Constants{}, fmt.Errorf("negative code %d for %s", def.Code, name)
		}
		codes[name] = def.Code
	}
	return Constants{Version: vm[1], Errors: ErrorTable{codes: codes}}, nil
}

// WriteManifest encodes the constants as a manifest document, so that a service that does not
// yet publish one can be given one generated from its current sources.
func WriteManifest(w io.Writer, c Constants) error {
	m := servicedef.Manifest{
		Version: c.Version,
		Errors:  make(map[string]servicedef.ErrorDef, c.Errors.Len()),
	}
	for name, code := range c.Errors.codes {
		m.Errors[name] = servicedef.ErrorDef{Code: code}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return err
	}
	return enc.Close()
}

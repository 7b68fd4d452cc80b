// Package constants recovers the identifiers that the service under test defines for itself,
// namely its MAJOR.MINOR version and its table of symbolic error codes, so that assertions can
// refer to them by name instead of repeating their values.
//
// The values are loaded once through a ConstantSource during harness initialization and then
// passed around as a read-only Constants value.
package constants

import (
	"errors"
	"sort"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// ErrVersionNotFound means the source did not contain a recognizable version declaration.
var ErrVersionNotFound = errors.New("service version declaration not found")

// ConstantSource is anything that can produce the service's constants.
type ConstantSource interface {
	Load() (Constants, error)
}

// Constants is the result of loading a ConstantSource.
type Constants struct {
	// Version is always of the form MAJOR.MINOR.
	Version string
	Errors  ErrorTable
}

// ErrorTable maps symbolic error names such as INVALID_PARAMS to their numeric codes. The zero
// value is an empty table. It is immutable once built, so it can be shared freely.
type ErrorTable struct {
	codes map[string]int
}

// NewErrorTable builds an ErrorTable from a copy of the given map.
func NewErrorTable(codes map[string]int) ErrorTable {
	m := make(map[string]int, len(codes))
	for k, v := range codes {
		m[k] = v
	}
	return ErrorTable{codes: m}
}

// Lookup returns the code for a symbolic name. If the name is not a known error constant, the
// result is an empty OptionalInt, which is distinct from a defined code of zero.
func (t ErrorTable) Lookup(name string) ldvalue.OptionalInt {
	if code, ok := t.codes[name]; ok {
		return ldvalue.NewOptionalInt(code)
	}
	return ldvalue.OptionalInt{}
}

// Has reports whether name is a known error constant.
func (t ErrorTable) Has(name string) bool {
	_, ok := t.codes[name]
	return ok
}

func (t ErrorTable) Len() int {
	return len(t.codes)
}

// Names returns the known symbolic names in sorted order.
func (t ErrorTable) Names() []string {
	ret := make([]string, 0, len(t.codes))
	for name := range t.codes {
		ret = append(ret, name)
	}
	sort.Strings(ret)
	return ret
}

// Map returns a copy of the table's contents.
func (t ErrorTable) Map() map[string]int {
	ret := make(map[string]int, len(t.codes))
	for k, v := range t.codes {
		ret[k] = v
	}
	return ret
}

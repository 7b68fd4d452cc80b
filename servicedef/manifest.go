// Package servicedef describes the machine-readable manifest through which the service under
// test can publish its version and error constants, as an alternative to reading them out of
// its Lua sources.
package servicedef

// Manifest is the YAML document form of the service's constants.
//
//	version: "1.14.2"
//	errors:
//	  INVALID_PARAMS:
//	    code: 1001
//	    message: bad request
type Manifest struct {
	Version string              `yaml:"version"`
	Errors  map[string]ErrorDef `yaml:"errors"`
}

type ErrorDef struct {
	Code    int    `yaml:"code"`
	Message string `yaml:"message,omitempty"`
}

// Package lifecycle controls the disposable service instance that the tests run against.
//
// The operations are declared as shell commands (see Commands), which are run from the
// harness root. External tooling can take those strings and run them itself; within the
// harness, ServiceInstance runs them through a Runner and tracks the instance state:
//
//	STOPPED --Assemble--> ASSEMBLED --Start--> RUNNING --Reload--> RUNNING
//	   ^                                          |
//	   +------------------Stop--------------------+
//
// Stop is accepted in every state. Assemble is accepted when STOPPED or ASSEMBLED, and always
// rebuilds the server root from scratch, so a second Assemble simply replaces the first one.
package lifecycle

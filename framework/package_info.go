// Package framework contains the infrastructure for running the service tests, independent of
// what the individual tests check.
//
// The general model is:
//
// 1. At setup, the TestHarness loads the service's constants, then stops any stray server
// processes, assembles a fresh server root, starts the service instance and waits until it
// answers HTTP requests.
//
// 2. There is a general notion of a test context which is similar to Go's *testing.T,
// allowing pieces of test logic to be associated with a test identifier and to accumulate
// success/failure results. Sibling tests may be run in random order.
//
// 3. All tests share the one running instance. A test that changes the instance's
// configuration must reload it, and such tests must not overlap with each other.
//
// The domain-specific code that knows what is being tested provides the requests to send and
// the checks to make on top of the test context.
package framework

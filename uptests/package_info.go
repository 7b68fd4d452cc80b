// Package uptests contains the service tests and the API they are written against.
//
// Infrastructure that does not depend on what is being tested, such as bringing up the
// service instance and collecting results, is in the lower-level framework package.
package uptests

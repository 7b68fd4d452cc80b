package uptests

import (
	"regexp"

	"github.com/stretchr/testify/assert"
)

var versionFormat = regexp.MustCompile(`^\d+\.\d+$`)

func DoConstantTests(t *T) {
	t.RunGroup(
		TestCase{"version is MAJOR.MINOR", func(t *T) {
			assert.Regexp(t, versionFormat, t.Version())
		}},
		TestCase{"error table is not empty", func(t *T) {
			assert.NotZero(t, t.Errors().Len(), "no error constants were found")
		}},
		TestCase{"error codes are not negative", func(t *T) {
			for _, name := range t.Errors().Names() {
				assert.GreaterOrEqual(t, t.RequireErrno(name), 0, name)
			}
		}},
		TestCase{"unknown error name is absent", func(t *T) {
			assert.False(t, t.Errno("NOT_A_REAL_ERROR").IsDefined())
		}},
	)
}

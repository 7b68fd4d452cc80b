package uptests

import (
	"github.com/slardar/uptest/framework"
)

func RunTestSuite(
	harness *framework.TestHarness,
	filter framework.Filter,
	testLogger framework.TestLogger,
	ordering framework.Ordering,
) framework.Results {
	return framework.Run(filter, testLogger, ordering, func(c *framework.Context) {
		t := newTestScope(c, harness)

		t.RunGroup(
			TestCase{"constants", DoConstantTests},
			TestCase{"fixtures", DoFixtureTests},
		)
		// reloading changes the shared instance, so this always runs on its own
		t.Run("lifecycle", DoLifecycleTests)
	})
}

package uptests

import (
	"os"

	"github.com/slardar/uptest/fixtures"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func DoFixtureTests(t *T) {
	t.RunGroup(
		TestCase{"fixtures are read consistently", func(t *T) {
			for _, name := range fixtureNames(t) {
				assert.Equal(t, fixtures.Digest(t.Fixture(name)), fixtures.Digest(t.Fixture(name)), name)
			}
		}},
	)
}

func fixtureNames(t *T) []string {
	entries, err := os.ReadDir(t.harness.Fixtures().Dir)
	if os.IsNotExist(err) {
		t.context.SkipWithReason("no fixtures directory")
	}
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	return names
}

package uptests

import (
	"github.com/slardar/uptest/lifecycle"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reloadMarker = "\n-- uptest: reload check\n"

func DoLifecycleTests(t *T) {
	t.Run("instance is running", func(t *T) {
		assert.Equal(t, lifecycle.Running, t.harness.Instance().State())
		resp := t.Get("/")
		assert.NotZero(t, resp.Status)
	})

	t.Run("error log exists", func(t *T) {
		assert.FileExists(t, t.harness.Instance().LogPath())
	})

	t.Run("reload after config edit", func(t *T) {
		t.EditConfig(func(config string) string { return config + reloadMarker })

		resp := t.Get("/")
		assert.NotZero(t, resp.Status)
		require.Equal(t, lifecycle.Running, t.harness.Instance().State())
		assert.NotContains(t, t.ErrorLog(), "[emerg]")
	})
}

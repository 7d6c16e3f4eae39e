package admin_test

import (
	"sync"
	"testing"

	"Food-Rescue-Backend/domain"
	"Food-Rescue-Backend/pkg/admin"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWidgetConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := admin.NewWidgetConfig().Snapshot()
		assert.Equal(t, []string{"weekly-donations", "top-users"}, cfg.PermanentWidgets)
		assert.Equal(t, []string{"location-stats"}, cfg.OptionalWidgets)
	})

	t.Run("add optional, reject unknown, remove permanent", func(t *testing.T) {
		widgets := admin.NewWidgetConfig()

		cfg, err := widgets.Update("location-stats", "")
		require.NoError(t, err)
		assert.Equal(t, []string{"weekly-donations", "top-users", "location-stats"}, cfg.PermanentWidgets)

		cfg, err = widgets.Update("unknown-widget", "")
		assert.ErrorIs(t, err, domain.ErrInvalidWidget)
		assert.Equal(t, []string{"weekly-donations", "top-users", "location-stats"}, cfg.PermanentWidgets)

		cfg, err = widgets.Update("", "top-users")
		require.NoError(t, err)
		assert.Equal(t, []string{"weekly-donations", "location-stats"}, cfg.PermanentWidgets)
	})

	t.Run("no-ops", func(t *testing.T) {
		widgets := admin.NewWidgetConfig()

		cfg, err := widgets.Update("top-users", "not-there")
		require.NoError(t, err)
		assert.Equal(t, []string{"weekly-donations", "top-users"}, cfg.PermanentWidgets)
	})

	t.Run("rejected add does not apply remove", func(t *testing.T) {
		widgets := admin.NewWidgetConfig()

		_, err := widgets.Update("unknown-widget", "top-users")
		assert.ErrorIs(t, err, domain.ErrInvalidWidget)
		assert.Contains(t, widgets.Snapshot().PermanentWidgets, "top-users")
	})

	t.Run("snapshot is a copy", func(t *testing.T) {
		widgets := admin.NewWidgetConfig()
		cfg := widgets.Snapshot()
		cfg.PermanentWidgets[0] = "mutated"

		assert.Equal(t, "weekly-donations", widgets.Snapshot().PermanentWidgets[0])
	})

	t.Run("concurrent updates", func(t *testing.T) {
		widgets := admin.NewWidgetConfig()

		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				_, _ = widgets.Update("location-stats", "")
			}()
			go func() {
				defer wg.Done()
				_ = widgets.Snapshot()
			}()
		}
		wg.Wait()

		assert.Equal(t, []string{"weekly-donations", "top-users", "location-stats"}, widgets.Snapshot().PermanentWidgets)
	})
}

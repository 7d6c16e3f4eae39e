package admin

import (
	"slices"
	"sync"

	"Food-Rescue-Backend/domain"
)

var (
	defaultPermanentWidgets = []string{"weekly-donations", "top-users"}
	defaultOptionalWidgets  = []string{"location-stats"}
)

// WidgetConfig holds the admin dashboard layout. It lives in memory and is
// reset on restart.
type WidgetConfig struct {
	mu        sync.RWMutex
	permanent []string
	optional  []string
}

func NewWidgetConfig() *WidgetConfig {
	return &WidgetConfig{
		permanent: slices.Clone(defaultPermanentWidgets),
		optional:  slices.Clone(defaultOptionalWidgets),
	}
}

func (w *WidgetConfig) Snapshot() domain.DashboardConfig {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.snapshot()
}

// Update adds then removes a widget. Adding a widget that is already
// permanent is a no-op; adding one outside the optional catalog fails with
// ErrInvalidWidget and leaves the layout untouched. Removing a widget that
// is not permanent is a no-op.
func (w *WidgetConfig) Update(add, remove string) (domain.DashboardConfig, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if add != "" && !slices.Contains(w.permanent, add) {
		if !slices.Contains(w.optional, add) {
			return w.snapshot(), domain.ErrInvalidWidget
		}
		w.permanent = append(w.permanent, add)
	}

	if remove != "" {
		w.permanent = slices.DeleteFunc(w.permanent, func(widget string) bool {
			return widget == remove
		})
	}

	return w.snapshot(), nil
}

func (w *WidgetConfig) snapshot() domain.DashboardConfig {
	return domain.DashboardConfig{
		PermanentWidgets: slices.Clone(w.permanent),
		OptionalWidgets:  slices.Clone(w.optional),
	}
}

package preference

import "context"

// Known preference keys.
const (
	KeySidebarCollapsed = "sidebar_collapsed"
)

// Store persists per-user UI preferences.
type Store interface {
	Get(ctx context.Context, personID int, key string) (string, error)
	Set(ctx context.Context, personID int, key, value string) error
}

package repository

import "context"

// PreferenceRepo stores string values in namespaced key slots.
type PreferenceRepo interface {
	Get(ctx context.Context, namespace, key string) (string, error)
	Put(ctx context.Context, namespace, key, value string) error
}

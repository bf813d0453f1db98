// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "context"

// SnapshotCache keeps the last successfully computed payloads so display
// endpoints can degrade to last-known data when a collaborator fails.
type SnapshotCache interface {
	// Save stores value under key, replacing any previous snapshot.
	Save(ctx context.Context, key string, value any) error

	// Load decodes the snapshot stored under key into dest.
	// It returns false when no snapshot exists.
	Load(ctx context.Context, key string, dest any) (bool, error)
}

// Package gateway speaks the daemon's RPC surface. The five operations
// mirror the wire contract exactly; every call is context-bound and may
// fail with an opaque error that callers display but never inspect.
package gateway

import (
	"context"

	"github.com/stride-app/stride/internal/models"
)

// Gateway is the backend process as seen by the dispatch pipeline.
//
//go:generate mockgen -source=gateway.go -destination=mock_gateway.go -package=gateway
type Gateway interface {
	// Load primes backend session state. Called once at startup
	// before the first Fetch.
	Load(ctx context.Context) error

	// Fetch returns the complete authoritative snapshot, or (nil, nil)
	// when the backend has nothing to report. It never mutates
	// backend state.
	Fetch(ctx context.Context) (*models.FrontendState, error)

	// AppCommand submits a commandline buffer (mode marker already
	// stripped). The result string is logged, not otherwise consumed.
	AppCommand(ctx context.Context, command string) (string, error)

	// CursorAction moves selection within the goal hierarchy.
	CursorAction(ctx context.Context, action models.CursorAction) error

	// SetActiveActivity switches the top-level view.
	SetActiveActivity(ctx context.Context, activity models.ActiveActivity) error
}

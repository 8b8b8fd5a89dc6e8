package activity

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// activityAdapter wraps the activity ServiceContainer behind the
// ActivityPort interface.
type activityAdapter struct {
	container mono.ServiceContainer
}

// NewActivityAdapter creates an adapter for the activity services.
func NewActivityAdapter(container mono.ServiceContainer) ActivityPort {
	if container == nil {
		panic("activity adapter requires non-nil ServiceContainer")
	}
	return &activityAdapter{container: container}
}

// Recent returns the newest feed entries.
func (a *activityAdapter) Recent(ctx context.Context, limit int) ([]Entry, error) {
	var resp RecentResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "recent", json.Marshal, json.Unmarshal,
		RecentRequest{Limit: limit}, &resp,
	); err != nil {
		return nil, fmt.Errorf("recent service call failed: %w", err)
	}
	return resp.Entries, nil
}

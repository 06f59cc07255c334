package mutation

import (
	"context"
	"strings"

	"github.com/louisbranch/culater/internal/services/dashboard/coordinator"
	"github.com/louisbranch/culater/internal/services/dashboard/domain"
	"github.com/louisbranch/culater/internal/services/dashboard/gateway"
	apperrors "github.com/louisbranch/culater/internal/services/dashboard/platform/errors"
)

func validateGroup(name string) error {
	if strings.TrimSpace(name) == "" {
		return apperrors.Validation(map[string]string{"name": "group name is required"})
	}
	return nil
}

// CreateGroup creates a group owned by the caller and refreshes groups.
func (p *Pipeline) CreateGroup(ctx context.Context, name, description string) (domain.Group, error) {
	if err := validateGroup(name); err != nil {
		return domain.Group{}, err
	}
	done := p.begin(coordinator.ActionCreateGroup)
	defer done()

	group, err := p.api.CreateGroup(ctx, gateway.GroupRequest{
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
	})
	if err != nil {
		return domain.Group{}, err
	}
	return group, p.invalidate(ctx, coordinator.ActionCreateGroup)
}

// UpdateGroup renames or re-describes a group and refreshes groups.
func (p *Pipeline) UpdateGroup(ctx context.Context, id int64, name, description string) (domain.Group, error) {
	if err := validateGroup(name); err != nil {
		return domain.Group{}, err
	}
	if id <= 0 {
		return domain.Group{}, apperrors.Validation(map[string]string{"group_id": "select a group"})
	}
	done := p.begin(coordinator.ActionUpdateGroup)
	defer done()

	group, err := p.api.UpdateGroup(ctx, id, gateway.GroupRequest{
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
	})
	if err != nil {
		return domain.Group{}, err
	}
	return group, p.invalidate(ctx, coordinator.ActionUpdateGroup)
}

// LeaveGroup removes the caller from a group. Membership is re-read from the
// server; the group stays in the cache until the refresh replaces it.
func (p *Pipeline) LeaveGroup(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.Validation(map[string]string{"group_id": "select a group"})
	}
	done := p.begin(coordinator.ActionLeaveGroup)
	defer done()

	if err := p.api.LeaveGroup(ctx, id); err != nil {
		return err
	}
	return p.invalidate(ctx, coordinator.ActionLeaveGroup)
}

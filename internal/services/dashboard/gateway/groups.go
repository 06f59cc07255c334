package gateway

import (
	"context"
	"net/http"
	"strconv"

	"github.com/louisbranch/culater/internal/services/dashboard/domain"
)

// GroupRequest is the create/update group body.
type GroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type groupsEnvelope struct {
	Groups []domain.Group `json:"groups"`
}

type groupEnvelope struct {
	Group domain.Group `json:"group"`
}

func groupPath(id int64, suffix string) string {
	return "/api/groups/" + strconv.FormatInt(id, 10) + suffix
}

// ListGroups returns the caller's groups.
func (c *Client) ListGroups(ctx context.Context) ([]domain.Group, error) {
	var resp groupsEnvelope
	if err := c.do(ctx, call{name: "groups.list", method: http.MethodGet, path: "/api/groups/", out: &resp, sessionBound: true}); err != nil {
		return nil, err
	}
	if resp.Groups == nil {
		return []domain.Group{}, nil
	}
	return resp.Groups, nil
}

// GetGroup returns one group including its member list.
func (c *Client) GetGroup(ctx context.Context, id int64) (domain.Group, error) {
	var resp groupEnvelope
	if err := c.do(ctx, call{name: "groups.get", method: http.MethodGet, path: groupPath(id, ""), out: &resp, sessionBound: true}); err != nil {
		return domain.Group{}, err
	}
	return resp.Group, nil
}

// CreateGroup creates a group owned by the caller.
func (c *Client) CreateGroup(ctx context.Context, req GroupRequest) (domain.Group, error) {
	var resp groupEnvelope
	if err := c.do(ctx, call{name: "groups.create", method: http.MethodPost, path: "/api/groups/", body: req, out: &resp, sessionBound: true}); err != nil {
		return domain.Group{}, err
	}
	return resp.Group, nil
}

// UpdateGroup renames or re-describes a group.
func (c *Client) UpdateGroup(ctx context.Context, id int64, req GroupRequest) (domain.Group, error) {
	var resp groupEnvelope
	if err := c.do(ctx, call{name: "groups.update", method: http.MethodPut, path: groupPath(id, ""), body: req, out: &resp, sessionBound: true}); err != nil {
		return domain.Group{}, err
	}
	return resp.Group, nil
}

// LeaveGroup removes the caller from a group.
func (c *Client) LeaveGroup(ctx context.Context, id int64) error {
	return c.do(ctx, call{name: "groups.leave", method: http.MethodPost, path: groupPath(id, "/leave"), sessionBound: true})
}

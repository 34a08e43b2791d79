package groupme

import (
	"context"
	"fmt"
	"strconv"

	"github.com/guarzo/groupmeapi/common/model"
)

// This file covers the group and membership endpoints.

// IndexGroups lists the authenticated user's active groups. page and perPage
// are passed through when positive; omitMemberships skips the member lists
// for a lighter payload.
func (s *service) IndexGroups(ctx context.Context, page, perPage int, omitMemberships bool) ([]model.Group, error) {
	params := map[string]string{}
	if page > 0 {
		params["page"] = strconv.Itoa(page)
	}
	if perPage > 0 {
		params["per_page"] = strconv.Itoa(perPage)
	}
	if omitMemberships {
		params["omit"] = "memberships"
	}
	var groups []model.Group
	if err := s.getJSON(ctx, "groups", params, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// IndexFormerGroups lists groups the user has left but can rejoin.
func (s *service) IndexFormerGroups(ctx context.Context) ([]model.Group, error) {
	var groups []model.Group
	if err := s.getJSON(ctx, "groups/former", nil, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// ShowGroup loads a single group, members included.
func (s *service) ShowGroup(ctx context.Context, groupID string) (*model.Group, error) {
	var group model.Group
	if err := s.getJSON(ctx, fmt.Sprintf("groups/%s", groupID), nil, &group); err != nil {
		return nil, err
	}
	return &group, nil
}

// CreateGroup creates a group. The name is truncated to 140 characters and
// the description to 255 before sending.
func (s *service) CreateGroup(ctx context.Context, name, description, imageURL string, share bool) (*model.Group, error) {
	body := map[string]interface{}{
		"name":        truncate(name, MaxGroupNameLength),
		"description": truncate(description, MaxGroupDescLength),
		"share":       share,
	}
	if imageURL != "" {
		body["image_url"] = imageURL
	}
	var group model.Group
	if err := s.postJSON(ctx, "groups", nil, body, &group); err != nil {
		return nil, err
	}
	return &group, nil
}

// UpdateGroup changes a group's settings, applying the same truncation rules
// as CreateGroup.
func (s *service) UpdateGroup(ctx context.Context, groupID, name, description, imageURL string, officeMode bool) (*model.Group, error) {
	body := map[string]interface{}{
		"office_mode": officeMode,
	}
	if name != "" {
		body["name"] = truncate(name, MaxGroupNameLength)
	}
	if description != "" {
		body["description"] = truncate(description, MaxGroupDescLength)
	}
	if imageURL != "" {
		body["image_url"] = imageURL
	}
	var group model.Group
	if err := s.postJSON(ctx, fmt.Sprintf("groups/%s/update", groupID), nil, body, &group); err != nil {
		return nil, err
	}
	return &group, nil
}

// DestroyGroup disbands a group the user owns.
func (s *service) DestroyGroup(ctx context.Context, groupID string) error {
	return s.postJSON(ctx, fmt.Sprintf("groups/%s/destroy", groupID), nil, nil, nil)
}

// JoinGroup joins a shared group via its share token.
func (s *service) JoinGroup(ctx context.Context, groupID, shareToken string) (*model.Group, error) {
	var payload struct {
		Group model.Group `json:"group"`
	}
	path := fmt.Sprintf("groups/%s/join/%s", groupID, shareToken)
	if err := s.postJSON(ctx, path, nil, nil, &payload); err != nil {
		return nil, err
	}
	return &payload.Group, nil
}

// RejoinGroup rejoins a group the user previously left.
func (s *service) RejoinGroup(ctx context.Context, groupID string) (*model.Group, error) {
	body := map[string]string{"group_id": groupID}
	var group model.Group
	if err := s.postJSON(ctx, "groups/join", nil, body, &group); err != nil {
		return nil, err
	}
	return &group, nil
}

// ChangeGroupOwner transfers ownership of a group to another member.
func (s *service) ChangeGroupOwner(ctx context.Context, groupID, ownerID string) error {
	body := map[string]interface{}{
		"requests": []map[string]string{
			{"group_id": groupID, "owner_id": ownerID},
		},
	}
	return s.postJSON(ctx, "groups/change_owners", nil, body, nil)
}

// AddMembers starts an asynchronous add of one or more members; poll
// AddMembersResults with the returned results id.
func (s *service) AddMembers(ctx context.Context, groupID string, members []model.NewMember) (*model.MemberAddResult, error) {
	// truncate on a copy so the caller's slice stays untouched
	toAdd := make([]model.NewMember, len(members))
	copy(toAdd, members)
	for i := range toAdd {
		toAdd[i].Nickname = truncate(toAdd[i].Nickname, MaxNicknameLength)
	}
	body := map[string]interface{}{"members": toAdd}
	var result model.MemberAddResult
	if err := s.postJSON(ctx, fmt.Sprintf("groups/%s/members/add", groupID), nil, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AddMembersResults fetches the outcome of an earlier AddMembers call.
func (s *service) AddMembersResults(ctx context.Context, groupID, resultsID string) ([]model.Member, error) {
	var payload struct {
		Members []model.Member `json:"members"`
	}
	path := fmt.Sprintf("groups/%s/members/results/%s", groupID, resultsID)
	if err := s.getJSON(ctx, path, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Members, nil
}

// RemoveMember removes a membership (not a user id) from a group.
func (s *service) RemoveMember(ctx context.Context, groupID, membershipID string) error {
	path := fmt.Sprintf("groups/%s/members/%s/remove", groupID, membershipID)
	return s.postJSON(ctx, path, nil, nil, nil)
}

// UpdateMyNickname changes the caller's nickname in a group, truncated to 50
// characters.
func (s *service) UpdateMyNickname(ctx context.Context, groupID, nickname string) (*model.Member, error) {
	body := map[string]interface{}{
		"membership": map[string]string{
			"nickname": truncate(nickname, MaxNicknameLength),
		},
	}
	var member model.Member
	path := fmt.Sprintf("groups/%s/memberships/update", groupID)
	if err := s.postJSON(ctx, path, nil, body, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

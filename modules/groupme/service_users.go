package groupme

import (
	"context"
	"strconv"

	"github.com/guarzo/groupmeapi/common/model"
)

// This file covers the user, SMS mode and block endpoints.

// GetMe returns the authenticated user's profile.
func (s *service) GetMe(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := s.getJSON(ctx, "users/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateMe changes profile attributes; empty arguments are left untouched.
func (s *service) UpdateMe(ctx context.Context, avatarURL, name, email, zipCode string) (*model.User, error) {
	body := map[string]string{}
	if avatarURL != "" {
		body["avatar_url"] = avatarURL
	}
	if name != "" {
		body["name"] = name
	}
	if email != "" {
		body["email"] = email
	}
	if zipCode != "" {
		body["zip_code"] = zipCode
	}
	var user model.User
	if err := s.postJSON(ctx, "users/update", nil, body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// EnableSmsMode routes notifications to SMS for up to 48 hours. duration is
// in hours; registrationID, when non-empty, suppresses push to that device.
func (s *service) EnableSmsMode(ctx context.Context, duration int, registrationID string) error {
	body := map[string]string{"duration": strconv.Itoa(duration)}
	if registrationID != "" {
		body["registration_id"] = registrationID
	}
	return s.postJSON(ctx, "users/sms_mode", nil, body, nil)
}

// DisableSmsMode turns SMS mode off again.
func (s *service) DisableSmsMode(ctx context.Context) error {
	return s.postJSON(ctx, "users/sms_mode/delete", nil, nil, nil)
}

// IndexBlocks lists the users blocked by userID.
func (s *service) IndexBlocks(ctx context.Context, userID string) ([]model.Block, error) {
	var payload struct {
		Blocks []model.Block `json:"blocks"`
	}
	if err := s.getJSON(ctx, "blocks", map[string]string{"user": userID}, &payload); err != nil {
		return nil, err
	}
	return payload.Blocks, nil
}

// BlockBetween reports whether a block exists between two users in either
// direction.
func (s *service) BlockBetween(ctx context.Context, userID, otherUserID string) (bool, error) {
	params := map[string]string{"user": userID, "otherUser": otherUserID}
	var payload struct {
		Between bool `json:"between"`
	}
	if err := s.getJSON(ctx, "blocks/between", params, &payload); err != nil {
		return false, err
	}
	return payload.Between, nil
}

// CreateBlock blocks otherUserID on behalf of userID.
func (s *service) CreateBlock(ctx context.Context, userID, otherUserID string) (*model.Block, error) {
	params := map[string]string{"user": userID, "otherUser": otherUserID}
	var payload struct {
		Block model.Block `json:"block"`
	}
	if err := s.postJSON(ctx, "blocks", params, nil, &payload); err != nil {
		return nil, err
	}
	return &payload.Block, nil
}

// DestroyBlock removes a block.
func (s *service) DestroyBlock(ctx context.Context, userID, otherUserID string) error {
	params := map[string]string{"user": userID, "otherUser": otherUserID}
	return s.postJSON(ctx, "blocks/delete", params, nil, nil)
}

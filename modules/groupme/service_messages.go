package groupme

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/guarzo/groupmeapi/common/model"
)

// This file covers messages, direct messages, chats and likes, including the
// composition pipeline (attachment filtering, mention resolution, splitting
// of oversized text).

// IndexMessages pages through a group's messages. The before/since/after
// cursors are passed through untouched when non-empty; limit caps the page
// size when positive.
func (s *service) IndexMessages(ctx context.Context, groupID, beforeID, sinceID, afterID string, limit int) (*model.MessageList, error) {
	params := map[string]string{}
	if beforeID != "" {
		params["before_id"] = beforeID
	}
	if sinceID != "" {
		params["since_id"] = sinceID
	}
	if afterID != "" {
		params["after_id"] = afterID
	}
	if limit > 0 {
		params["limit"] = strconv.Itoa(limit)
	}
	var list model.MessageList
	if err := s.getJSON(ctx, fmt.Sprintf("groups/%s/messages", groupID), params, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// CreateMessage posts text to a group. Malformed attachments are dropped
// before sending; text longer than the split threshold goes out as several
// sequential messages, each segment keeping its trailing newline.
// Attachments ride on the first segment only. All created messages are
// returned in send order; on a mid-sequence failure the messages already
// sent are returned alongside the error.
func (s *service) CreateMessage(ctx context.Context, groupID, text string, attachments []model.Attachment) ([]model.Message, error) {
	kept, _ := FilterAttachments(attachments)
	segments := SplitMessage(text, "\n", MessageSplitThreshold)

	var sent []model.Message
	for i, segment := range segments {
		message := map[string]interface{}{
			"source_guid": uuid.NewString(),
			"text":        segment,
		}
		if i == 0 && len(kept) > 0 {
			message["attachments"] = kept
		}
		body := map[string]interface{}{"message": message}

		var payload struct {
			Message model.Message `json:"message"`
		}
		path := fmt.Sprintf("groups/%s/messages", groupID)
		if err := s.postJSON(ctx, path, nil, body, &payload); err != nil {
			return sent, err
		}
		sent = append(sent, payload.Message)
	}
	return sent, nil
}

// CreateMessageWithMentions resolves the given member names against the
// group's current membership and posts the message with a mentions
// attachment when any name survives. Names not found in the text or not
// present in the group are dropped silently.
func (s *service) CreateMessageWithMentions(ctx context.Context, groupID string, names []string, text string) ([]model.Message, error) {
	group, err := s.ShowGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	var attachments []model.Attachment
	if att := NamedMentions(group.Members, names, text); att != nil {
		attachments = append(attachments, *att)
	}
	return s.CreateMessage(ctx, groupID, text, attachments)
}

// CreateMessageAllMention posts a message that mentions every current group
// member when the text opens with "@all"; otherwise it behaves like a plain
// CreateMessage.
func (s *service) CreateMessageAllMention(ctx context.Context, groupID, text string) ([]model.Message, error) {
	group, err := s.ShowGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	var attachments []model.Attachment
	if att := AllMembersMention(group.Members, text); att != nil {
		attachments = append(attachments, *att)
	}
	return s.CreateMessage(ctx, groupID, text, attachments)
}

// IndexChats lists the user's one-on-one conversations.
func (s *service) IndexChats(ctx context.Context, page, perPage int) ([]model.Chat, error) {
	params := map[string]string{}
	if page > 0 {
		params["page"] = strconv.Itoa(page)
	}
	if perPage > 0 {
		params["per_page"] = strconv.Itoa(perPage)
	}
	var chats []model.Chat
	if err := s.getJSON(ctx, "chats", params, &chats); err != nil {
		return nil, err
	}
	return chats, nil
}

// IndexDirectMessages pages through the conversation with another user.
func (s *service) IndexDirectMessages(ctx context.Context, otherUserID, beforeID, sinceID string) (*model.DirectMessageList, error) {
	params := map[string]string{"other_user_id": otherUserID}
	if beforeID != "" {
		params["before_id"] = beforeID
	}
	if sinceID != "" {
		params["since_id"] = sinceID
	}
	var list model.DirectMessageList
	if err := s.getJSON(ctx, "direct_messages", params, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// CreateDirectMessage sends a one-on-one message. The same attachment
// filtering applies as for group messages; direct messages are never split.
func (s *service) CreateDirectMessage(ctx context.Context, otherUserID, text string, attachments []model.Attachment) (*model.DirectMessage, error) {
	kept, _ := FilterAttachments(attachments)
	message := map[string]interface{}{
		"source_guid":  uuid.NewString(),
		"recipient_id": otherUserID,
		"text":         text,
	}
	if len(kept) > 0 {
		message["attachments"] = kept
	}
	body := map[string]interface{}{"direct_message": message}

	var payload struct {
		DirectMessage model.DirectMessage `json:"direct_message"`
	}
	if err := s.postJSON(ctx, "direct_messages", nil, body, &payload); err != nil {
		return nil, err
	}
	return &payload.DirectMessage, nil
}

// CreateLike likes a message in a group or chat conversation.
func (s *service) CreateLike(ctx context.Context, conversationID, messageID string) error {
	path := fmt.Sprintf("messages/%s/%s/like", conversationID, messageID)
	return s.postJSON(ctx, path, nil, nil, nil)
}

// DestroyLike removes a like.
func (s *service) DestroyLike(ctx context.Context, conversationID, messageID string) error {
	path := fmt.Sprintf("messages/%s/%s/unlike", conversationID, messageID)
	return s.postJSON(ctx, path, nil, nil, nil)
}

// LikesLeaderboard returns a group's most-liked messages for a period
// ("day", "week" or "month").
func (s *service) LikesLeaderboard(ctx context.Context, groupID, period string) ([]model.Message, error) {
	params := map[string]string{"period": period}
	var payload struct {
		Messages []model.Message `json:"messages"`
	}
	if err := s.getJSON(ctx, fmt.Sprintf("groups/%s/likes", groupID), params, &payload); err != nil {
		return nil, err
	}
	return payload.Messages, nil
}

// MyLikes returns the messages the caller has liked in a group.
func (s *service) MyLikes(ctx context.Context, groupID string) ([]model.Message, error) {
	var payload struct {
		Messages []model.Message `json:"messages"`
	}
	if err := s.getJSON(ctx, fmt.Sprintf("groups/%s/likes/mine", groupID), nil, &payload); err != nil {
		return nil, err
	}
	return payload.Messages, nil
}

// MyHits returns the caller's messages that others have liked.
func (s *service) MyHits(ctx context.Context, groupID string) ([]model.Message, error) {
	var payload struct {
		Messages []model.Message `json:"messages"`
	}
	if err := s.getJSON(ctx, fmt.Sprintf("groups/%s/likes/for_me", groupID), nil, &payload); err != nil {
		return nil, err
	}
	return payload.Messages, nil
}

package groupme

import (
	"context"

	"github.com/guarzo/groupmeapi/common/model"
)

// This file covers the bot endpoints.

// IndexBots lists the bots owned by the authenticated user.
func (s *service) IndexBots(ctx context.Context) ([]model.Bot, error) {
	var bots []model.Bot
	if err := s.getJSON(ctx, "bots", nil, &bots); err != nil {
		return nil, err
	}
	return bots, nil
}

// CreateBot registers a bot in a group. The returned Bot carries the bot id
// needed for PostBotMessage.
func (s *service) CreateBot(ctx context.Context, name, groupID, avatarURL, callbackURL string, dmNotification bool) (*model.Bot, error) {
	bot := map[string]interface{}{
		"name":            name,
		"group_id":        groupID,
		"dm_notification": dmNotification,
	}
	if avatarURL != "" {
		bot["avatar_url"] = avatarURL
	}
	if callbackURL != "" {
		bot["callback_url"] = callbackURL
	}
	body := map[string]interface{}{"bot": bot}

	var payload struct {
		Bot model.Bot `json:"bot"`
	}
	if err := s.postJSON(ctx, "bots", nil, body, &payload); err != nil {
		return nil, err
	}
	return &payload.Bot, nil
}

// PostBotMessage posts to a group as a bot. Long text is split the same way
// as user messages and sent segment by segment.
func (s *service) PostBotMessage(ctx context.Context, botID, text, pictureURL string) error {
	for _, segment := range SplitMessage(text, "\n", MessageSplitThreshold) {
		body := map[string]interface{}{
			"bot_id": botID,
			"text":   segment,
		}
		if pictureURL != "" {
			body["picture_url"] = pictureURL
		}
		if err := s.postJSON(ctx, "bots/post", nil, body, nil); err != nil {
			return err
		}
	}
	return nil
}

// DestroyBot removes a bot.
func (s *service) DestroyBot(ctx context.Context, botID string) error {
	body := map[string]string{"bot_id": botID}
	return s.postJSON(ctx, "bots/destroy", nil, body, nil)
}

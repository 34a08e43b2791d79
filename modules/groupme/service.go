package groupme

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/guarzo/groupmeapi/common"
	"github.com/guarzo/groupmeapi/common/model"
)

// Service is the higher-level, typed surface over the API. Methods are thin:
// each assembles a path and payload, hands it to the Client, and decodes the
// envelope payload into its result type. Structured errors reported by the
// remote service come back as *model.ApplicationError.
type Service interface {
	// Groups
	IndexGroups(ctx context.Context, page, perPage int, omitMemberships bool) ([]model.Group, error)
	IndexFormerGroups(ctx context.Context) ([]model.Group, error)
	ShowGroup(ctx context.Context, groupID string) (*model.Group, error)
	CreateGroup(ctx context.Context, name, description, imageURL string, share bool) (*model.Group, error)
	UpdateGroup(ctx context.Context, groupID, name, description, imageURL string, officeMode bool) (*model.Group, error)
	DestroyGroup(ctx context.Context, groupID string) error
	JoinGroup(ctx context.Context, groupID, shareToken string) (*model.Group, error)
	RejoinGroup(ctx context.Context, groupID string) (*model.Group, error)
	ChangeGroupOwner(ctx context.Context, groupID, ownerID string) error

	// Members
	AddMembers(ctx context.Context, groupID string, members []model.NewMember) (*model.MemberAddResult, error)
	AddMembersResults(ctx context.Context, groupID, resultsID string) ([]model.Member, error)
	RemoveMember(ctx context.Context, groupID, membershipID string) error
	UpdateMyNickname(ctx context.Context, groupID, nickname string) (*model.Member, error)

	// Messages
	IndexMessages(ctx context.Context, groupID, beforeID, sinceID, afterID string, limit int) (*model.MessageList, error)
	CreateMessage(ctx context.Context, groupID, text string, attachments []model.Attachment) ([]model.Message, error)
	CreateMessageWithMentions(ctx context.Context, groupID string, names []string, text string) ([]model.Message, error)
	CreateMessageAllMention(ctx context.Context, groupID, text string) ([]model.Message, error)

	// Chats and direct messages
	IndexChats(ctx context.Context, page, perPage int) ([]model.Chat, error)
	IndexDirectMessages(ctx context.Context, otherUserID, beforeID, sinceID string) (*model.DirectMessageList, error)
	CreateDirectMessage(ctx context.Context, otherUserID, text string, attachments []model.Attachment) (*model.DirectMessage, error)

	// Likes
	CreateLike(ctx context.Context, conversationID, messageID string) error
	DestroyLike(ctx context.Context, conversationID, messageID string) error
	LikesLeaderboard(ctx context.Context, groupID, period string) ([]model.Message, error)
	MyLikes(ctx context.Context, groupID string) ([]model.Message, error)
	MyHits(ctx context.Context, groupID string) ([]model.Message, error)

	// Bots
	IndexBots(ctx context.Context) ([]model.Bot, error)
	CreateBot(ctx context.Context, name, groupID, avatarURL, callbackURL string, dmNotification bool) (*model.Bot, error)
	PostBotMessage(ctx context.Context, botID, text, pictureURL string) error
	DestroyBot(ctx context.Context, botID string) error

	// Users
	GetMe(ctx context.Context) (*model.User, error)
	UpdateMe(ctx context.Context, avatarURL, name, email, zipCode string) (*model.User, error)
	EnableSmsMode(ctx context.Context, duration int, registrationID string) error
	DisableSmsMode(ctx context.Context) error

	// Blocks
	IndexBlocks(ctx context.Context, userID string) ([]model.Block, error)
	BlockBetween(ctx context.Context, userID, otherUserID string) (bool, error)
	CreateBlock(ctx context.Context, userID, otherUserID string) (*model.Block, error)
	DestroyBlock(ctx context.Context, userID, otherUserID string) error

	// Media
	UploadImage(ctx context.Context, content []byte, contentType string) (*model.ImagePayload, error)

	// Cache configuration
	SetCaching(enabled bool, ttl time.Duration)
	ClearCache()
	PurgeExpiredCache() int
}

// Limits the service enforces by truncation or splitting, never rejection.
const (
	MaxGroupNameLength    = 140
	MaxGroupDescLength    = 255
	MaxNicknameLength     = 50
	MessageSplitThreshold = 1000
)

// service is the concrete implementation that uses Client.
type service struct {
	client Client
}

// NewService constructs a Service on top of an existing Client.
func NewService(client Client) Service {
	return &service{client: client}
}

// New assembles a ready-to-use Service for an access token with the default
// endpoints, a fresh (disabled) response cache and verified TLS. logger may
// be nil.
func New(accessToken string, logger *slog.Logger) Service {
	httpClient := common.NewHttpClient("groupmeapi", &http.Client{}, false)
	cache := common.NewResponseCache()
	client := NewClient(DefaultBaseURL, DefaultImageURL, httpClient, cache, common.StaticToken(accessToken), logger)
	return NewService(client)
}

func (s *service) SetCaching(enabled bool, ttl time.Duration) {
	s.client.SetCaching(enabled, ttl)
}

func (s *service) ClearCache() {
	s.client.ClearCache()
}

func (s *service) PurgeExpiredCache() int {
	return s.client.PurgeExpiredCache()
}

// getJSON runs a GET and decodes the envelope payload into out.
func (s *service) getJSON(ctx context.Context, path string, params map[string]string, out interface{}) error {
	res, err := s.client.Get(ctx, path, params)
	if err != nil {
		return err
	}
	if err := res.Err(); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return res.Decode(out)
}

// postJSON runs a POST with a JSON body and decodes the envelope payload
// into out; out may be nil for endpoints whose response carries no payload.
func (s *service) postJSON(ctx context.Context, path string, params map[string]string, body, out interface{}) error {
	res, err := s.client.Post(ctx, path, params, body)
	if err != nil {
		return err
	}
	if err := res.Err(); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return res.Decode(out)
}

// truncate enforces a length limit the way the service expects: by cutting,
// not by rejecting.
func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}

package model

import (
	"encoding/json"
	"fmt"
)

// If you want a helper for JSON unmarshal:
func JSONUnmarshal(data []byte, out interface{}) error {
	return json.Unmarshal(data, out)
}

// ----------------------------------------------------------------------
// Response envelope
// ----------------------------------------------------------------------

// Meta is the status block the API wraps around every JSON response.
type Meta struct {
	Code   int      `json:"code"`
	Errors []string `json:"errors,omitempty"`
}

// Response is the decoded envelope: {"meta": {...}, "response": ...}.
// The payload is kept raw so each endpoint can decode into its own type.
type Response struct {
	Meta     *Meta           `json:"meta"`
	Response json.RawMessage `json:"response"`
}

// Decode unmarshals the payload into out. A null or absent payload leaves
// out untouched.
func (r *Response) Decode(out interface{}) error {
	if len(r.Response) == 0 || string(r.Response) == "null" {
		return nil
	}
	return json.Unmarshal(r.Response, out)
}

// Err converts a structured error in the envelope into an *ApplicationError.
// The dispatcher never calls this itself: a non-2xx envelope comes back as
// data, and callers decide whether to treat it as fatal.
func (r *Response) Err() error {
	if r.Meta == nil || r.Meta.Code < 400 {
		return nil
	}
	return &ApplicationError{Code: r.Meta.Code, Errors: r.Meta.Errors}
}

// ApplicationError is an error the remote service reported inside a
// successfully decoded envelope.
type ApplicationError struct {
	Code   int
	Errors []string
}

func (e *ApplicationError) Error() string {
	return fmt.Sprintf("api error %d: %v", e.Code, e.Errors)
}

// ----------------------------------------------------------------------
// Groups and members
// ----------------------------------------------------------------------

// Group is a group chat as returned by the groups endpoints.
type Group struct {
	ID            string   `json:"id"`
	GroupID       string   `json:"group_id"`
	Name          string   `json:"name"`
	PhoneNumber   string   `json:"phone_number"`
	Type          string   `json:"type"`
	Description   string   `json:"description"`
	ImageURL      string   `json:"image_url"`
	CreatorUserID string   `json:"creator_user_id"`
	CreatedAt     int64    `json:"created_at"`
	UpdatedAt     int64    `json:"updated_at"`
	OfficeMode    bool     `json:"office_mode"`
	ShareURL      string   `json:"share_url"`
	Members       []Member `json:"members"`
}

// Member is one membership record inside a group. ID is the membership id,
// UserID the global account id.
type Member struct {
	ID       string   `json:"id"`
	UserID   string   `json:"user_id"`
	Nickname string   `json:"nickname"`
	Muted    bool     `json:"muted"`
	ImageURL string   `json:"image_url"`
	Roles    []string `json:"roles,omitempty"`
}

// NewMember describes a member to add to a group. At least one of UserID,
// PhoneNumber or Email must be set; GUID lets the caller correlate results.
type NewMember struct {
	Nickname    string `json:"nickname"`
	UserID      string `json:"user_id,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Email       string `json:"email,omitempty"`
	GUID        string `json:"guid,omitempty"`
}

// MemberAddResult is the handle returned by the asynchronous member add.
type MemberAddResult struct {
	ResultsID string `json:"results_id"`
}

// ----------------------------------------------------------------------
// Messages
// ----------------------------------------------------------------------

// Message is a group message.
type Message struct {
	ID          string       `json:"id"`
	SourceGUID  string       `json:"source_guid"`
	CreatedAt   int64        `json:"created_at"`
	UserID      string       `json:"user_id"`
	GroupID     string       `json:"group_id"`
	Name        string       `json:"name"`
	AvatarURL   string       `json:"avatar_url"`
	Text        string       `json:"text"`
	System      bool         `json:"system"`
	FavoritedBy []string     `json:"favorited_by"`
	Attachments []Attachment `json:"attachments"`
}

// MessageList is the payload of the message index endpoint.
type MessageList struct {
	Count    int       `json:"count"`
	Messages []Message `json:"messages"`
}

// DirectMessage is a one-on-one message.
type DirectMessage struct {
	ID          string       `json:"id"`
	SourceGUID  string       `json:"source_guid"`
	CreatedAt   int64        `json:"created_at"`
	UserID      string       `json:"user_id"`
	SenderID    string       `json:"sender_id"`
	RecipientID string       `json:"recipient_id"`
	ChatID      string       `json:"chat_id"`
	Text        string       `json:"text"`
	Attachments []Attachment `json:"attachments"`
}

// DirectMessageList is the payload of the direct message index endpoint.
type DirectMessageList struct {
	Count          int             `json:"count"`
	DirectMessages []DirectMessage `json:"direct_messages"`
}

// Chat is a one-on-one conversation summary.
type Chat struct {
	CreatedAt     int64          `json:"created_at"`
	UpdatedAt     int64          `json:"updated_at"`
	LastMessage   *DirectMessage `json:"last_message"`
	MessagesCount int            `json:"messages_count"`
	OtherUser     *User          `json:"other_user"`
}

// ----------------------------------------------------------------------
// Bots, users, blocks
// ----------------------------------------------------------------------

// Bot is a callback bot attached to a group.
type Bot struct {
	BotID          string `json:"bot_id"`
	GroupID        string `json:"group_id"`
	Name           string `json:"name"`
	AvatarURL      string `json:"avatar_url"`
	CallbackURL    string `json:"callback_url"`
	DMNotification bool   `json:"dm_notification"`
}

// User is the authenticated account as returned by the users endpoints.
type User struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	PhoneNumber string `json:"phone_number"`
	ImageURL    string `json:"image_url"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	SMS         bool   `json:"sms"`
	CreatedAt   int64  `json:"created_at"`
	UpdatedAt   int64  `json:"updated_at"`
}

// Block is one entry in the authenticated user's block list.
type Block struct {
	UserID        string `json:"user_id"`
	BlockedUserID string `json:"blocked_user_id"`
	CreatedAt     int64  `json:"created_at"`
}

// ----------------------------------------------------------------------
// Attachments
// ----------------------------------------------------------------------

// Attachment is the tagged record attached to messages. Type discriminates
// which of the other fields are meaningful; an attachment without a type is
// malformed and gets dropped before transmission.
type Attachment struct {
	Type        string   `json:"type"`
	URL         string   `json:"url,omitempty"`         // image
	Name        string   `json:"name,omitempty"`        // location
	Lat         string   `json:"lat,omitempty"`         // location
	Lng         string   `json:"lng,omitempty"`         // location
	Placeholder string   `json:"placeholder,omitempty"` // emoji
	Charmap     [][2]int `json:"charmap,omitempty"`     // emoji
	UserIDs     []string `json:"user_ids,omitempty"`    // mentions
	Loci        [][2]int `json:"loci,omitempty"`        // mentions
	Token       string   `json:"token,omitempty"`       // split (legacy)
}

// ImageAttachment references a picture previously uploaded to the media
// service.
func ImageAttachment(url string) Attachment {
	return Attachment{Type: "image", URL: url}
}

// LocationAttachment pins a named coordinate to a message.
func LocationAttachment(name, lat, lng string) Attachment {
	return Attachment{Type: "location", Name: name, Lat: lat, Lng: lng}
}

// EmojiAttachment maps a placeholder character in the text to emoji charmap
// entries.
func EmojiAttachment(placeholder string, charmap [][2]int) Attachment {
	return Attachment{Type: "emoji", Placeholder: placeholder, Charmap: charmap}
}

// MentionsAttachment marks member references in the text. Loci entries are
// {byte offset, length} pairs aligned index-for-index with UserIDs.
func MentionsAttachment(userIDs []string, loci [][2]int) Attachment {
	return Attachment{Type: "mentions", UserIDs: userIDs, Loci: loci}
}

// ----------------------------------------------------------------------
// Media upload
// ----------------------------------------------------------------------

// UploadPayload is the multipart form body sent to the media endpoint.
type UploadPayload struct {
	Fields map[string]string
	File   *FormFile
}

// FormFile is one file part of a multipart upload.
type FormFile struct {
	FieldName   string
	FileName    string
	ContentType string
	Content     []byte
}

// ImagePayload is the media service's response payload.
type ImagePayload struct {
	Payload struct {
		URL        string `json:"url"`
		PictureURL string `json:"picture_url"`
	} `json:"payload"`
}

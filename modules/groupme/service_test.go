package groupme_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guarzo/groupmeapi/common/model"
	"github.com/guarzo/groupmeapi/modules/groupme"
)

type mockClient struct {
	getFunc    func(ctx context.Context, path string, params map[string]string) (*model.Response, error)
	postFunc   func(ctx context.Context, path string, params map[string]string, body interface{}) (*model.Response, error)
	uploadFunc func(ctx context.Context, path string, payload *model.UploadPayload) (*model.Response, error)
}

func (m *mockClient) Do(ctx context.Context, method, path string, params map[string]string, body interface{}, media bool) (*model.Response, error) {
	panic("Do not implemented in mock")
}
func (m *mockClient) Get(ctx context.Context, path string, params map[string]string) (*model.Response, error) {
	return m.getFunc(ctx, path, params)
}
func (m *mockClient) Post(ctx context.Context, path string, params map[string]string, body interface{}) (*model.Response, error) {
	return m.postFunc(ctx, path, params, body)
}
func (m *mockClient) Upload(ctx context.Context, path string, payload *model.UploadPayload) (*model.Response, error) {
	return m.uploadFunc(ctx, path, payload)
}
func (m *mockClient) SetCaching(enabled bool, ttl time.Duration) {}
func (m *mockClient) ClearCache()                                {}
func (m *mockClient) PurgeExpiredCache() int                     { return 0 }

func envelope(code int, payload string) *model.Response {
	res := &model.Response{Meta: &model.Meta{Code: code}}
	if payload != "" {
		res.Response = json.RawMessage(payload)
	}
	return res
}

// messageBody digs the "message" object out of a captured request body.
func messageBody(t *testing.T, body interface{}) map[string]interface{} {
	t.Helper()
	outer, ok := body.(map[string]interface{})
	require.True(t, ok, "unexpected body type %T", body)
	msg, ok := outer["message"].(map[string]interface{})
	require.True(t, ok, "body has no message object")
	return msg
}

func TestService_CreateMessage_Short(t *testing.T) {
	var bodies []interface{}
	mc := &mockClient{
		postFunc: func(ctx context.Context, path string, params map[string]string, body interface{}) (*model.Response, error) {
			bodies = append(bodies, body)
			return envelope(201, `{"message":{"id":"m1","text":"hello"}}`), nil
		},
	}
	svc := groupme.NewService(mc)

	sent, err := svc.CreateMessage(context.Background(), "42", "hello", nil)
	require.NoError(t, err)
	require.Len(t, sent, 1)
	assert.Equal(t, "m1", sent[0].ID)

	require.Len(t, bodies, 1)
	msg := messageBody(t, bodies[0])
	assert.Equal(t, "hello", msg["text"], "short text travels unchanged")
	assert.NotEmpty(t, msg["source_guid"])
	assert.NotContains(t, msg, "attachments")
}

func TestService_CreateMessage_SplitsLongText(t *testing.T) {
	var bodies []interface{}
	mc := &mockClient{
		postFunc: func(ctx context.Context, path string, params map[string]string, body interface{}) (*model.Response, error) {
			bodies = append(bodies, body)
			return envelope(201, `{"message":{"id":"m"}}`), nil
		},
	}
	svc := groupme.NewService(mc)

	text := strings.TrimSuffix(strings.Repeat("0123456789012345678\n", 75), "\n") // ~1500 chars
	atts := []model.Attachment{model.ImageAttachment("https://i.example.com/a.png")}

	sent, err := svc.CreateMessage(context.Background(), "42", text, atts)
	require.NoError(t, err)
	require.Greater(t, len(sent), 1, "oversized text must go out in several messages")
	require.Len(t, bodies, len(sent))

	var rebuilt strings.Builder
	for i, body := range bodies {
		msg := messageBody(t, body)
		segment := msg["text"].(string)
		assert.Less(t, len(segment), groupme.MessageSplitThreshold)
		assert.True(t, strings.HasSuffix(segment, "\n"))
		rebuilt.WriteString(segment)

		if i == 0 {
			assert.Contains(t, msg, "attachments", "attachments ride on the first segment")
		} else {
			assert.NotContains(t, msg, "attachments")
		}
	}
	assert.Equal(t, text+"\n", rebuilt.String(), "segments reassemble the normalized text")
}

func TestService_CreateMessage_DropsMalformedAttachments(t *testing.T) {
	var captured interface{}
	mc := &mockClient{
		postFunc: func(ctx context.Context, path string, params map[string]string, body interface{}) (*model.Response, error) {
			captured = body
			return envelope(201, `{"message":{"id":"m"}}`), nil
		},
	}
	svc := groupme.NewService(mc)

	atts := []model.Attachment{{Type: ""}, {}}
	_, err := svc.CreateMessage(context.Background(), "42", "hi", atts)
	require.NoError(t, err)

	msg := messageBody(t, captured)
	assert.NotContains(t, msg, "attachments", "attachments without a type are dropped, not sent")
}

func TestService_CreateMessageWithMentions(t *testing.T) {
	var captured interface{}
	mc := &mockClient{
		getFunc: func(ctx context.Context, path string, params map[string]string) (*model.Response, error) {
			require.Equal(t, "groups/42", path)
			return envelope(200, `{"id":"42","members":[{"user_id":"7","nickname":"Bob"}]}`), nil
		},
		postFunc: func(ctx context.Context, path string, params map[string]string, body interface{}) (*model.Response, error) {
			captured = body
			return envelope(201, `{"message":{"id":"m"}}`), nil
		},
	}
	svc := groupme.NewService(mc)

	_, err := svc.CreateMessageWithMentions(context.Background(), "42", []string{"Bob", "Carol"}, "Hi @Bob and @Carol")
	require.NoError(t, err)

	msg := messageBody(t, captured)
	atts, ok := msg["attachments"].([]model.Attachment)
	require.True(t, ok, "expected a mentions attachment")
	require.Len(t, atts, 1)
	assert.Equal(t, "mentions", atts[0].Type)
	assert.Equal(t, []string{"7"}, atts[0].UserIDs)
	assert.Equal(t, [][2]int{{3, 4}}, atts[0].Loci)
}

func TestService_CreateMessageWithMentions_NoSurvivors(t *testing.T) {
	var captured interface{}
	mc := &mockClient{
		getFunc: func(ctx context.Context, path string, params map[string]string) (*model.Response, error) {
			return envelope(200, `{"id":"42","members":[{"user_id":"7","nickname":"Bob"}]}`), nil
		},
		postFunc: func(ctx context.Context, path string, params map[string]string, body interface{}) (*model.Response, error) {
			captured = body
			return envelope(201, `{"message":{"id":"m"}}`), nil
		},
	}
	svc := groupme.NewService(mc)

	_, err := svc.CreateMessageWithMentions(context.Background(), "42", []string{"Carol"}, "Hi @Carol")
	require.NoError(t, err)

	msg := messageBody(t, captured)
	assert.NotContains(t, msg, "attachments", "an empty mention set means no attachment at all")
}

func TestService_CreateGroup_Truncates(t *testing.T) {
	var captured interface{}
	mc := &mockClient{
		postFunc: func(ctx context.Context, path string, params map[string]string, body interface{}) (*model.Response, error) {
			captured = body
			return envelope(201, `{"id":"42"}`), nil
		},
	}
	svc := groupme.NewService(mc)

	_, err := svc.CreateGroup(context.Background(), strings.Repeat("n", 200), strings.Repeat("d", 300), "", false)
	require.NoError(t, err)

	body := captured.(map[string]interface{})
	assert.Len(t, body["name"], groupme.MaxGroupNameLength)
	assert.Len(t, body["description"], groupme.MaxGroupDescLength)
}

func TestService_UpdateMyNickname_Truncates(t *testing.T) {
	var captured interface{}
	mc := &mockClient{
		postFunc: func(ctx context.Context, path string, params map[string]string, body interface{}) (*model.Response, error) {
			captured = body
			return envelope(200, `{"id":"1","nickname":"x"}`), nil
		},
	}
	svc := groupme.NewService(mc)

	_, err := svc.UpdateMyNickname(context.Background(), "42", strings.Repeat("x", 80))
	require.NoError(t, err)

	body := captured.(map[string]interface{})
	membership := body["membership"].(map[string]string)
	assert.Len(t, membership["nickname"], groupme.MaxNicknameLength)
}

func TestService_AddMembers_DoesNotMutateInput(t *testing.T) {
	var captured interface{}
	mc := &mockClient{
		postFunc: func(ctx context.Context, path string, params map[string]string, body interface{}) (*model.Response, error) {
			captured = body
			return envelope(202, `{"results_id":"r1"}`), nil
		},
	}
	svc := groupme.NewService(mc)

	longNick := strings.Repeat("n", 80)
	members := []model.NewMember{{Nickname: longNick, UserID: "7"}}

	result, err := svc.AddMembers(context.Background(), "42", members)
	require.NoError(t, err)
	assert.Equal(t, "r1", result.ResultsID)

	assert.Equal(t, longNick, members[0].Nickname, "the caller's slice must not be truncated in place")

	body := captured.(map[string]interface{})
	sent := body["members"].([]model.NewMember)
	require.Len(t, sent, 1)
	assert.Len(t, sent[0].Nickname, groupme.MaxNicknameLength)
}

func TestService_IndexMessages_Cursors(t *testing.T) {
	mc := &mockClient{
		getFunc: func(ctx context.Context, path string, params map[string]string) (*model.Response, error) {
			assert.Equal(t, "groups/42/messages", path)
			assert.Equal(t, "100", params["before_id"])
			assert.Equal(t, "50", params["limit"])
			assert.NotContains(t, params, "since_id")
			return envelope(200, `{"count":1,"messages":[{"id":"99","text":"hey"}]}`), nil
		},
	}
	svc := groupme.NewService(mc)

	list, err := svc.IndexMessages(context.Background(), "42", "100", "", "", 50)
	require.NoError(t, err)
	require.Len(t, list.Messages, 1)
	assert.Equal(t, "hey", list.Messages[0].Text)
}

func TestService_ApplicationErrorSurfaced(t *testing.T) {
	mc := &mockClient{
		getFunc: func(ctx context.Context, path string, params map[string]string) (*model.Response, error) {
			return &model.Response{Meta: &model.Meta{Code: 404, Errors: []string{"not found"}}}, nil
		},
	}
	svc := groupme.NewService(mc)

	_, err := svc.ShowGroup(context.Background(), "missing")
	var appErr *model.ApplicationError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 404, appErr.Code)
}

func TestService_UploadImage(t *testing.T) {
	mc := &mockClient{
		uploadFunc: func(ctx context.Context, path string, payload *model.UploadPayload) (*model.Response, error) {
			require.Equal(t, "pictures", path)
			require.NotNil(t, payload.File)
			assert.Equal(t, "file", payload.File.FieldName)
			// the media service has no meta envelope; the client surfaces
			// the whole document as the payload
			return &model.Response{Response: json.RawMessage(`{"payload":{"url":"https://i.example.com/x","picture_url":"https://i.example.com/x.large"}}`)}, nil
		},
	}
	svc := groupme.NewService(mc)

	image, err := svc.UploadImage(context.Background(), []byte("rawimagebytes"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "https://i.example.com/x", image.Payload.URL)
	assert.Equal(t, "https://i.example.com/x.large", image.Payload.PictureURL)
}

func TestService_GetMe(t *testing.T) {
	mc := &mockClient{
		getFunc: func(ctx context.Context, path string, params map[string]string) (*model.Response, error) {
			assert.Equal(t, "users/me", path)
			return envelope(200, `{"id":"1","name":"Tester","email":"t@example.com"}`), nil
		},
	}
	svc := groupme.NewService(mc)

	me, err := svc.GetMe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Tester", me.Name)
}

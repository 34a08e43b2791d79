package groupme

import (
	"context"
	"fmt"

	"github.com/guarzo/groupmeapi/common/model"
)

// UploadImage submits picture bytes to the media service and returns the
// hosted URLs, which can then be referenced from an image attachment. This
// is the one endpoint that goes to the media base instead of the API base.
func (s *service) UploadImage(ctx context.Context, content []byte, contentType string) (*model.ImagePayload, error) {
	payload := &model.UploadPayload{
		File: &model.FormFile{
			FieldName:   "file",
			FileName:    "image",
			ContentType: contentType,
			Content:     content,
		},
	}
	res, err := s.client.Upload(ctx, "pictures", payload)
	if err != nil {
		return nil, err
	}
	if err := res.Err(); err != nil {
		return nil, err
	}

	var image model.ImagePayload
	if err := res.Decode(&image); err != nil {
		return nil, fmt.Errorf("failed to decode image payload: %w", err)
	}
	return &image, nil
}

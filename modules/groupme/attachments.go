package groupme

import "github.com/guarzo/groupmeapi/common/model"

// FilterAttachments keeps the attachments that carry a type discriminant and
// drops the rest, preserving order. A nil input is treated as empty. The
// dropped count is returned so callers can log the data loss instead of it
// disappearing silently.
func FilterAttachments(attachments []model.Attachment) ([]model.Attachment, int) {
	kept := make([]model.Attachment, 0, len(attachments))
	dropped := 0
	for _, a := range attachments {
		if a.Type == "" {
			dropped++
			continue
		}
		kept = append(kept, a)
	}
	return kept, dropped
}

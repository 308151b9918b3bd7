package domain

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Attachment describes an uploaded file. Content is never held by the draft.
type Attachment struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	MIME string `json:"mime"`
}

type AttachmentKind string

const (
	AttachmentPassport AttachmentKind = "passport"
	AttachmentPhoto    AttachmentKind = "photo"
)

func ParseAttachmentKind(s string) (AttachmentKind, error) {
	switch k := AttachmentKind(s); k {
	case AttachmentPassport, AttachmentPhoto:
		return k, nil
	}
	return "", errors.Wrapf(ErrUnknownCode, "attachment kind %q", s)
}

// Accepts reports whether the kind takes files of the given MIME type.
// Passport scans may be images or PDF; the photo must be an image.
func (k AttachmentKind) Accepts(mime string) bool {
	mime = strings.ToLower(strings.TrimSpace(mime))
	if strings.HasPrefix(mime, "image/") {
		return true
	}
	return k == AttachmentPassport && mime == "application/pdf"
}

func (k AttachmentKind) validate(a Attachment) error {
	if a.Size <= 0 || strings.TrimSpace(a.Name) == "" {
		return errors.Wrapf(ErrAttachmentEmpty, "%s attachment", k)
	}
	if !k.Accepts(a.MIME) {
		return errors.Wrapf(ErrAttachmentType, "%s attachment %q", k, a.MIME)
	}
	return nil
}

package gmail

import (
	"strings"

	"google.golang.org/api/gmail/v1"

	"github.com/custodia-labs/workflowhub/internal/core/domain"
)

// Label types as reported by the Gmail v1 API.
const (
	apiLabelTypeSystem = "system"
	apiLabelTypeUser   = "user"
)

// labelToDomain maps a Gmail API label. Unknown types are treated as user labels.
func labelToDomain(label *gmail.Label) domain.MailLabel {
	labelType := domain.MailLabelTypeUser
	if normaliseType(label.Type) == apiLabelTypeSystem {
		labelType = domain.MailLabelTypeSystem
	}
	return domain.MailLabel{
		ID:             label.Id,
		Name:           label.Name,
		Type:           labelType,
		MessagesTotal:  label.MessagesTotal,
		MessagesUnread: label.MessagesUnread,
	}
}

func normaliseType(t string) string {
	if strings.EqualFold(t, apiLabelTypeSystem) {
		return apiLabelTypeSystem
	}
	return apiLabelTypeUser
}

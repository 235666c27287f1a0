package matching

import (
	"time"

	"github.com/google/uuid"
)

type MatchStatus string

const (
	MatchStatusPending MatchStatus = "pending"
	MatchStatusActive  MatchStatus = "active"
	MatchStatusClosed  MatchStatus = "closed"
	MatchStatusBlocked MatchStatus = "blocked"
)

// Match holds exactly one founder and one investor. Because the pair is
// role-resolved on creation, the (founder_id, investor_id) unique index
// also covers the unordered pair.
type Match struct {
	ID         uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	FounderID  uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_match_pair;index;column:founder_id" json:"founder_id"`
	InvestorID uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_match_pair;index;column:investor_id" json:"investor_id"`
	Status     MatchStatus `gorm:"type:text;not null;default:'active';column:status" json:"status"`

	LastMessagePreview *string `gorm:"column:last_message_preview" json:"last_message_preview,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Match) TableName() string { return "profile_match" }

// OtherParty returns the id across the match from profileID.
func (m *Match) OtherParty(profileID uuid.UUID) uuid.UUID {
	if m.FounderID == profileID {
		return m.InvestorID
	}
	return m.FounderID
}

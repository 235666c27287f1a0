package matching

import (
	"time"

	"github.com/google/uuid"
)

// Like is append-only. The unique index over (sender_id, recipient_id) is
// the serialization point for concurrent duplicate submissions: the second
// writer observes a conflict and takes the no-op path.
type Like struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SenderID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_like_sender_recipient;index;column:sender_id" json:"sender_id"`
	RecipientID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_like_sender_recipient;index;column:recipient_id" json:"recipient_id"`
	Note        *string   `gorm:"column:note" json:"note,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now();index" json:"created_at"`
}

func (Like) TableName() string { return "profile_like" }

package models

import "time"

// PostTypeSelfDiscipline is the feed zone for PERSIST notes. Takeoff notes
// carry their method tag instead, falling back to PostTypeTakeoff.
const (
	PostTypeSelfDiscipline = "SELF_DISCIPLINE"
	PostTypeTakeoff        = "TAKEOFF"
)

// Post is a community feed entry, either published directly or emitted as a
// side effect of a check-in that carried a note.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Type      string    `gorm:"size:32;index;not null" json:"type"`
	Likes     int       `gorm:"not null;default:0" json:"likes"`
	CreatedAt time.Time `json:"created_at"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
}

// PostLike marks that a user liked a post. The pair is unique; toggling a
// like deletes or recreates the row together with the counter update.
type PostLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index:idx_post_likes_user_post,unique;not null" json:"user_id"`
	PostID    uint      `gorm:"index:idx_post_likes_user_post,unique;index;not null" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

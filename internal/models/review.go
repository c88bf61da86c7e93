package models

// Review is a user's 1-5 rating of a game.
type Review struct {
	ID        uint      `gorm:"primaryKey" csv:"id"`
	GameID    uint      `gorm:"not null;index" csv:"game_id"`
	UserID    uint      `gorm:"not null;index" csv:"user_id"`
	Rating    int       `gorm:"not null" csv:"rating"`
	Comment   string    `csv:"comment"`
	CreatedAt Timestamp `gorm:"type:timestamptz" csv:"created_at"`
	Deleted   bool      `gorm:"not null;default:false;index" csv:"deleted"`
}

func (r *Review) GetID() uint     { return r.ID }
func (r *Review) SetID(id uint)   { r.ID = id }
func (r *Review) IsDeleted() bool { return r.Deleted }

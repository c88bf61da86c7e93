package models

// Developer represents a game studio.
type Developer struct {
	ID          uint   `gorm:"primaryKey" csv:"id"`
	Name        string `gorm:"size:255;not null" csv:"name"`
	Country     string `gorm:"size:100" csv:"country"`
	FoundedYear int    `csv:"founded_year"`
	Website     string `gorm:"size:512" csv:"website"`
	Specialty   string `gorm:"size:255" csv:"specialty"`
	Deleted     bool   `gorm:"not null;default:false;index" csv:"deleted"`
}

func (d *Developer) GetID() uint     { return d.ID }
func (d *Developer) SetID(id uint)   { d.ID = id }
func (d *Developer) IsDeleted() bool { return d.Deleted }

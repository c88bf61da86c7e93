package models

// Accessory represents a peripheral made for one console.
type Accessory struct {
	ID            uint   `gorm:"primaryKey" csv:"id"`
	Name          string `gorm:"size:255;not null" csv:"name"`
	Type          string `gorm:"size:100" csv:"type"`
	Manufacturer  string `gorm:"size:255" csv:"manufacturer"`
	ConsoleID     uint   `gorm:"not null;index" csv:"console_id"`
	Deleted       bool   `gorm:"not null;default:false;index" csv:"deleted"`
	ImageFilename string `gorm:"size:512" csv:"image_filename"`
	ImageURL      string `gorm:"size:1024" csv:"image_url"`
}

func (a *Accessory) GetID() uint     { return a.ID }
func (a *Accessory) SetID(id uint)   { a.ID = id }
func (a *Accessory) IsDeleted() bool { return a.Deleted }

func (a *Accessory) ImageName() string { return a.ImageFilename }

func (a *Accessory) SetImage(filename, url string) {
	a.ImageFilename = filename
	a.ImageURL = url
}

package models

// Console represents a gaming platform. Games reference consoles by name
// through their platform list.
type Console struct {
	ID            uint   `gorm:"primaryKey" csv:"id"`
	Name          string `gorm:"size:255;not null" csv:"name"`
	Manufacturer  string `gorm:"size:255" csv:"manufacturer"`
	ReleaseYear   int    `csv:"release_year"`
	Active        bool   `gorm:"not null" csv:"active"`
	Deleted       bool   `gorm:"not null;default:false;index" csv:"deleted"`
	ImageFilename string `gorm:"size:512" csv:"image_filename"`
	ImageURL      string `gorm:"size:1024" csv:"image_url"`
}

func (c *Console) GetID() uint     { return c.ID }
func (c *Console) SetID(id uint)   { c.ID = id }
func (c *Console) IsDeleted() bool { return c.Deleted }

func (c *Console) ImageName() string { return c.ImageFilename }

func (c *Console) SetImage(filename, url string) {
	c.ImageFilename = filename
	c.ImageURL = url
}

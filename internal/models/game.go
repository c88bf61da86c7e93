package models

// Game represents a videogame in the catalog.
type Game struct {
	ID            uint       `gorm:"primaryKey" csv:"id"`
	Title         string     `gorm:"size:255;not null" csv:"title"`
	Genre         string     `gorm:"size:100" csv:"genre"`
	Platforms     StringList `gorm:"type:text" csv:"platforms"`
	ReleaseYear   int        `csv:"release_year"`
	DeveloperID   uint       `gorm:"index" csv:"developer_id"`
	Price         float64    `csv:"price"`
	Deleted       bool       `gorm:"not null;default:false;index" csv:"deleted"`
	ImageFilename string     `gorm:"size:512" csv:"image_filename"`
	ImageURL      string     `gorm:"size:1024" csv:"image_url"`
}

func (g *Game) GetID() uint     { return g.ID }
func (g *Game) SetID(id uint)   { g.ID = id }
func (g *Game) IsDeleted() bool { return g.Deleted }

func (g *Game) ImageName() string { return g.ImageFilename }

func (g *Game) SetImage(filename, url string) {
	g.ImageFilename = filename
	g.ImageURL = url
}

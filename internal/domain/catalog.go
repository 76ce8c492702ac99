package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Format string

const (
	FormatVinyl    Format = "Vinyl"
	FormatCD       Format = "CD"
	FormatCassette Format = "Cassette"
)

type Artist struct {
	ID      uint64 `json:"id" gorm:"primaryKey;autoIncrement"`
	Name    string `json:"name" gorm:"not null;type:varchar(255)"`
	Bio     string `json:"bio" gorm:"type:text"`
	ImgPath string `json:"imgPath" gorm:"type:varchar(255)"`
}

type Genre struct {
	ID   uint64 `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"not null;unique;type:varchar(100)"`
}

type Album struct {
	ID          uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string    `json:"title" gorm:"not null;type:varchar(255)"`
	ArtistID    uint64    `json:"artistId" gorm:"not null;index"`
	Artist      Artist    `json:"artist" gorm:"foreignKey:ArtistID"`
	ReleaseDate time.Time `json:"releaseDate"`
	ImgPath     string    `json:"imgPath" gorm:"type:varchar(255)"`
	Genres      []Genre   `json:"genres,omitempty" gorm:"many2many:album_genres"`
}

// Product is one purchasable variant of an album (one row per format).
// Quantity is the authoritative available stock; it is only mutated inside
// the order transaction (decrement on checkout, increment on cancellation).
type Product struct {
	ID          uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	AlbumID     uint64          `json:"albumId" gorm:"not null;index"`
	Album       Album           `json:"album" gorm:"foreignKey:AlbumID"`
	Format      Format          `json:"format" gorm:"not null;type:enum('Vinyl','CD','Cassette')"`
	Price       decimal.Decimal `json:"price" gorm:"not null;type:decimal(10,2)"`
	Quantity    int64           `json:"quantity" gorm:"not null;default:0"`
	SKU         string          `json:"sku" gorm:"not null;unique;type:varchar(100)"`
	Description string          `json:"description" gorm:"type:text"`
	ImgPath     string          `json:"imgPath" gorm:"type:varchar(255)"`
	CreatedAt   time.Time       `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt   time.Time       `json:"updatedAt" gorm:"autoUpdateTime"`
}

package models

import "encoding/json"

// Restaurant is the projection of the restaurants collection the image engine
// cares about: the identity plus every image-bearing column.
type Restaurant struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	Name           string `gorm:"size:255" json:"name"`
	LogoPublicID   string `gorm:"column:logo_public_id;size:255;index" json:"logoPublicId"`
	BannerPublicID string `gorm:"column:banner_public_id;size:255;index" json:"bannerPublicId"`
	// Gallery holds a JSON array of GalleryEntry objects.
	Gallery string `gorm:"type:text" json:"gallery"`
}

// TableName overrides the GORM default.
func (Restaurant) TableName() string { return "restaurants" }

// GalleryEntry is one element of Restaurant.Gallery.
type GalleryEntry struct {
	PublicID string `json:"publicId"`
	URL      string `json:"url"`
}

// GalleryEntries decodes the gallery column. An empty column is an empty list.
func (r *Restaurant) GalleryEntries() ([]GalleryEntry, error) {
	if r.Gallery == "" {
		return nil, nil
	}
	var entries []GalleryEntry
	if err := json.Unmarshal([]byte(r.Gallery), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Menu is a restaurant's menu with its optional header image.
type Menu struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	RestaurantID  uint   `gorm:"index" json:"restaurantId"`
	Name          string `gorm:"size:255" json:"name"`
	ImagePublicID string `gorm:"column:image_public_id;size:255;index" json:"imagePublicId"`
}

// TableName overrides the GORM default.
func (Menu) TableName() string { return "menus" }

// MenuItem is a single dish with its optional photo.
type MenuItem struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	MenuID        uint    `gorm:"index" json:"menuId"`
	Name          string  `gorm:"size:255" json:"name"`
	Price         float64 `json:"price"`
	ImagePublicID string  `gorm:"column:image_public_id;size:255;index" json:"imagePublicId"`
}

// TableName overrides the GORM default.
func (MenuItem) TableName() string { return "menu_items" }

// Profile is a user account with its optional avatar.
type Profile struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	Email          string `gorm:"size:255;uniqueIndex" json:"email"`
	AvatarPublicID string `gorm:"column:avatar_public_id;size:255;index" json:"avatarPublicId"`
}

// TableName overrides the GORM default.
func (Profile) TableName() string { return "profiles" }

// All returns one zero value per reference collection, in a stable order.
// Used for migrations in tests and for schema verification at wiring time.
func All() []any {
	return []any{&Restaurant{}, &Menu{}, &MenuItem{}, &Profile{}}
}

package refindex

import (
	"context"
	"strings"

	"image-admin/feature/images/models"

	"gorm.io/gorm"
)

// RestaurantChecker matches the restaurants collection: logo, banner, and the
// gallery JSON array.
type RestaurantChecker struct {
	db *gorm.DB
}

// NewRestaurantChecker creates a checker over the restaurants collection.
func NewRestaurantChecker(db *gorm.DB) *RestaurantChecker {
	return &RestaurantChecker{db: db}
}

func (c *RestaurantChecker) Entity() string { return "restaurant" }
func (c *RestaurantChecker) Folder() string { return "restaurants" }

func (c *RestaurantChecker) ExistsByImageField(ctx context.Context, publicID string) (bool, error) {
	var count int64
	err := c.db.WithContext(ctx).Model(&models.Restaurant{}).
		Where("logo_public_id = ?", publicID).
		Or("banner_public_id = ?", publicID).
		Or("gallery LIKE ? ESCAPE '!'", galleryPattern(publicID)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (c *RestaurantChecker) ReferencedSet(ctx context.Context, publicIDs []string) (map[string]struct{}, error) {
	set := make(map[string]struct{})
	if len(publicIDs) == 0 {
		return set, nil
	}

	query := c.db.WithContext(ctx).Model(&models.Restaurant{}).
		Select("logo_public_id", "banner_public_id", "gallery").
		Where("logo_public_id IN ?", publicIDs).
		Or("banner_public_id IN ?", publicIDs)
	for _, id := range publicIDs {
		query = query.Or("gallery LIKE ? ESCAPE '!'", galleryPattern(id))
	}

	var rows []models.Restaurant
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	wanted := make(map[string]struct{}, len(publicIDs))
	for _, id := range publicIDs {
		wanted[id] = struct{}{}
	}

	for i := range rows {
		if _, ok := wanted[rows[i].LogoPublicID]; ok {
			set[rows[i].LogoPublicID] = struct{}{}
		}
		if _, ok := wanted[rows[i].BannerPublicID]; ok {
			set[rows[i].BannerPublicID] = struct{}{}
		}
		entries, err := rows[i].GalleryEntries()
		if err != nil {
			// A malformed gallery row cannot prove anything unreferenced;
			// the LIKE match that selected it already errs on the safe side.
			continue
		}
		for _, entry := range entries {
			if _, ok := wanted[entry.PublicID]; ok {
				set[entry.PublicID] = struct{}{}
			}
		}
	}

	return set, nil
}

// CountReferences counts every image reference held by restaurants: non-empty
// logos, non-empty banners, and each gallery entry.
func (c *RestaurantChecker) CountReferences(ctx context.Context) (int64, error) {
	var logos, banners int64
	if err := c.db.WithContext(ctx).Model(&models.Restaurant{}).
		Where("logo_public_id <> ''").Count(&logos).Error; err != nil {
		return 0, err
	}
	if err := c.db.WithContext(ctx).Model(&models.Restaurant{}).
		Where("banner_public_id <> ''").Count(&banners).Error; err != nil {
		return 0, err
	}

	var galleries []string
	if err := c.db.WithContext(ctx).Model(&models.Restaurant{}).
		Where("gallery <> ''").Pluck("gallery", &galleries).Error; err != nil {
		return 0, err
	}

	total := logos + banners
	for _, raw := range galleries {
		row := models.Restaurant{Gallery: raw}
		entries, err := row.GalleryEntries()
		if err != nil {
			continue
		}
		total += int64(len(entries))
	}
	return total, nil
}

// galleryPattern builds the LIKE pattern matching a public id stored as a
// quoted string inside the gallery JSON array. LIKE wildcards inside the id
// are escaped (with '!' as the escape character, which both MySQL and SQLite
// accept) so an id cannot widen its own match.
func galleryPattern(publicID string) string {
	escaped := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(publicID)
	return `%"` + escaped + `"%`
}

// singleFieldChecker covers the collections whose images live in exactly one
// scalar column (menus, menu items, profiles).
type singleFieldChecker struct {
	db     *gorm.DB
	entity string
	folder string
	model  any
	column string
}

func (c *singleFieldChecker) Entity() string { return c.entity }
func (c *singleFieldChecker) Folder() string { return c.folder }

func (c *singleFieldChecker) ExistsByImageField(ctx context.Context, publicID string) (bool, error) {
	var count int64
	err := c.db.WithContext(ctx).Model(c.model).
		Where(c.column+" = ?", publicID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (c *singleFieldChecker) ReferencedSet(ctx context.Context, publicIDs []string) (map[string]struct{}, error) {
	set := make(map[string]struct{})
	if len(publicIDs) == 0 {
		return set, nil
	}

	var matched []string
	err := c.db.WithContext(ctx).Model(c.model).
		Distinct(c.column).
		Where(c.column+" IN ?", publicIDs).
		Pluck(c.column, &matched).Error
	if err != nil {
		return nil, err
	}

	for _, id := range matched {
		set[id] = struct{}{}
	}
	return set, nil
}

// CountReferences counts the non-empty image references in this collection.
func (c *singleFieldChecker) CountReferences(ctx context.Context) (int64, error) {
	var count int64
	err := c.db.WithContext(ctx).Model(c.model).
		Where(c.column + " <> ''").
		Count(&count).Error
	return count, err
}

// NewMenuChecker creates a checker over the menus collection.
func NewMenuChecker(db *gorm.DB) Checker {
	return &singleFieldChecker{db: db, entity: "menu", folder: "menus", model: &models.Menu{}, column: "image_public_id"}
}

// NewMenuItemChecker creates a checker over the menu items collection.
func NewMenuItemChecker(db *gorm.DB) Checker {
	return &singleFieldChecker{db: db, entity: "menu_item", folder: "menu-items", model: &models.MenuItem{}, column: "image_public_id"}
}

// NewProfileChecker creates a checker over the user profiles collection.
func NewProfileChecker(db *gorm.DB) Checker {
	return &singleFieldChecker{db: db, entity: "profile", folder: "avatars", model: &models.Profile{}, column: "avatar_public_id"}
}

// DefaultCheckers returns one checker per reference collection.
func DefaultCheckers(db *gorm.DB) []Checker {
	return []Checker{
		NewRestaurantChecker(db),
		NewMenuChecker(db),
		NewMenuItemChecker(db),
		NewProfileChecker(db),
	}
}

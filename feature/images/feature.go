package images

import (
	"image-admin/core/database"
	"image-admin/core/storage"
	"image-admin/feature/images/refindex"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the image administration feature. Without a database
// the reference index has no checkers, which keeps every asset classified
// as referenced and cleanup inert.
func NewFeature(client storage.Client, bucket, baseURL string, logger *zap.Logger, db *gorm.DB, cfg Config) *Feature {
	var checkers []refindex.Checker
	if db != nil {
		verifyImageColumns(db, logger)
		checkers = refindex.DefaultCheckers(db)
	} else {
		logger.Warn("No database configured, all assets will be treated as referenced")
	}

	refs := refindex.New(logger, cfg.StrictChecks, checkers...)
	svc := NewService(client, bucket, baseURL, logger, refs, cfg)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// verifyImageColumns warns when a business table is missing the image
// reference columns the checkers query. The feature still loads; the
// affected checker will just error at query time.
func verifyImageColumns(db *gorm.DB, logger *zap.Logger) {
	wanted := map[string][]string{
		"restaurants": {"logo_public_id", "banner_public_id", "gallery"},
		"menus":       {"image_public_id"},
		"menu_items":  {"image_public_id"},
		"profiles":    {"avatar_public_id"},
	}
	for table, columns := range wanted {
		missing, err := database.MissingColumns(db, table, columns...)
		if err != nil {
			logger.Warn("Could not inspect table schema",
				zap.String("table", table), zap.Error(err))
			continue
		}
		if len(missing) > 0 {
			logger.Warn("Table is missing image reference columns",
				zap.String("table", table), zap.Strings("columns", missing))
		}
	}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "images"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

// Service exposes the underlying service for command-line use.
func (f *Feature) Service() *Service {
	return f.service
}

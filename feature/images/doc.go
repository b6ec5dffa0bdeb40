// Package images implements the image administration feature.
//
// It reconciles two sources of truth:
//  1. Storage (S3/MinIO): the uploaded image objects.
//  2. Database: the image reference columns of the business tables
//     (restaurants, menus, menu items, profiles).
//
// An image that exists in storage but is referenced by no row is an orphan.
// Detection is read-only and paginated; deletion requires explicit
// confirmation and re-verifies every id against the database immediately
// before acting, so a reference created between scan and cleanup is never
// broken. The package also re-encodes oversized images in place and reports
// on storage usage per folder.
//
// # Components
//
//   - refindex: the database-side reference index (see subpackage).
//   - Scanner: cursor-paginated listing of the remote catalog.
//   - Service: orphan detection, gated cleanup, bulk optimization, reports.
//   - Handler: the /admin/images HTTP surface.
//   - Feature: registers everything with the application loader.
//
// # HTTP Endpoints
//
//   - GET  /admin/images/stats     : usage and per-folder statistics.
//   - GET  /admin/images/orphaned  : one page of orphan candidates.
//   - POST /admin/images/cleanup   : confirmation-gated orphan deletion.
//   - POST /admin/images/optimize  : bulk in-place re-encoding.
//   - GET  /admin/images/report    : usage/optimization/summary reports.
//   - GET  /admin/images/:publicId : single asset metadata and references.
package images

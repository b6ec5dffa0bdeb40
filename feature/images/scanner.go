package images

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"

	"image-admin/core/storage"
	"image-admin/core/utils"

	"github.com/minio/minio-go/v7"
)

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

// Scanner is the paginated iterator over the remote asset catalog.
// Each call fetches exactly one page; callers drive pagination by threading
// the returned cursor. The cursor is host-issued (the last object key of the
// page), so re-scans never skip an asset on an unchanged catalog.
type Scanner struct {
	client  storage.Client
	bucket  string
	baseURL string
}

// NewScanner creates a scanner over the given bucket.
func NewScanner(client storage.Client, bucket, baseURL string) *Scanner {
	return &Scanner{client: client, bucket: bucket, baseURL: strings.TrimSuffix(baseURL, "/")}
}

// ScanPage fetches one page of the catalog. The listing reads one asset past
// the page size to decide HasMore without a second round trip.
func (s *Scanner) ScanPage(ctx context.Context, filter ScanFilter) (*ScanResult, error) {
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	prefix := ""
	if filter.Folder != "" {
		prefix = strings.TrimSuffix(filter.Folder, "/") + "/"
	}

	// Cancel the listing as soon as the page is full so the client stops
	// streaming keys we will not consume.
	listCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	objectCh := s.client.ListObjects(listCtx, s.bucket, minio.ListObjectsOptions{
		Prefix:     prefix,
		Recursive:  true,
		StartAfter: filter.Cursor,
	})

	result := &ScanResult{Assets: make([]AssetRef, 0, pageSize)}
	for obj := range objectCh {
		if obj.Err != nil {
			return nil, fmt.Errorf("%w: list assets: %v", ErrHostUnavailable, obj.Err)
		}
		if len(result.Assets) == pageSize {
			result.HasMore = true
			result.NextCursor = result.Assets[pageSize-1].PublicID
			break
		}
		result.Assets = append(result.Assets, toAssetRef(obj, s.baseURL))
	}

	return result, nil
}

// Stat fetches one asset's metadata, including dimensions when the uploader
// recorded them in object metadata.
func (s *Scanner) Stat(ctx context.Context, publicID string) (*AssetRef, error) {
	info, err := s.client.StatObject(ctx, s.bucket, publicID, minio.StatObjectOptions{})
	if err != nil {
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" || resp.StatusCode == 404 {
			return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, publicID)
		}
		return nil, fmt.Errorf("%w: stat %s: %v", ErrHostUnavailable, publicID, err)
	}

	ref := toAssetRef(info, s.baseURL)
	ref.PublicID = publicID
	ref.Folder = folderOf(publicID)
	ref.Format = formatOf(publicID)
	if s.baseURL != "" {
		ref.SecureURL = s.baseURL + "/" + publicID
	}

	// Uploaders record pixel dimensions as user metadata; absent means unknown.
	for key, value := range info.UserMetadata {
		switch strings.ToLower(key) {
		case "width", "x-amz-meta-width":
			ref.Width = int(utils.ToInt64(value))
		case "height", "x-amz-meta-height":
			ref.Height = int(utils.ToInt64(value))
		}
	}

	return &ref, nil
}

// toAssetRef maps a host object to the engine's snapshot type.
func toAssetRef(obj minio.ObjectInfo, baseURL string) AssetRef {
	ref := AssetRef{
		PublicID:  obj.Key,
		Format:    formatOf(obj.Key),
		Bytes:     obj.Size,
		CreatedAt: obj.LastModified,
		Folder:    folderOf(obj.Key),
	}
	if baseURL != "" {
		ref.SecureURL = baseURL + "/" + obj.Key
	}
	if len(obj.UserTags) > 0 {
		tags := make([]string, 0, len(obj.UserTags))
		for k, v := range obj.UserTags {
			if v == "" {
				tags = append(tags, k)
				continue
			}
			tags = append(tags, k+"="+v)
		}
		sort.Strings(tags)
		ref.Tags = tags
	}
	return ref
}

func folderOf(key string) string {
	dir := path.Dir(key)
	if dir == "." || dir == "/" {
		return ""
	}
	return dir
}

func formatOf(key string) string {
	ext := strings.TrimPrefix(path.Ext(key), ".")
	return strings.ToLower(ext)
}

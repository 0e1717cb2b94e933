// internal/services/storage_service.go
package services

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/nexsy/nexsy-backend/internal/apperrors"
	"github.com/nexsy/nexsy-backend/internal/config"
)

// File kinds accepted by the upload surface.
const (
	FileKindImage    = "image"
	FileKindVideo    = "video"
	FileKindDocument = "document"
)

// Logical bucket names exposed to clients.
const (
	BucketAssets    = "assets"
	BucketGenerated = "generated"
	BucketTemplates = "templates"
	BucketReports   = "reports"
)

const (
	maxFileSize  = 500 * 1024 * 1024
	maxImageSize = 10 * 1024 * 1024
)

var (
	allowedImageTypes = map[string]bool{
		"image/jpeg": true,
		"image/jpg":  true,
		"image/png":  true,
		"image/webp": true,
	}
	allowedVideoTypes = map[string]bool{
		"video/mp4":  true,
		"video/webm": true,
		"video/mov":  true,
	}
	allowedDocumentTypes = map[string]bool{
		"application/pdf":  true,
		"text/plain":       true,
		"application/json": true,
	}
)

// s3API is the slice of the S3 client the service uses.
type s3API interface {
	PutObject(*s3.PutObjectInput) (*s3.PutObjectOutput, error)
	DeleteObject(*s3.DeleteObjectInput) (*s3.DeleteObjectOutput, error)
	ListObjectsV2(*s3.ListObjectsV2Input) (*s3.ListObjectsV2Output, error)
}

type StorageService struct {
	s3Client s3API
	config   *config.Config

	// presign produces a time-limited GET URL for an object. Split out
	// from s3API because presigning needs the concrete request type.
	presign func(bucket, key string, expiration time.Duration) (string, error)

	now func() time.Time
}

type UploadInput struct {
	Body        io.Reader
	Filename    string
	ContentType string
	Size        int64
	Kind        string // image, video, document
	ProductID   string // optional, organizes the path under the product
	Bucket      string // logical bucket, defaults to assets
}

type FileInfo struct {
	FilePath    string `json:"file_path"`
	BucketName  string `json:"bucket_name"`
	FileName    string `json:"file_name"`
	FileSize    int64  `json:"file_size"`
	ContentType string `json:"content_type"`
	UploadedAt  string `json:"uploaded_at"`
	PublicURL   string `json:"public_url,omitempty"`
}

type StoredObject struct {
	FilePath    string `json:"file_path"`
	FileName    string `json:"file_name"`
	FileSize    int64  `json:"file_size"`
	ContentType string `json:"content_type"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	svc := &StorageService{
		config: cfg,
		now:    time.Now,
	}

	if cfg.AWS.AccessKeyID == "" {
		// No credentials configured; upload endpoints will report the
		// gateway as unavailable.
		return svc, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWS.AccessKeyID,
			cfg.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	client := s3.New(sess)
	svc.s3Client = client
	svc.presign = func(bucket, key string, expiration time.Duration) (string, error) {
		req, _ := client.GetObjectRequest(&s3.GetObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(key),
		})
		return req.Presign(expiration)
	}
	return svc, nil
}

// Upload validates the file and writes it under the owner's path.
// Validation happens before any storage call.
func (s *StorageService) Upload(ownerID string, in UploadInput) (*FileInfo, error) {
	if err := validateFile(in.Kind, in.ContentType, in.Size); err != nil {
		return nil, err
	}

	bucketType := in.Bucket
	if bucketType == "" {
		bucketType = BucketAssets
	}
	bucketName, err := s.bucketName(bucketType)
	if err != nil {
		return nil, err
	}
	if s.s3Client == nil {
		return nil, fmt.Errorf("%w: object storage is not configured", apperrors.ErrUpstreamUnavailable)
	}

	key := s.generateFilePath(ownerID, in.Kind, in.ProductID, in.Filename)

	body, err := io.ReadAll(io.LimitReader(in.Body, maxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(body)) > sizeCap(in.Kind) {
		return nil, fileTooLarge(in.Kind)
	}

	_, err = s.s3Client.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(in.ContentType),
		Metadata: map[string]*string{
			"user-id":           aws.String(ownerID),
			"file-type":         aws.String(in.Kind),
			"original-filename": aws.String(in.Filename),
			"product-id":        aws.String(in.ProductID),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload object: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"owner_id": ownerID,
		"path":     key,
		"bucket":   bucketName,
		"size":     len(body),
	}).Info("Uploaded file")

	return &FileInfo{
		FilePath:    key,
		BucketName:  bucketName,
		FileName:    in.Filename,
		FileSize:    int64(len(body)),
		ContentType: in.ContentType,
		UploadedAt:  s.now().UTC().Format(time.RFC3339),
		PublicURL:   s.publicURL(bucketType, key),
	}, nil
}

// publicURL builds a CDN URL for objects in the assets bucket when a
// CloudFront distribution is configured. Other buckets stay private and
// are reached through signed URLs only.
func (s *StorageService) publicURL(bucketType, key string) string {
	if bucketType != BucketAssets || s.config.AWS.CloudFrontURL == "" {
		return ""
	}
	return strings.TrimSuffix(s.config.AWS.CloudFrontURL, "/") + "/" + key
}

// UploadGeneratedContent writes model-produced bytes into the generated
// bucket under the owner's product path and returns a signed URL for
// immediate display.
func (s *StorageService) UploadGeneratedContent(ownerID, productID string, content []byte, contentType, fileExtension, category string) (*FileInfo, string, error) {
	if s.s3Client == nil {
		return nil, "", fmt.Errorf("%w: object storage is not configured", apperrors.ErrUpstreamUnavailable)
	}
	if category == "" {
		category = "ai_generated"
	}

	bucketName, err := s.bucketName(BucketGenerated)
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("%s_%s_%s%s",
		category, s.now().UTC().Format("20060102_150405"), uuid.NewString(), fileExtension)
	key := fmt.Sprintf("users/%s/products/%s/generated/%s", ownerID, productID, filename)

	_, err = s.s3Client.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(content),
		ContentType: aws.String(contentType),
		Metadata: map[string]*string{
			"user-id":          aws.String(ownerID),
			"product-id":       aws.String(productID),
			"content-category": aws.String(category),
		},
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to upload generated content: %w", err)
	}

	signedURL, err := s.presign(bucketName, key, 24*time.Hour)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign generated content URL: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"owner_id": ownerID,
		"path":     key,
		"size":     len(content),
	}).Info("Uploaded generated content")

	return &FileInfo{
		FilePath:    key,
		BucketName:  bucketName,
		FileName:    filename,
		FileSize:    int64(len(content)),
		ContentType: contentType,
		UploadedAt:  s.now().UTC().Format(time.RFC3339),
	}, signedURL, nil
}

// SignedURL returns a time-limited GET URL for a path the caller owns.
func (s *StorageService) SignedURL(ownerID, rawPath string, expiration time.Duration) (string, error) {
	path, err := s.authorize(ownerID, rawPath)
	if err != nil {
		return "", err
	}
	if s.s3Client == nil {
		return "", fmt.Errorf("%w: object storage is not configured", apperrors.ErrUpstreamUnavailable)
	}

	url, err := s.presign(s.bucketFor(path), path.String(), expiration)
	if err != nil {
		return "", fmt.Errorf("failed to sign URL for %s: %w", path, err)
	}
	return url, nil
}

// Delete removes an object the caller owns.
func (s *StorageService) Delete(ownerID, rawPath string) error {
	path, err := s.authorize(ownerID, rawPath)
	if err != nil {
		return err
	}
	if s.s3Client == nil {
		return fmt.Errorf("%w: object storage is not configured", apperrors.ErrUpstreamUnavailable)
	}

	_, err = s.s3Client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(s.bucketFor(path)),
		Key:    aws.String(path.String()),
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}

	logrus.WithFields(logrus.Fields{
		"owner_id": ownerID,
		"path":     path.String(),
	}).Info("Deleted file")
	return nil
}

// ListUserFiles lists objects under the owner's prefix in one logical
// bucket, optionally narrowed by an extra prefix.
func (s *StorageService) ListUserFiles(ownerID, bucketType, prefix string, limit int64) ([]StoredObject, error) {
	bucketName, err := s.bucketName(bucketType)
	if err != nil {
		return nil, err
	}
	if s.s3Client == nil {
		return nil, fmt.Errorf("%w: object storage is not configured", apperrors.ErrUpstreamUnavailable)
	}
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	userPrefix := "users/" + ownerID + "/"
	if prefix != "" {
		userPrefix += strings.TrimPrefix(prefix, "/")
	}

	out, err := s.s3Client.ListObjectsV2(&s3.ListObjectsV2Input{
		Bucket:  aws.String(bucketName),
		Prefix:  aws.String(userPrefix),
		MaxKeys: aws.Int64(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	files := make([]StoredObject, 0, len(out.Contents))
	for _, obj := range out.Contents {
		key := aws.StringValue(obj.Key)
		object := StoredObject{
			FilePath: key,
			FileName: filepath.Base(key),
			FileSize: aws.Int64Value(obj.Size),
		}
		if obj.LastModified != nil {
			object.UpdatedAt = obj.LastModified.UTC().Format(time.RFC3339)
		}
		files = append(files, object)
	}
	return files, nil
}

// Available reports whether a storage client is configured.
func (s *StorageService) Available() bool {
	return s.s3Client != nil
}

// authorize parses the raw path and checks the owner segment before any
// storage call is made.
func (s *StorageService) authorize(ownerID, rawPath string) (ObjectPath, error) {
	path, err := ParseObjectPath(rawPath)
	if err != nil {
		return ObjectPath{}, err
	}
	if !path.OwnedBy(ownerID) {
		return ObjectPath{}, fmt.Errorf("%w: file is outside your scope", apperrors.ErrForbidden)
	}
	return path, nil
}

// bucketFor routes a path to the physical bucket its contents live in.
func (s *StorageService) bucketFor(path ObjectPath) string {
	switch {
	case path.hasSegment("generated"):
		return s.config.AWS.GeneratedBucket
	case path.hasSegment("reports"):
		return s.config.AWS.ReportsBucket
	default:
		return s.config.AWS.AssetsBucket
	}
}

func (s *StorageService) bucketName(bucketType string) (string, error) {
	switch bucketType {
	case BucketAssets:
		return s.config.AWS.AssetsBucket, nil
	case BucketGenerated:
		return s.config.AWS.GeneratedBucket, nil
	case BucketTemplates:
		return s.config.AWS.TemplatesBucket, nil
	case BucketReports:
		return s.config.AWS.ReportsBucket, nil
	default:
		return "", fmt.Errorf("%w: invalid bucket type %q", apperrors.ErrValidation, bucketType)
	}
}

func (s *StorageService) generateFilePath(ownerID, kind, productID, originalFilename string) string {
	ext := filepath.Ext(originalFilename)
	filename := fmt.Sprintf("%s_%s%s", s.now().UTC().Format("20060102_150405"), uuid.NewString(), ext)

	if productID != "" {
		return fmt.Sprintf("users/%s/products/%s/%ss/%s", ownerID, productID, kind, filename)
	}
	return fmt.Sprintf("users/%s/uploads/%ss/%s", ownerID, kind, filename)
}

func validateFile(kind, contentType string, size int64) error {
	if contentType == "" {
		return fmt.Errorf("%w: content type could not be determined", apperrors.ErrInvalidFileType)
	}

	var allowed map[string]bool
	switch kind {
	case FileKindImage:
		allowed = allowedImageTypes
	case FileKindVideo:
		allowed = allowedVideoTypes
	case FileKindDocument:
		allowed = allowedDocumentTypes
	default:
		return fmt.Errorf("%w: unknown file kind %q", apperrors.ErrInvalidFileType, kind)
	}
	if !allowed[contentType] {
		return fmt.Errorf("%w: %s is not an allowed %s type", apperrors.ErrInvalidFileType, contentType, kind)
	}

	if size > sizeCap(kind) {
		return fileTooLarge(kind)
	}
	return nil
}

func sizeCap(kind string) int64 {
	if kind == FileKindImage {
		return maxImageSize
	}
	return maxFileSize
}

func fileTooLarge(kind string) error {
	return fmt.Errorf("%w: exceeds maximum size of %dMB", apperrors.ErrFileTooLarge, sizeCap(kind)/(1024*1024))
}

// internal/services/storage_service_test.go
package services

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/nexsy/nexsy-backend/internal/apperrors"
	"github.com/nexsy/nexsy-backend/internal/config"
)

// fakeS3 records calls so tests can prove validation and authorization
// happen before any storage request.
type fakeS3 struct {
	putCalls    int
	deleteCalls int
	listCalls   int

	lastPut    *s3.PutObjectInput
	lastDelete *s3.DeleteObjectInput
	lastList   *s3.ListObjectsV2Input

	listOutput *s3.ListObjectsV2Output
}

func (f *fakeS3) PutObject(in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
	f.putCalls++
	f.lastPut = in
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(in *s3.DeleteObjectInput) (*s3.DeleteObjectOutput, error) {
	f.deleteCalls++
	f.lastDelete = in
	return &s3.DeleteObjectOutput{}, nil
}

func (f *fakeS3) ListObjectsV2(in *s3.ListObjectsV2Input) (*s3.ListObjectsV2Output, error) {
	f.listCalls++
	f.lastList = in
	if f.listOutput != nil {
		return f.listOutput, nil
	}
	return &s3.ListObjectsV2Output{}, nil
}

func storageTestConfig() *config.Config {
	return &config.Config{
		AWS: config.AWSConfig{
			Region:          "us-east-1",
			AssetsBucket:    "nexsy-assets",
			GeneratedBucket: "nexsy-generated",
			TemplatesBucket: "nexsy-templates",
			ReportsBucket:   "nexsy-reports",
		},
	}
}

type StorageServiceTestSuite struct {
	suite.Suite
	fake         *fakeS3
	svc          *StorageService
	presignCalls int
	lastPresign  struct {
		bucket string
		key    string
		expiry time.Duration
	}
}

func (s *StorageServiceTestSuite) SetupTest() {
	s.fake = &fakeS3{}
	s.presignCalls = 0
	s.svc = &StorageService{
		s3Client: s.fake,
		config:   storageTestConfig(),
		now: func() time.Time {
			return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
		},
		presign: func(bucket, key string, expiration time.Duration) (string, error) {
			s.presignCalls++
			s.lastPresign.bucket = bucket
			s.lastPresign.key = key
			s.lastPresign.expiry = expiration
			return fmt.Sprintf("https://%s.s3.amazonaws.com/%s?signed", bucket, key), nil
		},
	}
}

func (s *StorageServiceTestSuite) upload(in UploadInput) (*FileInfo, error) {
	return s.svc.Upload("user-1", in)
}

func (s *StorageServiceTestSuite) TestUploadImage() {
	info, err := s.upload(UploadInput{
		Body:        strings.NewReader("fake png bytes"),
		Filename:    "photo.png",
		ContentType: "image/png",
		Size:        14,
		Kind:        FileKindImage,
		ProductID:   "p1",
	})
	require.NoError(s.T(), err)
	require.Equal(s.T(), 1, s.fake.putCalls)

	assert.True(s.T(), strings.HasPrefix(info.FilePath, "users/user-1/products/p1/images/"))
	assert.True(s.T(), strings.HasSuffix(info.FilePath, ".png"))
	assert.Equal(s.T(), "nexsy-assets", info.BucketName)
	assert.Equal(s.T(), "photo.png", info.FileName)
	assert.Equal(s.T(), int64(14), info.FileSize)
	assert.Equal(s.T(), "image/png", info.ContentType)

	assert.Equal(s.T(), "nexsy-assets", aws.StringValue(s.fake.lastPut.Bucket))
	assert.Equal(s.T(), "image/png", aws.StringValue(s.fake.lastPut.ContentType))
	assert.Equal(s.T(), "user-1", aws.StringValue(s.fake.lastPut.Metadata["user-id"]))
}

func (s *StorageServiceTestSuite) TestUploadPublicURLWithCDN() {
	// No distribution configured means no public URL.
	info, err := s.upload(UploadInput{
		Body:        strings.NewReader("fake png bytes"),
		Filename:    "photo.png",
		ContentType: "image/png",
		Size:        14,
		Kind:        FileKindImage,
	})
	require.NoError(s.T(), err)
	assert.Empty(s.T(), info.PublicURL)

	s.svc.config.AWS.CloudFrontURL = "https://cdn.nexsy.io/"

	info, err = s.upload(UploadInput{
		Body:        strings.NewReader("fake png bytes"),
		Filename:    "photo.png",
		ContentType: "image/png",
		Size:        14,
		Kind:        FileKindImage,
	})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "https://cdn.nexsy.io/"+info.FilePath, info.PublicURL)

	// Private buckets are never exposed through the distribution.
	info, err = s.upload(UploadInput{
		Body:        strings.NewReader("%PDF-1.4"),
		Filename:    "report.pdf",
		ContentType: "application/pdf",
		Size:        8,
		Kind:        FileKindDocument,
		Bucket:      BucketReports,
	})
	require.NoError(s.T(), err)
	assert.Empty(s.T(), info.PublicURL)
}

func (s *StorageServiceTestSuite) TestUploadWithoutProductUsesUploadsPath() {
	info, err := s.upload(UploadInput{
		Body:        strings.NewReader("%PDF-1.4"),
		Filename:    "report.pdf",
		ContentType: "application/pdf",
		Size:        8,
		Kind:        FileKindDocument,
		Bucket:      BucketReports,
	})
	require.NoError(s.T(), err)
	assert.True(s.T(), strings.HasPrefix(info.FilePath, "users/user-1/uploads/documents/"))
	assert.Equal(s.T(), "nexsy-reports", info.BucketName)
}

func (s *StorageServiceTestSuite) TestUploadRejectsDisallowedTypeBeforeStorageCall() {
	_, err := s.upload(UploadInput{
		Body:        strings.NewReader("GIF89a"),
		Filename:    "anim.gif",
		ContentType: "image/gif",
		Size:        6,
		Kind:        FileKindImage,
	})
	assert.ErrorIs(s.T(), err, apperrors.ErrInvalidFileType)
	assert.Equal(s.T(), 0, s.fake.putCalls)

	_, err = s.upload(UploadInput{
		Body:        strings.NewReader("binary"),
		Filename:    "tool.exe",
		ContentType: "application/octet-stream",
		Size:        6,
		Kind:        FileKindDocument,
	})
	assert.ErrorIs(s.T(), err, apperrors.ErrInvalidFileType)
	assert.Equal(s.T(), 0, s.fake.putCalls)

	_, err = s.upload(UploadInput{
		Body:        strings.NewReader("data"),
		Filename:    "file.bin",
		ContentType: "",
		Size:        4,
		Kind:        FileKindImage,
	})
	assert.ErrorIs(s.T(), err, apperrors.ErrInvalidFileType)
	assert.Equal(s.T(), 0, s.fake.putCalls)
}

func (s *StorageServiceTestSuite) TestUploadImageSizeBoundary() {
	atCap := bytes.Repeat([]byte("a"), maxImageSize)
	_, err := s.upload(UploadInput{
		Body:        bytes.NewReader(atCap),
		Filename:    "big.png",
		ContentType: "image/png",
		Size:        int64(len(atCap)),
		Kind:        FileKindImage,
	})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 1, s.fake.putCalls)

	_, err = s.upload(UploadInput{
		Body:        strings.NewReader("tiny"),
		Filename:    "big.png",
		ContentType: "image/png",
		Size:        maxImageSize + 1,
		Kind:        FileKindImage,
	})
	assert.ErrorIs(s.T(), err, apperrors.ErrFileTooLarge)
	assert.Equal(s.T(), 1, s.fake.putCalls)
}

func (s *StorageServiceTestSuite) TestUploadChecksActualBodySize() {
	// Declared size lies; the read body is over the image cap.
	oversize := bytes.Repeat([]byte("a"), maxImageSize+1)
	_, err := s.upload(UploadInput{
		Body:        bytes.NewReader(oversize),
		Filename:    "big.png",
		ContentType: "image/png",
		Size:        10,
		Kind:        FileKindImage,
	})
	assert.ErrorIs(s.T(), err, apperrors.ErrFileTooLarge)
	assert.Equal(s.T(), 0, s.fake.putCalls)
}

func (s *StorageServiceTestSuite) TestUploadRejectsUnknownBucketType() {
	_, err := s.upload(UploadInput{
		Body:        strings.NewReader("data"),
		Filename:    "photo.png",
		ContentType: "image/png",
		Size:        4,
		Kind:        FileKindImage,
		Bucket:      "backups",
	})
	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
	assert.Equal(s.T(), 0, s.fake.putCalls)
}

func (s *StorageServiceTestSuite) TestUploadGeneratedContent() {
	info, signedURL, err := s.svc.UploadGeneratedContent(
		"user-1", "p1", []byte("generated image"), "image/png", ".png", "ad_image")
	require.NoError(s.T(), err)
	require.Equal(s.T(), 1, s.fake.putCalls)

	assert.True(s.T(), strings.HasPrefix(info.FilePath, "users/user-1/products/p1/generated/ad_image_"))
	assert.Equal(s.T(), "nexsy-generated", info.BucketName)
	assert.NotEmpty(s.T(), signedURL)

	assert.Equal(s.T(), 1, s.presignCalls)
	assert.Equal(s.T(), "nexsy-generated", s.lastPresign.bucket)
	assert.Equal(s.T(), info.FilePath, s.lastPresign.key)
	assert.Equal(s.T(), 24*time.Hour, s.lastPresign.expiry)
}

func (s *StorageServiceTestSuite) TestSignedURLForOwnedPath() {
	url, err := s.svc.SignedURL("user-1", "users/user-1/uploads/images/photo.png", time.Hour)
	require.NoError(s.T(), err)
	assert.Contains(s.T(), url, "signed")
	assert.Equal(s.T(), "nexsy-assets", s.lastPresign.bucket)
	assert.Equal(s.T(), time.Hour, s.lastPresign.expiry)
}

func (s *StorageServiceTestSuite) TestSignedURLRejectsForeignPath() {
	_, err := s.svc.SignedURL("user-1", "users/user-2/uploads/images/photo.png", time.Hour)
	assert.ErrorIs(s.T(), err, apperrors.ErrForbidden)
	assert.Equal(s.T(), 0, s.presignCalls)

	// The owner segment must match exactly, not as a prefix.
	_, err = s.svc.SignedURL("user-12", "users/user-1/uploads/images/photo.png", time.Hour)
	assert.ErrorIs(s.T(), err, apperrors.ErrForbidden)
	assert.Equal(s.T(), 0, s.presignCalls)
}

func (s *StorageServiceTestSuite) TestSignedURLRoutesBucketByPathSegment() {
	_, err := s.svc.SignedURL("user-1", "users/user-1/products/p1/generated/ad.png", time.Hour)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "nexsy-generated", s.lastPresign.bucket)

	_, err = s.svc.SignedURL("user-1", "users/user-1/reports/q3.pdf", time.Hour)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "nexsy-reports", s.lastPresign.bucket)

	_, err = s.svc.SignedURL("user-1", "users/user-1/uploads/images/photo.png", time.Hour)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "nexsy-assets", s.lastPresign.bucket)
}

func (s *StorageServiceTestSuite) TestDeleteOwnedPath() {
	err := s.svc.Delete("user-1", "users/user-1/uploads/images/photo.png")
	require.NoError(s.T(), err)
	require.Equal(s.T(), 1, s.fake.deleteCalls)
	assert.Equal(s.T(), "nexsy-assets", aws.StringValue(s.fake.lastDelete.Bucket))
	assert.Equal(s.T(), "users/user-1/uploads/images/photo.png", aws.StringValue(s.fake.lastDelete.Key))
}

func (s *StorageServiceTestSuite) TestDeleteRejectsForeignPath() {
	err := s.svc.Delete("user-1", "users/user-2/uploads/images/photo.png")
	assert.ErrorIs(s.T(), err, apperrors.ErrForbidden)
	assert.Equal(s.T(), 0, s.fake.deleteCalls)
}

func (s *StorageServiceTestSuite) TestListUserFiles() {
	modified := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	s.fake.listOutput = &s3.ListObjectsV2Output{
		Contents: []*s3.Object{
			{
				Key:          aws.String("users/user-1/uploads/images/photo.png"),
				Size:         aws.Int64(1024),
				LastModified: &modified,
			},
		},
	}

	files, err := s.svc.ListUserFiles("user-1", BucketAssets, "uploads/", 500)
	require.NoError(s.T(), err)
	require.Len(s.T(), files, 1)
	assert.Equal(s.T(), "photo.png", files[0].FileName)
	assert.Equal(s.T(), int64(1024), files[0].FileSize)

	assert.Equal(s.T(), "users/user-1/uploads/", aws.StringValue(s.fake.lastList.Prefix))
	// Limits above the cap are clamped.
	assert.Equal(s.T(), int64(100), aws.Int64Value(s.fake.lastList.MaxKeys))
}

func (s *StorageServiceTestSuite) TestUnconfiguredServiceReportsUnavailable() {
	svc := &StorageService{config: storageTestConfig(), now: time.Now}
	assert.False(s.T(), svc.Available())

	_, err := svc.Upload("user-1", UploadInput{
		Body:        strings.NewReader("data"),
		Filename:    "photo.png",
		ContentType: "image/png",
		Size:        4,
		Kind:        FileKindImage,
	})
	assert.ErrorIs(s.T(), err, apperrors.ErrUpstreamUnavailable)

	_, err = svc.SignedURL("user-1", "users/user-1/uploads/images/photo.png", time.Hour)
	assert.ErrorIs(s.T(), err, apperrors.ErrUpstreamUnavailable)

	err = svc.Delete("user-1", "users/user-1/uploads/images/photo.png")
	assert.ErrorIs(s.T(), err, apperrors.ErrUpstreamUnavailable)
}

func TestStorageServiceSuite(t *testing.T) {
	suite.Run(t, new(StorageServiceTestSuite))
}

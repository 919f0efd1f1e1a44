package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	cfg "github.com/jobtrackr/jobtrackr/internal/config"
	"github.com/jobtrackr/jobtrackr/internal/models"
	"gorm.io/gorm"
)

// Presigned URLs are short-lived; five minutes is plenty for an upload or a
// PDF fetch.
const presignExpiry = 5 * time.Minute

// ResumeService stores resume metadata in the database and the files in
// S3-compatible object storage, handing out presigned URLs for both
// directions.
type ResumeService struct {
	DB     *gorm.DB
	Config *cfg.Config
}

func NewResumeService(db *gorm.DB, config *cfg.Config) *ResumeService {
	return &ResumeService{DB: db, Config: config}
}

func (s *ResumeService) presignClient(ctx context.Context) (*s3.PresignClient, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(s.Config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.Config.S3AccessKey, s.Config.S3SecretKey, "",
		)))
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if s.Config.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(s.Config.S3BaseEndpoint)
		}
	})
	return s3.NewPresignClient(client), nil
}

func storageKey(userID string) string {
	now := time.Now()
	return fmt.Sprintf("resumes/%s/%d/%02d/%s.pdf", userID, now.Year(), now.Month(), uuid.New())
}

// Create registers a resume version and returns a presigned PUT URL the
// client uploads the file to.
func (s *ResumeService) Create(ctx context.Context, userID, versionName, fileName string) (*models.Resume, string, error) {
	resume := &models.Resume{
		UserID:      userID,
		VersionName: versionName,
		FileName:    fileName,
		StorageKey:  storageKey(userID),
	}
	if err := s.DB.WithContext(ctx).Create(resume).Error; err != nil {
		return nil, "", err
	}

	pc, err := s.presignClient(ctx)
	if err != nil {
		return nil, "", err
	}
	req, err := pc.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.Config.S3Bucket),
		Key:    aws.String(resume.StorageKey),
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return nil, "", err
	}
	return resume, req.URL, nil
}

func (s *ResumeService) List(ctx context.Context, userID string) ([]models.Resume, error) {
	var resumes []models.Resume
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&resumes).Error
	return resumes, err
}

// SignedURL returns a short-lived GET URL for the stored file.
func (s *ResumeService) SignedURL(ctx context.Context, userID, id string) (string, error) {
	var resume models.Resume
	err := s.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&resume).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}

	pc, err := s.presignClient(ctx)
	if err != nil {
		return "", err
	}
	req, err := pc.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Config.S3Bucket),
		Key:    aws.String(resume.StorageKey),
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

func (s *ResumeService) Delete(ctx context.Context, userID, id string) error {
	res := s.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Resume{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

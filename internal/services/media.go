package services

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const uploadURLExpiry = 5 * time.Minute

// MediaService issues pre-signed S3 upload URLs for post media
type MediaService struct {
	s3Client *s3.Client
	s3Bucket string
	region   string
}

// NewMediaService creates a new media service
func NewMediaService(awsRegion, s3Bucket, accessKey, secretKey, endpoint string) (*MediaService, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(awsRegion),
	}
	if accessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return &MediaService{
		s3Client: s3Client,
		s3Bucket: s3Bucket,
		region:   awsRegion,
	}, nil
}

// UploadRequest asks for a pre-signed media upload URL
type UploadRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

// UploadResponse carries the pre-signed URL and the final media URL to
// store on the post once the upload completes
type UploadResponse struct {
	UploadURL string `json:"upload_url"`
	MediaURL  string `json:"media_url"`
	MediaID   string `json:"media_id"`
	ExpiresIn int    `json:"expires_in"`
}

// GetPreSignedURL generates a pre-signed URL for uploading post media
func (s *MediaService) GetPreSignedURL(ctx context.Context, userID, contentType string) (*UploadResponse, error) {
	mediaID := uuid.New().String()
	s3Key := fmt.Sprintf("%s/%s.jpg", userID, mediaID)

	presignClient := s3.NewPresignClient(s.s3Client)
	request, err := presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Bucket),
		Key:         aws.String(s3Key),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = uploadURLExpiry
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate pre-signed URL: %w", err)
	}

	mediaURL := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.s3Bucket, s.region, s3Key)
	return &UploadResponse{
		UploadURL: request.URL,
		MediaURL:  mediaURL,
		MediaID:   mediaID,
		ExpiresIn: int(uploadURLExpiry.Seconds()),
	}, nil
}

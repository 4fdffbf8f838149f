package services

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"blog-backend/internal/apperrors"
	appconfig "blog-backend/internal/config"
	"blog-backend/internal/models"
	"blog-backend/internal/policy"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const uploadURLTTL = 5 * time.Minute

// objectPresigner is the part of the S3 presign client ImageService needs
type objectPresigner interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// ImageService issues presigned upload URLs for blog images
type ImageService struct {
	presigner     objectPresigner
	bucket        string
	publicBaseURL string
}

// NewImageService creates an image service backed by S3 or an S3-compatible
// endpoint
func NewImageService(ctx context.Context, cfg appconfig.AWSConfig) (*ImageService, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	publicBaseURL := cfg.PublicBaseURL
	if publicBaseURL == "" {
		publicBaseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.Region)
	}

	return newImageService(s3.NewPresignClient(client), cfg.S3Bucket, publicBaseURL), nil
}

func newImageService(presigner objectPresigner, bucket, publicBaseURL string) *ImageService {
	return &ImageService{
		presigner:     presigner,
		bucket:        bucket,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
	}
}

// UploadRequest represents a request to get a pre-signed URL
type UploadRequest struct {
	Filename    string `json:"filename" validate:"required,max=255"`
	ContentType string `json:"content_type" validate:"required,startswith=image/"`
}

// UploadResponse carries the pre-signed URL and the image reference to put
// in a blog once the upload succeeds
type UploadResponse struct {
	UploadURL string `json:"upload_url"`
	ImageURL  string `json:"image_url"`
	ExpiresIn int    `json:"expires_in"`
}

// PresignUpload generates a pre-signed URL for uploading a blog image
func (s *ImageService) PresignUpload(ctx context.Context, actor *models.User, req UploadRequest) (*UploadResponse, error) {
	if err := policy.Authenticated(actor); err != nil {
		return nil, err
	}

	req.Filename = strings.TrimSpace(req.Filename)
	if req.ContentType == "" {
		req.ContentType = "image/jpeg"
	}
	args := map[string]any{"filename": req.Filename, "content_type": req.ContentType}
	if err := validateInput(req, args); err != nil {
		return nil, err
	}

	ext := strings.ToLower(path.Ext(req.Filename))
	if ext == "" {
		ext = ".jpg"
	}
	key := fmt.Sprintf("blogs/%s/%s%s", actor.ID, uuid.New().String(), ext)

	request, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(req.ContentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = uploadURLTTL
	})
	if err != nil {
		return nil, apperrors.ErrOperationFailed.WithCause(err).WithDetails(apperrors.InvalidArgs(args))
	}

	recordPresignedUpload()
	log.Info().
		Str("user_id", actor.ID).
		Str("key", key).
		Msg("Pre-signed image upload URL generated")

	return &UploadResponse{
		UploadURL: request.URL,
		ImageURL:  s.publicBaseURL + "/" + key,
		ExpiresIn: int(uploadURLTTL.Seconds()),
	}, nil
}

// Package s3service provides raw submission archiving for the lead intake service
package s3service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	appConfig "lead-intake-service/internal/config"
	"lead-intake-service/internal/utils"
)

// Service handles S3 operations
type Service struct {
	client     *s3.Client
	bucketName string
}

// NewService creates a new S3 service
func NewService(ctx context.Context, appCfg *appConfig.Config) (*Service, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &Service{
		client:     s3.NewFromConfig(cfg),
		bucketName: appCfg.S3Bucket,
	}, nil
}

// Archive stores the raw JSON request body under a date-partitioned key so
// every submission is recoverable even when a downstream side effect fails.
func (s *Service) Archive(ctx context.Context, leadID string, body []byte) error {
	key := fmt.Sprintf("leads/%s/%s.json", time.Now().UTC().Format("2006-01-02"), leadID)

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	}

	_, err := s.client.PutObject(ctx, input)
	if err != nil {
		utils.Logger.Error("Failed to archive submission to S3",
			zap.String("bucket", s.bucketName),
			zap.String("key", key),
			zap.Error(err),
		)
		return fmt.Errorf("failed to archive submission: %w", err)
	}

	utils.Logger.Info("Archived raw submission to S3",
		zap.String("bucket", s.bucketName),
		zap.String("key", key),
		zap.Int("size", len(body)),
	)

	return nil
}

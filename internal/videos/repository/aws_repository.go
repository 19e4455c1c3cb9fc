package repository

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/streamforge/transcoder/internal/videos"
)

type awsRepository struct {
	client *s3.Client
	bucket string
}

func NewAwsRepository(awsClient *s3.Client, bucket string) videos.AWSRepository {
	return &awsRepository{
		client: awsClient,
		bucket: bucket,
	}
}

func (a *awsRepository) UploadFile(ctx context.Context, key, localPath string) error {
	file, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", localPath, err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", localPath, err)
	}
	size := stat.Size()

	_, err = a.client.PutObject(
		ctx,
		&s3.PutObjectInput{
			Bucket:        &a.bucket,
			Key:           &key,
			ContentLength: &size,
			Body:          file,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to upload file : %w", err)
	}
	return nil
}

func (a *awsRepository) DownloadFile(ctx context.Context, key, localPath string) error {
	res, err := a.client.GetObject(
		ctx,
		&s3.GetObjectInput{
			Bucket: &a.bucket,
			Key:    &key,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to download file : %w", err)
	}
	defer res.Body.Close()

	outFile, err := os.Create(localPath)
	if err != nil {
		return fmt.Errorf("failed to create local file: %w", err)
	}
	defer outFile.Close()

	if _, err = io.Copy(outFile, res.Body); err != nil {
		return fmt.Errorf("failed to write local file: %w", err)
	}
	return outFile.Close()
}

func (a *awsRepository) RemoveObject(ctx context.Context, key string) error {
	_, err := a.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &a.bucket,
		Key:    &key,
	})
	if err != nil {
		return fmt.Errorf("failed to remove file : %w", err)
	}
	return nil
}

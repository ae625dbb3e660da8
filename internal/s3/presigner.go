package s3

import (
	"context"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const uploadURLTTL = 15 * time.Minute

// AvatarPresigner signs short-lived PUT URLs so avatar bytes go straight to
// object storage without passing through the API. Any S3-compatible store
// works; S3_USE_PATH_STYLE=true selects MinIO-style addressing.
type AvatarPresigner struct {
	presign *s3.PresignClient
	Bucket  string
}

func NewAvatarPresigner(ctx context.Context) (*AvatarPresigner, error) {
	endpoint := os.Getenv("S3_ENDPOINT")
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "us-east-1"
	}

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			os.Getenv("AWS_ACCESS_KEY_ID"),
			os.Getenv("AWS_SECRET_ACCESS_KEY"),
			"",
		)),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
		o.UsePathStyle = os.Getenv("S3_USE_PATH_STYLE") == "true"
	})

	return &AvatarPresigner{
		presign: s3.NewPresignClient(client),
		Bucket:  os.Getenv("S3_BUCKET_NAME"),
	}, nil
}

// PresignUpload returns a URL valid for 15 minutes that accepts a single
// PUT of the avatar image under objectKey.
func (p *AvatarPresigner) PresignUpload(ctx context.Context, objectKey string) (string, error) {
	request, err := p.presign.PresignPutObject(ctx,
		&s3.PutObjectInput{
			Bucket:      aws.String(p.Bucket),
			Key:         aws.String(objectKey),
			ContentType: aws.String("image/jpeg"),
		},
		s3.WithPresignExpires(uploadURLTTL),
	)
	if err != nil {
		return "", err
	}

	return request.URL, nil
}

// Package objectstore issues time-limited upload URLs for barber profile
// images.
package objectstore

import (
	"context"
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/BruksfildServices01/barber-booking-graphql/internal/config"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/httperr"
)

var extensionPattern = regexp.MustCompile(`^[a-z0-9]{1,8}$`)

type presignAPI interface {
	PresignPutObject(
		ctx context.Context,
		params *s3.PutObjectInput,
		optFns ...func(*s3.PresignOptions),
	) (*v4.PresignedHTTPRequest, error)
}

type S3Presigner struct {
	presign presignAPI
	bucket  string
	prefix  string
	ttl     time.Duration
}

func NewS3Presigner(cfg *config.Config) *S3Presigner {
	opts := s3.Options{Region: cfg.AWSRegion}
	if cfg.AWSAccessKeyID != "" {
		opts.Credentials = aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, ""),
		)
	}

	return &S3Presigner{
		presign: s3.NewPresignClient(s3.New(opts)),
		bucket:  cfg.S3Bucket,
		prefix:  cfg.S3UploadPrefix,
		ttl:     cfg.SignedURLTTL,
	}
}

// ObjectKey is where the profile image of barberID is uploaded to.
func (p *S3Presigner) ObjectKey(barberID, extension string) (string, error) {
	if _, err := primitive.ObjectIDFromHex(barberID); err != nil {
		return "", httperr.ErrInvalidInput("Barber ID is invalid")
	}

	ext := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(extension), "."))
	if !extensionPattern.MatchString(ext) {
		return "", httperr.ErrInvalidInput("file extension %q is invalid", extension)
	}

	return path.Join(p.prefix, fmt.Sprintf("%s.%s", barberID, ext)), nil
}

// SignedUploadURL returns a pre-signed PUT URL for the barber's profile image,
// valid for the configured TTL.
func (p *S3Presigner) SignedUploadURL(ctx context.Context, barberID, extension string) (string, error) {
	key, err := p.ObjectKey(barberID, extension)
	if err != nil {
		return "", err
	}

	req, err := p.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(p.ttl))
	if err != nil {
		return "", httperr.ErrUpstream("object store", err)
	}
	return req.URL, nil
}

package utils

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"mime"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var s3Client *s3.Client

// InitS3 is optional: without a bucket configured, meal images can still
// be set by URL, just not uploaded.
func InitS3() {
	if os.Getenv("S3_BUCKET") == "" {
		return
	}

	s3Region := os.Getenv("S3_REGION")
	if s3Region == "" {
		s3Region = os.Getenv("AWS_REGION") // fallback
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(s3Region))
	if err != nil {
		log.Fatalf("Unable to load AWS config for S3: %v", err)
	}

	s3Client = s3.NewFromConfig(cfg)
}

// parseDataURL splits a "data:<mime>;base64,<payload>" string into the
// decoded bytes, the declared content type and a file extension for the
// storage key. JPEG always maps to ".jpg"; unknown mime types fall back
// to "." plus the subtype.
func parseDataURL(dataURL string) (payload []byte, contentType, ext string, err error) {
	meta, data, ok := strings.Cut(dataURL, ",")
	if !ok || !strings.HasPrefix(meta, "data:") {
		return nil, "", "", fmt.Errorf("invalid base64 image")
	}
	contentType = strings.TrimPrefix(meta, "data:")
	contentType, _, _ = strings.Cut(contentType, ";")
	if contentType == "" {
		return nil, "", "", fmt.Errorf("invalid base64 image")
	}

	switch contentType {
	case "image/jpeg", "image/jpg":
		ext = ".jpg"
	default:
		if exts, _ := mime.ExtensionsByType(contentType); len(exts) > 0 {
			ext = exts[0]
		} else if _, subtype, ok := strings.Cut(contentType, "/"); ok {
			ext = "." + subtype
		}
	}

	payload, err = base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to decode image: %v", err)
	}
	return payload, contentType, ext, nil
}

// UploadBase64ImageToS3 stores a "data:<mime>;base64,<data>" payload
// under meal-images/ and returns the public CloudFront URL.
func UploadBase64ImageToS3(base64Data, filenamePrefix string) (string, error) {
	if s3Client == nil {
		return "", fmt.Errorf("image upload not configured")
	}

	imageData, contentType, ext, err := parseDataURL(base64Data)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("meal-images/%s-%d%s",
		filenamePrefix,
		time.Now().UnixNano(),
		ext,
	)

	_, err = s3Client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(os.Getenv("S3_BUCKET")),
		Key:         aws.String(key),
		Body:        bytes.NewReader(imageData),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %v", err)
	}

	cfURL := os.Getenv("CLOUDFRONT_URL")
	return fmt.Sprintf("%s/%s", cfURL, key), nil
}

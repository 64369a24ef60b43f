// Package s3mirror keeps a JSON attribute document per asset in an
// S3-compatible bucket.
package s3mirror

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"path"
	"strings"
	"sync"
	"time"

	"soulledger/internal/domain/soul"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

var ErrInvalidAssetID = errors.New("asset id cannot be used as an object key")

type Config struct {
	Bucket          string
	Prefix          string
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

// ObjectAPI is the part of the S3 client the mirror uses.
type ObjectAPI interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Document is the object stored at {prefix}/{asset}.json.
type Document struct {
	AssetID    string            `json:"asset_id"`
	Attributes map[string]string `json:"attributes"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

type Mirror struct {
	client ObjectAPI
	bucket string
	prefix string
	now    func() time.Time

	mu sync.Mutex
}

func New(ctx context.Context, cfg Config) (*Mirror, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, fmt.Errorf("s3 mirror bucket is required")
	}
	region := cfg.Region
	if region == "" {
		region = "auto"
	}
	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID, cfg.SecretAccessKey, "",
		)))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load s3 config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return NewWithClient(client, cfg.Bucket, cfg.Prefix), nil
}

func NewWithClient(client ObjectAPI, bucket, prefix string) *Mirror {
	return &Mirror{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		now:    time.Now,
	}
}

// Key returns the object key for assetID. Ids that are empty, dot segments
// or contain a path separator are rejected so every key stays under the
// prefix.
func (m *Mirror) Key(assetID string) (string, error) {
	if assetID == "" || assetID == "." || assetID == ".." || strings.ContainsAny(assetID, "/\\") {
		return "", fmt.Errorf("%w: %q", ErrInvalidAssetID, assetID)
	}
	return path.Join(m.prefix, assetID+".json"), nil
}

// UpdateAttributes merges attributes into the stored document, last write
// winning per key. Concurrent updates from this process are serialized, and
// an update built from an older ledger version than the stored document is
// dropped.
func (m *Mirror) UpdateAttributes(ctx context.Context, assetID string, attributes map[string]string) error {
	key, err := m.Key(assetID)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, err := m.load(ctx, key, assetID)
	if err != nil {
		return err
	}
	if soul.StaleAttributes(doc.Attributes, attributes) {
		log.Printf("[mirror] dropped stale update asset=%s version=%s stored=%s",
			assetID, attributes[soul.AttrLedgerVersion], doc.Attributes[soul.AttrLedgerVersion])
		return nil
	}
	for k, v := range attributes {
		doc.Attributes[k] = v
	}
	doc.UpdatedAt = m.now().UTC()

	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode attribute document: %w", err)
	}
	_, err = m.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(m.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("put attribute document: %w", err)
	}
	return nil
}

// Load returns the stored document, or an empty one when none exists yet.
func (m *Mirror) Load(ctx context.Context, assetID string) (Document, error) {
	key, err := m.Key(assetID)
	if err != nil {
		return Document{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.load(ctx, key, assetID)
}

func (m *Mirror) load(ctx context.Context, key, assetID string) (Document, error) {
	empty := Document{AssetID: assetID, Attributes: map[string]string{}}
	out, err := m.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(m.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return empty, nil
		}
		return Document{}, fmt.Errorf("get attribute document: %w", err)
	}
	defer out.Body.Close()

	raw, err := io.ReadAll(out.Body)
	if err != nil {
		return Document{}, fmt.Errorf("read attribute document: %w", err)
	}
	doc := empty
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &doc); err != nil {
			return Document{}, fmt.Errorf("decode attribute document: %w", err)
		}
	}
	if doc.Attributes == nil {
		doc.Attributes = map[string]string{}
	}
	doc.AssetID = assetID
	return doc, nil
}

func isNotFound(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	return false
}

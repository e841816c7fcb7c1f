package s3client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"time"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

const (
	defaultMaxRetries = 5
	defaultBaseDelay  = 100 * time.Millisecond
	defaultMaxDelay   = 30 * time.Second
)

// API is the subset of *s3.Client the store calls. The multipart methods are
// needed by the upload manager.
type API interface {
	manager.UploadAPIClient
	s3.ListObjectsV2APIClient
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	CopyObject(ctx context.Context, params *s3.CopyObjectInput, optFns ...func(*s3.Options)) (*s3.CopyObjectOutput, error)
}

// Presigner signs download URLs. *s3.PresignClient satisfies it.
type Presigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// retrier retries calls that failed with a throttling, timeout or 5xx error
// using exponential backoff with jitter.
type retrier struct {
	maxRetries int
	baseDelay  time.Duration
	maxDelay   time.Duration
}

func newRetrier(maxRetries int) retrier {
	if maxRetries < 0 {
		maxRetries = defaultMaxRetries
	}
	return retrier{
		maxRetries: maxRetries,
		baseDelay:  defaultBaseDelay,
		maxDelay:   defaultMaxDelay,
	}
}

func withRetry[T any](ctx context.Context, r retrier, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error
	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		output, err := fn()
		if err == nil {
			return output, nil
		}

		if !isRetryableError(err) {
			return zero, err
		}

		lastErr = err
		if attempt < r.maxRetries {
			delay := r.calculateDelay(attempt)
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return zero, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// httpStatus is implemented by the SDK's response errors.
type httpStatus interface {
	HTTPStatusCode() int
}

// isRetryableError checks if an error is retryable
func isRetryableError(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "SlowDown", "ServiceUnavailable", "RequestTimeout", "RequestTimeoutException":
			return true
		}
	}
	var status httpStatus
	if errors.As(err, &status) {
		code := status.HTTPStatusCode()
		return code >= 500 && code < 600
	}
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, io.ErrUnexpectedEOF)
}

// calculateDelay calculates the retry delay with exponential backoff and jitter
func (r retrier) calculateDelay(attempt int) time.Duration {
	base := float64(r.baseDelay)
	delay := base * math.Pow(2.0, float64(attempt))

	// ±25%
	jitter := delay * 0.25 * (2*rand.Float64() - 1)
	delay += jitter

	if delay > float64(r.maxDelay) {
		delay = float64(r.maxDelay)
	}

	return time.Duration(delay)
}

package s3client

import (
	"context"
	"errors"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/yuya-takeyama/photoset-sync/pkg/photoset"
)

// mapError converts an S3 failure into a *photoset.Error for op. Errors
// that already are a *photoset.Error pass through.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}

	var perr *photoset.Error
	if errors.As(err, &perr) {
		return err
	}

	out := &photoset.Error{Op: op, Kind: photoset.KindTransport, Err: err}

	var status httpStatus
	if errors.As(err, &status) {
		out.Code = status.HTTPStatusCode()
	}

	var noSuchKey *types.NoSuchKey
	var notFound *types.NotFound
	var apiErr smithy.APIError
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		out.Kind = photoset.KindTransport
	case errors.As(err, &noSuchKey), errors.As(err, &notFound):
		out.Kind = photoset.KindNotFound
		if out.Code == 0 {
			out.Code = http.StatusNotFound
		}
	case errors.As(err, &apiErr):
		out.Message = apiErr.ErrorMessage()
		if out.Message == "" {
			out.Message = apiErr.ErrorCode()
		}
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound", "NoSuchBucket":
			out.Kind = photoset.KindNotFound
		case "AccessDenied", "Forbidden", "InvalidAccessKeyId", "SignatureDoesNotMatch":
			out.Kind = photoset.KindPermission
		case "InvalidArgument", "InvalidRequest", "InvalidObjectState":
			out.Kind = photoset.KindInvalid
		default:
			out.Kind = photoset.KindRemote
		}
	case out.Code != 0:
		out.Kind = photoset.KindRemote
	}

	return out
}

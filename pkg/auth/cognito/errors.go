package cognito

import (
	"context"
	"errors"
	"fmt"

	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/aws/smithy-go"

	"github.com/marmos91/pamcognito/internal/logger"
	"github.com/marmos91/pamcognito/pkg/auth"
)

var (
	// ErrServiceUnavailable indicates the user pool gave no usable answer.
	ErrServiceUnavailable = errors.New("cognito: service unavailable")

	// ErrUnsupportedChallenge indicates a challenge without a code response.
	ErrUnsupportedChallenge = errors.New("cognito: unsupported challenge")
)

// classify maps an API error to an outcome when the user pool rejected
// the credentials, and to an error wrapping ErrServiceUnavailable otherwise.
func classify(ctx context.Context, op string, err error) (*auth.Outcome, error) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil, fmt.Errorf("%w: %s: %w", ErrServiceUnavailable, op, err)
	}

	var notFound *types.UserNotFoundException
	if errors.As(err, &notFound) {
		rejected(ctx, op, err)
		return auth.Rejected(auth.OutcomeUnknownPrincipal), nil
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "UserNotFoundException":
			rejected(ctx, op, err)
			return auth.Rejected(auth.OutcomeUnknownPrincipal), nil
		case "NotAuthorizedException",
			"UserNotConfirmedException",
			"PasswordResetRequiredException",
			"CodeMismatchException",
			"ExpiredCodeException":
			rejected(ctx, op, err)
			return auth.Rejected(auth.OutcomeInvalidCredentials), nil
		}
	}

	return nil, fmt.Errorf("%w: %s: %w", ErrServiceUnavailable, op, err)
}

func rejected(ctx context.Context, op string, err error) {
	logger.DebugCtx(ctx, "user pool rejected request",
		"op", op,
		logger.ErrorCode(errorCode(err)),
		logger.RequestID(requestID(err)))
}

// errorCode returns the API error code of err, or "".
func errorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}

// requestID returns the AWS request id carried by err, or "".
func requestID(err error) string {
	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) {
		return respErr.ServiceRequestID()
	}
	return ""
}

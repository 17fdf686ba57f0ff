package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/fekuna/omnipos-stock-service/internal/apperror"
	"github.com/fekuna/omnipos-stock-service/internal/auth"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/i18n"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const (
	AcceptLanguageHeader = "accept-language"
	ErrorKindHeader      = "x-error-kind"
)

// ContextInterceptor copies caller identity from metadata into the context.
func ContextInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if val := md.Get(auth.UserIDHeader); len(val) > 0 {
				ctx = auth.WithUserID(ctx, val[0])
			}
		}
		return handler(ctx, req)
	}
}

func LoggingInterceptor(log logger.ZapLogger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.Duration("duration", time.Since(start)),
		}
		if err != nil {
			fields = append(fields, zap.String("kind", string(apperror.KindOf(err))), zap.Error(err))
			if apperror.KindOf(err) == apperror.KindInternal {
				log.Error("grpc request failed", fields...)
			} else {
				log.Warn("grpc request rejected", fields...)
			}
			return resp, err
		}

		log.Debug("grpc request", fields...)
		return resp, nil
	}
}

// ErrorInterceptor turns typed failures into gRPC statuses. The error kind is
// sent back in the trailer so clients can branch without parsing messages.
func ErrorInterceptor(tr *i18n.Translator) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err == nil {
			return resp, nil
		}
		var appErr *apperror.Error
		if !errors.As(err, &appErr) {
			if _, ok := status.FromError(err); ok {
				return resp, err
			}
		}

		kind := apperror.KindOf(err)
		_ = grpc.SetTrailer(ctx, metadata.Pairs(ErrorKindHeader, string(kind)))

		return resp, status.Error(CodeOf(kind), message(ctx, tr, err))
	}
}

func CodeOf(kind apperror.Kind) codes.Code {
	switch kind {
	case apperror.KindValidation:
		return codes.InvalidArgument
	case apperror.KindDuplicateSerial:
		return codes.AlreadyExists
	case apperror.KindQuantityExceeded, apperror.KindInsufficientStock,
		apperror.KindInsufficientSerializedUnits, apperror.KindNoActiveWarranty:
		return codes.FailedPrecondition
	case apperror.KindConflict:
		return codes.Aborted
	case apperror.KindNotFound:
		return codes.NotFound
	default:
		return codes.Internal
	}
}

func message(ctx context.Context, tr *i18n.Translator, err error) string {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		appErr = apperror.Internal(err)
	}

	// internal causes stay in the logs
	fallback := appErr.Message
	if appErr.Kind == apperror.KindInternal {
		fallback = "internal error"
	}
	if tr == nil {
		return fallback
	}

	lang := ""
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if val := md.Get(AcceptLanguageHeader); len(val) > 0 {
			lang = val[0]
		}
	}

	localized := tr.Translate(lang, string(appErr.Kind), fallback, appErr.Details)
	if appErr.Kind == apperror.KindValidation && appErr.Message != "" {
		return localized + " " + appErr.Message
	}
	return localized
}

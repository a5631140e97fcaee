package upload

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bondyapp/bondy/constant"
	"github.com/bondyapp/bondy/model"
	"github.com/bondyapp/bondy/thirdparty/objstore"
	cerr "github.com/bondyapp/bondy/utils/errors"
	"github.com/bondyapp/bondy/utils/logger"
)

const presignExpiry = 15 * time.Minute

type UploadApp interface {
	PresignUpload(ctx context.Context, userID string, req *model.PresignUploadRequest) (*model.PresignUploadResponse, error)
	PresignDownload(ctx context.Context, key string) (*model.PresignDownloadResponse, error)
}

type uploadAppImpl struct {
	store objstore.Client
}

func NewUploadApp(store objstore.Client) UploadApp {
	return &uploadAppImpl{store: store}
}

// PresignUpload issues a short-lived upload URL. Keys are namespaced by the
// owning user so clients cannot overwrite each other's objects.
func (s *uploadAppImpl) PresignUpload(ctx context.Context, userID string, req *model.PresignUploadRequest) (*model.PresignUploadResponse, error) {
	key := fmt.Sprintf("uploads/%s/%s%s", userID, uuid.NewString(), path.Ext(req.FileName))

	url, err := s.store.PresignUpload(ctx, key, presignExpiry)
	if err != nil {
		logger.Error("[PresignUpload] err store.PresignUpload", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}

	return &model.PresignUploadResponse{
		Key:       key,
		UploadURL: url,
		ExpiresIn: int(presignExpiry.Seconds()),
	}, nil
}

func (s *uploadAppImpl) PresignDownload(ctx context.Context, key string) (*model.PresignDownloadResponse, error) {
	if key == "" {
		return nil, cerr.SetCustomError(constant.ErrInvalidRequest)
	}

	url, err := s.store.PresignDownload(ctx, key, presignExpiry)
	if err != nil {
		logger.Error("[PresignDownload] err store.PresignDownload", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}

	return &model.PresignDownloadResponse{
		Key:         key,
		DownloadURL: url,
		ExpiresIn:   int(presignExpiry.Seconds()),
	}, nil
}

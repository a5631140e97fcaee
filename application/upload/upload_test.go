package upload_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	appupload "github.com/bondyapp/bondy/application/upload"
	"github.com/bondyapp/bondy/constant"
	objstoremocks "github.com/bondyapp/bondy/mocks/thirdparty/objstore"
	"github.com/bondyapp/bondy/model"
	cerr "github.com/bondyapp/bondy/utils/errors"
)

func assertErrCode(t *testing.T, err error, want constant.ErrorType) {
	t.Helper()
	var ce cerr.CustomError
	if !errors.As(err, &ce) {
		t.Fatalf("error type = %T, want CustomError", err)
	}
	if ce.ErrorCode() != constant.ErrorTypeCode[want] {
		t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[want])
	}
}

func TestUploadApp_PresignUpload(t *testing.T) {
	t.Run("key is namespaced by user and keeps the extension", func(t *testing.T) {
		var key string
		store := objstoremocks.NewClient(t)
		store.On("PresignUpload", mock.Anything, mock.MatchedBy(func(k string) bool {
			key = k
			return strings.HasPrefix(k, "uploads/u-1/") && strings.HasSuffix(k, ".jpg")
		}), 15*time.Minute).Return("https://store.local/put", nil).Once()

		app := appupload.NewUploadApp(store)
		resp, err := app.PresignUpload(context.Background(), "u-1", &model.PresignUploadRequest{FileName: "proof.jpg"})
		if err != nil {
			t.Fatalf("PresignUpload() error = %v", err)
		}
		if resp.Key != key || resp.UploadURL != "https://store.local/put" {
			t.Fatalf("PresignUpload() = %+v", resp)
		}
		if resp.ExpiresIn != 900 {
			t.Fatalf("PresignUpload() expires_in = %d, want 900", resp.ExpiresIn)
		}
		// The original file name never leaks into the object key
		if strings.Contains(key, "proof") {
			t.Fatalf("key %q leaks the client file name", key)
		}
	})

	t.Run("store outage surfaces as internal", func(t *testing.T) {
		store := objstoremocks.NewClient(t)
		store.On("PresignUpload", mock.Anything, mock.Anything, 15*time.Minute).
			Return("", errors.New("minio: unreachable")).Once()

		app := appupload.NewUploadApp(store)
		_, err := app.PresignUpload(context.Background(), "u-1", &model.PresignUploadRequest{FileName: "proof.jpg"})
		assertErrCode(t, err, constant.ErrInternal)
	})
}

func TestUploadApp_PresignDownload(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		store := objstoremocks.NewClient(t)
		store.On("PresignDownload", mock.Anything, "uploads/u-1/abc.jpg", 15*time.Minute).
			Return("https://store.local/get", nil).Once()

		app := appupload.NewUploadApp(store)
		resp, err := app.PresignDownload(context.Background(), "uploads/u-1/abc.jpg")
		if err != nil {
			t.Fatalf("PresignDownload() error = %v", err)
		}
		if resp.DownloadURL != "https://store.local/get" || resp.Key != "uploads/u-1/abc.jpg" {
			t.Fatalf("PresignDownload() = %+v", resp)
		}
	})

	t.Run("empty key rejected", func(t *testing.T) {
		app := appupload.NewUploadApp(objstoremocks.NewClient(t))
		_, err := app.PresignDownload(context.Background(), "")
		assertErrCode(t, err, constant.ErrInvalidRequest)
	})
}

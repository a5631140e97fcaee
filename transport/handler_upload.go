package transport

import (
	"encoding/json"
	"net/http"

	"github.com/bondyapp/bondy/constant"
	"github.com/bondyapp/bondy/model"
	utilsContext "github.com/bondyapp/bondy/utils/context"
	cerr "github.com/bondyapp/bondy/utils/errors"
	validatorx "github.com/bondyapp/bondy/utils/validator"
)

// PresignUpload handler
// @Summary Request a presigned upload URL
// @Tags Uploads
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.PresignUploadRequest true "Upload Request"
// @Success 200 {object} Response{data=model.PresignUploadResponse}
// @Router /api/s3/presign-upload [post]
func (s *RestHandler) PresignUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, cerr.SetCustomError(constant.ErrUnauthorize))
		return
	}

	var req model.PresignUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, cerr.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, cerr.SetValidationError(validatorx.Issues(err)))
		return
	}

	res, err := s.UploadApp.PresignUpload(ctx, userID, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// PresignDownload handler
// @Summary Request a presigned download URL
// @Tags Uploads
// @Produce json
// @Security BearerAuth
// @Param key query string true "Object key"
// @Success 200 {object} Response{data=model.PresignDownloadResponse}
// @Router /api/s3/presign-download [get]
func (s *RestHandler) PresignDownload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if _, ok := utilsContext.GetUserID(ctx); !ok {
		writeError(w, cerr.SetCustomError(constant.ErrUnauthorize))
		return
	}

	res, err := s.UploadApp.PresignDownload(ctx, r.URL.Query().Get("key"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

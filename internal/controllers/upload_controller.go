package controllers

import (
	"net/http"

	"chainsaw-registry/config"
	apperrors "chainsaw-registry/pkg/errors"
	"chainsaw-registry/pkg/filestorage"
	"chainsaw-registry/pkg/utils"
	"chainsaw-registry/pkg/validation"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type UploadController struct {
	fileStorage filestorage.FileStorageInterface
	logger      *zap.Logger
}

func NewUploadController(fileStorage filestorage.FileStorageInterface, logger *zap.Logger) *UploadController {
	return &UploadController{fileStorage: fileStorage, logger: logger}
}

// Upload stores the multipart "file" field under the rules of :context and
// returns its public /uploads URL.
func (ctrl *UploadController) Upload(c echo.Context) error {
	uploadContext := c.Param("context")

	rules, ok := config.UploadContexts[uploadContext]
	if !ok || !rules.Public {
		return utils.ErrorResponse(c,
			apperrors.NewHttpError(
				http.StatusBadRequest,
				"Unknown upload context",
				apperrors.ErrBadRequest,
				map[string]interface{}{"context": uploadContext},
			),
			ctrl.logger,
		)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(c, apperrors.NewBadRequestError("File is required"), ctrl.logger)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return utils.ErrorResponse(c,
			apperrors.NewHttpError(http.StatusInternalServerError, "Failed to read file", err, nil),
			ctrl.logger,
		)
	}
	defer src.Close()

	if err := validation.ValidateFile(fileHeader, src, uploadContext); err != nil {
		return utils.ErrorResponse(c, apperrors.NewBadRequestError(err.Error()), ctrl.logger)
	}

	savedPath, err := ctrl.fileStorage.Save(src, fileHeader.Filename, rules.PathPrefix)
	if err != nil {
		ctrl.logger.Error("Upload: failed to save file", zap.String("context", uploadContext), zap.Error(err))
		return utils.ErrorResponse(c,
			apperrors.NewHttpError(http.StatusInternalServerError, "Failed to save file", err, nil),
			ctrl.logger,
		)
	}

	response := map[string]interface{}{
		"url":      "/uploads/" + savedPath,
		"filePath": savedPath,
	}
	return utils.SuccessResponse(c, response, "File uploaded successfully", http.StatusOK)
}

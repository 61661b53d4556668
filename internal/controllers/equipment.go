package controllers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"chainsaw-registry/internal/dto"
	"chainsaw-registry/internal/entities"
	"chainsaw-registry/internal/services"
	"chainsaw-registry/pkg/api"
	apperrors "chainsaw-registry/pkg/errors"
	"chainsaw-registry/pkg/utils"
	"chainsaw-registry/pkg/validation"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	mimeXLSX        = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	exportTimeout   = 2 * time.Minute
	importTimeout   = 5 * time.Minute
	msgBadPayload   = "Invalid request body"
	msgListFetched  = "Equipments retrieved successfully"
	msgFound        = "Equipment retrieved successfully"
	msgImportFailed = "Failed to read the uploaded workbook"
)

type EquipmentImporter interface {
	ImportWorkbook(ctx context.Context, r io.Reader) (dto.BatchResult, error)
}

type EquipmentExporter interface {
	ExportFileName() string
	Export(ctx context.Context, w io.Writer, ids []string, filter entities.EquipmentFilter) error
}

type QRRenderer interface {
	EquipmentQR(ctx context.Context, id string, size int) ([]byte, error)
	PrintSheet(ctx context.Context, w io.Writer, ids []string, size int) error
}

type EquipmentController struct {
	equipmentService services.EquipmentServiceInterface
	importer         EquipmentImporter
	exporter         EquipmentExporter
	qr               QRRenderer
	logger           *zap.Logger
}

func NewEquipmentController(
	equipmentService services.EquipmentServiceInterface,
	importer EquipmentImporter,
	exporter EquipmentExporter,
	qr QRRenderer,
	logger *zap.Logger,
) *EquipmentController {
	return &EquipmentController{
		equipmentService: equipmentService,
		importer:         importer,
		exporter:         exporter,
		qr:               qr,
		logger:           logger,
	}
}

func (c *EquipmentController) GetEquipments(ctx echo.Context) error {
	filter := utils.ParseEquipmentFilter(ctx.QueryParams())

	res, err := c.equipmentService.GetEquipments(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("GetEquipments: failed to list equipments", zap.Any("filter", filter), zap.Error(err))
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Failed to fetch equipments", err, nil),
			c.logger,
		)
	}

	return api.SuccessList(ctx, msgListFetched, res.Equipments, res.Total, res.Page, res.Limit)
}

func (c *EquipmentController) FindEquipment(ctx echo.Context) error {
	id := ctx.Param("id")

	res, err := c.equipmentService.FindEquipment(ctx.Request().Context(), id)
	if err != nil {
		return findErrorResponse(ctx, id, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, msgFound, http.StatusOK)
}

func (c *EquipmentController) CreateEquipment(ctx echo.Context) error {
	var payload dto.CreateEquipmentDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Warn("CreateEquipment: failed to bind payload", zap.Error(err))
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError(msgBadPayload), c.logger)
	}

	res := c.equipmentService.CreateEquipment(ctx.Request().Context(), payload)
	return actionResponse(ctx, res, http.StatusCreated, c.logger)
}

func (c *EquipmentController) UpdateEquipment(ctx echo.Context) error {
	var patch dto.UpdateEquipmentDTO
	if err := ctx.Bind(&patch); err != nil {
		c.logger.Warn("UpdateEquipment: failed to bind payload", zap.Error(err))
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError(msgBadPayload), c.logger)
	}

	res := c.equipmentService.UpdateEquipment(ctx.Request().Context(), ctx.Param("id"), patch)
	return actionResponse(ctx, res, http.StatusOK, c.logger)
}

func (c *EquipmentController) DeleteEquipment(ctx echo.Context) error {
	res := c.equipmentService.DeleteEquipment(ctx.Request().Context(), ctx.Param("id"))
	return actionResponse(ctx, res, http.StatusOK, c.logger)
}

func (c *EquipmentController) BulkImport(ctx echo.Context) error {
	var payload dto.BulkImportDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Warn("BulkImport: failed to bind payload", zap.Error(err))
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError(msgBadPayload), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res := c.equipmentService.BulkImport(ctx.Request().Context(), payload.Equipments)
	return batchResponse(ctx, res)
}

// ImportWorkbook accepts a multipart "file" field holding an xlsx workbook.
func (c *EquipmentController) ImportWorkbook(ctx echo.Context) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("File is required"), c.logger)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, msgImportFailed, err, nil),
			c.logger,
		)
	}
	defer src.Close()

	if err := validation.ValidateFile(fileHeader, src, "import_workbook"); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError(err.Error()), c.logger)
	}

	reqCtx, cancel := utils.ContextWithTimeout(ctx, importTimeout)
	defer cancel()

	res, err := c.importer.ImportWorkbook(reqCtx, src)
	if err != nil {
		c.logger.Warn("ImportWorkbook: workbook rejected", zap.String("file", fileHeader.Filename), zap.Error(err))
		msg := msgImportFailed
		if errors.Is(err, services.ErrEmptyWorkbook) {
			msg = "Excel file is empty or has no data rows"
		}
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError(msg), c.logger)
	}

	return batchResponse(ctx, res)
}

func (c *EquipmentController) BulkDelete(ctx echo.Context) error {
	var payload dto.BulkDeleteDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Warn("BulkDelete: failed to bind payload", zap.Error(err))
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError(msgBadPayload), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res := c.equipmentService.BulkDelete(ctx.Request().Context(), payload.IDs)
	return batchResponse(ctx, res)
}

// Export streams an xlsx of the ids= selection, or of every record matching
// the listing filters when no ids are given.
func (c *EquipmentController) Export(ctx echo.Context) error {
	ids := utils.ParseIDList(ctx.QueryParams()["ids"])
	filter := utils.ParseEquipmentFilter(ctx.QueryParams())

	reqCtx, cancel := utils.ContextWithTimeout(ctx, exportTimeout)
	defer cancel()

	var buf bytes.Buffer
	if err := c.exporter.Export(reqCtx, &buf, ids, filter); err != nil {
		c.logger.Error("Export: failed to build workbook", zap.Strings("ids", ids), zap.Error(err))
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Failed to export equipments", err, nil),
			c.logger,
		)
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+c.exporter.ExportFileName()+`"`)
	return ctx.Blob(http.StatusOK, mimeXLSX, buf.Bytes())
}

func (c *EquipmentController) QRCode(ctx echo.Context) error {
	id := ctx.Param("id")
	size, _ := strconv.Atoi(ctx.QueryParam("size"))

	png, err := c.qr.EquipmentQR(ctx.Request().Context(), id, size)
	if err != nil {
		return findErrorResponse(ctx, id, err, c.logger)
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition, `inline; filename="equipment-`+id+`.png"`)
	return ctx.Blob(http.StatusOK, "image/png", png)
}

func (c *EquipmentController) PrintQRCodes(ctx echo.Context) error {
	var payload dto.QRPrintDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError(msgBadPayload), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var buf bytes.Buffer
	if err := c.qr.PrintSheet(ctx.Request().Context(), &buf, payload.IDs, payload.Size); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Failed to render QR codes", err, nil),
			c.logger,
		)
	}
	return ctx.HTMLBlob(http.StatusOK, buf.Bytes())
}

// actionResponse maps an action result onto the response envelope.
func actionResponse(ctx echo.Context, res dto.ActionResult, okCode int, logger *zap.Logger) error {
	switch res.Outcome {
	case dto.OutcomeOK:
		return utils.SuccessResponse(ctx, res, res.Success, okCode)
	case dto.OutcomeInvalid:
		httpErr := apperrors.NewHttpError(http.StatusBadRequest, res.Error, nil, nil)
		if len(res.Fields) > 0 {
			httpErr = httpErr.WithDetails(map[string]interface{}{"fields": res.Fields})
		}
		return utils.ErrorResponse(ctx, httpErr, logger)
	case dto.OutcomeNotFound:
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusNotFound, res.Error, nil, nil), logger)
	default:
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusInternalServerError, res.Error, nil, nil), logger)
	}
}

// batchResponse is 200 when at least one row went through and 422 otherwise.
func batchResponse(ctx echo.Context, res dto.BatchResult) error {
	code := http.StatusOK
	if !res.Success {
		code = http.StatusUnprocessableEntity
	}
	return ctx.JSON(code, &utils.HTTPResponse{Status: res.Success, Body: res, Message: res.Message})
}

func findErrorResponse(ctx echo.Context, id string, err error, logger *zap.Logger) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusNotFound, services.MsgEquipmentNotFound, nil, nil), logger)
	}
	return utils.ErrorResponse(ctx,
		apperrors.NewHttpError(http.StatusInternalServerError, services.MsgSomethingWentWrong, err, map[string]interface{}{"id": id}),
		logger,
	)
}

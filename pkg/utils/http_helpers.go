package utils

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"chainsaw-registry/internal/entities"
	apperrors "chainsaw-registry/pkg/errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type HTTPResponse struct {
	Status  bool        `json:"status"`
	Body    interface{} `json:"body,omitempty"`
	Message string      `json:"message"`
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int) error {
	return ctx.JSON(code, &HTTPResponse{Status: true, Body: body, Message: message})
}

// statusBySentinel maps the package-level errors to their HTTP status.
var statusBySentinel = []struct {
	err  error
	code int
}{
	{apperrors.ErrNotFound, http.StatusNotFound},
	{apperrors.ErrBadRequest, http.StatusBadRequest},
	{apperrors.ErrConsentRequired, http.StatusBadRequest},
	{apperrors.ErrEmptyAuthHeader, http.StatusUnauthorized},
	{apperrors.ErrInvalidAuthHeader, http.StatusUnauthorized},
	{apperrors.ErrInvalidToken, http.StatusUnauthorized},
	{apperrors.ErrTokenExpired, http.StatusUnauthorized},
	{apperrors.ErrTokenNotYetValid, http.StatusUnauthorized},
	{apperrors.ErrTokenIsNotAccess, http.StatusUnauthorized},
	{apperrors.ErrTokenIsNotRefresh, http.StatusUnauthorized},
	{apperrors.ErrInvalidCredentials, http.StatusUnauthorized},
	{apperrors.ErrUnauthorized, http.StatusUnauthorized},
	{apperrors.ErrUserIDNotFoundInContext, http.StatusUnauthorized},
	{apperrors.ErrAccountLocked, http.StatusTooManyRequests},
	{apperrors.ErrTooManyRequests, http.StatusTooManyRequests},
}

func ErrorResponse(c echo.Context, err error, logger *zap.Logger) error {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		if httpErr.Err != nil {
			logger.Error("HTTP Error",
				zap.Int("code", httpErr.Code),
				zap.String("message", httpErr.Message),
				zap.Error(httpErr.Err),
				zap.Any("context", httpErr.Context),
			)
		}

		response := map[string]interface{}{
			"status":  false,
			"message": httpErr.Message,
		}
		if httpErr.Details != nil {
			response["body"] = httpErr.Details
		}
		return c.JSON(httpErr.Code, response)
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		msgs := make([]string, 0, len(validationErrors))
		fields := make(map[string]string, len(validationErrors))
		for _, e := range validationErrors {
			msgs = append(msgs, fmt.Sprintf("%s failed the '%s' check", e.Field(), e.Tag()))
			fields[e.Field()] = e.Tag()
		}
		sort.Strings(msgs)
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  false,
			"message": "Invalid fields! " + strings.Join(msgs, "; "),
			"body":    map[string]interface{}{"fields": fields},
		})
	}

	var inputErr *apperrors.InvalidInputError
	if errors.As(err, &inputErr) {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{"status": false, "message": inputErr.Message})
	}

	for _, s := range statusBySentinel {
		if errors.Is(err, s.err) {
			return c.JSON(s.code, map[string]interface{}{"status": false, "message": s.err.Error()})
		}
	}

	logger.Error("Unexpected Error", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, map[string]interface{}{
		"status":  false,
		"message": "Something went wrong!",
	})
}

// ParseEquipmentFilter reads the listing query:
//
//	/api/equipments?search=stihl&filter[fuel_type]=GAS,DIESEL&filter[status]=EXPIRING&limit=10&page=2
//
// List filters accept comma-separated values and may be repeated. Page and
// limit are left zero when absent or malformed.
func ParseEquipmentFilter(values url.Values) entities.EquipmentFilter {
	f := entities.EquipmentFilter{
		Search:       strings.TrimSpace(values.Get("search")),
		Brand:        strings.TrimSpace(values.Get("filter[brand]")),
		Model:        strings.TrimSpace(values.Get("filter[model]")),
		SerialNumber: strings.TrimSpace(values.Get("filter[serial_number]")),
		FuelTypes:    splitQueryList(values["filter[fuel_type]"], true),
		IntendedUses: splitQueryList(values["filter[intended_use]"], true),
		Statuses:     splitQueryList(values["filter[status]"], true),
	}
	for i, use := range f.IntendedUses {
		f.IntendedUses[i] = entities.NormalizeUseType(use)
	}

	if p, err := strconv.Atoi(values.Get("page")); err == nil && p > 0 {
		f.Page = p
	}
	if l, err := strconv.Atoi(values.Get("limit")); err == nil && l > 0 {
		f.Limit = l
	}
	return f
}

// ParseIDList reads ids from repeated or comma-separated query values.
func ParseIDList(values []string) []string {
	return splitQueryList(values, false)
}

func splitQueryList(values []string, upper bool) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if upper {
				part = strings.ToUpper(part)
			}
			if part == "" {
				continue
			}
			if _, dup := seen[part]; dup {
				continue
			}
			seen[part] = struct{}{}
			out = append(out, part)
		}
	}
	return out
}

package errors

import (
	"errors"
	"net/http"

	"github.com/emra/admin-console/internal/app/service"
	"github.com/emra/admin-console/pkg/adminapi"
)

// Action names what the operator was doing; it selects the generic failure message
type Action string

const (
	ActionLoad   Action = "load"
	ActionSave   Action = "save"
	ActionDelete Action = "delete"
	ActionUpdate Action = "update"
	ActionUpload Action = "upload"
)

// ErrorInfo is a parsed error ready to be rendered
type ErrorInfo struct {
	Status  int
	Code    string
	Message string
	Field   string
}

// ParseError maps service and API client errors to a status, a code and an
// operator facing message. Server supplied messages are passed through verbatim;
// anything else gets the generic message for action.
func ParseError(err error, action Action) ErrorInfo {
	if err == nil {
		return ErrorInfo{Status: http.StatusInternalServerError, Code: InternalServerError, Message: defaultMessage(action)}
	}

	var validation *service.ValidationError
	if errors.As(err, &validation) {
		return ErrorInfo{Status: http.StatusBadRequest, Code: ValidationInvalidInput, Message: validation.Message, Field: validation.Field}
	}

	var inUse *service.CategoryInUseError
	if errors.As(err, &inUse) {
		return ErrorInfo{Status: http.StatusConflict, Code: CategoryHasProducts, Message: inUse.Message()}
	}

	switch {
	case errors.Is(err, service.ErrConfirmationRequired):
		return ErrorInfo{Status: http.StatusPreconditionRequired, Code: ActionConfirmationRequired, Message: "Требуется подтверждение"}
	case errors.Is(err, service.ErrSubmitInProgress):
		return ErrorInfo{Status: http.StatusConflict, Code: ActionInProgress, Message: "Сохранение уже выполняется"}
	case errors.Is(err, service.ErrInvalidCredentials):
		return ErrorInfo{Status: http.StatusUnauthorized, Code: AuthInvalidCredentials, Message: "Неверный логин или пароль"}
	case errors.Is(err, service.ErrNoTransition):
		return ErrorInfo{Status: http.StatusConflict, Code: OrderTransitionInvalid, Message: "Невозможно изменить статус"}
	case errors.Is(err, service.ErrBannerNotPersisted):
		return ErrorInfo{Status: http.StatusConflict, Code: BannerNotPersisted, Message: "Сначала сохраните баннер"}
	case errors.Is(err, service.ErrProductAlreadyAttached):
		return ErrorInfo{Status: http.StatusConflict, Code: BannerProductAttached, Message: "Товар уже добавлен к баннеру"}
	case errors.Is(err, service.ErrEditorNotFound):
		return ErrorInfo{Status: http.StatusNotFound, Code: BannerEditorNotOpen, Message: "Редактор товаров баннера не открыт"}
	case errors.Is(err, service.ErrIndexOutOfRange):
		return ErrorInfo{Status: http.StatusBadRequest, Code: ValidationInvalidRange, Message: "Неверная позиция"}
	case errors.Is(err, service.ErrUnsupportedImage):
		return ErrorInfo{Status: http.StatusBadRequest, Code: UploadInvalidFileType, Message: "Поддерживаются только PNG, JPG, GIF и WEBP"}
	case errors.Is(err, service.ErrImageTooLarge):
		return ErrorInfo{Status: http.StatusRequestEntityTooLarge, Code: UploadFileTooLarge, Message: "Размер файла не должен превышать 5 МБ"}
	case errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrBannerNotFound),
		errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrProductNotAttached):
		return ErrorInfo{Status: http.StatusNotFound, Code: ResourceNotFound, Message: "Запись не найдена"}
	}

	var apiErr *adminapi.APIError
	if errors.As(err, &apiErr) {
		return parseAPIError(apiErr, action)
	}

	if errors.Is(err, adminapi.ErrNetwork) || errors.Is(err, adminapi.ErrMalformedResponse) {
		return ErrorInfo{Status: http.StatusBadGateway, Code: InternalExternalAPI, Message: defaultMessage(action)}
	}

	return ErrorInfo{Status: http.StatusInternalServerError, Code: InternalServerError, Message: defaultMessage(action)}
}

func parseAPIError(apiErr *adminapi.APIError, action Action) ErrorInfo {
	message := apiErr.Message
	if message == "" {
		message = defaultMessage(action)
	}

	switch {
	case errors.Is(apiErr, adminapi.ErrForbidden):
		return ErrorInfo{Status: http.StatusForbidden, Code: AuthzForbidden, Message: message}
	case errors.Is(apiErr, adminapi.ErrNotFound):
		return ErrorInfo{Status: http.StatusNotFound, Code: ResourceNotFound, Message: message}
	case errors.Is(apiErr, adminapi.ErrConflict):
		return ErrorInfo{Status: http.StatusConflict, Code: ResourceConflict, Message: message}
	case errors.Is(apiErr, adminapi.ErrInvalidRequest):
		return ErrorInfo{Status: http.StatusBadRequest, Code: ValidationInvalidInput, Message: message}
	case apiErr.StatusCode >= 400 && apiErr.StatusCode < 500:
		return ErrorInfo{Status: apiErr.StatusCode, Code: ValidationInvalidInput, Message: message}
	default:
		return ErrorInfo{Status: http.StatusBadGateway, Code: InternalExternalAPI, Message: message}
	}
}

func defaultMessage(action Action) string {
	switch action {
	case ActionLoad:
		return "Ошибка загрузки"
	case ActionSave:
		return "Ошибка сохранения"
	case ActionDelete:
		return "Ошибка удаления"
	case ActionUpload:
		return "Ошибка загрузки изображения"
	default:
		return "Ошибка"
	}
}

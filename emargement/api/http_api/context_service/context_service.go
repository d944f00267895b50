package context_service

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/censync/go-dto"
	"github.com/censync/go-validator"
	"github.com/labstack/echo/v4"

	"github.com/Sorolassina/mca-api/emargement/types"
)

type ContextService struct {
	echo.Context
}

func New(c echo.Context) *ContextService {
	return &ContextService{
		c,
	}
}

type CSJsonResp struct {
	Result interface{} `json:"result"`
}

// Custom error, written by the HTTP error handler with its status code
type CSErrorResp struct {
	Result       interface{} `json:"result"`
	ErrorMessage string      `json:"error_message,omitempty"`
	ErrorKind    string      `json:"error_kind,omitempty"`

	code int
}

func (e *CSErrorResp) Error() string {
	if e == nil {
		return ""
	}
	return e.ErrorMessage
}

func (e *CSErrorResp) Code() int {
	if e == nil || e.code == 0 {
		return http.StatusInternalServerError
	}
	return e.code
}

func NewErrorResp(code int, err error) *CSErrorResp {
	resp := &CSErrorResp{
		Result:       struct{}{},
		ErrorMessage: "undefined error",
		code:         code,
	}
	if err != nil {
		resp.ErrorMessage = err.Error()
		if kind, ok := types.KindOf(err); ok {
			resp.ErrorKind = kind.String()
		}
	}
	return resp
}

// StatusOf maps an error kind to its HTTP status
func StatusOf(err error) int {
	kind, ok := types.KindOf(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch kind {
	case types.KindNotFound:
		return http.StatusNotFound
	case types.KindValidation:
		return http.StatusBadRequest
	case types.KindConflict:
		return http.StatusConflict
	case types.KindAuthorization:
		return http.StatusUnauthorized
	case types.KindTransient:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// BindToRequest populates the request fields based on the context path and query parameters and body
// and validates the result.
func (cs *ContextService) BindToRequest(request interface{}) error {
	if err := cs.Bind(request); err != nil {
		return cs.JsonError(http.StatusBadRequest, fmt.Errorf("failed to read request: %v", bindMessage(err)))
	}
	if err := validator.Validate(request); !err.IsEmpty() {
		return cs.JsonError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func bindMessage(err error) interface{} {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Message
	}
	return err
}

// BindToDTO builds a request of the given form based on the context and converts it to a DTO.
func (cs *ContextService) BindToDTO(requestForm, dtoForm interface{}) error {
	if err := cs.BindToRequest(requestForm); err != nil {
		return err
	}
	if err := dto.RequestToDTO(dtoForm, requestForm); err != nil {
		return cs.JsonError(http.StatusBadRequest, err)
	}
	return nil
}

// Meta returns the caller's address and user agent as seen by the server
func (cs *ContextService) Meta() types.RequestMeta {
	return types.RequestMeta{
		IP:        cs.RealIP(),
		UserAgent: cs.Request().UserAgent(),
	}
}

func (cs *ContextService) Json(code int, data interface{}) error {
	if data != nil {
		return cs.JSON(code, &CSJsonResp{
			Result: data,
		})
	} else {
		return cs.JSON(code, &CSJsonResp{
			Result: struct{}{},
		})
	}
}

func (cs *ContextService) JsonEmpty(code int) error {
	return cs.JSON(code, &CSJsonResp{
		Result: struct{}{},
	})
}

// JsonError returns an error response for the HTTP error handler; handlers must return it
func (cs *ContextService) JsonError(code int, err error) error {
	return NewErrorResp(code, err)
}

// ServiceError maps a service error to its status by kind
func (cs *ContextService) ServiceError(err error) error {
	return cs.JsonError(StatusOf(err), err)
}

// Package apierr は各機能パッケージ共通のエラーモデル。
// コードはAPIレスポンスにそのまま載るので、名前は安定させること。
package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

type Code string

const (
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeNotFound        Code = "NOT_FOUND"
	CodeConflict        Code = "CONFLICT"
	CodeUnauthenticated Code = "UNAUTHENTICATED"
	CodeInternal        Code = "INTERNAL"

	// 貸出リクエストの状態遷移エラー（遷移元ステータス不一致）
	CodeNotPending    Code = "NOT_PENDING"
	CodeNotApproved   Code = "NOT_APPROVED"
	CodeNotIssued     Code = "NOT_ISSUED"
	CodeNotRejectable Code = "NOT_REJECTABLE"

	// 業務ルールによる却下（他リクエストの状態に依存する）
	CodeCapacityExceeded  Code = "CAPACITY_EXCEEDED"
	CodeInsufficientStock Code = "INSUFFICIENT_STOCK"
)

type APIError struct {
	Code    Code
	Message string
}

func (e *APIError) Error() string { return fmt.Sprintf("%s: %s", e.Code, e.Message) }

func New(code Code, msg string) *APIError { return &APIError{Code: code, Message: msg} }

func ErrInvalid(msg string) *APIError  { return New(CodeInvalidArgument, msg) }
func ErrNotFound(msg string) *APIError { return New(CodeNotFound, msg) }
func ErrConflict(msg string) *APIError { return New(CodeConflict, msg) }
func ErrInternal(msg string) *APIError { return New(CodeInternal, msg) }

func ToHTTPStatus(err error) int {
	var api *APIError
	if errors.As(err, &api) {
		switch api.Code {
		case CodeInvalidArgument:
			return http.StatusBadRequest
		case CodeUnauthenticated:
			return http.StatusUnauthorized
		case CodeNotFound:
			return http.StatusNotFound
		case CodeConflict,
			CodeNotPending, CodeNotApproved, CodeNotIssued, CodeNotRejectable,
			CodeCapacityExceeded, CodeInsufficientStock:
			return http.StatusConflict
		default:
			return http.StatusInternalServerError
		}
	}
	return http.StatusInternalServerError
}

// CodeOf はエラーからコードを取り出す。apierrでなければ INTERNAL 扱い。
func CodeOf(err error) Code {
	var api *APIError
	if errors.As(err, &api) {
		return api.Code
	}
	return CodeInternal
}

type errorDTO struct {
	Error struct {
		Code    Code   `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Body はハンドラがそのままJSONで返すエラーボディを組み立てる。
func Body(code Code, msg string) any {
	var e errorDTO
	e.Error.Code = code
	e.Error.Message = msg
	return e
}

func BodyFrom(err error) any {
	var api *APIError
	if errors.As(err, &api) {
		return Body(api.Code, api.Message)
	}
	return Body(CodeInternal, err.Error())
}

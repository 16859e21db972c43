// FILE: internal/pkg/serverutils/response.go
package serverutils

import (
	"smarterstarts-be/internal/dto"
)

func ErrorResponse(message string) *dto.ErrorResponse {
	return &dto.ErrorResponse{Status: dto.StatusError, Message: message}
}

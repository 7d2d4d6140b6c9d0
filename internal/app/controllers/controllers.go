package controllers

import (
	"time"

	"github.com/darulhuda/ppdb-portal/internal/app/models/dto"
)

// newAPIResponse wraps a payload in the standard success envelope
func newAPIResponse(data interface{}) dto.APIResponse {
	return dto.APIResponse{
		Data:      data,
		Timestamp: time.Now(),
	}
}

package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/shecodes/community-api/internal/app/models/dto"
	"github.com/shecodes/community-api/internal/pkg/apperrors"
)

func handleError(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	HandleAPIError(c, err)
	return w
}

func TestHandleAPIError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   dto.ErrorCode
	}{
		{"event not found", apperrors.ErrEventNotFound, 404, dto.ErrorCodeResourceNotFound},
		{"mentor not found", apperrors.ErrMentorNotFound, 404, dto.ErrorCodeResourceNotFound},
		{"participant not found", apperrors.ErrParticipantNotFound, 404, dto.ErrorCodeResourceNotFound},
		{"comment not found", apperrors.ErrCommentNotFound, 404, dto.ErrorCodeResourceNotFound},
		{"validation failure", apperrors.NewValidationError("bad input"), 400, dto.ErrorCodeValidationFailed},
		{"missing parent comment", apperrors.ErrParentCommentNotFound, 400, dto.ErrorCodeValidationFailed},
		{"duplicate registration", apperrors.ErrDuplicateRegistration, 409, dto.ErrorCodeConflict},
		{"event with registrants", apperrors.ErrEventHasRegistrants, 409, dto.ErrorCodeConflict},
		{"permission denied", apperrors.NewForbiddenError("not yours"), 403, dto.ErrorCodeForbidden},
		{"expired token", apperrors.ErrTokenExpired, 401, dto.ErrorCodeExpiredToken},
		{"storage failure", apperrors.NewStorageError("disk full"), 500, dto.ErrorCodeDatabaseError},
		{"unknown error", errors.New("boom"), 500, dto.ErrorCodeInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := handleError(tt.err)
			require.Equal(t, tt.wantStatus, w.Code)

			var resp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.NotNil(t, resp.Error)
			require.Equal(t, tt.wantCode, resp.Error.Code)
			require.False(t, resp.Success)
		})
	}
}

func TestHandleAPIError_UsesCustomErrorMessage(t *testing.T) {
	w := handleError(apperrors.NewValidationError("end date must not be before start date"))
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "end date must not be before start date", resp.Error.Message)
}

package errors_test

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turtacn/LegalSpend-Research/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// New / Wrap
// ─────────────────────────────────────────────────────────────────────────────

func TestNew_FieldsAreSetCorrectly(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		code    errors.ErrorCode
		message string
	}{
		{"search failure", errors.CodeSearchFailure, "opinion search failed"},
		{"lookup failure", errors.CodeLookupFailure, "court lookup failed"},
		{"invalid query", errors.CodeInvalidQuery, "filed_after is not a date"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ae := errors.New(tc.code, tc.message)

			require.NotNil(t, ae)
			assert.Equal(t, tc.code, ae.Code)
			assert.Equal(t, tc.message, ae.Message)
			assert.Empty(t, ae.Detail)
			assert.Nil(t, ae.Cause)
		})
	}
}

func TestWrap_NilErrReturnsNil(t *testing.T) {
	t.Parallel()

	assert.Nil(t, errors.Wrap(nil, errors.CodeSearchFailure, "ignored"))
}

func TestWrap_CauseChainIsPreserved(t *testing.T) {
	t.Parallel()

	root := stderrors.New("dial tcp: connection refused")
	wrapped := errors.Wrap(root, errors.CodeSearchFailure, "opinion search failed")

	require.NotNil(t, wrapped)
	assert.Equal(t, errors.CodeSearchFailure, wrapped.Code)
	assert.ErrorIs(t, wrapped, root)
	assert.Equal(t, root, stderrors.Unwrap(wrapped))
}

func TestWrap_PreservesOriginalCodeWhenCodeUnknown(t *testing.T) {
	t.Parallel()

	inner := errors.New(errors.CodeLookupNotFound, "court not found")
	outer := errors.Wrap(inner, errors.CodeUnknown, "adding context")

	assert.Equal(t, errors.CodeLookupNotFound, outer.Code)
}

func TestError_Format(t *testing.T) {
	t.Parallel()

	plain := errors.New(errors.CodeSearchFailure, "search failed")
	assert.Equal(t, "[RES_001] search failed", plain.Error())

	detailed := plain.WithDetail("status=503")
	assert.Equal(t, "[RES_001] search failed: status=503", detailed.Error())
	assert.Empty(t, plain.Detail, "WithDetail must not mutate the original")
}

func TestWithDetail_NilReceiver(t *testing.T) {
	t.Parallel()

	var ae *errors.AppError
	assert.Nil(t, ae.WithDetail("x"))
	assert.Nil(t, ae.WithCause(stderrors.New("x")))
}

// ─────────────────────────────────────────────────────────────────────────────
// Chain helpers
// ─────────────────────────────────────────────────────────────────────────────

func TestIsNotFound(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		expected bool
	}{
		{"generic not found", errors.NotFound("not found"), true},
		{"lookup not found", errors.New(errors.CodeLookupNotFound, "court X"), true},
		{"wrapped lookup not found", fmt.Errorf("ctx: %w", errors.New(errors.CodeLookupNotFound, "x")), true},
		{"lookup failure", errors.New(errors.CodeLookupFailure, "503"), false},
		{"plain", fmt.Errorf("plain"), false},
		{"nil", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, errors.IsNotFound(tc.err))
		})
	}
}

func TestIsLookupFailure_IncludesNotFound(t *testing.T) {
	assert.True(t, errors.IsLookupFailure(errors.New(errors.CodeLookupFailure, "x")))
	assert.True(t, errors.IsLookupFailure(errors.New(errors.CodeLookupNotFound, "x")))
	assert.False(t, errors.IsLookupFailure(errors.New(errors.CodeSearchFailure, "x")))
}

func TestIsValidation(t *testing.T) {
	assert.True(t, errors.IsValidation(errors.New(errors.CodeInvalidQuery, "x")))
	assert.True(t, errors.IsValidation(errors.InvalidParam("x")))
	assert.False(t, errors.IsValidation(errors.Internal("x")))
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, errors.CodeOK, errors.GetCode(nil))
	assert.Equal(t, errors.CodeUnknown, errors.GetCode(stderrors.New("x")))
	assert.Equal(t, errors.CodeSearchFailure, errors.GetCode(errors.New(errors.CodeSearchFailure, "x")))
}

// ─────────────────────────────────────────────────────────────────────────────
// Codes
// ─────────────────────────────────────────────────────────────────────────────

func TestHTTPStatusForCode(t *testing.T) {
	assert.Equal(t, http.StatusBadGateway, errors.HTTPStatusForCode(errors.CodeSearchFailure))
	assert.Equal(t, http.StatusNotFound, errors.HTTPStatusForCode(errors.CodeLookupNotFound))
	assert.Equal(t, http.StatusBadRequest, errors.HTTPStatusForCode(errors.CodeInvalidQuery))
	assert.Equal(t, http.StatusInternalServerError, errors.HTTPStatusForCode("NOPE_999"))
}

func TestModuleForCode(t *testing.T) {
	assert.Equal(t, "RES", errors.ModuleForCode(errors.CodeSearchFailure))
	assert.Equal(t, "COMMON", errors.ModuleForCode(errors.CodeInternal))
	assert.Equal(t, "UNKNOWN", errors.ModuleForCode(""))
}

func TestDefaultMessageForCode(t *testing.T) {
	assert.Equal(t, "legal research search failed", errors.DefaultMessageForCode(errors.CodeSearchFailure))
	assert.Equal(t, "unknown error", errors.DefaultMessageForCode("NOPE_999"))
	assert.True(t, errors.IsClientError(errors.CodeInvalidQuery))
	assert.False(t, errors.IsClientError(errors.CodeSearchFailure))
}

func TestAsAppError(t *testing.T) {
	inner := errors.New(errors.CodeLookupNotFound, "research entity not found")
	wrapped := fmt.Errorf("lookup: %w", inner)

	ae, ok := errors.AsAppError(wrapped)
	assert.True(t, ok)
	assert.Same(t, inner, ae)

	_, ok = errors.AsAppError(stderrors.New("plain"))
	assert.False(t, ok)
}

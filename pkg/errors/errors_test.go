package errors_test

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JPK85/patentpack/pkg/errors"
)

func TestNew_FieldsAreSetCorrectly(t *testing.T) {
	cases := []struct {
		name    string
		code    errors.ErrorCode
		message string
	}{
		{"internal error", errors.CodeInternal, "unexpected failure"},
		{"not found", errors.CodeNotFound, "no cached entry"},
		{"invalid param", errors.CodeInvalidParam, "year must be positive"},
		{"provider auth", errors.CodeProviderAuthFailed, "token refresh failed"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ae := errors.New(tc.code, tc.message)
			require.NotNil(t, ae)
			assert.Equal(t, tc.code, ae.Code)
			assert.Equal(t, tc.message, ae.Message)
			assert.Empty(t, ae.Detail)
			assert.Nil(t, ae.Cause)
		})
	}
}

func TestNew_NilIsNeverReturned(t *testing.T) {
	ae := errors.New(errors.CodeOK, "")
	require.NotNil(t, ae)
}

func TestWrap_NilErrReturnsNil(t *testing.T) {
	assert.Nil(t, errors.Wrap(nil, errors.CodeInternal, "should not matter"))
}

func TestWrap_CauseChainIsPreserved(t *testing.T) {
	root := stderrors.New("root registry error")
	wrapped := errors.Wrap(root, errors.CodeRegistryTransport, "lei lookup failed")

	require.NotNil(t, wrapped)
	assert.Equal(t, errors.CodeRegistryTransport, wrapped.Code)
	assert.Equal(t, "lei lookup failed", wrapped.Message)
	assert.Equal(t, root, wrapped.Cause)
}

func TestWrap_UnwrapReturnsCause(t *testing.T) {
	cause := stderrors.New("original")
	ae := errors.Wrap(cause, errors.CodeCacheIO, "cache miss")
	assert.Equal(t, cause, stderrors.Unwrap(ae))
}

func TestWrap_PreservesOriginalCodeWhenCodeUnknown(t *testing.T) {
	inner := errors.New(errors.CodeNotFound, "not found")
	outer := errors.Wrap(inner, errors.CodeUnknown, "adding context")

	require.NotNil(t, outer)
	assert.Equal(t, errors.CodeNotFound, outer.Code,
		"Wrap with CodeUnknown should inherit the inner AppError's code")
}

func TestWrap_OverridesCodeWhenExplicit(t *testing.T) {
	inner := errors.New(errors.CodeNotFound, "not found")
	outer := errors.Wrap(inner, errors.CodeInternal, "unexpected state")
	assert.Equal(t, errors.CodeInternal, outer.Code)
}

func TestWrap_MultiLevel(t *testing.T) {
	root := stderrors.New("dial tcp: connection refused")
	level1 := errors.Wrap(root, errors.CodeProviderTransport, "provider unreachable")
	level2 := errors.Wrap(level1, errors.CodeInternal, "count failed")

	assert.Equal(t, level1, stderrors.Unwrap(level2))
	assert.Equal(t, root, stderrors.Unwrap(level1))
}

func TestError_FormatWithoutDetail(t *testing.T) {
	ae := errors.New(errors.CodeNotFound, "not found")
	s := ae.Error()

	assert.Contains(t, s, "NOT_FOUND")
	assert.Contains(t, s, "10002")
	assert.Contains(t, s, "not found")
	assert.False(t, strings.Count(s, ":") > 1,
		"Error() without detail should not contain extra colons from detail")
}

func TestError_FormatWithDetail(t *testing.T) {
	ae := errors.New(errors.CodeProviderRemote, "non-2xx response").WithDetail("status=503")
	s := ae.Error()

	assert.Contains(t, s, "PROVIDER_REMOTE")
	assert.Contains(t, s, "30002")
	assert.Contains(t, s, "non-2xx response")
	assert.Contains(t, s, "status=503")
}

func TestError_ImplementsErrorInterface(t *testing.T) {
	var err error = errors.New(errors.CodeInternal, "boom")
	assert.NotEmpty(t, err.Error())
}

func TestError_EmptyMessageDoesNotPanic(t *testing.T) {
	ae := errors.New(errors.CodeOK, "")
	assert.NotPanics(t, func() { _ = ae.Error() })
}

func TestWithDetail_SetsDetailOnCopy(t *testing.T) {
	original := errors.New(errors.CodeNotFound, "resource missing")
	detailed := original.WithDetail("id=42")

	assert.Empty(t, original.Detail, "WithDetail must not mutate the original")
	assert.Equal(t, "id=42", detailed.Detail)
	assert.Equal(t, original.Code, detailed.Code)
}

func TestWithDetail_ChainedCallsReplace(t *testing.T) {
	ae := errors.New(errors.CodeCacheIO, "write failed").
		WithDetail("path=a").
		WithDetail("path=a, retry=1")
	assert.Equal(t, "path=a, retry=1", ae.Detail)
}

func TestWithDetail_NilReceiverReturnsNil(t *testing.T) {
	var ae *errors.AppError
	assert.Nil(t, ae.WithDetail("x"))
}

func TestWithCause_AttachesCause(t *testing.T) {
	root := stderrors.New("driver: bad connection")
	ae := errors.New(errors.CodeProviderTransport, "provider error").WithCause(root)

	assert.Equal(t, root, ae.Cause)
	assert.Equal(t, root, stderrors.Unwrap(ae))
}

func TestWithCause_DoesNotMutateOriginal(t *testing.T) {
	original := errors.New(errors.CodeInternal, "failure")
	cause := stderrors.New("cause")
	withCause := original.WithCause(cause)

	assert.Nil(t, original.Cause, "WithCause must not mutate the original")
	assert.Equal(t, cause, withCause.Cause)
}

func TestWithCause_NilReceiverReturnsNil(t *testing.T) {
	var ae *errors.AppError
	assert.Nil(t, ae.WithCause(stderrors.New("x")))
}

func TestIsCode_DirectMatch(t *testing.T) {
	ae := errors.New(errors.CodeNotFound, "not found")
	assert.True(t, errors.IsCode(ae, errors.CodeNotFound))
}

func TestIsCode_NoMatch(t *testing.T) {
	ae := errors.New(errors.CodeNotFound, "not found")
	assert.False(t, errors.IsCode(ae, errors.CodeInternal))
}

func TestIsCode_NestedChain(t *testing.T) {
	root := errors.New(errors.CodeProviderTransport, "transport down")
	wrapped := errors.Wrap(root, errors.CodeInternal, "service error")

	assert.True(t, errors.IsCode(wrapped, errors.CodeProviderTransport),
		"IsCode must find the code anywhere in the error chain")
	assert.True(t, errors.IsCode(wrapped, errors.CodeInternal))
}

func TestIsCode_NilErrorReturnsFalse(t *testing.T) {
	assert.False(t, errors.IsCode(nil, errors.CodeInternal))
}

func TestIsCode_StdlibErrorReturnsFalse(t *testing.T) {
	err := stderrors.New("plain error")
	assert.False(t, errors.IsCode(err, errors.CodeInternal))
}

func TestIsCode_ThreeLevelChain(t *testing.T) {
	level0 := errors.New(errors.CodeProviderRemote, "bad response")
	level1 := errors.Wrap(level0, errors.CodeInvalidParam, "validation failed")
	level2 := errors.Wrap(level1, errors.CodeInternal, "handler error")

	assert.True(t, errors.IsCode(level2, errors.CodeProviderRemote))
	assert.True(t, errors.IsCode(level2, errors.CodeInvalidParam))
	assert.True(t, errors.IsCode(level2, errors.CodeInternal))
	assert.False(t, errors.IsCode(level2, errors.CodeRegistryTransport))
}

func TestIsCapabilityUnsupported_MatchesSentinel(t *testing.T) {
	ae := errors.CapabilityUnsupported("assignee discovery not supported")
	assert.True(t, errors.IsCapabilityUnsupported(ae))
	assert.False(t, errors.IsCapabilityUnsupported(errors.New(errors.CodeInternal, "x")))
}

func TestGetCode_DirectAppError(t *testing.T) {
	ae := errors.New(errors.CodeRegistryParseFailed, "parse failed")
	assert.Equal(t, errors.CodeRegistryParseFailed, errors.GetCode(ae))
}

func TestGetCode_NestedAppErrorReturnsOutermostCode(t *testing.T) {
	inner := errors.New(errors.CodeConfigInvalid, "bad config")
	outer := errors.Wrap(inner, errors.CodeInternal, "startup failed")
	assert.Equal(t, errors.CodeInternal, errors.GetCode(outer))
}

func TestGetCode_NilReturnsCodeOK(t *testing.T) {
	assert.Equal(t, errors.CodeOK, errors.GetCode(nil))
}

func TestGetCode_StdlibErrorReturnsCodeUnknown(t *testing.T) {
	err := stderrors.New("some stdlib error")
	assert.Equal(t, errors.CodeUnknown, errors.GetCode(err))
}

func TestGetCode_FmtWrappedStdlibReturnsCodeUnknown(t *testing.T) {
	err := fmt.Errorf("context: %w", stderrors.New("cause"))
	assert.Equal(t, errors.CodeUnknown, errors.GetCode(err))
}

func TestConvenienceFactories_ReturnCorrectCode(t *testing.T) {
	cases := []struct {
		name     string
		err      *errors.AppError
		wantCode errors.ErrorCode
	}{
		{"NotFound", errors.NotFound("not found"), errors.CodeNotFound},
		{"InvalidParam", errors.InvalidParam("bad input"), errors.CodeInvalidParam},
		{"Internal", errors.Internal("server error"), errors.CodeInternal},
		{"CapabilityUnsupported", errors.CapabilityUnsupported("unsupported"), errors.CodeProviderCapabilityUnsupported},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.NotNil(t, tc.err)
			assert.Equal(t, tc.wantCode, tc.err.Code)
			assert.NotEmpty(t, tc.err.Message)
			assert.NotEmpty(t, tc.err.Error())
		})
	}
}

func TestConvenienceFactories_MessageIsPreserved(t *testing.T) {
	msg := "no cached entry for key=abc"
	assert.Equal(t, msg, errors.NotFound(msg).Message)
}

func TestStdlib_ErrorsIs_DirectComparison(t *testing.T) {
	sentinel := errors.New(errors.CodeInvalidParam, "bad input")
	wrapped := fmt.Errorf("handler: %w", sentinel)
	assert.True(t, stderrors.Is(wrapped, sentinel))
}

func TestStdlib_ErrorsAs_ExtractsAppError(t *testing.T) {
	original := errors.New(errors.CodeProviderAuthFailed, "token expired")
	wrapped := fmt.Errorf("refresh: %w", original)

	var ae *errors.AppError
	require.True(t, stderrors.As(wrapped, &ae))
	assert.Equal(t, errors.CodeProviderAuthFailed, ae.Code)
	assert.Equal(t, "token expired", ae.Message)
}

func TestStdlib_ErrorsAs_DeepChain(t *testing.T) {
	root := errors.New(errors.CodeCacheIO, "disk full")
	l1 := errors.Wrap(root, errors.CodeInternal, "write failed")
	l2 := fmt.Errorf("codebook: %w", l1)
	l3 := fmt.Errorf("http handler: %w", l2)

	var ae *errors.AppError
	require.True(t, stderrors.As(l3, &ae))
	// errors.As returns the first match in the chain, which is l1.
	assert.Equal(t, errors.CodeInternal, ae.Code)
}

func TestStdlib_Unwrap_ChainReachesRootCause(t *testing.T) {
	cause := stderrors.New("root cause")
	ae := errors.New(errors.CodeCacheIO, "cache failure").WithCause(cause)
	assert.True(t, stderrors.Is(ae, cause))
}

func TestStdlib_ErrorsIs_FalseForUnrelatedError(t *testing.T) {
	a := errors.New(errors.CodeInternal, "error A")
	b := errors.New(errors.CodeInternal, "error B")
	assert.False(t, stderrors.Is(a, b))
}

func TestFluentChain_CombinedUsage(t *testing.T) {
	root := stderrors.New("gleif: connection reset")
	ae := errors.New(errors.CodeRegistryTransport, "registry search failed").
		WithDetail("query=filter[entity.legalName]=ACME").
		WithCause(root)

	assert.Equal(t, errors.CodeRegistryTransport, ae.Code)
	assert.Equal(t, "registry search failed", ae.Message)
	assert.Contains(t, ae.Detail, "ACME")
	assert.Equal(t, root, ae.Cause)

	s := ae.Error()
	assert.Contains(t, s, "REGISTRY_TRANSPORT")
	assert.Contains(t, s, "registry search failed")
	assert.Contains(t, s, "ACME")

	assert.True(t, stderrors.Is(ae, root))
}

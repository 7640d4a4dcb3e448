package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ErrorsSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsSuite))
}

func (s *ErrorsSuite) TestHasCodeWalksChain() {
	base := New(CodeNotFound, "user not found")
	wrapped := Wrap(base, CodeInternal, "failed to load user")

	s.True(HasCode(wrapped, CodeInternal))
	s.True(HasCode(wrapped, CodeNotFound))
	s.False(HasCode(wrapped, CodeConflict))
}

func (s *ErrorsSuite) TestHasCodeThroughFmtWrapping() {
	err := fmt.Errorf("store: %w", New(CodeConflict, "namespace taken"))
	s.True(Is(err, CodeConflict))
}

func (s *ErrorsSuite) TestNonDomainError() {
	err := errors.New("boom")
	s.False(HasCode(err, CodeInternal))
	s.Equal(CodeInternal, CodeOf(err))
	s.Equal("boom", Message(err))
}

func (s *ErrorsSuite) TestHTTPStatusMapping() {
	s.Equal(http.StatusBadRequest, ToHTTPStatus(CodeValidation))
	s.Equal(http.StatusBadRequest, ToHTTPStatus(CodeBadRequest))
	s.Equal(http.StatusNotFound, ToHTTPStatus(CodeNotFound))
	s.Equal(http.StatusConflict, ToHTTPStatus(CodeConflict))
	s.Equal(http.StatusInternalServerError, ToHTTPStatus(CodeInternal))
}

func (s *ErrorsSuite) TestMessageAndUnwrap() {
	cause := errors.New("connection refused")
	err := Wrap(cause, CodeInternal, "failed to persist asset")

	s.Equal("failed to persist asset", Message(err))
	s.ErrorIs(err, cause)
	s.Contains(err.Error(), "connection refused")
}

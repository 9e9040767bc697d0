package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
)

// DomainErrorsSuite covers the error primitives shared by the service and
// transport layers. Wrapped errors must keep their original code.
type DomainErrorsSuite struct {
	suite.Suite
}

func TestDomainErrorsSuite(t *testing.T) {
	suite.Run(t, new(DomainErrorsSuite))
}

func (s *DomainErrorsSuite) TestErrorString() {
	s.Run("message wins over code", func() {
		err := &Error{Code: CodeValidation, Message: "national ID checksum mismatch"}
		s.Equal("national ID checksum mismatch", err.Error())
	})

	s.Run("code is used when message is empty", func() {
		err := &Error{Code: CodeInvalidInput}
		s.Equal("invalid_input", err.Error())
	})
}

func (s *DomainErrorsSuite) TestMatchingByCode() {
	s.Run("same code matches regardless of message", func() {
		a := New(CodeValidation, "first name is required")
		b := &Error{Code: CodeValidation}
		s.ErrorIs(a, b)
	})

	s.Run("different codes do not match", func() {
		s.False(errors.Is(New(CodeValidation, "x"), &Error{Code: CodeInternal}))
	})

	s.Run("plain errors never match", func() {
		err := &Error{Code: CodeBadRequest}
		s.False(err.Is(errors.New("bad_request")))
	})

	s.Run("matches through fmt wrapping", func() {
		inner := New(CodeInvalidInput, "birth date is not a calendar date")
		wrapped := fmt.Errorf("decode form: %w", inner)
		s.True(HasCode(wrapped, CodeInvalidInput))
	})
}

func (s *DomainErrorsSuite) TestWrap() {
	s.Run("keeps the original domain code", func() {
		inner := New(CodeInvalidInput, "national ID must be 9 digits")
		err := Wrap(inner, CodeInternal, "submission rejected")

		s.True(HasCode(err, CodeInvalidInput))
		s.Equal("submission rejected", err.Error())
		s.ErrorIs(err, inner)
	})

	s.Run("applies the given code to foreign errors", func() {
		root := errors.New("entropy source closed")
		err := Wrap(root, CodeInternal, "token generation degraded")

		s.True(HasCode(err, CodeInternal))
		s.Equal(root, errors.Unwrap(err))
	})
}

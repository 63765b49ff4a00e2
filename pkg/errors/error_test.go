package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ErrorTestSuite struct {
	suite.Suite
}

func TestErrorSuite(t *testing.T) {
	suite.Run(t, new(ErrorTestSuite))
}

func (suite *ErrorTestSuite) TestNewError() {
	err := New(ErrCodeInvalidParameter, "invalid parameter")
	suite.NotNil(err)
	suite.Equal(ErrCodeInvalidParameter, err.Code)
	suite.Equal("invalid parameter", err.Message)
	suite.Nil(err.Cause)
}

func (suite *ErrorTestSuite) TestNewfError() {
	err := Newf(ErrCodeInvalidStockCode, "invalid stock code: %d", -1)
	suite.NotNil(err)
	suite.Equal(ErrCodeInvalidStockCode, err.Code)
	suite.Equal("invalid stock code: -1", err.Message)
	suite.Nil(err.Cause)
}

func (suite *ErrorTestSuite) TestWrapError() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeDataNotFound, "data not found", cause)
	suite.NotNil(err)
	suite.Equal(ErrCodeDataNotFound, err.Code)
	suite.Equal("data not found", err.Message)
	suite.Equal(cause, err.Cause)
}

func (suite *ErrorTestSuite) TestWrapfError() {
	cause := errors.New("underlying error")
	err := Wrapf(ErrCodeDataNotFound, cause, "no rows for stock code: %d", 920225)
	suite.NotNil(err)
	suite.Equal(ErrCodeDataNotFound, err.Code)
	suite.Equal("no rows for stock code: 920225", err.Message)
	suite.Equal(cause, err.Cause)
}

func (suite *ErrorTestSuite) TestErrorString() {
	err := New(ErrCodeInvalidParameter, "invalid parameter")
	suite.Equal("[100] invalid parameter", err.Error())
}

func (suite *ErrorTestSuite) TestErrorStringWithCause() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeDataNotFound, "data not found", cause)
	suite.Equal("[200] data not found: underlying error", err.Error())
}

func (suite *ErrorTestSuite) TestUnwrap() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeDataNotFound, "data not found", cause)
	suite.Equal(cause, err.Unwrap())
}

func (suite *ErrorTestSuite) TestUnwrapNil() {
	err := New(ErrCodeInvalidParameter, "invalid parameter")
	suite.Nil(err.Unwrap())
}

func (suite *ErrorTestSuite) TestGetCode() {
	err := New(ErrCodeInvalidParameter, "invalid parameter")
	suite.Equal(ErrCodeInvalidParameter, GetCode(err))
}

func (suite *ErrorTestSuite) TestGetCodeFromWrapped() {
	cause := New(ErrCodeDataNotFound, "data not found")
	err := fmt.Errorf("outer: %w", cause)
	suite.Equal(ErrCodeDataNotFound, GetCode(err))
}

func (suite *ErrorTestSuite) TestGetCodeFromPlainError() {
	err := errors.New("plain error")
	suite.Equal(ErrCodeUnknown, GetCode(err))
}

func (suite *ErrorTestSuite) TestHasCode() {
	err := New(ErrCodeMissingColumn, "missing column")
	suite.True(HasCode(err, ErrCodeMissingColumn))
	suite.False(HasCode(err, ErrCodeDataNotFound))
}

func (suite *ErrorTestSuite) TestEmptyDatasetError() {
	err := NewEmptyDatasetError(920225, "unprocessed", "no rows found")
	suite.Equal(920225, err.StockCode)
	suite.Equal("unprocessed", err.Source)
	suite.Equal("no rows found", err.Error())
}

func (suite *ErrorTestSuite) TestEmptyDatasetErrorf() {
	err := NewEmptyDatasetErrorf(920225, "processed", "no rows for stock code %d in %s dataset", 920225, "processed")
	suite.Equal("no rows for stock code 920225 in processed dataset", err.Error())
}

func (suite *ErrorTestSuite) TestIsEmptyDatasetError() {
	err := NewEmptyDatasetError(920225, "unprocessed", "no rows found")
	suite.True(IsEmptyDatasetError(err))

	wrapped := fmt.Errorf("load failed: %w", err)
	suite.True(IsEmptyDatasetError(wrapped))

	suite.False(IsEmptyDatasetError(errors.New("other error")))
}

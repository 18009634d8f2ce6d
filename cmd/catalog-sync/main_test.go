package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"radiatool/internal/constants"
	"radiatool/internal/storage"
)

type MockSource struct {
	mock.Mock
}

func (m *MockSource) GetRadiatorSheets(ctx context.Context) ([]storage.Sheet, error) {
	args := m.Called(ctx)
	sheets, _ := args.Get(0).([]storage.Sheet)
	return sheets, args.Error(1)
}

func (m *MockSource) GetBrackets(ctx context.Context) ([]storage.BracketVariant, error) {
	args := m.Called(ctx)
	brackets, _ := args.Get(0).([]storage.BracketVariant)
	return brackets, args.Error(1)
}

func TestReadCatalog_ReadsSourceOnce(t *testing.T) {
	sheets := []storage.Sheet{{
		Connection:   constants.ConnectionRightValve,
		RadiatorType: "10",
		Rows: []storage.RadiatorRow{
			{Article: "R105001000", DisplayName: "Радиатор METEOR тип 10/500мм/1000мм", UnitPrice: 15000},
		},
	}}
	brackets := []storage.BracketVariant{{Article: "К9.2L", UnitPrice: 500}}

	src := new(MockSource)
	src.On("GetRadiatorSheets", mock.Anything).Return(sheets, nil).Once()
	src.On("GetBrackets", mock.Anything).Return(brackets, nil).Once()

	gotSheets, gotBrackets, cat, err := readCatalog(context.Background(), src)
	require.NoError(t, err)

	assert.Equal(t, sheets, gotSheets)
	assert.Equal(t, brackets, gotBrackets)
	assert.Equal(t, 1, cat.VariantCount())
	assert.Equal(t, 1, cat.BracketCount())
	src.AssertNumberOfCalls(t, "GetRadiatorSheets", 1)
	src.AssertNumberOfCalls(t, "GetBrackets", 1)
}

func TestReadCatalog_EmptyMatrix(t *testing.T) {
	src := new(MockSource)
	src.On("GetRadiatorSheets", mock.Anything).Return([]storage.Sheet{}, nil)
	src.On("GetBrackets", mock.Anything).Return([]storage.BracketVariant{}, nil)

	_, _, _, err := readCatalog(context.Background(), src)
	assert.ErrorIs(t, err, errEmptyMatrix)
}

func TestReadCatalog_SourceError(t *testing.T) {
	src := new(MockSource)
	src.On("GetRadiatorSheets", mock.Anything).Return(nil, errors.New("файл не найден"))

	_, _, _, err := readCatalog(context.Background(), src)
	assert.Error(t, err)
	src.AssertNotCalled(t, "GetBrackets", mock.Anything)
}

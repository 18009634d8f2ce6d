package specification

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"radiatool/internal/catalog"
	"radiatool/internal/constants"
	"radiatool/internal/service/bom"
	"radiatool/internal/session"
	"radiatool/internal/storage"
)

type staticCatalog struct{ c *catalog.Catalog }

func (s staticCatalog) Current() *catalog.Catalog { return s.c }

type MockSessions struct {
	mock.Mock
}

func (m *MockSessions) Get(id string) (session.Session, error) {
	args := m.Called(id)
	return args.Get(0).(session.Session), args.Error(1)
}

func testCatalog() staticCatalog {
	return staticCatalog{c: catalog.New(
		[]storage.Sheet{{
			Connection:   constants.ConnectionRightValve,
			RadiatorType: "10",
			Rows: []storage.RadiatorRow{
				{Article: "R105001000", DisplayName: "Радиатор METEOR тип 10/500мм/1000мм", PowerW: 650, WeightKg: 10.004, UnitPrice: 15000},
			},
		}},
		[]storage.BracketVariant{
			{Article: "К9.2L", DisplayName: "Кронштейн левый", UnitPrice: 500},
			{Article: "К9.2R", DisplayName: "Кронштейн правый", UnitPrice: 500},
		},
	)}
}

func testSession() session.Session {
	key := session.CellKey{Connection: constants.ConnectionRightValve, RadiatorType: "10", Article: "R105001000"}
	return session.Session{
		ID:      "s1",
		Options: bom.Options{Mounting: constants.MountingWall},
		Cells:   map[session.CellKey]string{key: "2"},
	}
}

func TestCalculate(t *testing.T) {
	svc := NewService(testCatalog(), new(MockSessions), 1)

	spec := svc.Calculate([]bom.CellEntry{
		{Connection: constants.ConnectionRightValve, RadiatorType: "10", Article: "R105001000", Value: "1+1"},
	}, bom.Options{Mounting: constants.MountingNone})

	require.Len(t, spec.Items, 1)
	assert.Equal(t, 30000.0, spec.Totals.Sum)
	assert.Equal(t, "20.0 кг", spec.Totals.Weight)
}

func TestForSession(t *testing.T) {
	sessions := new(MockSessions)
	sessions.On("Get", "s1").Return(testSession(), nil)
	sessions.On("Get", "nope").Return(session.Session{}, session.ErrNotFound)

	svc := NewService(testCatalog(), sessions, 2)

	spec, err := svc.ForSession("s1")
	require.NoError(t, err)
	assert.Len(t, spec.Items, 3)
	assert.Equal(t, 34000.0, spec.Totals.Sum)

	_, err = svc.ForSession("nope")
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestExport(t *testing.T) {
	sessions := new(MockSessions)
	sessions.On("Get", "s1").Return(testSession(), nil)

	svc := NewService(testCatalog(), sessions, 2)
	svc.now = func() time.Time { return time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC) }

	csvFile, err := svc.Export("s1", FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "спецификация_20250301_1030.csv", csvFile.Name)
	assert.True(t, bytes.HasPrefix(csvFile.Data, []byte{0xEF, 0xBB, 0xBF}))

	xlsxFile, err := svc.Export("s1", FormatXLSX)
	require.NoError(t, err)
	assert.Equal(t, "спецификация_20250301_1030.xlsx", xlsxFile.Name)
	assert.NotEmpty(t, xlsxFile.Data)

	_, err = svc.Export("s1", "pdf")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

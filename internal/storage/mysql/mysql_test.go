package mysql

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"radiatool/internal/config"
	"radiatool/internal/constants"
	"radiatool/internal/storage"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//go:embed schema.sql
var schema string

var testStorage *Storage

func TestMain(m *testing.M) {
	dsn := os.Getenv("RADIATOOL_TEST_DSN")
	if dsn == "" {
		fmt.Println("RADIATOOL_TEST_DSN не задан, тесты mysql пропускаются")
		os.Exit(m.Run())
	}

	var err error
	testStorage, err = Open(dsn)
	if err != nil {
		panic(fmt.Errorf("не удалось подключиться к тестовой БД: %w", err))
	}
	defer testStorage.Close()

	for _, stmt := range strings.Split(schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := testStorage.db.Exec(stmt); err != nil {
			panic(fmt.Errorf("не удалось создать схему: %w", err))
		}
	}

	code := m.Run()

	os.Exit(code)
}

func requireDB(t *testing.T) {
	t.Helper()
	if testStorage == nil {
		t.Skip("нет тестовой БД")
	}
}

func TestDSN(t *testing.T) {
	dsn := DSN(config.Config{
		DBUser:     "user",
		DBPassword: "password",
		DBHost:     "localhost",
		DBPort:     3306,
		DBName:     "radiatool",
		ParseTime:  true,
	})

	assert.Equal(t, "user:password@tcp(localhost:3306)/radiatool?parseTime=true", dsn)
}

func TestCatalogRoundTrip(t *testing.T) {
	requireDB(t)
	ctx := context.Background()

	sheets := []storage.Sheet{
		{
			Connection:   constants.ConnectionRightValve,
			RadiatorType: "10",
			Rows: []storage.RadiatorRow{
				{Article: "R10300400", DisplayName: "Радиатор METEOR тип 10/300мм/400мм", PowerW: 290, WeightKg: 5.5, VolumeM3: 0.12, UnitPrice: 1100},
			},
		},
		{
			Connection:   constants.ConnectionSide,
			RadiatorType: "22",
			Rows: []storage.RadiatorRow{
				{Article: "R22500900", DisplayName: "Радиатор METEOR тип 22/500мм/900мм", UnitPrice: 2300},
			},
		},
	}
	brackets := []storage.BracketVariant{
		{Article: "К9.2L", DisplayName: "Кронштейн левый", UnitPrice: 180},
		{Article: "К15.4500", DisplayName: "Кронштейн К15.4", UnitPrice: 240, MaxLoadKg: 40},
	}

	require.NoError(t, testStorage.ReplaceCatalog(ctx, sheets, brackets))

	gotSheets, err := testStorage.GetRadiatorSheets(ctx)
	require.NoError(t, err)
	require.Len(t, gotSheets, 2)
	assert.Equal(t, "VK-правое 10", gotSheets[0].Name)
	assert.Equal(t, sheets[0].Rows, gotSheets[0].Rows)
	assert.Equal(t, constants.ConnectionSide, gotSheets[1].Connection)

	gotBrackets, err := testStorage.GetBrackets(ctx)
	require.NoError(t, err)
	assert.Equal(t, brackets, gotBrackets)
}

func TestMappings(t *testing.T) {
	requireDB(t)
	ctx := context.Background()

	_, err := testStorage.db.Exec(`DELETE FROM mappings`)
	require.NoError(t, err)

	m := storage.Mapping{
		CompetitorName: "Kermi FKO 22 500x1000",
		Connection:     constants.ConnectionSide,
		RadiatorType:   "22",
		Article:        "R225001000",
		Name:           "Радиатор METEOR тип 22/500мм/1000мм",
		ConfirmedAt:    time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, testStorage.SaveMapping(ctx, m))

	m.Article = "R225001100"
	require.NoError(t, testStorage.SaveMapping(ctx, m))

	got, err := testStorage.GetMappings(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "R225001100", got[0].Article)
	assert.Equal(t, constants.ConnectionSide, got[0].Connection)
}

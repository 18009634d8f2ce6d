// Команда catalog-sync переносит справочник из Excel-файлов в MySQL.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"radiatool/internal/catalog"
	"radiatool/internal/config"
	"radiatool/internal/storage"
	"radiatool/internal/storage/excel"
	"radiatool/internal/storage/mysql"
	"time"
)

var errEmptyMatrix = errors.New("в матрице нет радиаторов")

func main() {
	timeout := flag.Duration("timeout", time.Minute, "ограничение на загрузку и запись")
	flag.Parse()

	cfg := config.MustConfig()
	log := slog.New(slog.NewTextHandler(os.Stdout, nil))

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	sheets, brackets, cat, err := readCatalog(ctx, excel.New(cfg.Catalog.MatrixPath, cfg.Catalog.BracketsPath))
	if err != nil {
		log.Error("ошибка чтения справочника, база не тронута", slog.String("error", err.Error()))
		os.Exit(1)
	}

	db, err := mysql.New(*cfg)
	if err != nil {
		log.Error("ошибка подключения к БД", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()

	if err := db.ReplaceCatalog(ctx, sheets, brackets); err != nil {
		log.Error("ошибка записи справочника", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("справочник перенесён",
		slog.Int("sheets", len(sheets)),
		slog.Int("variants", cat.VariantCount()),
		slog.Int("brackets", cat.BracketCount()),
	)
}

// readCatalog читает файлы один раз и проверяет, что из них собирается справочник.
func readCatalog(ctx context.Context, src catalog.Source) ([]storage.Sheet, []storage.BracketVariant, *catalog.Catalog, error) {
	const op = "catalog-sync.readCatalog"

	sheets, err := src.GetRadiatorSheets(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	brackets, err := src.GetBrackets(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	cat := catalog.New(sheets, brackets)
	if cat.VariantCount() == 0 {
		return nil, nil, nil, fmt.Errorf("%s: %w", op, errEmptyMatrix)
	}

	return sheets, brackets, cat, nil
}

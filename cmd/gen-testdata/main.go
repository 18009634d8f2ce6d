// Команда gen-testdata создаёт тестовые справочники в каталоге data.
package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"radiatool/internal/storage/excel"
)

func main() {
	dir := flag.String("dir", "data", "каталог для файлов")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if err := os.MkdirAll(*dir, 0o755); err != nil {
		log.Error("не удалось создать каталог", slog.String("error", err.Error()))
		os.Exit(1)
	}

	matrix := filepath.Join(*dir, "Матрица.xlsx")
	if err := excel.WriteSampleMatrix(matrix); err != nil {
		log.Error("ошибка записи матрицы", slog.String("error", err.Error()))
		os.Exit(1)
	}

	brackets := filepath.Join(*dir, "Кронштейны.xlsx")
	if err := excel.WriteSampleBrackets(brackets); err != nil {
		log.Error("ошибка записи кронштейнов", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("тестовые данные созданы", slog.String("matrix", matrix), slog.String("brackets", brackets))
}

package generate_excel

import (
	"errors"
	"github.com/go-chi/chi/v5"
	"log/slog"
	"mime"
	"net/http"
	"radiatool/internal/service/specification"
	"radiatool/internal/session"
)

type ReportExporter interface {
	Export(id, format string) (specification.File, error)
}

func GenerateReportExcel(log *slog.Logger, gen ReportExporter) http.HandlerFunc {
	return generateReport(log, gen, specification.FormatXLSX)
}

func GenerateReportCSV(log *slog.Logger, gen ReportExporter) http.HandlerFunc {
	return generateReport(log, gen, specification.FormatCSV)
}

func generateReport(log *slog.Logger, gen ReportExporter, format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.report.GenerateReport"

		id := chi.URLParam(r, "id")

		file, err := gen.Export(id, format)
		if errors.Is(err, session.ErrNotFound) {
			http.Error(w, "сессия не найдена", http.StatusNotFound)
			return
		}
		if err != nil {
			log.Error("failed to generate report", slog.String("op", op), slog.String("format", format), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		// кириллица в имени файла
		disposition := mime.FormatMediaType("attachment", map[string]string{"filename": file.Name})

		w.Header().Set("Content-Type", file.ContentType)
		w.Header().Set("Content-Disposition", disposition)
		w.Write(file.Data)
	}
}

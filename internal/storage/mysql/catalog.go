package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"radiatool/internal/constants"
	"radiatool/internal/storage"
)

// GetRadiatorSheets строки таблицы radiators, сгруппированные в листы по подключению и типу.
func (s *Storage) GetRadiatorSheets(ctx context.Context) ([]storage.Sheet, error) {
	const op = "storage.mysql.GetRadiatorSheets"

	stmt := `SELECT connection, rad_type, article, name, power, weight, volume, price
		FROM radiators
		ORDER BY id`

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка получения радиаторов: %w", op, err)
	}
	defer rows.Close()

	var (
		sheets []storage.Sheet
		index  = make(map[string]int)
	)

	for rows.Next() {
		var (
			connRaw, radType string
			row              storage.RadiatorRow
		)

		err := rows.Scan(&connRaw, &radType, &row.Article, &row.DisplayName,
			&row.PowerW, &row.WeightKg, &row.VolumeM3, &row.UnitPrice)
		if err != nil {
			return nil, fmt.Errorf("%s: ошибка сканирования строки радиатора: %w", op, err)
		}

		conn, ok := constants.ParseConnection(connRaw)
		if !ok {
			continue
		}

		name := constants.SheetName(conn, radType)
		i, ok := index[name]
		if !ok {
			i = len(sheets)
			index[name] = i
			sheets = append(sheets, storage.Sheet{Name: name, Connection: conn, RadiatorType: radType})
		}
		sheets[i].Rows = append(sheets[i].Rows, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: ошибка при итерации по строкам: %w", op, err)
	}

	return sheets, nil
}

func (s *Storage) GetBrackets(ctx context.Context) ([]storage.BracketVariant, error) {
	const op = "storage.mysql.GetBrackets"

	stmt := `SELECT article, name, price, max_load FROM brackets ORDER BY id`

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка получения кронштейнов: %w", op, err)
	}
	defer rows.Close()

	var brackets []storage.BracketVariant

	for rows.Next() {
		var (
			b       storage.BracketVariant
			maxLoad sql.NullFloat64
		)

		if err := rows.Scan(&b.Article, &b.DisplayName, &b.UnitPrice, &maxLoad); err != nil {
			return nil, fmt.Errorf("%s: ошибка сканирования строки кронштейна: %w", op, err)
		}
		if maxLoad.Valid {
			b.MaxLoadKg = maxLoad.Float64
		}

		brackets = append(brackets, b)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: ошибка при итерации по строкам: %w", op, err)
	}

	return brackets, nil
}

// ReplaceCatalog перезаписывает справочники целиком, например после импорта из excel.
func (s *Storage) ReplaceCatalog(ctx context.Context, sheets []storage.Sheet, brackets []storage.BracketVariant) error {
	const op = "storage.mysql.ReplaceCatalog"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: не удалось начать транзакцию: %w", op, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM radiators`); err != nil {
		return fmt.Errorf("%s: ошибка очистки радиаторов: %w", op, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM brackets`); err != nil {
		return fmt.Errorf("%s: ошибка очистки кронштейнов: %w", op, err)
	}

	radStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO radiators (connection, rad_type, article, name, power, weight, volume, price)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("%s: не удалось подготовить запрос радиаторов: %w", op, err)
	}
	defer radStmt.Close()

	for _, sh := range sheets {
		for _, r := range sh.Rows {
			_, err := radStmt.ExecContext(ctx, string(sh.Connection), sh.RadiatorType,
				r.Article, r.DisplayName, r.PowerW, r.WeightKg, r.VolumeM3, r.UnitPrice)
			if err != nil {
				return fmt.Errorf("%s: ошибка вставки радиатора %s: %w", op, r.Article, err)
			}
		}
	}

	brStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO brackets (article, name, price, max_load) VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("%s: не удалось подготовить запрос кронштейнов: %w", op, err)
	}
	defer brStmt.Close()

	for _, b := range brackets {
		maxLoad := sql.NullFloat64{Float64: b.MaxLoadKg, Valid: b.MaxLoadKg > 0}
		if _, err := brStmt.ExecContext(ctx, b.Article, b.DisplayName, b.UnitPrice, maxLoad); err != nil {
			return fmt.Errorf("%s: ошибка вставки кронштейна %s: %w", op, b.Article, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: ошибка коммита транзакции: %w", op, err)
	}

	return nil
}

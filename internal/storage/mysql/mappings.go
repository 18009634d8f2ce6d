package mysql

import (
	"context"
	"fmt"
	"radiatool/internal/constants"
	"radiatool/internal/storage"
)

func (s *Storage) GetMappings(ctx context.Context) ([]storage.Mapping, error) {
	const op = "storage.mysql.GetMappings"

	stmt := `SELECT competitor_name, connection, rad_type, article, name, confirmed_at
		FROM mappings
		ORDER BY competitor_name`

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка получения соответствий: %w", op, err)
	}
	defer rows.Close()

	var mappings []storage.Mapping

	for rows.Next() {
		var (
			m    storage.Mapping
			conn string
		)

		err := rows.Scan(&m.CompetitorName, &conn, &m.RadiatorType, &m.Article, &m.Name, &m.ConfirmedAt)
		if err != nil {
			return nil, fmt.Errorf("%s: ошибка сканирования строки: %w", op, err)
		}

		if c, ok := constants.ParseConnection(conn); ok {
			m.Connection = c
		}

		mappings = append(mappings, m)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: ошибка при итерации по строкам: %w", op, err)
	}

	return mappings, nil
}

// SaveMapping повторное подтверждение того же наименования перезаписывает запись.
func (s *Storage) SaveMapping(ctx context.Context, m storage.Mapping) error {
	const op = "storage.mysql.SaveMapping"

	stmt := `INSERT INTO mappings (competitor_name, connection, rad_type, article, name, confirmed_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			connection = VALUES(connection),
			rad_type = VALUES(rad_type),
			article = VALUES(article),
			name = VALUES(name),
			confirmed_at = VALUES(confirmed_at)`

	_, err := s.db.ExecContext(ctx, stmt, m.CompetitorName, string(m.Connection), m.RadiatorType, m.Article, m.Name, m.ConfirmedAt)
	if err != nil {
		return fmt.Errorf("%s: ошибка сохранения соответствия %q: %w", op, m.CompetitorName, err)
	}

	return nil
}

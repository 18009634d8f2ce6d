package mysql

import (
	"database/sql"
	"fmt"
	"github.com/go-sql-driver/mysql"
	"radiatool/internal/config"
	"strconv"
)

type Storage struct {
	db *sql.DB
}

// DSN собирает строку подключения из конфига.
func DSN(cfg config.Config) string {
	c := mysql.NewConfig()
	c.User = cfg.DBUser
	c.Passwd = cfg.DBPassword
	c.Net = "tcp"
	c.Addr = cfg.DBHost + ":" + strconv.Itoa(cfg.DBPort)
	c.DBName = cfg.DBName
	c.ParseTime = cfg.ParseTime

	return c.FormatDSN()
}

func New(cfg config.Config) (*Storage, error) {
	return Open(DSN(cfg))
}

// Open подключение по готовой строке, используется и в тестах.
func Open(dsn string) (*Storage, error) {
	const op = "storage.mysql.Open"

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: ping: %w", op, err)
	}

	return &Storage{db: db}, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

// Package repository implementa o armazenamento em PostgreSQL dos
// usuários, das presenças e dos valores de configuração da rota.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	// Registro do driver pgx para uso com database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Storage encapsula a conexão com o PostgreSQL e implementa os métodos de
// acesso aos usuários, presenças e configurações.
type Storage struct {
	DB *sql.DB
}

// New abre a conexão com o PostgreSQL e confere que ela responde.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// Package repository implements the durable store over Postgres. Every row
// is scoped to an owning user; the store offers plain insert, select by
// owner, update by id, and delete by id operations with no multi-row
// transactional guarantees.
package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func New(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/uniadmit/proctor-gateway/internal/model"
)

type OperatorRepository struct {
	pool *pgxpool.Pool
}

func NewOperatorRepository(pool *pgxpool.Pool) *OperatorRepository {
	return &OperatorRepository{pool: pool}
}

func (r *OperatorRepository) GetByEmail(ctx context.Context, email string) (*model.Operator, error) {
	op := &model.Operator{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, created_at FROM operators WHERE email = $1`,
		email).
		Scan(&op.ID, &op.Name, &op.Email, &op.PasswordHash, &op.CreatedAt)
	if err != nil {
		return nil, err
	}
	return op, nil
}

func (r *OperatorRepository) GetByID(ctx context.Context, id int) (*model.Operator, error) {
	op := &model.Operator{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, created_at FROM operators WHERE id = $1`,
		id).
		Scan(&op.ID, &op.Name, &op.Email, &op.PasswordHash, &op.CreatedAt)
	if err != nil {
		return nil, err
	}
	return op, nil
}

func (r *OperatorRepository) Create(ctx context.Context, name, email, passwordHash string) (int, error) {
	var id int
	err := r.pool.QueryRow(ctx,
		`INSERT INTO operators (name, email, password_hash, created_at)
		 VALUES ($1, $2, $3, NOW()) RETURNING id`,
		name, email, passwordHash).
		Scan(&id)
	return id, err
}

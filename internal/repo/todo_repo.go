package repo

import (
	"context"

	dom "Tasker/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TodoRepo interface {
	Create(ctx context.Context, t dom.Todo) (dom.Todo, error)
	// GetByID looks a todo up regardless of owner; callers decide between
	// not-found and not-owner.
	GetByID(ctx context.Context, id int64) (dom.Todo, error)
	ListByUser(ctx context.Context, userID int64) ([]dom.Todo, error)
	UpdateTitle(ctx context.Context, userID, id int64, title string) (dom.Todo, error)
	Delete(ctx context.Context, userID, id int64) error
}

type PGTodoRepo struct {
	db *pgxpool.Pool
}

func NewPGTodoRepo(db *pgxpool.Pool) *PGTodoRepo {
	return &PGTodoRepo{db: db}
}

func (r *PGTodoRepo) Create(ctx context.Context, t dom.Todo) (dom.Todo, error) {
	query := `
		INSERT INTO todos (title, user_id)
		VALUES ($1, $2)
		RETURNING id, title, user_id, created_at, updated_at`
	var out dom.Todo
	err := r.db.QueryRow(ctx, query, t.Title, t.UserID).Scan(
		&out.ID, &out.Title, &out.UserID, &out.CreatedAt, &out.UpdatedAt,
	)
	return out, err
}

func (r *PGTodoRepo) GetByID(ctx context.Context, id int64) (dom.Todo, error) {
	query := `
		SELECT id, title, user_id, created_at, updated_at
		FROM todos WHERE id = $1`
	var t dom.Todo
	err := r.db.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Title, &t.UserID, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

func (r *PGTodoRepo) ListByUser(ctx context.Context, userID int64) ([]dom.Todo, error) {
	query := `
		SELECT id, title, user_id, created_at, updated_at
		FROM todos WHERE user_id = $1 ORDER BY id`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Todo
	for rows.Next() {
		var t dom.Todo
		if err := rows.Scan(&t.ID, &t.Title, &t.UserID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// UpdateTitle mutates scoped to id AND user_id so the ownership check and the
// write happen in one statement. Returns pgx.ErrNoRows if the row is gone.
func (r *PGTodoRepo) UpdateTitle(ctx context.Context, userID, id int64, title string) (dom.Todo, error) {
	query := `
		UPDATE todos SET title = $3, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING id, title, user_id, created_at, updated_at`
	var t dom.Todo
	err := r.db.QueryRow(ctx, query, id, userID, title).Scan(
		&t.ID, &t.Title, &t.UserID, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

// Delete removes the todo scoped to id AND user_id. Returns pgx.ErrNoRows if
// nothing matched, e.g. the row vanished under a concurrent delete.
func (r *PGTodoRepo) Delete(ctx context.Context, userID, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM todos WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

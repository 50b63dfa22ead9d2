package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	dom "Tasker/internal/domain"
	"Tasker/internal/repo"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/singleflight"

	"Tasker/internal/cache"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrEmptyTitle = errors.New("title is required")
	ErrNotOwner   = errors.New("todo belongs to another user")
)

// TodoService enforces per-user ownership on todo CRUD.
type TodoService struct {
	repo  repo.TodoRepo
	cache *cache.TodoCache
	sf    singleflight.Group
}

// NewTodoService creates a TodoService. If c is nil, caching is disabled.
func NewTodoService(r repo.TodoRepo, c *cache.TodoCache) *TodoService {
	return &TodoService{repo: r, cache: c}
}

func (s *TodoService) Create(ctx context.Context, userID int64, title string) (dom.Todo, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return dom.Todo{}, ErrEmptyTitle
	}

	t, err := s.repo.Create(ctx, dom.Todo{
		UserID: userID,
		Title:  title,
	})
	if err != nil {
		return dom.Todo{}, err
	}
	s.invalidateCache(ctx, userID)
	return t, nil
}

func (s *TodoService) List(ctx context.Context, userID int64) ([]dom.Todo, error) {
	if s.cache != nil {
		key := "list:" + strconv.FormatInt(userID, 10)
		v, err, _ := s.sf.Do(key, func() (interface{}, error) {
			if list, err := s.cache.GetList(ctx, userID); err == nil && list != nil {
				return list, nil
			}
			list, err := s.repo.ListByUser(ctx, userID)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetList(ctx, userID, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.Todo), nil
	}
	return s.repo.ListByUser(ctx, userID)
}

// Update renames the todo. A missing id is ErrNotFound; an id owned by
// somebody else is ErrNotOwner, even though the row exists.
func (s *TodoService) Update(ctx context.Context, userID, id int64, title string) (dom.Todo, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return dom.Todo{}, ErrEmptyTitle
	}
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Todo{}, ErrNotFound
		}
		return dom.Todo{}, err
	}
	if existing.UserID != userID {
		return dom.Todo{}, ErrNotOwner
	}
	t, err := s.repo.UpdateTitle(ctx, userID, id, title)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// deleted between the lookup and the write
			return dom.Todo{}, ErrNotFound
		}
		return dom.Todo{}, err
	}
	s.invalidateCache(ctx, userID)
	return t, nil
}

// Delete removes the todo under the same existence/ownership rules as Update.
func (s *TodoService) Delete(ctx context.Context, userID, id int64) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if existing.UserID != userID {
		return ErrNotOwner
	}
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	s.invalidateCache(ctx, userID)
	return nil
}

func (s *TodoService) invalidateCache(ctx context.Context, userID int64) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, userID)
	}
}

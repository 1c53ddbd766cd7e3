package book

import (
	"context"
	"sync"
)

// MemoryRepo keeps books in process memory. IDs start at 1 and are never
// reused, and List preserves insertion order.
type MemoryRepo struct {
	mu     sync.RWMutex
	nextID int64
	order  []int64
	books  map[int64]Book
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		nextID: 1,
		books:  make(map[int64]Book),
	}
}

func (r *MemoryRepo) Insert(ctx context.Context, in Input) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextID
	r.nextID++
	r.books[id] = in.WithID(id)
	r.order = append(r.order, id)
	return id, nil
}

func (r *MemoryRepo) List(ctx context.Context) ([]Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Book, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.books[id])
	}
	return out, nil
}

func (r *MemoryRepo) Get(ctx context.Context, id int64) (Book, error) {
	if err := ctx.Err(); err != nil {
		return Book{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.books[id]
	if !ok {
		return Book{}, ErrNotFound
	}
	return b, nil
}

func (r *MemoryRepo) Replace(ctx context.Context, id int64, in Input) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.books[id]; !ok {
		return ErrNotFound
	}
	r.books[id] = in.WithID(id)
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.books[id]; !ok {
		return ErrNotFound
	}
	delete(r.books, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

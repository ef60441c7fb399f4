package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/tripplan/internal/db"
	"github.com/alexanderramin/tripplan/internal/domain"
	"github.com/alexanderramin/tripplan/internal/repository"
	"github.com/alexanderramin/tripplan/internal/store"
	"github.com/alexanderramin/tripplan/internal/tasklist"
)

type taskService struct {
	store    *store.Store
	uow      db.UnitOfWork
	observer UseCaseObserver
}

// NewTaskService builds the task use cases. Reads go through st directly;
// every load-modify-save runs in one uow transaction with st rebound to it.
func NewTaskService(st *store.Store, uow db.UnitOfWork, observers ...UseCaseObserver) TaskService {
	return &taskService{
		store:    st,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *taskService) List(ctx context.Context) ([]domain.Task, error) {
	return s.store.LoadAll(ctx), nil
}

func (s *taskService) Search(ctx context.Context, query string) ([]domain.Task, error) {
	view := tasklist.New(nil)
	view.Replace(s.store.LoadAll(ctx))
	view.Filter(query)
	return view.Items(), nil
}

func (s *taskService) Get(ctx context.Context, id int) (domain.Task, error) {
	tasks := s.store.LoadAll(ctx)
	idx, ok := store.FindByID(tasks, id)
	if !ok {
		return domain.Task{}, fmt.Errorf("task %d: %w", id, ErrTaskNotFound)
	}
	return tasks[idx], nil
}

func (s *taskService) Create(ctx context.Context, in TaskInput) (task domain.Task, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"category": string(in.Category)}
	defer func() {
		s.observe(ctx, "create-task", startedAt, fields, err)
	}()

	err = s.withTasks(ctx, func(tasks []domain.Task) ([]domain.Task, error) {
		id, err := store.AllocateID(tasks)
		if err != nil {
			return nil, err
		}
		task = domain.NewTask(id, in.Title, in.Category, in.Date, in.Budget, in.Important, in.Done, in.Notes)
		return append(tasks, task), nil
	})
	if err != nil {
		return domain.Task{}, err
	}
	fields["id"] = task.ID
	return task, nil
}

func (s *taskService) Update(ctx context.Context, id int, in TaskInput) (domain.Task, error) {
	return s.mutate(ctx, "update-task", id, func(t *domain.Task) {
		t.Title = in.Title
		t.Category = in.Category
		t.Date = in.Date
		t.Budget = in.Budget
		t.Important = in.Important
		t.Done = in.Done
		t.Notes = in.Notes
	})
}

func (s *taskService) Patch(ctx context.Context, id int, p TaskPatch) (domain.Task, error) {
	return s.mutate(ctx, "patch-task", id, func(t *domain.Task) {
		t.Title = domain.StrFromPtrWithDefault(t.Title, p.Title)
		if p.Category != nil {
			t.Category = *p.Category
		}
		t.Date = domain.StrFromPtrWithDefault(t.Date, p.Date)
		t.Budget = domain.Float64FromPtrWithDefault(t.Budget, p.Budget)
		t.Important = domain.BoolFromPtrWithDefault(t.Important, p.Important)
		t.Done = domain.BoolFromPtrWithDefault(t.Done, p.Done)
		t.Notes = domain.StrFromPtrWithDefault(t.Notes, p.Notes)
	})
}

func (s *taskService) ToggleDone(ctx context.Context, id int) (domain.Task, error) {
	return s.mutate(ctx, "toggle-done", id, (*domain.Task).ToggleDone)
}

func (s *taskService) Delete(ctx context.Context, id int) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observe(ctx, "delete-task", startedAt, map[string]any{"id": id}, err)
	}()

	return s.withTasks(ctx, func(tasks []domain.Task) ([]domain.Task, error) {
		idx, ok := store.FindByID(tasks, id)
		if !ok {
			return nil, fmt.Errorf("task %d: %w", id, ErrTaskNotFound)
		}
		return append(tasks[:idx], tasks[idx+1:]...), nil
	})
}

func (s *taskService) DeleteAt(ctx context.Context, view *tasklist.List, index int) (domain.Task, error) {
	task, err := view.ItemAt(index)
	if err != nil {
		return domain.Task{}, err
	}
	if err := s.Delete(ctx, task.ID); err != nil {
		return domain.Task{}, err
	}
	view.ReplaceAndFilter(s.store.LoadAll(ctx))
	return task, nil
}

func (s *taskService) Summary(ctx context.Context) (TaskSummary, error) {
	return summarize(s.store.LoadAll(ctx)), nil
}

// Import appends tasks to the stored collection, or replaces it. Incoming
// tasks whose id is not positive or is already taken get a fresh id above
// every existing and incoming id. Nothing is saved if fresh ids run out.
func (s *taskService) Import(ctx context.Context, incoming []domain.Task, replace bool) (res ImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"replace": replace, "incoming": len(incoming)}
	defer func() {
		fields["renumbered"] = res.Renumbered
		s.observe(ctx, "import-tasks", startedAt, fields, err)
	}()

	err = s.withTasks(ctx, func(tasks []domain.Task) ([]domain.Task, error) {
		if replace {
			tasks = tasks[:0]
		}
		taken := make(map[int]bool, len(tasks)+len(incoming))
		for _, t := range tasks {
			taken[t.ID] = true
		}
		last := max(store.MaxID(tasks), store.MaxID(incoming))
		for _, t := range incoming {
			if t.ID <= 0 || taken[t.ID] {
				id, err := store.NextIDAfter(last)
				if err != nil {
					return nil, err
				}
				t.ID = id
				last = id
				res.Renumbered++
			}
			taken[t.ID] = true
			tasks = append(tasks, t)
			res.Added++
		}
		return tasks, nil
	})
	if err != nil {
		return ImportResult{}, err
	}
	res.Replaced = replace
	return res, nil
}

// mutate applies fn to the task with id and saves the collection.
func (s *taskService) mutate(ctx context.Context, name string, id int, fn func(*domain.Task)) (task domain.Task, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observe(ctx, name, startedAt, map[string]any{"id": id}, err)
	}()

	err = s.withTasks(ctx, func(tasks []domain.Task) ([]domain.Task, error) {
		idx, ok := store.FindByID(tasks, id)
		if !ok {
			return nil, fmt.Errorf("task %d: %w", id, ErrTaskNotFound)
		}
		fn(&tasks[idx])
		task = tasks[idx]
		return tasks, nil
	})
	if err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

// withTasks loads the collection inside a transaction, lets fn rewrite it,
// and saves the result. Nothing is saved when fn fails.
func (s *taskService) withTasks(ctx context.Context, fn func([]domain.Task) ([]domain.Task, error)) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txStore := s.store.WithRepo(repository.NewSQLitePreferenceRepo(tx))
		tasks, err := fn(txStore.LoadAll(ctx))
		if err != nil {
			return err
		}
		return txStore.SaveAll(ctx, tasks)
	})
}

func (s *taskService) observe(ctx context.Context, name string, startedAt time.Time, fields map[string]any, err error) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}

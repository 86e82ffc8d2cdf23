package services

import (
	"context"
	"fmt"

	"storefront/models"
)

type FormKind int

const (
	FormCreate FormKind = iota
	FormUpdate
)

// FormMode is chosen by the caller; a form never infers it from the record.
type FormMode struct {
	Kind FormKind
	ID   int
}

func CreateMode() FormMode { return FormMode{Kind: FormCreate} }

func UpdateMode(id int) FormMode { return FormMode{Kind: FormUpdate, ID: id} }

func (m FormMode) IsUpdate() bool { return m.Kind == FormUpdate }

func (m FormMode) String() string {
	if m.IsUpdate() {
		return fmt.Sprintf("update(%d)", m.ID)
	}
	return "create"
}

// Saver is the create/update half of a repository.
type Saver[T any] interface {
	Create(ctx context.Context, rec T) (T, error)
	Update(ctx context.Context, id int, rec T) (T, error)
}

type FormOption[T any] func(*FormController[T])

// WithRefresh runs after every successful submit, typically to refetch the list.
func WithRefresh[T any](fn func(context.Context)) FormOption[T] {
	return func(f *FormController[T]) { f.onRefresh = fn }
}

func WithAlert[T any](fn func(models.Alert)) FormOption[T] {
	return func(f *FormController[T]) { f.onAlert = fn }
}

func WithSuccessMessages[T any](created, updated string) FormOption[T] {
	return func(f *FormController[T]) {
		f.createdMsg = created
		f.updatedMsg = updated
	}
}

// FormController submits one record in an explicit create or update mode.
type FormController[T any] struct {
	saver      Saver[T]
	mode       FormMode
	initial    T
	open       bool
	onRefresh  func(context.Context)
	onAlert    func(models.Alert)
	createdMsg string
	updatedMsg string
}

func NewFormController[T any](saver Saver[T], mode FormMode, initial T, opts ...FormOption[T]) *FormController[T] {
	f := &FormController[T]{
		saver:      saver,
		mode:       mode,
		initial:    initial,
		open:       true,
		onRefresh:  func(context.Context) {},
		onAlert:    func(models.Alert) {},
		createdMsg: "Created successfully",
		updatedMsg: "Updated successfully",
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *FormController[T]) Mode() FormMode { return f.mode }

// Initial is the record the form was opened with; the zero value in create mode.
func (f *FormController[T]) Initial() T { return f.initial }

func (f *FormController[T]) IsOpen() bool { return f.open }

func (f *FormController[T]) Close() { f.open = false }

// Submit posts (create) or puts (update) rec. On success it refreshes,
// raises a toast and closes the form.
func (f *FormController[T]) Submit(ctx context.Context, rec T) (T, error) {
	saved, err := f.save(ctx, rec)
	if err != nil {
		return saved, err
	}
	f.finish(ctx)
	return saved, nil
}

func (f *FormController[T]) save(ctx context.Context, rec T) (T, error) {
	if f.mode.IsUpdate() {
		if r, ok := any(&rec).(models.Identified); ok {
			r.SetID(f.mode.ID)
		}
		return f.saver.Update(ctx, f.mode.ID, rec)
	}
	return f.saver.Create(ctx, rec)
}

func (f *FormController[T]) finish(ctx context.Context) {
	f.onRefresh(ctx)
	msg := f.createdMsg
	if f.mode.IsUpdate() {
		msg = f.updatedMsg
	}
	f.onAlert(models.Toast(models.AlertSuccess, msg))
	f.open = false
}

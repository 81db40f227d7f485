package cli

import (
	"context"
	"errors"
	"strconv"

	"github.com/dmitrijs2005/taskpad/internal/client/engine"
	"github.com/dmitrijs2005/taskpad/internal/common"
)

func (a *App) render() {
	printlnFn(renderView(a.engine.View()))
}

// resolveID accepts a task id or a 1-based position in the current list.
func (a *App) resolveID(ref string) string {
	n, err := strconv.Atoi(ref)
	if err != nil {
		return ref
	}
	tasks := a.engine.View().Tasks
	if n >= 1 && n <= len(tasks) {
		return tasks[n-1].ID
	}
	return ref
}

func (a *App) List(ctx context.Context) error {
	a.render()
	return nil
}

func (a *App) Refresh(ctx context.Context) error {
	err := a.engine.Refresh(ctx)
	a.render()
	return err
}

func (a *App) Add(ctx context.Context, title, path string) error {
	var f *engine.File
	if path != "" {
		var err error
		if f, err = loadFile(path); err != nil {
			printlnFn("Error:", err.Error())
			return err
		}
	}

	a.engine.SetNewTitle(title)
	a.engine.SetNewFile(f)

	err := a.engine.AddTask(ctx, title, f)
	if errors.Is(err, engine.ErrEmptyTitle) {
		printlnFn("Title must not be empty")
		return err
	}
	a.render()
	return err
}

func (a *App) Edit(ctx context.Context, ref string) error {
	if err := a.engine.EnterEdit(a.resolveID(ref)); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			printlnFn("No such task:", ref)
		}
		return err
	}
	a.render()
	return nil
}

var errNotEditing = errors.New("not editing")

func (a *App) requireEdit() error {
	if a.engine.View().EditingID == "" {
		printlnFn("Not editing; use 'edit <id>' first")
		return errNotEditing
	}
	return nil
}

func (a *App) SetTitle(ctx context.Context, title string) error {
	if err := a.requireEdit(); err != nil {
		return err
	}
	a.engine.SetEditTitle(title)
	a.render()
	return nil
}

func (a *App) SetFile(ctx context.Context, path string) error {
	if err := a.requireEdit(); err != nil {
		return err
	}
	f, err := loadFile(path)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	a.engine.SetEditFile(f)
	a.render()
	return nil
}

func (a *App) Save(ctx context.Context) error {
	if err := a.requireEdit(); err != nil {
		return err
	}
	v := a.engine.View()
	err := a.engine.SaveEdit(ctx, v.EditingID, v.EditDraft.Title, v.EditDraft.File)
	if errors.Is(err, engine.ErrEmptyTitle) {
		printlnFn("Title must not be empty")
		return err
	}
	a.render()
	return err
}

func (a *App) Cancel(ctx context.Context) error {
	a.engine.CancelEdit()
	a.render()
	return nil
}

func (a *App) Toggle(ctx context.Context, ref string) error {
	err := a.engine.ToggleCompleted(ctx, a.resolveID(ref))
	a.render()
	return err
}

func (a *App) Delete(ctx context.Context, ref string) error {
	err := a.engine.DeleteTask(ctx, a.resolveID(ref))
	a.render()
	return err
}

package todo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/lifetrack/core"
	"github.com/trezcool/lifetrack/core/todo"
	inmemdb "github.com/trezcool/lifetrack/storage/database/inmem"
)

func newService() *todo.Service {
	validate, _ := core.NewValidator()
	return todo.NewService(inmemdb.NewDocumentStore(inmemdb.Open()), validate, core.NopLogger())
}

func TestService(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.Add(ctx, "u1", todo.Input{Title: "   "})
	assert.Equal(t, core.KindValidation, core.KindOf(err))

	todos, err := svc.Add(ctx, "u1", todo.Input{Title: "  Write report ", Description: "Q3 numbers"})
	assert.NoError(t, err)
	if assert.Len(t, todos, 1) {
		assert.Equal(t, "Write report", todos[0].Title)
		assert.False(t, todos[0].Completed)
	}
	id := todos[0].ID

	todos, err = svc.ToggleCompleted(ctx, "u1", id)
	assert.NoError(t, err)
	assert.True(t, todos[0].Completed)

	todos, err = svc.Edit(ctx, "u1", id, todo.Input{Title: "Write the report"})
	assert.NoError(t, err)
	assert.Equal(t, "Write the report", todos[0].Title)
	assert.True(t, todos[0].Completed, "edit keeps completion")

	_, err = svc.Edit(ctx, "u1", "nope", todo.Input{Title: "x"})
	assert.Equal(t, core.KindItemNotFound, core.KindOf(err))

	todos, _ = svc.Add(ctx, "u1", todo.Input{Title: "Call mom"})
	assert.Equal(t, todo.Stats{Total: 2, Completed: 1, Pending: 1}, todo.Summarize(todos))
	assert.Len(t, todo.Filter{Status: "pending"}.Apply(todos), 1)
	assert.Len(t, todo.Filter{Search: "REPORT"}.Apply(todos), 1)

	todos, err = svc.Delete(ctx, "u1", id)
	assert.NoError(t, err)
	assert.Len(t, todos, 1)
	assert.Equal(t, "Call mom", todos[0].Title)
}

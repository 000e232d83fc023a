package todo

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/lifetrack/core"
)

type Todo struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (t Todo) ItemID() string { return t.ID }

// Input is the add/edit form of a Todo.
type Input struct {
	Title       string `json:"title" validate:"required,notblank,max=200"`
	Description string `json:"description" validate:"max=2000"`
}

func (in *Input) Validate(validate *validator.Validate) error {
	in.Title = core.CleanString(in.Title)
	in.Description = core.CleanString(in.Description)
	return validate.Struct(in)
}

// Filter narrows a listing. Status is one of "", "all", "completed" or "pending".
type Filter struct {
	Search string
	Status string
}

func (f Filter) Apply(todos []Todo) []Todo {
	search := core.CleanString(f.Search)
	out := make([]Todo, 0, len(todos))
	for _, t := range todos {
		switch f.Status {
		case "completed":
			if !t.Completed {
				continue
			}
		case "pending":
			if t.Completed {
				continue
			}
		}
		if search != "" && !core.ContainsFold(t.Title, search) && !core.ContainsFold(t.Description, search) {
			continue
		}
		out = append(out, t)
	}
	return out
}

type Stats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}

func Summarize(todos []Todo) Stats {
	st := Stats{Total: len(todos)}
	for _, t := range todos {
		if t.Completed {
			st.Completed++
		}
	}
	st.Pending = st.Total - st.Completed
	return st
}

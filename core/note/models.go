package note

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/lifetrack/core"
)

type Note struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Images    []string  `json:"images"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (n Note) ItemID() string { return n.ID }

func (n *Note) Normalize() {
	if n.Images == nil {
		n.Images = []string{}
	}
}

// Input is the add/edit form of a Note. Images holds already uploaded URLs.
type Input struct {
	Title   string   `json:"title" validate:"required,notblank,max=200"`
	Content string   `json:"content" validate:"max=20000"`
	Images  []string `json:"images" validate:"dive,url"`
}

func (in *Input) Validate(validate *validator.Validate) error {
	in.Title = core.CleanString(in.Title)
	in.Content = core.CleanString(in.Content)
	if in.Images == nil {
		in.Images = []string{}
	}
	return validate.Struct(in)
}

// RemoveImage drops the image at index; out of range indexes are ignored.
func (in *Input) RemoveImage(index int) {
	if index < 0 || index >= len(in.Images) {
		return
	}
	images := make([]string, 0, len(in.Images)-1)
	images = append(images, in.Images[:index]...)
	in.Images = append(images, in.Images[index+1:]...)
}

type Filter struct {
	Search string
}

func (f Filter) Apply(notes []Note) []Note {
	search := core.CleanString(f.Search)
	out := make([]Note, 0, len(notes))
	for _, n := range notes {
		if search != "" && !core.ContainsFold(n.Title, search) && !core.ContainsFold(n.Content, search) {
			continue
		}
		out = append(out, n)
	}
	return out
}

package shopping

import (
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/lifetrack/core"
)

var Categories = []string{
	"عام",
	"خضروات وفواكه",
	"لحوم ودجاج",
	"ألبان ومخبوزات",
	"مشروبات",
	"تنظيف",
	"أدوية وصحة",
	"مستلزمات شخصية",
}

var DefaultCategory = Categories[0]

type Item struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	Category  string    `json:"category"`
	Bought    bool      `json:"bought"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (i Item) ItemID() string { return i.ID }

// ParseQuantity reads a quantity typed by the user. Anything but a positive integer gives 1.
func ParseQuantity(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Input is the add/edit form of an Item.
type Input struct {
	Name     string `json:"name" validate:"required,notblank,max=200"`
	Quantity int    `json:"quantity" validate:"min=1"`
	Category string `json:"category" validate:"required,shoppingcategory"`
	Image    string `json:"image" validate:"omitempty,url"`
}

func (in *Input) Validate(validate *validator.Validate) error {
	in.Name = core.CleanString(in.Name)
	in.Category = core.CleanString(in.Category)
	if in.Category == "" {
		in.Category = DefaultCategory
	}
	if in.Quantity == 0 {
		in.Quantity = 1
	}
	in.Image = core.CleanString(in.Image)
	return validate.Struct(in)
}

// Filter statuses.
const (
	StatusAll     = "all"
	StatusBought  = "bought"
	StatusPending = "pending"
)

type Filter struct {
	Search string
	Status string
}

func (f Filter) Apply(items []Item) []Item {
	search := core.CleanString(f.Search)
	out := make([]Item, 0, len(items))
	for _, it := range items {
		switch f.Status {
		case StatusBought:
			if !it.Bought {
				continue
			}
		case StatusPending:
			if it.Bought {
				continue
			}
		}
		if search != "" && !core.ContainsFold(it.Name, search) {
			continue
		}
		out = append(out, it)
	}
	return out
}

type Stats struct {
	Total   int `json:"total"`
	Bought  int `json:"bought"`
	Pending int `json:"pending"`
}

func Summarize(items []Item) Stats {
	st := Stats{Total: len(items)}
	for _, it := range items {
		if it.Bought {
			st.Bought++
		}
	}
	st.Pending = st.Total - st.Bought
	return st
}

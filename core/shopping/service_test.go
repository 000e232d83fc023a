package shopping_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/lifetrack/core"
	"github.com/trezcool/lifetrack/core/media"
	"github.com/trezcool/lifetrack/core/shopping"
	inmemdb "github.com/trezcool/lifetrack/storage/database/inmem"
)

type fakeUploader struct{ err error }

func (u fakeUploader) Upload(_ context.Context, f media.File) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	return "https://cdn.test/" + f.Name, nil
}

func newService(up media.Uploader) *shopping.Service {
	validate, translator := core.NewValidator()
	shopping.InitValidators(validate, translator)
	return shopping.NewService(inmemdb.NewDocumentStore(inmemdb.Open()), up, validate, core.NopLogger())
}

func TestParseQuantity(t *testing.T) {
	tests := map[string]int{"": 1, "abc": 1, "0": 1, "-2": 1, " 3 ": 3, "12": 12}
	for in, want := range tests {
		assert.Equal(t, want, shopping.ParseQuantity(in), "input %q", in)
	}
}

func TestService(t *testing.T) {
	svc := newService(fakeUploader{})
	ctx := context.Background()

	tests := []struct {
		name         string
		in           shopping.Input
		wantErr      bool
		wantQuantity int
		wantCategory string
	}{
		{name: "no name", in: shopping.Input{}, wantErr: true},
		{name: "negative quantity", in: shopping.Input{Name: "Milk", Quantity: -1}, wantErr: true},
		{name: "unknown category", in: shopping.Input{Name: "Milk", Category: "Dairy"}, wantErr: true},
		{name: "defaults", in: shopping.Input{Name: "Milk"}, wantQuantity: 1, wantCategory: "عام"},
		{name: "explicit", in: shopping.Input{Name: "Apples", Quantity: 6, Category: "خضروات وفواكه"}, wantQuantity: 6, wantCategory: "خضروات وفواكه"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := svc.Add(ctx, "u1", tt.in)
			if tt.wantErr {
				assert.Equal(t, core.KindValidation, core.KindOf(err))
				return
			}
			if assert.NoError(t, err) {
				it := items[len(items)-1]
				assert.Equal(t, tt.wantQuantity, it.Quantity)
				assert.Equal(t, tt.wantCategory, it.Category)
				assert.False(t, it.Bought)
			}
		})
	}

	items, _ := svc.List(ctx, "u1")
	milk := items[0]
	items, err := svc.ToggleBought(ctx, "u1", milk.ID)
	assert.NoError(t, err)
	assert.Equal(t, shopping.Stats{Total: 2, Bought: 1, Pending: 1}, shopping.Summarize(items))
	assert.Len(t, shopping.Filter{Status: shopping.StatusBought}.Apply(items), 1)
	assert.Len(t, shopping.Filter{Status: shopping.StatusPending, Search: "APP"}.Apply(items), 1)
	assert.Len(t, shopping.Filter{Status: shopping.StatusPending, Search: "milk"}.Apply(items), 0)

	in := shopping.Input{Name: "Milk", Quantity: 2}
	assert.NoError(t, svc.AttachImage(ctx, &in, media.File{Name: "milk.png", Data: []byte("\x89PNG\r\n\x1a\n")}))
	items, err = svc.Edit(ctx, "u1", milk.ID, in)
	assert.NoError(t, err)
	assert.Equal(t, "https://cdn.test/milk.png", items[0].Image)
	assert.True(t, items[0].Bought, "edit keeps the bought flag")
}

func TestService_AttachImageFailure(t *testing.T) {
	svc := newService(fakeUploader{err: errors.New("timeout")})
	in := shopping.Input{Name: "Bread", Image: "https://cdn.test/old.png"}

	err := svc.AttachImage(context.Background(), &in, media.File{Name: "bread.png", Data: []byte("\x89PNG\r\n\x1a\n")})
	assert.Equal(t, core.KindUploadFailure, core.KindOf(err))
	assert.Equal(t, shopping.Input{Name: "Bread", Image: "https://cdn.test/old.png"}, in)
}

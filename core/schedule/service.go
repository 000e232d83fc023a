package schedule

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/lifetrack/core"
	"github.com/trezcool/lifetrack/core/collection"
)

var ErrSlotTaken = errors.New("this time slot is already taken")

type Service struct {
	sync     *collection.Synchronizer[Entry]
	validate *validator.Validate
	logger   core.Logger
}

func NewService(store collection.Store, validate *validator.Validate, logger core.Logger, opts ...collection.Option) *Service {
	opts = append([]collection.Option{collection.WithLogger(logger)}, opts...)
	return &Service{
		sync:     collection.New[Entry](store, collection.WeeklySchedule, opts...),
		validate: validate,
		logger:   logger,
	}
}

func (svc *Service) List(ctx context.Context, owner string) ([]Entry, error) {
	return svc.sync.FetchAll(ctx, owner)
}

// Grid builds the weekly grid of owner. Entries which cannot be placed are logged.
func (svc *Service) Grid(ctx context.Context, owner string) (Grid, error) {
	entries, err := svc.sync.FetchAll(ctx, owner)
	if err != nil {
		return Grid{}, err
	}
	g := BuildGrid(entries)
	for _, e := range g.Unplaced {
		svc.logger.Warn(fmt.Sprintf("schedule entry %q (%s, %s) cannot be placed on the grid", e.ID, e.Day, e.TimeSlot))
	}
	return g, nil
}

func slotTakenError() error {
	return core.NewValidationError(ErrSlotTaken, core.FieldError{Field: "timeSlot", Error: ErrSlotTaken.Error()})
}

// Add creates an entry if its (day, slot) is free.
func (svc *Service) Add(ctx context.Context, owner string, in EntryInput) ([]Entry, error) {
	if err := in.Validate(svc.validate); err != nil {
		return nil, err
	}
	entries, err := svc.sync.FetchAll(ctx, owner)
	if err != nil {
		return nil, err
	}
	if !CanPlace(entries, in.Day, in.TimeSlot, "") {
		return nil, slotTakenError()
	}
	return svc.sync.Add(ctx, owner, Entry{Task: in.Task, Day: in.Day, TimeSlot: in.TimeSlot})
}

// Edit changes the task and position of entry id; it may keep its own slot.
func (svc *Service) Edit(ctx context.Context, owner, id string, in EntryInput) ([]Entry, error) {
	if err := in.Validate(svc.validate); err != nil {
		return nil, err
	}
	entries, err := svc.sync.FetchAll(ctx, owner)
	if err != nil {
		return nil, err
	}
	if _, ok := collection.Find(entries, id); !ok {
		return nil, errors.Wrapf(core.ErrItemNotFound, "schedule entry %q", id)
	}
	if !CanPlace(entries, in.Day, in.TimeSlot, id) {
		return nil, slotTakenError()
	}
	return svc.sync.Update(ctx, owner, id, collection.Fields{
		"task":     in.Task,
		"day":      in.Day,
		"timeSlot": in.TimeSlot,
	})
}

// ToggleCompleted flips the completion of entry id without moving it.
func (svc *Service) ToggleCompleted(ctx context.Context, owner, id string) ([]Entry, error) {
	entries, err := svc.sync.FetchAll(ctx, owner)
	if err != nil {
		return nil, err
	}
	e, ok := collection.Find(entries, id)
	if !ok {
		return nil, errors.Wrapf(core.ErrItemNotFound, "schedule entry %q", id)
	}
	var completedAt interface{}
	if !e.Completed {
		completedAt = svc.sync.Timestamp()
	}
	return svc.sync.Update(ctx, owner, id, collection.Fields{
		"completed":   !e.Completed,
		"completedAt": completedAt,
	})
}

func (svc *Service) Delete(ctx context.Context, owner, id string) ([]Entry, error) {
	return svc.sync.Delete(ctx, owner, id)
}

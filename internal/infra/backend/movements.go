package backend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"example.com/brewery-admin/internal/domain/movement"
	"example.com/brewery-admin/internal/domain/page"
)

const (
	movementsPath = "/api/movements"
	dayLayout     = "2006-01-02"
	instantLayout = "2006-01-02T15:04:05.000Z07:00"
)

type movementListParams struct {
	Type       string `url:"type,omitempty"`
	MaterialID int64  `url:"materialId,omitempty"`
	StartDate  string `url:"startDate,omitempty"`
	EndDate    string `url:"endDate,omitempty"`
	Page       int    `url:"page"`
	Size       int    `url:"size"`
}

type MovementRepository struct {
	client *Client
	loc    *time.Location
}

// NewMovementRepository expands filter dates in loc; nil means UTC.
func NewMovementRepository(c *Client, loc *time.Location) *MovementRepository {
	if loc == nil {
		loc = time.UTC
	}
	return &MovementRepository{client: c, loc: loc}
}

var _ movement.Repository = (*MovementRepository)(nil)

func (r *MovementRepository) List(ctx context.Context, f movement.Filter) (page.Page[movement.Movement], error) {
	start, end, err := ExpandDateRange(f.StartDate, f.EndDate, r.loc)
	if err != nil {
		return page.Page[movement.Movement]{}, err
	}
	req := f.Request.Normalize()
	params := movementListParams{
		Type:       string(f.Type),
		MaterialID: f.MaterialID,
		StartDate:  start,
		EndDate:    end,
		Page:       req.Page,
		Size:       req.Size,
	}
	resp, err := Get[envelope[movement.Movement]](ctx, r.client, movementsPath, params)
	return listPage(resp, err)
}

func (r *MovementRepository) GetByID(ctx context.Context, id int64) (*movement.Movement, error) {
	m, err := Get[movement.Movement](ctx, r.client, PathID(movementsPath, id), nil)
	return entity(m, err, movement.ErrMovementNotFound)
}

func (r *MovementRepository) Create(ctx context.Context, in movement.CreateInput) (*movement.Movement, error) {
	return Post[movement.Movement](ctx, r.client, movementsPath, in)
}

func (r *MovementRepository) ToggleInProgress(ctx context.Context, id int64) (*movement.Movement, error) {
	m, err := Patch[movement.Movement](ctx, r.client, PathID(movementsPath, id, "toggle-in-progress"), nil)
	return entity(m, err, movement.ErrMovementNotFound)
}

func (r *MovementRepository) Complete(ctx context.Context, id int64) (*movement.Movement, error) {
	m, err := Patch[movement.Movement](ctx, r.client, PathID(movementsPath, id, "complete"), nil)
	return entity(m, err, movement.ErrMovementNotFound)
}

// ExpandDateRange turns YYYY-MM-DD bounds into the first and last instant of
// those days in loc. Empty bounds stay empty.
func ExpandDateRange(startDay, endDay string, loc *time.Location) (string, string, error) {
	var start, end time.Time
	var err error
	if s := strings.TrimSpace(startDay); s != "" {
		if start, err = time.ParseInLocation(dayLayout, s, loc); err != nil {
			return "", "", errors.Join(movement.ErrInvalidDateRange, fmt.Errorf("start date %q: %w", s, err))
		}
	}
	if s := strings.TrimSpace(endDay); s != "" {
		if end, err = time.ParseInLocation(dayLayout, s, loc); err != nil {
			return "", "", errors.Join(movement.ErrInvalidDateRange, fmt.Errorf("end date %q: %w", s, err))
		}
		end = time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, int(999*time.Millisecond), loc)
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return "", "", movement.ErrInvalidDateRange
	}

	var startOut, endOut string
	if !start.IsZero() {
		startOut = start.Format(instantLayout)
	}
	if !end.IsZero() {
		endOut = end.Format(instantLayout)
	}
	return startOut, endOut, nil
}

package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"visitorlog/internal/auth"
	"visitorlog/internal/dto"
	"visitorlog/internal/model"
	"visitorlog/internal/repository"
	"visitorlog/internal/store"
)

// unknownCreator is shown when a visitor's creator user has been deleted.
// The dangling reference is kept as-is in the record.
const unknownCreator = "Unknown"

type VisitorService interface {
	List(ctx context.Context) ([]dto.VisitorResponse, error)
	Get(ctx context.Context, id int) (*dto.VisitorResponse, error)
	Add(ctx context.Context, p auth.Principal, req dto.SaveVisitorRequest) (int, error)
	Update(ctx context.Context, p auth.Principal, id int, req dto.SaveVisitorRequest) error
	Close(ctx context.Context, p auth.Principal, id int, exitTime string) error
	Delete(ctx context.Context, p auth.Principal, id int) error
}

type visitorService struct {
	repo     repository.VisitorRepository
	userRepo repository.UserRepository
}

func NewVisitorService(repo repository.VisitorRepository, userRepo repository.UserRepository) VisitorService {
	return &visitorService{repo: repo, userRepo: userRepo}
}

// List returns every visitor record with the creator's display name resolved.
// A deleted creator never fails the listing.
func (s *visitorService) List(ctx context.Context) ([]dto.VisitorResponse, error) {
	visitors, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[int]string, len(users))
	for _, u := range users {
		names[u.ID] = u.DisplayName()
	}

	out := make([]dto.VisitorResponse, len(visitors))
	for i, v := range visitors {
		row := toVisitorResponse(v)
		row.CreatorName = names[v.CreatorID]
		if row.CreatorName == "" {
			row.CreatorName = unknownCreator
		}
		out[i] = row
	}
	return out, nil
}

// Get returns one record with the entry date/time and exit time split out of
// the combined timestamps for display.
func (s *visitorService) Get(ctx context.Context, id int) (*dto.VisitorResponse, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, visitorErr(err)
	}

	resp := toVisitorResponse(v)
	if date, clock, ok := strings.Cut(v.EntryDatetime, " "); ok {
		resp.EntryDate = date
		resp.EntryTime = clock
	}
	if v.ExitDatetime != nil {
		if _, clock, ok := strings.Cut(*v.ExitDatetime, " "); ok {
			resp.ExitTime = clock
		}
	}
	return &resp, nil
}

func (s *visitorService) Add(ctx context.Context, p auth.Principal, req dto.SaveVisitorRequest) (int, error) {
	fields, err := validateVisitorFields(req)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	v := model.Visitor{
		FirstName:     fields.firstName,
		LastName:      fields.lastName,
		Company:       fields.company,
		Plate:         fields.plate,
		VisitorType:   strings.TrimSpace(req.VisitorType),
		VisitDate:     fields.entryDate,
		EntryDatetime: fields.entryDatetime,
		ExitDatetime:  fields.exitDatetime,
		CreatorID:     p.UserID,
		CreatedAt:     now,
	}

	created, err := s.repo.Create(ctx, v)
	if err != nil {
		return 0, err
	}
	return created.ID, nil
}

func (s *visitorService) Update(ctx context.Context, p auth.Principal, id int, req dto.SaveVisitorRequest) error {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return visitorErr(err)
	}
	if err := auth.Authorize(p, auth.VisitorUpdate, v.CreatorID); err != nil {
		return err
	}

	fields, err := validateVisitorFields(req)
	if err != nil {
		return err
	}

	// ID, creator and created_at stay fixed across updates.
	v.FirstName = fields.firstName
	v.LastName = fields.lastName
	v.Company = fields.company
	v.Plate = fields.plate
	v.VisitorType = strings.TrimSpace(req.VisitorType)
	v.VisitDate = fields.entryDate
	v.EntryDatetime = fields.entryDatetime
	v.ExitDatetime = fields.exitDatetime

	return visitorErr(s.repo.Update(ctx, v))
}

// Close sets the exit timestamp to visit_date + the supplied time. Closing an
// already closed record overwrites the previous exit time.
func (s *visitorService) Close(ctx context.Context, p auth.Principal, id int, exitTime string) error {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return visitorErr(err)
	}
	if err := auth.Authorize(p, auth.VisitorClose, v.CreatorID); err != nil {
		return err
	}

	exitTime = strings.TrimSpace(exitTime)
	if _, err := time.Parse(model.TimeLayout, exitTime); err != nil {
		fe := fieldErrors{}
		fe.add("exit_time", "exit time must be HH:MM")
		return fe.err()
	}

	exit := v.VisitDate + " " + exitTime
	v.ExitDatetime = &exit
	return visitorErr(s.repo.Update(ctx, v))
}

func (s *visitorService) Delete(ctx context.Context, p auth.Principal, id int) error {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return visitorErr(err)
	}
	if err := auth.Authorize(p, auth.VisitorDelete, v.CreatorID); err != nil {
		return err
	}
	return visitorErr(s.repo.Delete(ctx, id))
}

// ── Validation ────────────────────────────────────────────────────────────────

type visitorFields struct {
	firstName, lastName, company, plate string
	entryDate, entryDatetime            string
	exitDatetime                        *string
}

// validateVisitorFields checks the required fields and layouts, and
// normalizes names, company and plate to upper case. Shared by add and
// update so the two can never drift.
func validateVisitorFields(req dto.SaveVisitorRequest) (visitorFields, error) {
	fe := fieldErrors{}

	f := visitorFields{
		firstName: strings.ToUpper(strings.TrimSpace(req.FirstName)),
		lastName:  strings.ToUpper(strings.TrimSpace(req.LastName)),
		company:   strings.ToUpper(strings.TrimSpace(req.Company)),
		plate:     strings.ToUpper(strings.TrimSpace(req.Plate)),
		entryDate: strings.TrimSpace(req.EntryDate),
	}
	entryTime := strings.TrimSpace(req.EntryTime)
	exitTime := strings.TrimSpace(req.ExitTime)

	if f.firstName == "" {
		fe.add("first_name", "first name is required")
	}
	if f.lastName == "" {
		fe.add("last_name", "last name is required")
	}
	switch {
	case f.entryDate == "":
		fe.add("entry_date", "entry date is required")
	default:
		if _, err := time.Parse(model.DateLayout, f.entryDate); err != nil {
			fe.add("entry_date", "entry date must be YYYY-MM-DD")
		}
	}
	switch {
	case entryTime == "":
		fe.add("entry_time", "entry time is required")
	default:
		if _, err := time.Parse(model.TimeLayout, entryTime); err != nil {
			fe.add("entry_time", "entry time must be HH:MM")
		}
	}
	if exitTime != "" {
		if _, err := time.Parse(model.TimeLayout, exitTime); err != nil {
			fe.add("exit_time", "exit time must be HH:MM")
		}
	}
	if err := fe.err(); err != nil {
		return visitorFields{}, err
	}

	f.entryDatetime = f.entryDate + " " + entryTime
	if exitTime != "" {
		exit := f.entryDate + " " + exitTime
		f.exitDatetime = &exit
	}
	return f, nil
}

func toVisitorResponse(v model.Visitor) dto.VisitorResponse {
	return dto.VisitorResponse{
		ID:            v.ID,
		FirstName:     v.FirstName,
		LastName:      v.LastName,
		Company:       v.Company,
		Plate:         v.Plate,
		VisitorType:   v.VisitorType,
		VisitDate:     v.VisitDate,
		EntryDatetime: v.EntryDatetime,
		ExitDatetime:  v.ExitDatetime,
		State:         string(v.State()),
		CreatorID:     v.CreatorID,
		CreatedAt:     v.CreatedAt,
	}
}

func visitorErr(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

package beds

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/pneumotrack/pneumotrack/internal/domain/audit"
	"github.com/pneumotrack/pneumotrack/internal/platform/httperr"
)

// AuditRecorder appends entries to the bed audit trail. Satisfied by
// audit.Service. Recording happens inside the request transaction, so a
// failed insert rolls the bed mutation back with it.
type AuditRecorder interface {
	Record(ctx context.Context, e *audit.Entry) error
}

type Service struct {
	repo  Repository
	trail AuditRecorder
	// mutations counts committed bed writes for the system overview. May be
	// nil in tests.
	mutations *atomic.Int64
}

func NewService(repo Repository, trail AuditRecorder, mutations *atomic.Int64) *Service {
	return &Service{repo: repo, trail: trail, mutations: mutations}
}

func (s *Service) countMutations(n int64) {
	if s.mutations != nil {
		s.mutations.Add(n)
	}
}

// Get returns one bed with its patient summary.
func (s *Service) Get(ctx context.Context, id int64) (*BedDetail, error) {
	detail, err := s.repo.GetDetail(ctx, id)
	if err != nil {
		return nil, httperr.Store("beds.get", err)
	}
	if detail == nil {
		return nil, httperr.NotFound("bed", id)
	}
	return detail, nil
}

// List returns beds matching the filter, ordered by room then bed number.
// Unknown status values and malformed room codes are dropped from the filter
// instead of failing the request; dashboards poll with whatever the user
// typed.
func (s *Service) List(ctx context.Context, f ListFilter) ([]BedDetail, error) {
	if f.Status != "" && !ValidStatus(f.Status) {
		f.Status = ""
	}
	if f.Room != "" && !ValidRoomCode(f.Room) {
		f.Room = ""
	}

	details, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, httperr.Store("beds.list", err)
	}
	return details, nil
}

// UpdateStatus performs a validated status transition and writes its audit
// entry. Moving a bed out of occupied releases the patient link.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status, reason, actor string) (*BedDetail, error) {
	if err := CheckRequired(map[string]string{"status": status}); err != nil {
		return nil, err
	}
	if err := CheckStatus(status); err != nil {
		return nil, err
	}

	bed, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, httperr.Store("beds.get", err)
	}
	if bed == nil {
		return nil, httperr.NotFound("bed", id)
	}

	old := bed.Status
	bed.Status = status
	if status != StatusOccupied {
		bed.PatientID = nil
	}
	bed.LastUpdated = time.Now().UTC()
	bed.UpdatedBy = actor

	if err := s.repo.Update(ctx, bed); err != nil {
		return nil, httperr.Store("beds.update_status", err)
	}

	if reason == "" {
		reason = fmt.Sprintf("Status changed from %s to %s", old, status)
	}
	if err := s.trail.Record(ctx, &audit.Entry{
		BedID:        bed.ID,
		OldStatus:    old,
		NewStatus:    status,
		UpdatedBy:    actor,
		UpdateReason: reason,
		PatientID:    bed.PatientID,
	}); err != nil {
		return nil, err
	}
	s.countMutations(1)

	return s.Get(ctx, id)
}

// applyFields merges a partial update into bed and returns the bed's previous
// status. Enforces the patient link invariant: a linked patient forces
// occupied, and leaving occupied clears the link.
func applyFields(bed *Bed, f UpdateFields) (string, error) {
	old := bed.Status

	if f.Status != nil {
		if err := CheckStatus(*f.Status); err != nil {
			return "", err
		}
		bed.Status = *f.Status
	}
	if f.PatientID != nil {
		bed.PatientID = f.PatientID
		if f.Status == nil {
			bed.Status = StatusOccupied
		} else if *f.Status != StatusOccupied {
			return "", httperr.Invalid("patient can only be assigned to an occupied bed, got status %q", *f.Status)
		}
	}
	if bed.Status != StatusOccupied {
		bed.PatientID = nil
	}
	if f.ClinicalNeeds != nil {
		bed.ClinicalNeeds = *f.ClinicalNeeds
	}
	if f.Equipment != nil {
		bed.Equipment = *f.Equipment
	}
	if f.Notes != nil {
		bed.Notes = *f.Notes
	}

	return old, nil
}

// UpdateFields applies a partial update to one bed with a single audit entry
// naming the touched fields.
func (s *Service) UpdateFields(ctx context.Context, id int64, f UpdateFields, actor string) (*BedDetail, error) {
	if f.Empty() {
		return nil, httperr.Invalid("no fields to update")
	}

	bed, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, httperr.Store("beds.get", err)
	}
	if bed == nil {
		return nil, httperr.NotFound("bed", id)
	}

	old, err := applyFields(bed, f)
	if err != nil {
		return nil, err
	}
	bed.LastUpdated = time.Now().UTC()
	bed.UpdatedBy = actor

	if err := s.repo.Update(ctx, bed); err != nil {
		return nil, httperr.Store("beds.update", err)
	}

	if err := s.trail.Record(ctx, &audit.Entry{
		BedID:        bed.ID,
		OldStatus:    old,
		NewStatus:    bed.Status,
		UpdatedBy:    actor,
		UpdateReason: "Updated: " + strings.Join(f.Names(), ", "),
		PatientID:    bed.PatientID,
	}); err != nil {
		return nil, err
	}
	s.countMutations(1)

	return s.Get(ctx, id)
}

// BulkUpdate applies identical fields to every listed bed, all or nothing.
// Any unknown id rejects the whole batch before a single write.
func (s *Service) BulkUpdate(ctx context.Context, ids []int64, f UpdateFields, actor string) ([]BedDetail, error) {
	if len(ids) == 0 {
		return nil, httperr.Invalid("bed_ids must not be empty")
	}
	if f.Empty() {
		return nil, httperr.Invalid("fields must not be empty")
	}

	found, err := s.repo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, httperr.Store("beds.list_by_ids", err)
	}

	byID := make(map[int64]*Bed, len(found))
	for i := range found {
		byID[found[i].ID] = &found[i]
	}

	var missing []int64
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if byID[id] == nil {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
		return nil, httperr.PartialNotFound("beds", missing)
	}

	now := time.Now().UTC()
	updated := make([]BedDetail, 0, len(byID))
	for _, id := range ids {
		bed := byID[id]
		if bed == nil {
			continue // duplicate id already applied
		}
		byID[id] = nil

		old, err := applyFields(bed, f)
		if err != nil {
			return nil, err
		}
		bed.LastUpdated = now
		bed.UpdatedBy = actor

		if err := s.repo.Update(ctx, bed); err != nil {
			return nil, httperr.Store("beds.bulk_update", err)
		}
		if err := s.trail.Record(ctx, &audit.Entry{
			BedID:        bed.ID,
			OldStatus:    old,
			NewStatus:    bed.Status,
			UpdatedBy:    actor,
			UpdateReason: "Bulk update: " + strings.Join(f.Names(), ", "),
			PatientID:    bed.PatientID,
		}); err != nil {
			return nil, err
		}
		updated = append(updated, BedDetail{Bed: *bed})
	}
	s.countMutations(int64(len(updated)))

	return updated, nil
}

// Delete removes a bed. The closing audit entry is written first so the trail
// keeps a record of the bed that no longer exists; both happen in the request
// transaction.
func (s *Service) Delete(ctx context.Context, id int64, actor string) error {
	bed, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return httperr.Store("beds.get", err)
	}
	if bed == nil {
		return httperr.NotFound("bed", id)
	}

	if err := s.trail.Record(ctx, &audit.Entry{
		BedID:        bed.ID,
		OldStatus:    bed.Status,
		NewStatus:    "deleted",
		UpdatedBy:    actor,
		UpdateReason: fmt.Sprintf("Bed %s removed from registry", bed.BedNumber),
		PatientID:    bed.PatientID,
	}); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return httperr.Store("beds.delete", err)
	}
	s.countMutations(1)
	return nil
}

package task

import "time"

// applyPatch computes the new record state from an existing record and a
// sparse patch. Enum fields in the patch must already be validated.
//
// Per-field policy:
//   - Title, Status, Priority: replace when supplied, keep when omitted.
//   - Description, DueAt: presence-aware; an explicit null clears the value.
//   - Tags: presence-aware; a present key replaces the whole sequence, so an
//     empty (or null) sequence clears tags.
//   - ID, CreatedAt: never touched.
//
// UpdatedAt is always bumped and strictly increases even for a zero-field
// patch.
func applyPatch(existing *Task, patch *UpdateTaskRequest, now time.Time) *Task {
	merged := existing.Clone()

	if patch.Title != nil {
		merged.Title = *patch.Title
	}
	if patch.Status != nil {
		merged.Status = Status(*patch.Status)
	}
	if patch.Priority != nil {
		merged.Priority = Priority(*patch.Priority)
	}

	if patch.Description.Set {
		if patch.Description.Null {
			merged.Description = nil
		} else {
			v := patch.Description.Value
			merged.Description = &v
		}
	}
	if patch.DueAt.Set {
		if patch.DueAt.Null {
			merged.DueAt = nil
		} else {
			v := patch.DueAt.Value
			merged.DueAt = &v
		}
	}
	if patch.Tags.Set {
		tags := make([]string, len(patch.Tags.Value))
		copy(tags, patch.Tags.Value)
		merged.Tags = tags
	}

	merged.UpdatedAt = now
	if !merged.UpdatedAt.After(existing.UpdatedAt) {
		// Clock resolution guard: updated_at must strictly increase.
		merged.UpdatedAt = existing.UpdatedAt.Add(time.Microsecond)
	}
	return merged
}

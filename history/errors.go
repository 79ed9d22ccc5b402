// Package history implements mapHistory: a time-indexed, append-only log
// of dpmap.UpdateMap values with on-demand suffix-composition caching and
// step compaction (fuse_prev/condense_history), as consumed by the delay
// multiplier (package delay).
//
// Error policy, matching the rest of this module: only sentinel
// package-level errors are exposed; callers use errors.Is to branch, and
// any added context is attached by the caller via fmt.Errorf("...: %w").
package history

import "errors"

// ErrOutOfRange is returned when a step index is outside [0, Len()).
var ErrOutOfRange = errors.New("history: step index out of range")

// ErrErasedHistory is returned when a query touches a step that has been
// cleared by FusePrev or CondenseHistory without first being rehydrated
// (this module never rehydrates automatically — a cleared step is gone).
var ErrErasedHistory = errors.New("history: access to erased history step")

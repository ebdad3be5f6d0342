// Package reconcile applies externally-reported ingestion-job outcomes
// to shot-request state.  Reconciliation is a pure function over an
// in-memory snapshot: it emits mutation intents for the repository
// layer to apply and never touches the store itself.  The
// HiveProcessedCompletion flag on each job is the idempotency key that
// absorbs the agent's at-least-once delivery, so running a pass twice,
// or with jobs in any order, yields the same net result.
package reconcile

import (
    "sort"
    "time"

    "github.com/mkarimov/production-coverage/internal/model"
)

// ShotMutation is an intent to promote one shot request to Captured.
// InitialCapturerID is only populated when the shot had no capturer
// yet; the repository must never overwrite an existing value.
type ShotMutation struct {
    EventID              string
    ShotID               string
    SourceJobID          string
    Status               model.ShotStatus
    InitialCapturerID    *string
    LastStatusModifierID string
    LastStatusModifiedAt time.Time
}

// Options tunes a reconciliation pass.
type Options struct {
    // StaleAfter, when positive, resolves completed jobs that have
    // reported a zero file count and not been refreshed for at least
    // this long: they are marked processed with zero effect so they
    // cannot retry forever.  Zero disables stale resolution and
    // preserves the wait-for-a-corrected-report behavior.
    StaleAfter time.Duration
}

// Result summarizes one reconciliation pass.
type Result struct {
    // Mutations are the shot promotions to apply, in deterministic order.
    Mutations []ShotMutation
    // ProcessedJobs are job IDs to tag with HiveProcessedCompletion.
    ProcessedJobs []string
    // ResolvedStale is the subset of ProcessedJobs that were closed out
    // by the StaleAfter override rather than by promoting shots.
    ResolvedStale []string
    // ShotsChanged counts shots actually promoted, for activity logging.
    ShotsChanged int
}

// Reconcile runs one pass over the job snapshot.  A job is eligible
// when it is completed, not yet reconciled, and carries both a
// determined event and a determined photographer; anything else is left
// untouched for a future pass.  Per eligible job the reported file
// count bounds how many of the event's Unassigned/Assigned shots, in
// their existing order, are promoted to Captured.  Shots already
// captured or completed are never touched or double-counted, and a
// shot promoted by one job in this pass is not promoted again by
// another.
func Reconcile(now time.Time, jobs []model.IngestJobStatus, shotsByEvent map[string][]model.ShotRequest, opts Options) Result {
    var res Result

    // Work on copies so promotions made for one job are visible when a
    // later job targets the same event, without mutating the caller's
    // snapshot.
    local := make(map[string][]model.ShotRequest, len(shotsByEvent))
    for eventID, shots := range shotsByEvent {
        cp := make([]model.ShotRequest, len(shots))
        copy(cp, shots)
        local[eventID] = cp
    }

    // Jobs are processed in ID order so the emitted intents do not
    // depend on snapshot ordering.
    ordered := make([]model.IngestJobStatus, len(jobs))
    copy(ordered, jobs)
    sort.Slice(ordered, func(i, j int) bool { return ordered[i].JobID < ordered[j].JobID })

    for _, job := range ordered {
        if job.Status != model.IngestCompleted || job.HiveProcessedCompletion {
            continue
        }
        if job.DeterminedEventID == nil || *job.DeterminedEventID == "" ||
            job.DeterminedPhotographerID == nil || *job.DeterminedPhotographerID == "" {
            // Correlation fields may arrive on a later report.
            continue
        }

        n := reportedCount(job)
        if n <= 0 {
            if opts.StaleAfter > 0 && !job.UpdatedAt.IsZero() && now.Sub(job.UpdatedAt) >= opts.StaleAfter {
                res.ProcessedJobs = append(res.ProcessedJobs, job.JobID)
                res.ResolvedStale = append(res.ResolvedStale, job.JobID)
            }
            // Otherwise leave the job unprocessed and wait for a report
            // that carries a count.
            continue
        }

        photographer := *job.DeterminedPhotographerID
        shots := local[*job.DeterminedEventID]
        promoted := 0
        for i := range shots {
            if promoted >= n {
                break
            }
            if shots[i].Status != model.ShotUnassigned && shots[i].Status != model.ShotAssigned {
                continue
            }

            mut := ShotMutation{
                EventID:              *job.DeterminedEventID,
                ShotID:               shots[i].ID,
                SourceJobID:          job.JobID,
                Status:               model.ShotCaptured,
                LastStatusModifierID: photographer,
                LastStatusModifiedAt: now,
            }
            if shots[i].InitialCapturerID == nil || *shots[i].InitialCapturerID == "" {
                p := photographer
                mut.InitialCapturerID = &p
                shots[i].InitialCapturerID = &p
            }
            shots[i].Status = model.ShotCaptured
            res.Mutations = append(res.Mutations, mut)
            promoted++
        }
        res.ShotsChanged += promoted

        // Mark the job processed even when it promoted fewer shots than
        // reported (or none at all): it carried a positive count, so a
        // repeated delivery must be a no-op.
        res.ProcessedJobs = append(res.ProcessedJobs, job.JobID)
    }
    return res
}

// reportedCount prefers the event-matched file count over the raw
// processed total; a job that reported neither counts as zero.
func reportedCount(job model.IngestJobStatus) int {
    if job.FilesMatchedToEvents != nil {
        return *job.FilesMatchedToEvents
    }
    if job.FilesProcessed != nil {
        return *job.FilesProcessed
    }
    return 0
}

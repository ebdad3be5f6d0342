package reconcile

import (
    "testing"
    "time"

    "github.com/mkarimov/production-coverage/internal/model"
)

var now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func strptr(s string) *string { return &s }
func intptr(n int) *int       { return &n }

func completedJob(id, eventID, photographerID string, matched int) model.IngestJobStatus {
    return model.IngestJobStatus{
        JobID:                    id,
        Status:                   model.IngestCompleted,
        DeterminedEventID:        strptr(eventID),
        DeterminedPhotographerID: strptr(photographerID),
        FilesMatchedToEvents:     intptr(matched),
        UpdatedAt:                now.Add(-time.Hour),
    }
}

func shots(eventID string, statuses ...model.ShotStatus) []model.ShotRequest {
    out := make([]model.ShotRequest, 0, len(statuses))
    for i, st := range statuses {
        out = append(out, model.ShotRequest{
            ID:      eventID + "-shot-" + string(rune('a'+i)),
            EventID: eventID,
            Status:  st,
        })
    }
    return out
}

// apply replays a result onto a snapshot the way the repository layer
// would, so a second pass can be run against the updated state.
func apply(res Result, jobs []model.IngestJobStatus, byEvent map[string][]model.ShotRequest) {
    for _, m := range res.Mutations {
        for i, s := range byEvent[m.EventID] {
            if s.ID != m.ShotID {
                continue
            }
            byEvent[m.EventID][i].Status = m.Status
            if m.InitialCapturerID != nil && byEvent[m.EventID][i].InitialCapturerID == nil {
                byEvent[m.EventID][i].InitialCapturerID = m.InitialCapturerID
            }
            byEvent[m.EventID][i].LastStatusModifierID = strptr(m.LastStatusModifierID)
        }
    }
    for _, id := range res.ProcessedJobs {
        for i := range jobs {
            if jobs[i].JobID == id {
                jobs[i].HiveProcessedCompletion = true
            }
        }
    }
}

func TestReconcilePromotesBoundedByCount(t *testing.T) {
    jobs := []model.IngestJobStatus{completedJob("job-1", "ev-1", "p1", 3)}
    byEvent := map[string][]model.ShotRequest{
        "ev-1": shots("ev-1", model.ShotUnassigned, model.ShotAssigned, model.ShotUnassigned, model.ShotAssigned, model.ShotUnassigned),
    }

    res := Reconcile(now, jobs, byEvent, Options{})
    if res.ShotsChanged != 3 || len(res.Mutations) != 3 {
        t.Fatalf("expected exactly 3 promotions, got changed=%d mutations=%d", res.ShotsChanged, len(res.Mutations))
    }
    if len(res.ProcessedJobs) != 1 || res.ProcessedJobs[0] != "job-1" {
        t.Fatalf("job should be marked processed, got %v", res.ProcessedJobs)
    }
    // Shots promote in their existing order.
    for i, wantID := range []string{"ev-1-shot-a", "ev-1-shot-b", "ev-1-shot-c"} {
        if res.Mutations[i].ShotID != wantID {
            t.Fatalf("mutation %d targets %s, want %s", i, res.Mutations[i].ShotID, wantID)
        }
        if res.Mutations[i].Status != model.ShotCaptured {
            t.Fatalf("mutation %d should promote to Captured", i)
        }
        if res.Mutations[i].InitialCapturerID == nil || *res.Mutations[i].InitialCapturerID != "p1" {
            t.Fatalf("mutation %d should attribute capture to p1", i)
        }
        if res.Mutations[i].LastStatusModifierID != "p1" || !res.Mutations[i].LastStatusModifiedAt.Equal(now) {
            t.Fatalf("mutation %d should stamp modifier and time", i)
        }
    }
    // The snapshot passed in is never mutated.
    if byEvent["ev-1"][0].Status != model.ShotUnassigned {
        t.Fatalf("reconcile must not mutate the caller's snapshot")
    }
}

func TestReconcileIdempotentAcrossPasses(t *testing.T) {
    jobs := []model.IngestJobStatus{completedJob("job-1", "ev-1", "p1", 3)}
    byEvent := map[string][]model.ShotRequest{
        "ev-1": shots("ev-1", model.ShotUnassigned, model.ShotUnassigned, model.ShotUnassigned, model.ShotUnassigned, model.ShotUnassigned),
    }

    first := Reconcile(now, jobs, byEvent, Options{})
    apply(first, jobs, byEvent)

    second := Reconcile(now, jobs, byEvent, Options{})
    if second.ShotsChanged != 0 || len(second.Mutations) != 0 || len(second.ProcessedJobs) != 0 {
        t.Fatalf("re-running with the processed job must be a no-op, got %+v", second)
    }
}

func TestReconcileOverPromotionGuard(t *testing.T) {
    // Count exceeds eligible shots: promote only the eligible ones.
    jobs := []model.IngestJobStatus{completedJob("job-1", "ev-1", "p1", 10)}
    byEvent := map[string][]model.ShotRequest{
        "ev-1": shots("ev-1", model.ShotUnassigned, model.ShotCaptured, model.ShotBlocked, model.ShotAssigned, model.ShotCompleted),
    }

    res := Reconcile(now, jobs, byEvent, Options{})
    if res.ShotsChanged != 2 {
        t.Fatalf("only the 2 eligible shots should promote, got %d", res.ShotsChanged)
    }
    for _, m := range res.Mutations {
        if m.ShotID == "ev-1-shot-b" || m.ShotID == "ev-1-shot-e" {
            t.Fatalf("already-captured shot %s must never be touched", m.ShotID)
        }
    }
    if len(res.ProcessedJobs) != 1 {
        t.Fatalf("job with a positive count is processed even when under-promoting")
    }
}

func TestReconcileWriteOnceCaptureAttribution(t *testing.T) {
    already := shots("ev-1", model.ShotAssigned)
    already[0].InitialCapturerID = strptr("p1")

    jobs := []model.IngestJobStatus{completedJob("job-2", "ev-1", "p2", 1)}
    res := Reconcile(now, jobs, map[string][]model.ShotRequest{"ev-1": already}, Options{})

    if len(res.Mutations) != 1 {
        t.Fatalf("assigned shot should still promote, got %d mutations", len(res.Mutations))
    }
    if res.Mutations[0].InitialCapturerID != nil {
        t.Fatalf("existing capture attribution must never be overwritten, got %v", *res.Mutations[0].InitialCapturerID)
    }
    if res.Mutations[0].LastStatusModifierID != "p2" {
        t.Fatalf("last modifier should still record the reporting photographer")
    }
}

func TestReconcileSkipsIneligibleJobs(t *testing.T) {
    jobs := []model.IngestJobStatus{
        {JobID: "running", Status: model.IngestProcessing, DeterminedEventID: strptr("ev-1"), DeterminedPhotographerID: strptr("p1"), FilesMatchedToEvents: intptr(2)},
        {JobID: "no-event", Status: model.IngestCompleted, DeterminedPhotographerID: strptr("p1"), FilesMatchedToEvents: intptr(2)},
        {JobID: "no-photographer", Status: model.IngestCompleted, DeterminedEventID: strptr("ev-1"), FilesMatchedToEvents: intptr(2)},
        {JobID: "already-done", Status: model.IngestCompleted, HiveProcessedCompletion: true, DeterminedEventID: strptr("ev-1"), DeterminedPhotographerID: strptr("p1"), FilesMatchedToEvents: intptr(2)},
    }
    byEvent := map[string][]model.ShotRequest{"ev-1": shots("ev-1", model.ShotUnassigned, model.ShotUnassigned)}

    res := Reconcile(now, jobs, byEvent, Options{})
    if res.ShotsChanged != 0 || len(res.ProcessedJobs) != 0 {
        t.Fatalf("no job in this batch is eligible, got %+v", res)
    }
}

func TestReconcileZeroCountLeftUnprocessed(t *testing.T) {
    job := completedJob("job-1", "ev-1", "p1", 0)
    byEvent := map[string][]model.ShotRequest{"ev-1": shots("ev-1", model.ShotUnassigned)}

    res := Reconcile(now, []model.IngestJobStatus{job}, byEvent, Options{})
    if len(res.ProcessedJobs) != 0 {
        t.Fatalf("zero-count job must stay unprocessed so a corrected report can apply, got %v", res.ProcessedJobs)
    }

    // FilesProcessed is the fallback count when the matched count is absent.
    job.FilesMatchedToEvents = nil
    job.FilesProcessed = intptr(1)
    res = Reconcile(now, []model.IngestJobStatus{job}, byEvent, Options{})
    if res.ShotsChanged != 1 {
        t.Fatalf("files_processed fallback should promote, got %d", res.ShotsChanged)
    }
}

func TestReconcileStaleZeroCountOverride(t *testing.T) {
    job := completedJob("old", "ev-1", "p1", 0)
    job.UpdatedAt = now.Add(-48 * time.Hour)
    fresh := completedJob("fresh", "ev-1", "p1", 0)
    fresh.UpdatedAt = now.Add(-time.Minute)

    byEvent := map[string][]model.ShotRequest{"ev-1": shots("ev-1", model.ShotUnassigned)}
    res := Reconcile(now, []model.IngestJobStatus{job, fresh}, byEvent, Options{StaleAfter: 24 * time.Hour})

    if len(res.Mutations) != 0 {
        t.Fatalf("stale resolution must not promote shots")
    }
    if len(res.ProcessedJobs) != 1 || res.ProcessedJobs[0] != "old" {
        t.Fatalf("only the stale job should be closed out, got %v", res.ProcessedJobs)
    }
    if len(res.ResolvedStale) != 1 || res.ResolvedStale[0] != "old" {
        t.Fatalf("stale closure should be reported separately, got %v", res.ResolvedStale)
    }
}

func TestReconcileMultipleJobsShareEvent(t *testing.T) {
    jobs := []model.IngestJobStatus{
        completedJob("job-b", "ev-1", "p2", 2),
        completedJob("job-a", "ev-1", "p1", 2),
    }
    byEvent := map[string][]model.ShotRequest{
        "ev-1": shots("ev-1", model.ShotUnassigned, model.ShotUnassigned, model.ShotUnassigned),
    }

    res := Reconcile(now, jobs, byEvent, Options{})
    if res.ShotsChanged != 3 {
        t.Fatalf("two jobs over three shots should promote all three exactly once, got %d", res.ShotsChanged)
    }
    seen := map[string]int{}
    for _, m := range res.Mutations {
        seen[m.ShotID]++
    }
    for id, n := range seen {
        if n != 1 {
            t.Fatalf("shot %s promoted %d times within one pass", id, n)
        }
    }
    // Jobs run in ID order, so job-a attributes the first two shots.
    if *res.Mutations[0].InitialCapturerID != "p1" || *res.Mutations[2].InitialCapturerID != "p2" {
        t.Fatalf("attribution should follow deterministic job order")
    }
}

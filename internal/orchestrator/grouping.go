package orchestrator

import "github.com/songofhawk/Giga-Peach/internal/domain"

// LegacyBatchID buckets tasks that predate batch tracking.
const LegacyBatchID = "legacy"

// BatchGroup is one batch's tasks in their original order.
type BatchGroup struct {
	BatchID string                  `json:"batchId"`
	Tasks   []domain.GenerationTask `json:"tasks"`
}

// RatioGroup is one aspect ratio's tasks in their original order.
type RatioGroup struct {
	Ratio domain.AspectRatio      `json:"ratio"`
	Tasks []domain.GenerationTask `json:"tasks"`
}

// GroupByBatch partitions tasks by batch id, preserving the first-seen
// order of batches and of tasks within each batch. It is a pure function of
// its input and safe to recompute on every poll.
func GroupByBatch(tasks []domain.GenerationTask) []BatchGroup {
	byID := make(map[string]int)
	var groups []BatchGroup

	for _, t := range tasks {
		id := t.BatchID
		if id == "" {
			id = LegacyBatchID
		}
		idx, seen := byID[id]
		if !seen {
			idx = len(groups)
			byID[id] = idx
			groups = append(groups, BatchGroup{BatchID: id})
		}
		groups[idx].Tasks = append(groups[idx].Tasks, t.Clone())
	}

	return groups
}

// GroupByRatio partitions one batch's tasks by aspect ratio, preserving
// first-seen ratio order.
func GroupByRatio(tasks []domain.GenerationTask) []RatioGroup {
	byRatio := make(map[domain.AspectRatio]int)
	var groups []RatioGroup

	for _, t := range tasks {
		idx, seen := byRatio[t.AspectRatio]
		if !seen {
			idx = len(groups)
			byRatio[t.AspectRatio] = idx
			groups = append(groups, RatioGroup{Ratio: t.AspectRatio})
		}
		groups[idx].Tasks = append(groups[idx].Tasks, t.Clone())
	}

	return groups
}

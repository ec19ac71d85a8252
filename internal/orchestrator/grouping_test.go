package orchestrator

import (
	"testing"

	"github.com/songofhawk/Giga-Peach/internal/domain"
)

func task(id, batch string, ratio domain.AspectRatio) domain.GenerationTask {
	return domain.GenerationTask{ID: id, BatchID: batch, Status: domain.TaskPending, AspectRatio: ratio}
}

func TestGroupByBatchPreservesFirstSeenOrder(t *testing.T) {
	tasks := []domain.GenerationTask{
		task("b1-1:1-0", "b1", domain.RatioSquare),
		task("b2-16:9-0", "b2", domain.RatioLandscape),
		task("b1-1:1-1", "b1", domain.RatioSquare),
		task("b2-16:9-1", "b2", domain.RatioLandscape),
	}

	groups := GroupByBatch(tasks)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].BatchID != "b1" || groups[1].BatchID != "b2" {
		t.Fatalf("batch order not first-seen: %s, %s", groups[0].BatchID, groups[1].BatchID)
	}
	if groups[0].Tasks[0].ID != "b1-1:1-0" || groups[0].Tasks[1].ID != "b1-1:1-1" {
		t.Fatalf("task order within batch lost: %+v", groups[0].Tasks)
	}
}

func TestGroupByBatchBucketsLegacyTasks(t *testing.T) {
	tasks := []domain.GenerationTask{
		task("orphan", "", domain.RatioSquare),
		task("b1-1:1-0", "b1", domain.RatioSquare),
	}

	groups := GroupByBatch(tasks)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].BatchID != LegacyBatchID {
		t.Fatalf("tasks without a batch id must land in %q, got %q", LegacyBatchID, groups[0].BatchID)
	}
}

func TestGroupByBatchStableUnderUnrelatedAppend(t *testing.T) {
	tasks := []domain.GenerationTask{
		task("b1-1:1-0", "b1", domain.RatioSquare),
		task("b2-16:9-0", "b2", domain.RatioLandscape),
	}

	before := GroupByBatch(tasks)
	after := GroupByBatch(append(append([]domain.GenerationTask(nil), tasks...), task("b3-1:1-0", "b3", domain.RatioSquare)))

	if len(after) != len(before)+1 {
		t.Fatalf("expected one extra group, got %d -> %d", len(before), len(after))
	}
	for i := range before {
		if after[i].BatchID != before[i].BatchID {
			t.Fatalf("pre-existing group %d moved: %s -> %s", i, before[i].BatchID, after[i].BatchID)
		}
		if len(after[i].Tasks) != len(before[i].Tasks) {
			t.Fatalf("pre-existing group %d changed size", i)
		}
	}
}

func TestGroupByRatioPreservesFirstSeenOrder(t *testing.T) {
	tasks := []domain.GenerationTask{
		task("b1-16:9-0", "b1", domain.RatioLandscape),
		task("b1-1:1-0", "b1", domain.RatioSquare),
		task("b1-16:9-1", "b1", domain.RatioLandscape),
	}

	groups := GroupByRatio(tasks)
	if len(groups) != 2 {
		t.Fatalf("expected 2 ratio groups, got %d", len(groups))
	}
	if groups[0].Ratio != domain.RatioLandscape || groups[1].Ratio != domain.RatioSquare {
		t.Fatalf("ratio order not first-seen: %s, %s", groups[0].Ratio, groups[1].Ratio)
	}
	if len(groups[0].Tasks) != 2 {
		t.Fatalf("landscape group lost a task")
	}
}

func TestGroupingIsPure(t *testing.T) {
	tasks := []domain.GenerationTask{
		task("b1-1:1-0", "b1", domain.RatioSquare),
	}
	groups := GroupByBatch(tasks)
	groups[0].Tasks[0].Status = domain.TaskError

	if tasks[0].Status != domain.TaskPending {
		t.Fatalf("grouping leaked a mutable reference to its input")
	}
}

package domain

import "fmt"

// TaskStatus enumerates task lifecycle states.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskGenerating TaskStatus = "generating"
	TaskSuccess    TaskStatus = "success"
	TaskError      TaskStatus = "error"
)

// Terminal reports whether the status admits no further transitions.
func (s TaskStatus) Terminal() bool {
	return s == TaskSuccess || s == TaskError
}

// GenerationTask is one dispatched unit of work within a batch. Tasks live in
// the orchestrator's session list only and are never persisted; a retry
// creates new tasks under a new batch id rather than re-dispatching these.
type GenerationTask struct {
	ID          string          `json:"id"`
	BatchID     string          `json:"batchId"`
	Status      TaskStatus      `json:"status"`
	AspectRatio AspectRatio     `json:"aspectRatio"`
	Prompt      string          `json:"prompt"`
	Data        *GeneratedImage `json:"data,omitempty"`
	Error       string          `json:"error,omitempty"`
}

// TaskID builds the deterministic id for one ratio/index slot of a batch.
func TaskID(batchID string, ratio AspectRatio, index int) string {
	return fmt.Sprintf("%s-%s-%d", batchID, ratio, index)
}

// Clone returns a copy whose Data does not alias the receiver's.
func (t GenerationTask) Clone() GenerationTask {
	out := t
	if t.Data != nil {
		data := t.Data.Clone()
		out.Data = &data
	}
	return out
}

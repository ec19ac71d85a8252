package orchestrator

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/songofhawk/Giga-Peach/internal/domain"
	provider "github.com/songofhawk/Giga-Peach/internal/providers/image"
)

const genericFailureMessage = "image generation failed"

// Params describes the shape of one submission.
type Params struct {
	AspectRatios []domain.AspectRatio `json:"aspectRatios"`
	Count        int                  `json:"count"`
	Resolution   domain.Resolution    `json:"resolution"`
}

// SubmitRequest carries one user submission into the orchestrator.
type SubmitRequest struct {
	Prompt          string
	ReferenceImages []string
	Params          Params
	Preset          domain.StylePreset
}

// Orchestrator expands a submission into independent generation tasks,
// dispatches them concurrently and reconciles completions into the session
// task list and the gallery store. All shared state is mutated copy-on-write
// under one mutex so completions landing together cannot clobber each other.
type Orchestrator struct {
	store    domain.GalleryStore
	settings domain.SettingsStore
	gen      provider.Generator
	logger   zerolog.Logger
	now      func() time.Time

	mu           sync.Mutex
	tasks        []domain.GenerationTask
	gallery      []domain.GeneratedImage
	viewing      *domain.GeneratedImage
	stagedPrompt string
	stagedRefs   []string
	lastBatchMs  int64

	wg sync.WaitGroup
}

// Option customizes orchestrator construction.
type Option func(*Orchestrator)

// WithClock overrides the time source. Tests use it to pin batch ids and
// record timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// New wires an orchestrator over its collaborators. The store must be
// initialized before the first call.
func New(store domain.GalleryStore, settings domain.SettingsStore, gen provider.Generator, logger zerolog.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		store:    store,
		settings: settings,
		gen:      gen,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// SubmitBatch validates the submission, resolves the style preset and
// dispatches one task per ratio/index slot. It returns the created tasks in
// dispatch order; a blank submission returns nothing without error.
func (o *Orchestrator) SubmitBatch(ctx context.Context, req SubmitRequest) ([]domain.GenerationTask, error) {
	prompt := strings.TrimSpace(req.Prompt)
	refs := append([]string(nil), req.ReferenceImages...)
	styleID := domain.PresetNone

	if req.Preset.ID != "" && !req.Preset.IsSentinel() {
		styleID = req.Preset.ID
		if desc := strings.TrimSpace(req.Preset.Description); desc != "" {
			if prompt != "" {
				prompt = desc + ". " + prompt
			} else {
				prompt = desc
			}
		}
		refs = append(refs, req.Preset.ReferenceImages...)
	}

	created, err := o.dispatchBatch(ctx, prompt, refs, req.Params, styleID)
	if err != nil || created == nil {
		return created, err
	}

	// A fresh submission consumes the staging area; retries leave it alone.
	o.mu.Lock()
	o.stagedPrompt = ""
	o.stagedRefs = nil
	o.mu.Unlock()
	return created, nil
}

// RetryBatch re-submits a task group using the prompt and references that
// were already resolved for the original batch, so a style prefix is never
// applied twice. The originals are left untouched; new tasks get a new
// batch id.
func (o *Orchestrator) RetryBatch(ctx context.Context, original []domain.GenerationTask) ([]domain.GenerationTask, error) {
	if len(original) == 0 {
		return nil, nil
	}

	prompt := original[0].Prompt
	var refs []string
	styleID := domain.PresetNone
	resolution := domain.ResolutionMedium
	for _, t := range original {
		if t.Data != nil {
			prompt = t.Data.Prompt
			refs = append([]string(nil), t.Data.ReferenceImages...)
			styleID = t.Data.StyleID
			resolution = t.Data.Resolution
			break
		}
	}

	var ratios []domain.AspectRatio
	seen := make(map[domain.AspectRatio]bool)
	for _, t := range original {
		if !seen[t.AspectRatio] {
			seen[t.AspectRatio] = true
			ratios = append(ratios, t.AspectRatio)
		}
	}
	count := len(original) / len(ratios)
	if count < 1 {
		count = 1
	}

	return o.dispatchBatch(ctx, prompt, refs, Params{AspectRatios: ratios, Count: count, Resolution: resolution}, styleID)
}

// dispatchBatch expands the resolved submission into tasks and launches one
// goroutine per task. Every task is flipped to generating synchronously
// before its external call is issued.
func (o *Orchestrator) dispatchBatch(ctx context.Context, prompt string, refs []string, params Params, styleID string) ([]domain.GenerationTask, error) {
	credential, err := o.settings.Get(ctx, domain.SettingAPIKey)
	if err != nil {
		return nil, fmt.Errorf("read credential: %w", err)
	}
	if strings.TrimSpace(credential) == "" {
		return nil, domain.ErrMissingCredential
	}
	if strings.TrimSpace(prompt) == "" && len(refs) == 0 {
		return nil, nil
	}
	if len(params.AspectRatios) == 0 {
		return nil, domain.ErrEmptySelection
	}
	count := params.Count
	if count < 1 {
		count = 1
	}
	resolution := params.Resolution
	if resolution == "" {
		resolution = domain.ResolutionMedium
	}

	endpoint, err := o.settings.Get(ctx, domain.SettingEndpoint)
	if err != nil {
		o.logger.Warn().Err(err).Msg("endpoint override unavailable, using default")
		endpoint = ""
	}

	batchID := o.nextBatchID()
	created := make([]domain.GenerationTask, 0, len(params.AspectRatios)*count)
	for _, ratio := range params.AspectRatios {
		for i := 0; i < count; i++ {
			created = append(created, domain.GenerationTask{
				ID:          domain.TaskID(batchID, ratio, i),
				BatchID:     batchID,
				Status:      domain.TaskPending,
				AspectRatio: ratio,
				Prompt:      prompt,
			})
		}
	}

	o.mu.Lock()
	next := make([]domain.GenerationTask, 0, len(o.tasks)+len(created))
	next = append(next, o.tasks...)
	next = append(next, created...)
	o.tasks = next
	o.mu.Unlock()

	for _, t := range created {
		o.transition(t.ID, domain.TaskGenerating)
	}

	o.logger.Info().
		Str("batch_id", batchID).
		Int("tasks", len(created)).
		Str("style_id", styleID).
		Msg("batch dispatched")

	// Dispatch outlives the submitting request.
	dctx := context.WithoutCancel(ctx)
	for _, t := range created {
		t := t
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			o.runTask(dctx, t, refs, resolution, styleID, credential, endpoint)
		}()
	}

	snapshot := make([]domain.GenerationTask, len(created))
	for i, t := range created {
		t.Status = domain.TaskGenerating
		snapshot[i] = t
	}
	return snapshot, nil
}

// runTask performs one external call and applies its outcome. A failure is
// local to this task; siblings keep running.
func (o *Orchestrator) runTask(ctx context.Context, t domain.GenerationTask, refs []string, resolution domain.Resolution, styleID, credential, endpoint string) {
	url, err := o.gen.Generate(ctx, provider.Request{
		Prompt:          t.Prompt,
		ReferenceImages: refs,
		AspectRatio:     t.AspectRatio,
		Resolution:      resolution,
		Credential:      credential,
		Endpoint:        endpoint,
	})
	if err != nil {
		msg := strings.TrimSpace(err.Error())
		if msg == "" {
			msg = genericFailureMessage
		}
		o.failTask(t.ID, msg)
		return
	}

	img := domain.GeneratedImage{
		ID:              t.ID,
		BatchID:         t.BatchID,
		URL:             url,
		Prompt:          t.Prompt,
		AspectRatio:     t.AspectRatio,
		Resolution:      resolution,
		Timestamp:       o.now(),
		StyleID:         styleID,
		ReferenceImages: append([]string(nil), refs...),
	}

	// Write-through before the task flips to success. If the store rejects,
	// the task still reports success with the data attached; the record is
	// just not in the gallery yet.
	persisted := true
	if err := o.store.UpsertImage(ctx, img); err != nil {
		persisted = false
		o.logger.Warn().Err(err).Str("task_id", t.ID).Msg("write-through failed, keeping unpersisted success")
	}
	o.completeTask(img, persisted)
}

// transition moves a live task to the given status. Terminal tasks and
// tasks deleted from the session list are left alone.
func (o *Orchestrator) transition(id string, status domain.TaskStatus) {
	o.mu.Lock()
	defer o.mu.Unlock()
	idx := o.indexOfLocked(id)
	if idx < 0 || o.tasks[idx].Status.Terminal() {
		return
	}
	next := cloneTasks(o.tasks)
	next[idx].Status = status
	o.tasks = next
}

func (o *Orchestrator) completeTask(img domain.GeneratedImage, persisted bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	idx := o.indexOfLocked(img.ID)
	if idx < 0 || o.tasks[idx].Status.Terminal() {
		// The task was deleted while the call was in flight; do not
		// resurrect it.
		return
	}
	next := cloneTasks(o.tasks)
	data := img.Clone()
	next[idx].Status = domain.TaskSuccess
	next[idx].Data = &data
	next[idx].Error = ""
	o.tasks = next

	if persisted {
		gallery := cloneImages(o.gallery)
		o.gallery = append(gallery, img.Clone())
	}
}

func (o *Orchestrator) failTask(id, msg string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	idx := o.indexOfLocked(id)
	if idx < 0 || o.tasks[idx].Status.Terminal() {
		return
	}
	next := cloneTasks(o.tasks)
	next[idx].Status = domain.TaskError
	next[idx].Error = msg
	o.tasks = next
}

// Tasks returns a snapshot of the session task list in creation order.
func (o *Orchestrator) Tasks() []domain.GenerationTask {
	o.mu.Lock()
	defer o.mu.Unlock()
	return cloneTasks(o.tasks)
}

// DeleteTask removes a task from the session list only; the store and any
// in-flight external call are untouched.
func (o *Orchestrator) DeleteTask(id string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	next := make([]domain.GenerationTask, 0, len(o.tasks))
	for _, t := range o.tasks {
		if t.ID != id {
			next = append(next, t.Clone())
		}
	}
	o.tasks = next
}

// RefreshGallery reloads the gallery cache from the store.
func (o *Orchestrator) RefreshGallery(ctx context.Context) error {
	images, err := o.store.ListImages(ctx)
	if err != nil {
		return err
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.gallery = cloneImages(images)
	return nil
}

// Gallery returns a snapshot of the cached gallery in store order.
func (o *Orchestrator) Gallery() []domain.GeneratedImage {
	o.mu.Lock()
	defer o.mu.Unlock()
	return cloneImages(o.gallery)
}

// ToggleFavorite flips the flag, persists the whole record and propagates
// the updated copy into every list that may hold one.
func (o *Orchestrator) ToggleFavorite(ctx context.Context, img domain.GeneratedImage) (domain.GeneratedImage, error) {
	flipped := img.Clone()
	flipped.IsFavorite = !img.IsFavorite
	if err := o.store.UpsertImage(ctx, flipped); err != nil {
		return domain.GeneratedImage{}, err
	}
	o.propagate(flipped)
	return flipped.Clone(), nil
}

// propagate fans one updated record out to the task list, the gallery cache
// and the current selection so no stale copy stays reachable.
func (o *Orchestrator) propagate(img domain.GeneratedImage) {
	o.mu.Lock()
	defer o.mu.Unlock()

	nextTasks := cloneTasks(o.tasks)
	for i := range nextTasks {
		if nextTasks[i].Data != nil && nextTasks[i].Data.ID == img.ID {
			data := img.Clone()
			nextTasks[i].Data = &data
		}
	}
	o.tasks = nextTasks

	nextGallery := cloneImages(o.gallery)
	found := false
	for i := range nextGallery {
		if nextGallery[i].ID == img.ID {
			nextGallery[i] = img.Clone()
			found = true
		}
	}
	if !found {
		// A record whose original write-through failed becomes durable on
		// its first successful re-save.
		nextGallery = append(nextGallery, img.Clone())
	}
	o.gallery = nextGallery

	if o.viewing != nil && o.viewing.ID == img.ID {
		updated := img.Clone()
		o.viewing = &updated
	}
}

// DeleteGalleryImage removes the record from the store and from every place
// it is referenced: gallery cache, session tasks and the current selection.
func (o *Orchestrator) DeleteGalleryImage(ctx context.Context, id string) error {
	if err := o.store.DeleteImage(ctx, id); err != nil {
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	nextGallery := make([]domain.GeneratedImage, 0, len(o.gallery))
	for _, img := range o.gallery {
		if img.ID != id {
			nextGallery = append(nextGallery, img.Clone())
		}
	}
	o.gallery = nextGallery

	nextTasks := make([]domain.GenerationTask, 0, len(o.tasks))
	for _, t := range o.tasks {
		if t.Data != nil && t.Data.ID == id {
			continue
		}
		nextTasks = append(nextTasks, t.Clone())
	}
	o.tasks = nextTasks

	if o.viewing != nil && o.viewing.ID == id {
		o.viewing = nil
	}
	return nil
}

// Select marks the gallery record currently open in a detail view.
func (o *Orchestrator) Select(id string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, img := range o.gallery {
		if img.ID == id {
			selected := img.Clone()
			o.viewing = &selected
			return nil
		}
	}
	return domain.ErrNotFound
}

// Selected returns the record open in the detail view, if any.
func (o *Orchestrator) Selected() (domain.GeneratedImage, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.viewing == nil {
		return domain.GeneratedImage{}, false
	}
	return o.viewing.Clone(), true
}

// SetStaging records the user's working prompt and reference images. A
// successful non-retry submission clears them.
func (o *Orchestrator) SetStaging(prompt string, refs []string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.stagedPrompt = prompt
	o.stagedRefs = append([]string(nil), refs...)
}

// Staging returns the current working prompt and reference images.
func (o *Orchestrator) Staging() (string, []string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.stagedPrompt, append([]string(nil), o.stagedRefs...)
}

// Wait blocks until every dispatched task has completed. The process uses
// it to drain in-flight generations at shutdown; tests use it to observe
// terminal states.
func (o *Orchestrator) Wait() {
	o.wg.Wait()
}

// nextBatchID derives a batch id from the submission instant, nudged
// forward when two submissions land in the same millisecond so ids stay
// monotonically distinct.
func (o *Orchestrator) nextBatchID() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	ms := o.now().UnixMilli()
	if ms <= o.lastBatchMs {
		ms = o.lastBatchMs + 1
	}
	o.lastBatchMs = ms
	return strconv.FormatInt(ms, 10)
}

func (o *Orchestrator) indexOfLocked(id string) int {
	for i, t := range o.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func cloneTasks(tasks []domain.GenerationTask) []domain.GenerationTask {
	out := make([]domain.GenerationTask, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}

func cloneImages(images []domain.GeneratedImage) []domain.GeneratedImage {
	out := make([]domain.GeneratedImage, len(images))
	for i, img := range images {
		out[i] = img.Clone()
	}
	return out
}

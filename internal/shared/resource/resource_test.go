package resource_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/platform/database"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/platform/database/databasetest"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/shared/resource"
)

type widget struct {
	resource.Model
	Name string  `json:"name" validate:"required,max=8"`
	Size int     `json:"size" validate:"min=0"`
	Note *string `json:"note"`
}

type widgetPatch struct {
	Name resource.Optional[string]  `json:"name"`
	Size resource.Optional[int]     `json:"size"`
	Note resource.Optional[*string] `json:"note"`
}

func (p widgetPatch) Apply(w *widget) {
	p.Name.ApplyTo(&w.Name)
	p.Size.ApplyTo(&w.Size)
	p.Note.ApplyTo(&w.Note)
}

type recordingPublisher struct {
	mu      sync.Mutex
	changes []resource.Change
}

func (p *recordingPublisher) PublishChange(_ context.Context, change resource.Change) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.changes = append(p.changes, change)
	return nil
}

func (p *recordingPublisher) actions() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.changes))
	for _, c := range p.changes {
		out = append(out, c.Action)
	}
	return out
}

// steppingClock returns start, start+1s, start+2s, ...
type steppingClock struct {
	mu   sync.Mutex
	next time.Time
}

func (c *steppingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.next
	c.next = c.next.Add(time.Second)
	return now
}

func newWidgetService(t *testing.T) (*resource.Service[widget, *widget], *recordingPublisher, *steppingClock) {
	t.Helper()
	db := databasetest.Open(t, &widget{})
	pub := &recordingPublisher{}
	clock := &steppingClock{next: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	svc := resource.NewService[widget, *widget](
		"widget",
		resource.NewGormStore[widget](db),
		database.NewTransactor(db),
		resource.WithPublisher(pub),
		resource.WithClock(clock.Now),
	)
	return svc, pub, clock
}

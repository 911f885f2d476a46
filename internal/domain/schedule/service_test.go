package schedule

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
)

// -- Mock Repository --

type mockWindowRepo struct {
	windows map[uuid.UUID]*WeeklyAvailability
}

func newMockWindowRepo() *mockWindowRepo {
	return &mockWindowRepo{windows: make(map[uuid.UUID]*WeeklyAvailability)}
}

func (m *mockWindowRepo) Create(_ context.Context, w *WeeklyAvailability) error {
	w.ID = uuid.New()
	cp := *w
	m.windows[w.ID] = &cp
	return nil
}

func (m *mockWindowRepo) GetByID(_ context.Context, id uuid.UUID) (*WeeklyAvailability, error) {
	w, ok := m.windows[id]
	if !ok {
		return nil, ErrWindowNotFound
	}
	cp := *w
	return &cp, nil
}

func (m *mockWindowRepo) Update(_ context.Context, w *WeeklyAvailability) error {
	if _, ok := m.windows[w.ID]; !ok {
		return ErrWindowNotFound
	}
	cp := *w
	m.windows[w.ID] = &cp
	return nil
}

func (m *mockWindowRepo) ListByProfessional(_ context.Context, professionalID uuid.UUID) ([]*WeeklyAvailability, error) {
	var result []*WeeklyAvailability
	for _, w := range m.windows {
		if w.ProfessionalID == professionalID {
			cp := *w
			result = append(result, &cp)
		}
	}
	sortWindows(result)
	return result, nil
}

func (m *mockWindowRepo) ListActiveWindows(_ context.Context, professionalID uuid.UUID, weekday time.Weekday) ([]*WeeklyAvailability, error) {
	var result []*WeeklyAvailability
	for _, w := range m.windows {
		if w.ProfessionalID == professionalID && w.Weekday == weekday && w.Active {
			cp := *w
			result = append(result, &cp)
		}
	}
	sortWindows(result)
	return result, nil
}

func sortWindows(ws []*WeeklyAvailability) {
	sort.Slice(ws, func(i, j int) bool {
		if ws[i].Weekday != ws[j].Weekday {
			return ws[i].Weekday < ws[j].Weekday
		}
		return ws[i].StartMinute < ws[j].StartMinute
	})
}

// -- Tests --

func TestCreateWindow(t *testing.T) {
	svc := NewService(newMockWindowRepo())
	ctx := context.Background()
	profID := uuid.New()

	w := &WeeklyAvailability{
		ProfessionalID: profID,
		Weekday:        time.Monday,
		StartMinute:    9 * 60,
		EndMinute:      13 * 60,
	}
	if err := svc.CreateWindow(ctx, w); err != nil {
		t.Fatalf("CreateWindow: %v", err)
	}
	if !w.Active {
		t.Error("expected created window to be active")
	}
}

func TestCreateWindow_InvalidBounds(t *testing.T) {
	svc := NewService(newMockWindowRepo())
	ctx := context.Background()
	profID := uuid.New()

	cases := []struct {
		name       string
		start, end int
	}{
		{"start after end", 600, 540},
		{"zero length", 600, 600},
		{"negative start", -10, 60},
		{"end past midnight", 23 * 60, 25 * 60},
	}
	for _, tc := range cases {
		w := &WeeklyAvailability{ProfessionalID: profID, Weekday: time.Monday, StartMinute: tc.start, EndMinute: tc.end}
		if err := svc.CreateWindow(ctx, w); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}

func TestCreateWindow_OverlapSameDay(t *testing.T) {
	svc := NewService(newMockWindowRepo())
	ctx := context.Background()
	profID := uuid.New()

	first := &WeeklyAvailability{ProfessionalID: profID, Weekday: time.Monday, StartMinute: 540, EndMinute: 780}
	if err := svc.CreateWindow(ctx, first); err != nil {
		t.Fatalf("CreateWindow: %v", err)
	}

	overlapping := &WeeklyAvailability{ProfessionalID: profID, Weekday: time.Monday, StartMinute: 720, EndMinute: 900}
	if err := svc.CreateWindow(ctx, overlapping); err != ErrWindowOverlap {
		t.Errorf("expected ErrWindowOverlap, got %v", err)
	}

	// Touching boundary is allowed: [540,780) then [780,1020).
	adjacent := &WeeklyAvailability{ProfessionalID: profID, Weekday: time.Monday, StartMinute: 780, EndMinute: 1020}
	if err := svc.CreateWindow(ctx, adjacent); err != nil {
		t.Errorf("adjacent window should not conflict: %v", err)
	}

	// Same range on another weekday is fine.
	otherDay := &WeeklyAvailability{ProfessionalID: profID, Weekday: time.Tuesday, StartMinute: 540, EndMinute: 780}
	if err := svc.CreateWindow(ctx, otherDay); err != nil {
		t.Errorf("other weekday should not conflict: %v", err)
	}
}

func TestCreateWindow_OverlapOtherProfessionalIgnored(t *testing.T) {
	svc := NewService(newMockWindowRepo())
	ctx := context.Background()

	a := &WeeklyAvailability{ProfessionalID: uuid.New(), Weekday: time.Monday, StartMinute: 540, EndMinute: 780}
	b := &WeeklyAvailability{ProfessionalID: uuid.New(), Weekday: time.Monday, StartMinute: 540, EndMinute: 780}
	if err := svc.CreateWindow(ctx, a); err != nil {
		t.Fatalf("CreateWindow: %v", err)
	}
	if err := svc.CreateWindow(ctx, b); err != nil {
		t.Errorf("windows of different professionals must not conflict: %v", err)
	}
}

func TestUpdateWindow_KeepsProfessional(t *testing.T) {
	repo := newMockWindowRepo()
	svc := NewService(repo)
	ctx := context.Background()
	profID := uuid.New()

	w := &WeeklyAvailability{ProfessionalID: profID, Weekday: time.Monday, StartMinute: 540, EndMinute: 780}
	if err := svc.CreateWindow(ctx, w); err != nil {
		t.Fatalf("CreateWindow: %v", err)
	}

	upd := &WeeklyAvailability{ID: w.ID, ProfessionalID: uuid.New(), Weekday: time.Monday, StartMinute: 600, EndMinute: 840, Active: true}
	if err := svc.UpdateWindow(ctx, upd); err != nil {
		t.Fatalf("UpdateWindow: %v", err)
	}
	stored, _ := repo.GetByID(ctx, w.ID)
	if stored.ProfessionalID != profID {
		t.Error("update must not move a window to another professional")
	}
	if stored.StartMinute != 600 || stored.EndMinute != 840 {
		t.Errorf("expected updated bounds, got [%d,%d)", stored.StartMinute, stored.EndMinute)
	}
}

func TestUpdateWindow_SelfOverlapIgnored(t *testing.T) {
	svc := NewService(newMockWindowRepo())
	ctx := context.Background()
	profID := uuid.New()

	w := &WeeklyAvailability{ProfessionalID: profID, Weekday: time.Monday, StartMinute: 540, EndMinute: 780}
	if err := svc.CreateWindow(ctx, w); err != nil {
		t.Fatalf("CreateWindow: %v", err)
	}

	// Shrinking a window overlaps its own stored copy; that must pass.
	upd := &WeeklyAvailability{ID: w.ID, Weekday: time.Monday, StartMinute: 540, EndMinute: 720, Active: true}
	if err := svc.UpdateWindow(ctx, upd); err != nil {
		t.Errorf("updating a window over its own range must not conflict: %v", err)
	}
}

func TestDeactivateWindow(t *testing.T) {
	repo := newMockWindowRepo()
	svc := NewService(repo)
	ctx := context.Background()
	profID := uuid.New()

	w := &WeeklyAvailability{ProfessionalID: profID, Weekday: time.Friday, StartMinute: 540, EndMinute: 780}
	if err := svc.CreateWindow(ctx, w); err != nil {
		t.Fatalf("CreateWindow: %v", err)
	}
	if err := svc.DeactivateWindow(ctx, w.ID); err != nil {
		t.Fatalf("DeactivateWindow: %v", err)
	}

	active, err := repo.ListActiveWindows(ctx, profID, time.Friday)
	if err != nil {
		t.Fatalf("ListActiveWindows: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("expected no active windows after deactivation, got %d", len(active))
	}
}

func TestActiveWindowsOn(t *testing.T) {
	svc := NewService(newMockWindowRepo())
	ctx := context.Background()
	profID := uuid.New()

	morning := &WeeklyAvailability{ProfessionalID: profID, Weekday: time.Monday, StartMinute: 540, EndMinute: 780}
	evening := &WeeklyAvailability{ProfessionalID: profID, Weekday: time.Monday, StartMinute: 960, EndMinute: 1200}
	if err := svc.CreateWindow(ctx, morning); err != nil {
		t.Fatalf("CreateWindow: %v", err)
	}
	if err := svc.CreateWindow(ctx, evening); err != nil {
		t.Fatalf("CreateWindow: %v", err)
	}

	// 2026-01-05 is a Monday.
	day := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	windows, err := svc.ActiveWindowsOn(ctx, profID, day)
	if err != nil {
		t.Fatalf("ActiveWindowsOn: %v", err)
	}
	if len(windows) != 2 {
		t.Fatalf("expected 2 windows, got %d", len(windows))
	}
	if windows[0].StartMinute != 540 || windows[1].StartMinute != 960 {
		t.Error("expected windows ordered by start minute")
	}
}

func TestWindowOn_Materialization(t *testing.T) {
	w := &WeeklyAvailability{Weekday: time.Monday, StartMinute: 9 * 60, EndMinute: 13 * 60}
	day := time.Date(2026, 1, 5, 15, 30, 0, 0, time.UTC)

	iv := w.On(day)
	wantStart := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2026, 1, 5, 13, 0, 0, 0, time.UTC)
	if !iv.Start.Equal(wantStart) || !iv.End.Equal(wantEnd) {
		t.Errorf("expected [%v,%v), got [%v,%v)", wantStart, wantEnd, iv.Start, iv.End)
	}
}

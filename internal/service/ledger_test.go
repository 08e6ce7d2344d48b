package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbonduro/drinklog/internal/domain"
	"github.com/vbonduro/drinklog/internal/estimate"
	"github.com/vbonduro/drinklog/internal/kv"
	"github.com/vbonduro/drinklog/internal/store"
)

var testNow = time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)

func ptr(v float64) *float64 { return &v }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubEntries is an entryRepository whose Save can be made to fail.
type stubEntries struct {
	saved   []domain.Entry
	saveErr error
	saves   int
}

func (s *stubEntries) Load(context.Context) ([]domain.Entry, error) {
	return append([]domain.Entry(nil), s.saved...), nil
}

func (s *stubEntries) Save(_ context.Context, entries []domain.Entry) error {
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = append([]domain.Entry(nil), entries...)
	return nil
}

type stubProfiles struct {
	profile domain.Profile
	saveErr error
}

func (s *stubProfiles) Load(context.Context) (domain.Profile, error) { return s.profile, nil }

func (s *stubProfiles) Save(_ context.Context, p domain.Profile) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.profile = p
	return nil
}

func newTestLedger(t *testing.T) (*Ledger, *stubEntries, *stubProfiles) {
	t.Helper()
	entries := &stubEntries{}
	profiles := &stubProfiles{profile: domain.DefaultProfile()}
	l, err := NewLedger(context.Background(), entries, profiles, discardLogger(),
		WithClock(func() time.Time { return testNow }),
		WithLocation(time.UTC),
	)
	require.NoError(t, err)
	return l, entries, profiles
}

func beer() domain.Entry {
	return domain.Entry{
		Category:          domain.CategoryAlcohol,
		Name:              "Beer",
		Amount:            500,
		Unit:              "ml",
		AlcoholPercentage: ptr(5),
	}
}

func espresso() domain.Entry {
	return domain.Entry{
		Category:   domain.CategoryCaffeine,
		Name:       "Espresso",
		Amount:     30,
		Unit:       "ml",
		CaffeineMg: ptr(80),
	}
}

func TestAddAssignsIDAndTimestamp(t *testing.T) {
	l, stored, _ := newTestLedger(t)

	e, err := l.Add(context.Background(), beer())
	require.NoError(t, err)
	assert.NotEmpty(t, e.ID)
	assert.True(t, testNow.Equal(e.Timestamp))

	require.Len(t, stored.saved, 1)
	assert.Equal(t, e.ID, stored.saved[0].ID)
}

func TestAddKeepsCallerTimestamp(t *testing.T) {
	l, _, _ := newTestLedger(t)
	at := testNow.Add(-45 * time.Minute)

	in := beer()
	in.Timestamp = at
	e, err := l.Add(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, at.Equal(e.Timestamp))
}

func TestAddRejectsInvalidEntry(t *testing.T) {
	l, stored, _ := newTestLedger(t)

	in := beer()
	in.Amount = 3000
	_, err := l.Add(context.Background(), in)
	require.ErrorIs(t, err, domain.ErrInvalidEntry)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "amount", verr.Field)
	assert.Equal(t, 0, stored.saves)
	assert.Empty(t, l.Query("", nil))
}

func TestAddRejectsDuplicateID(t *testing.T) {
	l, _, _ := newTestLedger(t)
	ctx := context.Background()

	in := beer()
	in.ID = "fixed"
	_, err := l.Add(ctx, in)
	require.NoError(t, err)

	_, err = l.Add(ctx, in)
	assert.ErrorIs(t, err, domain.ErrDuplicateEntry)
	assert.Len(t, l.Query(domain.CategoryAlcohol, nil), 1)
}

func TestAddRollsBackOnPersistFailure(t *testing.T) {
	l, stored, _ := newTestLedger(t)
	ctx := context.Background()

	_, err := l.Add(ctx, beer())
	require.NoError(t, err)

	boom := errors.New("disk full")
	stored.saveErr = boom
	_, err = l.Add(ctx, espresso())
	require.ErrorIs(t, err, domain.ErrPersist)
	assert.ErrorIs(t, err, boom)

	assert.Len(t, l.Query("", nil), 1)
	assert.Empty(t, l.Query(domain.CategoryCaffeine, nil))
}

func TestRemove(t *testing.T) {
	l, stored, _ := newTestLedger(t)
	ctx := context.Background()

	a, err := l.Add(ctx, beer())
	require.NoError(t, err)
	b, err := l.Add(ctx, espresso())
	require.NoError(t, err)

	require.NoError(t, l.Remove(ctx, a.ID))
	remaining := l.Query("", nil)
	require.Len(t, remaining, 1)
	assert.Equal(t, b.ID, remaining[0].ID)
	assert.Len(t, stored.saved, 1)

	assert.ErrorIs(t, l.Remove(ctx, a.ID), domain.ErrNotFound)
}

func TestRemoveAllOnlyTouchesCategory(t *testing.T) {
	l, _, _ := newTestLedger(t)
	ctx := context.Background()

	for range 3 {
		_, err := l.Add(ctx, beer())
		require.NoError(t, err)
	}
	_, err := l.Add(ctx, espresso())
	require.NoError(t, err)

	n, err := l.RemoveAll(ctx, domain.CategoryAlcohol)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Empty(t, l.Query(domain.CategoryAlcohol, nil))
	assert.Len(t, l.Query(domain.CategoryCaffeine, nil), 1)

	_, err = l.RemoveAll(ctx, domain.Category("water"))
	assert.ErrorIs(t, err, domain.ErrInvalidEntry)
}

func TestUpdateTimestamp(t *testing.T) {
	l, stored, _ := newTestLedger(t)
	ctx := context.Background()

	e, err := l.Add(ctx, espresso())
	require.NoError(t, err)

	moved := testNow.Add(-3 * time.Hour)
	got, err := l.UpdateTimestamp(ctx, e.ID, moved)
	require.NoError(t, err)
	assert.True(t, moved.Equal(got.Timestamp))
	assert.True(t, moved.Equal(stored.saved[0].Timestamp))

	_, err = l.UpdateTimestamp(ctx, "missing", moved)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = l.UpdateTimestamp(ctx, e.ID, time.Time{})
	assert.ErrorIs(t, err, domain.ErrInvalidEntry)
}

func TestUpdateTimestampRollsBack(t *testing.T) {
	l, stored, _ := newTestLedger(t)
	ctx := context.Background()

	e, err := l.Add(ctx, espresso())
	require.NoError(t, err)

	stored.saveErr = errors.New("read-only")
	_, err = l.UpdateTimestamp(ctx, e.ID, testNow.Add(-time.Hour))
	require.ErrorIs(t, err, domain.ErrPersist)

	got, err := l.Entry(e.ID)
	require.NoError(t, err)
	assert.True(t, testNow.Equal(got.Timestamp))
}

func TestQueryWithRangeIsInclusive(t *testing.T) {
	l, _, _ := newTestLedger(t)
	ctx := context.Background()

	for _, offset := range []time.Duration{-3 * time.Hour, -2 * time.Hour, -time.Hour} {
		in := espresso()
		in.Timestamp = testNow.Add(offset)
		_, err := l.Add(ctx, in)
		require.NoError(t, err)
	}

	within := &domain.TimeRange{From: testNow.Add(-2 * time.Hour), To: testNow.Add(-time.Hour)}
	got := l.Query(domain.CategoryCaffeine, within)
	require.Len(t, got, 2)
	assert.True(t, got[0].Timestamp.Before(got[1].Timestamp))
}

func TestTodayUsesLedgerLocation(t *testing.T) {
	entries := &stubEntries{}
	profiles := &stubProfiles{profile: domain.DefaultProfile()}
	loc := time.FixedZone("UTC+2", 2*60*60)
	l, err := NewLedger(context.Background(), entries, profiles, discardLogger(),
		WithClock(func() time.Time { return testNow }),
		WithLocation(loc),
	)
	require.NoError(t, err)

	in := espresso()
	in.Timestamp = time.Date(2026, 3, 9, 22, 30, 0, 0, time.UTC)
	_, err = l.Add(context.Background(), in)
	require.NoError(t, err)

	assert.Len(t, l.Today(domain.CategoryCaffeine), 1)
	assert.Empty(t, l.Today(domain.CategoryAlcohol))
}

func TestUpdateProfile(t *testing.T) {
	l, _, profiles := newTestLedger(t)
	ctx := context.Background()

	p := domain.Profile{Age: 35, Sex: domain.SexFemale, WeightKg: 58, HeightCm: 162}
	require.NoError(t, l.UpdateProfile(ctx, p))
	assert.Equal(t, p, l.Profile())
	assert.Equal(t, p, profiles.profile)

	bad := p
	bad.Age = 12
	err := l.UpdateProfile(ctx, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidProfile)
	assert.Equal(t, p, l.Profile())

	profiles.saveErr = errors.New("offline")
	err = l.UpdateProfile(ctx, domain.DefaultProfile())
	assert.ErrorIs(t, err, domain.ErrPersist)
	assert.Equal(t, p, l.Profile())
}

func TestLedgerReloadsFromStore(t *testing.T) {
	mem := kv.NewMemory()
	ctx := context.Background()
	clock := WithClock(func() time.Time { return testNow })

	first, err := NewLedger(ctx, store.NewEntryStore(mem), store.NewProfileStore(mem), discardLogger(), clock)
	require.NoError(t, err)
	e, err := first.Add(ctx, beer())
	require.NoError(t, err)
	p := domain.Profile{Age: 50, Sex: domain.SexMale, WeightKg: 90, HeightCm: 185}
	require.NoError(t, first.UpdateProfile(ctx, p))

	second, err := NewLedger(ctx, store.NewEntryStore(mem), store.NewProfileStore(mem), discardLogger(), clock)
	require.NoError(t, err)
	got, err := second.Entry(e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Beer", got.Name)
	assert.Equal(t, p, second.Profile())
}

func TestAlcoholStatus(t *testing.T) {
	l, _, _ := newTestLedger(t)
	ctx := context.Background()

	st := l.AlcoholStatus()
	assert.Equal(t, 0.0, st.BAC)
	assert.Equal(t, estimate.BACSober, st.Level)
	assert.Nil(t, st.SoberAt)

	_, err := l.Add(ctx, beer())
	require.NoError(t, err)
	_, err = l.Add(ctx, beer())
	require.NoError(t, err)

	st = l.AlcoholStatus()
	assert.InDelta(t, l.BAC(), st.BAC, 1e-12)
	assert.Equal(t, 2, st.Drinks)
	assert.InDelta(t, 2*19.725/14, st.StandardDrinks, 1e-9)
	assert.Equal(t, estimate.LimitElevated, st.LimitLevel)
	require.NotNil(t, st.SoberAt)
	assert.True(t, st.SoberAt.After(testNow))
}

func TestCaffeineStatus(t *testing.T) {
	l, _, _ := newTestLedger(t)

	_, err := l.Add(context.Background(), espresso())
	require.NoError(t, err)

	st := l.CaffeineStatus()
	assert.Equal(t, 80.0, st.LevelMg)
	assert.Equal(t, 80.0, st.TotalMg)
	assert.Equal(t, 1, st.Drinks)
	assert.Equal(t, estimate.LimitLow, st.LimitLevel)
	assert.InDelta(t, estimate.CaffeineHalfLife(25), st.HalfLifeHours, 1e-12)
	require.NotNil(t, st.CleanAt)

	clean, ok := l.CleanTime()
	require.True(t, ok)
	assert.True(t, clean.Equal(*st.CleanAt))
	assert.Equal(t, 80.0, l.Caffeine())
}

func TestLedgerConcurrentAdds(t *testing.T) {
	l, _, _ := newTestLedger(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := l.Add(ctx, espresso())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Len(t, l.Query(domain.CategoryCaffeine, nil), 20)
}

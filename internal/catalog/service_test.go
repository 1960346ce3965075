package catalog

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/Toxscan/internal/hermes"
	"github.com/MikeSquared-Agency/Toxscan/internal/metrics"
	"github.com/MikeSquared-Agency/Toxscan/internal/scoring"
	"github.com/MikeSquared-Agency/Toxscan/internal/store"
	"github.com/MikeSquared-Agency/Toxscan/internal/vocab"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeSource struct {
	name  string
	info  *ProductInfo
	err   error
	calls int
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Lookup(_ context.Context, _ string) (*ProductInfo, error) {
	f.calls++
	return f.info, f.err
}

type recordingClient struct {
	mu       sync.Mutex
	subjects []string
}

func (r *recordingClient) Publish(subject string, _ interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subjects = append(r.subjects, subject)
	return nil
}

func (r *recordingClient) Subscribe(string, func(string, []byte)) error { return nil }
func (r *recordingClient) Close()                                       {}

type fixture struct {
	svc   *Service
	store *store.MemoryStore
	bus   *recordingClient
	off   *fakeSource
	obf   *fakeSource
}

func newFixture(provider scoring.VocabularyProvider) *fixture {
	if provider == nil {
		set := vocab.Builtin()
		provider = scoring.StaticProvider{V: vocab.New(set.Version, set.Markers, discardLogger())}
	}
	f := &fixture{
		store: store.NewMemoryStore(),
		bus:   &recordingClient{},
		off:   &fakeSource{name: store.SourceOpenFoodFacts},
		obf:   &fakeSource{name: store.SourceOpenBeautyFacts},
	}
	engine := scoring.NewEngine(provider, scoring.EngineOptions{}, discardLogger())
	f.svc = NewService(f.store, engine, []ProductSource{f.off, f.obf}, f.bus, metrics.NewMetrics(nil), discardLogger())
	f.svc.now = func() time.Time { return time.UnixMilli(1_700_000_123_456) }
	return f
}

func TestLookupLocalHit(t *testing.T) {
	f := newFixture(nil)
	score := 42
	require.NoError(t, f.store.CreateProduct(context.Background(), &store.Product{
		ProductID: "CP-000001", Barcode: "0012345678905", Name: "Shampoo", HazardScore: &score,
	}))

	res, err := f.svc.Lookup(context.Background(), "12345678905")
	require.NoError(t, err)
	assert.Equal(t, TierLocal, res.Tier)
	assert.False(t, res.IsNew)
	assert.Nil(t, res.Score)
	assert.Equal(t, 42, *res.Product.HazardScore)
	assert.Zero(t, f.off.calls, "external sources are not consulted on a local hit")
}

func TestLookupScoresUnscoredLocalProduct(t *testing.T) {
	f := newFixture(nil)
	require.NoError(t, f.store.CreateProduct(context.Background(), &store.Product{
		ProductID: "CP-000002", Barcode: "12345678", Name: "Lotion",
		Ingredients: "Water, Fragrance, Methylparaben",
	}))

	res, err := f.svc.Lookup(context.Background(), "12345678")
	require.NoError(t, err)
	require.NotNil(t, res.Score)
	assert.Equal(t, 70, res.Score.OverallScore)

	stored, _ := f.store.GetProduct(context.Background(), "CP-000002")
	require.True(t, stored.Scored())
	assert.Equal(t, 70, *stored.HazardScore)
	assert.Equal(t, "High", stored.HazardLevel)
	assert.Equal(t, "moderate", stored.DomainStatus["parabens"])
	assert.Contains(t, f.bus.subjects, hermes.SubjectProductScored("12345678"))
}

func TestLookupImportsExternalHit(t *testing.T) {
	f := newFixture(nil)
	f.off.info = &ProductInfo{
		Name: "Berry Soda", Brand: "Fizz", Category: CategoryFood,
		SourceCategory: "Beverages", Ingredients: "Water, Fragrance, Methylparaben",
		Source: store.SourceOpenFoodFacts,
	}

	res, err := f.svc.Lookup(context.Background(), "4006381333931")
	require.NoError(t, err)
	assert.True(t, res.IsNew)
	assert.Equal(t, store.SourceOpenFoodFacts, res.Tier)
	assert.Equal(t, "FD-123456", res.Product.ProductID)
	assert.Equal(t, "Beverages", res.Product.SubCategory)
	require.NotNil(t, res.Score)
	assert.Equal(t, 70, res.Score.OverallScore)
	assert.Zero(t, f.obf.calls)

	stored, _ := f.store.GetProduct(context.Background(), "FD-123456")
	require.NotNil(t, stored)
	assert.Equal(t, "4006381333931", stored.Barcode)
	assert.Equal(t, vocab.BuiltinVersion, stored.VocabularyVersion)
	assert.Contains(t, stored.Concerns, "Fragrance")

	assert.Equal(t, []string{
		hermes.SubjectProductCreated("4006381333931"),
		hermes.SubjectProductScored("4006381333931"),
	}, f.bus.subjects)

	// A second scan is served locally.
	res, err = f.svc.Lookup(context.Background(), "4006381333931")
	require.NoError(t, err)
	assert.Equal(t, TierLocal, res.Tier)
	assert.Equal(t, 1, f.off.calls)
}

func TestLookupFallsThroughFailingSource(t *testing.T) {
	f := newFixture(nil)
	f.off.err = errors.New("timeout")
	f.obf.info = &ProductInfo{Name: "Face Wash", Brand: "Glow", Category: CategoryPersonalCare, Source: store.SourceOpenBeautyFacts}

	res, err := f.svc.Lookup(context.Background(), "12345670")
	require.NoError(t, err)
	assert.Equal(t, store.SourceOpenBeautyFacts, res.Tier)
	assert.Equal(t, "CP-123456", res.Product.ProductID)
	assert.Equal(t, "Face Wash", res.Product.SubCategory)
	assert.Nil(t, res.Score, "no ingredients, no score")
	assert.False(t, res.Product.Scored())
}

func TestLookupRecordsMiss(t *testing.T) {
	f := newFixture(nil)

	_, err := f.svc.Lookup(context.Background(), "8888-8888")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrProductNotFound))

	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "88888888", nf.Barcode)
	assert.True(t, nf.Logged)
	assert.Equal(t, 1, nf.ScanCount)

	_, err = f.svc.Lookup(context.Background(), "88888888")
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, 2, nf.ScanCount)

	misses, err := f.svc.ListMisses(context.Background(), store.MissFilter{})
	require.NoError(t, err)
	require.Len(t, misses, 1)
	assert.Equal(t, "Unknown", misses[0].CategoryHint)
	assert.Contains(t, f.bus.subjects, hermes.SubjectScanMissed("88888888"))
}

func TestLookupInvalidBarcode(t *testing.T) {
	f := newFixture(nil)
	_, err := f.svc.Lookup(context.Background(), "123")
	assert.ErrorIs(t, err, ErrInvalidBarcode)
	assert.Zero(t, f.off.calls)
}

func TestAddProduct(t *testing.T) {
	f := newFixture(nil)
	ctx := context.Background()

	p, err := f.svc.AddProduct(ctx, NewProduct{
		Name:        "Lavender Body Wash",
		Brand:       "Calm",
		Barcode:     "012345678905",
		Ingredients: "Water, Fragrance, Methylparaben",
	})
	require.NoError(t, err)
	assert.Equal(t, "CP-123456", p.ProductID)
	assert.Equal(t, CategoryPersonalCare, p.Category)
	assert.Equal(t, store.SourceManual, p.Source)
	assert.Equal(t, "Body Wash", p.SubCategory)
	require.True(t, p.Scored())
	assert.Equal(t, 70, *p.HazardScore)

	// Same barcode without the leading zero.
	existing, err := f.svc.AddProduct(ctx, NewProduct{Name: "Other", Barcode: "12345678905"})
	assert.ErrorIs(t, err, ErrDuplicateProduct)
	require.NotNil(t, existing)
	assert.Equal(t, "CP-123456", existing.ProductID)

	// Same name and brand.
	_, err = f.svc.AddProduct(ctx, NewProduct{Name: "lavender body wash", Brand: "CALM"})
	assert.ErrorIs(t, err, ErrDuplicateProduct)
}

func TestAddProductDefaultsAndValidation(t *testing.T) {
	f := newFixture(nil)
	ctx := context.Background()

	_, err := f.svc.AddProduct(ctx, NewProduct{Name: "  "})
	assert.ErrorIs(t, err, ErrInvalidProduct)

	_, err = f.svc.AddProduct(ctx, NewProduct{Name: "Thing", Barcode: "12"})
	assert.ErrorIs(t, err, ErrInvalidBarcode)

	p, err := f.svc.AddProduct(ctx, NewProduct{Name: "Lemon Cleaner", Category: CategoryHomeCleaning})
	require.NoError(t, err)
	assert.Equal(t, "HH-123456", p.ProductID)
	assert.Equal(t, "Unknown Brand", p.Brand)
	assert.Equal(t, "Surface Cleaner", p.SubCategory)
	assert.False(t, p.Scored())

	p, err = f.svc.AddProduct(ctx, NewProduct{ProductID: "FD-CUSTOM", Name: "Granola", Brand: "Oaty", Category: CategoryFood})
	require.NoError(t, err)
	assert.Equal(t, "FD-CUSTOM", p.ProductID)
	assert.Equal(t, "Breakfast Cereal", p.SubCategory)
}

func TestAddProductSavesUnscoredWithoutVocabulary(t *testing.T) {
	f := newFixture(scoring.StaticProvider{})

	p, err := f.svc.AddProduct(context.Background(), NewProduct{Name: "Shampoo", Ingredients: "Water, Fragrance"})
	require.NoError(t, err)
	assert.False(t, p.Scored())

	stored, _ := f.store.GetProduct(context.Background(), p.ProductID)
	require.NotNil(t, stored)
}

func TestListMissesDefaultsAndLimits(t *testing.T) {
	f := newFixture(nil)
	ctx := context.Background()
	t0 := time.Date(2025, 11, 3, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, _ = f.store.RecordScanMiss(ctx, "11111111", "Unknown", t0)
	}
	_, _ = f.store.RecordScanMiss(ctx, "22222222", "Food", t0)

	misses, err := f.svc.ListMisses(ctx, store.MissFilter{})
	require.NoError(t, err)
	require.Len(t, misses, 2)
	assert.Equal(t, "11111111", misses[0].Barcode)

	misses, err = f.svc.ListMisses(ctx, store.MissFilter{MinScans: 2, Limit: 10_000})
	require.NoError(t, err)
	assert.Len(t, misses, 1)

	misses, err = f.svc.ListMisses(ctx, store.MissFilter{Status: store.MissAdded})
	require.NoError(t, err)
	assert.NotNil(t, misses)
	assert.Empty(t, misses)

	_, err = f.svc.ListMisses(ctx, store.MissFilter{Status: "researching"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestWriteMissesCSV(t *testing.T) {
	t0 := time.Date(2025, 11, 3, 9, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	err := WriteMissesCSV(&buf, []*store.ScanMiss{
		{Barcode: "11111111", ScanCount: 3, FirstScanned: t0, LastScanned: t0.Add(48 * time.Hour)},
		{Barcode: "22222222", ScanCount: 1, CategoryHint: "Food, Snacks"},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "barcode,scan_count,first_scanned,last_scanned,category_hint,product_name,brand,category,sub_category,ingredients,notes", lines[0])
	assert.Equal(t, "11111111,3,2025-11-03,2025-11-05,Unknown,,,,,,", lines[1])
	assert.Equal(t, `22222222,1,,,"Food, Snacks",,,,,,`, lines[2])
}

func TestUpdateMissStatus(t *testing.T) {
	f := newFixture(nil)
	ctx := context.Background()
	_, _ = f.store.RecordScanMiss(ctx, "11111111", "Unknown", time.Now())

	require.NoError(t, f.svc.UpdateMissStatus(ctx, "1111-1111", store.MissInvalid, " not a real code "))
	misses, _ := f.svc.ListMisses(ctx, store.MissFilter{Status: store.MissInvalid})
	require.Len(t, misses, 1)
	assert.Equal(t, "not a real code", misses[0].Notes)
	assert.Contains(t, f.bus.subjects, hermes.SubjectMissUpdated("11111111"))

	assert.ErrorIs(t, f.svc.UpdateMissStatus(ctx, "11111111", "done", ""), ErrInvalidStatus)
	assert.ErrorIs(t, f.svc.UpdateMissStatus(ctx, "22222222", store.MissAdded, ""), store.ErrNotFound)
}

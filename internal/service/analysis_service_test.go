package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vc-copilot-be/internal/entity"
	"vc-copilot-be/internal/repository/contract"
	"vc-copilot-be/internal/repository/specification"
	"vc-copilot-be/internal/repository/unitofwork"
)

type fakeReportRepo struct {
	created []*entity.AnalysisReport
	err     error
}

func (f *fakeReportRepo) Create(ctx context.Context, report *entity.AnalysisReport) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, report)
	return nil
}

func (f *fakeReportRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AnalysisReport, error) {
	return nil, nil
}

func (f *fakeReportRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AnalysisReport, error) {
	return nil, nil
}

type fakeUow struct {
	reports *fakeReportRepo
}

func (f *fakeUow) Begin(ctx context.Context) error { return nil }
func (f *fakeUow) Commit() error                   { return nil }
func (f *fakeUow) Rollback() error                 { return nil }
func (f *fakeUow) DocumentRepository() contract.DocumentRepository {
	return nil
}
func (f *fakeUow) DocumentChunkRepository() contract.DocumentChunkRepository {
	return nil
}
func (f *fakeUow) AnalysisReportRepository() contract.AnalysisReportRepository {
	return f.reports
}

type fakeUowFactory struct {
	uow *fakeUow
}

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

const deckText = `Our team of ex-Stripe engineers. The market is worth $5B TAM.
We have 200 customers and strong revenue growth. Unit economics: CAC of $50, LTV of $900.
Competitors include incumbents but our differentiation is speed. The problem we solve is
manual reconciliation pain. Target user persona: finance leads. Our solution is an automated
platform with key features. North star metric: weekly active teams. Roadmap milestones next quarter.`

func newAnalysisFixture(store *fakeStore) (IAnalysisService, *fakeReportRepo) {
	reports := &fakeReportRepo{}
	factory := &fakeUowFactory{uow: &fakeUow{reports: reports}}
	return NewAnalysisService(store, factory, nopLogger{}), reports
}

func TestAnalyzeNoDocuments(t *testing.T) {
	svc, _ := newAnalysisFixture(&fakeStore{hasDocs: false})

	_, err := svc.Analyze(context.Background(), "alice@example.com")
	assert.ErrorIs(t, err, ErrNoDocuments)
}

func TestAnalyzeProducesReportPerPersona(t *testing.T) {
	store := &fakeStore{hasDocs: true, content: deckText}
	svc, reports := newAnalysisFixture(store)

	res, err := svc.Analyze(context.Background(), "alice@example.com")
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", res.FounderId)
	require.Len(t, res.Reports, 2)
	assert.Contains(t, res.Reports, "Shark VC")
	assert.Contains(t, res.Reports, "Product Manager")

	// One audit row per persona.
	assert.Len(t, reports.created, 2)
}

func TestAnalyzeCachesResponse(t *testing.T) {
	store := &fakeStore{hasDocs: true, content: deckText}
	svc, reports := newAnalysisFixture(store)
	ctx := context.Background()

	first, err := svc.Analyze(ctx, "alice@example.com")
	require.NoError(t, err)

	second, err := svc.Analyze(ctx, "alice@example.com")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Len(t, reports.created, 2)

	svc.Invalidate("alice@example.com")
	third, err := svc.Analyze(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.Len(t, reports.created, 4)
}

func TestAnalyzeReportStoreFailureDoesNotFail(t *testing.T) {
	store := &fakeStore{hasDocs: true, content: deckText}
	reports := &fakeReportRepo{err: assert.AnError}
	factory := &fakeUowFactory{uow: &fakeUow{reports: reports}}
	svc := NewAnalysisService(store, factory, nopLogger{})

	res, err := svc.Analyze(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Len(t, res.Reports, 2)
}

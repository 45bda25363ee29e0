package calculation

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/lexcase/interest-engine/internal/domain"
	"github.com/lexcase/interest-engine/internal/rates"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordingLogger) Debugf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}
func (l *recordingLogger) Infof(format string, args ...any)  { l.Debugf(format, args...) }
func (l *recordingLogger) Warnf(format string, args ...any)  { l.Debugf(format, args...) }
func (l *recordingLogger) Errorf(format string, args ...any) { l.Debugf(format, args...) }

func segmentedExample() domain.CalculationRequest {
	return domain.CalculationRequest{
		Principal: dec("100000"),
		StartDate: day(2019, 8, 1),
		EndDate:   day(2019, 8, 31),
		YearBasis: domain.YearBasis360,
		Regime:    domain.SegmentedRegime{Tier: domain.Tier5Y},
	}
}

func assertPartition(t *testing.T, res *domain.CalculationResult) {
	t.Helper()
	require.NotEmpty(t, res.Periods)
	assert.Equal(t, res.StartDate, res.Periods[0].StartDate)
	assert.Equal(t, res.EndDate, res.Periods[len(res.Periods)-1].EndDate)

	days := 0
	sum := decimal.Zero
	for i, p := range res.Periods {
		assert.GreaterOrEqual(t, p.Days, 1)
		assert.Equal(t, p.EndDate.DaysSince(p.StartDate)+1, p.Days)
		assertDecimal(t, p.RawInterest.Round(2).String(), p.Interest)
		if i > 0 {
			assert.Equal(t, res.Periods[i-1].EndDate.AddDays(1), p.StartDate)
		}
		days += p.Days
		sum = sum.Add(p.Interest)
	}
	assert.Equal(t, res.Days, days)
	assertDecimal(t, sum.String(), res.GeneralInterest)
}

func TestCalculateSegmentedAcrossReform(t *testing.T) {
	engine := NewCalculationEngine(nil)

	res, err := engine.Calculate(segmentedExample())
	require.NoError(t, err)
	require.Len(t, res.Periods, 2)

	first, second := res.Periods[0], res.Periods[1]
	assert.Equal(t, day(2019, 8, 1), first.StartDate)
	assert.Equal(t, day(2019, 8, 19), first.EndDate)
	assert.Equal(t, 19, first.Days)
	assert.Equal(t, domain.SourceBenchmark, first.Source)
	assertDecimal(t, "4.90", first.BaseRate)
	assertDecimal(t, "258.61", first.Interest)

	assert.Equal(t, day(2019, 8, 20), second.StartDate)
	assert.Equal(t, day(2019, 8, 31), second.EndDate)
	assert.Equal(t, 12, second.Days)
	assert.Equal(t, domain.SourceLPR, second.Source)
	assertDecimal(t, "4.85", second.BaseRate)
	assertDecimal(t, "161.67", second.Interest)

	assert.Equal(t, 31, res.Days)
	assert.Equal(t, domain.RegimeSegmented, res.Regime)
	assertDecimal(t, "420.28", res.GeneralInterest)
	assertDecimal(t, "0", res.PenaltyInterest)
	assertDecimal(t, "420.28", res.TotalInterest)
	assertPartition(t, res)
}

func TestCalculateSegmentedBoundaryDay(t *testing.T) {
	req := segmentedExample()
	req.StartDate, req.EndDate = day(2019, 8, 19), day(2019, 8, 20)

	res, err := NewCalculationEngine(nil).Calculate(req)
	require.NoError(t, err)
	require.Len(t, res.Periods, 2)
	assert.Equal(t, domain.SourceBenchmark, res.Periods[0].Source)
	assert.Equal(t, 1, res.Periods[0].Days)
	assert.Equal(t, domain.SourceLPR, res.Periods[1].Source)
	assert.Equal(t, day(2019, 8, 20), res.Periods[1].StartDate)
}

func TestCalculatePenaltyExample(t *testing.T) {
	req := domain.CalculationRequest{
		Principal:      dec("100000"),
		StartDate:      day(2024, 3, 1),
		EndDate:        day(2024, 3, 10),
		YearBasis:      domain.YearBasis365,
		Regime:         domain.FixedRegime{Rate: dec("3.65")},
		IncludePenalty: true,
	}
	res, err := NewCalculationEngine(nil).Calculate(req)
	require.NoError(t, err)

	assert.Equal(t, 10, res.Days)
	// 100000 × 3.65% × 10 / 365
	assertDecimal(t, "100.00", res.GeneralInterest)
	assertDecimal(t, "175.00", res.PenaltyInterest)
	assertDecimal(t, "275.00", res.TotalInterest)
}

func TestCalculateFixedLeapYear(t *testing.T) {
	res, err := NewCalculationEngine(nil).Calculate(fixedRequest())
	require.NoError(t, err)

	assert.Equal(t, 366, res.Days)
	require.Len(t, res.Periods, 1)
	assertDecimal(t, "0.0001", res.Periods[0].DailyRate)
	assertDecimal(t, "3660.00", res.TotalInterest)
}

func TestCalculateRoundsPerPeriod(t *testing.T) {
	history := rates.NewHistory([]rates.Record{
		rates.NewRecord(day(2020, 1, 2), map[domain.Tier]decimal.Decimal{domain.Tier1Y: dec("5.475")}),
		rates.NewRecord(day(2020, 1, 1), map[domain.Tier]decimal.Decimal{domain.Tier1Y: dec("1.825")}),
	}, nil)
	req := domain.CalculationRequest{
		Principal: dec("100"),
		StartDate: day(2020, 1, 1),
		EndDate:   day(2020, 1, 2),
		YearBasis: domain.YearBasis365,
		Regime:    domain.LPRRegime{Tier: domain.Tier1Y, Mode: domain.ModeSegmented},
	}
	res, err := NewCalculationEngine(history).Calculate(req)
	require.NoError(t, err)

	require.Len(t, res.Periods, 2)
	assertDecimal(t, "0.01", res.Periods[0].Interest)
	assertDecimal(t, "0.02", res.Periods[1].Interest)
	assertDecimal(t, "0.03", res.GeneralInterest)
}

func TestCalculateSingleDay(t *testing.T) {
	engine := NewCalculationEngine(nil)
	req := fixedRequest()
	req.EndDate = req.StartDate

	res, err := engine.Calculate(req)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Days)
	require.Len(t, res.Periods, 1)

	for _, mode := range []domain.BoundaryMode{domain.BoundaryStartOnly, domain.BoundaryEndOnly} {
		req.BoundaryMode = mode
		res, err := engine.Calculate(req)
		require.NoError(t, err)
		assert.Equal(t, 0, res.Days, mode)
		assert.Empty(t, res.Periods, mode)
		assertDecimal(t, "0", res.TotalInterest)
	}
}

func TestCalculateBoundaryModeShiftsRange(t *testing.T) {
	req := fixedRequest()
	req.BoundaryMode = domain.BoundaryNeither

	res, err := NewCalculationEngine(nil).Calculate(req)
	require.NoError(t, err)
	assert.Equal(t, day(2024, 1, 2), res.StartDate)
	assert.Equal(t, day(2024, 12, 30), res.EndDate)
	assert.Equal(t, 364, res.Days)
	assertPartition(t, res)
}

func TestCalculateDurationRequest(t *testing.T) {
	req := fixedRequest()
	req.EndDate = civil.Date{}
	req.Duration = &domain.Duration{Years: 1}

	res, err := NewCalculationEngine(nil).Calculate(req)
	require.NoError(t, err)
	assert.Equal(t, day(2024, 12, 31), res.EndDate)
	assert.Equal(t, 366, res.Days)
}

func TestCalculateLPRFloorVersusSegmented(t *testing.T) {
	engine := NewCalculationEngine(nil)

	lpr := segmentedExample()
	lpr.Regime = domain.LPRRegime{Tier: domain.Tier5Y, Mode: domain.ModeSegmented}
	res, err := engine.Calculate(lpr)
	assert.Nil(t, res)
	require.ErrorIs(t, err, ErrValidation)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, CodeBeforeLPRFloor, verr.Code)

	res, err = engine.Calculate(segmentedExample())
	require.NoError(t, err)
	assert.Len(t, res.Periods, 2)
}

func TestCalculateLPRWithBasisPointsAndMultiplier(t *testing.T) {
	req := domain.CalculationRequest{
		Principal: dec("50000"),
		StartDate: day(2024, 1, 1),
		EndDate:   day(2024, 1, 30),
		YearBasis: domain.YearBasis360,
		Regime: domain.LPRRegime{
			Tier:        domain.Tier1Y,
			Mode:        domain.ModeSegmented,
			BasisPoints: domain.BasisPointAdjustment{Kind: domain.AdjustUp, Points: dec("15")},
		},
		Adjustment: domain.Adjustment{Kind: domain.AdjustMultiplier, Value: dec("2")},
	}
	res, err := NewCalculationEngine(nil).Calculate(req)
	require.NoError(t, err)

	require.Len(t, res.Periods, 1)
	p := res.Periods[0]
	assertDecimal(t, "3.45", p.BaseRate)
	// (3.45 + 0.15) × 2
	assertDecimal(t, "7.2", p.AdjustedRate)
	// 50000 × 7.2% × 30 / 360
	assertDecimal(t, "300.00", res.TotalInterest)
}

func TestCalculateIsDeterministicAndConcurrent(t *testing.T) {
	engine := NewCalculationEngine(nil)
	req := domain.CalculationRequest{
		Principal: dec("250000"),
		StartDate: day(2015, 1, 1),
		EndDate:   day(2024, 12, 31),
		YearBasis: domain.YearBasis365,
		Regime:    domain.SegmentedRegime{Tier: domain.Tier1Y},
	}
	want, err := engine.Calculate(req)
	require.NoError(t, err)
	assertPartition(t, want)

	var wg sync.WaitGroup
	results := make([]*domain.CalculationResult, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = engine.Calculate(req)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		require.NotNil(t, got)
		assert.Equal(t, want, got)
	}
}

func TestCalculateLogsThroughLogger(t *testing.T) {
	SetNowFunc(func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) })
	defer SetNowFunc(time.Now)

	logger := &recordingLogger{}
	engine := NewCalculationEngine(nil)
	engine.SetLogger(logger)

	_, err := engine.Calculate(segmentedExample())
	require.NoError(t, err)

	bad := segmentedExample()
	bad.Principal = dec("0")
	_, err = engine.Calculate(bad)
	require.Error(t, err)

	require.Len(t, logger.lines, 2)
	assert.Contains(t, logger.lines[0], "2 periods")
	assert.Contains(t, logger.lines[1], string(CodeNonPositivePrincipal))

	engine.SetLogger(nil)
	assert.IsType(t, NopLogger{}, engine.Logger)
}

func TestCalculateLogsThroughZap(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	engine := NewCalculationEngine(nil)
	engine.SetLogger(zap.New(core).Sugar())

	_, err := engine.Calculate(segmentedExample())
	require.NoError(t, err)
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.DebugLevel, entry.Level)
	assert.Contains(t, entry.Message, "31 days, 2 periods")
}

package dashboard

import (
	"context"
	"sort"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/obaida221/mushkilty-finance-system-backend/internal/expenses"
	"github.com/obaida221/mushkilty-finance-system-backend/internal/payments"
	"github.com/obaida221/mushkilty-finance-system-backend/internal/payroll"
	"github.com/obaida221/mushkilty-finance-system-backend/internal/shared"
)

// Stats is the headline block on the admin dashboard. Money fields are
// month-to-date in the requested currency; the change fields compare
// against the full previous month.
type Stats struct {
	Currency          string `json:"currency"`
	StudentCount      int64  `json:"student_count"`
	ActiveEnrollments int64  `json:"active_enrollments"`
	OpenBatches       int64  `json:"open_batches"`
	MonthRevenue      int64  `json:"month_revenue"`
	MonthExpenses     int64  `json:"month_expenses"`
	MonthPayroll      int64  `json:"month_payroll"`
	MonthNet          int64  `json:"month_net"`
	RevenueChange     int64  `json:"revenue_change"`
	ExpensesChange    int64  `json:"expenses_change"`
}

// RevenuePoint pairs income against outgoings for one month.
type RevenuePoint struct {
	Month    time.Time `json:"month"`
	Revenue  int64     `json:"revenue"`
	Expenses int64     `json:"expenses"`
	Payroll  int64     `json:"payroll"`
}

type PaymentsSource interface {
	TotalByDateRange(ctx context.Context, currency string, from, to time.Time) (int64, error)
	TotalByMonth(ctx context.Context, currency string, months int) ([]payments.MonthTotal, error)
	Recent(ctx context.Context, limit int) ([]payments.Payment, error)
	MethodDistribution(ctx context.Context, currency string) ([]payments.MethodShare, error)
}

type ExpensesSource interface {
	TotalByDateRange(ctx context.Context, currency string, from, to time.Time) (int64, error)
	TotalByMonth(ctx context.Context, currency string, months int) ([]expenses.MonthTotal, error)
}

type PayrollSource interface {
	TotalByDateRange(ctx context.Context, currency string, from, to time.Time) (int64, error)
	TotalByMonth(ctx context.Context, currency string, months int) ([]payroll.MonthTotal, error)
}

type Service struct {
	repo     Repository
	payments PaymentsSource
	expenses ExpensesSource
	payroll  PayrollSource
	cache    *Cache
	now      func() time.Time
}

func NewService(repo Repository, pay PaymentsSource, exp ExpensesSource, pr PayrollSource, cache *Cache) *Service {
	return &Service{repo: repo, payments: pay, expenses: exp, payroll: pr, cache: cache, now: time.Now}
}

// Stats gathers the headline numbers, fanning the queries out in parallel.
func (s *Service) Stats(ctx context.Context, currency string) (Stats, error) {
	if currency == "" {
		currency = "IQD"
	}
	key, err := s.cache.BuildKey(ctx, "dashboard", "stats", currency)
	if err != nil {
		return Stats{}, err
	}
	var stats Stats
	err = s.cache.FetchJSON(ctx, key, &stats, func(ctx context.Context) (any, error) {
		return s.loadStats(ctx, currency)
	})
	return stats, err
}

func (s *Service) loadStats(ctx context.Context, currency string) (Stats, error) {
	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)
	prevStart := monthStart.AddDate(0, -1, 0)

	var prevRevenue, prevExpenses int64
	stats := Stats{Currency: currency}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats.StudentCount, err = s.repo.StudentCount(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats.ActiveEnrollments, err = s.repo.ActiveEnrollmentCount(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats.OpenBatches, err = s.repo.OpenBatchCount(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats.MonthRevenue, err = s.payments.TotalByDateRange(ctx, currency, monthStart, monthEnd)
		return err
	})
	g.Go(func() error {
		var err error
		stats.MonthExpenses, err = s.expenses.TotalByDateRange(ctx, currency, monthStart, monthEnd)
		return err
	})
	g.Go(func() error {
		var err error
		stats.MonthPayroll, err = s.payroll.TotalByDateRange(ctx, currency, monthStart, monthEnd)
		return err
	})
	g.Go(func() error {
		var err error
		prevRevenue, err = s.payments.TotalByDateRange(ctx, currency, prevStart, monthStart)
		return err
	})
	g.Go(func() error {
		var err error
		prevExpenses, err = s.expenses.TotalByDateRange(ctx, currency, prevStart, monthStart)
		return err
	})
	if err := g.Wait(); err != nil {
		return Stats{}, err
	}
	stats.MonthNet = stats.MonthRevenue - stats.MonthExpenses - stats.MonthPayroll
	stats.RevenueChange = stats.MonthRevenue - prevRevenue
	stats.ExpensesChange = stats.MonthExpenses - prevExpenses
	return stats, nil
}

// RevenueChart merges payment, expense, and payroll month buckets into one
// series covering the requested window.
func (s *Service) RevenueChart(ctx context.Context, currency string, months int) ([]RevenuePoint, error) {
	if currency == "" {
		currency = "IQD"
	}
	if months <= 0 || months > 36 {
		months = 12
	}
	key, err := s.cache.BuildKey(ctx, "dashboard", "revenue", currency, strconv.Itoa(months))
	if err != nil {
		return nil, err
	}
	var points []RevenuePoint
	err = s.cache.FetchJSON(ctx, key, &points, func(ctx context.Context) (any, error) {
		return s.loadRevenueChart(ctx, currency, months)
	})
	return points, err
}

func (s *Service) loadRevenueChart(ctx context.Context, currency string, months int) ([]RevenuePoint, error) {
	var (
		payTotals []payments.MonthTotal
		expTotals []expenses.MonthTotal
		prTotals  []payroll.MonthTotal
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		payTotals, err = s.payments.TotalByMonth(ctx, currency, months)
		return err
	})
	g.Go(func() error {
		var err error
		expTotals, err = s.expenses.TotalByMonth(ctx, currency, months)
		return err
	})
	g.Go(func() error {
		var err error
		prTotals, err = s.payroll.TotalByMonth(ctx, currency, months)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	buckets := map[time.Time]*RevenuePoint{}
	point := func(month time.Time) *RevenuePoint {
		if p, ok := buckets[month]; ok {
			return p
		}
		p := &RevenuePoint{Month: month}
		buckets[month] = p
		return p
	}
	for _, t := range payTotals {
		point(t.Month).Revenue = t.Total
	}
	for _, t := range expTotals {
		point(t.Month).Expenses = t.Total
	}
	for _, t := range prTotals {
		point(t.Month).Payroll = t.Total
	}

	keys := make([]time.Time, 0, len(buckets))
	for m := range buckets {
		keys = append(keys, m)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })
	points := make([]RevenuePoint, 0, len(keys))
	for _, m := range keys {
		points = append(points, *buckets[m])
	}
	return points, nil
}

// EnrollmentChart returns enrollment counts per month.
func (s *Service) EnrollmentChart(ctx context.Context, months int) ([]MonthCount, error) {
	if months <= 0 || months > 36 {
		months = 12
	}
	key, err := s.cache.BuildKey(ctx, "dashboard", "enrollments", strconv.Itoa(months))
	if err != nil {
		return nil, err
	}
	var counts []MonthCount
	err = s.cache.FetchJSON(ctx, key, &counts, func(ctx context.Context) (any, error) {
		return s.repo.EnrollmentsByMonth(ctx, shared.MonthsBack(s.now(), months))
	})
	return counts, err
}

// RecentPayments proxies the latest payments for the activity feed.
func (s *Service) RecentPayments(ctx context.Context, limit int) ([]payments.Payment, error) {
	return s.payments.Recent(ctx, limit)
}

// MethodDistribution proxies the payment method breakdown.
func (s *Service) MethodDistribution(ctx context.Context, currency string) ([]payments.MethodShare, error) {
	if currency == "" {
		currency = "IQD"
	}
	return s.payments.MethodDistribution(ctx, currency)
}

// Refresh rebuilds the cached aggregates. The worker calls this on a
// schedule and after cache bumps.
func (s *Service) Refresh(ctx context.Context, currency string) error {
	if err := s.cache.Bump(ctx); err != nil {
		return err
	}
	if _, err := s.Stats(ctx, currency); err != nil {
		return err
	}
	if _, err := s.RevenueChart(ctx, currency, 12); err != nil {
		return err
	}
	_, err := s.EnrollmentChart(ctx, 12)
	return err
}

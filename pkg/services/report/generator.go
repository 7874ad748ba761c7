package report

import (
	"context"
	"time"

	"github.com/secwatch/wafreport/pkg/models/domain"
	"github.com/secwatch/wafreport/pkg/services/attacktype"
	"github.com/secwatch/wafreport/pkg/services/chart"
)

// Store is the query surface the generator needs. *postgres.Store satisfies
// it; tests substitute stubs.
type Store interface {
	SummaryStats(ctx context.Context, period domain.ReportPeriod) (*domain.QueryResult, error)
	ProtectedApplications(ctx context.Context, period domain.ReportPeriod) (*domain.QueryResult, error)
	AccessByGeo(ctx context.Context, period domain.ReportPeriod) (*domain.QueryResult, error)
	AccessByIP(ctx context.Context, period domain.ReportPeriod) (*domain.QueryResult, error)
	AttacksByType(ctx context.Context, period domain.ReportPeriod) (*domain.QueryResult, error)
	AttacksByIP(ctx context.Context, period domain.ReportPeriod) (*domain.QueryResult, error)
	UninterceptedAttacks(ctx context.Context, period domain.ReportPeriod) (*domain.QueryResult, error)
}

// ChartRenderer rasterizes the attack-type distribution. *chart.Renderer
// satisfies it.
type ChartRenderer interface {
	Pie(slices []chart.Slice, dir string) (string, error)
}

// Generator assembles the weekly report model by running every section
// builder in a fixed order. A failing builder degrades to its fallback
// sentence so one bad query never sinks the whole run.
type Generator struct {
	store    Store
	resolver *attacktype.Resolver
	charts   ChartRenderer
	project  string
	owner    string
	chartDir string
}

type Options struct {
	Store    Store
	Resolver *attacktype.Resolver
	Charts   ChartRenderer
	Project  string
	Owner    string
	ChartDir string
}

func NewGenerator(opts Options) *Generator {
	return &Generator{
		store:    opts.Store,
		resolver: opts.Resolver,
		charts:   opts.Charts,
		project:  opts.Project,
		owner:    opts.Owner,
		chartDir: opts.ChartDir,
	}
}

// Generate builds the full report for the period. All builders receive the
// same period value.
func (g *Generator) Generate(ctx context.Context, period domain.ReportPeriod) *domain.WeeklyReport {
	report := &domain.WeeklyReport{
		Project:     g.project,
		Owner:       g.owner,
		Period:      period,
		GeneratedAt: time.Now(),
	}

	report.Sections = append(report.Sections,
		g.overviewSection(),
		g.protectionSummarySection(ctx, period),
		g.protectedApplicationsSection(ctx, period),
		heading("三、访问数据统计", 1),
		g.accessByGeoSection(ctx, period),
		g.accessByIPSection(ctx, period),
		heading("四、攻击数据统计", 1),
		g.attacksByTypeSection(ctx, period),
		g.attacksByIPSection(ctx, period),
		heading("五、明细数据展示", 1),
		g.uninterceptedSection(ctx, period),
		g.reportInfoSection(period, report.GeneratedAt),
	)
	return report
}

func heading(title string, level int) domain.Section {
	return domain.Section{Heading: title, Level: level}
}

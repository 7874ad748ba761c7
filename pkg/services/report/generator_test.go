package report

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secwatch/wafreport/pkg/models/domain"
	"github.com/secwatch/wafreport/pkg/services/attacktype"
	"github.com/secwatch/wafreport/pkg/services/chart"
)

// stubStore lets us simulate any query outcome per section.
type stubStore struct {
	summary   *domain.QueryResult
	apps      *domain.QueryResult
	geo       *domain.QueryResult
	accessIPs *domain.QueryResult
	byType    *domain.QueryResult
	byIP      *domain.QueryResult
	missed    *domain.QueryResult

	summaryErr   error
	appsErr      error
	geoErr       error
	accessIPsErr error
	byTypeErr    error
	byIPErr      error
	missedErr    error
}

func (s *stubStore) SummaryStats(context.Context, domain.ReportPeriod) (*domain.QueryResult, error) {
	return s.summary, s.summaryErr
}
func (s *stubStore) ProtectedApplications(context.Context, domain.ReportPeriod) (*domain.QueryResult, error) {
	return s.apps, s.appsErr
}
func (s *stubStore) AccessByGeo(context.Context, domain.ReportPeriod) (*domain.QueryResult, error) {
	return s.geo, s.geoErr
}
func (s *stubStore) AccessByIP(context.Context, domain.ReportPeriod) (*domain.QueryResult, error) {
	return s.accessIPs, s.accessIPsErr
}
func (s *stubStore) AttacksByType(context.Context, domain.ReportPeriod) (*domain.QueryResult, error) {
	return s.byType, s.byTypeErr
}
func (s *stubStore) AttacksByIP(context.Context, domain.ReportPeriod) (*domain.QueryResult, error) {
	return s.byIP, s.byIPErr
}
func (s *stubStore) UninterceptedAttacks(context.Context, domain.ReportPeriod) (*domain.QueryResult, error) {
	return s.missed, s.missedErr
}

type stubCharts struct {
	path   string
	err    error
	slices []chart.Slice
}

func (c *stubCharts) Pie(slices []chart.Slice, _ string) (string, error) {
	c.slices = slices
	return c.path, c.err
}

func newTestGenerator(store Store, charts ChartRenderer) *Generator {
	return NewGenerator(Options{
		Store: store,
		Resolver: attacktype.NewResolver(map[string]string{
			"attack.type.1": "SQL注入攻击",
		}),
		Charts:   charts,
		Project:  "某门户",
		Owner:    "ops",
		ChartDir: "charts",
	})
}

func sectionByHeading(t *testing.T, report *domain.WeeklyReport, heading string) domain.Section {
	t.Helper()
	for _, s := range report.Sections {
		if s.Heading == heading {
			return s
		}
	}
	t.Fatalf("section %q not found", heading)
	return domain.Section{}
}

func sectionText(section domain.Section) string {
	var sb strings.Builder
	for _, b := range section.Blocks {
		sb.WriteString(b.Text)
	}
	return sb.String()
}

func TestInterceptRate(t *testing.T) {
	assert.Equal(t, "100.00", InterceptRate(0, 0))
	assert.Equal(t, "100.00", InterceptRate(42, 0))
	assert.Equal(t, "30.00", InterceptRate(30, 70))
	assert.Equal(t, "99.90", InterceptRate(999, 1))
}

func TestGenerate_SectionOrderIsFixed(t *testing.T) {
	g := newTestGenerator(&stubStore{}, &stubCharts{})

	report := g.Generate(context.Background(), domain.ReportPeriod{})

	var headings []string
	for _, s := range report.Sections {
		headings = append(headings, s.Heading)
	}
	assert.Equal(t, []string{
		"一、巡检必要性概述",
		"二、防护应用概览",
		"2.1 分应用查看",
		"三、访问数据统计",
		"3.1 按地理区域统计访问数据TOP10",
		"3.2 按访问IP统计访问数据TOP10",
		"四、攻击数据统计",
		"4.1 按攻击方式统计数据",
		"4.2 按攻击IP统计访问数据TOP10",
		"五、明细数据展示",
		"5.1 未拦截攻击明细",
		"六、报告信息",
	}, headings)
}

func TestGenerate_NoProtectedApplications_FallbackSentence(t *testing.T) {
	// Given: the protected-apps query returns zero rows
	store := &stubStore{apps: &domain.QueryResult{Columns: []string{"应用序号"}}}
	g := newTestGenerator(store, &stubCharts{})

	// When
	report := g.Generate(context.Background(), domain.ReportPeriod{})

	// Then
	section := sectionByHeading(t, report, "2.1 分应用查看")
	require.Len(t, section.Blocks, 1)
	assert.Equal(t, domain.BlockText, section.Blocks[0].Kind)
	assert.Equal(t, "暂无防护应用。", section.Blocks[0].Text)
}

func TestGenerate_QueryFailureDoesNotAbortRun(t *testing.T) {
	store := &stubStore{
		summaryErr: assert.AnError,
		appsErr:    assert.AnError,
		geoErr:     assert.AnError,
	}
	g := newTestGenerator(store, &stubCharts{})

	report := g.Generate(context.Background(), domain.ReportPeriod{})

	assert.Len(t, report.Sections, 12)
	assert.Contains(t, sectionText(sectionByHeading(t, report, "二、防护应用概览")), "无法获取总体统计数据")
	assert.Contains(t, sectionText(sectionByHeading(t, report, "2.1 分应用查看")), "查询防护应用数据失败。")
	assert.Contains(t, sectionText(sectionByHeading(t, report, "3.1 按地理区域统计访问数据TOP10")), "查询地理访问数据失败。")
}

func TestGenerate_AttacksByType_NarrativeChartAndTable(t *testing.T) {
	// Given: one attack type with 50 hits
	store := &stubStore{
		byType: &domain.QueryResult{
			Columns: []string{"攻击类型", "攻击次数"},
			Rows:    [][]any{{int64(1), int64(50)}},
		},
	}
	charts := &stubCharts{path: "charts/attack_type_chart.png"}
	g := newTestGenerator(store, charts)

	// When
	report := g.Generate(context.Background(), domain.ReportPeriod{})

	// Then: narrative names the resolved type and the count
	section := sectionByHeading(t, report, "4.1 按攻击方式统计数据")
	require.Len(t, section.Blocks, 3)

	narrative := section.Blocks[0]
	assert.Equal(t, domain.BlockNarrative, narrative.Kind)
	assert.Contains(t, narrative.Text, "SQL注入攻击")
	assert.Contains(t, narrative.Text, "50")

	image := section.Blocks[1]
	assert.Equal(t, domain.BlockImage, image.Kind)
	assert.Equal(t, "charts/attack_type_chart.png", image.Image)

	table := section.Blocks[2]
	assert.Equal(t, domain.BlockTable, table.Kind)
	assert.Equal(t, "SQL注入攻击", table.Table.Rows[0][0])

	// The chart got the resolved label and the raw value.
	require.Len(t, charts.slices, 1)
	assert.Equal(t, chart.Slice{Label: "SQL注入攻击", Value: 50}, charts.slices[0])
}

func TestGenerate_AttacksByType_ChartFailureDropsOnlyTheImage(t *testing.T) {
	store := &stubStore{
		byType: &domain.QueryResult{
			Columns: []string{"攻击类型", "攻击次数"},
			Rows:    [][]any{{int64(1), int64(50)}},
		},
	}
	g := newTestGenerator(store, &stubCharts{err: assert.AnError})

	report := g.Generate(context.Background(), domain.ReportPeriod{})

	section := sectionByHeading(t, report, "4.1 按攻击方式统计数据")
	require.Len(t, section.Blocks, 2)
	assert.Equal(t, domain.BlockNarrative, section.Blocks[0].Kind)
	assert.Equal(t, domain.BlockTable, section.Blocks[1].Kind)
}

func TestGenerate_SummaryNarrativeCarriesInterceptRate(t *testing.T) {
	store := &stubStore{
		summary: &domain.QueryResult{
			Columns: []string{"访问总数", "拦截总数", "黑名单拦截数", "未拦截数"},
			Rows:    [][]any{{int64(1000), int64(30), int64(5), int64(70)}},
		},
	}
	g := newTestGenerator(store, &stubCharts{})

	report := g.Generate(context.Background(), domain.ReportPeriod{})

	text := sectionText(sectionByHeading(t, report, "二、防护应用概览"))
	assert.Contains(t, text, "30.00")
	assert.Contains(t, text, em("1,000"))
}

func TestGenerate_UninterceptedCountAndResolvedTypeColumn(t *testing.T) {
	row := []any{"门户", "192.0.2.9", "h", "/login", int64(443), "CN", "北京", "北京", int64(1), "2026-08-20 10:00:00"}
	store := &stubStore{
		missed: &domain.QueryResult{
			Columns: []string{"被攻击应用", "源IP", "目标主机", "请求路径", "目标端口", "国家代码", "省份", "城市", "攻击类型", "攻击时间"},
			Rows:    [][]any{row},
		},
	}
	g := newTestGenerator(store, &stubCharts{})

	report := g.Generate(context.Background(), domain.ReportPeriod{})

	section := sectionByHeading(t, report, "5.1 未拦截攻击明细")
	require.Len(t, section.Blocks, 2)
	assert.Contains(t, section.Blocks[0].Text, em("1"))
	assert.Equal(t, "SQL注入攻击", section.Blocks[1].Table.Rows[0][8])
}

func TestStr_FormatsTimeValues(t *testing.T) {
	assert.Equal(t, "", str(nil))
	assert.Equal(t, "7", str(int64(7)))
}

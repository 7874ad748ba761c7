package report

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/secwatch/wafreport/pkg/models/domain"
	"github.com/secwatch/wafreport/pkg/services/chart"
)

const overviewText = "本周对Web应用防火墙（WAF）进行了系统性巡检，旨在及时发现并处置潜在的安全威胁，" +
	"确保Web应用服务的持续可用性和数据安全性。通过定期巡检，可有效识别异常攻击流量、" +
	"优化防护策略、验证防护效果，并为安全态势评估提供数据支撑，降低因Web应用漏洞导致" +
	"的数据泄露和服务中断风险。"

func (g *Generator) overviewSection() domain.Section {
	return domain.Section{
		Heading: "一、巡检必要性概述",
		Level:   1,
		Blocks:  []domain.Block{textBlock(overviewText)},
	}
}

func (g *Generator) protectionSummarySection(ctx context.Context, period domain.ReportPeriod) domain.Section {
	section := domain.Section{Heading: "二、防护应用概览", Level: 1}

	result, err := g.store.SummaryStats(ctx, period)
	if err != nil || result.Empty() {
		if err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Msg("summary stats unavailable")
		}
		section.Blocks = append(section.Blocks, textBlock("无法获取总体统计数据"))
		return section
	}

	stats := rowMap(result.Columns, result.Rows[0])
	blocked := toInt64(stats["拦截总数"])
	missed := toInt64(stats["未拦截数"])
	narrative := fmt.Sprintf(
		"本周WAF总体运行平稳，总访问次数为%s，总拦截次数为%s，黑名单拦截次数为%s，未拦截攻击次数为%s，拦截率为%s%%。",
		em(count(stats["访问总数"])),
		em(count(stats["拦截总数"])),
		em(count(stats["黑名单拦截数"])),
		em(count(stats["未拦截数"])),
		em(InterceptRate(blocked, missed)),
	)
	section.Blocks = append(section.Blocks, narrativeBlock(narrative))
	return section
}

func (g *Generator) protectedApplicationsSection(ctx context.Context, period domain.ReportPeriod) domain.Section {
	section := domain.Section{Heading: "2.1 分应用查看", Level: 2}

	result, err := g.store.ProtectedApplications(ctx, period)
	switch {
	case err != nil:
		zerolog.Ctx(ctx).Error().Err(err).Msg("protected applications query failed")
		section.Blocks = append(section.Blocks, textBlock("查询防护应用数据失败。"))
	case result.Empty():
		section.Blocks = append(section.Blocks, textBlock("暂无防护应用。"))
	default:
		section.Blocks = append(section.Blocks, tableBlock(result))
	}
	return section
}

func (g *Generator) accessByGeoSection(ctx context.Context, period domain.ReportPeriod) domain.Section {
	section := domain.Section{Heading: "3.1 按地理区域统计访问数据TOP10", Level: 2}

	result, err := g.store.AccessByGeo(ctx, period)
	switch {
	case err != nil:
		zerolog.Ctx(ctx).Error().Err(err).Msg("geo access query failed")
		section.Blocks = append(section.Blocks, textBlock("查询地理访问数据失败。"))
	case result.Empty():
		section.Blocks = append(section.Blocks, textBlock("本周暂无访问数据。"))
	default:
		top := result.Rows[0]
		narrative := fmt.Sprintf("本周访问数据主要来自%s%s，访问次数为%s，具体数据可参看下表。",
			em(str(top[1])), em(str(top[2])), em(count(top[3])))
		section.Blocks = append(section.Blocks, narrativeBlock(narrative), tableBlock(result))
	}
	return section
}

func (g *Generator) accessByIPSection(ctx context.Context, period domain.ReportPeriod) domain.Section {
	section := domain.Section{Heading: "3.2 按访问IP统计访问数据TOP10", Level: 2}

	result, err := g.store.AccessByIP(ctx, period)
	switch {
	case err != nil:
		zerolog.Ctx(ctx).Error().Err(err).Msg("ip access query failed")
		section.Blocks = append(section.Blocks, textBlock("查询IP访问数据失败。"))
	case result.Empty():
		section.Blocks = append(section.Blocks, textBlock("本周暂无访问数据。"))
	default:
		resolved := withRows(result, g.resolver.ResolveColumn(result.Rows, 1))
		top := resolved.Rows[0]
		narrative := fmt.Sprintf("本周主要访问IP为%s，访问次数为%s，具体数据可参看下表。",
			em(str(top[0])), em(count(top[2])))
		section.Blocks = append(section.Blocks, narrativeBlock(narrative), tableBlock(resolved))
	}
	return section
}

func (g *Generator) attacksByTypeSection(ctx context.Context, period domain.ReportPeriod) domain.Section {
	logger := zerolog.Ctx(ctx)
	section := domain.Section{Heading: "4.1 按攻击方式统计数据", Level: 2}

	result, err := g.store.AttacksByType(ctx, period)
	switch {
	case err != nil:
		logger.Error().Err(err).Msg("attack type query failed")
		section.Blocks = append(section.Blocks, textBlock("查询攻击类型数据失败。"))
	case result.Empty():
		section.Blocks = append(section.Blocks, textBlock("本周暂无攻击数据，您的WAF很安全"))
	default:
		resolved := withRows(result, g.resolver.ResolveColumn(result.Rows, 0))
		top := resolved.Rows[0]
		narrative := fmt.Sprintf("本周的主要攻击类型为%s，该类型总计攻击%s次，具体数据如下图表所示。",
			em(str(top[0])), em(count(top[1])))
		section.Blocks = append(section.Blocks, narrativeBlock(narrative))

		slices := make([]chart.Slice, 0, len(resolved.Rows))
		for _, row := range resolved.Rows {
			slices = append(slices, chart.Slice{Label: str(row[0]), Value: toFloat64(row[1])})
		}
		// Chart failure only costs the picture; the table still renders.
		if chartPath, chartErr := g.charts.Pie(slices, g.chartDir); chartErr != nil {
			logger.Error().Err(chartErr).Msg("attack type chart render failed")
		} else {
			section.Blocks = append(section.Blocks, imageBlock(chartPath))
		}

		section.Blocks = append(section.Blocks, tableBlock(resolved))
	}
	return section
}

func (g *Generator) attacksByIPSection(ctx context.Context, period domain.ReportPeriod) domain.Section {
	section := domain.Section{Heading: "4.2 按攻击IP统计访问数据TOP10", Level: 2}

	result, err := g.store.AttacksByIP(ctx, period)
	switch {
	case err != nil:
		zerolog.Ctx(ctx).Error().Err(err).Msg("attack ip query failed")
		section.Blocks = append(section.Blocks, textBlock("查询攻击IP数据失败。"))
	case result.Empty():
		section.Blocks = append(section.Blocks, textBlock("本周暂无攻击数据，您的WAF很安全"))
	default:
		resolved := withRows(result, g.resolver.ResolveColumn(result.Rows, 1))
		top := resolved.Rows[0]
		narrative := fmt.Sprintf("本周的攻击主要来自%s，攻击类型为%s，总计攻击%s次，具体数据参看下表。",
			em(str(top[0])), em(str(top[1])), em(count(top[2])))
		section.Blocks = append(section.Blocks, narrativeBlock(narrative), tableBlock(resolved))
	}
	return section
}

func (g *Generator) uninterceptedSection(ctx context.Context, period domain.ReportPeriod) domain.Section {
	section := domain.Section{Heading: "5.1 未拦截攻击明细", Level: 2}

	result, err := g.store.UninterceptedAttacks(ctx, period)
	switch {
	case err != nil:
		zerolog.Ctx(ctx).Error().Err(err).Msg("unintercepted attacks query failed")
		section.Blocks = append(section.Blocks, textBlock("查询未拦截攻击数据失败。"))
	case result.Empty():
		section.Blocks = append(section.Blocks, textBlock("本周暂无未拦截攻击，所有攻击都被拒之门外。"))
	default:
		resolved := withRows(result, g.resolver.ResolveColumn(result.Rows, 8))
		narrative := fmt.Sprintf("本周攻击有%s条攻击未被拦截，我们将对其进行分析和拦截处理，具体数据参看下表。",
			em(count(int64(len(resolved.Rows)))))
		section.Blocks = append(section.Blocks, narrativeBlock(narrative), tableBlock(resolved))
	}
	return section
}

func (g *Generator) reportInfoSection(period domain.ReportPeriod, generatedAt time.Time) domain.Section {
	return domain.Section{
		Heading: "六、报告信息",
		Level:   1,
		Blocks: []domain.Block{
			textBlock(fmt.Sprintf("项目名称：%s", g.project)),
			textBlock(fmt.Sprintf("报告数据统计周期：%s至%s",
				period.StartDate.Format("2006-01-02"), period.EndDate.Format("2006-01-02"))),
			textBlock(fmt.Sprintf("报告生成时间：%s", generatedAt.Format("2006-01-02 15:04:05"))),
			textBlock(fmt.Sprintf("报告审核人：%s", g.owner)),
		},
	}
}

package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/secwatch/wafreport/pkg/models/domain"
)

// SummaryStats returns one row with the site-wide counters for the period:
// total requests, total blocked, blacklist blocks and missed attacks.
func (s *Store) SummaryStats(ctx context.Context, period domain.ReportPeriod) (*domain.QueryResult, error) {
	var b binder
	blStart, blEnd := b.bind(period.StartTimestamp), b.bind(period.EndTimestamp)
	blExcl := b.notIn("mrdlb.site_uuid", s.exceptAppIDs)
	missStart, missEnd := b.bind(period.StartTimestamp), b.bind(period.EndTimestamp)
	missExcl := b.notIn("mdlb.site_uuid", s.exceptAppIDs)
	dateStart, dateEnd := b.bind(period.StartDate), b.bind(period.EndDate)
	siteExcl := b.notIn("mss.website", s.exceptAppIDs)

	query := fmt.Sprintf(`
		SELECT
			COALESCE(SUM(CASE WHEN mss."type" = 'website-req' THEN mss.value END)::int, 0) AS 访问总数,
			COALESCE(SUM(CASE WHEN mss."type" = 'website-denied' THEN mss.value END)::int, 0) AS 拦截总数,
			(
				SELECT COUNT(*)
				FROM mgt_rule_detect_log_basic mrdlb
				WHERE mrdlb.attack_type = -3
				AND mrdlb."timestamp" BETWEEN %s AND %s
				%s
			) AS 黑名单拦截数,
			(
				SELECT COUNT(*)
				FROM mgt_detect_log_basic mdlb
				WHERE mdlb."action" = 0
				AND mdlb."timestamp" BETWEEN %s AND %s
				%s
			) AS 未拦截数
		FROM mgt_system_statistics mss
		WHERE mss.created_at BETWEEN %s AND %s
		%s`,
		blStart, blEnd, blExcl,
		missStart, missEnd, missExcl,
		dateStart, dateEnd, siteExcl)

	return s.Query(ctx, query, b.args...)
}

// ProtectedApplications lists every registered application with its request
// and block counts over the period.
func (s *Store) ProtectedApplications(ctx context.Context, period domain.ReportPeriod) (*domain.QueryResult, error) {
	var b binder
	dateStart, dateEnd := b.bind(period.StartDate), b.bind(period.EndDate)
	appExcl := b.notIn("mw.id", s.exceptAppIDs)
	// The exclusion is the only top-level predicate here, so it carries the
	// WHERE itself instead of an AND continuation.
	where := ""
	if appExcl != "" {
		where = "WHERE " + strings.TrimPrefix(appExcl, "AND ")
	}

	query := fmt.Sprintf(`
		SELECT
			mw.id AS 应用序号,
			mw."comment" AS 应用名称,
			mw.server_names AS 域名,
			mw.ports AS 开放端口,
			COALESCE(SUM(CASE WHEN mss."type" = 'website-req' THEN mss.value END)::int, 0) AS 请求次数,
			COALESCE(SUM(CASE WHEN mss."type" = 'website-denied' THEN mss.value END)::int, 0) AS 拦截次数
		FROM mgt_website mw
		LEFT JOIN mgt_system_statistics mss ON mw.id = mss.website::bigint
			AND mss.created_at BETWEEN %s AND %s
		%s
		GROUP BY mw.id, mw."comment", mw.server_names, mw.ports
		ORDER BY mw.id`,
		dateStart, dateEnd, where)

	return s.Query(ctx, query, b.args...)
}

// AccessByGeo returns the ten most active geographic origins.
func (s *Store) AccessByGeo(ctx context.Context, period domain.ReportPeriod) (*domain.QueryResult, error) {
	var b binder
	tsStart, tsEnd := b.bind(period.StartTimestamp), b.bind(period.EndTimestamp)

	query := fmt.Sprintf(`
		SELECT
			country AS 国家代号,
			province AS 省份,
			city AS 城市,
			SUM(count) AS 访问次数
		FROM statistics_geos sg
		WHERE "time" BETWEEN %s AND %s
		GROUP BY country, province, city
		ORDER BY 访问次数 DESC
		LIMIT 10`,
		tsStart, tsEnd)

	return s.Query(ctx, query, b.args...)
}

// AccessByIP returns the ten most active source addresses. Attack type -1
// marks plain access records.
func (s *Store) AccessByIP(ctx context.Context, period domain.ReportPeriod) (*domain.QueryResult, error) {
	var b binder
	tsStart, tsEnd := b.bind(period.StartTimestamp), b.bind(period.EndTimestamp)
	ipExcl := b.notIn("si.key", s.exceptIPs)

	query := fmt.Sprintf(`
		SELECT
			si."key" AS 访问IP,
			si.attack_type AS 访问类型,
			SUM(si.count) AS 访问次数
		FROM statistics_ips si
		WHERE si."time" BETWEEN %s AND %s
			AND si.attack_type = -1
			%s
		GROUP BY si."key", si.attack_type
		ORDER BY 访问次数 DESC
		LIMIT 10`,
		tsStart, tsEnd, ipExcl)

	return s.Query(ctx, query, b.args...)
}

// AttacksByType aggregates detected attacks per attack-type code, most
// frequent first.
func (s *Store) AttacksByType(ctx context.Context, period domain.ReportPeriod) (*domain.QueryResult, error) {
	var b binder
	tsStart, tsEnd := b.bind(period.StartTimestamp), b.bind(period.EndTimestamp)
	ipExcl := b.notIn("si.key", s.exceptIPs)

	query := fmt.Sprintf(`
		SELECT
			si.attack_type AS 攻击类型,
			SUM(si.count)::int AS 攻击次数
		FROM statistics_ips si
		WHERE si."time" BETWEEN %s AND %s
			AND si.attack_type > 0
			%s
		GROUP BY si.attack_type
		ORDER BY 攻击次数 DESC`,
		tsStart, tsEnd, ipExcl)

	return s.Query(ctx, query, b.args...)
}

// AttacksByIP returns the ten most aggressive source addresses.
func (s *Store) AttacksByIP(ctx context.Context, period domain.ReportPeriod) (*domain.QueryResult, error) {
	var b binder
	tsStart, tsEnd := b.bind(period.StartTimestamp), b.bind(period.EndTimestamp)
	ipExcl := b.notIn("si.key", s.exceptIPs)

	query := fmt.Sprintf(`
		SELECT
			si."key" AS 攻击IP,
			si.attack_type AS 攻击类型,
			SUM(si.count) AS 攻击次数
		FROM statistics_ips si
		WHERE si."time" BETWEEN %s AND %s
			AND si.attack_type > 0
			%s
		GROUP BY si."key", si.attack_type
		ORDER BY 攻击次数 DESC
		LIMIT 10`,
		tsStart, tsEnd, ipExcl)

	return s.Query(ctx, query, b.args...)
}

// UninterceptedAttacks lists every attack the appliance detected but did not
// block (action = 0), joined against the application registry.
func (s *Store) UninterceptedAttacks(ctx context.Context, period domain.ReportPeriod) (*domain.QueryResult, error) {
	var b binder
	tsStart, tsEnd := b.bind(period.StartTimestamp), b.bind(period.EndTimestamp)
	appExcl := b.notIn("mdlb.site_uuid", s.exceptAppIDs)

	query := fmt.Sprintf(`
		SELECT
			mw."comment" AS 被攻击应用,
			mdlb.src_ip AS 源IP,
			mdlb.host AS 目标主机,
			mdlb.url_path AS 请求路径,
			mdlb.dst_port AS 目标端口,
			mdlb.country AS 国家代码,
			mdlb.province AS 省份,
			mdlb.city AS 城市,
			mdlb.attack_type AS 攻击类型,
			mdlb.updated_at AS 攻击时间
		FROM mgt_detect_log_basic mdlb
		JOIN mgt_website mw ON mdlb.site_uuid::int = mw.id::int
		WHERE mdlb."timestamp" BETWEEN %s AND %s
			AND mdlb."action" = 0
			%s`,
		tsStart, tsEnd, appExcl)

	return s.Query(ctx, query, b.args...)
}

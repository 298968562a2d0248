package dashboard

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/redhat-appstudio/incident-kpis/pkg/metrics"
)

const (
	subtitleMTTA     = "Mean Time To Acknowledge"
	subtitleMTTR     = "Mean Time To Resolution"
	subtitleMTTD     = "Mean Time To Detect"
	subtitleCoverage = "Global Infrastructure Coverage"
	subtitleUptime   = "System Uptime"

	// uptimeHealthyThreshold separates an "up" uptime card from a "down" one
	uptimeHealthyThreshold = 99.5

	// uptimeTrendValue is shown on the uptime card, which has no computed trend
	uptimeTrendValue = "0.1%"
)

// FallbackData returns the static illustrative dashboard served whenever no
// live data is available, stamped with now. Every call returns a new value.
func FallbackData(status APIStatus, timeframe string, now time.Time) *Data {
	return &Data{
		KPIData: KPIData{
			MTTA:          KPI{Value: "4.2 min", Trend: TrendDown, TrendValue: "12%", Subtitle: subtitleMTTA},
			MTTR:          KPI{Value: "18.7 min", Trend: TrendDown, TrendValue: "8%", Subtitle: subtitleMTTR},
			MTTD:          KPI{Value: "6.3 min", Trend: TrendDown, TrendValue: "5%", Subtitle: subtitleMTTD},
			IncidentCount: KPI{Value: "247", Trend: TrendDown, TrendValue: "15%", Subtitle: "Total Incidents This Month"},
			Coverage:      KPI{Value: "99.8%", Trend: TrendUp, TrendValue: "0.2%", Subtitle: subtitleCoverage},
			Uptime:        KPI{Value: "99.97%", Trend: TrendStable, TrendValue: "0.0%", Subtitle: subtitleUptime},
		},
		LastUpdated: now.UTC(),
		IsLive:      false,
		APIStatus:   status,
		Timeframe:   timeframe,
	}
}

// present turns an aggregation into display cards.
func present(agg metrics.Aggregated, timeframe, coverage string, now time.Time) *Data {
	uptimeTrend := TrendDown
	if agg.Uptime > uptimeHealthyThreshold {
		uptimeTrend = TrendUp
	}

	return &Data{
		KPIData: KPIData{
			MTTA:          timeCard(agg.MTTA, agg.Trends.MTTA, subtitleMTTA),
			MTTR:          timeCard(agg.MTTR, agg.Trends.MTTR, subtitleMTTR),
			MTTD:          timeCard(agg.MTTD, agg.Trends.MTTD, subtitleMTTD),
			IncidentCount: KPI{
				Value:      FormatCount(agg.IncidentCount),
				Trend:      TrendDirection(agg.Trends.IncidentCount),
				TrendValue: FormatTrend(math.Abs(agg.Trends.IncidentCount)),
				Subtitle:   fmt.Sprintf("Total Incidents (%s)", strings.ToUpper(timeframe)),
			},
			Coverage: KPI{Value: coverage, Trend: TrendStable, TrendValue: "0.0%", Subtitle: subtitleCoverage},
			Uptime: KPI{
				Value:      FormatPercentage(agg.Uptime),
				Trend:      uptimeTrend,
				TrendValue: uptimeTrendValue,
				Subtitle:   subtitleUptime,
			},
		},
		LastUpdated: now.UTC(),
		IsLive:      true,
		APIStatus:   StatusHealthy,
		Timeframe:   timeframe,
		Metrics:     &agg,
	}
}

func timeCard(value, trend float64, subtitle string) KPI {
	return KPI{
		Value:      FormatTime(value),
		Trend:      TrendDirection(trend),
		TrendValue: FormatTrend(math.Abs(trend)),
		Subtitle:   subtitle,
	}
}


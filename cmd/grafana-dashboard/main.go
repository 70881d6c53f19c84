package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/grafana/grafana-foundation-sdk/go/prometheus"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

func main() {
	builder := dashboard.NewDashboardBuilder("Relwatch").
		Uid("relwatch").
		Tags([]string{"relwatch", "changelog", "prometheus"}).
		Refresh("1m").
		Time("now-6h", "now").
		Timezone(common.TimeZoneBrowser)

	builder = builder.WithRow(dashboard.NewRowBuilder("Check rounds"))
	builder = builder.WithPanel(
		timeseries.NewPanelBuilder().
			Title("Check rate").
			WithTarget(
				prometheus.NewDataqueryBuilder().
					Expr(`sum(rate(relwatch_check_success_total[5m]))`).
					LegendFormat("success"),
			).
			WithTarget(
				prometheus.NewDataqueryBuilder().
					Expr(`sum(rate(relwatch_check_failure_total[5m]))`).
					LegendFormat("failure"),
			),
	)
	builder = builder.WithPanel(
		timeseries.NewPanelBuilder().
			Title("Check duration avg").
			WithTarget(
				prometheus.NewDataqueryBuilder().
					Expr(`sum(rate(relwatch_check_duration_seconds_sum[5m])) / sum(rate(relwatch_check_duration_seconds_count[5m]))`).
					LegendFormat("avg"),
			),
	)

	builder = builder.WithRow(dashboard.NewRowBuilder("Changelog entries"))
	builder = builder.WithPanel(
		timeseries.NewPanelBuilder().
			Title("Entries").
			WithTarget(
				prometheus.NewDataqueryBuilder().
					Expr(`sum(rate(relwatch_entries_parsed_total[5m]))`).
					LegendFormat("parsed"),
			).
			WithTarget(
				prometheus.NewDataqueryBuilder().
					Expr(`sum(rate(relwatch_entries_new_total[5m]))`).
					LegendFormat("new"),
			).
			WithTarget(
				prometheus.NewDataqueryBuilder().
					Expr(`sum(rate(relwatch_entries_notified_total[5m]))`).
					LegendFormat("notified"),
			),
	)

	builder = builder.WithRow(dashboard.NewRowBuilder("Deliveries"))
	builder = builder.WithPanel(
		timeseries.NewPanelBuilder().
			Title("Delivery rate by platform").
			WithTarget(
				prometheus.NewDataqueryBuilder().
					Expr(`sum by (platform) (rate(relwatch_deliveries_total{outcome="success"}[5m]))`).
					LegendFormat("{{platform}} ok"),
			).
			WithTarget(
				prometheus.NewDataqueryBuilder().
					Expr(`sum by (platform) (rate(relwatch_deliveries_total{outcome="failure"}[5m]))`).
					LegendFormat("{{platform}} failed"),
			),
	)
	builder = builder.WithPanel(
		timeseries.NewPanelBuilder().
			Title("Delivery duration avg").
			WithTarget(
				prometheus.NewDataqueryBuilder().
					Expr(`sum(rate(relwatch_delivery_duration_seconds_sum[5m])) / sum(rate(relwatch_delivery_duration_seconds_count[5m]))`).
					LegendFormat("avg"),
			),
	)
	builder = builder.WithPanel(
		timeseries.NewPanelBuilder().
			Title("Errors").
			WithTarget(
				prometheus.NewDataqueryBuilder().
					Expr(`sum(rate(relwatch_fetch_errors_total[5m]))`).
					LegendFormat("fetch"),
			).
			WithTarget(
				prometheus.NewDataqueryBuilder().
					Expr(`sum(rate(relwatch_checkpoint_errors_total[5m]))`).
					LegendFormat("checkpoint"),
			),
	)

	dashboardJSON, err := builder.Build()
	if err != nil {
		panic(err)
	}

	outputPath := os.Getenv("DASHBOARD_OUT")
	if outputPath == "" {
		outputPath = "dashboard.json"
	}

	payload, err := json.MarshalIndent(dashboardJSON, "", "  ")
	if err != nil {
		panic(err)
	}

	if err := os.WriteFile(outputPath, payload, 0o600); err != nil {
		panic(err)
	}

	fmt.Printf("dashboard written to %s\n", outputPath)
}

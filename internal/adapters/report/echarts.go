package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/kamal-hamza/gridrisk/internal/catalog"
	"github.com/kamal-hamza/gridrisk/internal/core/domain"
)

// Themes accepted for the report page
var Themes = []string{
	types.ThemeChalk, types.ThemeEssos, types.ThemeInfographic, types.ThemeMacarons,
	types.ThemeRoma, types.ThemeShine, types.ThemeVintage, types.ThemeWalden,
	types.ThemeWesteros, types.ThemeWonderland,
}

// EChartsRenderer renders a fleet as a standalone HTML page of charts
type EChartsRenderer struct {
	theme string
}

// NewEChartsRenderer creates a renderer. An empty theme uses chalk.
func NewEChartsRenderer(theme string) *EChartsRenderer {
	if theme == "" {
		theme = types.ThemeChalk
	}
	return &EChartsRenderer{
		theme: theme,
	}
}

// Render writes the report page for fleet to w
func (r *EChartsRenderer) Render(w io.Writer, fleet *domain.Fleet, summary domain.Summary) error {
	if fleet == nil {
		return fmt.Errorf("cannot render report: no fleet")
	}

	page := components.NewPage()
	page.PageTitle = catalog.Title
	page.SetLayout(components.PageFlexLayout)

	page.AddCharts(
		r.riskBar(fleet, summary),
		r.typePie(summary),
		r.probabilityScatter(fleet),
		r.locationStack(fleet),
	)

	if err := page.Render(w); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

func (r *EChartsRenderer) init(title, subtitle string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{Theme: r.theme}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}

// riskBar shows how many records fall into each risk level
func (r *EChartsRenderer) riskBar(fleet *domain.Fleet, summary domain.Summary) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(r.init(
		"Risk Distribution",
		fmt.Sprintf("%d assets, seed %d", summary.Total, fleet.Seed()),
	)...)
	bar.SetGlobalOptions(charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}))

	levels := domain.AllRiskLevels()
	labels := make([]string, len(levels))
	data := make([]opts.BarData, len(levels))
	for i, level := range levels {
		labels[i] = level.String()
		data[i] = opts.BarData{
			Name:      level.String(),
			Value:     summary.ByRisk[level],
			ItemStyle: &opts.ItemStyle{Color: level.Color()},
		}
	}

	bar.SetXAxis(labels).AddSeries("Assets", data)
	return bar
}

// typePie splits the fleet by asset type
func (r *EChartsRenderer) typePie(summary domain.Summary) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(r.init("Asset Types", "")...)

	data := make([]opts.PieData, 0, len(domain.AssetTypes))
	for _, t := range domain.AssetTypes {
		if n := summary.ByType[t]; n > 0 {
			data = append(data, opts.PieData{Name: t, Value: n})
		}
	}

	pie.AddSeries("Asset Types", data).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {c}"}),
			charts.WithPieChartOpts(opts.PieChart{Radius: []string{"35%", "70%"}}),
		)
	return pie
}

// probabilityScatter plots failure probability against projected days to failure
func (r *EChartsRenderer) probabilityScatter(fleet *domain.Fleet) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(r.init("Failure Probability vs Days to Failure", "")...)
	scatter.SetGlobalOptions(
		charts.WithXAxisOpts(opts.XAxis{Name: "Failure probability", Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Days", Type: "value"}),
	)

	for _, level := range domain.AllRiskLevels() {
		assets := fleet.Filter(level)
		data := make([]opts.ScatterData, len(assets))
		for i, a := range assets {
			data[i] = opts.ScatterData{
				Name:  a.ID,
				Value: []interface{}{a.FailureProbability, a.DaysToFailure},
			}
		}
		scatter.AddSeries(level.String(), data,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: level.Color()}),
		)
	}
	return scatter
}

// locationStack stacks risk levels per location
func (r *EChartsRenderer) locationStack(fleet *domain.Fleet) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(r.init("Risk by Location", "")...)

	counts := make(map[string]map[domain.RiskLevel]int)
	for _, a := range fleet.Assets() {
		if counts[a.Location] == nil {
			counts[a.Location] = make(map[domain.RiskLevel]int)
		}
		counts[a.Location][a.RiskLevel]++
	}

	locations := make([]string, 0, len(counts))
	for loc := range counts {
		locations = append(locations, loc)
	}
	sort.Strings(locations)

	bar.SetXAxis(locations)
	for _, level := range domain.AllRiskLevels() {
		data := make([]opts.BarData, len(locations))
		for i, loc := range locations {
			data[i] = opts.BarData{Value: counts[loc][level]}
		}
		bar.AddSeries(level.String(), data,
			charts.WithBarChartOpts(opts.BarChart{Stack: "risk"}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: level.Color()}),
		)
	}
	return bar
}

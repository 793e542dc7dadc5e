package formatter

import (
	"fmt"
	"strings"

	"github.com/jmorand/planline/internal/domain"
	"github.com/jmorand/planline/internal/evm"
)

// FormatBaselineList renders baseline headers, newest first.
func FormatBaselineList(baselines []*domain.Baseline) string {
	headers := []string{"ID", "NAME", "CREATED", "HASH"}
	rows := make([][]string, 0, len(baselines))
	for _, b := range baselines {
		rows = append(rows, []string{
			TruncID(b.ID),
			Bold(b.Name),
			b.CreatedAt.Format(domain.DateLayout),
			Dim(fmt.Sprintf("%016x", b.StateHash)),
		})
	}
	return RenderBox("Baselines", RenderTable(headers, rows))
}

// FormatMetrics renders an earned-value report.
func FormatMetrics(m *evm.Metrics) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s  %s\n\n", StyleDim.Render("AS OF"), StyleFg.Render(m.AsOf.Format(domain.DateLayout))))

	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("PV   "), FormatMoney(m.PlannedValue)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("EV   "), FormatMoney(m.EarnedValue)))
	b.WriteString(fmt.Sprintf("%s  %s\n\n", StyleDim.Render("AC   "), FormatMoney(m.ActualCost)))

	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("SV   "), FormatVariance(m.ScheduleVariance)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("CV   "), FormatVariance(m.CostVariance)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("SPI  "), FormatIndex(m.SchedulePerformanceIndex)))
	b.WriteString(fmt.Sprintf("%s  %s\n\n", StyleDim.Render("CPI  "), FormatIndex(m.CostPerformanceIndex)))

	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("BAC  "), FormatMoney(m.BudgetAtCompletion)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("EAC  "), FormatMoney(m.EstimateAtCompletion)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("ETC  "), FormatMoney(m.EstimateToComplete)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("VAC  "), FormatVariance(m.VarianceAtCompletion)))

	return RenderBox("Earned value", strings.TrimRight(b.String(), "\n"))
}

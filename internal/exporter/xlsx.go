package exporter

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"leadpulse/pkg/contracts/domain"
)

const (
	sheetSummary  = "Summary"
	sheetAccounts = "Accounts"
	sheetSales    = "Sales"
	sheetSources  = "Sources"
)

// WriteWorkbook renders the snapshot as a multi-sheet XLSX workbook.
func WriteWorkbook(w io.Writer, snap *domain.Snapshot) error {
	f := excelize.NewFile()
	defer f.Close()

	// The default sheet becomes the summary.
	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return fmt.Errorf("rename summary sheet: %w", err)
	}
	for _, name := range []string{sheetAccounts, sheetSales, sheetSources} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	if err := writeSummarySheet(f, snap); err != nil {
		return err
	}
	if err := writeAccountsSheet(f, snap); err != nil {
		return err
	}
	if err := writeSalesSheet(f, snap); err != nil {
		return err
	}
	if err := writeSourcesSheet(f, snap); err != nil {
		return err
	}

	if idx, err := f.GetSheetIndex(sheetSummary); err == nil {
		f.SetActiveSheet(idx)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// setRow writes one row of values starting at column A.
func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func writeSummarySheet(f *excelize.File, snap *domain.Snapshot) error {
	rows := [][]interface{}{
		{"Generated At", snap.GeneratedAt.Format(time.RFC3339)},
		{"Data Source", snap.DataSource},
		{},
		{"Total Accounts", snap.TotalAccounts},
		{"Total Revenue", snap.TotalRevenue},
		{"Average Deal Size", snap.AverageDealSize},
		{"Recent Activity (90d)", snap.RecentActivityCount},
		{},
		{"Revenue Distribution"},
		{"Band", "Accounts", "Revenue"},
	}
	for _, band := range snap.RevenueDistribution {
		rows = append(rows, []interface{}{band.Label, band.Accounts, band.Revenue})
	}

	rows = append(rows, []interface{}{}, []interface{}{"Lifecycle Distribution"}, []interface{}{"Stage", "Accounts"})
	for _, stage := range sortedKeysByCount(snap.LifecycleDistribution) {
		rows = append(rows, []interface{}{stage, snap.LifecycleDistribution[stage]})
	}

	rows = append(rows, []interface{}{}, []interface{}{"Monthly Trend"}, []interface{}{"Month", "Accounts", "Revenue"})
	for _, month := range snap.MonthlyTrend {
		rows = append(rows, []interface{}{month.Month, month.Accounts, month.Revenue})
	}

	rows = append(rows, []interface{}{},
		[]interface{}{"Lead Temperature"},
		[]interface{}{"Hot", snap.HotLeads},
		[]interface{}{"Warm", snap.WarmLeads},
		[]interface{}{"Cool", snap.CoolLeads},
		[]interface{}{"Cold", snap.ColdLeads},
	)

	return writeRows(f, sheetSummary, rows)
}

func writeAccountsSheet(f *excelize.File, snap *domain.Snapshot) error {
	headers := accountHeaders()
	row := make([]interface{}, len(headers))
	for i, h := range headers {
		row[i] = h
	}
	rows := [][]interface{}{row}

	for _, account := range snap.Accounts {
		rows = append(rows, []interface{}{
			account.ID,
			account.Name,
			account.Address,
			account.Sales,
			account.EstimatedValue,
			account.CreateDate,
			account.LastActivity,
			account.Owner,
			account.Stage,
		})
	}
	return writeRows(f, sheetAccounts, rows)
}

func writeSalesSheet(f *excelize.File, snap *domain.Snapshot) error {
	rows := rollupSection("Sales By Rep", snap.SalesByRep)
	rows = append(rows, []interface{}{})
	rows = append(rows, rollupSection("Sales By Brand", snap.SalesByBrand)...)
	rows = append(rows, []interface{}{})
	rows = append(rows, rollupSection("Sales By State", snap.SalesByState)...)
	return writeRows(f, sheetSales, rows)
}

func writeSourcesSheet(f *excelize.File, snap *domain.Snapshot) error {
	rows := [][]interface{}{
		{"Traffic Sources"},
		{"Source", "Leads", "Revenue", "Avg Deal Size", "Conversion Rate"},
	}
	for _, src := range snap.TrafficSources {
		rows = append(rows, []interface{}{
			src.Source, src.Leads, src.Revenue, src.AvgDealSize, formatPercent(src.ConversionRate),
		})
	}

	rows = append(rows, []interface{}{}, []interface{}{"Campaigns"}, []interface{}{"Campaign", "Leads", "Revenue"})
	for _, c := range snap.Campaigns {
		rows = append(rows, []interface{}{c.Campaign, c.Leads, c.Revenue})
	}

	rows = append(rows, []interface{}{}, []interface{}{"Landing Pages"},
		[]interface{}{"Page", "Leads", "Revenue", "Avg Deal Size", "SQL Count", "Conversion Rate"})
	for _, p := range snap.LandingPages {
		rows = append(rows, []interface{}{
			p.Page, p.Leads, p.Revenue, p.AvgDealSize, p.SQLCount, formatPercent(p.ConversionRate),
		})
	}

	return writeRows(f, sheetSources, rows)
}

// rollupSection renders one rollup map as a title, header and rows ordered
// by revenue descending, ties broken by key.
func rollupSection(title string, rollup map[string]domain.RollupStats) [][]interface{} {
	keys := make([]string, 0, len(rollup))
	for key := range rollup {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		ri, rj := rollup[keys[i]].Revenue, rollup[keys[j]].Revenue
		if ri != rj {
			return ri > rj
		}
		return keys[i] < keys[j]
	})

	rows := [][]interface{}{{title}, {"Name", "Accounts", "Revenue"}}
	for _, key := range keys {
		stats := rollup[key]
		rows = append(rows, []interface{}{key, stats.Accounts, stats.Revenue})
	}
	return rows
}

// sortedKeysByCount orders map keys by descending count, ties by key, so the
// workbook is deterministic across runs.
func sortedKeysByCount(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if m[keys[i]] != m[keys[j]] {
			return m[keys[i]] > m[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		if err := setRow(f, sheet, i+1, row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/rubika-tools/aocomp/internal/roster"
)

// colName converts a 1-indexed column number to its spreadsheet letter
// form: 1 -> A, 26 -> Z, 27 -> AA.
func colName(n int) string {
	if n <= 0 {
		return ""
	}
	out := ""
	for n > 0 {
		n--
		out = string(rune('A'+(n%26))) + out
		n /= 26
	}
	return out
}

var xlsxHeaders = []string{
	"Weapon",
	"QL",
	"Attack (s)",
	"Recharge (s)",
	"Min Hit",
	"Avg Hit",
	"Max Hit",
	"Crit Hit",
	"Attacks/60s",
	"Crits/60s",
	"Fling Shot",
	"Burst",
	"Full Auto",
	"Aimed Shot",
	"Fast Attack",
	"Brawl",
	"Sneak Attack",
	"Dimach",
	"Specials 60s",
	"Regular 60s",
	"Total 60s",
	"DPS",
	"% of Best",
}

// ExportXLSX writes rows to a spreadsheet under dir and returns the path
// of the written file. The filename carries the current date and name so
// repeated exports for different setups do not collide. Special columns
// hold 60-second totals; % of Best compares each weapon's DPS against
// the best weapon in the roster.
//
// Precondition: name is non-empty.
func ExportXLSX(dir, name string, rows []roster.Row) (string, error) {
	f := excelize.NewFile()
	sheet := "Sheet1"

	// Row 1: title merged across the full width. Row 2: column headers.
	lastCol := colName(len(xlsxHeaders))
	f.SetCellValue(sheet, "A1", fmt.Sprintf("Damage roster: %s", name))
	_ = f.MergeCell(sheet, "A1", fmt.Sprintf("%s1", lastCol))
	for i, h := range xlsxHeaders {
		f.SetCellValue(sheet, fmt.Sprintf("%s2", colName(i+1)), h)
	}

	headerStyleID, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return "", err
	}
	if err := f.SetCellStyle(sheet, "A1", fmt.Sprintf("%s2", lastCol), headerStyleID); err != nil {
		return "", err
	}

	bestDPS := 0.0
	for _, r := range rows {
		if r.Report.DPS > bestDPS {
			bestDPS = r.Report.DPS
		}
	}

	for rowIdx, r := range rows {
		row := rowIdx + 3
		set := func(col int, v any) {
			f.SetCellValue(sheet, fmt.Sprintf("%s%d", colName(col), row), v)
		}
		set(1, r.Item.Name)
		set(2, r.Item.QL)
		set(3, r.Report.Base.AttackTime/100)
		set(4, r.Report.Base.RechargeTime/100)
		set(5, r.Report.Base.MinDamage)
		set(6, r.Report.Base.AvgDamage)
		set(7, r.Report.Base.MaxDamage)
		set(8, r.Report.Base.CritDamage)
		set(9, r.Report.Base.BasicAttacks+r.Report.Base.Crits)
		set(10, r.Report.Base.Crits)
		set(11, r.Report.Specials.FlingShot)
		set(12, r.Report.Specials.Burst)
		set(13, r.Report.Specials.FullAuto)
		set(14, r.Report.Specials.AimedShot)
		set(15, r.Report.Specials.FastAttack)
		set(16, r.Report.Specials.Brawl)
		set(17, r.Report.Specials.SneakAttack)
		set(18, r.Report.Specials.Dimach)
		set(19, r.Report.Specials.Total)
		set(20, r.Report.Base.Avg60s)
		set(21, r.Report.Total60s)
		set(22, r.Report.DPS)
		if bestDPS > 0 {
			set(23, r.Report.DPS/bestDPS)
		}
	}

	// Percent formatting for the % of Best column: 1.0 => 100%.
	if len(rows) > 0 {
		styleID, err := f.NewStyle(&excelize.Style{NumFmt: 10})
		if err != nil {
			return "", err
		}
		pctCol := colName(len(xlsxHeaders))
		lastRow := len(rows) + 2
		if err := f.SetCellStyle(sheet, fmt.Sprintf("%s3", pctCol), fmt.Sprintf("%s%d", pctCol, lastRow), styleID); err != nil {
			return "", err
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	timestamp := time.Now().Format("20060102")
	filename := filepath.Join(dir, fmt.Sprintf("%s_damage_roster_%s.xlsx", timestamp, sanitizeName(name)))
	if err := f.SaveAs(filename); err != nil {
		return "", err
	}
	return filename, nil
}

// sanitizeName makes a profile name safe for use inside a filename.
func sanitizeName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}

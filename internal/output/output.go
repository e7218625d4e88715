// Package output renders damage rosters as console tables and spreadsheet
// exports.
package output

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rubika-tools/aocomp/internal/roster"
)

// PrintTable writes rows as an aligned text table. Speeds print in seconds,
// damage figures as whole points.
//
// Postcondition: Output ends with a newline; an empty roster prints only
// the header.
func PrintTable(w io.Writer, rows []roster.Row) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "WEAPON\tQL\tATK\tRCH\tMIN\tAVG\tMAX\tCRIT\tSPEC/60S\tTOTAL/60S\tDPS")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%d\t%.2f\t%.2f\t%.0f\t%.0f\t%.0f\t%.0f\t%.0f\t%.0f\t%.1f\n",
			r.Item.Name,
			r.Item.QL,
			r.Report.Base.AttackTime/100,
			r.Report.Base.RechargeTime/100,
			r.Report.Base.MinDamage,
			r.Report.Base.AvgDamage,
			r.Report.Base.MaxDamage,
			r.Report.Base.CritDamage,
			r.Report.Specials.Total,
			r.Report.Total60s,
			r.Report.DPS,
		)
	}
	return tw.Flush()
}

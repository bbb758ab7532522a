package static

import (
	"fmt"

	"github.com/raphi011/gw/internal/git"
	"github.com/raphi011/gw/internal/status"
	"github.com/raphi011/gw/internal/ui/styles"
)

// StatusHeaders are the column headers matching StatusTableRow.
var StatusHeaders = []string{"KIND", "PATH", "CHANGES"}

// StatusTableRow builds one status row. The CHANGES column is filled only
// when a diff was merged into the entry.
func StatusTableRow(kind status.Kind, e status.Entry) []string {
	changes := ""
	if e.Diff != nil {
		if e.Diff.IsBinary() {
			changes = styles.MutedStyle.Render("binary")
		} else {
			added, removed := e.Diff.Stats()
			changes = styles.AddedStyle.Render(fmt.Sprintf("+%d", added)) + " " +
				styles.RemovedStyle.Render(fmt.Sprintf("-%d", removed))
		}
	}
	return []string{styles.FormatKind(kind), e.Path, changes}
}

// StatusRows returns all rows of st grouped by kind in Kinds() order.
func StatusRows(st *status.Status) [][]string {
	var rows [][]string
	for _, k := range status.Kinds() {
		for _, e := range st.Get(k) {
			rows = append(rows, StatusTableRow(k, e))
		}
	}
	return rows
}

// BranchHeaders are the column headers matching BranchTableRow.
var BranchHeaders = []string{"", "BRANCH"}

// BranchTableRow builds one branch row, marking the current branch.
func BranchTableRow(b git.Branch) []string {
	switch {
	case b.Current && b.Detached:
		return []string{"*", styles.WarningStyle.Render(b.Name)}
	case b.Current:
		return []string{"*", styles.AccentStyle.Render(b.Name)}
	default:
		return []string{"", b.Name}
	}
}

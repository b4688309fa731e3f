package web

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/JonMunkholm/roster/internal/core"
	"github.com/JonMunkholm/roster/internal/member"
	"github.com/a-h/templ"
)

// dashboardView is the data rendered by the dashboard page.
type dashboardView struct {
	Members  []member.Record
	History  []core.ImportSummary
	Selected *core.ImportSummary // Run named by ?run=, if still in history
	Exported string              // Path named by ?exported=
}

// handleDashboard renders the members table, recent imports and the
// import/export forms.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	records, err := s.service.Members(r.Context())
	if err != nil {
		s.respondErrorStatus(w, r, err, http.StatusInternalServerError)
		return
	}

	view := dashboardView{
		Members:  records,
		History:  s.service.History(),
		Exported: r.URL.Query().Get("exported"),
	}
	if runID := r.URL.Query().Get("run"); runID != "" {
		if summary, ok := s.service.Run(runID); ok {
			view.Selected = &summary
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboard(view).Render(r.Context(), w); err != nil {
		s.respondErrorStatus(w, r, err, http.StatusInternalServerError)
	}
}

const pageStyle = `body{font-family:system-ui,sans-serif;margin:2rem;color:#1f2937}
table{border-collapse:collapse;width:100%;margin:1rem 0}
th,td{border:1px solid #e5e7eb;padding:.4rem .6rem;text-align:left;font-size:.9rem}
th{background:#f3f4f6}
.alert{padding:.8rem 1rem;border-radius:.4rem;margin:1rem 0;white-space:pre-wrap}
.alert-info{background:#eff6ff;border:1px solid #bfdbfe}
.alert-error{background:#fef2f2;border:1px solid #fecaca}
form{display:inline-block;margin-right:2rem}`

// dashboard renders the full page.
func dashboard(v dashboardView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder

		b.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>Member Roster</title><style>`)
		b.WriteString(pageStyle)
		b.WriteString(`</style></head><body><h1>Member Roster</h1>`)

		if v.Selected != nil {
			fmt.Fprintf(&b, `<div class="alert alert-info">%s</div>`, templ.EscapeString(v.Selected.Message()))
		}
		if v.Exported != "" {
			fmt.Fprintf(&b, `<div class="alert alert-info">Roster exported to %s</div>`, templ.EscapeString(v.Exported))
		}

		b.WriteString(`<section>`)
		b.WriteString(`<form method="post" action="/api/import" enctype="multipart/form-data">`)
		b.WriteString(`<input type="file" name="file" accept=".csv" required> <button type="submit">Import</button></form>`)
		b.WriteString(`<form method="post" action="/api/export"><button type="submit">Export to file</button></form>`)
		b.WriteString(`<a href="/api/export/download">Download CSV</a>`)
		b.WriteString(`</section>`)

		fmt.Fprintf(&b, `<h2>Members (%d)</h2>`, len(v.Members))
		writeMembersTable(&b, v.Members)

		b.WriteString(`<h2>Recent imports</h2>`)
		writeHistoryTable(&b, v.History)

		b.WriteString(`</body></html>`)

		_, err := io.WriteString(w, b.String())
		return err
	})
}

func writeMembersTable(b *strings.Builder, records []member.Record) {
	if len(records) == 0 {
		b.WriteString(`<p>No members yet. Import a roster to get started.</p>`)
		return
	}

	b.WriteString(`<table><thead><tr>`)
	for _, col := range core.Columns {
		fmt.Fprintf(b, `<th>%s</th>`, templ.EscapeString(col))
	}
	b.WriteString(`</tr></thead><tbody>`)

	for _, r := range records {
		f := r.Fields()
		b.WriteString(`<tr>`)
		for _, cell := range []string{
			f.Name, f.Year, f.StudentNumber, f.Email, f.Phone,
			f.DietaryRequirements, f.Role, strings.Join(f.Tags, ", "),
		} {
			fmt.Fprintf(b, `<td>%s</td>`, templ.EscapeString(cell))
		}
		b.WriteString(`</tr>`)
	}
	b.WriteString(`</tbody></table>`)
}

func writeHistoryTable(b *strings.Builder, runs []core.ImportSummary) {
	if len(runs) == 0 {
		b.WriteString(`<p>No imports this session.</p>`)
		return
	}

	b.WriteString(`<table><thead><tr><th>Started</th><th>File</th><th>Added</th><th>Duplicates</th><th>Rejected lines</th></tr></thead><tbody>`)
	for _, run := range runs {
		fmt.Fprintf(b, `<tr><td><a href="/?run=%s">%s</a></td><td>%s</td><td>%d</td><td>%d</td><td>%d</td></tr>`,
			templ.EscapeString(run.RunID),
			run.StartedAt.Format("2006-01-02 15:04:05"),
			templ.EscapeString(run.Path),
			run.Added, run.Duplicates, run.Rejected,
		)
	}
	b.WriteString(`</tbody></table>`)
}

// errorAlert renders a user-facing error as a standalone page.
func errorAlert(msg core.UserMessage) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>Error</title><style>%s</style></head><body>`+
				`<div class="alert alert-error"><strong>%s</strong><br>%s<br><small>Code: %s</small></div>`+
				`<a href="/">Back to roster</a></body></html>`,
			pageStyle,
			templ.EscapeString(msg.Message),
			templ.EscapeString(msg.Action),
			templ.EscapeString(msg.Code),
		)
		return err
	})
}

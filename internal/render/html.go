package render

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/fyrsmithlabs/projectdeck/internal/format"
)

// TableBodyHTML renders the table rows of v as markup. Every user-controlled
// value is escaped, including the code link in attribute position.
func TableBodyHTML(v View) string {
	var b strings.Builder
	for _, row := range v.Rows {
		writeRow(&b, row)
	}
	return b.String()
}

func writeRow(b *strings.Builder, row Row) {
	id := url.PathEscape(row.ID.String())

	b.WriteString("<tr>")
	fmt.Fprintf(b, "<td>%s</td>", format.EscapeHTML(row.Name))
	fmt.Fprintf(b, `<td class="command">%s</td>`, format.EscapeHTML(row.Command))

	fmt.Fprintf(b, `<td><span class="status-badge %s">`, format.EscapeHTML(row.StatusClass))
	if icon := row.Icon.HTML(); icon != "" {
		b.WriteString(icon)
		b.WriteString(" ")
	}
	b.WriteString(format.EscapeHTML(row.Status.String()))
	b.WriteString("</span></td>")

	fmt.Fprintf(b, "<td>%s</td>", format.EscapeHTML(row.Created))

	b.WriteString(`<td class="actions">`)
	if row.CodeURL != "" {
		fmt.Fprintf(b, `<a class="btn btn-code" href="%s" target="_blank" rel="noopener">View Code</a>`,
			format.EscapeHTML(SafeHref(row.CodeURL)))
	}
	if row.CanEdit {
		fmt.Fprintf(b, `<a class="btn btn-edit" href="/projects/%s/edit">Edit</a>`, format.EscapeHTML(id))
	}
	if row.CanDelete {
		fmt.Fprintf(b, `<a class="btn btn-delete" href="/projects/%s/delete">Delete</a>`, format.EscapeHTML(id))
	}
	b.WriteString("</td></tr>")
}

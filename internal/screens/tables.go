package screens

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jask/petrus/internal/database/repository"
	"github.com/jask/petrus/internal/terminal"
)

const timeLayout = "2006-01-02 15:04"

func didTable(w io.Writer, page []repository.DID, first int) {
	rows := make([][]string, 0, len(page))
	for i, d := range page {
		rows = append(rows, []string{
			strconv.Itoa(first + i),
			d.Name,
			d.CreatedAt.Local().Format(timeLayout),
			d.DID,
			strconv.FormatInt(d.ID, 10),
		})
	}
	fmt.Fprintln(w, terminal.RenderTable([]string{"Row", "Name", "Created", "DID", "Id"}, rows))
}

func vcTable(w io.Writer, page []repository.VC, first int) {
	rows := make([][]string, 0, len(page))
	for i, v := range page {
		sd := "no"
		if v.SD {
			sd = "yes"
		}
		rows = append(rows, []string{
			strconv.Itoa(first + i),
			v.Holder.Name,
			v.Issuer.Name,
			v.Type,
			sd,
			terminal.Abbreviate(v.Token, 24),
			v.CreatedAt.Local().Format(timeLayout),
			strconv.FormatInt(v.ID, 10),
		})
	}
	fmt.Fprintln(w, terminal.RenderTable([]string{"Row", "Holder", "Issuer", "Type", "SD", "JWT", "Created", "Id"}, rows))
}

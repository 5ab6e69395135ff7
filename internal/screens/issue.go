package screens

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/jask/petrus/internal/apperr"
	"github.com/jask/petrus/internal/database/repository"
	"github.com/jask/petrus/internal/identity"
	"github.com/jask/petrus/internal/templates"
	"github.com/jask/petrus/internal/terminal"
	"github.com/jask/petrus/internal/widgets"
)

// pickDID shows dids in a selectable table and returns the chosen row.
func (c *Context) pickDID(title, prompt string, dids []repository.DID) (repository.DID, error) {
	if len(dids) == 0 {
		return repository.DID{}, errNoDIDs
	}
	sel := &widgets.Selector[repository.DID]{
		Items:      dids,
		PageSize:   c.didPageSize(),
		Render:     didTable,
		Selectable: true,
		Header: func(w io.Writer) {
			writeTitle(w, title)
			fmt.Fprintln(w, prompt)
		},
	}
	n, err := sel.Run(c.term())
	if err != nil {
		return repository.DID{}, err
	}
	return dids[n-1], nil
}

// pickVC shows vcs in a selectable table and returns the chosen row.
func (c *Context) pickVC(title, prompt string, vcs []repository.VC) (repository.VC, error) {
	if len(vcs) == 0 {
		return repository.VC{}, errNoVCs
	}
	sel := &widgets.Selector[repository.VC]{
		Items:      vcs,
		PageSize:   c.vcPageSize(),
		Render:     vcTable,
		Selectable: true,
		Header: func(w io.Writer) {
			writeTitle(w, title)
			fmt.Fprintln(w, prompt)
		},
	}
	n, err := sel.Run(c.term())
	if err != nil {
		return repository.VC{}, err
	}
	return vcs[n-1], nil
}

// parties is a confirmed issuer and holder with their resolved documents.
type parties struct {
	Issuer    repository.DID
	Holder    repository.DID
	IssuerDoc identity.Document
	HolderDoc identity.Document
}

// selectParties picks the issuer and the holder and loops until the user
// confirms the pair. Typing issuer or holder picks only that side again.
func (c *Context) selectParties(ctx context.Context, title string) (parties, error) {
	dids, err := c.Store.StoredDIDs(ctx)
	if err != nil {
		return parties{}, err
	}
	if len(dids) == 0 {
		return parties{}, errNoDIDs
	}
	var p parties
	again := map[string]bool{"issuer": true, "holder": true}
	for {
		if again["issuer"] {
			if p.Issuer, err = c.pickDID(title, "Select the DID row to use as the issuer:", dids); err != nil {
				return parties{}, err
			}
		}
		if again["holder"] {
			if p.Holder, err = c.pickDID(title, "Select the DID row to use as the holder:", dids); err != nil {
				return parties{}, err
			}
		}
		confirm := &widgets.Confirm{
			Show: func(w io.Writer) {
				c.Term.Clear()
				writeTitle(w, title)
				fmt.Fprintf(w, "Issuer DID: %s %s\n", terminal.Accent(p.Issuer.Name), p.Issuer.DID)
				fmt.Fprintf(w, "Holder DID: %s %s\n", terminal.Accent(p.Holder.Name), p.Holder.DID)
			},
			Tokens: map[string]widgets.Outcome{
				"back":   widgets.Cancelled,
				"issuer": widgets.Reselecting,
				"holder": widgets.Reselecting,
			},
		}
		d, err := confirm.Run(c.term())
		if err != nil {
			return parties{}, err
		}
		if d.Outcome == widgets.Cancelled {
			return parties{}, apperr.Cancelled
		}
		if d.Outcome == widgets.Confirmed {
			break
		}
		again = map[string]bool{d.Token: true}
	}
	if p.IssuerDoc, err = c.Resolver.Resolve(ctx, p.Issuer.DID); err != nil {
		return parties{}, err
	}
	if p.HolderDoc, err = c.Resolver.Resolve(ctx, p.Holder.DID); err != nil {
		return parties{}, err
	}
	return p, nil
}

// chooseSubject picks a template and returns its claims, optionally after the
// user edited a copy of it.
func (c *Context) chooseSubject(ctx context.Context, title string) (templates.Template, map[string]any, error) {
	list, err := c.Templates.List()
	if err != nil {
		return templates.Template{}, nil, err
	}
	if len(list) == 0 {
		return templates.Template{}, nil, errNoTemplates
	}
	sel := &widgets.Selector[templates.Template]{
		Items:      list,
		PageSize:   c.didPageSize(),
		Selectable: true,
		Header: func(w io.Writer) {
			writeTitle(w, title)
			fmt.Fprintln(w, "Select the credential template:")
		},
		Render: func(w io.Writer, page []templates.Template, first int) {
			rows := make([][]string, 0, len(page))
			for i, t := range page {
				rows = append(rows, []string{strconv.Itoa(first + i), t.Title(), t.CredentialType()})
			}
			fmt.Fprintln(w, terminal.RenderTable([]string{"Row", "Template", "Type"}, rows))
		},
	}
	n, err := sel.Run(c.term())
	if err != nil {
		return templates.Template{}, nil, err
	}
	tpl := list[n-1]

	edit, err := c.askYesNo(fmt.Sprintf("Do you want to edit the %s template first?", tpl.Title()))
	if err != nil {
		return templates.Template{}, nil, err
	}
	if !edit {
		subject, err := c.Templates.Load(tpl.Path)
		return tpl, subject, err
	}
	subject, err := c.editTemplate(ctx, tpl)
	return tpl, subject, err
}

func (c *Context) editTemplate(ctx context.Context, tpl templates.Template) (map[string]any, error) {
	editors := c.Editors.Available()
	if len(editors) == 0 {
		return nil, apperr.New(apperr.CodeNotFound, "no editor found, install one of nvim, vim, nano, vi or code")
	}
	editor := editors[0]
	if len(editors) > 1 {
		fmt.Fprintln(c.Term, "Choose an editor:")
		for i, e := range editors {
			fmt.Fprintf(c.Term, "%s %s\n", terminal.Accent(fmt.Sprintf("%d.", i+1)), e)
		}
		n, err := widgets.ReadNumber(c.term(), 1, len(editors))
		if err != nil {
			return nil, err
		}
		editor = editors[n-1]
	}
	path, cleanup, err := c.Templates.Scratch(tpl)
	if err != nil {
		return nil, err
	}
	defer cleanup()
	if err := c.Editors.Edit(ctx, editor, path); err != nil {
		return nil, err
	}
	return c.Templates.Load(path)
}

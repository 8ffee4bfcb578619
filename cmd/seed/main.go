package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/jeremiahbrem/biztime/internal/app"
	"github.com/jeremiahbrem/biztime/internal/pkg/grouping"
	"github.com/jeremiahbrem/biztime/internal/platform/apierr"
	"github.com/jeremiahbrem/biztime/internal/services"
)

type seedCompany struct {
	code, name, description string
	invoices                []float64
}

var companies = []seedCompany{
	{code: "ibm", name: "IBM", description: "Big blue.", invoices: []float64{400}},
	{code: "apple", name: "Apple Computer", description: "Maker of OSX.", invoices: []float64{100, 200, 300}},
}

// memberships lists each industry with its member companies, in the shape the
// industries listing returns. Flattened, it is the association rows to insert.
var memberships = []grouping.Group{
	{Key: "tech", Name: "Technology", Children: []string{"ibm", "apple"}},
	{Key: "ent", Name: "Entertainment", Children: []string{"apple"}},
	{Key: "bus", Name: "Business Services"},
}

// conflict reports whether err is a 409, which the seeder treats as already
// present.
func conflict(err error) bool {
	var ae *apierr.Error
	return errors.As(err, &ae) && ae.Status == http.StatusConflict
}

func main() {
	var dryRun bool
	var withInvoices bool
	flag.BoolVar(&dryRun, "dry-run", false, "print planned inserts without writing")
	flag.BoolVar(&withInvoices, "invoices", true, "also create sample invoices")
	flag.Parse()

	if dryRun {
		for _, ind := range memberships {
			fmt.Printf("industry %s (%s)\n", ind.Key, ind.Name)
		}
		for _, c := range companies {
			fmt.Printf("company %s (%s) invoices=%v\n", c.code, c.name, c.invoices)
		}
		for _, row := range grouping.Flatten(memberships) {
			fmt.Printf("associate %s with %s\n", row.Child, row.Key)
		}
		return
	}

	ctx := context.Background()
	application, err := app.New(ctx)
	if err != nil {
		fmt.Printf("init app: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()
	svc := application.Services

	for _, ind := range memberships {
		if _, err := svc.Industry.Create(ctx, ind.Key, ind.Name); err != nil && !conflict(err) {
			fmt.Printf("create industry %s: %v\n", ind.Key, err)
			os.Exit(1)
		}
	}

	created := 0
	for _, c := range companies {
		_, err := svc.Company.Create(ctx, services.CreateCompanyInput{Code: c.code, Name: c.name, Description: c.description})
		if conflict(err) {
			fmt.Printf("company %s already present, skipping\n", c.code)
			continue
		}
		if err != nil {
			fmt.Printf("create company %s: %v\n", c.code, err)
			os.Exit(1)
		}
		created++
		if !withInvoices {
			continue
		}
		for _, amt := range c.invoices {
			if _, err := svc.Invoice.Create(ctx, c.code, amt); err != nil {
				fmt.Printf("create invoice for %s: %v\n", c.code, err)
				os.Exit(1)
			}
		}
	}

	for _, row := range grouping.Flatten(memberships) {
		if _, err := svc.Industry.Associate(ctx, row.Key, row.Child); err != nil && !conflict(err) {
			fmt.Printf("associate %s with %s: %v\n", row.Child, row.Key, err)
			os.Exit(1)
		}
	}
	fmt.Printf("seeded %d companies\n", created)
}

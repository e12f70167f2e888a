package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/fivetwenty-io/fic-client/pkg/fic"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// supplierRow is the flat rendering of a supplier for CLI output.
type supplierRow struct {
	ID        string `json:"id"         yaml:"id"`
	Name      string `json:"name"       yaml:"name"`
	Mail      string `json:"mail"       yaml:"mail"`
	Phone     string `json:"phone"      yaml:"phone"`
	VATNumber string `json:"vat_number" yaml:"vat_number"`
}

func supplierToRow(supplier *fic.Supplier) supplierRow {
	return supplierRow{
		ID:        supplier.ID,
		Name:      supplier.Name,
		Mail:      supplier.Mail,
		Phone:     supplier.Phone(),
		VATNumber: supplier.VATNumber,
	}
}

// NewSuppliersCommand creates the suppliers command group.
func NewSuppliersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "suppliers",
		Aliases: []string{"supplier"},
		Short:   "Manage the supplier registry",
	}

	cmd.AddCommand(newSuppliersListCommand())
	cmd.AddCommand(newSuppliersGetCommand())
	cmd.AddCommand(newSuppliersDeleteCommand())

	return cmd
}

func newSuppliersListCommand() *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List suppliers",
		Long:  "List registry suppliers, fetching every page",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuppliersListCommand(query)
		},
	}

	cmd.Flags().StringVar(&query, "query", "", "filter by name, fiscal code or VAT number")

	return cmd
}

func runSuppliersListCommand(query string) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	filters := fic.Wire{}
	if query != "" {
		filters["filtro"] = query
	}

	suppliers, err := client.Suppliers().List(filters).All(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list suppliers: %w", err)
	}

	rows := make([]supplierRow, 0, len(suppliers))
	for _, supplier := range suppliers {
		rows = append(rows, supplierToRow(supplier))
	}

	switch viper.GetString("output") {
	case OutputFormatJSON:
		return StandardJSONRenderer(rows)
	case OutputFormatYAML:
		return StandardYAMLRenderer(rows)
	default:
		return renderSupplierTable(rows)
	}
}

func renderSupplierTable(rows []supplierRow) error {
	if len(rows) == 0 {
		_, _ = os.Stdout.WriteString("No suppliers found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Name", "Mail", "Phone", "VAT Number")

	for _, row := range rows {
		_ = table.Append(row.ID, row.Name, row.Mail, row.Phone, row.VATNumber)
	}

	_ = table.Render()

	return nil
}

func newSuppliersGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show one supplier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuppliersGetCommand(args[0])
		},
	}
}

func runSuppliersGetCommand(id string) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	supplier, err := client.Suppliers().Get(context.Background(), id)
	if err != nil {
		return fmt.Errorf("failed to get supplier: %w", err)
	}

	switch viper.GetString("output") {
	case OutputFormatJSON:
		return StandardJSONRenderer(supplierToRow(supplier))
	case OutputFormatYAML:
		return StandardYAMLRenderer(supplierToRow(supplier))
	default:
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Field", "Value")
		_ = table.Append("ID", supplier.ID)
		_ = table.Append("Name", supplier.Name)
		_ = table.Append("Mail", supplier.Mail)
		_ = table.Append("Phone", supplier.Phone())
		_ = table.Append("Fax", supplier.Fax())
		_ = table.Append("VAT Number", supplier.VATNumber)
		_ = table.Append("Fiscal Code", supplier.FiscalCode)
		_ = table.Append("Address", supplier.Address.Street)
		_ = table.Append("City", supplier.Address.City)
		_ = table.Append("Country", supplier.Country)
		_ = table.Render()

		return nil
	}
}

func newSuppliersDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a supplier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuppliersDeleteCommand(args[0])
		},
	}
}

func runSuppliersDeleteCommand(id string) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	if err := client.Suppliers().Delete(context.Background(), id); err != nil {
		return fmt.Errorf("failed to delete supplier: %w", err)
	}

	fmt.Println("Supplier deleted")

	return nil
}

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

// customerRow is the flat rendering of a customer for CLI output.
type customerRow struct {
	ID        string `json:"id"         yaml:"id"`
	Name      string `json:"name"       yaml:"name"`
	Mail      string `json:"mail"       yaml:"mail"`
	Phone     string `json:"phone"      yaml:"phone"`
	VATNumber string `json:"vat_number" yaml:"vat_number"`
}

func customerToRow(customer *fic.Customer) customerRow {
	return customerRow{
		ID:        customer.ID,
		Name:      customer.Name,
		Mail:      customer.Mail,
		Phone:     customer.Phone(),
		VATNumber: customer.VATNumber,
	}
}

// NewCustomersCommand creates the customers command group.
func NewCustomersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "customers",
		Aliases: []string{"customer"},
		Short:   "Manage the customer registry",
	}

	cmd.AddCommand(newCustomersListCommand())
	cmd.AddCommand(newCustomersGetCommand())
	cmd.AddCommand(newCustomersDeleteCommand())

	return cmd
}

func newCustomersListCommand() *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List customers",
		Long:  "List registry customers, fetching every page",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCustomersListCommand(query)
		},
	}

	cmd.Flags().StringVar(&query, "query", "", "filter by name, fiscal code or VAT number")

	return cmd
}

func runCustomersListCommand(query string) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	filters := fic.Wire{}
	if query != "" {
		filters["filtro"] = query
	}

	customers, err := client.Customers().List(filters).All(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list customers: %w", err)
	}

	rows := make([]customerRow, 0, len(customers))
	for _, customer := range customers {
		rows = append(rows, customerToRow(customer))
	}

	switch viper.GetString("output") {
	case OutputFormatJSON:
		return StandardJSONRenderer(rows)
	case OutputFormatYAML:
		return StandardYAMLRenderer(rows)
	default:
		return renderCustomerTable(rows)
	}
}

func renderCustomerTable(rows []customerRow) error {
	if len(rows) == 0 {
		_, _ = os.Stdout.WriteString("No customers found\n")

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

func newCustomersGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show one customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCustomersGetCommand(args[0])
		},
	}
}

func runCustomersGetCommand(id string) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	customer, err := client.Customers().Get(context.Background(), id)
	if err != nil {
		return fmt.Errorf("failed to get customer: %w", err)
	}

	switch viper.GetString("output") {
	case OutputFormatJSON:
		return StandardJSONRenderer(customerToRow(customer))
	case OutputFormatYAML:
		return StandardYAMLRenderer(customerToRow(customer))
	default:
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Field", "Value")
		_ = table.Append("ID", customer.ID)
		_ = table.Append("Name", customer.Name)
		_ = table.Append("Mail", customer.Mail)
		_ = table.Append("Phone", customer.Phone())
		_ = table.Append("Fax", customer.Fax())
		_ = table.Append("VAT Number", customer.VATNumber)
		_ = table.Append("Fiscal Code", customer.FiscalCode)
		_ = table.Append("Address", customer.Address.Street)
		_ = table.Append("City", customer.Address.City)
		_ = table.Append("Country", customer.Country)
		_ = table.Append("Payment Terms", fmt.Sprintf("%d days", customer.PaymentTerms))
		_ = table.Render()

		return nil
	}
}

func newCustomersDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCustomersDeleteCommand(args[0])
		},
	}
}

func runCustomersDeleteCommand(id string) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	if err := client.Customers().Delete(context.Background(), id); err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	fmt.Println("Customer deleted")

	return nil
}

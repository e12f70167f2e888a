package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/fivetwenty-io/fic-client/pkg/fic"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// purchaseRow is the flat rendering of a purchase for CLI output.
type purchaseRow struct {
	ID    string `json:"id"    yaml:"id"`
	Name  string `json:"name"  yaml:"name"`
	Date  string `json:"date"  yaml:"date"`
	Total string `json:"total" yaml:"total"`
	Paid  bool   `json:"paid"  yaml:"paid"`
}

func purchaseToRow(purchase *fic.Purchase) purchaseRow {
	total := purchase.TotalAmount
	if total == "" {
		total = NotAvailable
	}

	return purchaseRow{
		ID:    purchase.ID,
		Name:  purchase.Name,
		Date:  dateOrNA(fic.FormatWireDate(purchase.Date)),
		Total: total,
		Paid:  purchase.Paid,
	}
}

// NewPurchasesCommand creates the purchases command group.
func NewPurchasesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "purchases",
		Aliases: []string{"purchase"},
		Short:   "Manage the purchase register",
	}

	cmd.AddCommand(newPurchasesListCommand())
	cmd.AddCommand(newPurchasesGetCommand())
	cmd.AddCommand(newPurchasesDeleteCommand())

	return cmd
}

func newPurchasesListCommand() *cobra.Command {
	var (
		year  int
		query string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List purchases",
		Long:  "List register purchases, fetching every page",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPurchasesListCommand(year, query)
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "filter by year")
	cmd.Flags().StringVar(&query, "query", "", "filter by name, supplier or amount")

	return cmd
}

func runPurchasesListCommand(year int, query string) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	filters := fic.Wire{}
	if year > 0 {
		filters["anno"] = year
	}

	if query != "" {
		filters["filtro"] = query
	}

	purchases, err := client.Purchases().List(filters).All(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list purchases: %w", err)
	}

	rows := make([]purchaseRow, 0, len(purchases))
	for _, purchase := range purchases {
		rows = append(rows, purchaseToRow(purchase))
	}

	switch viper.GetString("output") {
	case OutputFormatJSON:
		return StandardJSONRenderer(rows)
	case OutputFormatYAML:
		return StandardYAMLRenderer(rows)
	default:
		return renderPurchaseTable(rows)
	}
}

func renderPurchaseTable(rows []purchaseRow) error {
	if len(rows) == 0 {
		_, _ = os.Stdout.WriteString("No purchases found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Name", "Date", "Total", "Paid")

	for _, row := range rows {
		_ = table.Append(row.ID, row.Name, row.Date, row.Total, strconv.FormatBool(row.Paid))
	}

	_ = table.Render()

	return nil
}

func newPurchasesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show one purchase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPurchasesGetCommand(args[0])
		},
	}
}

func runPurchasesGetCommand(id string) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	purchase, err := client.Purchases().Get(context.Background(), id)
	if err != nil {
		return fmt.Errorf("failed to get purchase: %w", err)
	}

	switch viper.GetString("output") {
	case OutputFormatJSON:
		return StandardJSONRenderer(purchaseToRow(purchase))
	case OutputFormatYAML:
		return StandardYAMLRenderer(purchaseToRow(purchase))
	default:
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Field", "Value")
		_ = table.Append("ID", purchase.ID)
		_ = table.Append("Name", purchase.Name)
		_ = table.Append("Supplier ID", purchase.SupplierID)
		_ = table.Append("Invoice Number", purchase.InvoiceNumber)
		_ = table.Append("Date", dateOrNA(fic.FormatWireDate(purchase.Date)))
		_ = table.Append("Category", purchase.Category)
		_ = table.Append("Net", purchase.NetAmount)
		_ = table.Append("VAT", purchase.VATAmount)
		_ = table.Append("Total", purchase.TotalAmount)
		_ = table.Append("Paid", strconv.FormatBool(purchase.Paid))
		_ = table.Render()

		return nil
	}
}

func newPurchasesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a purchase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPurchasesDeleteCommand(args[0])
		},
	}
}

func runPurchasesDeleteCommand(id string) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	if err := client.Purchases().Delete(context.Background(), id); err != nil {
		return fmt.Errorf("failed to delete purchase: %w", err)
	}

	fmt.Println("Purchase deleted")

	return nil
}

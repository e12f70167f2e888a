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

// documentRow is the flat rendering of a document for CLI output.
type documentRow struct {
	ID      string `json:"id"      yaml:"id"`
	Token   string `json:"token"   yaml:"token"`
	Number  string `json:"number"  yaml:"number"`
	Date    string `json:"date"    yaml:"date"`
	Subject string `json:"subject" yaml:"subject"`
	Total   string `json:"total"   yaml:"total"`
}

func documentToRow(document *fic.Document) documentRow {
	return documentRow{
		ID:      document.ID,
		Token:   document.Token,
		Number:  document.Number,
		Date:    dateOrNA(fic.FormatWireDate(document.Date)),
		Subject: document.Name,
		Total:   moneyOrNA(document.GrossAmount()),
	}
}

// NewDocumentsCommand creates the documents command group.
func NewDocumentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "documents",
		Aliases: []string{"docs", "doc"},
		Short:   "Manage issued documents",
		Long:    "List, inspect and delete issued documents of any variant: invoices, proforma, orders, quotations, receipts, work reports, credit notes, supplier orders and transport documents",
	}

	cmd.AddCommand(newDocumentsListCommand())
	cmd.AddCommand(newDocumentsGetCommand())
	cmd.AddCommand(newDocumentsDeleteCommand())

	return cmd
}

func documentTypeFlag(cmd *cobra.Command, docType *string) {
	cmd.Flags().StringVarP(docType, "type", "t", "fatture", "document variant (fatture, proforma, ordini, preventivi, ricevute, rapporti, ndc, ordforn, ddt)")
}

func newDocumentsListCommand() *cobra.Command {
	var (
		docType string
		year    int
		page    int
		query   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List documents",
		Long:  "List issued documents of one variant, fetching every page",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDocumentsListCommand(docType, year, page, query)
		},
	}

	documentTypeFlag(cmd, &docType)
	cmd.Flags().IntVar(&year, "year", 0, "filter by year")
	cmd.Flags().IntVar(&page, "page", 0, "start listing from this page")
	cmd.Flags().StringVar(&query, "query", "", "filter by number, subject name or amount")

	return cmd
}

func runDocumentsListCommand(docType string, year, page int, query string) error {
	parsed, err := fic.ParseDocumentType(docType)
	if err != nil {
		return err
	}

	client, err := CreateClient()
	if err != nil {
		return err
	}

	filters := fic.Wire{}
	if year > 0 {
		filters["anno"] = year
	}

	if page > 0 {
		filters["pagina"] = page
	}

	if query != "" {
		filters["filtro"] = query
	}

	list, err := client.Documents(parsed).List(filters)
	if err != nil {
		return err
	}

	documents, err := list.All(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	rows := make([]documentRow, 0, len(documents))
	for _, document := range documents {
		rows = append(rows, documentToRow(document))
	}

	switch viper.GetString("output") {
	case OutputFormatJSON:
		return StandardJSONRenderer(rows)
	case OutputFormatYAML:
		return StandardYAMLRenderer(rows)
	default:
		return renderDocumentTable(rows)
	}
}

func renderDocumentTable(rows []documentRow) error {
	if len(rows) == 0 {
		_, _ = os.Stdout.WriteString("No documents found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Token", "Number", "Date", "Subject", "Total")

	for _, row := range rows {
		_ = table.Append(row.ID, row.Token, row.Number, row.Date, row.Subject, row.Total)
	}

	_ = table.Render()

	return nil
}

func newDocumentsGetCommand() *cobra.Command {
	var docType string

	cmd := &cobra.Command{
		Use:   "get TOKEN",
		Short: "Show one document",
		Long:  "Fetch the full details of one document by its permanent token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDocumentsGetCommand(docType, args[0])
		},
	}

	documentTypeFlag(cmd, &docType)

	return cmd
}

func runDocumentsGetCommand(docType, token string) error {
	parsed, err := fic.ParseDocumentType(docType)
	if err != nil {
		return err
	}

	client, err := CreateClient()
	if err != nil {
		return err
	}

	document, err := client.Documents(parsed).Get(context.Background(), token)
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	row := documentToRow(document)

	switch viper.GetString("output") {
	case OutputFormatJSON:
		return StandardJSONRenderer(row)
	case OutputFormatYAML:
		return StandardYAMLRenderer(row)
	default:
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Field", "Value")
		_ = table.Append("ID", row.ID)
		_ = table.Append("Token", row.Token)
		_ = table.Append("Number", row.Number)
		_ = table.Append("Date", row.Date)
		_ = table.Append("Subject", row.Subject)
		_ = table.Append("Net", moneyOrNA(document.NetAmount()))
		_ = table.Append("VAT", moneyOrNA(document.VATAmount()))
		_ = table.Append("Total", row.Total)
		_ = table.Append("Lines", fmt.Sprintf("%d", len(document.Goods)))
		_ = table.Render()

		return nil
	}
}

func newDocumentsDeleteCommand() *cobra.Command {
	var docType string

	cmd := &cobra.Command{
		Use:   "delete TOKEN",
		Short: "Delete a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDocumentsDeleteCommand(docType, args[0])
		},
	}

	documentTypeFlag(cmd, &docType)

	return cmd
}

func runDocumentsDeleteCommand(docType, token string) error {
	parsed, err := fic.ParseDocumentType(docType)
	if err != nil {
		return err
	}

	client, err := CreateClient()
	if err != nil {
		return err
	}

	if err := client.Documents(parsed).Delete(context.Background(), token); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	fmt.Println("Document deleted")

	return nil
}

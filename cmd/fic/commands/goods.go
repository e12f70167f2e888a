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

// goodRow is the flat rendering of a catalog entry for CLI output.
type goodRow struct {
	ID       string `json:"id"        yaml:"id"`
	Code     string `json:"code"      yaml:"code"`
	Name     string `json:"name"      yaml:"name"`
	NetPrice string `json:"net_price" yaml:"net_price"`
	Category string `json:"category"  yaml:"category"`
}

func goodToRow(good *fic.Good) goodRow {
	return goodRow{
		ID:       good.ID,
		Code:     good.Code,
		Name:     good.Name,
		NetPrice: moneyOrNA(good.NetPrice),
		Category: good.Category,
	}
}

// NewGoodsCommand creates the goods command group.
func NewGoodsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "goods",
		Aliases: []string{"good", "products"},
		Short:   "Manage the product catalog",
	}

	cmd.AddCommand(newGoodsListCommand())
	cmd.AddCommand(newGoodsGetCommand())
	cmd.AddCommand(newGoodsDeleteCommand())

	return cmd
}

func newGoodsListCommand() *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog entries",
		Long:  "List the product catalog, fetching every page",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGoodsListCommand(query)
		},
	}

	cmd.Flags().StringVar(&query, "query", "", "filter by code or name")

	return cmd
}

func runGoodsListCommand(query string) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	filters := fic.Wire{}
	if query != "" {
		filters["filtro"] = query
	}

	goods, err := client.Goods().List(filters).All(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list goods: %w", err)
	}

	rows := make([]goodRow, 0, len(goods))
	for _, good := range goods {
		rows = append(rows, goodToRow(good))
	}

	switch viper.GetString("output") {
	case OutputFormatJSON:
		return StandardJSONRenderer(rows)
	case OutputFormatYAML:
		return StandardYAMLRenderer(rows)
	default:
		return renderGoodTable(rows)
	}
}

func renderGoodTable(rows []goodRow) error {
	if len(rows) == 0 {
		_, _ = os.Stdout.WriteString("No goods found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Code", "Name", "Net Price", "Category")

	for _, row := range rows {
		_ = table.Append(row.ID, row.Code, row.Name, row.NetPrice, row.Category)
	}

	_ = table.Render()

	return nil
}

func newGoodsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show one catalog entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGoodsGetCommand(args[0])
		},
	}
}

func runGoodsGetCommand(id string) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	good, err := client.Goods().Get(context.Background(), id)
	if err != nil {
		return fmt.Errorf("failed to get good: %w", err)
	}

	switch viper.GetString("output") {
	case OutputFormatJSON:
		return StandardJSONRenderer(goodToRow(good))
	case OutputFormatYAML:
		return StandardYAMLRenderer(goodToRow(good))
	default:
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Field", "Value")
		_ = table.Append("ID", good.ID)
		_ = table.Append("Code", good.Code)
		_ = table.Append("Name", good.Name)
		_ = table.Append("Description", good.Description)
		_ = table.Append("Unit", good.UnitOfMeasure)
		_ = table.Append("Net Price", moneyOrNA(good.NetPrice))
		_ = table.Append("Gross Price", moneyOrNA(good.GrossPrice))
		_ = table.Append("Category", good.Category)
		_ = table.Render()

		return nil
	}
}

func newGoodsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a catalog entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGoodsDeleteCommand(args[0])
		},
	}
}

func runGoodsDeleteCommand(id string) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	if err := client.Goods().Delete(context.Background(), id); err != nil {
		return fmt.Errorf("failed to delete good: %w", err)
	}

	fmt.Println("Good deleted")

	return nil
}

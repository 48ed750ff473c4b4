package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/gitlab-client/internal/constants"
	"github.com/fivetwenty-io/gitlab-client/pkg/gitlab"
	"github.com/fivetwenty-io/gitlab-client/pkg/glclient"
)

const (
	// JSON formatting.
	defaultJSONIndent = 2

	// Columns left for fixed-width fields when a title column is shrunk.
	reservedColumns = 60
	minTitleWidth   = 20
)

// createClient builds a client from the merged flag, environment and config
// file settings.
func createClient(ctx context.Context) (gitlab.Client, error) {
	hostname := viper.GetString("api")
	if hostname == "" {
		hostname = constants.DefaultHostname
	}

	config := &gitlab.Config{
		BaseURL:         hostname,
		Token:           viper.GetString("token"),
		TokenType:       gitlab.TokenType(viper.GetString("token-type")),
		HTTPTimeout:     constants.DefaultHTTPTimeout,
		ResolvePageSize: viper.GetInt("resolve-page-size"),
		SkipTLSVerify:   viper.GetBool("skip-ssl-validation"),
		UserAgent:       "glapi",
	}

	if retries := viper.GetInt("retries"); retries > 0 {
		config.RetryMax = retries
		config.RetryWaitMin = constants.DefaultRetryWaitMin
		config.RetryWaitMax = constants.DefaultRetryWaitMax
	}

	if viper.GetBool("verbose") {
		config.Logger = newStderrLogger(os.Stderr)
		config.Debug = true
	}

	client, err := glclient.New(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// listFlags selects between the server's default page, a single page and
// every page.
type listFlags struct {
	all     bool
	page    int
	perPage int
}

func (f *listFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.all, "all", false, "fetch all pages")
	cmd.Flags().IntVar(&f.page, "page", 0, "page to fetch (1-based)")
	cmd.Flags().IntVar(&f.perPage, "per-page", 0, "results per page")
}

func fetchList[T any](ctx context.Context, lister gitlab.Lister[T], flags listFlags) ([]T, error) {
	switch {
	case flags.all:
		options := gitlab.DefaultPaginationOptions()
		if flags.perPage > 0 {
			options.PageSize = flags.perPage
		}

		return gitlab.FetchAll(ctx, func(int) gitlab.Lister[T] { return lister }, options)
	case flags.page > 0 || flags.perPage > 0:
		page := max(flags.page, constants.FirstPage)

		perPage := flags.perPage
		if perPage < 1 {
			perPage = constants.DefaultResolvePageSize
		}

		return lister.ListPaginated(ctx, page, perPage)
	default:
		return lister.List(ctx)
	}
}

// render writes data as JSON or YAML, or calls table for the table format.
func render[T any](cmd *cobra.Command, data T, table func(out io.Writer) error) error {
	out := cmd.OutOrStdout()

	output := viper.GetString("output")
	switch output {
	case constants.FormatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")

		return encoder.Encode(data)
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(out)
		encoder.SetIndent(defaultJSONIndent)

		err := encoder.Encode(data)
		if err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}

		return encoder.Close()
	case constants.FormatTable, "":
		return table(out)
	default:
		return fmt.Errorf("%w: %q", constants.ErrInvalidOutputFormat, output)
	}
}

func newTable(out io.Writer, headers ...any) *tablewriter.Table {
	table := tablewriter.NewWriter(out)
	table.Header(headers...)

	return table
}

func renderTable(table *tablewriter.Table) error {
	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// renderProperties prints a two column Property/Value table.
func renderProperties(out io.Writer, rows [][2]string) error {
	table := newTable(out, "Property", "Value")

	for _, row := range rows {
		_ = table.Append(row[0], row[1])
	}

	return renderTable(table)
}

func writeEmpty(out io.Writer, what string) error {
	_, err := fmt.Fprintf(out, "No %s found\n", what)

	return err
}

// titleWidth is the width titles are cut to when stdout is a terminal; 0
// means no limit.
func titleWidth() int {
	fd := int(os.Stdout.Fd()) // #nosec G115 -- file descriptors fit in int
	if !term.IsTerminal(fd) {
		return 0
	}

	width, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}

	return max(width-reservedColumns, minTitleWidth)
}

func truncate(text string, width int) string {
	runes := []rune(text)
	if width <= 0 || len(runes) <= width {
		return text
	}

	return string(runes[:width-1]) + "…"
}

func formatTime(t *time.Time) string {
	if t == nil {
		return constants.NotAvailable
	}

	return t.Format(constants.DateFormat)
}

func formatOptional(value string) string {
	if value == "" {
		return constants.NotAvailable
	}

	return value
}

func parseID(kind, arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: %s %q", constants.ErrInvalidID, kind, arg)
	}

	return id, nil
}

// parseEnumFlag parses a non-empty flag value; set is false when the flag
// was left empty.
func parseEnumFlag[E any](value string, parse func(string) (E, error), kind error) (E, bool, error) {
	var zero E

	if value == "" {
		return zero, false, nil
	}

	parsed, err := parse(value)
	if err != nil {
		return zero, false, fmt.Errorf("%w: %w", kind, err)
	}

	return parsed, true, nil
}

// orderingFlags holds the --order-by and --sort values shared by listing
// commands.
type orderingFlags struct {
	orderBy string
	sort    string
}

func (f *orderingFlags) register(cmd *cobra.Command, orderByHelp string) {
	cmd.Flags().StringVar(&f.orderBy, "order-by", "", orderByHelp)
	cmd.Flags().StringVar(&f.sort, "sort", "", "sort direction (asc, desc)")
}

func (f *orderingFlags) sortDirection() (gitlab.SortDirection, bool, error) {
	return parseEnumFlag(f.sort, gitlab.ParseSortDirection, constants.ErrInvalidSort)
}

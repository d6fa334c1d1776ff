package types

// CLIArgs represents the command-line arguments shared by the report and
// check subcommands.
type CLIArgs struct {
	ConfigFile   string
	Month        string
	Trend        bool
	TrendMonths  int
	ReportName   string
	ReportType   []string
	Dir          string
	CurrencyRate float64
}

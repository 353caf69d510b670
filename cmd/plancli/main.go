/*
main.go - plancli: a command-line front end for the optimizer engine

PURPOSE:
  Runs the same Optimize() call the HTTP API runs, for local use and
  scripting. Not a new engine surface -- the engine's invocation surface
  stays a single Go function call; this is one more caller of it, wired
  the same way cmd/server wires the HTTP API.

USAGE:
  plancli plan --days 15 --strategy balanced --year 2026
  plancli plan --days 10 --holidays-file holidays.json --company-off-file off.json

CONFIG:
  Flags can be defaulted from a config file (spf13/viper), searched in
  order: ./plancli.yaml, $HOME/.plancli.yaml, then environment variables
  prefixed PLANCLI_ (e.g. PLANCLI_DAYS=15). A config file lets a team
  commit a shared holidays/company-off list once instead of repeating
  --holidays-file on every run.

OUTPUT:
  Pretty-printed, grouped by break, when stdout is a terminal
  (mattn/go-isatty). Raw JSON otherwise, so the CLI composes in scripts.
*/
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/warp/cto-planner/optimizer"
)

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("missing date")
	}
	return time.Parse("2006-01-02", s)
}

func timeWeekday(n int) time.Weekday {
	return time.Weekday(n)
}

func main() {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "plancli",
		Short: "Plan a year's CTO days from the command line",
	}
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default ./plancli.yaml, $HOME/.plancli.yaml)")

	rootCmd.AddCommand(planCmd(&cfgFile))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func planCmd(cfgFile *string) *cobra.Command {
	var days int
	var strategy string
	var year int
	var holidaysFile string
	var companyOffFile string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Run the optimizer and print the resulting plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := loadViperConfig(*cfgFile)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("days") && v.IsSet("days") {
				days = v.GetInt("days")
			}
			if !cmd.Flags().Changed("strategy") && v.IsSet("strategy") {
				strategy = v.GetString("strategy")
			}
			if !cmd.Flags().Changed("year") && v.IsSet("year") {
				year = v.GetInt("year")
			}

			params := optimizer.Params{
				NumberOfDays: days,
				Strategy:     optimizer.Strategy(strategy),
				Year:         year,
			}

			holidays, err := loadHolidays(holidaysFile, v)
			if err != nil {
				return fmt.Errorf("failed to load holidays: %w", err)
			}
			params.Holidays = holidays

			companyOff, err := loadCompanyOffRules(companyOffFile, v)
			if err != nil {
				return fmt.Errorf("failed to load company days off: %w", err)
			}
			params.CompanyDaysOff = companyOff

			result := optimizer.Optimize(params)

			if isatty.IsTerminal(os.Stdout.Fd()) {
				printPretty(result)
			} else {
				return json.NewEncoder(os.Stdout).Encode(result)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "number of discretionary CTO days")
	cmd.Flags().StringVar(&strategy, "strategy", "balanced", "balanced|longWeekends|miniBreaks|weekLongBreaks|extendedVacations")
	cmd.Flags().IntVar(&year, "year", 0, "target year (default: current year)")
	cmd.Flags().StringVar(&holidaysFile, "holidays-file", "", "path to a JSON file of {date,name} holiday entries")
	cmd.Flags().StringVar(&companyOffFile, "company-off-file", "", "path to a JSON file of company off-day rules")

	return cmd
}

func loadViperConfig(cfgFile string) (*viper.Viper, error) {
	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("plancli")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("PLANCLI")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// No ./plancli.yaml: fall back to $HOME/.plancli.yaml if it exists.
		if home, herr := os.UserHomeDir(); herr == nil {
			homeCfg := home + string(os.PathSeparator) + ".plancli.yaml"
			if _, serr := os.Stat(homeCfg); serr == nil {
				v.SetConfigFile(homeCfg)
				if err := v.ReadInConfig(); err != nil {
					return nil, fmt.Errorf("failed to read config: %w", err)
				}
			}
		}
	}
	return v, nil
}

type holidayFileEntry struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

type companyOffFileEntry struct {
	Name        string `json:"name"`
	IsRecurring bool   `json:"is_recurring"`
	Date        string `json:"date,omitempty"`
	Weekday     int    `json:"weekday,omitempty"`
	Start       string `json:"start,omitempty"`
	End         string `json:"end,omitempty"`
}

func loadHolidays(path string, v *viper.Viper) ([]optimizer.Holiday, error) {
	var entries []holidayFileEntry
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, err
		}
	} else if v.IsSet("holidays") {
		if err := v.UnmarshalKey("holidays", &entries); err != nil {
			return nil, err
		}
	}

	out := make([]optimizer.Holiday, 0, len(entries))
	for _, e := range entries {
		d, err := parseDate(e.Date)
		if err != nil {
			return nil, err
		}
		out = append(out, optimizer.Holiday{Date: d, Name: e.Name})
	}
	return out, nil
}

func loadCompanyOffRules(path string, v *viper.Viper) ([]optimizer.CompanyOffRule, error) {
	var entries []companyOffFileEntry
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, err
		}
	} else if v.IsSet("company_days_off") {
		if err := v.UnmarshalKey("company_days_off", &entries); err != nil {
			return nil, err
		}
	}

	out := make([]optimizer.CompanyOffRule, 0, len(entries))
	for _, e := range entries {
		rule := optimizer.CompanyOffRule{Name: e.Name, IsRecurring: e.IsRecurring}
		if e.IsRecurring {
			start, err := parseDate(e.Start)
			if err != nil {
				return nil, err
			}
			end, err := parseDate(e.End)
			if err != nil {
				return nil, err
			}
			rule.Weekday = timeWeekday(e.Weekday)
			rule.Start = start
			rule.End = end
		} else {
			d, err := parseDate(e.Date)
			if err != nil {
				return nil, err
			}
			rule.Date = d
		}
		out = append(out, rule)
	}
	return out, nil
}

func printPretty(result optimizer.Result) {
	fmt.Printf("%s total days off across %s breaks (%s CTO days spent)\n\n",
		humanize.Comma(int64(result.Stats.TotalDaysOff)),
		humanize.Comma(int64(len(result.Breaks))),
		humanize.Comma(int64(result.Stats.TotalCTODays)),
	)

	for _, b := range result.Breaks {
		fmt.Printf("  %s -> %s (%s days off, %s CTO)\n",
			b.StartDate.Format("2006-01-02"),
			b.EndDate.Format("2006-01-02"),
			humanize.Comma(int64(b.TotalDays)),
			humanize.Comma(int64(b.CTODays)),
		)
	}
}

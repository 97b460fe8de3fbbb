package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/glueful/memwatch/internal/config"
	"github.com/glueful/memwatch/internal/doctor"
	"github.com/glueful/memwatch/internal/ui"
	"github.com/glueful/memwatch/internal/util"
)

var doctorJSON bool

// doctorCmd diagnoses the monitoring environment.
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose the monitoring environment",
	Long: `Run environment checks and report anything that would degrade a
monitoring session: memory sampling availability, the usage ceiling,
config file validity, and whether the CSV log path is writable.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return doctorCommand()
	},
}

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "output in JSON format")
	rootCmd.AddCommand(doctorCmd)
}

// doctorOutput is the JSON shape of a diagnostic run.
type doctorOutput struct {
	Results  []doctor.CheckResult `json:"results"`
	Pass     int                  `json:"pass"`
	Warn     int                  `json:"warn"`
	Fail     int                  `json:"fail"`
	AllClear bool                 `json:"all_clear"`
}

func doctorCommand() error {
	// Config load errors are not fatal here; the config check reports them.
	cfg, err := config.LoadOrDefault(configFlag)
	if err != nil {
		cfg = config.DefaultConfig()
	}

	checks := []doctor.Check{
		&doctor.SamplingCheck{},
		&doctor.LimitCheck{},
		&doctor.ConfigCheck{Explicit: configFlag},
		&doctor.SinkCheck{Path: cfg.Monitor.CSV},
	}
	results := doctor.RunAll(checks)

	if doctorJSON {
		return outputDoctorJSON(results)
	}
	return outputDoctorText(checks, results)
}

func outputDoctorJSON(results []doctor.CheckResult) error {
	counts := doctor.CountByStatus(results)
	out := doctorOutput{
		Results:  results,
		Pass:     counts[doctor.StatusPass],
		Warn:     counts[doctor.StatusWarn],
		Fail:     counts[doctor.StatusFail],
		AllClear: !doctor.HasIssues(results),
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func outputDoctorText(checks []doctor.Check, results []doctor.CheckResult) error {
	fmt.Println()
	fmt.Println("memwatch diagnostic report")
	fmt.Println()

	lastCategory := ""
	for i, check := range checks {
		if cat := check.Category(); cat != lastCategory {
			if lastCategory != "" {
				fmt.Println()
			}
			fmt.Println(cat)
			lastCategory = cat
		}
		renderCheckResult(results[i])
	}
	fmt.Println()

	counts := doctor.CountByStatus(results)
	if !doctor.HasIssues(results) {
		fmt.Printf("%s Everything looks good\n", ui.Success(ui.SymbolSuccess))
	} else {
		total := counts[doctor.StatusFail] + counts[doctor.StatusWarn]
		fmt.Printf("%s %d %s found\n",
			ui.Error(ui.SymbolFail),
			total,
			util.Pluralize(total, "issue", "issues"))
	}
	fmt.Println()

	return nil
}

func renderCheckResult(result doctor.CheckResult) {
	var symbol string
	switch result.Status {
	case doctor.StatusPass:
		symbol = ui.Success(ui.SymbolSuccess)
	case doctor.StatusWarn:
		symbol = ui.Warning(ui.SymbolWarning)
	case doctor.StatusFail:
		symbol = ui.Error(ui.SymbolFail)
	}

	fmt.Printf("  %s %s\n", symbol, result.Message)
	if result.Suggestion != "" && result.Status != doctor.StatusPass {
		fmt.Printf("    %s\n", ui.Muted(result.Suggestion))
	}
}

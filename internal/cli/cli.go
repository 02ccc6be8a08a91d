package cli

import (
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"
)

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	Today   *TodayCommand
	Add     *AddCommand
	Done    *DoneCommand
	Edit    *EditCommand
	Remove  *RemoveCommand
	History *HistoryCommand
	Show    *ShowCommand
	Copy    *CopyCommand
	Stats   *StatsCommand
	Search  *SearchCommand
	Status  *StatusCommand
	Prune   *PruneCommand
	Purge   *PurgeCommand
}

// buildParser constructs the go-flags parser with all subcommands registered
// against a.
func buildParser(a *app) (*goflags.Parser, *commands) {
	parser := goflags.NewParser(a.globals, goflags.Default)
	parser.Name = "studylog"
	parser.LongDescription = "Daily study and exercise log: plan the day, tick items off, carry unfinished work forward."

	cmds := &commands{
		Today:   &TodayCommand{app: a},
		Add:     &AddCommand{app: a},
		Done:    &DoneCommand{app: a},
		Edit:    &EditCommand{app: a},
		Remove:  &RemoveCommand{app: a},
		History: &HistoryCommand{app: a},
		Show:    &ShowCommand{app: a},
		Copy:    &CopyCommand{app: a},
		Stats:   &StatsCommand{app: a},
		Search:  &SearchCommand{app: a},
		Status:  &StatusCommand{app: a},
		Prune:   &PruneCommand{app: a},
		Purge:   &PurgeCommand{app: a},
	}

	parser.AddCommand("today", "Show today's plan", "Show today's study and exercise items with streak and completion insights.", cmds.Today)
	parser.AddCommand("add", "Add an item to today", "Append a study item (--study) or an exercise item (--exercise, --reps) to today's log.", cmds.Add)
	parser.AddCommand("done", "Toggle an item's completion", "Toggle completion of today's study or exercise item N (1-based).", cmds.Done)
	parser.AddCommand("edit", "Edit an item", "Replace fields of today's study or exercise item N (1-based).", cmds.Edit)
	parser.AddCommand("remove", "Remove an item", "Delete today's study or exercise item N (1-based).", cmds.Remove)
	parser.AddCommand("history", "List past days", "List past day logs with completion counts, newest first.", cmds.History)
	parser.AddCommand("show", "Print one day log", "Print a day log selected by --day or --id.", cmds.Show)
	parser.AddCommand("copy", "Copy unfinished items into today", "Copy a past day's unfinished items into today's log, skipping items today already has.", cmds.Copy)
	parser.AddCommand("stats", "Show streak and completion rates", "Show the current streak and study/exercise completion percentages.", cmds.Stats)
	parser.AddCommand("search", "Search items", "Search study and exercise items across all days (case-insensitive).", cmds.Search)
	parser.AddCommand("status", "Show store statistics", "Show storage backend, log and item counts, and a configuration summary.", cmds.Status)
	parser.AddCommand("prune", "Delete old day logs", "Delete day logs older than the retention period.", cmds.Prune)
	parser.AddCommand("purge", "Delete ALL day logs", "Delete ALL day logs. Destructive operation with safety prompt.", cmds.Purge)

	return parser, cmds
}

// Run is the main entry point for the studylog CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and executes the matched subcommand.
func RunWithArgs(version string, args []string) error {
	return run(newApp(version), args)
}

func run(a *app, args []string) error {
	// Handle --version before parser (go-flags requires a subcommand, but
	// --version is valid without one).
	checkArgs := args
	if checkArgs == nil {
		checkArgs = os.Args[1:]
	}
	for _, arg := range checkArgs {
		if arg == "--version" {
			fmt.Printf("studylog %s\n", a.version)
			return nil
		}
		if arg == "--" {
			break
		}
	}

	parser, _ := buildParser(a)

	var err error
	if args != nil {
		_, err = parser.ParseArgs(args)
	} else {
		_, err = parser.Parse()
	}

	if err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok {
			if flagsErr.Type == goflags.ErrHelp {
				return nil
			}
		}
		return err
	}

	return nil
}

package cli

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	Config  string `long:"config" description:"Path to config file" default:""`
	JSON    bool   `long:"json" description:"Output in JSON format"`
	Verbose bool   `long:"verbose" description:"Enable verbose output"`
	NoColor bool   `long:"no-color" description:"Disable colored output"`
	Version bool   `long:"version" description:"Show version and exit"`
}

// ItemSelector selects one item of today's log by its 1-based position.
type ItemSelector struct {
	Study    int `long:"study" description:"Study item number (1-based)"`
	Exercise int `long:"exercise" description:"Exercise item number (1-based)"`
}

// TodayCommand shows today's plan and insights.
type TodayCommand struct {
	app *app
}

// AddCommand appends a study or exercise item to today's log.
type AddCommand struct {
	Study    string `long:"study" description:"Study item title"`
	Notes    string `long:"notes" description:"Notes for the study item"`
	Exercise string `long:"exercise" description:"Exercise description"`
	Reps     int    `long:"reps" description:"Repetitions for the exercise item"`
	Done     bool   `long:"done" description:"Mark the new item completed"`

	app *app
}

// DoneCommand toggles completion of an item in today's log.
type DoneCommand struct {
	ItemSelector

	app *app
}

// EditCommand replaces the fields of an item in today's log.
type EditCommand struct {
	ItemSelector
	Title       string `long:"title" description:"New study item title"`
	Notes       string `long:"notes" description:"New study item notes"`
	ClearNotes  bool   `long:"clear-notes" description:"Remove the study item's notes"`
	Description string `long:"description" description:"New exercise description"`
	Reps        int    `long:"reps" description:"New exercise repetitions"`

	app *app
}

// RemoveCommand deletes an item from today's log.
type RemoveCommand struct {
	ItemSelector

	app *app
}

// HistoryCommand lists past days, newest first.
type HistoryCommand struct {
	Limit int `long:"limit" description:"Maximum days to list (0 = all)" default:"0"`

	app *app
}

// ShowCommand prints one day log.
type ShowCommand struct {
	Day    string `long:"day" description:"Day key (YYYY-MM-DD)"`
	ID     string `long:"id" description:"Day log ID"`
	Format string `long:"format" description:"Output format: full | md | json" default:"full"`

	app *app
}

// CopyCommand carries a past day's unfinished items into today.
type CopyCommand struct {
	From string `long:"from" description:"Source day key (YYYY-MM-DD)"`
	ID   string `long:"id" description:"Source day log ID"`

	app *app
}

// StatsCommand reports the streak and completion percentages.
type StatsCommand struct {
	Since string `long:"since" description:"Only logs newer than duration (e.g., 7d, 2w); defaults to insights.window_days"`

	app *app
}

// SearchCommand finds items by text across all days.
type SearchCommand struct {
	Query string `long:"query" short:"q" description:"Text to search for (or pass as arguments)"`
	Limit int    `long:"limit" description:"Maximum results (0 = all)" default:"0"`

	app *app
}

// StatusCommand shows store statistics and a configuration summary.
type StatusCommand struct {
	app *app
}

// PruneCommand deletes logs older than the retention cutoff.
type PruneCommand struct {
	OlderThan string `long:"older-than" description:"Override retention period (e.g., 90d)"`
	DryRun    bool   `long:"dry-run" description:"Show what would be pruned without deleting"`

	app *app
}

// PurgeCommand deletes ALL day logs after a safety confirmation.
type PurgeCommand struct {
	All   bool `long:"all" description:"Required flag to confirm purge intent"`
	Force bool `long:"force" description:"Skip safety confirmation prompt"`

	app *app
}

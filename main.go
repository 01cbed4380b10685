package main

import (
	"flag"
	"os"

	"github.com/harrisonrobin/task-tracker/pkg/cli"
	"github.com/harrisonrobin/task-tracker/pkg/config"
	"github.com/harrisonrobin/task-tracker/pkg/logger"
	"github.com/harrisonrobin/task-tracker/pkg/tracker"
)

func main() {
	// 1. Parse Flags
	tasksFile := flag.String("file", "", "Task file to use for this run (overrides config)")
	setFile := flag.String("set-file", "", "Set the default task file")
	quiet := flag.Bool("quiet", false, "Only print warnings and errors")
	flag.Parse()

	log := logger.New(os.Stdout, *quiet)

	// 2. Handle Set File
	if *setFile != "" {
		if err := config.Save(&config.Config{TasksFile: *setFile}); err != nil {
			log.Errorf("Error saving config: %v", err)
			return
		}
		log.Infof("Default task file set to: %s", *setFile)
		return
	}

	// 3. Determine Task File (Priority: Flag > Env > Config > Default)
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Warnf("Ignoring .env: %v", err)
	}
	path, err := config.Resolve(*tasksFile)
	if err != nil {
		log.Warnf("Could not load config, using %s: %v", path, err)
	}

	// 4. Run exactly one command
	t := tracker.New(tracker.Config{Path: path, Log: log})
	cli.Run(t, log, flag.Args())
}

package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/Dias221467/mindbloom/internal/config"
	"github.com/Dias221467/mindbloom/pkg/logger"
)

var CLI struct {
	LogLevel string `help:"Log level." default:"warn" env:"LOG_LEVEL"`

	Seed    SeedCmd    `cmd:"" help:"Insert the default badge and achievement catalogs."`
	AwardXP AwardXPCmd `cmd:"" name:"award-xp" help:"Grant XP to a user."`
	Streak  StreakCmd  `cmd:"" help:"Recompute a user's journal streak."`
	Stats   StatsCmd   `cmd:"" help:"Show a user's level and XP."`
	Remind  RemindCmd  `cmd:"" help:"Send streak reminders now."`
	Cleanup CleanupCmd `cmd:"" help:"Delete expired notifications now."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("mindbloomctl"),
		kong.Description("Operator tool for the MindBloom backend"),
		kong.UsageOnError(),
	)

	logger.InitLogger(logger.Options{Level: CLI.LogLevel})

	err := ctx.Run(&Context{Config: config.LoadConfig(), Out: os.Stdout})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

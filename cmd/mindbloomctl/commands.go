package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/Dias221467/mindbloom/internal/app"
	"github.com/Dias221467/mindbloom/internal/config"
	"github.com/Dias221467/mindbloom/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Context is passed to every command's Run method.
type Context struct {
	Config *config.Config
	Out    io.Writer
}

const commandTimeout = 2 * time.Minute

func (c *Context) withApp(fn func(ctx context.Context, a *app.App) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	a, err := app.New(ctx, c.Config)
	if err != nil {
		return err
	}
	defer a.Close(context.Background())
	return fn(ctx, a)
}

func (c *Context) print(v interface{}) error {
	enc := json.NewEncoder(c.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type SeedCmd struct{}

func (cmd *SeedCmd) Run(c *Context) error {
	return c.withApp(func(ctx context.Context, a *app.App) error {
		return a.Seed(ctx)
	})
}

type AwardXPCmd struct {
	User   string `arg:"" help:"User id (hex)."`
	Amount int    `arg:"" help:"XP to grant."`
	Action string `help:"XP log action." default:"other" enum:"journal,habit,challenge,achievement,other"`
}

func (cmd *AwardXPCmd) Run(c *Context) error {
	userID, err := primitive.ObjectIDFromHex(cmd.User)
	if err != nil {
		return fmt.Errorf("invalid user id %q", cmd.User)
	}
	return c.withApp(func(ctx context.Context, a *app.App) error {
		res, err := a.Game.Award(ctx, userID, cmd.Amount, cmd.Action)
		if err != nil {
			return err
		}
		return c.print(res)
	})
}

type StreakCmd struct {
	User string `arg:"" help:"User id (hex)."`
}

func (cmd *StreakCmd) Run(c *Context) error {
	userID, err := primitive.ObjectIDFromHex(cmd.User)
	if err != nil {
		return fmt.Errorf("invalid user id %q", cmd.User)
	}
	return c.withApp(func(ctx context.Context, a *app.App) error {
		info, err := a.Journal.Streak(ctx, userID)
		if err != nil {
			return err
		}
		return c.print(info)
	})
}

type StatsCmd struct {
	User string `arg:"" help:"User id (hex)."`
}

func (cmd *StatsCmd) Run(c *Context) error {
	userID, err := primitive.ObjectIDFromHex(cmd.User)
	if err != nil {
		return fmt.Errorf("invalid user id %q", cmd.User)
	}
	return c.withApp(func(ctx context.Context, a *app.App) error {
		stats, err := a.XP.Stats(ctx, userID)
		if err != nil {
			return err
		}
		return c.print(stats)
	})
}

type RemindCmd struct{}

func (cmd *RemindCmd) Run(c *Context) error {
	return c.withApp(func(ctx context.Context, a *app.App) error {
		sent, err := a.Notifications.SendStreakReminders(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.Out, "%d %s notifications sent\n", sent, models.NotificationStreakReminder)
		return nil
	})
}

type CleanupCmd struct{}

func (cmd *CleanupCmd) Run(c *Context) error {
	return c.withApp(func(ctx context.Context, a *app.App) error {
		deleted, err := a.Notifications.DeleteExpiredNotifications(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.Out, "%d expired notifications deleted\n", deleted)
		return nil
	})
}

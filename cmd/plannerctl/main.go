// Command plannerctl runs planner operations for one tenant straight against the database.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"roundplanner/cmd"
	"roundplanner/internal/core/application/usecases/commands"
	"roundplanner/internal/core/application/usecases/queries"
	"roundplanner/internal/core/domain/model/kernel"
	"roundplanner/internal/core/domain/model/tenant"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var rootCmd = &cobra.Command{
	Use:   "plannerctl",
	Short: "Operate the round planner",
	Long: `plannerctl redistributes, resets and re-plans weeks for one tenant.
Database settings come from the same environment as the server (DB_HOST, DB_USER, ...).
Dates are YYYY-MM-DD in PLANNER_TIME_ZONE; a week is named by its Monday.`,
	SilenceUsage: true,
}

func main() {
	cobra.OnInitialize(initConfig)
	addPersistentFlags()
	registerCommands()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetEnvPrefix("PLANNERCTL")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func addPersistentFlags() {
	rootCmd.PersistentFlags().String("tenant", "", "tenant id")
	rootCmd.PersistentFlags().StringP("output", "o", "table", "table, json or yaml")
	rootCmd.PersistentFlags().String("env-file", ".env", "optional env file")
	_ = viper.BindPFlag("tenant", rootCmd.PersistentFlags().Lookup("tenant"))
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("env-file", rootCmd.PersistentFlags().Lookup("env-file"))
}

func registerCommands() {
	rootCmd.AddCommand(redistributeCmd())
	rootCmd.AddCommand(resetDayCmd())
	rootCmd.AddCommand(resetWeekCmd())
	rootCmd.AddCommand(triggerCmd())
	rootCmd.AddCommand(capacityCmd())
}

func redistributeCmd() *cobra.Command {
	var week string
	var force bool
	c := &cobra.Command{
		Use:   "redistribute",
		Short: "Lay out the jobs of a week by round order and capacity",
		RunE: func(c *cobra.Command, _ []string) error {
			return withApp(c.Context(), func(ctx context.Context, app *cmd.CompositionRoot, tc tenant.Context) error {
				start, err := kernel.ParseDate(week, app.Location())
				if err != nil {
					return err
				}
				command, err := commands.NewRedistributeWeekCommand(tc, start, force)
				if err != nil {
					return err
				}
				result, err := app.CreateRedistributeWeekCommandHandler().Handle(ctx, command)
				if err != nil {
					return err
				}
				return output(os.Stdout, result, func() { renderRedistribution(os.Stdout, result) })
			})
		},
	}
	c.Flags().StringVar(&week, "week", "", "Monday of the week")
	c.Flags().BoolVar(&force, "force", false, "re-plan even the current week")
	_ = c.MarkFlagRequired("week")
	return c
}

func resetDayCmd() *cobra.Command {
	var date string
	c := &cobra.Command{
		Use:   "reset-day",
		Short: "Clear manual overrides of one day and re-plan its week",
		RunE: func(c *cobra.Command, _ []string) error {
			return withApp(c.Context(), func(ctx context.Context, app *cmd.CompositionRoot, tc tenant.Context) error {
				day, err := kernel.ParseDate(date, app.Location())
				if err != nil {
					return err
				}
				command, err := commands.NewResetDayCommand(tc, day)
				if err != nil {
					return err
				}
				result, err := app.CreateResetCommandHandler().HandleDay(ctx, command)
				if err != nil {
					return err
				}
				return output(os.Stdout, result, func() { renderReset(os.Stdout, result) })
			})
		},
	}
	c.Flags().StringVar(&date, "date", "", "day to reset")
	_ = c.MarkFlagRequired("date")
	return c
}

func resetWeekCmd() *cobra.Command {
	var week string
	c := &cobra.Command{
		Use:   "reset-week",
		Short: "Clear manual overrides for the remaining days of a week and re-plan it",
		RunE: func(c *cobra.Command, _ []string) error {
			return withApp(c.Context(), func(ctx context.Context, app *cmd.CompositionRoot, tc tenant.Context) error {
				start, err := kernel.ParseDate(week, app.Location())
				if err != nil {
					return err
				}
				command, err := commands.NewResetWeekCommand(tc, start)
				if err != nil {
					return err
				}
				result, err := app.CreateResetCommandHandler().HandleWeek(ctx, command)
				if err != nil {
					return err
				}
				return output(os.Stdout, result, func() { renderReset(os.Stdout, result) })
			})
		},
	}
	c.Flags().StringVar(&week, "week", "", "Monday of the week")
	_ = c.MarkFlagRequired("week")
	return c
}

func triggerCmd() *cobra.Command {
	var kind string
	var dates []string
	c := &cobra.Command{
		Use:   "trigger",
		Short: "Re-plan the weeks affected by a change",
		RunE: func(c *cobra.Command, _ []string) error {
			return withApp(c.Context(), func(ctx context.Context, app *cmd.CompositionRoot, tc tenant.Context) error {
				k, err := commands.ParseTriggerKind(kind)
				if err != nil {
					return err
				}
				days := make([]kernel.Date, 0, len(dates))
				for _, d := range dates {
					day, parseErr := kernel.ParseDate(d, app.Location())
					if parseErr != nil {
						return parseErr
					}
					days = append(days, day)
				}
				command, err := commands.NewDispatchTriggerCommand(tc, k, days...)
				if err != nil {
					return err
				}
				report, err := app.CreateTriggerDispatcher().Handle(ctx, command)
				if err != nil {
					return err
				}
				return output(os.Stdout, report, func() { renderReport(os.Stdout, report) })
			})
		},
	}
	c.Flags().StringVar(&kind, "kind", string(commands.TriggerJobAdded),
		"job_added, availability_changed, daily_capacity_changed or scheduled_sweep")
	c.Flags().StringSliceVar(&dates, "date", nil, "affected day (repeatable)")
	return c
}

func capacityCmd() *cobra.Command {
	var week string
	c := &cobra.Command{
		Use:   "capacity",
		Short: "Show the capacity profile of a week",
		RunE: func(c *cobra.Command, _ []string) error {
			return withApp(c.Context(), func(ctx context.Context, app *cmd.CompositionRoot, tc tenant.Context) error {
				start, err := kernel.ParseDate(week, app.Location())
				if err != nil {
					return err
				}
				query, err := queries.NewGetWeekCapacityQuery(tc, start)
				if err != nil {
					return err
				}
				profile, err := app.CreateGetWeekCapacityQueryHandler().Handle(ctx, query)
				if err != nil {
					return err
				}
				return output(os.Stdout, profile, func() { renderCapacity(os.Stdout, profile) })
			})
		},
	}
	c.Flags().StringVar(&week, "week", "", "Monday of the week")
	_ = c.MarkFlagRequired("week")
	return c
}

func withApp(ctx context.Context, fn func(context.Context, *cmd.CompositionRoot, tenant.Context) error) error {
	tc, err := tenantFlag()
	if err != nil {
		return err
	}

	cfg, err := cmd.LoadConfig(viper.GetString("env-file"))
	if err != nil {
		return err
	}
	db, err := gorm.Open(gorm_postgres.Open(cfg.DSN()), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return err
	}
	if sqlDB, dbErr := db.DB(); dbErr == nil {
		defer sqlDB.Close()
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	app, err := cmd.NewCompositionRoot(cfg, db, log)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()
	return fn(ctx, &app, tc)
}

func tenantFlag() (tenant.Context, error) {
	raw := viper.GetString("tenant")
	if raw == "" {
		return tenant.Context{}, fmt.Errorf("--tenant required")
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return tenant.Context{}, err
	}
	return tenant.New(id)
}

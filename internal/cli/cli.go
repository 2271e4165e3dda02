// Package cli runs one task-list action per invocation against a file
// snapshot. The web server may use the same snapshot: each mutation
// re-reads it first, so neither side drops the other's tasks.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-tasklist/internal/delivery/term"
	"github.com/adanyl0v/go-tasklist/internal/models"
	"github.com/adanyl0v/go-tasklist/internal/services"
	"github.com/adanyl0v/go-tasklist/internal/storage"
)

const (
	envDir      = "STORAGE_DIR"
	envSlot     = "STORAGE_SLOT"
	envDebug    = "TASKS_DEBUG"
	defaultDir  = "data"
	defaultSlot = "tasks"
)

type Config struct {
	Dir   string
	Slot  string
	Debug bool
}

// Run executes args (without the program name) and returns the exit code.
func Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	cfg := Config{
		Dir:   envOr(envDir, defaultDir),
		Slot:  envOr(envSlot, defaultSlot),
		Debug: os.Getenv(envDebug) != "",
	}

	fs := flag.NewFlagSet("tasks", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.Dir, "dir", cfg.Dir, "Snapshot directory")
	fs.StringVar(&cfg.Slot, "slot", cfg.Slot, "Snapshot slot name")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Log debug output to stderr")

	err := fs.Parse(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			usage(out)
			return 0
		}
		fmt.Fprintln(errOut, err)
		usage(errOut)
		return 2
	}
	if fs.NArg() == 0 {
		usage(errOut)
		return 2
	}

	logger := newLogger(errOut, cfg.Debug)

	slot, err := storage.NewFileSlot(logger, cfg.Dir, cfg.Slot)
	if err != nil {
		fmt.Fprintln(errOut, "error:", err)
		return 1
	}
	defer slot.Close()

	tasks := services.NewTaskService(logger, slot)
	err = tasks.Load(ctx)
	if err != nil {
		fmt.Fprintln(errOut, "error:", err)
		return 1
	}

	// The process exits long before any notification would expire.
	notifications := services.NewNotificationService(logger, time.Minute)
	controller := services.NewController(logger, tasks, notifications)
	renderer := term.NewRenderer(out)

	code := dispatch(ctx, controller, renderer, fs.Arg(0), fs.Args()[1:], errOut)
	renderer.Notifications(controller.Notifications())
	return code
}

func dispatch(
	ctx context.Context,
	controller *services.Controller,
	renderer *term.Renderer,
	command string,
	args []string,
	errOut io.Writer,
) int {
	switch command {
	case "add":
		return runAdd(ctx, controller, args, errOut)
	case "toggle", "done":
		return runWithID(args, errOut, func(id int64) error {
			toggled, err := controller.ToggleTask(ctx, id)
			if err == nil && !toggled {
				fmt.Fprintf(errOut, "no task with id %d\n", id)
			}
			return err
		})
	case "rm", "delete":
		return runWithID(args, errOut, func(id int64) error {
			_, err := controller.DeleteTask(ctx, id)
			return err
		})
	case "ls", "list":
		return runList(controller, renderer, args, errOut)
	case "stats":
		renderer.Stats(controller.Stats())
		return 0
	default:
		fmt.Fprintf(errOut, "unknown command %q\n", command)
		usage(errOut)
		return 2
	}
}

func runAdd(ctx context.Context, controller *services.Controller, args []string, errOut io.Writer) int {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	date := fs.String("date", "", "Due date, YYYY-MM-DD (default today)")
	priority := fs.String("priority", string(models.PriorityMedium), "low, medium or high")

	err := fs.Parse(args)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 2
	}

	rest := fs.Args()
	if !afterTerminator(args, rest) {
		for _, arg := range rest {
			if len(arg) > 1 && strings.HasPrefix(arg, "-") {
				fmt.Fprintf(errOut, "flag %q after task text: put flags before the text, or use -- before text starting with '-'\n", arg)
				return 2
			}
		}
	}

	_, err = controller.AddTask(ctx, services.AddTaskParams{
		Text:     strings.Join(rest, " "),
		Date:     *date,
		Priority: models.Priority(*priority),
	})
	if err != nil {
		return 1
	}
	return 0
}

// afterTerminator reports whether the flag set stopped parsing at "--".
func afterTerminator(args, rest []string) bool {
	i := len(args) - len(rest) - 1
	return i >= 0 && args[i] == "--"
}

func runList(controller *services.Controller, renderer *term.Renderer, args []string, errOut io.Writer) int {
	fs := flag.NewFlagSet("ls", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	filter := fs.String("filter", string(models.FilterAll), "all, pending or completed")

	err := fs.Parse(args)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 2
	}
	if !models.Filter(*filter).Valid() {
		fmt.Fprintf(errOut, "%v: %q\n", services.ErrInvalidFilter, *filter)
		return 2
	}

	renderer.View(controller.ViewFor(models.Filter(*filter)))
	return 0
}

func runWithID(args []string, errOut io.Writer, fn func(id int64) error) int {
	if len(args) != 1 {
		fmt.Fprintln(errOut, "expected exactly one task id")
		return 2
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(errOut, "invalid task id %q\n", args[0])
		return 2
	}

	err = fn(id)
	if err != nil {
		return 1
	}
	return 0
}

func newLogger(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}

	consoleWriter := zerolog.NewConsoleWriter()
	consoleWriter.TimeFormat = time.DateTime
	consoleWriter.Out = w

	return zerolog.New(consoleWriter).
		Level(level).
		With().
		Timestamp().
		Logger()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: tasks [-dir DIR] [-slot NAME] [-debug] <command> [args]")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  add [-date YYYY-MM-DD] [-priority low|medium|high] [--] <text>")
	fmt.Fprintln(w, "                              Flags go before the text")
	fmt.Fprintln(w, "  toggle <id>                 Flip a task between pending and completed")
	fmt.Fprintln(w, "  rm <id>                     Delete a task")
	fmt.Fprintln(w, "  ls [-filter all|pending|completed]")
	fmt.Fprintln(w, "  stats                       Show total, completed and pending counts")
}

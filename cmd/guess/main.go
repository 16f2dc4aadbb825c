// guess is the interactive number-guessing game shell. It owns presentation
// and input only; the round rules live in internal/domain/round and the
// leaderboard in internal/adapters/repository, wired by internal/app.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Saibalraj/Number-Guessing-Game/internal/app"
	"github.com/Saibalraj/Number-Guessing-Game/internal/config"
	"github.com/Saibalraj/Number-Guessing-Game/internal/domain/level"
	"github.com/Saibalraj/Number-Guessing-Game/internal/domain/round"
	"github.com/Saibalraj/Number-Guessing-Game/internal/domain/score"
	"github.com/Saibalraj/Number-Guessing-Game/pkg/logger"
	"github.com/Saibalraj/Number-Guessing-Game/pkg/metrics"
)

// Metrics HTTP server timeouts.
const (
	readHeaderTimeout = 5 * time.Second
	// Warn the player this many seconds before the round times out.
	countdownWarning = 5
)

// mode tracks what the next input line means.
type mode int

const (
	modePlay mode = iota
	modeName
	modeReplay
	modeConfirmClear
)

func main() {
	if err := logger.Init(os.Stderr); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Optional Prometheus endpoint.
	if cfg.MetricsAddr != "" {
		go serveMetrics(ctx, cfg.MetricsAddr, log)
	}

	svc := app.New(
		app.WithLogger(log),
		app.WithScorePath(cfg.ScoreFile),
		app.WithSettingsPath(cfg.SettingsFile),
	)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	runShell(ctx, svc)
}

// serveMetrics exposes the custom registry over HTTP until ctx is done.
func serveMetrics(ctx context.Context, addr string, log logger.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: readHeaderTimeout}

	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()
	log.Info(ctx, "serving metrics", logger.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Warn(ctx, "metrics server failed", logger.Error(err))
	}
}

// readLines feeds stdin lines to a channel so the shell can select on input
// and round events at the same time.
func readLines(out chan<- string) {
	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		out <- sc.Text()
	}
	close(out)
}

// runShell is the interactive loop.
func runShell(ctx context.Context, svc *app.Service) {
	lines := make(chan string)
	go readLines(lines)

	prefs := svc.Settings()
	fmt.Println("Number Guessing Game")
	fmt.Printf("Level: %s (range %d to %d, %d seconds). Type 'help' for commands.\n",
		prefs.LastLevel, prefs.LastLevel.Min(), prefs.LastLevel.Max(), prefs.LastLevel.TimeSeconds())

	startRound(ctx, svc)

	m := modePlay
	for {
		select {
		case <-ctx.Done():
			fmt.Println("\nBye!")
			return

		case ev := <-svc.Events():
			switch ev.Kind {
			case app.EventTick:
				if ev.Remaining <= countdownWarning || ev.Remaining%10 == 0 {
					fmt.Printf("Time left: %ds\n", ev.Remaining)
				}
			case app.EventTimeout:
				beep(svc)
				fmt.Printf("Time's up! The number was %d.\n", ev.Secret)
				fmt.Print("Your name [Player]: ")
				m = modeName
			}

		case line, ok := <-lines:
			if !ok {
				fmt.Println("Bye!")
				return
			}
			line = strings.TrimSpace(line)
			switch m {
			case modeName:
				recordScore(ctx, svc, line)
				fmt.Print("Play again? [y/n]: ")
				m = modeReplay
			case modeReplay:
				if strings.EqualFold(line, "y") || strings.EqualFold(line, "yes") {
					startRound(ctx, svc)
				} else {
					fmt.Println("Type 'new' whenever you want another round.")
				}
				m = modePlay
			case modeConfirmClear:
				if strings.EqualFold(line, "y") || strings.EqualFold(line, "yes") {
					if err := svc.ClearScores(ctx); err != nil {
						fmt.Println("Clearing saved, but persisting failed:", err)
					} else {
						fmt.Println("All high scores deleted.")
					}
				}
				m = modePlay
			default:
				m = handleCommand(ctx, svc, line)
			}
		}
	}
}

// handleCommand interprets one line in play mode and returns the next mode.
func handleCommand(ctx context.Context, svc *app.Service, line string) mode {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(cmd) {
	case "":
		return modePlay
	case "help":
		printHelp()
	case "new":
		startRound(ctx, svc)
	case "level":
		lvl, err := level.Parse(arg)
		if err != nil {
			fmt.Println("Unknown level. Choose easy, medium, or hard.")
			return modePlay
		}
		if err := svc.SetLevel(ctx, lvl); err != nil {
			fmt.Println("Level set, but saving settings failed:", err)
		}
		fmt.Printf("Level set to %s (range %d to %d, %d seconds). Takes effect next round.\n",
			lvl, lvl.Min(), lvl.Max(), lvl.TimeSeconds())
	case "mute":
		muted := !svc.Settings().Muted
		if err := svc.SetMuted(ctx, muted); err != nil {
			fmt.Println("Mute toggled, but saving settings failed:", err)
		}
		if muted {
			fmt.Println("Sound off.")
		} else {
			fmt.Println("Sound on.")
		}
	case "scores":
		printScores(svc.Leaderboard(ctx))
	case "import":
		if arg == "" {
			fmt.Println("Usage: import <path>")
			return modePlay
		}
		merged, err := svc.ImportScores(ctx, arg)
		if err != nil {
			fmt.Println("Import failed:", err)
			return modePlay
		}
		if merged == 0 {
			fmt.Println("No valid entries found.")
		} else {
			fmt.Printf("Imported %d entries.\n", merged)
		}
	case "export":
		if arg == "" {
			fmt.Println("Usage: export <path>")
			return modePlay
		}
		if err := svc.ExportScores(ctx, arg); err != nil {
			fmt.Println("Export failed:", err)
		} else {
			fmt.Println("Exported to", arg)
		}
	case "clear":
		fmt.Print("Delete all high scores? [y/n]: ")
		return modeConfirmClear
	case "quit", "exit":
		fmt.Println("Bye!")
		os.Exit(0)
	default:
		return handleGuess(ctx, svc, line)
	}
	return modePlay
}

// handleGuess submits a guess and prints the feedback.
func handleGuess(ctx context.Context, svc *app.Service, line string) mode {
	out, err := svc.Guess(ctx, line)
	switch {
	case errors.Is(err, round.ErrRoundNotActive):
		fmt.Println("No round running. Type 'new' to start one.")
	case err != nil:
		fmt.Println("Invalid input - enter a number.")
	case out.Feedback == round.Correct:
		beep(svc)
		fmt.Printf("Correct! You guessed %d in %d attempts and %ds.\n",
			out.Secret, out.Attempts, out.ElapsedSeconds)
		fmt.Print("Your name [Player]: ")
		return modeName
	case out.Feedback == round.TooLow:
		fmt.Printf("Too low! Try higher. (attempt %d)\n", out.Attempts)
	default:
		fmt.Printf("Too high! Try lower. (attempt %d)\n", out.Attempts)
	}
	return modePlay
}

func startRound(ctx context.Context, svc *app.Service) {
	snap := svc.StartRound(ctx)
	fmt.Printf("New number picked between %d and %d. You have %d seconds - go!\n",
		snap.Level.Min(), snap.Level.Max(), snap.Level.TimeSeconds())
}

func recordScore(ctx context.Context, svc *app.Service, name string) {
	if err := svc.RecordScore(ctx, name); err != nil {
		fmt.Println("Score kept in memory, but saving failed:", err)
	}
	printScores(svc.Leaderboard(ctx))
}

// printScores renders the leaderboard as a table.
func printScores(records []score.Record) {
	if len(records) == 0 {
		fmt.Println("No high scores yet.")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tName\tLevel\tAttempts\tTime(s)\tDate\tNumber")
	for i, r := range records {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%s\t%d\n",
			i+1, r.Name, r.Level, r.Attempts, r.TimeSeconds, r.When.Format(score.TimeLayout), r.Secret)
	}
	_ = w.Flush()
}

// beep rings the terminal bell unless the player muted it.
func beep(svc *app.Service) {
	if !svc.Settings().Muted {
		fmt.Print("\a")
	}
}

func printHelp() {
	fmt.Println(`Commands:
  <number>        submit a guess
  new             start a new round
  level <name>    set difficulty: easy, medium, hard
  scores          show the leaderboard
  import <path>   merge scores from a CSV file
  export <path>   write the leaderboard to a CSV file
  clear           delete all high scores
  mute            toggle sound
  quit            leave the game`)
}

// seed-scores generates random leaderboard records as CSV, for exercising
// the game's import/merge path.
package main

import (
	"flag"
	"os"
	"time"

	"github.com/Saibalraj/Number-Guessing-Game/internal/domain/level"
	"github.com/Saibalraj/Number-Guessing-Game/internal/seed"
)

const defaultCount = 10

func main() {
	var (
		count   = flag.Int("count", defaultCount, "Number of records to generate")
		seedVal = flag.Int64("seed", time.Now().UnixNano(), "Random seed (fixed seed gives reproducible output)")
		lvlName = flag.String("level", "", "Restrict to one level (EASY, MEDIUM, HARD); empty mixes all")
		out     = flag.String("out", "", "Output file (default: stdout)")
	)
	flag.Parse()

	opts := []seed.Option{
		seed.WithCount(*count),
		seed.WithSeed(*seedVal),
	}
	if *lvlName != "" {
		lvl, err := level.Parse(*lvlName)
		if err != nil {
			os.Stderr.WriteString("unknown level: " + *lvlName + "\n")
			os.Exit(1)
		}
		opts = append(opts, seed.WithLevels(lvl))
	}

	csvText := seed.New(opts...).CSV()

	if *out == "" {
		os.Stdout.WriteString(csvText)
		return
	}
	if err := os.WriteFile(*out, []byte(csvText), 0o644); err != nil {
		os.Stderr.WriteString("write failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}

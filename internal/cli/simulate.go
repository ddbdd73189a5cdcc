package cli

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/ravenscube"
	"github.com/SeamusWaldron/ravenscube/internal/ctxlog"
	"github.com/SeamusWaldron/ravenscube/internal/recorder"
	"github.com/SeamusWaldron/ravenscube/internal/render"
)

var (
	simMoves     string
	simClicks    []string
	simShuffle   bool
	simSeed      int64
	simNoColor   bool
	simNoJournal bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run commands against a headless cube and print the result",
	Long: `Run a script against a cube without the interactive view. Animations
settle immediately, so every command is accepted in order.

Examples:
  ravenscube simulate --moves "R U R' U'"
  ravenscube simulate --shuffle --seed 42
  ravenscube simulate --click front,top,front --no-color`,
	RunE: runSimulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().StringVar(&simMoves, "moves", "", "Moves to apply, in notation")
	simulateCmd.Flags().StringSliceVar(&simClicks, "click", nil, "Faces to click, in order")
	simulateCmd.Flags().BoolVar(&simShuffle, "shuffle", false, "Shuffle before running the script")
	simulateCmd.Flags().Int64Var(&simSeed, "seed", 0, "Shuffle seed (default: config seed or time-based)")
	simulateCmd.Flags().BoolVar(&simNoColor, "no-color", false, "Print sticker letters instead of colors")
	simulateCmd.Flags().BoolVar(&simNoJournal, "no-journal", false, "Do not journal this run")
}

// instantScheduler runs every task as soon as it is scheduled.
type instantScheduler struct{}

func (instantScheduler) AfterFunc(_ time.Duration, f func()) func() bool {
	f()
	return func() bool { return false }
}

func runSimulate(cmd *cobra.Command, args []string) error {
	logger := ctxlog.FromContext(cmd.Context())
	out := cmd.OutOrStdout()
	if simNoColor {
		color.Disable()
	}

	moves, err := ravenscube.ParseMoves(simMoves)
	if err != nil {
		return err
	}
	faces := make([]ravenscube.Face, len(simClicks))
	for i, name := range simClicks {
		if faces[i], err = ravenscube.ParseFace(name); err != nil {
			return err
		}
	}

	opts := append(loadedConfig().EngineOptions(),
		ravenscube.WithScheduler(instantScheduler{}),
		ravenscube.WithLogger(logger),
	)
	if simSeed != 0 {
		opts = append(opts, ravenscube.WithRand(rand.New(rand.NewSource(simSeed))))
	}
	e := ravenscube.NewEngine(opts...)

	var session *recorder.Session
	if !simNoJournal {
		s, closeJournal, err := startJournal(e, "simulate", logger)
		if err != nil {
			return err
		}
		defer closeJournal()
		session = s
	}

	e.Open()
	defer e.Close()

	if simShuffle {
		res := e.Shuffle()
		journal(session, "shuffle", res, logger)
		if !res.OK() {
			return fmt.Errorf("shuffle: %s", res)
		}
		fmt.Fprintf(out, "Shuffled: %s\n\n", ravenscube.FormatMoves(e.Moves()))
	}

	for _, mv := range moves {
		res := e.RotateLayer(mv)
		journal(session, "rotate", res, logger)
		if !res.OK() {
			fmt.Fprintf(out, "%s: %s\n", mv.Notation(), res)
		}
	}
	for _, f := range faces {
		res := e.TriggerFromFaceClick(f)
		journal(session, "rotate", res, logger)
		if !res.OK() {
			fmt.Fprintf(out, "click %s: %s\n", f, res)
		}
	}

	c := e.Cube()
	if err := render.WriteNet(out, c, !simNoColor); err != nil {
		return err
	}
	fmt.Fprintln(out)
	if err := render.WriteStatus(out, c, len(e.Moves())); err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		fmt.Fprintln(out, render.ColorError.Sprint(err.Error()))
		return err
	}
	return nil
}

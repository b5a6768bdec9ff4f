package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"
	"go.uber.org/zap"

	"roguecore/pkg/engine/input"
	"roguecore/pkg/engine/logging"
	"roguecore/pkg/engine/pathfind"
	"roguecore/pkg/engine/terminal"
	"roguecore/pkg/engine/world"
	"roguecore/pkg/game/config"
	"roguecore/pkg/game/devtools"
	"roguecore/pkg/game/gameplay"
	"roguecore/pkg/game/generator"
	"roguecore/pkg/game/level"
	"roguecore/pkg/game/renderer"
	"roguecore/pkg/game/renderer/tui"
	"roguecore/pkg/game/state"
)

// options are the command line settings for one run
type options struct {
	configPath   string
	levelPath    string
	moves        string
	dumpFile     string
	progressPath string
	format       string
	pathTo       string

	// depth > 0 generates a level instead of loading levelPath
	depth     int
	generator string
	seed      int64
}

// session is one loaded level plus everything needed to draw it
type session struct {
	opts   options
	game   *state.Game
	view   renderer.Renderer
	target *world.Point
	log    *zap.Logger
}

// initGettext points gotext at the configured catalogue
func initGettext(cfg config.LocaleConfig) {
	gotext.Configure(cfg.Dir, cfg.Lang, "default")
}

// useColor decides whether frames are styled, honouring render.color
func useColor(mode string, out *os.File) bool {
	switch mode {
	case "always":
		color.ForceOpenColor()
		return true
	case "never":
		return false
	default:
		return out != nil && terminal.IsTerminal(out)
	}
}

// parsePoint parses "x,y"
func parsePoint(s string) (world.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return world.Point{}, fmt.Errorf("point %q is not x,y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return world.Point{}, fmt.Errorf("point %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return world.Point{}, fmt.Errorf("point %q: %w", s, err)
	}
	return world.Pt(x, y), nil
}

// loadLevel reads the level file, or generates one when a depth is given
func loadLevel(opts options, logger *zap.Logger) (*level.Level, error) {
	if opts.depth <= 0 {
		return level.LoadFromFile(opts.levelPath)
	}
	gen, err := generator.New(opts.generator, opts.seed)
	if err != nil {
		return nil, err
	}
	logger.Info("generating level",
		zap.String("generator", gen.Name()),
		zap.Int("depth", opts.depth),
		zap.Int64("seed", opts.seed),
	)
	return gen.Generate(opts.depth)
}

// newSession loads the level, any saved progress and the renderer. A nil
// logger discards everything.
func newSession(opts options, cfg config.Config, logger *zap.Logger, colorOn bool) (*session, error) {
	logger = logging.OrNop(logger)
	lvl, err := loadLevel(opts, logger)
	if err != nil {
		return nil, err
	}

	if opts.progressPath != "" {
		err := lvl.LoadProgress(opts.progressPath)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			logger.Info("no saved progress", zap.String("path", opts.progressPath))
		case err != nil:
			return nil, err
		default:
			logger.Info("progress loaded", zap.String("path", opts.progressPath), zap.Int("explored", lvl.ExploredCount()))
		}
	}

	g, err := state.NewGame(lvl, cfg.Game.FOVRange, cfg.Game.MaxPathCost)
	if err != nil {
		return nil, err
	}
	h, err := pathfind.HeuristicByName(cfg.Game.Heuristic)
	if err != nil {
		return nil, err
	}
	g.Paths.SetHeuristic(h)
	g.Log = logger

	if err := input.ApplyBindings(cfg.Input.Bindings); err != nil {
		return nil, err
	}

	s := &session{opts: opts, game: g, log: logger}

	switch opts.format {
	case "", "tui":
		s.view = tui.New(tui.Options{Color: colorOn})
	case "html":
		s.view = renderer.Func(devtools.WriteScreenshotHTML)
	default:
		return nil, fmt.Errorf("unknown format %q (want tui or html)", opts.format)
	}

	if opts.pathTo != "" {
		p, err := parsePoint(opts.pathTo)
		if err != nil {
			return nil, err
		}
		s.target = &p
	}

	gameplay.RecomputeFOV(g)
	logger.Info("level loaded",
		zap.String("level", lvl.Name),
		zap.Int("width", lvl.Grid.Width()),
		zap.Int("height", lvl.Grid.Height()),
		zap.Int("monsters", len(lvl.Monsters)),
		zap.Int("fov_range", g.FOVRange),
		zap.Uint("max_path_cost", g.Paths.MaxCost()),
	)
	return s, nil
}

// path returns the overlay path from the player to the -path target, if any
func (s *session) path() []world.Point {
	if s.target == nil {
		return nil
	}
	p, err := s.game.Paths.FindPath(s.game.Player.Pos, *s.target)
	if err != nil {
		s.log.Warn("path overlay", zap.Error(err))
		return nil
	}
	return p
}

func (s *session) render(w io.Writer) error {
	return s.view.Render(w, s.game, s.path())
}

func (s *session) saveProgress() (bool, error) {
	if s.opts.progressPath == "" {
		return false, nil
	}
	s.game.SaveExplored()
	if err := s.game.Level.SaveProgress(s.opts.progressPath); err != nil {
		return false, err
	}
	s.log.Info("progress saved", zap.String("path", s.opts.progressPath))
	return true, nil
}

// dumpMap writes the text dump, or a timestamped HTML screenshot next to
// the -dump file when the frame format is html.
func (s *session) dumpMap() (string, error) {
	var name string
	var err error
	if s.opts.format == "html" {
		dir := "."
		if s.opts.dumpFile != "" {
			dir = filepath.Dir(s.opts.dumpFile)
		}
		name, err = devtools.SaveScreenshotHTML(s.game, s.path(), dir)
	} else {
		name, err = devtools.DumpMapToFile(s.game, s.path(), s.opts.dumpFile)
	}
	if err != nil {
		return "", err
	}
	s.log.Info("map dumped", zap.String("file", name))
	return name, nil
}

// runScript plays a fixed key sequence, then prints the final frame.
func (s *session) runScript(out io.Writer) error {
	moves, err := input.ParseMoves(s.opts.moves)
	if err != nil {
		return err
	}
	for _, dir := range moves {
		gameplay.PlayTurn(s.game, dir)
	}

	if _, err := s.saveProgress(); err != nil {
		return err
	}
	if s.opts.dumpFile != "" {
		if _, err := s.dumpMap(); err != nil {
			return err
		}
	}
	return s.render(out)
}

// runInteractive reads one key per turn until quit or end of input.
func (s *session) runInteractive(keys *input.KeyReader, out io.Writer, clearScreen bool) error {
	for {
		if clearScreen {
			fmt.Fprint(out, "\x1b[H\x1b[2J")
		}
		if err := s.render(out); err != nil {
			return err
		}
		fmt.Fprintf(out, "\n%s\n> ", fmt.Sprintf(gotext.Get("PROMPT"),
			input.KeyFor(input.ActionDumpMap),
			input.KeyFor(input.ActionSaveProgress),
			input.KeyFor(input.ActionQuit),
		))

		code, err := keys.ReadCode()
		if errors.Is(err, io.EOF) || errors.Is(err, input.ErrInterrupted) {
			return nil
		}
		if err != nil {
			return err
		}

		raw := input.RawInput{Device: input.DeviceTerminal, Code: code}
		intent := input.MapToIntent(input.NewDebouncedInput(raw))
		s.game.ClearMessages()

		switch intent.Action {
		case input.ActionQuit:
			if _, err := s.saveProgress(); err != nil {
				return err
			}
			fmt.Fprintf(out, "\n%s\n", gotext.Get("GOODBYE"))
			return nil
		case input.ActionDumpMap:
			name, err := s.dumpMap()
			if err != nil {
				return err
			}
			s.game.AddMessage(fmt.Sprintf(gotext.Get("MAP_DUMPED"), name))
		case input.ActionSaveProgress:
			saved, err := s.saveProgress()
			if err != nil {
				return err
			}
			if saved {
				s.game.AddMessage(fmt.Sprintf(gotext.Get("PROGRESS_SAVED"), s.opts.progressPath))
			}
		default:
			dir, ok := intent.Action.Direction()
			if !ok {
				s.game.AddMessage(fmt.Sprintf(gotext.Get("UNKNOWN_KEY"), code))
				continue
			}
			gameplay.PlayTurn(s.game, dir)
		}
	}
}

// crlfWriter restores carriage returns that raw mode stops the terminal adding.
type crlfWriter struct {
	w io.Writer
}

func (c crlfWriter) Write(p []byte) (int, error) {
	if _, err := io.WriteString(c.w, strings.ReplaceAll(string(p), "\n", "\r\n")); err != nil {
		return 0, err
	}
	return len(p), nil
}

// run loads configuration and plays one session against stdin and stdout.
func run(opts options, stdin *os.File, stdout *os.File) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	initGettext(cfg.Locale)

	s, err := newSession(opts, cfg, logger, useColor(cfg.Render.Color, stdout))
	if err != nil {
		return err
	}

	if opts.moves != "" || !terminal.IsTerminal(stdin) {
		return s.runScript(stdout)
	}

	return input.WithRawMode(int(stdin.Fd()), func() error {
		return s.runInteractive(input.NewKeyReader(stdin), crlfWriter{w: stdout}, true)
	})
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	flag.StringVar(&opts.levelPath, "level", "levels/cellar.yaml", "level file to play")
	flag.StringVar(&opts.moves, "moves", "", "play these keys (e.g. \"llljj\") and print the final frame")
	flag.StringVar(&opts.dumpFile, "dump", "", "file for map dumps (default "+devtools.DefaultDumpFilename+"); html screenshots go beside it")
	flag.StringVar(&opts.progressPath, "progress", "", "load and save explored cells here")
	flag.StringVar(&opts.format, "format", "tui", "frame format: tui or html")
	flag.StringVar(&opts.pathTo, "path", "", "overlay the path from the player to x,y")
	flag.IntVar(&opts.depth, "generate", 0, "generate a level of this depth instead of loading -level")
	flag.StringVar(&opts.generator, "generator", "bsp", "level generator: "+strings.Join(generator.Names(), " or "))
	flag.Int64Var(&opts.seed, "seed", time.Now().UnixNano(), "seed for -generate")
	flag.Parse()

	if err := run(opts, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "roguecore: %v\n", err)
		os.Exit(1)
	}
}

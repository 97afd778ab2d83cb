package tileswap

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Board styling.
const (
	boardMargin      = 20
	boardBorderWidth = 3
	tileFrameWidth   = 1
	classFrame       = "frame"
	classBoard       = "board"
)

// Default window size.
const (
	DefaultWidth  = 480
	DefaultHeight = 520
)

var (
	boardRed        = Color{R: 237.0 / 255, G: 29.0 / 255, B: 36.0 / 255, A: 1}
	defaultBackdrop = Color{R: 0.96, G: 0.95, B: 0.92, A: 1}
)

// ErrLevelOutOfRange is returned by LoadLevel for an index the catalog lacks.
var ErrLevelOutOfRange = errors.New("tileswap: level out of range")

// Config configures a Game. The zero value plays the embedded catalog in a
// DefaultWidth x DefaultHeight window.
type Config struct {
	Width, Height int

	// Catalog to play. Nil selects DefaultCatalog().
	Catalog *Catalog
	// MaxBoardSize overrides the catalog's maxBoardSize when positive.
	MaxBoardSize float64
	// StartLevel is the first level loaded by NewGame.
	StartLevel int

	// Seed seeds the shuffle RNG. Zero picks a time-based seed.
	Seed          uint64
	ShufflePolicy ShufflePolicy

	// Loader resolves level image resources. Nil selects an FSLoader that
	// only serves builtin images.
	Loader ImageLoader
	// Sink receives game events. May be nil.
	Sink EventSink
	// Logger receives structured logs. Nil logs warnings and errors to stderr.
	Logger *slog.Logger
	// Inputs are the pointer devices polled each frame. Nil selects mouse
	// and touch.
	Inputs []PointerInput
	// Watcher, when set, triggers a catalog reload whenever it fires.
	Watcher *CatalogWatcher

	// Debug enables tree checks, stale swap warnings and the stats overlay.
	Debug bool
	// ScreenshotDir is where Screenshot writes PNGs. Defaults to "screenshots".
	ScreenshotDir string
	// ExitWhenScriptDone ends the game loop once an attached TestRunner
	// finishes.
	ExitWhenScriptDone bool
}

// Game is one play session: the catalog, the current level's board and the
// level controller moving between them. It implements ebiten.Game. All state
// is owned by the goroutine calling Update; image loads run elsewhere and
// hand their result back through a future polled from Update.
type Game struct {
	cfg     Config
	log     *slog.Logger
	catalog *Catalog
	loader  ImageLoader
	rng     *rand.Rand

	surface *Surface
	board   *Node // container positioned at the board's top-left
	border  *Node
	drag    *DragController
	tweens  Tweens

	level      int
	state      State
	gameOver   bool
	moves      int
	layout     Layout
	collection *Collection
	views      map[*Tile]*Node
	img        image.Image

	loadSeq    int
	pending    *imageFuture
	cancelLoad context.CancelFunc
	loadErr    error

	inputs   []PointerInput
	injected injector
	events   []PointerEvent

	hud            hudLayer
	bannerVisible  bool
	advanceVisible bool

	runner          *TestRunner
	screenshotQueue []string
	textures        textureCache
	stats           debugStats
	ticks           int
	showFPS         bool
	quit            bool
}

// hudLayer is the widget layer drawn above the board. It is absent in
// headless use.
type hudLayer interface {
	Update()
	Draw(screen *ebiten.Image)
	SetBanner(visible bool, text string)
	SetAdvance(visible bool)
}

// NewGame validates cfg, builds the session and starts loading the first
// level.
func NewGame(cfg Config) (*Game, error) {
	if cfg.Width <= 0 {
		cfg.Width = DefaultWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = DefaultHeight
	}
	if cfg.Catalog == nil {
		cfg.Catalog = DefaultCatalog()
	} else if err := cfg.Catalog.Validate(); err != nil {
		return nil, err
	}
	if cfg.MaxBoardSize < 0 {
		return nil, fmt.Errorf("%w (got %v)", ErrInvalidBoardSize, cfg.MaxBoardSize)
	}
	if cfg.Loader == nil {
		cfg.Loader = FSLoader{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}
	if cfg.Inputs == nil {
		cfg.Inputs = []PointerInput{NewMouseInput(), NewTouchInput()}
	}
	if cfg.ScreenshotDir == "" {
		cfg.ScreenshotDir = "screenshots"
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	g := &Game{
		cfg:     cfg,
		log:     cfg.Logger,
		catalog: cfg.Catalog,
		loader:  cfg.Loader,
		rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		surface: NewSurface(),
		inputs:  cfg.Inputs,
		views:   make(map[*Tile]*Node),
	}
	g.surface.ClearColor = defaultBackdrop
	g.surface.SetDebugMode(cfg.Debug)

	g.board = NewContainer("board")
	g.board.Class = classBoard
	g.board.Interactable = true
	g.surface.Root().AddChild(g.board)

	g.drag = NewDragController(g.surface, &g.tweens)
	g.drag.Blocked = func() bool { return g.gameOver }
	g.drag.OnDrop = g.swap

	g.log.Debug("game created", slog.Uint64("seed", seed), slog.Int("levels", g.catalog.Len()))

	if err := g.LoadLevel(cfg.StartLevel); err != nil {
		return nil, err
	}
	return g, nil
}

// --- Accessors ---

// State returns the level controller state.
func (g *Game) State() State { return g.state }

// Level returns the index of the current level.
func (g *Game) Level() int { return g.level }

// GameOver reports whether the current level has been solved.
func (g *Game) GameOver() bool { return g.gameOver }

// Moves returns the number of swaps made on the current level.
func (g *Game) Moves() int { return g.moves }

// Collection returns the current board's tiles, or nil while loading.
func (g *Game) Collection() *Collection { return g.collection }

// BoardLayout returns the current board geometry. Zero while loading.
func (g *Game) BoardLayout() Layout { return g.layout }

// Catalog returns the catalog being played.
func (g *Game) Catalog() *Catalog { return g.catalog }

// Surface returns the element tree the game draws.
func (g *Game) Surface() *Surface { return g.surface }

// Drag returns the drag controller.
func (g *Game) Drag() *DragController { return g.drag }

// BannerVisible reports whether the win banner is showing.
func (g *Game) BannerVisible() bool { return g.bannerVisible }

// AdvanceVisible reports whether the next-level control is showing.
func (g *Game) AdvanceVisible() bool { return g.advanceVisible }

// LoadErr returns the error of the most recent failed image load, if the
// current level is stuck loading because of it.
func (g *Game) LoadErr() error { return g.loadErr }

// TileView returns the element bound to t.
func (g *Game) TileView(t *Tile) *Node { return g.views[t] }

// PositionCenter returns the screen-space center of board position i.
func (g *Game) PositionCenter(i int) (Vec2, bool) {
	if g.collection == nil || i < 0 || i >= g.collection.Len() {
		return Vec2{}, false
	}
	r := g.layout.SlotRect(i)
	return Vec2{X: g.board.X + r.X + r.Width/2, Y: g.board.Y + r.Y + r.Height/2}, true
}

// --- Level controller ---

// LoadLevel abandons the current board and starts loading level i. Setup
// finishes once the image arrives: on a later Update, or inside Await.
// A newer LoadLevel supersedes any load still in flight.
func (g *Game) LoadLevel(i int) error {
	lvl, ok := g.catalog.Level(i)
	if !ok {
		return fmt.Errorf("%w: %d (catalog has %d)", ErrLevelOutOfRange, i, g.catalog.Len())
	}

	g.gameOver = false
	g.drag.Cancel()
	g.setBanner(false)
	g.setAdvance(false)
	g.clearBoard()

	g.level = i
	g.state = StateLoading
	g.moves = 0
	g.loadErr = nil
	g.loadSeq++

	if g.cancelLoad != nil {
		g.cancelLoad()
	}
	ctx, cancel := context.WithCancel(context.Background())
	g.cancelLoad = cancel
	g.pending = loadImageAsync(ctx, g.loader, lvl.Image)

	g.log.Info("loading level",
		slog.Int("level", i),
		slog.String("image", lvl.Image),
		slog.Int("grid", lvl.Grid),
		slog.Int("seq", g.loadSeq))
	return nil
}

// Advance loads the next level. Only valid after a win with a next level
// available; otherwise it does nothing and reports false.
func (g *Game) Advance() bool {
	if g.state != StateWon || !g.catalog.HasNext(g.level) {
		return false
	}
	if err := g.LoadLevel(g.level + 1); err != nil {
		g.log.Error("advance failed", slog.Any("err", err))
		return false
	}
	return true
}

// Retry reissues the load of the current level after a load failure.
// Reports false if the level is not stuck loading.
func (g *Game) Retry() bool {
	if g.state != StateLoading || g.pending != nil {
		return false
	}
	return g.LoadLevel(g.level) == nil
}

// Await blocks until the pending image load finishes and completes level
// setup. It is the headless counterpart to polling from Update and must not
// run concurrently with Update.
func (g *Game) Await(ctx context.Context) error {
	f := g.pending
	if f == nil {
		return g.loadErr
	}
	if _, err := f.Wait(ctx); err != nil && ctx.Err() != nil {
		return err
	}
	g.finishLoad()
	return g.loadErr
}

// SetCatalog swaps in a new catalog and reloads the current level, clamped
// to the new catalog's range.
func (g *Game) SetCatalog(c *Catalog) error {
	if err := c.Validate(); err != nil {
		return err
	}
	g.catalog = c
	level := min(g.level, c.Len()-1)
	g.log.Info("catalog replaced", slog.Int("levels", c.Len()), slog.Int("level", level))
	return g.LoadLevel(level)
}

// pollLoad completes setup if the pending load has finished. Never blocks.
func (g *Game) pollLoad() {
	if g.pending != nil && g.pending.Ready() {
		g.finishLoad()
	}
}

// finishLoad consumes the finished future. On failure the game stays in
// StateLoading with loadErr set; Retry starts over.
func (g *Game) finishLoad() {
	f := g.pending
	g.pending = nil
	if g.cancelLoad != nil {
		g.cancelLoad()
		g.cancelLoad = nil
	}
	if f.err != nil {
		g.loadErr = f.err
		lvl, _ := g.catalog.Level(g.level)
		g.log.Error("image load failed",
			slog.Int("level", g.level),
			slog.String("image", lvl.Image),
			slog.Any("err", f.err))
		return
	}
	g.setupBoard(f.img)
}

// maxBoardSize is the configured override or the catalog's bound.
func (g *Game) maxBoardSize() float64 {
	if g.cfg.MaxBoardSize > 0 {
		return g.cfg.MaxBoardSize
	}
	return g.catalog.MaxBoardSize
}

// setupBoard runs layout, populate, shuffle and render for the loaded image.
func (g *Game) setupBoard(img image.Image) {
	lvl, _ := g.catalog.Level(g.level)
	b := img.Bounds()
	imgW, imgH := float64(b.Dx()), float64(b.Dy())

	g.img = img
	g.layout = ComputeLayout(imgW, imgH, g.maxBoardSize(), lvl.Grid)
	g.collection = NewCollection(lvl.Grid, g.layout)
	Shuffle(g.collection, g.rng, g.cfg.ShufflePolicy)

	g.board.SetPosition(
		float64(g.cfg.Width)/2-g.layout.BoardWidth/2,
		boardMargin+boardBorderWidth,
	)
	g.board.SetSize(g.layout.BoardWidth, g.layout.BoardHeight)

	g.border = NewFrame("border",
		g.layout.BoardWidth+2*boardBorderWidth,
		g.layout.BoardHeight+2*boardBorderWidth,
		boardRed, boardBorderWidth)
	g.border.SetPosition(-boardBorderWidth, -boardBorderWidth)
	g.border.Interactable = false
	g.border.SetZIndex(-1)
	g.board.AddChild(g.border)

	for _, t := range g.collection.Tiles() {
		g.views[t] = g.newTileView(t, imgW, imgH, b.Min)
		g.board.AddChild(g.views[t])
	}
	g.render()

	g.state = StatePlaying
	g.log.Info("level ready",
		slog.Int("level", g.level),
		slog.Int("grid", lvl.Grid),
		slog.Float64("boardWidth", g.layout.BoardWidth),
		slog.Float64("boardHeight", g.layout.BoardHeight),
		slog.Int("misplaced", g.collection.Misplaced()))
	g.emit(GameEvent{
		Type:    EventLevelLoaded,
		Level:   g.level,
		Grid:    lvl.Grid,
		HasNext: g.catalog.HasNext(g.level),
	})
}

// newTileView builds the element for t: a sprite of its crop with a frame
// child as the drag affordance.
func (g *Game) newTileView(t *Tile, imgW, imgH float64, origin image.Point) *Node {
	src := g.layout.SourceRect(t.Crop, imgW, imgH)
	src.X += float64(origin.X)
	src.Y += float64(origin.Y)

	v := NewSprite(fmt.Sprintf("tile%d", t.Slot), g.img, src)
	v.Class = classTile
	v.UserData = t
	v.Interactable = true
	v.SetSize(g.layout.TileWidth, g.layout.TileHeight)

	frame := NewFrame("frame", g.layout.TileWidth, g.layout.TileHeight, boardRed, tileFrameWidth)
	frame.Class = classFrame
	frame.Interactable = true
	v.AddChild(frame)
	return v
}

// render places every tile element at the slot rectangle of its current
// position.
func (g *Game) render() {
	for i, t := range g.collection.Tiles() {
		r := g.layout.SlotRect(i)
		g.views[t].SetPosition(r.X, r.Y)
	}
}

// clearBoard drops the collection and every board element.
func (g *Game) clearBoard() {
	g.tweens.Clear()
	for _, v := range g.views {
		v.Dispose()
	}
	clear(g.views)
	if g.border != nil {
		g.border.Dispose()
		g.border = nil
	}
	g.collection = nil
	g.layout = Layout{}
	g.img = nil
	g.textures.clear()
}

// swap is the drop handler: exchange two tiles, re-render, check for a win.
func (g *Game) swap(a, b *Tile) {
	if g.gameOver || g.collection == nil {
		return
	}
	from, to := g.collection.IndexOf(a), g.collection.IndexOf(b)
	if !g.collection.Swap(a, b) {
		if g.cfg.Debug {
			debugf("stale swap ignored (from=%d to=%d)", from, to)
		}
		g.log.Warn("stale swap ignored", slog.Int("from", from), slog.Int("to", to))
		return
	}
	g.moves++
	g.render()
	g.tweens.Add(settleTile(g.views[a]))
	g.tweens.Add(settleTile(g.views[b]))

	g.emit(GameEvent{
		Type:  EventTileSwapped,
		Level: g.level,
		Grid:  g.collection.Grid(),
		From:  from,
		To:    to,
		Moves: g.moves,
	})
	g.checkWin()
}

// SwapAt swaps the tiles at two board positions as if dragged, including
// the win check. Reports false when nothing was swapped.
func (g *Game) SwapAt(i, j int) bool {
	if g.gameOver || g.state != StatePlaying || g.collection == nil {
		return false
	}
	n := g.collection.Len()
	if i < 0 || j < 0 || i >= n || j >= n || i == j {
		return false
	}
	g.swap(g.collection.At(i), g.collection.At(j))
	return true
}

func (g *Game) emit(evt GameEvent) {
	if g.cfg.Sink != nil {
		g.cfg.Sink.Emit(evt)
	}
}

func (g *Game) setBanner(visible bool) {
	g.bannerVisible = visible
	if g.hud != nil {
		text := "You solved it!"
		if g.state == StateFinished || !g.catalog.HasNext(g.level) {
			text = "You solved every puzzle!"
		}
		g.hud.SetBanner(visible, text)
	}
}

func (g *Game) setAdvance(visible bool) {
	g.advanceVisible = visible
	if g.hud != nil {
		g.hud.SetAdvance(visible)
	}
}

// attachHUD installs the widget layer and syncs it with the current state.
func (g *Game) attachHUD(h hudLayer) {
	g.hud = h
	g.setBanner(g.bannerVisible)
	g.setAdvance(g.advanceVisible)
}

// --- ebiten.Game ---

// Update advances the session by one tick.
func (g *Game) Update() error {
	g.ticks++
	g.drainWatcher()
	g.pollLoad()

	if g.runner != nil {
		g.runner.step(g)
	}

	g.events = g.injected.Poll(g.events[:0])
	captured := g.injected.Captured()
	for _, in := range g.inputs {
		g.events = in.Poll(g.events)
		captured = captured || in.Captured()
	}
	for _, evt := range g.events {
		g.drag.Handle(evt)
	}

	if g.hud != nil && !captured && !g.drag.Active() {
		g.hud.Update()
	}
	g.tweens.Update(float32(1.0 / float64(ebiten.TPS())))

	if g.quit {
		return ebiten.Termination
	}
	if g.runner != nil && g.runner.Done() && g.cfg.ExitWhenScriptDone {
		return ebiten.Termination
	}
	return nil
}

// Draw paints the board, the widget layer and, in debug mode, the stats
// overlay.
func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.draw(screen, &g.textures, &g.stats)
	if g.hud != nil {
		g.hud.Draw(screen)
	}
	if g.cfg.Debug || g.showFPS {
		g.drawDebug(screen)
	}
	g.flushScreenshots(screen)
}

// Layout reports the fixed logical screen size.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// Quit ends the game loop after the current Update.
func (g *Game) Quit() {
	g.quit = true
}

// drainWatcher applies catalog edits reported by the watcher.
func (g *Game) drainWatcher() {
	w := g.cfg.Watcher
	if w == nil {
		return
	}
	for {
		select {
		case path, ok := <-w.Events:
			if !ok {
				g.cfg.Watcher = nil
				return
			}
			c, err := LoadCatalog(path)
			if err != nil {
				g.log.Error("catalog reload failed", slog.String("path", path), slog.Any("err", err))
				continue
			}
			if err := g.SetCatalog(c); err != nil {
				g.log.Error("catalog reload failed", slog.String("path", path), slog.Any("err", err))
			}
		case err, ok := <-w.Errors:
			if ok {
				g.log.Warn("catalog watcher", slog.Any("err", err))
			}
		default:
			return
		}
	}
}

// RunConfig holds window settings for Run.
type RunConfig struct {
	Title         string
	Width, Height int // window size; zero uses the game's logical size
	ShowFPS       bool
}

// Run opens a window and plays g until the window closes or the game quits.
func Run(g *Game, cfg RunConfig) error {
	w, h := cfg.Width, cfg.Height
	if w <= 0 || h <= 0 {
		w, h = g.cfg.Width, g.cfg.Height
	}
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	g.showFPS = cfg.ShowFPS

	hud, err := newHUD(g)
	if err != nil {
		return fmt.Errorf("tileswap: build hud: %w", err)
	}
	g.attachHUD(hud)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

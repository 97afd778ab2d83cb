// Package tileswap is an image tile-swap puzzle for [Ebitengine].
//
// A level cuts a source image into an N x N grid of tiles, shuffles them, and
// lets the player drag one tile onto another to exchange their places. When
// every tile is back in its original slot the level is won and, if the
// catalog has another level, a next-level button appears.
//
// # Quick start
//
// The simplest way to play is [Run], which opens a window for a [Game]:
//
//	g, err := tileswap.NewGame(tileswap.Config{})
//	if err != nil {
//		log.Fatal(err)
//	}
//	tileswap.Run(g, tileswap.RunConfig{Title: "Tile Swap"})
//
// The zero [Config] plays the embedded catalog, whose images are generated
// procedurally (see [Procedural]) so no asset files are needed. Point
// [Config.Catalog] at a catalog from [LoadCatalog] and [Config.Loader] at an
// [FSLoader] to play your own images.
//
// # Catalog
//
// Levels are listed in YAML:
//
//	maxBoardSize: 360
//	levels:
//	  - image: builtin:sunrise
//	    grid: 3
//	  - image: photos/harbor.jpg
//	    grid: 4
//
// The larger side of every image is fitted to maxBoardSize pixels. A
// [CatalogWatcher] reloads the file while the game runs.
//
// # Play loop
//
// A [Game] moves through [StateLoading], [StatePlaying] and then
// [StateWon] or, on the last level, [StateFinished]. Image loads run on
// their own goroutine; everything else happens inside Update. For headless
// use call [Game.Await] after [Game.LoadLevel] instead of ticking Update.
//
// Pointer input comes from [MouseInput] and [TouchInput] and is turned into
// swaps by the [DragController]. Input can also be injected with
// [Game.InjectDrag] and [Game.InjectSwap], or scripted with a [TestRunner].
//
// Game events can be observed through an [EventSink]; the tileswap/ecs
// module forwards them into a [Donburi] world.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package tileswap

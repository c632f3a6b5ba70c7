// Package game implements the high-card drawing game loop.
//
// Every round each player draws one card from the front of a shared deck,
// in seat order. The players holding the highest value card score a point;
// equal values share the round. Play stops as soon as the deck cannot give
// every player a card, and the tally accumulated so far is the result.
//
// # Basic Usage
//
// Run the loop over an explicit deck:
//
//	scores, err := game.RunGame(ctx, 4, deck.MustParseCards("K♠ A♠ A♥ A♦"))
//	// scores == []int{1, 0, 0, 0}
//
// Or set up a validated game from configuration, which builds and shuffles
// the deck from a seed:
//
//	g, err := game.New(game.Config{Decks: 2, Players: 6, Seed: &seed})
//	if errors.Is(err, game.ErrInvalidPlayerCount) { ... }
//	result, err := g.Play(ctx)
//
// # Skipping
//
// When skipping is enabled every player except the first is asked, once per
// round, whether they sit the round out. Skipping players draw nothing and
// cannot win the round. Decisions come from a SkipDecider:
//
//	game.RunGame(ctx, 5, cards, game.WithSkipping(game.SkipFunc(func(player, round int) bool {
//	    return player == 3
//	})))
//
// # Events
//
// The engine never writes to the terminal. It publishes GameStart, RoundStart,
// CardDrawn, PlayerSkipped, RoundEnd and GameOver events on an EventBus;
// EventFormatter turns them into narration lines.
package game

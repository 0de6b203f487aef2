// Package signal publishes the scroll engine's latest state to consumers
// that run on their own cadence.
//
// The board keeps the latest value only. There is no queue, no history
// and no subscription: a consumer polls once per frame and sees whatever
// the engine published last. Reading a value one frame stale is expected;
// every consumer smooths on top of the raw signal.
//
//	board := signal.NewBoard()
//	eng := engine.New(cfg, integ, board)
//	shader := shader.New(board, shader.DefaultConfig())
//
// Publish must be called from one goroutine at a time. Readers are safe
// from any goroutine and never block the writer.
package signal

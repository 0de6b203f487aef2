package engine

import (
	"math/rand"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/driftscroll/internal/integrators"
	"github.com/san-kum/driftscroll/internal/scroll"
	"github.com/san-kum/driftscroll/internal/signal"
)

func TestEngineProperties(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Engine Properties Suite")
}

var _ = Describe("Engine", func() {
	var (
		eng   *Engine
		board *signal.Board
		rng   *rand.Rand
	)

	for _, integ := range []scroll.Integrator{integrators.NewExponential(), integrators.NewTimed()} {
		integ := integ

		Context("with the "+integ.Name()+" integrator", func() {
			BeforeEach(func() {
				board = signal.NewBoard()
				var err error
				eng, err = New(scroll.DefaultConfig(), integ, board)
				Expect(err).NotTo(HaveOccurred())
				eng.Resize(1800, 800)
				rng = rand.New(rand.NewSource(7))
			})

			It("keeps target and position inside [0, limit] under random input and resizes", func() {
				for i := 0; i < 2000; i++ {
					switch rng.Intn(10) {
					case 0:
						eng.Resize(800+rng.Float64()*3000, 400+rng.Float64()*800)
					case 1:
						eng.Rewind()
					default:
						eng.ScrollBy((rng.Float64() - 0.5) * 1500)
					}
					st := eng.State()
					Expect(st.Target).To(BeNumerically(">=", 0))
					Expect(st.Target).To(BeNumerically("<=", st.Limit))

					snap := eng.Tick(frame)
					st = eng.State()
					Expect(st.Position).To(BeNumerically(">=", 0))
					Expect(st.Position).To(BeNumerically("<=", st.Limit))
					Expect(snap.Progress).To(BeNumerically(">=", 0))
					Expect(snap.Progress).To(BeNumerically("<=", 1))
				}
			})

			It("converges on a fixed target without overshoot", func() {
				eng.ScrollBy(730)
				prev := eng.State().Position
				for i := 0; i < 400; i++ {
					eng.Tick(frame)
					pos := eng.State().Position
					Expect(pos).To(BeNumerically(">=", prev))
					Expect(pos).To(BeNumerically("<=", 730))
					prev = pos
				}
				Expect(prev).To(BeNumerically("~", 730, 1e-3))
			})

			It("reports momentum with the sign of the remaining distance", func() {
				eng.ScrollTo(600)
				Expect(eng.Tick(frame).Momentum).To(BeNumerically(">", 0))

				for i := 0; i < 400; i++ {
					eng.Tick(frame)
				}
				eng.ScrollTo(100)
				Expect(eng.Tick(frame).Momentum).To(BeNumerically("<", 0))
			})

			It("publishes zero momentum at rest", func() {
				snap := eng.Tick(frame)
				Expect(snap.Momentum).To(BeZero())
				Expect(board.Momentum()).To(BeZero())
				Expect(board.Progress()).To(BeZero())
			})

			It("defines progress as zero when content is shorter than the viewport", func() {
				eng.ScrollBy(500)
				eng.Tick(frame)
				eng.Resize(400, 800)
				snap := eng.Tick(frame)
				Expect(snap.Limit).To(BeZero())
				Expect(snap.Progress).To(BeZero())
				Expect(board.Snapshot().Progress).To(BeZero())
			})
		})
	}
})
